// Package desktop drives an assessment session through fyne windows: one
// window per trait plus a main window that calculates the results.
package desktop

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"holland-test/internal/chart"
	"holland-test/internal/config"
	"holland-test/internal/domain"
	"holland-test/internal/service"
)

const (
	mainTitle    = "Holland Personality Test"
	resultsTitle = "Holland Personality Test Results"
)

type collectorView struct {
	collector *service.ResponseCollector
	window    fyne.Window
	radios    []*widget.RadioGroup
	submit    *widget.Button
}

// App owns one session and the windows bound to it.
type App struct {
	fyneApp fyne.App
	svc     *service.AssessmentService
	session *service.Session
	logger  *zap.Logger

	main      fyne.Window
	status    *widget.Label
	calculate *widget.Button
	views     map[domain.TraitCode]*collectorView

	showInfo  func(title, message string)
	showChart func(png []byte)
}

// New starts a session and builds every window without showing them.
func New(fyneApp fyne.App, svc *service.AssessmentService, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	session, err := svc.StartSession(context.Background(), "desktop")
	if err != nil {
		return nil, err
	}

	d := &App{
		fyneApp: fyneApp,
		svc:     svc,
		session: session,
		logger:  logger,
		views:   make(map[domain.TraitCode]*collectorView),
	}
	d.showInfo = func(title, message string) {
		dialog.ShowInformation(title, message, d.main)
	}
	d.showChart = d.openChartWindow

	d.buildMain()
	for _, c := range session.Collectors() {
		d.views[c.Trait().Code] = d.buildCollector(c)
	}
	d.refreshStatus()
	return d, nil
}

// Run shows every window and blocks until the main window is closed.
func (d *App) Run() {
	for _, c := range d.session.Collectors() {
		d.views[c.Trait().Code].window.Show()
	}
	d.main.ShowAndRun()
}

func (d *App) buildMain() {
	d.main = d.fyneApp.NewWindow(mainTitle)
	d.main.SetMaster()
	d.status = widget.NewLabel("")
	d.calculate = widget.NewButton("Calculate Results", d.calculateResults)
	d.main.SetContent(container.NewVBox(d.status, d.calculate))
	d.main.Resize(fyne.NewSize(360, 120))
}

func (d *App) buildCollector(c *service.ResponseCollector) *collectorView {
	trait := c.Trait()
	labels := domain.ScaleLabels()
	view := &collectorView{
		collector: c,
		window:    d.fyneApp.NewWindow(fmt.Sprintf("%s - %s Type", mainTitle, trait.Name)),
	}

	content := container.NewVBox()
	for i, statement := range trait.Statements {
		idx := i
		radio := widget.NewRadioGroup(labels, nil)
		// The first option is the initial state and counts as unanswered until changed.
		radio.Selected = labels[0]
		radio.OnChanged = func(selected string) {
			level, ok := domain.ParseLevel(selected)
			if !ok {
				return
			}
			if err := c.Select(idx, level); err != nil {
				d.logger.Warn("select response failed", zap.String("trait", string(trait.Code)), zap.Error(err))
			}
		}
		view.radios = append(view.radios, radio)
		content.Add(widget.NewLabel(statement))
		content.Add(radio)
	}

	view.submit = widget.NewButton("Submit Test", func() {
		if _, err := d.svc.Submit(d.session.ID, c); err != nil {
			d.logger.Warn("submit trait failed", zap.String("trait", string(trait.Code)), zap.Error(err))
		}
		view.window.Close()
	})
	content.Add(view.submit)

	view.window.SetContent(content)
	view.window.SetOnClosed(func() {
		if !c.State().Closed() {
			_ = d.svc.AbandonTrait(context.Background(), d.session.ID, trait.Code)
		}
		d.refreshStatus()
	})
	return view
}

func (d *App) refreshStatus() {
	submitted := d.session.Aggregator().Len()
	total := len(d.session.Collectors())
	d.status.SetText(fmt.Sprintf("Traits submitted: %d/%d", submitted, total))

	// Strict mode keeps the action disabled until the aggregate is complete.
	if d.session.Mode == config.ResultsModeStrict && !d.session.Ready() {
		d.calculate.Disable()
		return
	}
	d.calculate.Enable()
}

func (d *App) calculateResults() {
	report, err := d.svc.ReportFor(d.session)
	if err != nil {
		d.showInfo(resultsTitle, userMessage(err))
		return
	}
	text := report.Text
	if report.Partial {
		text = fmt.Sprintf("(Partial result: %d trait(s) not submitted)\n\n%s", len(report.Missing), text)
	}
	d.showInfo(resultsTitle, text)

	dist, err := d.svc.DistributionFor(d.session)
	if err != nil {
		d.showInfo(resultsTitle, userMessage(err))
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderDonut(&buf, dist, chart.FormatPNG); err != nil {
		d.logger.Error("render chart failed", zap.Error(err))
		d.showInfo(resultsTitle, "The chart could not be drawn.")
		return
	}
	d.showChart(buf.Bytes())
}

func (d *App) openChartWindow(png []byte) {
	img := canvas.NewImageFromReader(bytes.NewReader(png), "distribution.png")
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(480, 480))

	w := d.fyneApp.NewWindow(chart.Title)
	w.SetContent(img)
	w.Show()
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrIncompleteAggregate):
		return "Not enough traits have been submitted to calculate results."
	case errors.Is(err, service.ErrZeroTotal):
		return "Every submitted trait scored 0, so there is no distribution to show."
	default:
		return fmt.Sprintf("Results are unavailable: %v", err)
	}
}
