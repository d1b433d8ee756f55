package desktop

import (
	"bytes"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"go.uber.org/zap"

	"holland-test/internal/catalog"
	"holland-test/internal/config"
	"holland-test/internal/domain"
	"holland-test/internal/service"
)

type captured struct {
	messages []string
	charts   [][]byte
}

func newTestApp(t *testing.T, mode string) (*App, *captured) {
	t.Helper()
	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)

	svc := service.NewAssessmentService(catalog.Default(), service.NewMemorySessionStore(0), nil, nil, mode, zap.NewNop())
	d, err := New(fyneApp, svc, zap.NewNop())
	if err != nil {
		t.Fatalf("new desktop app: %v", err)
	}
	c := &captured{}
	d.showInfo = func(_, message string) { c.messages = append(c.messages, message) }
	d.showChart = func(png []byte) { c.charts = append(c.charts, png) }
	return d, c
}

func answer(d *App, code domain.TraitCode, levels ...domain.Level) {
	view := d.views[code]
	labels := domain.ScaleLabels()
	for i, l := range levels {
		view.radios[i].SetSelected(labels[l])
	}
	test.Tap(view.submit)
}

func TestCollectorWindowsFollowCatalog(t *testing.T) {
	d, _ := newTestApp(t, config.ResultsModeStrict)
	if len(d.views) != 6 {
		t.Fatalf("expected 6 collector windows, got %d", len(d.views))
	}
	r := d.views[domain.TraitRealistic]
	if r.window.Title() != "Holland Personality Test - Realistic Type" {
		t.Fatalf("unexpected title %q", r.window.Title())
	}
	if len(r.radios) != 3 || len(r.radios[0].Options) != 5 {
		t.Fatalf("expected 3 radio groups of 5 options")
	}
	if r.radios[0].Selected != "Strongly Disagree" {
		t.Fatalf("expected lowest option preselected, got %q", r.radios[0].Selected)
	}
}

func TestStrictModeEnablesCalculateWhenAllSubmitted(t *testing.T) {
	d, c := newTestApp(t, config.ResultsModeStrict)
	if !d.calculate.Disabled() {
		t.Fatalf("expected calculate disabled before submissions")
	}

	answer(d, domain.TraitConventional, domain.LevelAgree)
	answer(d, domain.TraitArtistic, domain.LevelNeutral, domain.LevelNeutral, domain.LevelAgree)
	answer(d, domain.TraitRealistic, domain.LevelStronglyAgree, domain.LevelStronglyAgree, domain.LevelNeutral)
	answer(d, domain.TraitEnterprising, domain.LevelDisagree, domain.LevelDisagree)
	answer(d, domain.TraitInvestigative, domain.LevelDisagree, domain.LevelDisagree, domain.LevelDisagree)
	if !d.calculate.Disabled() {
		t.Fatalf("expected calculate disabled with 5/6 traits")
	}
	answer(d, domain.TraitSocial, domain.LevelAgree, domain.LevelAgree, domain.LevelNeutral)

	if d.calculate.Disabled() {
		t.Fatalf("expected calculate enabled once every trait is submitted")
	}
	if d.status.Text != "Traits submitted: 6/6" {
		t.Fatalf("unexpected status %q", d.status.Text)
	}

	test.Tap(d.calculate)
	if len(c.messages) != 1 || !strings.Contains(c.messages[0], "Your Holland Personality Type is: Realistic") {
		t.Fatalf("expected realistic report, got %v", c.messages)
	}
	if len(c.charts) != 1 || !bytes.HasPrefix(c.charts[0], []byte("\x89PNG")) {
		t.Fatalf("expected one png chart")
	}
}

func TestPartialModeEmptyAggregateShowsMessage(t *testing.T) {
	d, c := newTestApp(t, config.ResultsModePartial)
	if d.calculate.Disabled() {
		t.Fatalf("expected calculate enabled in partial mode")
	}
	test.Tap(d.calculate)
	if len(c.messages) != 1 || !strings.Contains(c.messages[0], "Not enough traits") {
		t.Fatalf("expected incomplete message, got %v", c.messages)
	}
	if len(c.charts) != 0 {
		t.Fatalf("expected no chart")
	}
}

func TestClosingCollectorWindowAbandonsTrait(t *testing.T) {
	d, c := newTestApp(t, config.ResultsModePartial)
	d.views[domain.TraitSocial].window.Close()
	if got := d.views[domain.TraitSocial].collector.State(); got != domain.CollectorAbandoned {
		t.Fatalf("expected abandoned collector, got %s", got)
	}

	answer(d, domain.TraitArtistic)
	test.Tap(d.calculate)
	if len(c.messages) != 2 {
		t.Fatalf("expected report and zero-total message, got %v", c.messages)
	}
	if !strings.Contains(c.messages[0], "Partial result: 5 trait(s)") {
		t.Fatalf("expected partial notice, got %q", c.messages[0])
	}
	if !strings.Contains(c.messages[1], "scored 0") {
		t.Fatalf("expected zero total message, got %q", c.messages[1])
	}
}
