package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"holland-test/internal/catalog"
	"holland-test/internal/chart"
	"holland-test/internal/config"
	"holland-test/internal/domain"
	"holland-test/internal/service"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		mode        string
		chartOut    string
		catalogPath string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:           "cli_quiz",
		Short:         "Run the Holland (RIASEC) self-assessment in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mode") {
				cfg.ResultsMode = mode
			}
			if cmd.Flags().Changed("catalog") {
				cfg.CatalogPath = catalogPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := zap.NewNop()
			if verbose {
				logger = zap.NewExample()
			}
			defer logger.Sync()

			cat, err := catalog.Load(cfg.CatalogPath)
			if err != nil {
				return err
			}
			svc := service.NewAssessmentService(cat, service.NewMemorySessionStore(0), nil, nil, cfg.ResultsMode, logger)
			return runQuiz(cmd.Context(), bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), svc, chartOut)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", config.ResultsModeStrict, "results mode: strict (all six traits) or partial")
	cmd.Flags().StringVar(&chartOut, "chart-out", "", "write the donut chart to this .svg or .png file")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to a replacement trait catalog (YAML)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log assessment events to stderr")
	return cmd
}

// runQuiz asks every trait's statements in catalog order, then prints the
// report and the distribution. End of input abandons the traits not yet answered.
func runQuiz(ctx context.Context, reader *bufio.Reader, out io.Writer, svc *service.AssessmentService, chartOut string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	session, err := svc.StartSession(ctx, "cli")
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "===== Holland Personality Test =====")
	fmt.Fprintln(out, "Rate each statement:")
	for i, label := range domain.ScaleLabels() {
		fmt.Fprintf(out, "  %d = %s\n", i, label)
	}
	fmt.Fprintln(out, "Type the number or the label. Press enter to keep 0, or type 's' to skip the whole trait.")

	eof := false
	collectors := session.Collectors()
	for n, collector := range collectors {
		trait := collector.Trait()
		if eof {
			_ = svc.AbandonTrait(ctx, session.ID, trait.Code)
			continue
		}
		fmt.Fprintf(out, "\n--- Holland Personality Test - %s Type (%d/%d) ---\n", trait.Name, n+1, len(collectors))

		skipped := false
	statements:
		for i, statement := range trait.Statements {
			for {
				fmt.Fprintf(out, "[%d/%d] %s: ", i+1, len(trait.Statements), statement)
				line, readErr := reader.ReadString('\n')
				line = strings.TrimSpace(line)
				if readErr != nil && line == "" {
					eof = true
					break statements
				}
				if strings.EqualFold(line, "s") {
					skipped = true
					break statements
				}
				if line == "" {
					break
				}
				if level, ok := domain.ParseLevel(line); ok {
					if err := collector.Select(i, level); err == nil {
						break
					}
				}
				fmt.Fprintln(out, "Please answer with a number from 0 to 4 or an option label.")
			}
		}

		if skipped || eof {
			_ = svc.AbandonTrait(ctx, session.ID, trait.Code)
			fmt.Fprintf(out, "\n%s skipped.\n", trait.Name)
			continue
		}
		res, err := svc.Submit(session.ID, collector)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s score: %d/%d\n", trait.Name, res.Score, domain.MaxTraitScore)
	}

	return showResults(out, svc, session, chartOut)
}

func showResults(out io.Writer, svc *service.AssessmentService, session *service.Session, chartOut string) error {
	report, err := svc.ReportFor(session)
	if err != nil {
		if errors.Is(err, service.ErrIncompleteAggregate) {
			fmt.Fprintf(out, "\nCannot calculate results yet: %v\n", err)
			return nil
		}
		return err
	}

	fmt.Fprintln(out, "\n===== Holland Personality Test Results =====")
	if report.Partial {
		fmt.Fprintf(out, "(partial: %d trait(s) not answered)\n", len(report.Missing))
	}
	fmt.Fprintln(out, report.Text)

	dist, err := svc.DistributionFor(session)
	if err != nil {
		if errors.Is(err, service.ErrZeroTotal) {
			fmt.Fprintln(out, "\nNo distribution to show: every answered trait scored 0.")
			return nil
		}
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, chart.TextRing(dist, 40))

	if chartOut == "" {
		return nil
	}
	format, err := chart.ParseFormat(chartOut)
	if err != nil {
		return err
	}
	f, err := os.Create(chartOut)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := chart.RenderDonut(f, dist, format); err != nil {
		return err
	}
	fmt.Fprintf(out, "Chart written to %s\n", chartOut)
	return nil
}
