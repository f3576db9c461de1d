package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/specflow/internal/health"
	"github.com/felixgeelhaar/specflow/internal/store"
	"github.com/felixgeelhaar/specflow/internal/ux"
)

// doctorReport is the machine-readable doctor output.
type doctorReport struct {
	Status health.Status   `json:"status" yaml:"status"`
	Checks []health.Report `json:"checks" yaml:"checks"`
}

func newDoctorCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration and spec history",
		Long: `Run diagnostics on the local setup.

Checks include:
  • Configuration values (storage backend, template, export defaults)
  • Spec history storage: can it be opened, read, and decoded`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLenient: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
			if err != nil {
				return err
			}

			manager := health.NewManager()
			manager.AddChecker(health.NewConfigChecker(a.cfg))

			path, pathErr := a.cfg.StoragePath()
			var backend store.Backend
			if pathErr == nil {
				backend, pathErr = store.OpenBackend(ctx, a.cfg.Storage.Backend, path)
			}
			if pathErr != nil {
				manager.AddChecker(failedCheck{name: "spec-store", err: pathErr})
			} else {
				defer backend.Close()
				manager.AddChecker(health.NewStoreChecker(backend))
			}

			report := doctorReport{Checks: manager.Check(ctx)}
			report.Status = health.OverallStatus(report.Checks)

			if isText(format) {
				printDoctorReport(cmd.OutOrStdout(), report)
			} else if err := formatter.Format(report); err != nil {
				return err
			}

			if report.Status == health.StatusUnhealthy {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return cmd
}

// failedCheck reports a dependency that could not be set up for checking.
type failedCheck struct {
	name string
	err  error
}

func (f failedCheck) Name() string { return f.name }

func (f failedCheck) Check(context.Context) *health.Result {
	return health.Unhealthy(f.err.Error())
}

func printDoctorReport(out io.Writer, report doctorReport) {
	for _, r := range report.Checks {
		symbol := "✓"
		switch r.Result.Status {
		case health.StatusDegraded:
			symbol = "⚠"
		case health.StatusUnhealthy:
			symbol = "✗"
		}
		fmt.Fprintf(out, "%s %-12s %s\n", symbol, r.Name, r.Result.Message)
		if loc, ok := r.Result.Details["location"]; ok {
			fmt.Fprintf(out, "  %-12s %v\n", "location", loc)
		}
		if src, ok := r.Result.Details["source"]; ok {
			fmt.Fprintf(out, "  %-12s %v\n", "source", src)
		}
	}
	fmt.Fprintf(out, "\nOverall: %s\n", report.Status)
}
