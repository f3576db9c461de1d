package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/specflow/internal/domain"
	"github.com/felixgeelhaar/specflow/internal/generator"
	"github.com/felixgeelhaar/specflow/internal/progress"
	"github.com/felixgeelhaar/specflow/internal/tui"
	"github.com/felixgeelhaar/specflow/internal/ux"
	"github.com/felixgeelhaar/specflow/internal/workflow"
)

type generateOptions struct {
	goal        string
	users       string
	constraints string
	template    string
	noSave      bool
	format      string
	interactive bool
}

func newGenerateCommand(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a backlog from a goal and target users",
		Long: `Generate user stories, implementation tasks, and risks for a feature.

The goal and target users are required. Constraints are optional free text
(for example "GDPR compliant, must integrate with Salesforce"). The template
adds platform-specific tasks and risks: web, mobile, internal, or custom.`,
		Example: `  specflow generate --goal "Build a dashboard for managers to track OKRs" --users managers
  specflow generate --goal "Offline field notes" --users "end users" --template mobile --format json
  specflow generate --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.goal, "goal", "g", "", "what you want to build")
	cmd.Flags().StringVarP(&opts.users, "users", "u", "", "who the feature is for")
	cmd.Flags().StringVarP(&opts.constraints, "constraints", "c", "", "optional constraints (compliance, performance, integrations)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template: web, mobile, internal, custom (default from config)")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not keep the spec in history")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "fill in the request with an interactive form")

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	formatter, err := ux.NewFormatter(opts.format, &ux.FormatterOptions{Writer: out})
	if err != nil {
		return err
	}

	in := generator.Input{
		Goal:        opts.goal,
		TargetUsers: opts.users,
		Constraints: opts.constraints,
		Template:    domain.Template(opts.template),
	}
	if in.Template == "" {
		in.Template = domain.Template(a.cfg.Generate.Template)
	}

	if opts.interactive {
		in, err = tui.RunIntake(in)
		if err != nil {
			return err
		}
	}

	// Fail fast on bad input before opening the store.
	if _, err := workflow.ValidateInput(in); err != nil {
		return err
	}

	svc, err := a.workflow(ctx, opts.noSave)
	if err != nil {
		return err
	}

	var indicator *progress.Indicator
	if isText(opts.format) && a.cfg.Generate.Delay > 0 {
		indicator = progress.NewIndicator(progress.Config{
			Writer:      cmd.ErrOrStderr(),
			Message:     "Generating backlog",
			ShowSpinner: isTerminal(cmd.ErrOrStderr()),
		})
		indicator.Start()
	}
	result, err := svc.Generate(ctx, in, workflow.GenerateOptions{NoSave: opts.noSave})
	if indicator != nil {
		indicator.Stop()
	}
	if err != nil {
		return err
	}

	if !isText(opts.format) {
		return formatter.Format(result.Spec)
	}

	stories, tasks, risks := result.Spec.Counts()
	fmt.Fprintf(out, "✓ Generated %d stories, %d tasks, and %d risks in %s\n\n",
		stories, tasks, risks, result.Duration.Round(time.Millisecond))
	if err := formatter.Format(result.Spec); err != nil {
		return err
	}
	printNextSteps(out, ux.NextStepsAfterGenerate(result.Spec.ID, result.Saved))
	return nil
}

func printNextSteps(w io.Writer, steps []string) {
	fmt.Fprintln(w, "\nNext steps:")
	for _, step := range steps {
		fmt.Fprintf(w, "  • %s\n", step)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func isText(format string) bool {
	return format == "" || format == "text"
}
