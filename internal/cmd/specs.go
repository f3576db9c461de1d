package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/ux"
)

func newListCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved specs, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
			if err != nil {
				return err
			}

			svc, err := a.workflow(cmd.Context(), false)
			if err != nil {
				return err
			}
			specs, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			if !isText(format) {
				return formatter.Format(specs)
			}
			return printSpecTable(cmd.OutOrStdout(), specs)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return cmd
}

func printSpecTable(out io.Writer, specs []*backlog.Spec) error {
	if len(specs) == 0 {
		fmt.Fprintln(out, "No saved specs. Run 'specflow generate' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tFEATURE\tTEMPLATE\tSTORIES\tTASKS\tRISKS\tCREATED\t")
	for _, s := range specs {
		stories, tasks, risks := s.Counts()
		name := s.FeatureName
		if s.Modified() {
			name += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t\n",
			ux.ShortID(s.ID), name, s.Template, stories, tasks, risks,
			s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, s := range specs {
		if s.Modified() {
			fmt.Fprintln(out, "\n* edited since generation")
			break
		}
	}
	return nil
}

func newShowCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved spec with item and risk ids",
		Long: `Show a saved spec. The id may be any unique prefix of the full id.

Text output lists every story, task, and risk with the short id used by the
item and risk commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := ux.NewFormatter(format, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
			if err != nil {
				return err
			}

			svc, err := a.workflow(cmd.Context(), false)
			if err != nil {
				return err
			}
			spec, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !isText(format) {
				return formatter.Format(spec)
			}
			printSpecDetail(cmd.OutOrStdout(), spec)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return cmd
}

func printSpecDetail(out io.Writer, s *backlog.Spec) {
	fmt.Fprintf(out, "%s\n%s\n", s.FeatureName, strings.Repeat("=", len([]rune(s.FeatureName))))
	fmt.Fprintf(out, "ID:           %s\n", s.ID)
	fmt.Fprintf(out, "Created:      %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Template:     %s\n", s.Template)
	fmt.Fprintf(out, "Goal:         %s\n", s.Goal)
	fmt.Fprintf(out, "Target users: %s\n", s.TargetUsers)
	if s.Constraints != "" {
		fmt.Fprintf(out, "Constraints:  %s\n", s.Constraints)
	}
	if s.Modified() {
		fmt.Fprintln(out, "Status:       edited since generation")
	}

	printItems(out, "STORIES", s.Stories)
	printItems(out, "TASKS", s.Tasks)

	fmt.Fprintf(out, "\nRISKS (%d)\n", len(s.Risks))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range s.Risks {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ux.ShortID(r.ID), r.Type, r.Text)
	}
	_ = w.Flush()
}

func printItems(out io.Writer, heading string, items []backlog.Item) {
	fmt.Fprintf(out, "\n%s (%d)\n", heading, len(items))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\t[%s]\t%s\t%s/%s\n",
			ux.ShortID(item.ID), item.Priority, item.Title, item.Component, item.Phase)
	}
	_ = w.Flush()
}

func newDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved spec",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			svc, err := a.workflow(ctx, false)
			if err != nil {
				return err
			}
			spec, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes && !ux.Confirm(a.stdin, out, fmt.Sprintf("Delete %q (%s)?", spec.FeatureName, ux.ShortID(spec.ID)), false) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}

			id, err := svc.Delete(ctx, spec.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Deleted %s\n", ux.ShortID(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
