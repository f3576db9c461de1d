package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/specflow/internal/domain"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
	"github.com/felixgeelhaar/specflow/internal/tui"
	"github.com/felixgeelhaar/specflow/internal/ux"
)

func newReviewCommand(a *app) *cobra.Command {
	var groupBy string

	cmd := &cobra.Command{
		Use:   "review <id>",
		Short: "Review and edit a spec interactively",
		Long: `Open a saved spec in an interactive editor.

Navigate with ↑/↓ (or j/k), move the selected item with K/J, cycle its
priority with p, edit its title with e, delete it with d, and change the
grouping with g. q saves and quits; esc or ctrl+c discards the edits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			groupName := firstNonEmpty(groupBy, a.cfg.Export.GroupBy)
			dim, err := domain.NewGroupBy(groupName)
			if err != nil {
				return sferrors.NewInvalidValueError("group-by", groupName, groupNames())
			}

			svc, err := a.workflow(ctx, false)
			if err != nil {
				return err
			}
			spec, err := svc.Get(ctx, args[0])
			if err != nil {
				return err
			}

			result, err := tui.RunReview(spec, dim)
			if err != nil {
				return err
			}

			switch {
			case result.Save && result.Changed:
				if _, err := svc.Replace(ctx, result.Spec); err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Saved changes to %s\n", ux.ShortID(spec.ID))
			case result.Changed:
				fmt.Fprintln(out, "Changes discarded.")
			default:
				fmt.Fprintln(out, "No changes.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&groupBy, "group-by", "", "initial grouping: type, priority, component, phase")
	return cmd
}
