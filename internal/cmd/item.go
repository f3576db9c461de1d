package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/domain"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
	"github.com/felixgeelhaar/specflow/internal/ux"
)

func newItemCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Edit, delete, or reorder stories and tasks",
		Long: `Edit the stories and tasks of a saved spec.

Spec and item ids may be any unique prefix; 'specflow show <id>' lists them.`,
	}

	cmd.AddCommand(
		newItemEditCommand(a),
		newItemDeleteCommand(a),
		newItemMoveCommand(a),
	)
	return cmd
}

type itemEditOptions struct {
	title       string
	description string
	priority    string
	component   string
	phase       string
}

func newItemEditCommand(a *app) *cobra.Command {
	opts := &itemEditOptions{}

	cmd := &cobra.Command{
		Use:   "edit <spec-id> <item-id>",
		Short: "Change the fields of a story or task",
		Example: `  specflow item edit 3f2a 9b1c --title "Export dashboard as PDF" --priority high
  specflow item edit 3f2a 9b1c --component backend --phase development`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := opts.patch(cmd)
			if err != nil {
				return err
			}

			svc, err := a.workflow(cmd.Context(), false)
			if err != nil {
				return err
			}
			spec, err := svc.UpdateItem(cmd.Context(), args[0], args[1], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated item %s in %s\n", args[1], ux.ShortID(spec.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "new title")
	cmd.Flags().StringVar(&opts.description, "description", "", "new description")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "high, medium, or low")
	cmd.Flags().StringVar(&opts.component, "component", "", "frontend, backend, design, testing, or devops")
	cmd.Flags().StringVar(&opts.phase, "phase", "", "planning, development, testing, or deployment")
	return cmd
}

// patch builds an item patch from the flags that were set.
func (o *itemEditOptions) patch(cmd *cobra.Command) (backlog.ItemPatch, error) {
	var patch backlog.ItemPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		if o.title == "" {
			return patch, sferrors.New(sferrors.ErrCodeInvalidValue, "title cannot be empty")
		}
		patch.Title = &o.title
	}
	if flags.Changed("description") {
		patch.Description = &o.description
	}
	if flags.Changed("priority") {
		p, err := domain.NewPriority(o.priority)
		if err != nil {
			return patch, sferrors.NewInvalidValueError("priority", o.priority, names(domain.Priorities))
		}
		patch.Priority = &p
	}
	if flags.Changed("component") {
		c, err := domain.NewComponent(o.component)
		if err != nil {
			return patch, sferrors.NewInvalidValueError("component", o.component, names(domain.Components))
		}
		patch.Component = &c
	}
	if flags.Changed("phase") {
		p, err := domain.NewPhase(o.phase)
		if err != nil {
			return patch, sferrors.NewInvalidValueError("phase", o.phase, names(domain.Phases))
		}
		patch.Phase = &p
	}

	if patch.IsEmpty() {
		return patch, sferrors.New(sferrors.ErrCodeInvalidValue, "nothing to change").
			WithSuggestion("Pass at least one of --title, --description, --priority, --component, --phase")
	}
	return patch, nil
}

func newItemDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <spec-id> <item-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a story or task",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.workflow(cmd.Context(), false)
			if err != nil {
				return err
			}
			spec, err := svc.DeleteItem(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			stories, tasks, _ := spec.Counts()
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted item %s (%d stories, %d tasks left)\n", args[1], stories, tasks)
			return nil
		},
	}
}

func newItemMoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <spec-id> <item-id> <target-item-id>",
		Short: "Move an item to the position of another item",
		Long: `Move an item to the position the target item holds in the combined
story-then-task order. Stories stay stories and tasks stay tasks, so moving
across the boundary only changes order within each kind.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.workflow(cmd.Context(), false)
			if err != nil {
				return err
			}
			if _, err := svc.MoveItem(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Moved item %s to the position of %s\n", args[1], args[2])
			return nil
		},
	}
}

func newRiskCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Edit the risks of a spec",
	}

	var text string
	edit := &cobra.Command{
		Use:   "edit <spec-id> <risk-id>",
		Short: "Replace the text of a risk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.workflow(cmd.Context(), false)
			if err != nil {
				return err
			}
			if _, err := svc.UpdateRisk(cmd.Context(), args[0], args[1], text); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated risk %s\n", args[1])
			return nil
		},
	}
	edit.Flags().StringVar(&text, "text", "", "new risk text")
	_ = edit.MarkFlagRequired("text")

	cmd.AddCommand(edit)
	return cmd
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
