package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/specflow/internal/domain"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
	"github.com/felixgeelhaar/specflow/internal/export"
)

type exportOptions struct {
	format  string
	groupBy string
	out     string
	preview bool
	width   int
}

func newExportCommand(a *app) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a spec as Markdown or plain text",
		Long: `Export a saved spec. Stories and tasks are grouped by type, priority,
component, or phase, followed by the risks.

By default the export is written to <feature_name>_spec.md (or .txt) in the
current directory. Use --out - to print it instead, or --preview to render the
Markdown in the terminal.`,
		Example: `  specflow export 3f2a9c1e
  specflow export 3f2a --group-by phase --out backlog.md
  specflow export 3f2a --format text --out -
  specflow export 3f2a --preview`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "export format: markdown, text (default from config)")
	cmd.Flags().StringVar(&opts.groupBy, "group-by", "", "group by: type, priority, component, phase (default from config)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file, or - for stdout")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "render Markdown in the terminal instead of writing a file")
	cmd.Flags().IntVar(&opts.width, "width", export.DefaultPreviewWidth, "word wrap width for --preview")

	return cmd
}

func runExport(cmd *cobra.Command, a *app, opts *exportOptions, ref string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	formatName := firstNonEmpty(opts.format, a.cfg.Export.Format)
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	groupName := firstNonEmpty(opts.groupBy, a.cfg.Export.GroupBy)
	groupBy, err := domain.NewGroupBy(groupName)
	if err != nil {
		return sferrors.NewInvalidValueError("group-by", groupName, groupNames())
	}
	if opts.preview && format != export.FormatMarkdown {
		return sferrors.NewInvalidValueError("format", string(format), []string{string(export.FormatMarkdown)}).
			WithSuggestion("--preview renders Markdown only")
	}

	svc, err := a.workflow(ctx, false)
	if err != nil {
		return err
	}
	spec, err := svc.Get(ctx, ref)
	if err != nil {
		return err
	}

	content, err := export.Render(spec, format, groupBy)
	if err != nil {
		return err
	}

	if opts.preview {
		rendered, err := export.Preview(content, opts.width)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	}

	if opts.out == "-" {
		_, err := fmt.Fprint(out, content)
		return err
	}

	path := opts.out
	if path == "" {
		path = export.Filename(spec, format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return sferrors.NewExportWriteError(path, err)
		}
	}
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return sferrors.NewExportWriteError(path, err)
	}

	a.logger.InfoContext(ctx, "exported spec", "spec_id", spec.ID, "path", path, "format", string(format))
	fmt.Fprintf(out, "✓ Exported %s to %s\n", spec.FeatureName, path)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func groupNames() []string {
	names := make([]string, len(domain.GroupDimensions))
	for i, g := range domain.GroupDimensions {
		names[i] = string(g)
	}
	return names
}
