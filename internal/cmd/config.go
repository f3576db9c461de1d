package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/specflow/internal/config"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
)

func newConfigCommand(a *app) *cobra.Command {
	lenient := map[string]string{annotationLenient: "true"}

	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Inspect or create the configuration file",
		Annotations: lenient,
	}

	path := &cobra.Command{
		Use:         "path",
		Short:       "Print the config file location",
		Args:        cobra.NoArgs,
		Annotations: lenient,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.targetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	view := &cobra.Command{
		Use:         "view",
		Short:       "Print the effective configuration",
		Args:        cobra.NoArgs,
		Annotations: lenient,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the default settings",
		Args:        cobra.NoArgs,
		Annotations: lenient,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.targetConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(p); err == nil && !force {
				return sferrors.New(sferrors.ErrCodeInvalidValue, fmt.Sprintf("config file already exists: %s", p)).
					WithSuggestion("Use --force to overwrite it")
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return sferrors.NewConfigLoadError(p, err)
			}

			if err := config.Write(config.Default(), p); err != nil {
				return sferrors.NewConfigLoadError(p, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", p)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	cmd.AddCommand(path, view, initCmd)
	return cmd
}

// targetConfigPath is the file named by --config, or the default location.
func (a *app) targetConfigPath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	p, err := config.DefaultPath()
	if err != nil {
		return "", sferrors.NewConfigLoadError("~/"+config.DirName, err)
	}
	return p, nil
}
