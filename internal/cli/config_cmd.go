// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigsh/internal/config"
	"github.com/jeranaias/rigsh/internal/ui/styles"
)

// newConfigCommand builds "rigsh config" and its subcommands.
func newConfigCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configTarget(opts)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return usageErrorf("config file already exists: %s (use --force to overwrite)", path)
			}
			if err := config.SaveToPath(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess("Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(opts); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), styles.RenderWarning(err.Error()))
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.Global().String())
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configTarget(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd, pathCmd)
	return cmd
}

// configTarget is the file the config subcommands operate on: --config, the
// existing file, or the default TOML location.
func configTarget(opts *Options) (string, error) {
	if opts.ConfigPath != "" {
		return opts.ConfigPath, nil
	}
	if path := config.FindPath(); path != "" {
		return path, nil
	}
	return config.ConfigPathTOML()
}

// loadConfig loads --config when given, otherwise the default locations. The
// returned config is never nil and becomes the process-wide config.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := readConfig(opts)
	config.SetGlobal(cfg)
	return cfg, err
}

func readConfig(opts *Options) (*config.Config, error) {
	if opts.ConfigPath == "" {
		return config.Load()
	}
	cfg, err := config.LoadFromPath(opts.ConfigPath)
	if err != nil {
		fallback := config.Default()
		fallback.ApplyEnvOverrides()
		fallback.SetDefaults()
		if errors.Is(err, os.ErrNotExist) {
			return fallback, fmt.Errorf("config file not found: %s", opts.ConfigPath)
		}
		return fallback, err
	}
	return cfg, nil
}
