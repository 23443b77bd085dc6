// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/galleria/internal/config"
	"github.com/tomtom215/galleria/internal/logging"
)

// options is shared by every subcommand.
type options struct {
	configPath string
	logLevel   string

	cfg *config.Config
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "galleria",
		Short: "Artwork recommendation engine",
		Long: `galleria ranks artworks from a precomputed feature space.

A seed item yields its most similar artworks, boosted toward the user's likes.
Without a seed, the user's likes are averaged into a taste profile and items
they already interacted with are pushed down the ranking.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: $CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newRecommendCmd(opts))
	cmd.AddCommand(newItemCmd(opts))
	cmd.AddCommand(newItemsCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newLikeCmd(opts))
	cmd.AddCommand(newUnlikeCmd(opts))
	cmd.AddCommand(newRateCmd(opts))
	cmd.AddCommand(newUserCmd(opts))

	return cmd
}

// load reads configuration and initializes the global logger.
func (o *options) load() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if err := o.applyOverrides(cfg); err != nil {
		return err
	}
	logging.Init(cfg.LoggingSettings())
	o.cfg = cfg
	return nil
}

// applyOverrides applies command-line overrides on top of loaded config.
func (o *options) applyOverrides(cfg *config.Config) error {
	if o.logLevel != "" {
		if !logging.ValidLevel(o.logLevel) {
			return fmt.Errorf("invalid --log-level %q", o.logLevel)
		}
		cfg.Logging.Level = o.logLevel
	}
	return nil
}

// watchedConfigPath is the file serve watches for changes, if any.
func (o *options) watchedConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.FindConfigFile()
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
