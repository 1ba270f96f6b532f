package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/searchdemo/internal/domain/search/mode"
	"github.com/kailas-cloud/searchdemo/internal/version"
)

type rootOptions struct {
	env      string
	backend  string
	logLevel string
	noColor  bool
}

func main() {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:           "searchdemo",
		Short:         "Terminal client for a keyword / vector search backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.env, "env", "", "Config environment: local, dev, prod (default $ENV or local)")
	rootCmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "Search backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colours")

	var startMode string
	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start the interactive search prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := mode.Parse(startMode)
			if err != nil {
				return err
			}
			a, err := newApp(&opts)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runInteractive(cmd.Context(), m)
		},
	}
	interactiveCmd.Flags().StringVar(&startMode, "mode", string(mode.Default), "Initial search mode: keyword or vector")

	var searchMode string
	searchCmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Run one search and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mode.Parse(searchMode)
			if err != nil {
				return err
			}
			a, err := newApp(&opts)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runSearch(cmd.Context(), args, m)
		},
	}
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", string(mode.Default), "Search mode: keyword or vector")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(&opts)
			if err != nil {
				return err
			}
			defer a.close()
			return a.runHealth(cmd.Context())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}

	rootCmd.AddCommand(interactiveCmd, searchCmd, healthCmd, versionCmd)
	// Bare `searchdemo` starts the prompt.
	rootCmd.RunE = interactiveCmd.RunE
	rootCmd.Flags().AddFlagSet(interactiveCmd.Flags())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
