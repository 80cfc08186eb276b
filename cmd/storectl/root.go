/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/objectstore"
	"github.com/suparena/objectstore/config"
	"github.com/suparena/objectstore/models"
	"github.com/suparena/objectstore/registry"
)

// skipStore marks commands that run without opening the store.
const skipStore = "skip-store"

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	backend    string

	logger *zap.Logger
	store  *objectstore.Store
}

// execute runs one storectl invocation. The store is closed whatever the
// outcome, since cobra skips post-run hooks when a command fails.
func (a *app) execute(args []string, out io.Writer) error {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)

	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "storectl",
		Short: "Inspect and edit an object store",
		Long: `storectl loads every stored object, applies one command and saves the
registry back when the command changed it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipStore] == "true" {
				return nil
			}
			return a.open(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "Override the configured backend (file, sqlite, postgres, dynamodb, s3)")

	root.AddCommand(
		newVersionCmd(),
		newTypesCmd(a),
		newListCmd(a),
		newCountCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDestroyCmd(a),
		newCallCmd(a),
		newCheckCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Backend = a.backend
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.logger = logger

	types := registry.NewTypeRegistry()
	models.Register(types)

	store, err := objectstore.Open(cmd.Context(), cfg, types, objectstore.WithLogger(logger))
	if err != nil {
		return err
	}
	a.store = store
	return store.Reload(cmd.Context())
}

// close releases the store and flushes the logger. It is safe to call more
// than once.
func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
		a.logger = nil
	}
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
