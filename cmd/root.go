// Package cmd implements the stash command line.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codetesla51/stash/config"
	"github.com/codetesla51/stash/webstorage"
)

type app struct {
	configPath string
	session    bool

	logger  *zap.Logger
	client  *webstorage.Client
	closeFn func() error
}

func (a *app) storage() *webstorage.Storage {
	if a.session {
		return a.client.Session
	}
	return a.client.Local
}

func (a *app) open(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	a.logger, err = config.NewLogger(cfg)
	if err != nil {
		return err
	}

	a.client, a.closeFn, err = config.Open(cfg, a.logger)
	if err != nil {
		return err
	}

	a.logger.Debug("stores opened",
		zap.String("durable", cfg.Durable.Driver),
		zap.String("session", cfg.Session.Driver),
		zap.String("mode", cfg.Mode))
	return nil
}

// close syncs the logger and releases the stores. It is safe to call more
// than once.
func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
		a.logger = nil
	}
	if a.closeFn == nil {
		return nil
	}
	closeFn := a.closeFn
	a.closeFn = nil
	return closeFn()
}

// execute runs root and releases the stores even when the command failed,
// since cobra skips post-run hooks after a RunE error.
func (a *app) execute(root *cobra.Command) error {
	err := root.Execute()
	return errors.Join(err, a.close())
}

// NewRootCommand builds the stash command tree. Stores it opens are not
// released until Execute returns; use Execute outside of tests.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "stash",
		Short:             "Read and write durable or session storage with optional expiry",
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.session, "session", "s", false, "use the session store instead of the durable one")

	root.AddCommand(
		newGetCommand(a),
		newSetCommand(a),
		newRemoveCommand(a),
		newClearCommand(a),
		newKeysCommand(a),
		newKeyCommand(a),
		newLenCommand(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	a := &app{}
	return a.execute(newRootCommand(a))
}

func printJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
