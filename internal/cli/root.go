// Package cli wires the ghostreach subcommands.
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xavierca1/ghostreach/internal/config"
	"github.com/xavierca1/ghostreach/internal/logger"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type app struct {
	settingsFile string
	debug        bool
	settings     config.Settings
	log          logger.Logger
}

// flagKeys maps command-line flags onto settings keys.
var flagKeys = map[string]string{
	"db":       "db",
	"vault":    "vault",
	"targets":  "targets",
	"config":   "market",
	"schedule": "schedule",
	"addr":     "addr",
	"sender":   "sender",
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ghostreach",
		Short:         "Harvest leads from public pages and run templated outreach",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.settingsFile, "settings", "", "settings file (default ./ghostreach.yaml when present)")
	pf.String("db", "", "lead store: sqlite file or postgres:// DSN (default leads.db)")
	pf.String("vault", "", "append log path (default vault/mirrorsentinel_vault.jsonl)")
	pf.String("sender", "", "outreach sender: log, smtp or amqp (default log)")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.vaultCommand(),
		a.harvestCommand(),
		a.outreachCommand(),
		a.runCommand(),
		a.mutateCommand(),
		a.daemonCommand(),
		a.serveCommand(),
		a.relayCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "ghostreach %s\n", Version)
			},
		},
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	_ = godotenv.Load()
	return NewRootCommand().ExecuteContext(context.Background())
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.NewViper(a.settingsFile)
	if err != nil {
		return err
	}

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", name, err)
			}
		}
	}
	if a.debug {
		v.Set("log.level", "debug")
		v.Set("log.development", true)
	}

	s, err := config.Load(v)
	if err != nil {
		return err
	}

	log, err := logger.New(s.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	a.settings = s
	a.log = log
	a.log.Debug("Settings loaded",
		logger.String("db", s.DB),
		logger.String("vault", s.Vault),
		logger.String("sender", s.Sender),
	)
	return nil
}
