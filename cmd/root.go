package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/hashboard/internal/config"
	"github.com/abhisek/hashboard/internal/logging"
	"github.com/abhisek/hashboard/internal/notify"
	cfg "github.com/abhisek/hashboard/internal/settings"
	"github.com/abhisek/hashboard/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "hashboard",
	Short: "AI-powered project dashboard for the terminal",
	Long:  "hashboard: a terminal dashboard for project timelines, AI agent status, quick actions and alerts, with a guided tour.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HASHBOARD_DB env var)")

	rootCmd.AddCommand(tourCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then HASHBOARD_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, conf config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if conf.DBPath != "" {
		return conf.DBPath, store.EnsureDir(conf.DBPath)
	}
	return store.DefaultDBPath()
}

// env is what every command that touches the store needs.
type env struct {
	conf   config.Config
	dbPath string
	store  *store.Store
	logger *zap.Logger
}

// openEnv loads the config, opens the logger and the store. Callers must
// call close.
func openEnv(cmd *cobra.Command) (*env, error) {
	conf, err := config.Load()
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, conf)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logPath := conf.LogFile
	if logPath == "" {
		logPath = logging.DefaultPath(dbPath)
	}
	logger, err := logging.New(logPath, conf.LogLevel)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))
	return &env{conf: conf, dbPath: dbPath, store: st, logger: logger}, nil
}

func (e *env) close() {
	_ = e.store.Close()
	_ = e.logger.Sync()
}

// center builds the notification center, persisting to the event log.
func (e *env) center() *notify.Center {
	return notify.NewCenter(
		notify.WithTTL(e.conf.NotifyTTL),
		notify.WithCapacity(e.conf.NotifyCap),
		notify.WithRecorder(e.store.EventRepo()),
		notify.WithLogger(e.logger),
	)
}

func (e *env) settings(notifier notify.Emitter) *cfg.Service {
	return cfg.NewService(e.store.PreferenceRepo(), notifier, e.logger)
}
