package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk"
	"github.com/kailas-cloud/vecdesk/internal/config"
	logpkg "github.com/kailas-cloud/vecdesk/internal/logger"
)

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	client *vecdesk.Client
}

// NewRootCmd creates the vecdesk command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "vecdesk",
		Short:         "Browse and edit a vector store from the terminal",
		Long:          "vecdesk lists collections, pages and searches objects, and edits schema and data of a vector store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = logpkg.FromContext(cmd.Context()).Sync()
		},
	}

	root.PersistentFlags().String("env", "", "environment name selecting config/<env>.yaml (default local)")
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("settings", "", "path to the connection settings file")

	root.AddCommand(
		newConfigCmd(a),
		newCollectionsCmd(a),
		newObjectsCmd(a),
		newSearchCmd(a),
		newStatusCmd(a),
		newVersionCmd(),
	)
	return root
}

// init resolves flags and VECDESK_* variables, loads the config and builds
// the client. Precedence: flag > env > config file > defaults. The logger
// rides on the command context; subcommands read it with logpkg.FromContext.
func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("VECDESK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	env := a.v.GetString("env")
	if env == "" {
		env = "local"
	}

	var err error
	if path := a.v.GetString("config"); path != "" {
		a.cfg, err = config.LoadFile(path)
	} else {
		a.cfg, err = config.Load(env)
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if lvl := a.v.GetString("log-level"); lvl != "" {
		a.cfg.Logging.Level = lvl
	}
	if path := a.v.GetString("settings"); path != "" {
		a.cfg.Settings.Path = path
	}

	logger, err := logpkg.NewLogger(env, a.cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logpkg.ContextWithLogger(ctx, logger))

	a.client, err = newClient(a.cfg, logger)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	logger.Debug("Client ready",
		zap.String("env", env),
		zap.String("settings", a.cfg.Settings.Path),
		zap.Bool("embedding", a.cfg.Embedding.Enabled()),
	)
	return nil
}

func newClient(cfg config.Config, logger *zap.Logger) (*vecdesk.Client, error) {
	store, err := vecdesk.FileSettings(cfg.Settings.Path, cfg.Settings.KeyringService, logger)
	if err != nil {
		return nil, err
	}
	opts := []vecdesk.Option{
		vecdesk.WithSettings(store),
		vecdesk.WithLogger(logger),
		vecdesk.WithCountConcurrency(cfg.Listing.CountConcurrency),
		vecdesk.WithDefaultSearchLimit(cfg.Search.DefaultLimit),
	}
	if e := cfg.Embedding; e.Enabled() {
		opts = append(opts, vecdesk.WithEmbedder(vecdesk.NewOpenAIEmbedder(vecdesk.OpenAIEmbedderConfig{
			APIKey:      e.APIKey,
			BaseURL:     e.BaseURL,
			Model:       e.Model,
			Dimensions:  e.Dimensions,
			Provider:    e.Provider,
			Instruction: e.Instruction,
			Logger:      logger,
		})))
	}
	return vecdesk.New(opts...)
}
