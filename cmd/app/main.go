package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AbdulWasayUl/country-explorer/internal/config"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/internal/userstate"
	"github.com/AbdulWasayUl/country-explorer/services"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	data    *services.DataAccess
	backend userstate.Backend
)

var rootCmd = &cobra.Command{
	Use:           "country-explorer",
	Short:         "Browse, filter and compare countries",
	Long:          "Reads country reference data and World Bank indicators, caches them, and keeps favorites, recently viewed countries and a theme preference.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := logger.Configure(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
			return eris.Wrap(err, "init logger")
		}

		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		backend = b

		// cache entries share the state backend and outlive the command
		data = services.NewDataAccess(cfg, services.WithCacheStore(backend))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeBackend(context.WithoutCancel(cmd.Context()))
		logger.Sync()
	},
}

func openBackend(ctx context.Context) (userstate.Backend, error) {
	var (
		b   userstate.Backend
		err error
	)
	switch cfg.StateBackend {
	case config.BackendSQLite:
		b, err = userstate.OpenSQLite(ctx, cfg.StatePath)
	case config.BackendMongo:
		b, err = userstate.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoCollection)
	default:
		b = userstate.NewMemoryBackend()
	}
	if err != nil {
		return nil, eris.Wrap(err, "open state backend")
	}
	return b, nil
}

func closeBackend(ctx context.Context) {
	if backend == nil {
		return
	}
	if err := backend.Close(ctx); err != nil {
		logger.Warn("Closing state backend: %v", err)
	}
	backend = nil
}

// openStore opens the user state store on the shared backend.
func openStore(ctx context.Context) (*userstate.Store, error) {
	return userstate.Open(ctx, backend, cfg.StateKey)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeBackend(context.Background())
	if err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
