package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/api"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/cmd/util"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/config"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/publish"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/utils"
)

// guards the config values which are changed on config file reloads
var settingsMutex sync.Mutex

//nolint:funlen // by design
func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serves the manufacturer standings via HTTP and refreshes them periodically",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer(cmd)
		},
	}
	cmd.Flags().StringVarP(&config.ServerAddr,
		"addr",
		"a",
		"localhost:8080",
		"HTTP server listen address")
	cmd.Flags().StringVar(&config.RefreshInterval,
		"refresh-interval",
		"15m",
		"interval for recomputing the standings")
	cmd.Flags().StringSliceVar(&config.CORSOrigins,
		"cors-origins",
		[]string{"*"},
		"origins allowed to access the API")
	cmd.Flags().StringVar(&config.NatsURL,
		"nats-url",
		"",
		"if set, each result is published to this NATS server")
	cmd.Flags().StringVar(&config.NatsSubject,
		"nats-subject-prefix",
		publish.DefaultSubjectPrefix,
		"subject prefix for published results")
	cmd.Flags().StringVar(&config.WaitForServices,
		"wait-for-services",
		"15s",
		"Duration to wait for the NATS server to be ready")
	return cmd
}

//nolint:funlen,cyclop // by design
func startServer(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger, err := util.SetupLogger()
	if err != nil {
		return err
	}
	// validate before anything is started
	cfg, err := config.NewRunConfig(config.CurrentSettings())
	if err != nil {
		return err
	}
	util.LogConfig(cfg)
	interval, err := time.ParseDuration(config.RefreshInterval)
	if err != nil || interval <= 0 {
		return &model.ConfigurationError{
			Parameter: "refresh interval",
			Value:     config.RefreshInterval,
		}
	}

	shutdown := util.StartTelemetry(ctx, true)
	defer shutdown()

	opts := []RefresherOption{
		WithInterval(interval),
		WithRefreshLogger(logger.Named("refresh")),
	}
	if config.NatsURL != "" {
		waitForRequiredServices(ctx)
		pub, err := publish.Connect(config.NatsURL,
			publish.WithSubjectPrefix(config.NatsSubject),
			publish.WithLogger(logger.Named("nats")))
		if err != nil {
			log.Error("server could not be started", log.ErrorField(err))
			return err
		}
		defer pub.Close()
		opts = append(opts, WithPublisher(pub))
	}

	store := &api.Store{}
	refresher := NewRefresher(func() (Pipeline, model.SeriesFilter, error) {
		settingsMutex.Lock()
		defer settingsMutex.Unlock()
		runCfg, err := config.NewRunConfig(config.CurrentSettings())
		if err != nil {
			return nil, model.SeriesFilterAll, err
		}
		p := util.NewProcessor(runCfg, util.NewClient(runCfg, logger), logger)
		return p, runCfg.SeriesFilter, nil
	}, store, opts...)

	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Config file changed", log.String("file", e.Name), log.Stringer("op", e.Op))
		settingsMutex.Lock()
		config.ApplyValues(cmd.Flags(), viper.GetViper())
		settingsMutex.Unlock()
		refresher.Trigger()
	})
	if viper.ConfigFileUsed() != "" {
		viper.WatchConfig()
	}

	apiServer := api.NewServer(store, api.WithDefaultFilter(refresher.Filter))
	//nolint:gosec // by design
	server := &http.Server{
		Addr:              config.ServerAddr,
		Handler:           h2c.NewHandler(newCORS().Handler(apiServer.Handler()), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", log.String("addr", config.ServerAddr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	go refresher.Run(ctx)
	log.Info("Server started")

	select {
	case err := <-errChan:
		log.Error("server could not be started", log.ErrorField(err))
		return err
	case <-ctx.Done():
		log.Debug("Got signal", log.ErrorField(context.Cause(ctx)))
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown failed", log.ErrorField(err))
	}
	log.Info("Server terminated")
	return nil
}

func waitForRequiredServices(ctx context.Context) {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	addr, err := utils.AddrFromURL(config.NatsURL)
	if err != nil {
		log.Warn("Could not determine NATS address", log.ErrorField(err))
		return
	}
	if err := utils.WaitForTCP(ctx, addr, timeout); err != nil {
		log.Fatal("required services not ready", log.ErrorField(err))
	}
	log.Debug("Required services are available")
}

func newCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedOrigins: config.CORSOrigins,
		AllowedHeaders: []string{"*"},
		MaxAge:         7200, // 2 hours in seconds
	})
}
