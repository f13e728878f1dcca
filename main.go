package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetserver/src/api"
	"assetserver/src/config"
	"assetserver/src/utils"
	"assetserver/src/worker"
	workerhandlers "assetserver/src/worker/handlers"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Fatal("Error while loading config")
	}
	if err := config.ResolveSecretsFromAWS(cfg); err != nil {
		logrus.WithError(err).Fatal("Error while resolving secrets")
	}
	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)

	httpServer, stop, err := run(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Couldn't run")
	}

	errC := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Service.Port, "type": cfg.Service.Type}).Info("Starting server")
		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errC:
		logger.WithError(err).Error("Error while running")
	case sig := <-signals:
		logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Error while shutting down")
	}
}

// run builds the HTTP server for the configured service type. stop releases
// whatever the service started besides the listener.
func run(cfg *config.Config, logger *logrus.Logger) (*http.Server, func(), error) {
	if cfg.Service.Type == config.WORKER {
		handler, err := workerhandlers.NewHandler(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := handler.Controller.LoadAllImportSchedules(context.Background()); err != nil {
			return nil, nil, err
		}
		server := worker.NewServer(handler)
		return worker.NewHTTPServer(server, cfg.Service.Port, cfg.Imports.Timeout), handler.Controller.Stop, nil
	}

	server, err := api.NewServer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return api.NewHTTPServer(server, cfg.Service.Port), func() {}, nil
}
