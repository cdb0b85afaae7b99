package main

import (
	"errors"
	"log"
	"net/http"

	"ebroker/src/api"
	"ebroker/src/config"
	"ebroker/src/database"
	"ebroker/src/repositories"
	"ebroker/src/utils"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	logger := utils.NewLogger(cfg.Logging.Level)

	var store repositories.Store
	if cfg.Store.Backend == config.MEMORY {
		store = repositories.NewMemoryStore()
	} else {
		pool, err := database.SetupDB(cfg)
		if err != nil {
			return nil, err
		}
		store = repositories.NewPostgresStore(pool)
	}

	server := api.NewServer(store, logger)
	httpServer := api.NewHTTPServer(server, cfg.Service.Port)

	go func() {
		logger.WithField("port", cfg.Service.Port).Info("starting e-broker server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or
		// Close, the returned error is ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("an error raised while setting up server")
			errC <- err
		}
	}()
	return errC, nil
}
