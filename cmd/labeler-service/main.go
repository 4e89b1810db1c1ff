package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/labelworks/labeler/pkg/classifier"
	"github.com/labelworks/labeler/pkg/common/config"
	"github.com/labelworks/labeler/pkg/common/database"
	"github.com/labelworks/labeler/pkg/common/kafka"
	"github.com/labelworks/labeler/pkg/common/logger"
	"github.com/labelworks/labeler/pkg/labeling"
)

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer database.Close(db)

	repo := labeling.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate labeling tables")
	}

	rules, err := classifier.LoadRules(cfg.LabelRulesPath)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to load keyword rules, using built-in defaults")
	}

	var remote classifier.Classifier
	if cfg.LLMAPIKey != "" {
		remote = classifier.NewRemoteClassifier(classifier.RemoteConfig{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModelName,
			Timeout: cfg.LLMTimeout,
		})
	} else {
		logger.Log.Warn("LLM_API_KEY not set, labeling with keyword fallback only")
	}
	labeler := classifier.NewLabeler(remote, classifier.NewKeywordClassifier(rules))

	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 && cfg.LabelEventsTopic != "" {
		producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.LabelEventsTopic)
		defer producer.Close()
	}

	svc := labeling.NewService(repo, labeler, producer)
	handler := labeling.NewHTTPHandler(svc, cfg.MaxRequestBody)

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	handler.Register(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Labeler Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Labeler Service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Labeler Service stopped")
}
