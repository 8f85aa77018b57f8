package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PaulCertified/medical-code-prediction/pkg/auth"
	"github.com/PaulCertified/medical-code-prediction/pkg/coding"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/config"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/database"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/kafka"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/logger"
	"github.com/PaulCertified/medical-code-prediction/pkg/common/models"
	"github.com/PaulCertified/medical-code-prediction/pkg/inference"
	"github.com/PaulCertified/medical-code-prediction/pkg/middleware"
	"github.com/PaulCertified/medical-code-prediction/pkg/observability/metrics"
	"github.com/PaulCertified/medical-code-prediction/pkg/terminology"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init()
	metrics.Init()
	cfg := config.Load()

	icd10 := terminology.LoadCodebook(models.CodeTypeICD10, cfg.ICD10CodesPath)
	cpt := terminology.LoadCodebook(models.CodeTypeCPT, cfg.CPTCodesPath)
	metrics.ObserveCodebookSizes(icd10.Len(), cpt.Len())

	opts := []coding.Option{}

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Warn("Postgres unavailable, prediction records will not be persisted")
	} else {
		repo := coding.NewRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			logger.Log.WithError(err).Fatal("Failed to migrate prediction tables")
		}
		opts = append(opts, coding.WithRepository(repo))
	}

	if redisClient := database.GetRedis(); redisClient != nil {
		opts = append(opts, coding.WithCache(coding.NewCache(redisClient, cfg.PredictionCacheTTL)))
	}

	producer := kafka.NewProducer(cfg.AuditTopic)
	defer producer.Close()
	opts = append(opts, coding.WithProducer(producer))

	if cfg.InferenceEndpoint != "" {
		opts = append(opts, coding.WithRemote(
			inference.New(cfg.InferenceEndpoint, cfg.InferenceTimeout, cfg.InferenceRetries),
		))
	}

	service := coding.NewService(cfg, icd10, cpt, opts...)

	oidcAuth, err := auth.NewOIDCAuthenticator(cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret)
	if err != nil {
		logger.Log.WithError(err).Warn("OIDC authentication not configured, running without auth")
	}

	router := mux.NewRouter()
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS)
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(middleware.BodyLimit(cfg.MaxRequestBody))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods("GET")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	if oidcAuth != nil {
		apiRouter.Use(middleware.Authenticate(oidcAuth))
	}
	coding.NewHTTPHandler(service, cfg.MaxRequestBody).Register(apiRouter)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := service.Cleanup(context.Background()); err != nil {
					logger.Log.WithError(err).Warn("record cleanup failed")
				}
			case <-runCtx.Done():
				return
			}
		}
	}()

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host":        cfg.ServerHost,
			"port":        cfg.ServerPort,
			"icd10_codes": icd10.Len(),
			"cpt_codes":   cpt.Len(),
		}).Info("Coding Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Coding Service...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	database.ClosePostgres()
	database.CloseRedis()

	logger.Log.Info("Coding Service stopped")
}
