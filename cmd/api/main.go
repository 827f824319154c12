package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/macro-estimator/internal/application"
	appnutrition "github.com/bryanwahyu/macro-estimator/internal/application/nutrition"
	"github.com/bryanwahyu/macro-estimator/internal/config"
	domain "github.com/bryanwahyu/macro-estimator/internal/domain/nutrition"
	"github.com/bryanwahyu/macro-estimator/internal/infra/ai/gemini"
	"github.com/bryanwahyu/macro-estimator/internal/infra/ai/ollama"
	"github.com/bryanwahyu/macro-estimator/internal/infra/ai/openai"
	"github.com/bryanwahyu/macro-estimator/internal/infra/ai/prompt"
	"github.com/bryanwahyu/macro-estimator/internal/infra/httpserver"
	"github.com/bryanwahyu/macro-estimator/internal/logging"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		logrus.Fatalf("config load error: %v", err)
	}
	logging.Init(cfg.Logging.Level, cfg.Logging.Format)

	completer, err := newCompleter(cfg)
	if err != nil {
		logrus.Fatalf("completer init error: %v", err)
	}

	name, key, required := cfg.Credential()
	if required && key == "" {
		// the server still starts; /api/analyze answers with the configuration error
		logrus.Warnf("%s is not set; analysis requests will fail", name)
	}

	svc := &appnutrition.Service{
		Completer:  completer,
		Prompt:     prompt.Nutrition,
		Credential: appnutrition.Credential{Name: name, Value: key, Optional: !required},
		Provider:   cfg.LLM.Provider,
		Clock:      application.SystemClock{},
	}

	handler := httpserver.NewRouter(svc, httpserver.Options{
		Logger:         logrus.StandardLogger(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxFoodLength:  cfg.Analysis.MaxFoodLength,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// run server
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":     srv.Addr,
			"provider": cfg.LLM.Provider,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logrus.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("shutdown error: %v", err)
	}
}

func newCompleter(cfg *config.Config) (domain.Completer, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLM.Model, cfg.LLM.BaseURL), nil
	case config.ProviderGemini:
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.LLM.Model), nil
	case config.ProviderOllama:
		return ollama.NewClient(cfg.LLM.OllamaHost, cfg.LLM.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
