package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"voice-trends-go/internal/alerts"
	"voice-trends-go/internal/api"
	"voice-trends-go/internal/config"
	"voice-trends-go/internal/copilot"
	"voice-trends-go/internal/dashboard"
	"voice-trends-go/internal/dataset"
	"voice-trends-go/internal/logger"
	"voice-trends-go/internal/metrics"
	"voice-trends-go/internal/store"
	"voice-trends-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	cfg := config.Load()
	log := logger.NewWith(cfg.Environment, cfg.LogLevel, os.Stdout)
	log.WithField("env", cfg.Environment).Info("starting service")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	calls := store.New(func() ([]types.CallRecord, error) {
		return dataset.Load(cfg.DatasetPath)
	}, log.Entry)
	calls.OnLoad = m.SetStoreRecords

	// warm the snapshot so a bad dataset shows up at boot, not on the first request
	dsLog := log.Component("dataset")
	if n, err := calls.Len(); err != nil {
		dsLog.WithError(err).WithField("dataset_path", cfg.DatasetPath).Error("dataset not loaded")
	} else {
		all, _ := calls.Filter(time.Time{}, time.Now().Add(24*time.Hour))
		s := dataset.Summarize(all)
		dsLog.WithFields(map[string]any{
			"dataset_path": cfg.DatasetPath,
			"total_calls":  n,
			"complaints":   s.Complaints,
			"agents":       s.Agents,
			"top_intents":  s.TopIntents,
		}).Info("dataset loaded")
	}

	var completer copilot.Completer
	if cfg.Copilot.APIKey != "" {
		completer = copilot.NewOpenAIClient(cfg.Copilot.BaseURL, cfg.Copilot.APIKey,
			cfg.Copilot.Timeout, cfg.Copilot.MaxRetries, log.Entry)
	} else {
		log.Warn("OPENAI_API_KEY not set, copilot uses keyword matching only")
	}
	resolver := copilot.NewResolver(completer, cfg.Copilot.Model, log.Entry, copilot.WithObserver(m))

	svc := dashboard.New(calls, alerts.Config{
		ComplaintThreshold: cfg.Alerts.ComplaintThreshold,
		Window:             cfg.Alerts.Window,
	}, log.Entry)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(svc, resolver, m, log).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
