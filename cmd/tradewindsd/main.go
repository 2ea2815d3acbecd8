// Command tradewindsd runs the Tradewinds settlement trading engine.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/tradewinds/internal/api"
	"github.com/talgya/tradewinds/internal/config"
	"github.com/talgya/tradewinds/internal/dataset"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/store"
	"github.com/talgya/tradewinds/internal/trade"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Datasets ─────────────────────────────────────────────────────
	registry := dataset.NewRegistry()

	loaded, err := dataset.LoadDir(cfg.DatasetDir)
	if err != nil {
		slog.Error("dataset load failed", "dir", cfg.DatasetDir, "error", err)
		os.Exit(1)
	}
	if len(loaded) == 0 {
		slog.Info("no datasets on disk, using built-in standard dataset")
		loaded = []*dataset.Dataset{dataset.Default()}
	}
	for _, d := range loaded {
		registry.Add(d)
		if err := db.SaveDataset(d.Name, d.Raw()); err != nil {
			slog.Warn("dataset persist failed", "name", d.Name, "error", err)
		}
		slog.Info("dataset loaded",
			"name", d.Name,
			"settlements", len(d.Settlements),
			"cargo_types", len(d.CargoTypes),
			"flags", len(d.Flags),
		)
	}

	// Restore the previously active dataset and season.
	if name, err := db.GetMeta("active_dataset"); err == nil && name != "" {
		if err := registry.Switch(name); err != nil {
			slog.Warn("saved active dataset missing, using first", "name", name)
		}
	}
	season := trade.Season(cfg.Season)
	if saved, err := db.GetMeta("season"); err == nil && saved != "" {
		if parsed, err := trade.ParseSeason(saved); err == nil {
			season = parsed
		}
	}

	// ── API ──────────────────────────────────────────────────────────
	hub := api.NewHub()
	go hub.Run()

	server := &api.Server{
		Registry:    registry,
		Store:       db,
		Rng:         entropy.New(cfg.Seed),
		Hub:         hub,
		Port:        cfg.ListenPort,
		AdminKey:    cfg.AdminKey,
		CORSOrigins: cfg.CORSOrigins,
	}
	server.SetSeason(season)
	server.ReloadDeck(registry.Active())
	registry.OnSwitch(server.ReloadDeck)

	server.Start()
	slog.Info("engine ready",
		"active_dataset", registry.ActiveName(),
		"season", season,
		"port", cfg.ListenPort,
	)

	// ── Shutdown ─────────────────────────────────────────────────────
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	if err := db.SetMeta("active_dataset", registry.ActiveName()); err != nil {
		slog.Warn("persist active dataset failed", "error", err)
	}
	if err := db.SetMeta("season", string(server.CurrentSeason())); err != nil {
		slog.Warn("persist season failed", "error", err)
	}
	slog.Info("shutdown complete")
}
