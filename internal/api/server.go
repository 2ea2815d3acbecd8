// Package api serves the trading engine over HTTP. GET endpoints are
// public (read-only observation of the active dataset); POST endpoints
// require a bearer token. A websocket endpoint streams engine events.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/cors"

	"github.com/talgya/tradewinds/internal/dataset"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/pricing"
	"github.com/talgya/tradewinds/internal/questions"
	"github.com/talgya/tradewinds/internal/store"
	"github.com/talgya/tradewinds/internal/trade"
)

// Server serves the engine state over HTTP.
type Server struct {
	Registry    *dataset.Registry
	Store       *store.DB
	Rng         *entropy.Source
	Hub         *Hub
	Port        int
	AdminKey    string // Bearer token for POST endpoints. Empty = POST disabled.
	CORSOrigins []string

	mu     sync.RWMutex
	season trade.Season
	deck   *questions.Deck
}

// SetSeason changes the engine's current season.
func (s *Server) SetSeason(season trade.Season) {
	s.mu.Lock()
	s.season = season
	s.mu.Unlock()
}

// CurrentSeason returns the engine's current season.
func (s *Server) CurrentSeason() trade.Season {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.season == "" {
		return trade.SeasonSpring
	}
	return s.season
}

// ReloadDeck rebuilds the question deck from a dataset's tables.
// Registered as a registry switch callback by the daemon.
func (s *Server) ReloadDeck(d *dataset.Dataset) {
	s.mu.Lock()
	s.deck = questions.NewDeck(d.Questions, s.Rng)
	s.mu.Unlock()
}

func (s *Server) currentDeck() *questions.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.deck == nil {
		return questions.NewDeck(nil, s.Rng)
	}
	return s.deck
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	marketLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/datasets", s.handleDatasets)
	mux.HandleFunc("/api/v1/settlements", s.handleSettlements)
	mux.HandleFunc("/api/v1/settlement/", s.handleSettlementRoutes(marketLimiter))
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/question", s.handleQuestion)
	mux.HandleFunc("/ws", s.Hub.ServeWS)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/dataset", s.adminOnly(s.handleSwitchDataset))
	mux.HandleFunc("/api/v1/season", s.adminOnly(s.handleSetSeason))

	allowed := append([]string{
		"http://localhost:5173",
		"http://localhost:3000",
	}, s.CORSOrigins...)
	c := cors.New(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, c.Handler(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no admin_key configured)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	return strings.HasPrefix(auth, prefix) && strings.TrimPrefix(auth, prefix) == s.AdminKey
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	active := s.Registry.Active()
	status := map[string]any{
		"name":     "Tradewinds",
		"season":   s.CurrentSeason(),
		"datasets": s.Registry.Names(),
	}
	if active != nil {
		status["active_dataset"] = active.Name
		status["settlements"] = len(active.Settlements)
		status["cargo_types"] = len(active.CargoTypes)
	}
	writeJSON(w, status)
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Settlements int    `json:"settlements"`
		CargoTypes  int    `json:"cargo_types"`
		Active      bool   `json:"active"`
	}
	var out []entry
	for _, name := range s.Registry.Names() {
		d, ok := s.Registry.Get(name)
		if !ok {
			continue
		}
		out = append(out, entry{
			Name:        d.Name,
			Description: d.Description,
			Settlements: len(d.Settlements),
			CargoTypes:  len(d.CargoTypes),
			Active:      name == s.Registry.ActiveName(),
		})
	}
	writeJSON(w, out)
}

// handleSettlements lists settlements, or resolves one by (possibly
// misspelled) name when ?q= is given.
func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	active := s.Registry.Active()
	if active == nil {
		http.Error(w, "no active dataset", http.StatusServiceUnavailable)
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		found, ok := active.FindSettlement(q)
		if !ok {
			http.Error(w, fmt.Sprintf("no settlement matching %q", q), http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{
			"settlement": found,
			"properties": trade.ResolveProperties(found),
		})
		return
	}

	type entry struct {
		Name       string   `json:"name"`
		Region     string   `json:"region,omitempty"`
		Size       int      `json:"size"`
		Wealth     int      `json:"wealth"`
		Population int      `json:"population"`
		Flags      []string `json:"flags,omitempty"`
	}
	out := make([]entry, 0, len(active.Settlements))
	for _, st := range active.Settlements {
		props := trade.ResolveProperties(st)
		out = append(out, entry{
			Name:       st.Name,
			Region:     st.Region,
			Size:       props.SizeNumeric,
			Wealth:     props.WealthNumeric,
			Population: props.Population,
			Flags:      st.Flags,
		})
	}
	writeJSON(w, out)
}

// handleSettlementRoutes dispatches /api/v1/settlement/{name} and its
// /slots and /market subroutes.
func (s *Server) handleSettlementRoutes(marketLimiter *RateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := s.Registry.Active()
		if active == nil {
			http.Error(w, "no active dataset", http.StatusServiceUnavailable)
			return
		}

		rest := strings.TrimPrefix(r.URL.Path, "/api/v1/settlement/")
		name, sub, _ := strings.Cut(rest, "/")
		st, ok := active.FindSettlement(name)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown settlement %q", name), http.StatusNotFound)
			return
		}

		switch sub {
		case "":
			s.serveSettlementDetail(w, active, st)
		case "slots":
			s.serveSlots(w, r, active, st)
		case "market":
			RateLimitMiddleware(marketLimiter, func(w http.ResponseWriter, r *http.Request) {
				s.serveMarket(w, r, active, st)
			})(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

func (s *Server) serveSettlementDetail(w http.ResponseWriter, d *dataset.Dataset, st trade.Settlement) {
	writeJSON(w, map[string]any{
		"settlement": st,
		"properties": trade.ResolveProperties(st),
		"modifiers":  trade.ComposeFlagEffects(st, d.Flags),
	})
}

// querySeason picks the season from ?season=, falling back to the
// engine's current season on absence or garbage.
func (s *Server) querySeason(r *http.Request) trade.Season {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return s.CurrentSeason()
	}
	season, err := trade.ParseSeason(raw)
	if err != nil {
		slog.Warn("bad season in query, using current", "raw", raw)
		return s.CurrentSeason()
	}
	return season
}

func (s *Server) serveSlots(w http.ResponseWriter, r *http.Request, d *dataset.Dataset, st trade.Settlement) {
	season := s.querySeason(r)
	res, err := trade.CalculateCargoSlots(st, season, &d.Config.CargoSlots)
	if err != nil {
		// Degrade to a zero display value; the calculation boundary
		// already surfaced the defect in the log.
		slog.Warn("cargo slot calculation failed", "settlement", st.Name, "error", err)
		writeJSON(w, trade.SlotResult{})
		return
	}
	writeJSON(w, map[string]any{
		"settlement": st.Name,
		"season":     season,
		"slots":      res.Slots,
		"steps":      res.Steps,
	})
}

func (s *Server) serveMarket(w http.ResponseWriter, r *http.Request, d *dataset.Dataset, st trade.Settlement) {
	season := s.querySeason(r)
	view, err := pricing.BuildMarket(st, season, d, s.Rng)
	if err != nil {
		slog.Warn("market build failed", "settlement", st.Name, "season", season, "error", err)
		writeJSON(w, pricing.MarketView{Settlement: st.Name, Season: season})
		return
	}

	if s.Store != nil {
		if err := s.Store.SaveSnapshot(d.Name, view); err != nil {
			slog.Warn("snapshot save failed", "settlement", st.Name, "error", err)
		}
	}
	s.Hub.Broadcast(WireEvent{Type: "market_refresh", Payload: map[string]any{
		"settlement": st.Name,
		"season":     season,
	}})
	writeJSON(w, view)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeJSON(w, []store.Event{})
		return
	}
	events, err := s.Store.RecentEvents(50)
	if err != nil {
		slog.Warn("event log read failed", "error", err)
		writeJSON(w, []store.Event{})
		return
	}
	writeJSON(w, events)
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	deck := s.currentDeck()
	category := r.URL.Query().Get("category")
	if category == "" {
		writeJSON(w, map[string]any{"categories": deck.Categories()})
		return
	}
	q, err := deck.Draw(category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"category": category, "question": q})
}

func (s *Server) handleSwitchDataset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "expected body {\"name\": ...}", http.StatusBadRequest)
		return
	}

	if err := s.Registry.Switch(req.Name); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if s.Store != nil {
		if err := s.Store.SetMeta("active_dataset", req.Name); err != nil {
			slog.Warn("persist active dataset failed", "error", err)
		}
		if err := s.Store.LogEvent("dataset_switch", "switched to "+req.Name); err != nil {
			slog.Warn("event log write failed", "error", err)
		}
	}
	s.Hub.Broadcast(WireEvent{Type: "dataset_switch", Payload: map[string]any{"name": req.Name}})
	slog.Info("dataset switched", "name", req.Name)
	writeJSON(w, map[string]any{"active_dataset": req.Name})
}

func (s *Server) handleSetSeason(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Season string `json:"season"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "expected body {\"season\": ...}", http.StatusBadRequest)
		return
	}
	season, err := trade.ParseSeason(req.Season)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.SetSeason(season)
	if s.Store != nil {
		if err := s.Store.SetMeta("season", string(season)); err != nil {
			slog.Warn("persist season failed", "error", err)
		}
		if err := s.Store.LogEvent("season_change", "season set to "+string(season)); err != nil {
			slog.Warn("event log write failed", "error", err)
		}
	}
	s.Hub.Broadcast(WireEvent{Type: "season_change", Payload: map[string]any{"season": season}})
	slog.Info("season changed", "season", season)
	writeJSON(w, map[string]any{"season": season})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
