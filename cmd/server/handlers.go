package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"portfoliotracker/internal/aggregate"
	"portfoliotracker/internal/provider"
	"portfoliotracker/internal/symbols"
)

// quoteAggregator is the part of aggregate.Aggregator the handlers use.
type quoteAggregator interface {
	Aggregate(ctx context.Context, symbols []string) (aggregate.Response, error)
}

type server struct {
	agg            quoteAggregator
	logger         *zap.Logger
	maxSymbols     int
	requestTimeout time.Duration
	staticDir      string
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	OK bool   `json:"ok"`
	TS string `json:"ts"`
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/prices", s.handlePrices)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	if s.staticDir != "" {
		mux.Handle("/", spa(s.staticDir))
	} else {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not found")
		})
	}
	return logRequests(s.logger, withCORS(withGzip(recoverPanic(s.logger, mux))))
}

// handlePrices answers GET /api/prices?symbols=AAPL,BTC. Repeated symbols
// parameters are joined. Symbols nobody could price are simply absent.
func (s *server) handlePrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	syms := symbols.SplitParam(r.URL.Query()["symbols"]...)
	if len(syms) > s.maxSymbols {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("too many symbols (max %d)", s.maxSymbols))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	resp, err := s.agg.Aggregate(ctx, syms)
	if err != nil {
		s.logger.Error("aggregate failed", zap.Int("symbols", len(syms)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{OK: true, TS: provider.ISO(time.Now())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
