// Package server exposes permutation lookup over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /v1/tiers/{tier}/permutations/{n}           size of the space
//	GET /v1/tiers/{tier}/permutations/{n}/random    uniformly random permutation
//	GET /v1/tiers/{tier}/permutations/{n}/{rank}    permutation at rank
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/reallyasi9/nthperm/internal/tiers"
)

// Space describes a permutation space.
type Space struct {
	Tier     int    `json:"tier"`
	Elements uint8  `json:"elements"`
	Total    string `json:"total"`
}

// Result is a decoded permutation.
type Result struct {
	Tier        int    `json:"tier"`
	Elements    uint8  `json:"elements"`
	Rank        string `json:"rank"`
	Permutation []int  `json:"permutation"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Server routes lookup requests to the tier runners.
type Server struct {
	router chi.Router
	logger *log.Logger
}

// New builds the router. Requests are logged to logger at debug level.
func New(logger *log.Logger) *Server {
	s := &Server{router: chi.NewRouter(), logger: logger}
	s.router.Use(middleware.RequestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	s.router.Route("/v1/tiers/{tier}/permutations/{n}", func(r chi.Router) {
		r.Get("/", s.handleSpace)
		r.Get("/random", s.handleRandom)
		r.Get("/{rank}", s.handleRank)
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"id", middleware.GetReqID(r.Context()),
			"elapsed", time.Since(start).Round(time.Microsecond))
	})
}

// space parses the tier and element count shared by every route.
func space(r *http.Request) (tiers.Runner, uint8, error) {
	tier, err := strconv.Atoi(chi.URLParam(r, "tier"))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid tier %q", chi.URLParam(r, "tier"))
	}
	runner, err := tiers.For(tier)
	if err != nil {
		return nil, 0, err
	}
	n, err := strconv.ParseUint(chi.URLParam(r, "n"), 10, 8)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid element count %q", chi.URLParam(r, "n"))
	}
	return runner, uint8(n), nil
}

func (s *Server) handleSpace(w http.ResponseWriter, r *http.Request) {
	runner, n, err := space(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}
	total, err := runner.Total(n)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, Space{Tier: runner.Tier(), Elements: n, Total: total.String()})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	runner, n, err := space(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}
	rank, ok := new(big.Int).SetString(chi.URLParam(r, "rank"), 10)
	if !ok || rank.Sign() < 0 {
		s.writeJSON(w, http.StatusBadRequest, errorBody{fmt.Sprintf("invalid rank %q", chi.URLParam(r, "rank"))})
		return
	}
	p, ok, err := runner.Nth(n, rank)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorBody{fmt.Sprintf("rank %v is outside the %d-element space", rank, n)})
		return
	}
	s.writeJSON(w, http.StatusOK, newResult(runner.Tier(), n, rank, p))
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	runner, n, err := space(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}
	p, rank, err := runner.Sample(n)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, newResult(runner.Tier(), n, rank, p))
}

func newResult(tier int, n uint8, rank *big.Int, p []uint8) Result {
	ints := make([]int, len(p))
	for i, v := range p {
		ints[i] = int(v)
	}
	return Result{Tier: tier, Elements: n, Rank: rank.String(), Permutation: ints}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", "err", err)
	}
}
