// Package server is the HTTP transport: the slash-command entry point,
// the ad-hoc rating endpoint, snapshot serving and telemetry ingest.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/example/hausbot/internal/command"
	"github.com/example/hausbot/internal/elo"
	"github.com/example/hausbot/internal/external"
	"github.com/example/hausbot/internal/slack"
)

// Server serves the hausbot HTTP API.
type Server struct {
	token    string
	dataDir  string
	router   *command.Router
	replies  *slack.Client
	geocoder external.Geocoder
	timeout  time.Duration
	logger   *slog.Logger

	httpServer *http.Server
	wg         sync.WaitGroup
}

// New wires the server. token is the shared secret every slash command
// must carry.
func New(addr, token, dataDir string, router *command.Router, replies *slack.Client, geocoder external.Geocoder, timeout time.Duration, logger *slog.Logger) *Server {
	s := &Server{
		token:    token,
		dataDir:  dataDir,
		router:   router,
		replies:  replies,
		geocoder: geocoder,
		timeout:  timeout,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /slack", s.handleSlack)
	mux.HandleFunc("GET /elo.json", s.handleElo)
	for _, name := range snapshotFiles {
		mux.HandleFunc("GET /"+name, s.handleSnapshot(name))
	}
	mux.HandleFunc("POST /mood", s.handleMood)
	mux.HandleFunc("POST /sleep_start", s.handleSleep("asleep"))
	mux.HandleFunc("POST /sleep_stop", s.handleSleep("awake"))
	mux.HandleFunc("POST /phone", s.handlePhone)
	mux.HandleFunc("POST /mensa.json", s.handleMensa)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Handler returns the request handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving in the background.
func (s *Server) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()
	s.logger.Info("http server started", "addr", s.httpServer.Addr)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.httpServer.Shutdown(ctx)
	s.wg.Wait()
}

// handleSlack is the slash-command entry point. A failed command never
// fails the process: every outcome other than a bad secret comes back
// as a well-formed reply payload.
func (s *Server) handleSlack(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if r.PostFormValue("token") != s.token {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	text := r.PostFormValue("text")
	user := r.PostFormValue("user_name")
	responseURL := r.PostFormValue("response_url")

	s.logger.Info("slash command", "user", user, "text_length", len(text))

	reply, err := s.router.Dispatch(r.Context(), text, user)
	if err != nil {
		s.logger.Error("command failed", "user", user, "error", err)
		reply = &command.Reply{Message: slack.Ephemeral("Das hat leider nicht geklappt. Versuch es später nochmal.")}
	}

	if reply.Deferred && responseURL != "" {
		// Close the request right away; the payload follows via the
		// response URL so it carries no attribution.
		w.WriteHeader(http.StatusOK)
		msg := reply.Message
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			if err := s.replies.Respond(ctx, responseURL, msg); err != nil {
				s.logger.Error("deferred reply failed", "error", err)
			}
		}()
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply.Message)
}

// handleElo computes a rating update from query parameters, without
// touching any stored table.
func (s *Server) handleElo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	who, errW := strconv.Atoi(q.Get("who"))
	if errX != nil || errY != nil || errW != nil {
		http.Error(w, "x, y and who must be integers", http.StatusBadRequest)
		return
	}

	k := elo.DefaultK
	if kStr := q.Get("k"); kStr != "" {
		var err error
		if k, err = strconv.Atoi(kStr); err != nil {
			http.Error(w, "k must be an integer", http.StatusBadRequest)
			return
		}
	}

	nx, ny, err := elo.Update(x, y, who, k)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid outcome code %d", who), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(map[string]int{"x": nx, "y": ny})
}
