package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Snapshot documents served straight from the data directory.
var snapshotFiles = []string{
	"status.json",
	"mood.json",
	"battery.json",
	"calendar.json",
	"location.json",
}

// handleSnapshot serves one snapshot file with an open CORS policy so
// the dashboard page can fetch it from anywhere.
func (s *Server) handleSnapshot(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(filepath.Join(s.dataDir, name))
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
			s.logger.Error("reading snapshot", "name", name, "error", err)
			http.Error(w, "snapshot unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Write(data)
	}
}

// writeSnapshot marshals v and atomically replaces the named snapshot.
func (s *Server) writeSnapshot(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}

	path := filepath.Join(s.dataDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(name)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	if mood := r.PostFormValue("mood"); mood != "" {
		err := s.writeSnapshot("mood.json", map[string]any{
			"timestamp": time.Now().Unix(),
			"mood":      mood,
		})
		if err != nil {
			s.logger.Error("writing mood snapshot", "error", err)
			http.Error(w, "write failed", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSleep(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.writeSnapshot("status.json", map[string]any{
			"timestamp": time.Now().Unix(),
			"status":    status,
		})
		if err != nil {
			s.logger.Error("writing status snapshot", "error", err)
			http.Error(w, "write failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handlePhone ingests one telemetry report: battery level, next
// calendar event and coordinates. The calendar text never leaves the
// device unredacted and a geocoder failure only costs the location
// snapshot, never the request.
func (s *Server) handlePhone(w http.ResponseWriter, r *http.Request) {
	now := time.Now().Unix()

	battery := r.PostFormValue("battery")
	if battery == "" {
		battery = "?"
	}
	if err := s.writeSnapshot("battery.json", map[string]any{
		"timestamp": now,
		"battery":   battery,
	}); err != nil {
		s.logger.Error("writing battery snapshot", "error", err)
		http.Error(w, "write failed", http.StatusInternalServerError)
		return
	}

	calendar := ""
	if r.PostFormValue("event") != "" {
		calendar = "undisclosed"
	}
	if err := s.writeSnapshot("calendar.json", map[string]any{
		"timestamp": now,
		"calendar":  calendar,
	}); err != nil {
		s.logger.Error("writing calendar snapshot", "error", err)
		http.Error(w, "write failed", http.StatusInternalServerError)
		return
	}

	lat, _ := strconv.ParseFloat(r.PostFormValue("lat"), 64)
	lon, _ := strconv.ParseFloat(r.PostFormValue("lon"), 64)
	if lat != 0 && lon != 0 {
		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()
		address, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
		if err != nil {
			s.logger.Warn("reverse geocoding failed", "error", err)
		} else {
			if err := s.writeSnapshot("location.json", map[string]any{
				"timestamp": now,
				"address":   address,
				"lat":       lat,
				"lon":       lon,
				"role":      "",
			}); err != nil {
				s.logger.Error("writing location snapshot", "error", err)
			}
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
