package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// mensaRating is the per-meal aggregate. Stars accumulate; the average
// is stars/number.
type mensaRating struct {
	Stars  int    `json:"stars"`
	Number int    `json:"number"`
	Name   string `json:"name"`
	Meta   bool   `json:"meta,omitempty"`
}

// Meal keys that are announcements rather than meals (lowercase-only
// residue of "Aus Spargründen entfällt das Essen samstags" and the
// Ascension Day closure notice).
var metaMeals = map[string]bool{
	"uspargründenentfälltdasssensamstags": true,
	"hristiimmelfahrteschlossen":          true,
}

// mealKey reduces a meal name to its lowercase letters, which is stable
// across the canteen's creative spelling of the same dish.
func mealKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLower(r) {
			b.WriteRune(r)
		}
	}
	key := b.String()
	// The pasta buffet shows up under ever-changing names.
	if strings.Contains(key, "asta") && strings.Contains(key, "ffet") {
		key = "astaffet"
	}
	return key
}

// handleMensa records one canteen meal rating and returns the updated
// aggregate.
func (s *Server) handleMensa(w http.ResponseWriter, r *http.Request) {
	mealName := r.PostFormValue("meal")
	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	key := mealKey(mealName)
	if err != nil || rating < 0 || rating > 5 || key == "" {
		http.Error(w, "need a meal name and a rating from 0 to 5", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.dataDir, "mensa", key+".json")

	agg := mensaRating{Name: mealName}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &agg); err != nil {
			s.logger.Error("parsing meal aggregate", "meal", key, "error", err)
			http.Error(w, "meal record corrupt", http.StatusInternalServerError)
			return
		}
	} else if !os.IsNotExist(err) {
		s.logger.Error("reading meal aggregate", "meal", key, "error", err)
		http.Error(w, "read failed", http.StatusInternalServerError)
		return
	}

	if metaMeals[key] {
		agg.Meta = true
	}
	// A zero rating refreshes the display name without affecting the
	// average noticeably.
	if rating == 0 {
		agg.Name = mealName
	}
	agg.Number++
	agg.Stars += rating

	if err := s.writeSnapshot(filepath.Join("mensa", key+".json"), agg); err != nil {
		s.logger.Error("writing meal aggregate", "meal", key, "error", err)
		http.Error(w, "write failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(agg)
}
