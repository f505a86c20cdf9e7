package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pfrederiksen/edison-soccer/internal/team"
)

var errNoCurrentStats = errors.New("current season stats were not scraped")

// PlayerResponse is the body of a player lookup
type PlayerResponse struct {
	Season string           `json:"season"`
	Name   string           `json:"name"`
	Field  *team.PlayerStat `json:"field,omitempty"`
	Goalie *team.GoalieStat `json:"goalie,omitempty"`
}

// TopScorersResponse is the body of a top scorers listing
type TopScorersResponse struct {
	Season  string            `json:"season"`
	By      team.StatKey      `json:"by"`
	Players []team.PlayerStat `json:"players"`
}

// OpponentResponse is the body of an opponent lookup
type OpponentResponse struct {
	Opponent string         `json:"opponent"`
	Games    []team.Fixture `json:"games"`
	Wins     int            `json:"wins"`
	Losses   int            `json:"losses"`
	Ties     int            `json:"ties"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"service":         "edison-soccer",
		"failed_sections": len(s.report.Failed()),
	})
}

// handleBundle returns the whole bundle
func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.report.Bundle)
}

// handleStatus returns the per-section outcome of the run
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.report.Sections)
}

// handleSummary returns the headline numbers
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, team.Summarize(s.report.Bundle))
}

// handleMetrics returns the scrape and request metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

// handlePlayer looks up one player in the current season stats
func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	stats := s.report.Bundle.CurrentStats
	if stats == nil {
		respondError(w, http.StatusServiceUnavailable, "Player stats unavailable", errNoCurrentStats)
		return
	}

	name := mux.Vars(r)["name"]
	lookup := team.FindPlayer(stats, name)
	if !lookup.Found() {
		respondError(w, http.StatusNotFound, "Player not found: "+name, nil)
		return
	}

	respondJSON(w, http.StatusOK, PlayerResponse{
		Season: stats.Season,
		Name:   name,
		Field:  lookup.Field,
		Goalie: lookup.Goalie,
	})
}

// handleTopScorers ranks the current season field players
func (s *Server) handleTopScorers(w http.ResponseWriter, r *http.Request) {
	limit := team.DefaultTopScorers
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 || l > team.MaxTopScorers {
			respondError(w, http.StatusBadRequest, "Invalid limit (use 1-100)", err)
			return
		}
		limit = l
	}

	by, err := team.ParseStatKey(r.URL.Query().Get("by"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ranking column", err)
		return
	}

	stats := s.report.Bundle.CurrentStats
	if stats == nil {
		respondError(w, http.StatusServiceUnavailable, "Player stats unavailable", errNoCurrentStats)
		return
	}

	respondJSON(w, http.StatusOK, TopScorersResponse{
		Season:  stats.Season,
		By:      by,
		Players: team.TopScorers(stats.FieldPlayers, limit, by),
	})
}

// handleOpponent lists the fixtures against one opponent
func (s *Server) handleOpponent(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	games := team.OpponentGames(s.report.Bundle.Fixtures.Games, name)

	resp := OpponentResponse{Opponent: name, Games: games}
	resp.Wins, resp.Losses, resp.Ties = team.Record(games)
	respondJSON(w, http.StatusOK, resp)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
