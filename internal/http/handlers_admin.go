package http

import (
	"net/http"
	"strings"
	"time"

	"costmanager/internal/core"
)

type teamMemberResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type accessLogResponse struct {
	Method    string    `json:"method"`
	URL       string    `json:"url"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// handleAbout returns the configured team listing. Each entry is a
// "First Last" pair; anything after the first space is the last name.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	resp := make([]teamMemberResponse, 0, len(s.team))
	for _, member := range s.team {
		first, last, _ := strings.Cut(strings.TrimSpace(member), " ")
		resp = append(resp, teamMemberResponse{FirstName: first, LastName: last})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	entries, err := s.logs.ListAccessLogs(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	resp := make([]accessLogResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toAccessLogResponse(entry))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toAccessLogResponse(entry core.AccessLog) accessLogResponse {
	return accessLogResponse{
		Method:    entry.Method,
		URL:       entry.URL,
		Status:    entry.Status,
		Timestamp: entry.Timestamp,
	}
}
