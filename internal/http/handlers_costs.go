package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"costmanager/internal/core"
	"costmanager/internal/services"
)

type addCostRequest struct {
	Description string       `json:"description"`
	Category    string       `json:"category"`
	UserID      int64        `json:"userid"`
	Sum         *core.Amount `json:"sum"`
	Date        string       `json:"date,omitempty"`
}

// costResponse echoes the accepted entry without storage-internal
// fields.
type costResponse struct {
	UserID      int64         `json:"userid"`
	Description string        `json:"description"`
	Category    core.Category `json:"category"`
	Sum         core.Amount   `json:"sum"`
	Year        int           `json:"year"`
	Month       int           `json:"month"`
	Day         int           `json:"day"`
}

func (s *Server) handleAddCost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req addCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{ID: http.StatusBadRequest, Message: err.Error()})
		return
	}

	cost, err := s.costs.Add(r.Context(), services.AddCostInput{
		UserID:      req.UserID,
		Description: req.Description,
		Category:    req.Category,
		Sum:         req.Sum,
		Date:        req.Date,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, costResponse{
		UserID:      cost.UserID,
		Description: cost.Description,
		Category:    cost.Category,
		Sum:         cost.Sum,
		Year:        cost.Year,
		Month:       cost.Month,
		Day:         cost.Day,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID, okID := parseQueryInt(r, "id")
	year, okYear := parseQueryInt(r, "year")
	month, okMonth := parseQueryInt(r, "month")
	if !okID || !okYear || !okMonth {
		s.writeError(r.Context(), w, core.ErrBadReportQuery)
		return
	}

	report, err := s.engine.MonthlyReport(r.Context(), userID, int(year), int(month))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// parseQueryInt reads one required integer query parameter.
func parseQueryInt(r *http.Request, name string) (int64, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
