package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"costmanager/internal/core"
)

type addUserRequest struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday,omitempty"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday,omitempty"`
}

// userDetailsResponse is the per-user view including the cost total.
type userDetailsResponse struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Total     core.Amount `json:"total"`
}

func toUserResponse(u core.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if !u.Birthday.IsZero() {
		resp.Birthday = u.Birthday.Format("2006-01-02")
	}
	return resp
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{ID: http.StatusBadRequest, Message: err.Error()})
		return
	}

	var birthday time.Time
	if req.Birthday != "" {
		var err error
		birthday, err = core.ParseDate(req.Birthday)
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}
	}

	user := core.User{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthday:  birthday,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/users/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id == 0 {
		s.writeError(r.Context(), w, core.ErrInvalidUserID)
		return
	}

	details, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, userDetailsResponse{
		ID:        details.User.ID,
		FirstName: details.User.FirstName,
		LastName:  details.User.LastName,
		Total:     details.Total,
	})
}
