package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fantaprof/fantaprof-server/internal/application/command"
	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
	"github.com/fantaprof/fantaprof-server/internal/domain/user"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DTOs
// ══════════════════════════════════════════════════════════════════════════════

type professorDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Cost      int       `json:"cost"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProfessorDTO(p *professor.Professor) professorDTO {
	return professorDTO{
		ID:        p.ID,
		Name:      p.Name.String(),
		Cost:      int(p.Cost),
		Score:     p.Score,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type memberDTO struct {
	ProfessorID  string `json:"professor_id"`
	Name         string `json:"name,omitempty"`
	Cost         int    `json:"cost"`
	Score        int    `json:"score"`
	IsCaptain    bool   `json:"is_captain"`
	Contribution int    `json:"contribution"`
}

type teamViewDTO struct {
	UserID     string      `json:"user_id"`
	TeamName   string      `json:"team_name,omitempty"`
	HasName    bool        `json:"has_name"`
	CaptainID  string      `json:"captain_id,omitempty"`
	Members    []memberDTO `json:"members"`
	TotalScore int         `json:"total_score"`
}

func toTeamViewDTO(view *scoring.TeamView) teamViewDTO {
	members := make([]memberDTO, 0, len(view.Members))
	for _, m := range view.Members {
		members = append(members, memberDTO{
			ProfessorID:  m.ProfessorID,
			Name:         m.Name,
			Cost:         m.Cost,
			Score:        m.Score,
			IsCaptain:    m.IsCaptain,
			Contribution: m.Contribution,
		})
	}
	return teamViewDTO{
		UserID:     view.UserID,
		TeamName:   view.TeamName,
		HasName:    view.TeamName != "",
		CaptainID:  view.CaptainID,
		Members:    members,
		TotalScore: view.TotalScore,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"uptime": s.Uptime().String(),
	}

	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(r.Context()); err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, "not_ready", "Database is unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFESSOR HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListProfessors(w http.ResponseWriter, r *http.Request) {
	professors, err := s.deps.ListProfessors.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	dtos := make([]professorDTO, 0, len(professors))
	for _, p := range professors {
		dtos = append(dtos, toProfessorDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleCreateProfessor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Cost int    `json:"cost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	p, err := s.deps.CreateProfessor.Handle(r.Context(), command.CreateProfessorCommand{
		Name: req.Name,
		Cost: req.Cost,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfessorDTO(p))
}

func (s *Server) handleDeleteProfessor(w http.ResponseWriter, r *http.Request) {
	err := s.deps.DeleteProfessor.Handle(r.Context(), command.DeleteProfessorCommand{
		ProfessorID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	p, err := s.deps.UpdateScore.Handle(r.Context(), command.UpdateScoreCommand{
		ProfessorID: r.PathValue("id"),
		Delta:       req.Delta,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfessorDTO(p))
}

func (s *Server) handleCanUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"professor_id": id,
		"can_update":   s.deps.Throttle.CanUpdate(id),
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// TEAM AND LEADERBOARD HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleAssembleTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID       string   `json:"user_id"`
		TeamName     string   `json:"team_name"`
		ProfessorIDs []string `json:"professor_ids"`
		CaptainID    string   `json:"captain_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	rows, err := s.deps.AssembleTeam.Handle(r.Context(), command.AssembleTeamCommand{
		UserID:       req.UserID,
		TeamName:     req.TeamName,
		ProfessorIDs: req.ProfessorIDs,
		CaptainID:    req.CaptainID,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"team_name": req.TeamName,
		"size":      len(rows),
	})
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	view, err := s.deps.GetTeam.Handle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamViewDTO(view))
}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	standings, err := s.deps.GetLeaderboard.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

// ══════════════════════════════════════════════════════════════════════════════
// LOGIN HANDLER
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	u, err := s.deps.Authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":       u.ID,
		"username": u.Username,
		"role":     string(u.Role),
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// writeDomainError maps domain errors onto HTTP statuses. A closed score
// update window maps to 425 Too Early.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case shared.IsThrottled(err):
		writeJSONError(w, http.StatusTooEarly, "score_already_updated", "Score already updated today, try again after midnight")
	case shared.IsInvalidCredential(err):
		writeJSONError(w, http.StatusUnauthorized, "invalid_credential", "Invalid username or password")
	case shared.IsInvalidSelection(err):
		writeJSONError(w, http.StatusBadRequest, "invalid_selection", err.Error())
	case shared.IsNotFound(err):
		code := "not_found"
		if errors.Is(err, scoring.ErrNoTeam) {
			code = "no_team"
		} else if errors.Is(err, user.ErrNotFound) {
			code = "user_not_found"
		}
		writeJSONError(w, http.StatusNotFound, code, err.Error())
	case shared.IsAlreadyExists(err):
		writeJSONError(w, http.StatusConflict, "already_exists", err.Error())
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		s.logger.Error("unhandled error",
			logger.Err(err),
			logger.String("path", r.URL.Path),
			logger.String("request_id", getRequestID(r.Context())),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_server_error", "An unexpected error occurred")
	}
}
