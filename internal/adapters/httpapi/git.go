package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"tagmanager/internal/application/commands"
	"tagmanager/internal/domain"
)

// CommitRequest is the request body for committing the tag files
type CommitRequest struct {
	Message string `json:"message"`
}

// CommitResponse reports the outcome of a commit
type CommitResponse struct {
	Success bool              `json:"success"`
	Status  *domain.GitStatus `json:"status,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// LogResponse lists recent commits
type LogResponse struct {
	Commits []domain.Commit `json:"commits"`
}

// gitStatus always answers 200; git failures travel in the status body
func (s *Server) gitStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, commands.NewGitStatusCommand(s.vcs).Execute(r.Context()))
}

func (s *Server) gitCommit(w http.ResponseWriter, r *http.Request) {
	var req CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Commit message is required")
		return
	}

	result, err := commands.NewGitCommitCommand(s.vcs, req.Message).Execute(r.Context())
	if err != nil {
		s.logger.Error("commit failed", "request_id", requestID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, CommitResponse{Success: false, Error: err.Error()})
		return
	}
	s.logger.Info(result.Message, "request_id", requestID(r.Context()))
	writeJSON(w, http.StatusOK, CommitResponse{Success: true, Status: result.Status})
}

func (s *Server) gitLog(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}

	commits, err := commands.NewGitLogCommand(s.vcs, limit).Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	if commits == nil {
		commits = []domain.Commit{}
	}
	writeJSON(w, http.StatusOK, LogResponse{Commits: commits})
}
