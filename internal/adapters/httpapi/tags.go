package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"tagmanager/internal/application"
	"tagmanager/internal/application/commands"
	"tagmanager/internal/domain"
)

// CreateTagRequest is the request body for creating a tag
type CreateTagRequest struct {
	Category string      `json:"category"`
	Tag      *domain.Tag `json:"tag"`
}

// ValidateRequest is the request body for the validation-only endpoint
type ValidateRequest struct {
	Tag *domain.Tag `json:"tag"`
}

// TagsResponse wraps a list of tags
type TagsResponse struct {
	Tags []domain.Tag `json:"tags"`
}

// TagResponse wraps a single tag
type TagResponse struct {
	Tag *domain.Tag `json:"tag"`
}

// DeleteResponse is returned by a successful delete
type DeleteResponse struct {
	Success  bool               `json:"success"`
	Dangling []domain.Reference `json:"dangling,omitempty"`
}

// ReferencesResponse lists the tags pointing at one tag
type ReferencesResponse struct {
	References []domain.Reference `json:"references"`
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := commands.NewListTagsCommand(s.repo, "").Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: tags})
}

func (s *Server) listCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := pathCategory(w, r)
	if !ok {
		return
	}
	tags, err := commands.NewListTagsCommand(s.repo, string(category)).Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: tags})
}

func (s *Server) getTag(w http.ResponseWriter, r *http.Request) {
	category, ok := pathCategory(w, r)
	if !ok {
		return
	}
	tag, err := commands.NewGetTagCommand(s.repo, string(category), r.PathValue("id")).Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, TagResponse{Tag: tag})
}

func (s *Server) createTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Category == "" || req.Tag == nil {
		writeError(w, http.StatusBadRequest, "Category and tag data required")
		return
	}

	result, err := commands.NewCreateTagCommand(s.repo, s.index, req.Category, *req.Tag).Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	s.logger.Info(result.Message, "request_id", requestID(r.Context()))
	writeJSON(w, http.StatusCreated, TagResponse{Tag: result.Tag})
}

func (s *Server) updateTag(w http.ResponseWriter, r *http.Request) {
	category, ok := pathCategory(w, r)
	if !ok {
		return
	}
	var patch domain.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := commands.NewUpdateTagCommand(s.repo, s.index, string(category), r.PathValue("id"), patch).Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	s.logger.Info(result.Message, "request_id", requestID(r.Context()))
	writeJSON(w, http.StatusOK, TagResponse{Tag: result.Tag})
}

func (s *Server) deleteTag(w http.ResponseWriter, r *http.Request) {
	category, ok := pathCategory(w, r)
	if !ok {
		return
	}

	result, err := commands.NewDeleteTagCommand(s.repo, s.index, string(category), r.PathValue("id")).Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info(result.Message, "request_id", requestID(r.Context()))
	writeJSON(w, http.StatusOK, DeleteResponse{Success: true, Dangling: result.Dangling})
}

func (s *Server) references(w http.ResponseWriter, r *http.Request) {
	if _, ok := pathCategory(w, r); !ok {
		return
	}
	refs, err := commands.NewReferencesCommand(s.repo, s.index, r.PathValue("id")).Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ReferencesResponse{References: refs})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	// Unlike the mutating routes, an unreadable body here is a 500
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid request body")
		return
	}
	if req.Tag == nil {
		writeError(w, http.StatusBadRequest, "Tag data required")
		return
	}

	result, err := commands.NewValidateTagCommand(s.repo, *req.Tag).Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.Filter{
		Category:   domain.Category(q.Get("category")),
		Query:      q.Get("q"),
		Difficulty: q.Get("difficulty"),
		Language:   q.Get("language"),
		SortBy:     domain.SortField(q.Get("sort")),
	}

	tags, err := commands.NewSearchTagsCommand(s.repo, s.searcher, filter).Execute(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: tags})
}

// pathCategory resolves the {category} path segment, answering 404 for
// categories outside the taxonomy
func pathCategory(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	category, err := application.ValidateCategory(r.PathValue("category"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return "", false
	}
	return category, true
}

// fail maps an application error to a response. Errors without a more
// specific mapping get status fallback.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, fallback int, err error) {
	var failed *application.ValidationFailedError
	switch {
	case errors.As(err, &failed):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Errors: failed.Errors})
		return
	case errors.Is(err, application.ErrNotFound):
		writeError(w, http.StatusNotFound, "Tag not found")
		return
	case errors.Is(err, application.ErrInvalidInput), errors.Is(err, application.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if fallback >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r.Context()),
			"error", err,
		)
	}
	writeError(w, fallback, err.Error())
}
