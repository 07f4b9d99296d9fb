// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-tags/internal/logging"
	"github.com/pdiddy/scholar-tags/internal/search"
	"github.com/pdiddy/scholar-tags/internal/tags"
)

// Searcher runs title searches.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (search.Output, error)
}

// Handler serves the search and tag endpoints.
type Handler struct {
	searcher Searcher
	store    *tags.Store
}

// NewHandler creates a Handler.
func NewHandler(searcher Searcher, store *tags.Store) *Handler {
	return &Handler{searcher: searcher, store: store}
}

type tagRequest struct {
	Author string `json:"author"`
	Tag    string `json:"tag"`
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// handleError maps an error to a response, logging anything that is not a
// caller mistake.
func handleError(c *gin.Context, status int, err error) {
	switch {
	case errors.Is(err, search.ErrTitleRequired), errors.Is(err, tags.ErrAuthorTagRequired):
		errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		logging.FromContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
		errorJSON(c, status, err.Error())
	}
}

// Search handles POST /search. Upstream failures are reported as 502.
func (h *Handler) Search(c *gin.Context) {
	var req search.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request")
		return
	}
	out, err := h.searcher.Search(c.Request.Context(), req)
	if err != nil {
		handleError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// AllTags handles GET /tags.
func (h *Handler) AllTags(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.AllTags())
}

// AuthorTags handles GET /tags/:author.
func (h *Handler) AuthorTags(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Tags(c.Param("author")))
}

// AddTag handles POST /add_tag.
func (h *Handler) AddTag(c *gin.Context) {
	h.mutate(c, h.store.AddTag)
}

// RemoveTag handles POST /remove_tag.
func (h *Handler) RemoveTag(c *gin.Context) {
	h.mutate(c, h.store.RemoveTag)
}

func (h *Handler) mutate(c *gin.Context, op func(author, tag string) error) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request")
		return
	}
	author, tag, err := tags.ValidateMutation(req.Author, req.Tag)
	if err != nil {
		handleError(c, http.StatusBadRequest, err)
		return
	}
	if err := op(author, tag); err != nil {
		handleError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
