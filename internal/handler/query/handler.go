package query

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medrec/records-gateway/internal/handler"
	"github.com/medrec/records-gateway/internal/repository"
	"github.com/medrec/records-gateway/internal/sqlcmd"
)

// Request is the POST body for the raw-query endpoint.
type Request struct {
	Query string `json:"query"`
}

// Handler serves the raw-query endpoint: SELECT over GET, INSERT over
// POST, everything mutating blocked outright.
type Handler struct {
	store repository.RecordStore
}

func NewHandler(store repository.RecordStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/execute-query", h.ExecuteSelect)
	r.POST("/execute-query", h.ExecuteInsert)
}

func (h *Handler) ExecuteSelect(c *gin.Context) {
	q := c.Query("query")
	if strings.TrimSpace(q) == "" {
		handler.RespondError(c, handler.ErrTypeInput, "query parameter is required")
		return
	}

	cmd, blocked, ok := sqlcmd.Classify(q)
	if blocked {
		handler.RespondError(c, handler.ErrTypeSecurity, "query command is not allowed")
		return
	}
	if !ok || cmd != sqlcmd.Select {
		handler.RespondError(c, handler.ErrTypeMethod, "GET accepts SELECT queries only")
		return
	}

	rows, err := h.store.Select(c.Request.Context(), q)
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("select failed")
		handler.RespondError(c, handler.ErrTypeDB, "database operation failed")
		return
	}

	c.JSON(http.StatusOK, handler.NewDataResponse(rows,
		fmt.Sprintf("%d row(s) returned", len(rows))))
}

func (h *Handler) ExecuteInsert(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, handler.ErrTypeJSON, "invalid JSON in request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		handler.RespondError(c, handler.ErrTypeInput, "query is required")
		return
	}

	cmd, blocked, ok := sqlcmd.Classify(req.Query)
	if blocked {
		handler.RespondError(c, handler.ErrTypeSecurity, "query command is not allowed")
		return
	}
	if !ok || cmd != sqlcmd.Insert {
		handler.RespondError(c, handler.ErrTypeMethod, "POST accepts INSERT queries only")
		return
	}

	res, err := h.store.Insert(c.Request.Context(), req.Query)
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("insert failed")
		handler.RespondError(c, handler.ErrTypeDB, "database operation failed")
		return
	}

	c.JSON(http.StatusOK, handler.NewInsertResponse(res.LastInsertID, "insert executed"))
}
