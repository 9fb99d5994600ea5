package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medrec/records-gateway/internal/handler"
	"github.com/medrec/records-gateway/internal/model"
	"github.com/medrec/records-gateway/internal/repository"
)

// Handler serves the structured bulk-insert endpoint.
type Handler struct {
	store repository.RecordStore
}

func NewHandler(store repository.RecordStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/insert-data", h.InsertRecords)
}

// InsertRecords validates the whole batch before touching the store, then
// dispatches one parameterized insert per record in array order and waits
// for each. Partial failures come back as a DB error naming the indices;
// already-inserted records stay inserted, there is no transaction.
func (h *Handler) InsertRecords(c *gin.Context) {
	var records []model.RecordInput
	if err := c.ShouldBindJSON(&records); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			handler.RespondError(c, handler.ErrTypeInput, "request body must be a JSON array of records")
			return
		}
		handler.RespondError(c, handler.ErrTypeJSON, "invalid JSON in request body")
		return
	}

	if len(records) == 0 {
		handler.RespondError(c, handler.ErrTypeInput, "at least one record is required")
		return
	}

	var invalid []int
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			invalid = append(invalid, i)
		}
	}
	if len(invalid) > 0 {
		handler.RespondError(c, handler.ErrTypeInput,
			fmt.Sprintf("records at indices %v are missing name or dateOfBirth", invalid))
		return
	}

	var failed []int
	for i, rec := range records {
		if _, err := h.store.InsertRecord(c.Request.Context(), rec); err != nil {
			log.Error().Err(err).Int("index", i).Msg("record insert failed")
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		handler.RespondError(c, handler.ErrTypeDB,
			fmt.Sprintf("failed to insert records at indices %v", failed))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(
		fmt.Sprintf("inserted %d record(s)", len(records))))
}
