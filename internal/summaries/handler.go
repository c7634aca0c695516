package summaries

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"arvr-research-backend/internal/documents"
	"arvr-research-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches summary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/:id/process", h.process)
	rg.GET("/summaries", h.list)
	rg.GET("/summaries/:id", h.get)
}

func (h *Handler) process(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	sum, err := h.Svc.Process(c.Request.Context(), documentID)
	if err != nil {
		c.Set("summaryId", sum.ID)
		switch {
		case errors.Is(err, ErrRunInProgress):
			respond.Error(c, http.StatusConflict, "run_in_progress", err.Error(), nil)
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, statusForCode(sum.ErrorCode), errorCodeOrInternal(sum.ErrorCode), sum.ErrorMessage, gin.H{
				"summaryId": sum.ID,
			})
		}
		return
	}

	c.Set("summaryId", sum.ID)
	respond.JSON(c, http.StatusOK, toResponse(sum))
}

func (h *Handler) get(c *gin.Context) {
	sum, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "summary not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch summary", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(sum))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	sums, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list summaries", nil)
		return
	}

	resp := make([]gin.H, 0, len(sums))
	for _, sum := range sums {
		resp = append(resp, toResponse(sum))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func toResponse(sum Summary) gin.H {
	resp := gin.H{
		"summaryId":        sum.ID,
		"documentId":       sum.DocumentID,
		"documentName":     sum.DocumentName,
		"documentLink":     sum.DocumentLink,
		"solutions":        sum.Solutions,
		"toSolve":          sum.ToSolve,
		"problemStatement": sum.ProblemStatement,
		"status":           sum.Status,
		"progress":         sum.Progress,
		"truncated":        sum.Truncated,
		"createdAt":        sum.CreatedAt,
	}
	if sum.WorksheetTitle != "" {
		resp["worksheetTitle"] = sum.WorksheetTitle
	}
	if sum.AppendedAt != nil {
		resp["appendedAt"] = sum.AppendedAt
	}
	if sum.CompletedAt != nil {
		resp["completedAt"] = sum.CompletedAt
	}
	if sum.ErrorCode != "" {
		resp["errorCode"] = sum.ErrorCode
		resp["errorMessage"] = sum.ErrorMessage
	}
	return resp
}

func statusForCode(code string) int {
	switch code {
	case ErrorCodeExtraction:
		return http.StatusUnprocessableEntity
	case ErrorCodeSummarization, ErrorCodeSheetAppend:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorCodeOrInternal(code string) string {
	if code == "" {
		return ErrorCodeInternal
	}
	return code
}
