package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/service"
)

// QuoteHandler handles quote lifecycle endpoints.
type QuoteHandler struct {
	quoteService service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// List handles GET /api/v1/quotes
func (h *QuoteHandler) List(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	quotes, err := h.quoteService.List(c.Request.Context(), sess)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, quotes)
}

// GetByID handles GET /api/v1/quotes/:id
func (h *QuoteHandler) GetByID(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	q, err := h.quoteService.Get(c.Request.Context(), sess, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, q)
}

// ChangeStatus handles PUT /api/v1/quotes/:id/status
func (h *QuoteHandler) ChangeStatus(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}
	to, err := domain.ParseQuoteStatus(req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	q, err := h.quoteService.ChangeStatus(c.Request.Context(), sess, id, to)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, q)
}

// Delete handles DELETE /api/v1/quotes/:id
func (h *QuoteHandler) Delete(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.quoteService.Delete(c.Request.Context(), sess, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "quote deleted"})
}

// Convert handles POST /api/v1/quotes/:id/convert
func (h *QuoteHandler) Convert(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.quoteService.Convert(c.Request.Context(), sess, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// History handles GET /api/v1/quotes/:id/history
func (h *QuoteHandler) History(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	entries, total, err := h.quoteService.History(c.Request.Context(), sess, id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// BulkSelect handles POST /api/v1/quotes/bulk/select
func (h *QuoteHandler) BulkSelect(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req bulkSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "operation is required")
		return
	}
	op, ok := bindBulkOperation(c, req.Operation)
	if !ok {
		return
	}
	ids, err := h.quoteService.SelectAll(c.Request.Context(), sess, op)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"operation": op, "ids": ids, "count": len(ids)})
}

// BulkPreview handles POST /api/v1/quotes/bulk/preview
func (h *QuoteHandler) BulkPreview(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "operation is required")
		return
	}
	op, ok := bindBulkOperation(c, req.Operation)
	if !ok {
		return
	}
	plan, err := h.quoteService.PreviewBulk(c.Request.Context(), sess, op, req.IDs)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": plan, "count": plan.Count()})
}

// BulkExecute handles POST /api/v1/quotes/bulk/execute
func (h *QuoteHandler) BulkExecute(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "operation is required")
		return
	}
	op, ok := bindBulkOperation(c, req.Operation)
	if !ok {
		return
	}
	res, err := h.quoteService.ExecuteBulk(c.Request.Context(), sess, op, req.IDs, req.Confirmed)
	respondBulkResult(c, res, err)
}
