package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/service"
)

// InvoiceHandler handles invoice lifecycle endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	invoices, err := h.invoiceService.List(c.Request.Context(), sess)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoices)
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	inv, err := h.invoiceService.Get(c.Request.Context(), sess, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// ChangeStatus handles PUT /api/v1/invoices/:id/status
func (h *InvoiceHandler) ChangeStatus(c *gin.Context) {
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
	to, err := domain.ParseInvoiceStatus(req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	inv, err := h.invoiceService.ChangeStatus(c.Request.Context(), sess, id, to)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.Delete(c.Request.Context(), sess, id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// Submit handles POST /api/v1/invoices/:id/submit
// The response carries the refreshed invoice list.
func (h *InvoiceHandler) Submit(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	invoices, err := h.invoiceService.Submit(c.Request.Context(), sess, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoices)
}

// CheckClearance handles POST /api/v1/invoices/:id/clearance
func (h *InvoiceHandler) CheckClearance(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	outcome, err := h.invoiceService.CheckClearance(c.Request.Context(), sess, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, outcome)
}

// History handles GET /api/v1/invoices/:id/history
func (h *InvoiceHandler) History(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	entries, total, err := h.invoiceService.History(c.Request.Context(), sess, id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// BulkSelect handles POST /api/v1/invoices/bulk/select
func (h *InvoiceHandler) BulkSelect(c *gin.Context) {
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
	ids, err := h.invoiceService.SelectAll(c.Request.Context(), sess, op)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"operation": op, "ids": ids, "count": len(ids)})
}

// BulkPreview handles POST /api/v1/invoices/bulk/preview
func (h *InvoiceHandler) BulkPreview(c *gin.Context) {
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
	plan, err := h.invoiceService.PreviewBulk(c.Request.Context(), sess, op, req.IDs)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": plan, "count": plan.Count()})
}

// BulkExecute handles POST /api/v1/invoices/bulk/execute
func (h *InvoiceHandler) BulkExecute(c *gin.Context) {
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
	res, err := h.invoiceService.ExecuteBulk(c.Request.Context(), sess, op, req.IDs, req.Confirmed)
	respondBulkResult(c, res, err)
}
