package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dgiconsole/internal/bulk"
	"dgiconsole/internal/domain"
)

type bulkSelectRequest struct {
	Operation string `json:"operation" binding:"required"`
}

type bulkRequest struct {
	Operation string  `json:"operation" binding:"required"`
	IDs       []int64 `json:"ids"`
	Confirmed bool    `json:"confirmed"`
}

type bulkFailure struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

type bulkResponse struct {
	Operation   bulk.Operation `json:"operation"`
	Total       int            `json:"total"`
	Succeeded   []int64        `json:"succeeded"`
	Failed      []bulkFailure  `json:"failed"`
	FailedCount int            `json:"failed_count"`
	Error       string         `json:"error,omitempty"`
}

func newBulkResponse(res *bulk.Result) bulkResponse {
	out := bulkResponse{
		Operation: res.Operation,
		Total:     res.Total,
		Succeeded: res.Succeeded,
		Failed:    make([]bulkFailure, 0, len(res.Failed)),

		FailedCount: len(res.Failed),
	}
	if out.Succeeded == nil {
		out.Succeeded = []int64{}
	}
	for _, f := range res.Failed {
		_, _, msg := MapDomainError(f.Err)
		out.Failed = append(out.Failed, bulkFailure{ID: f.ID, Error: msg})
	}
	return out
}

func bindBulkOperation(c *gin.Context, raw string) (bulk.Operation, bool) {
	op, err := bulk.ParseOperation(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "operation must be one of: delete, submit")
		return "", false
	}
	return op, true
}

// respondBulkResult renders a bulk run. Per-item failures are part of the
// payload; only an expired session turns the whole run into an error.
func respondBulkResult(c *gin.Context, res *bulk.Result, err error) {
	if res == nil || errors.Is(err, domain.ErrSessionExpired) {
		HandleError(c, err)
		return
	}
	out := newBulkResponse(res)
	var bulkErr *bulk.Error
	switch {
	case errors.As(err, &bulkErr):
		out.FailedCount = bulkErr.Failed
		_, _, out.Error = MapDomainError(bulkErr.Err)
	case err != nil:
		_, _, out.Error = MapDomainError(err)
	}
	RespondOK(c, out)
}
