package api

import (
	"errors"
	"io"
	"net/http"

	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func abortUsecaseError(c *gin.Context, err error) {
	status, msg := httperr.StatusFor(err)

	var detail any
	var conflict *commands.ConflictError
	if errors.As(err, &conflict) {
		detail = gin.H{"conflicts": conflict.Conflicts}
	}
	httperr.AbortWithError(c, status, err, msg, detail)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return false
	}
	return true
}
