package api

import (
	"net/http"

	reqdto "facility-booking/internal/handler/dto/request"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.BookingQueries
}

func NewAvailabilityHandler(q queries.BookingQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Check availability
// @Description A slot is available when no APPROVED reservation overlaps [start, end).
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param start query string true "RFC3339 start"
// @Param end query string true "RFC3339 end"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /resources/{id}/availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	resourceID, ok := pathID(c)
	if !ok {
		return
	}
	var query reqdto.IntervalQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	avail, err := h.q.CheckAvailability(c.Request.Context(), resourceID, query.Start, query.End)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(avail))
}

// @Summary List pending overlaps
// @Description PENDING reservations overlapping [start, end), for the approval screen.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param start query string true "RFC3339 start"
// @Param end query string true "RFC3339 end"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /resources/{id}/pending-overlaps [get]
func (h *AvailabilityHandler) PendingOverlaps(c *gin.Context) {
	resourceID, ok := pathID(c)
	if !ok {
		return
	}
	var query reqdto.IntervalQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	pending, err := h.q.PendingOverlaps(c.Request.Context(), resourceID, query.Start, query.End)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservations(pending))
}
