package api

import (
	"net/http"

	reqdto "facility-booking/internal/handler/dto/request"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/usecase/alerting"
	"facility-booking/internal/usecase/authz"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	cmds   commands.BookingCommands
	q      queries.BookingQueries
	alerts alerting.AlertCommands
}

func NewReservationHandler(cmds commands.BookingCommands, q queries.BookingQueries, alerts alerting.AlertCommands) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q, alerts: alerts}
}

// @Summary Create reservation
// @Description Create a PENDING reservation. Fails with 409 when an APPROVED reservation overlaps the slot.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, authz.ErrNoActor, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.cmds.CreateReservation(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		abortUsecaseError(c, err)
		return
	}

	c.Header("Location", "/api/reservations/"+res.ID().String())
	c.JSON(http.StatusCreated, resdto.FromReservation(res))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	res, err := h.q.GetReservation(ctx, id)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	if err := authz.Authorize(ctx, authz.Target{OwnerID: res.UserID()}, authz.ActionViewReservation); err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Approve reservation
// @Description Approve a PENDING reservation and auto-reject the PENDING ones it overlaps.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ApprovalResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/approve [post]
func (h *ReservationHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.cmds.ApproveReservation(c.Request.Context(), id)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromApproval(result))
}

// @Summary Reject reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.TransitionRequest false "Reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/reject [post]
func (h *ReservationHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.TransitionRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.cmds.RejectReservation(c.Request.Context(), id, req.Reason)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Cancel reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.TransitionRequest false "Reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.TransitionRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.cmds.CancelReservation(c.Request.Context(), id, req.Reason)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary List reservation alerts
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.AlertResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/alerts [get]
func (h *ReservationHandler) ListAlerts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	res, err := h.q.GetReservation(ctx, id)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	if err := authz.Authorize(ctx, authz.Target{OwnerID: res.UserID()}, authz.ActionViewReservation); err != nil {
		abortUsecaseError(c, err)
		return
	}

	alerts, err := h.q.ListAlerts(ctx, id)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAlerts(alerts))
}

// @Summary Cancel reservation alerts
// @Description Cancel every alert of the reservation that has not been sent yet.
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancelAlertsResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/alerts [delete]
func (h *ReservationHandler) CancelAlerts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	n, err := h.alerts.CancelAlertsForReservation(c.Request.Context(), id)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CancelAlertsResponse{Cancelled: n})
}
