package api

import (
	"net/http"
	"strconv"

	reqdto "facility-booking/internal/handler/dto/request"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/usecase/authz"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RecurrenceHandler struct {
	cmds commands.RecurrenceCommands
	q    queries.BookingQueries
}

func NewRecurrenceHandler(cmds commands.RecurrenceCommands, q queries.BookingQueries) *RecurrenceHandler {
	return &RecurrenceHandler{cmds: cmds, q: q}
}

func (h *RecurrenceHandler) bindParams(c *gin.Context) (reqdto.RecurrenceRequest, bool) {
	var req reqdto.RecurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return req, false
	}
	return req, true
}

// @Summary Preview recurrence
// @Description Expand the rule and flag dates blocked by an APPROVED reservation. Nothing is saved.
// @Tags recurrences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RecurrenceRequest true "Recurrence rule"
// @Success 200 {array} resdto.PreviewItemResponse
// @Failure 400 {object} httperr.Response
// @Router /recurrences/preview [post]
func (h *RecurrenceHandler) Preview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, authz.ErrNoActor, "Unauthorized", nil)
		return
	}
	req, ok := h.bindParams(c)
	if !ok {
		return
	}
	params, err := req.ToParams(userID)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}

	items, err := h.cmds.PreviewRecurrence(c.Request.Context(), params)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPreview(items))
}

// @Summary Create recurrence
// @Description Save the rule and generate its occurrences up to the generation horizon.
// @Tags recurrences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RecurrenceRequest true "Recurrence rule"
// @Success 201 {object} resdto.CreateRecurrenceResponse
// @Failure 400 {object} httperr.Response
// @Router /recurrences [post]
func (h *RecurrenceHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, authz.ErrNoActor, "Unauthorized", nil)
		return
	}
	req, ok := h.bindParams(c)
	if !ok {
		return
	}
	params, err := req.ToParams(userID)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}

	result, err := h.cmds.CreateRecurrence(c.Request.Context(), params)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.Header("Location", "/api/recurrences/"+result.Config.ID().String())
	c.JSON(http.StatusCreated, resdto.FromCreateRecurrence(result))
}

// @Summary Get recurrence
// @Tags recurrences
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recurrence ID"
// @Success 200 {object} resdto.RecurrenceResponse
// @Failure 404 {object} httperr.Response
// @Router /recurrences/{id} [get]
func (h *RecurrenceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	cfg, err := h.q.GetRecurrence(ctx, id)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	if err := authz.Authorize(ctx, authz.Target{OwnerID: cfg.UserID()}, authz.ActionManageRecurrence); err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRecurrence(cfg))
}

// @Summary Generate occurrences
// @Description Extend the recurrence up to until (inclusive). Already generated or skipped dates are never repeated.
// @Tags recurrences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recurrence ID"
// @Param request body reqdto.GenerateRequest false "Limit"
// @Success 200 {object} resdto.GenerationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /recurrences/{id}/generate [post]
func (h *RecurrenceHandler) Generate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.GenerateRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	limit, err := req.Limit()
	if err != nil {
		abortUsecaseError(c, err)
		return
	}

	gen, err := h.cmds.GenerateOccurrences(c.Request.Context(), id, limit)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromGeneration(gen))
}

// @Summary Activate recurrence
// @Tags recurrences
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recurrence ID"
// @Success 200 {object} resdto.RecurrenceResponse
// @Failure 404 {object} httperr.Response
// @Router /recurrences/{id}/activate [post]
func (h *RecurrenceHandler) Activate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cfg, err := h.cmds.ActivateRecurrence(c.Request.Context(), id)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRecurrence(cfg))
}

// @Summary Deactivate recurrence
// @Tags recurrences
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recurrence ID"
// @Success 200 {object} resdto.RecurrenceResponse
// @Failure 404 {object} httperr.Response
// @Router /recurrences/{id}/deactivate [post]
func (h *RecurrenceHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cfg, err := h.cmds.DeactivateRecurrence(c.Request.Context(), id)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRecurrence(cfg))
}

// @Summary Delete recurrence
// @Description With cascade=true, future PENDING and APPROVED occurrences are cancelled first.
// @Tags recurrences
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recurrence ID"
// @Param cascade query bool false "Cancel future occurrences"
// @Success 200 {object} resdto.DeleteRecurrenceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /recurrences/{id} [delete]
func (h *RecurrenceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cascade := false
	if v := c.Query("cascade"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cascade flag", nil)
			return
		}
		cascade = parsed
	}

	result, err := h.cmds.DeleteRecurrence(c.Request.Context(), id, cascade)
	if err != nil {
		abortUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.DeleteRecurrenceResponse{Cancelled: result.Cancelled})
}
