package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"therapy-scheduler/src/models"
	"therapy-scheduler/src/schemas"
	"therapy-scheduler/src/service"

	"github.com/gin-gonic/gin"
)

// NoSlotAvailableMessage is returned when a reschedule sweep finds nothing to do.
const NoSlotAvailableMessage = "no suitable slot available"

type SchedulerController struct {
	Service *service.SchedulerService
}

func NewSchedulerController(service *service.SchedulerService) *SchedulerController {
	return &SchedulerController{
		Service: service,
	}
}

func (c *SchedulerController) sendError(ctx *gin.Context, errResp *schemas.ErrorResponse) {
	slog.Error(errResp.Title,
		"detail", errResp.Detail,
		"instance", errResp.Instance)
	ctx.JSON(errResp.Status, errResp)
}

// @Summary Schedule a therapy session
// @Description Creates a new therapy session in SCHEDULED status. Priority defaults to 1 when omitted.
// @Tags scheduler
// @Accept json
// @Produce json
// @Param ScheduleRequest body schemas.ScheduleRequest true "Schedule Request"
// @Success 201 {object} models.TherapySession
// @Failure 400 {object} schemas.ErrorResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /schedule [post]
func (c *SchedulerController) Schedule(ctx *gin.Context) {
	var req schemas.ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.sendError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error(), "/schedule"))
		return
	}

	session, err := c.Service.Schedule(ctx.Request.Context(), req.PractitionerID, req.PatientID, req.TimeSlot, req.Priority)
	if err != nil {
		c.sendError(ctx, schemas.NewInternalError(err.Error(), "/schedule"))
		return
	}

	slog.Info("Session scheduled",
		"session_id", session.SessionID,
		"practitioner_id", session.PractitionerID)

	ctx.JSON(http.StatusCreated, session)
}

// @Summary List the ready queue
// @Description Returns all SCHEDULED sessions ordered by priority descending, then time slot ascending.
// @Tags scheduler
// @Produce json
// @Success 200 {object} schemas.QueueResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /ready [get]
func (c *SchedulerController) ListReady(ctx *gin.Context) {
	sessions, err := c.Service.ReadyQueue(ctx.Request.Context())
	if err != nil {
		c.sendError(ctx, schemas.NewInternalError(err.Error(), "/ready"))
		return
	}

	ctx.JSON(http.StatusOK, schemas.QueueResponse{Sessions: sessions})
}

// @Summary List the waiting queue
// @Description Returns all WAITING sessions ordered by priority descending.
// @Tags scheduler
// @Produce json
// @Success 200 {object} schemas.QueueResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /waiting [get]
func (c *SchedulerController) ListWaiting(ctx *gin.Context) {
	sessions, err := c.Service.WaitingQueue(ctx.Request.Context())
	if err != nil {
		c.sendError(ctx, schemas.NewInternalError(err.Error(), "/waiting"))
		return
	}

	ctx.JSON(http.StatusOK, schemas.QueueResponse{Sessions: sessions})
}

// @Summary Move a session to the waiting queue
// @Description Displaces a session to WAITING with the given reason, regardless of its prior status.
// @Tags scheduler
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param MoveToWaitingRequest body schemas.MoveToWaitingRequest false "Move To Waiting Request"
// @Success 200 {object} models.TherapySession
// @Failure 400 {object} schemas.ErrorResponse
// @Failure 404 {object} schemas.ErrorResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /cancel/{sessionId} [patch]
func (c *SchedulerController) MoveToWaiting(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")
	instance := "/cancel/" + sessionID

	// The body is optional; an absent body means the default reason.
	var req schemas.MoveToWaitingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.sendError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error(), instance))
		return
	}

	session, err := c.Service.MoveToWaiting(ctx.Request.Context(), sessionID, req.Reason)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			c.sendError(ctx, schemas.NewNotFoundError("session with ID "+sessionID+" not found", instance))
			return
		}
		c.sendError(ctx, schemas.NewInternalError(err.Error(), instance))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// @Summary Run a reschedule sweep
// @Description Attempts to reassign every waiting session onto a slot held by a scheduled session.
// @Tags scheduler
// @Produce json
// @Success 200 {object} schemas.RescheduleResponse
// @Failure 500 {object} schemas.ErrorResponse
// @Router /reschedule [post]
func (c *SchedulerController) Reschedule(ctx *gin.Context) {
	rescheduled, err := c.Service.RescheduleSweep(ctx.Request.Context())
	if err != nil {
		c.sendError(ctx, schemas.NewInternalError(err.Error(), "/reschedule"))
		return
	}

	resp := schemas.RescheduleResponse{Rescheduled: rescheduled}
	if len(rescheduled) == 0 {
		// Informational success, distinct from a persistence failure.
		resp.Message = NoSlotAvailableMessage
	}

	ctx.JSON(http.StatusOK, resp)
}
