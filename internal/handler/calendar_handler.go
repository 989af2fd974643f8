package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
	"github.com/Remy-Arinze/agora-backend-sub002/internal/service"
	appErrors "github.com/Remy-Arinze/agora-backend-sub002/pkg/errors"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/response"
)

// CalendarHandler exposes the session and term lifecycle endpoints.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler constructs a calendar handler.
func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

func schoolType(c *gin.Context) models.SchoolType {
	return models.SchoolType(c.Query("school_type"))
}

// InitializeSession godoc
// @Summary Initialize a draft session
// @Description Create a DRAFT academic session with no terms
// @Tags Calendar
// @Accept json
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param payload body service.InitializeSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schools/{school}/sessions [post]
func (h *CalendarHandler) InitializeSession(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	var req service.InitializeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	session, err := h.service.InitializeSession(c.Request.Context(), school.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// ListSessions godoc
// @Summary List sessions with terms
// @Tags Calendar
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param school_type query string false "Scope filter (PRIMARY, SECONDARY, TERTIARY)"
// @Success 200 {object} response.Envelope
// @Router /schools/{school}/sessions [get]
func (h *CalendarHandler) ListSessions(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	sessions, err := h.service.ListSessions(c.Request.Context(), school.ID, schoolType(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions, nil)
}

// GetActiveSession godoc
// @Summary Get the active session
// @Tags Calendar
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param school_type query string false "Scope filter"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{school}/sessions/active [get]
func (h *CalendarHandler) GetActiveSession(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	session, err := h.service.GetActiveSession(c.Request.Context(), school.ID, schoolType(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// CreateTerm godoc
// @Summary Add a draft term to a session
// @Tags Calendar
// @Accept json
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param sessionId path string true "Session ID"
// @Param payload body service.CreateTermRequest true "Term payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schools/{school}/sessions/{sessionId}/terms [post]
func (h *CalendarHandler) CreateTerm(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	var req service.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	term, err := h.service.CreateTerm(c.Request.Context(), school.ID, c.Param("sessionId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, term)
}

// GetActiveTerm godoc
// @Summary Get the active term
// @Tags Calendar
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param school_type query string false "Scope filter"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{school}/terms/active [get]
func (h *CalendarHandler) GetActiveTerm(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	term, err := h.service.GetActiveTerm(c.Request.Context(), school.ID, schoolType(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, term, nil)
}

// StartTerm godoc
// @Summary Start a new session or term
// @Description NEW_SESSION creates and activates a subdivided session and promotes students; NEW_TERM activates a draft term and carries students over
// @Tags Calendar
// @Accept json
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param payload body service.StartTermRequest true "Transition payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schools/{school}/terms/start [post]
func (h *CalendarHandler) StartTerm(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	var req service.StartTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.service.StartNewTerm(c.Request.Context(), school.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// EndTerm godoc
// @Summary Complete the active term
// @Tags Calendar
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param school_type query string false "Scope filter"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{school}/terms/end [post]
func (h *CalendarHandler) EndTerm(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	term, err := h.service.EndTerm(c.Request.Context(), school.ID, schoolType(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, term, nil)
}

// EndSession godoc
// @Summary Complete the active session and all its terms
// @Tags Calendar
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param school_type query string false "Scope filter"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{school}/sessions/end [post]
func (h *CalendarHandler) EndSession(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	session, err := h.service.EndSession(c.Request.Context(), school.ID, schoolType(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// ReactivateTerm godoc
// @Summary Reactivate a completed term
// @Description Move a completed term whose end date has not passed back to active
// @Tags Calendar
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param termId path string true "Term ID"
// @Param school_type query string false "Scope filter"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{school}/terms/{termId}/reactivate [post]
func (h *CalendarHandler) ReactivateTerm(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	term, err := h.service.ReactivateTerm(c.Request.Context(), school.ID, c.Param("termId"), schoolType(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, term, nil)
}
