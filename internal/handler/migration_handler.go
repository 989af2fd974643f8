package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/service"
	appErrors "github.com/Remy-Arinze/agora-backend-sub002/pkg/errors"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/response"
)

// MigrationHandler exposes the standalone student migration endpoint.
type MigrationHandler struct {
	service *service.CalendarService
}

// NewMigrationHandler constructs a migration handler.
func NewMigrationHandler(svc *service.CalendarService) *MigrationHandler {
	return &MigrationHandler{service: svc}
}

// MigrateStudents godoc
// @Summary Migrate students into a term
// @Description Run a promotion or carry-over sweep into the given term
// @Tags Migration
// @Accept json
// @Produce json
// @Param school path string true "School ID or subdomain"
// @Param payload body service.MigrateStudentsRequest true "Migration payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{school}/migrations [post]
func (h *MigrationHandler) MigrateStudents(c *gin.Context) {
	school := schoolFromContext(c)
	if school == nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	var req service.MigrateStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	summary, err := h.service.MigrateStudents(c.Request.Context(), school.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
