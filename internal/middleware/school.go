package middleware

import (
	"context"
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
	appErrors "github.com/Remy-Arinze/agora-backend-sub002/pkg/errors"
	"github.com/Remy-Arinze/agora-backend-sub002/pkg/response"
)

// ContextSchoolKey is the gin context key storing the resolved school.
const ContextSchoolKey = "currentSchool"

type schoolResolver interface {
	FindByIDOrSubdomain(ctx context.Context, identifier string) (*models.School, error)
}

// School resolves the :school path parameter, which may be either the
// school's id or its subdomain, and stores the record in the context.
func School(resolver schoolResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.Param("school")
		if identifier == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "school identifier is required"))
			c.Abort()
			return
		}

		school, err := resolver.FindByIDOrSubdomain(c.Request.Context(), identifier)
		if err != nil {
			if err == sql.ErrNoRows {
				response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "school not found"))
			} else {
				response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve school"))
			}
			c.Abort()
			return
		}
		if !school.Active {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "school is inactive"))
			c.Abort()
			return
		}

		c.Set(ContextSchoolKey, school)
		c.Next()
	}
}
