package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homeboardapp/backend/internal/models"
)

// ContextKeyHousehold is where the resolved active household is stored on the
// gin context. Absent for users who belong to no household.
const ContextKeyHousehold = "household"

// HouseholdResolver determines the active household for a session.
type HouseholdResolver interface {
	ResolveActiveHousehold(ctx context.Context, sessionID string, userID uuid.UUID) (*models.Household, error)
}

// CurrentHousehold resolves the active household once per request and stores
// it on the gin context. It must run after AuthMiddleware and Session.
// Handlers read the result with ActiveHousehold; they never re-resolve.
func CurrentHousehold(resolver HouseholdResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		household, err := resolver.ResolveActiveHousehold(c.Request.Context(), SessionID(c), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve household"})
			c.Abort()
			return
		}
		if household != nil {
			c.Set(ContextKeyHousehold, household)
		}
		c.Next()
	}
}

// ActiveHousehold returns the request's active household, or nil when the
// user belongs to no household.
func ActiveHousehold(c *gin.Context) *models.Household {
	v, exists := c.Get(ContextKeyHousehold)
	if !exists {
		return nil
	}
	household, _ := v.(*models.Household)
	return household
}
