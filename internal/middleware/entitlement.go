package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/clock"
	"github.com/salaoflow/salon-scheduler/internal/entitlement"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

// EntitlementGate denies the admin surface to tenants whose subscription no
// longer permits use. The decision is derived on every request; nothing is
// written back to the stored status.
func EntitlementGate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		salonIDVal, exists := c.Get(ContextSalonID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "salon_not_in_context"})
			return
		}
		salonID := salonIDVal.(uint)

		// superadmin trabalha fora do gate
		if role, _ := c.Get(ContextUserRole); role == RoleSuperadmin {
			c.Next()
			return
		}

		var salon models.Salon
		if err := db.First(&salon, salonID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_salon"})
			return
		}

		decision := entitlement.Evaluate(&salon, clock.Now())
		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":  "tenant_not_entitled",
				"status": string(decision.DerivedStatus),
			})
			return
		}

		c.Next()
	}
}
