package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerCategoryRoutes(v1)

	// Per-owner record routes. There is no session layer here; the owner id
	// travels in the path.
	owner := v1.Group("/users/:userID")
	registerTransactionRoutes(owner, services.Transaction)
	registerSubscriptionRoutes(owner, services.Subscription)
	registerReportingRoutes(owner, services)
}

// bindingErrorMessage turns a binding failure into a field-level message.
// Validator errors name the offending field; other errors (malformed JSON)
// fall through with their own message.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed validation on '%s'", fe.Field(), fe.Tag()))
		}
		return strings.Join(msgs, "; ")
	}
	return "Invalid request format: " + err.Error()
}
