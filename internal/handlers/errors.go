package handlers

import (
	"errors"

	"optical-booking-server/internal/scheduling"
	"optical-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondSchedulingError maps scheduling engine errors onto HTTP
// responses: bad input becomes 400, schedule conflicts become 409,
// anything else is a server error.
func respondSchedulingError(c *gin.Context, err error) {
	var validationErr *scheduling.ValidationError
	if errors.As(err, &validationErr) {
		utils.BadRequest(c, validationErr.Error())
		return
	}
	var conflictErr *scheduling.ConflictError
	if errors.As(err, &conflictErr) {
		utils.Conflict(c, conflictErr.Error())
		return
	}
	utils.InternalServerError(c, err.Error())
}
