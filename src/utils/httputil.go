package utils

import (
	"therapy-scheduler/logger"
	"therapy-scheduler/src/schemas"

	"github.com/gin-gonic/gin"
)

// SendError renders an RFC 7807 error response and logs it.
func SendError(ctx *gin.Context, status int, title string, detail string, instance string) {
	errorResp := schemas.NewErrorResponse(status, title, detail, instance)
	ctx.JSON(status, errorResp)
	logger.Logger.Error(title + ": " + detail)
}
