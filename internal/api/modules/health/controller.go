package health

import (
	"net/http"

	"github.com/ethanbaker/minutes/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// Return status of the API
func getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, sdk.HealthResponse{
		Status:  "OK",
		Message: "Server is running",
	})
}
