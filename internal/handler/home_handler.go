package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rockalpatio/internal/dashboard"
)

// Home serves the dashboard landing page.
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":    CurrentUser(c),
		"modules": dashboard.Modules(),
	})
}
