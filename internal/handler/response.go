// Package handler implements the HTTP API.
package handler

import (
	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: {success, data} on the
// happy path, {success, message} on failure.

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
