package utils

import "github.com/gin-gonic/gin"

// JSONSuccess and JSONError are the response envelope: every endpoint returns
// {"success": bool} plus either data or a machine-readable error code.

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}
