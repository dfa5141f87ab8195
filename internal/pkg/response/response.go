// Package response builds the JSON envelope every handler replies with:
// {"success": true, "data": ...} or {"success": false, "error": {...}}.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error replies with a machine-readable code and a human message.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   errorBody(code, message),
	})
}

// ErrorWithDetails attaches a payload to the error, e.g. the persisted
// reservation state after a soft validation failure.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	body := errorBody(code, message)
	body["details"] = details
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   body,
	})
}

func errorBody(code, message string) gin.H {
	return gin.H{
		"code":    code,
		"message": message,
	}
}
