package response

import "github.com/gin-gonic/gin"

// Every endpoint answers in one of two envelopes: {"success":true,"data":...}
// or {"success":false,"error":{"code","message"}}. Handlers go through these
// helpers so clients never see a third shape.

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes a failure envelope. Code is a stable machine-readable token
// (INVALID_CREDENTIALS, FORBIDDEN, ...); message is for humans and may change.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   errorBody{Code: code, Message: message},
	})
}

// ErrorWithDetails carries per-field validation messages alongside the code.
func ErrorWithDetails(c *gin.Context, status int, code, message string, details map[string]string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   errorBody{Code: code, Message: message, Details: details},
	})
}
