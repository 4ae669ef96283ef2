// Package response provides the shared JSON response shapes for the HTTP
// transport: a flat payload on success, {error, details?} on failure.
package response

import "github.com/gin-gonic/gin"

// OK writes a successful flat JSON payload, matching the response shapes
// named in each endpoint's own contract rather than wrapping them under a
// generic "data" key.
func OK(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Fail writes an error payload.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// FailWithDetails writes an error payload carrying additional detail, used
// for dispositions that call for {error, details}.
func FailWithDetails(c *gin.Context, status int, message, details string) {
	c.JSON(status, gin.H{"error": message, "details": details})
}
