package response

import "github.com/gin-gonic/gin"

// Navigation tells the client which page to move to and what state to carry.
type Navigation struct {
	To    string `json:"to"`
	State any    `json:"state,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Navigate answers with a page transition instead of page content.
func Navigate(c *gin.Context, statusCode int, nav Navigation) {
	c.JSON(statusCode, gin.H{
		"success":  true,
		"navigate": nav,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Response documents the envelope every endpoint answers with.
type Response struct {
	Success  bool        `json:"success"`
	Data     any         `json:"data,omitempty"`
	Navigate *Navigation `json:"navigate,omitempty"`
	Error    *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
