package httpapi

import "github.com/gin-gonic/gin"

// Response is the storefront API envelope.
type Response struct {
	Message         string `json:"message"`
	Data            any    `json:"data,omitempty"`
	Error           bool   `json:"error,omitempty"`
	RequestedEntity string `json:"requested_entity,omitempty"`
}

func successResponse(c *gin.Context, message string, data any) Response {
	return Response{
		Message:         message,
		Data:            data,
		RequestedEntity: c.Request.Method + " " + c.FullPath(),
	}
}

func errorResponse(c *gin.Context, message string) Response {
	return Response{
		Message:         message,
		Error:           true,
		RequestedEntity: c.Request.Method + " " + c.FullPath(),
	}
}
