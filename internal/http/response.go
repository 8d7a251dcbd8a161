// Package http contains the Fiber handlers for the analytics API.
package http

import (
	"github.com/gofiber/fiber/v2"
)

// APIResponse is the envelope every endpoint answers with. The status
// code is mirrored in the body so dashboard clients can branch on it
// without inspecting transport details.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Error      string      `json:"error,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func respondError(c *fiber.Ctx, status int, message, detail string) error {
	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Message:    message,
		Data:       nil,
		Error:      detail,
	})
}
