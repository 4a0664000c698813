package handler

import (
	"github.com/gofiber/fiber/v2"

	"wgpuguide/internal/http/middleware"
)

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// renderError renders the site error page with the given status. Internal
// details never reach the response body; the request ID is included so a
// page can be correlated with the logs.
func renderError(c *fiber.Ctx, status int, title string) error {
	c.Status(status)
	if err := c.Render("error", fiber.Map{
		"Title":     title,
		"Status":    status,
		"RequestID": requestIDFromCtx(c),
	}, "layouts/main"); err != nil {
		// Views engine unavailable: degrade to plain text.
		return c.SendString(title)
	}
	return nil
}

// ErrorHandler returns a Fiber global error handler that renders the error
// page instead of Fiber's default plain-text response.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusNotFound:
			return renderError(c, status, "Page not found")
		case fiber.StatusMethodNotAllowed:
			return renderError(c, status, "Method not allowed")
		default:
			return renderError(c, status, "Something went wrong")
		}
	}
}
