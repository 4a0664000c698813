package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wgpuguide/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, svc service.GuideService) {
	app.Get("/", Home(svc))
	app.Get("/healthz", LivenessProbe())
	app.Get("/health", HealthCheck(svc))
	app.Get("/guide", GuideIndex(svc))
	app.Get("/guide/:slug", GuidePage(svc))
	app.Get("/donate", Donate())
}

// Home renders the landing page with the chapter list.
func Home(svc service.GuideService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		chapters, err := svc.Chapters(c.UserContext())
		if err != nil {
			return renderError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
		return c.Render("home", fiber.Map{
			"Title":    "The wgpu Guide",
			"Chapters": chapters,
		}, "layouts/main")
	}
}

// GuideIndex redirects /guide to the first chapter.
func GuideIndex(svc service.GuideService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug, err := svc.FirstSlug(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrNoChapters) {
				return renderError(c, fiber.StatusNotFound, "Page not found")
			}
			return renderError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
		return c.Redirect("/guide/"+slug, fiber.StatusFound)
	}
}

// GuidePage renders a single guide chapter.
func GuidePage(svc service.GuideService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")

		page, err := svc.Page(c.UserContext(), slug)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrSlugRequired) {
				return renderError(c, fiber.StatusNotFound, "Page not found")
			}
			return renderError(c, fiber.StatusInternalServerError, "Something went wrong")
		}

		chapters, err := svc.Chapters(c.UserContext())
		if err != nil {
			return renderError(c, fiber.StatusInternalServerError, "Something went wrong")
		}

		return c.Render("guide", fiber.Map{
			"Title":    page.Title,
			"Page":     page,
			"Chapters": chapters,
		}, "layouts/main")
	}
}

// Donate renders the static donation page.
func Donate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("donate", fiber.Map{
			"Title": "Donate",
		}, "layouts/main")
	}
}

// HealthCheck reports whether the guide content loaded; the container
// healthcheck points here besides probing /.
func HealthCheck(svc service.GuideService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := svc.FirstSlug(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy"})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// NotFound renders the 404 page for any route no other handler claimed.
// Register it last.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderError(c, fiber.StatusNotFound, "Page not found")
	}
}
