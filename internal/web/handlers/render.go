package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/session"
)

// render injects the auth context and pending flashes every template
// expects, then renders the named view inside the layout.
func render(c *fiber.Ctx, sessions *session.Manager, template string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["Auth"] = session.FromContext(c)
	bind["Flashes"] = sessions.ConsumeFlashes(c)
	return c.Render(template, bind)
}
