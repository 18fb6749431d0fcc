package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the ray id back to the caller.
const Header = "X-Ray-Id"

// New returns middleware that assigns a unique ray id to each request.
// The id is stored in locals under "ray_id" and echoed in the response
// header so client reports can be matched against server logs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Honor an incoming ray id so multi-hop traces stay connected.
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
