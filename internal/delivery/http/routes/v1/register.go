package v1

import (
	"jobmarket/internal/delivery/http/handler"
	"jobmarket/internal/delivery/http/middleware"
	"jobmarket/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Jobs      *handler.JobsHandler
	Courses   *handler.CoursesHandler
	Skills    *handler.SkillHandler
	Ingestion *handler.IngestionHandler
}

// Register mounts the v1 API. Reads are public; writes need an admin token and
// ingestion triggers accept admin or ingest tokens.
func Register(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	adminOnly := auth.Middleware(jwt.RoleAdmin)

	RegisterJobs(r.Group("/jobs"), h.Jobs, adminOnly)

	if h.Courses != nil {
		h.Courses.RegisterRoutes(r.Group("/courses"), adminOnly)
	}
	if h.Skills != nil {
		h.Skills.RegisterRoutes(r.Group("/skills"))
	}
	if h.Ingestion != nil {
		h.Ingestion.RegisterRoutes(r.Group("/ingestion", auth.Middleware(jwt.RoleAdmin, jwt.RoleIngest)))
	}
}
