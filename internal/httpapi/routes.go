package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/rise-and-shine/agrovida/http/server"
	"github.com/rise-and-shine/agrovida/http/server/forward"
	"github.com/rise-and-shine/agrovida/internal/variety/usecase"
	"github.com/rise-and-shine/agrovida/web"
)

// Routes registers the API, the dashboard and the JSON 404 fallback.
// Fixed variety paths come before /:id so they are not taken for ids.
func Routes(uc *usecase.Set, renderer *server.ErrorRenderer) func(r fiber.Router) {
	return func(r fiber.Router) {
		api := r.Group("/api")

		api.Get("/health", health)
		api.Get("/crop-types", forward.ToUserAction(uc.ListCropTypes))

		v := api.Group("/varieties")

		v.Get("/", forward.ToUserAction(uc.List))
		v.Get("/search", forward.ToUserAction(uc.Search))
		v.Get("/stats", forward.ToUserAction(uc.Stats))
		v.Get("/crop-type/:cropTypeId", forward.ToUserAction(uc.ListByCropType))
		v.Get("/:id", forward.ToUserAction(uc.Get))

		v.Post("/", forward.ToUserAction(uc.Create,
			forward.WithStatus(fiber.StatusCreated),
			forward.WithMessage("Variety created successfully"),
		))
		v.Post("/bulk", forward.ToUserAction(uc.CreateBulk, forward.WithStatus(fiber.StatusCreated)))

		v.Put("/bulk", forward.ToUserAction(uc.UpdateBulk))
		v.Put("/:id", forward.ToUserAction(uc.Update, forward.WithMessage("Variety updated successfully")))

		v.Delete("/bulk", forward.ToUserAction(uc.DeleteBulk))
		v.Delete("/:id", forward.ToUserAction(uc.Delete, forward.WithMessage("Variety deleted successfully")))

		r.Use("/", filesystem.New(filesystem.Config{
			Root:  http.FS(web.FS),
			Index: "index.html",
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/api/")
			},
		}))

		r.Use(notFound(renderer))
	}
}

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func health(c *fiber.Ctx) error {
	return c.JSON(healthResponse{
		Success:   true,
		Message:   "AgroVida API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// notFound renders its own envelope: the filesystem middleware may already
// have set a 404 status, which makes the error middleware pass the error through.
func notFound(renderer *server.ErrorRenderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderer.Write(c, errx.New(
			"route not found",
			errx.WithCode(CodeRouteNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"method": c.Method(), "path": c.Path()}),
		))
	}
}
