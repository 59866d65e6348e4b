package menu

import (
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"restaurant-backend/internal/session"
)

type Handler struct {
	store *fibersession.Store
}

func NewHandler(store *fibersession.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterWebRoutes(app *fiber.App) {
	app.Get("/menu", h.showMenu)
}

func (h *Handler) RegisterPublicAPIRoutes(app *fiber.App) {
	app.Get("/api/v1/menu", h.apiMenu)
}

func (h *Handler) showMenu(c *fiber.Ctx) error {
	return c.Render("menu", fiber.Map{
		"Items": Items(),
		"Flash": session.PopFlash(c, h.store),
	})
}

func (h *Handler) apiMenu(c *fiber.Ctx) error {
	return c.JSON(Items())
}
