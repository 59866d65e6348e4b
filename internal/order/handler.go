package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"

	"restaurant-backend/internal/menu"
	"restaurant-backend/internal/session"
	"restaurant-backend/internal/user"
)

type Handler struct {
	service *Service
	store   *fibersession.Store
}

func NewHandler(service *Service, store *fibersession.Store) *Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) RegisterWebRoutes(app *fiber.App, requireLogin fiber.Handler) {
	app.Post("/add_to_order", requireLogin, h.addToOrder)
	app.Get("/order", requireLogin, h.showOrder)
}

// RegisterProtectedAPIRoutes must be mounted after the JWT middleware.
func (h *Handler) RegisterProtectedAPIRoutes(app *fiber.App) {
	app.Post("/api/v1/order/items", h.apiAddItem)
	app.Get("/api/v1/order", h.apiSummary)
	app.Get("/api/v1/orders", h.apiAllOrders)
}

func (h *Handler) addToOrder(c *fiber.Ctx) error {
	userID, err := session.UserIDFromCtx(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	itemName := c.FormValue("item_name")
	if itemName == "" {
		return h.rejectAddToOrder(c, "Item name is required.")
	}

	quantity := 1
	if raw := c.FormValue("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			return h.rejectAddToOrder(c, "Invalid quantity.")
		}
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return h.rejectAddToOrder(c, "Invalid price.")
	}

	if _, err := h.service.AddItem(userID, itemName, quantity, price); err != nil {
		return h.rejectAddToOrder(c, "Could not add item to your order.")
	}

	session.AddFlash(c, h.store, "success", itemName+" added to your order.")
	return c.Redirect("/menu", fiber.StatusFound)
}

// rejectAddToOrder re-renders the menu with an error instead of letting a
// malformed form blow up the request.
func (h *Handler) rejectAddToOrder(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).Render("menu", fiber.Map{
		"Items": menu.Items(),
		"Flash": &session.Flash{Level: "danger", Message: message},
	})
}

func (h *Handler) showOrder(c *fiber.Ctx) error {
	userID, err := session.UserIDFromCtx(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	items, total, err := h.service.Summary(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("could not load order")
	}

	return c.Render("order", fiber.Map{
		"Items": items,
		"Total": total,
		"Flash": session.PopFlash(c, h.store),
	})
}

type addItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func (h *Handler) apiAddItem(c *fiber.Ctx) error {
	userID, err := user.IDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	item, err := h.service.AddItem(userID, payload.Name, payload.Quantity, payload.Price)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(item)
}

func (h *Handler) apiSummary(c *fiber.Ctx) error {
	userID, err := user.IDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, total, err := h.service.Summary(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"items": items, "total": total})
}

func (h *Handler) apiAllOrders(c *fiber.Ctx) error {
	userID, err := user.IDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.AllOrders(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(orders)
}
