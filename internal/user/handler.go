package user

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/golang-jwt/jwt/v4"

	"restaurant-backend/internal/session"
)

type Handler struct {
	service   *Service
	store     *fibersession.Store
	jwtSecret []byte
}

func NewHandler(service *Service, store *fibersession.Store, jwtSecret []byte) *Handler {
	return &Handler{service: service, store: store, jwtSecret: jwtSecret}
}

func (h *Handler) RegisterWebRoutes(app *fiber.App, requireLogin fiber.Handler) {
	app.Get("/register", h.showRegister)
	app.Post("/register", h.register)
	app.Get("/login", h.showLogin)
	app.Post("/login", h.login)
	app.Get("/logout", requireLogin, h.logout)
}

func (h *Handler) RegisterPublicAPIRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-up", h.apiSignUp)
	app.Post("/api/v1/sign-in", h.apiSignIn)
}

// registerForm is the typed request read off the registration form. All
// validation happens here, before anything reaches the service.
type registerForm struct {
	Name      string
	Phone     string
	Password  string
	Password2 string
}

func readRegisterForm(c *fiber.Ctx) registerForm {
	return registerForm{
		Name:      c.FormValue("name"),
		Phone:     c.FormValue("phone"),
		Password:  c.FormValue("password"),
		Password2: c.FormValue("password2"),
	}
}

func (f registerForm) validate() []string {
	var errs []string
	if len(f.Name) < 2 || len(f.Name) > 64 {
		errs = append(errs, "Name must be between 2 and 64 characters.")
	}
	if len(f.Phone) < 10 || len(f.Phone) > 15 {
		errs = append(errs, "Phone must be between 10 and 15 characters.")
	}
	if len(f.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters.")
	}
	if f.Password2 != f.Password {
		errs = append(errs, "Passwords do not match.")
	}
	return errs
}

func (h *Handler) showRegister(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{"Form": registerForm{}})
}

func (h *Handler) register(c *fiber.Ctx) error {
	form := readRegisterForm(c)
	if errs := form.validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).
			Render("register", fiber.Map{"Form": form, "Errors": errs})
	}

	if _, err := h.service.Register(form.Name, form.Phone, form.Password); err != nil {
		if err == ErrNameTaken {
			return c.Status(fiber.StatusConflict).
				Render("register", fiber.Map{"Form": form, "Errors": []string{"Name already taken."}})
		}
		return c.Status(fiber.StatusInternalServerError).
			Render("register", fiber.Map{"Form": form, "Errors": []string{"Registration failed, please try again."}})
	}

	session.AddFlash(c, h.store, "success", "You are registered!")
	return c.Redirect("/login", fiber.StatusFound)
}

func (h *Handler) showLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Flash": session.PopFlash(c, h.store)})
}

func (h *Handler) login(c *fiber.Ctx) error {
	name := c.FormValue("name")
	password := c.FormValue("password")

	user, err := h.service.Authenticate(name, password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			Render("login", fiber.Map{"Flash": &session.Flash{Level: "danger", Message: "Invalid name or password"}})
	}

	if err := session.SignIn(c, h.store, user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			Render("login", fiber.Map{"Flash": &session.Flash{Level: "danger", Message: "Could not start session"}})
	}

	return c.Redirect("/", fiber.StatusFound)
}

func (h *Handler) logout(c *fiber.Ctx) error {
	session.SignOut(c, h.store)
	return c.Redirect("/", fiber.StatusFound)
}

type signUpRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type signInRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) apiSignUp(c *fiber.Ctx) error {
	payload := new(signUpRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if len(payload.Name) < 2 || len(payload.Name) > 64 ||
		len(payload.Phone) < 10 || len(payload.Phone) > 15 ||
		len(payload.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid name, phone or password"})
	}

	created, err := h.service.Register(payload.Name, payload.Phone, payload.Password)
	if err != nil {
		if err == ErrNameTaken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "name already taken"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) apiSignIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, err := h.service.Authenticate(payload.Name, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid name or password"})
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   signed,
	})
}

// IDFromToken extracts the user_id claim from the JWT the jwtware middleware
// stored in c.Locals("user").
func IDFromToken(c *fiber.Ctx) (int, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := claims["user_id"].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}
