package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"restaurant-backend/internal/config"
	"restaurant-backend/internal/database"
	"restaurant-backend/internal/menu"
	"restaurant-backend/internal/order"
	"restaurant-backend/internal/session"
	"restaurant-backend/internal/user"
)

// main wires dependencies (dependency injection) and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	var storage fiber.Storage
	if cfg.RedisAddr != "" {
		storage = session.NewRedisStorage(cfg.RedisAddr)
	}
	store := session.NewStore(storage)

	engine := html.New(cfg.ViewsDir, ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, store, []byte(cfg.JWTSecret))

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	orderHandler := order.NewHandler(orderService, store)

	menuHandler := menu.NewHandler(store)

	requireLogin := session.RequireLogin(store)

	// menu item images
	app.Static("/static", "./static")

	app.Get("/", func(c *fiber.Ctx) error {
		_, loggedIn := session.UserID(c, store)
		return c.Render("index", fiber.Map{
			"LoggedIn": loggedIn,
			"Flash":    session.PopFlash(c, store),
		})
	})

	userHandler.RegisterWebRoutes(app, requireLogin)
	menuHandler.RegisterWebRoutes(app)
	orderHandler.RegisterWebRoutes(app, requireLogin)

	// public API routes go before the JWT middleware
	userHandler.RegisterPublicAPIRoutes(app)
	menuHandler.RegisterPublicAPIRoutes(app)

	app.Use("/api/v1", jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	orderHandler.RegisterProtectedAPIRoutes(app)

	log.Printf("listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
