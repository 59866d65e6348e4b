package user

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"restaurant-backend/internal/session"
)

func makeAppWithUserHandler(repo Repository) (*fiber.App, *Handler) {
	engine := html.New("../../views", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	store := session.NewStore(nil)
	handler := NewHandler(NewService(repo), store, []byte("test-secret"))
	handler.RegisterWebRoutes(app, session.RequireLogin(store))
	handler.RegisterPublicAPIRoutes(app)
	return app, handler
}

func TestRegister_ShortPasswordFailsValidation(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, _ := makeAppWithUserHandler(repo)

	form := url.Values{}
	form.Set("name", "alice")
	form.Set("phone", "0123456789")
	form.Set("password", "123")
	form.Set("password2", "123")

	req := httptest.NewRequest("POST", "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", res.StatusCode)
	}

	// no write happened
	if _, err := repo.GetByName("alice"); err != ErrNotFound {
		t.Fatalf("expected no user to be created, got %v", err)
	}
}

func TestRegister_SuccessRedirectsToLogin(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, _ := makeAppWithUserHandler(repo)

	form := url.Values{}
	form.Set("name", "alice")
	form.Set("phone", "0123456789")
	form.Set("password", "secret1")
	form.Set("password2", "secret1")

	req := httptest.NewRequest("POST", "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 on success, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}

	stored, err := repo.GetByName("alice")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Fatalf("plaintext password must not be stored, got %q", stored.PasswordHash)
	}
}

func TestRegister_DuplicateNameConflicts(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, _ := makeAppWithUserHandler(repo)

	form := url.Values{}
	form.Set("name", "alice")
	form.Set("phone", "0123456789")
	form.Set("password", "secret1")
	form.Set("password2", "secret1")

	for i, want := range []int{fiber.StatusFound, fiber.StatusConflict} {
		req := httptest.NewRequest("POST", "/register", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		res, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != want {
			t.Fatalf("attempt %d: expected %d, got %d", i+1, want, res.StatusCode)
		}
	}
}

func TestLogin_WrongPasswordFlashes(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, h := makeAppWithUserHandler(repo)

	if _, err := h.service.Register("bob", "0123456789", "secret1"); err != nil {
		t.Fatal(err)
	}

	form := url.Values{}
	form.Set("name", "bob")
	form.Set("password", "wrong")

	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Invalid name or password") {
		t.Fatalf("expected flash message in body, got %s", string(body))
	}
}

func TestLogin_SuccessSetsSessionCookie(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, h := makeAppWithUserHandler(repo)

	if _, err := h.service.Register("bob", "0123456789", "secret1"); err != nil {
		t.Fatal(err)
	}

	form := url.Values{}
	form.Set("name", "bob")
	form.Set("password", "secret1")

	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 on login, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if cookie := res.Header.Get("Set-Cookie"); cookie == "" {
		t.Fatal("expected a session cookie to be set")
	}
}

func TestAPISignInIssuesToken(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app, h := makeAppWithUserHandler(repo)

	if _, err := h.service.Register("carol", "0123456789", "secret1"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"name":"carol","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "token") {
		t.Fatalf("expected token in response, got %s", string(body))
	}
	if strings.Contains(string(body), "secret1") {
		t.Fatal("response must not leak the password")
	}
}
