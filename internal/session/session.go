package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	userKey         = "user_id"
	flashLevelKey   = "flash_level"
	flashMessageKey = "flash_message"
)

// LocalsUserKey is where RequireLogin stashes the authenticated user id on
// the request.
const LocalsUserKey = "session_user_id"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string
	Message string
}

// NewStore builds the cookie session store. With a nil storage fiber keeps
// sessions in memory; pass the redis storage to share them across workers.
func NewStore(storage fiber.Storage) *session.Store {
	cfg := session.ConfigDefault
	cfg.CookieHTTPOnly = true
	if storage != nil {
		cfg.Storage = storage
	}
	return session.New(cfg)
}

// SignIn binds the user id to the caller's session.
func SignIn(c *fiber.Ctx, store *session.Store, userID int) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(userKey, userID)
	return sess.Save()
}

// SignOut destroys the caller's session.
func SignOut(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// UserID reads the signed-in user id from the session cookie.
func UserID(c *fiber.Ctx, store *session.Store) (int, bool) {
	sess, err := store.Get(c)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Get(userKey).(int)
	return id, ok
}

// AddFlash stores a one-shot message; PopFlash on the next request clears it.
func AddFlash(c *fiber.Ctx, store *session.Store, level, message string) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(flashLevelKey, level)
	sess.Set(flashMessageKey, message)
	return sess.Save()
}

// PopFlash returns the pending flash, if any, and removes it.
func PopFlash(c *fiber.Ctx, store *session.Store) *Flash {
	sess, err := store.Get(c)
	if err != nil {
		return nil
	}
	message, ok := sess.Get(flashMessageKey).(string)
	if !ok || message == "" {
		return nil
	}
	level, _ := sess.Get(flashLevelKey).(string)
	sess.Delete(flashLevelKey)
	sess.Delete(flashMessageKey)
	if err := sess.Save(); err != nil {
		return nil
	}
	return &Flash{Level: level, Message: message}
}

// RequireLogin gates a web route: anonymous requests are redirected to the
// login page, authenticated ones get their user id stashed in locals for
// UserIDFromCtx.
func RequireLogin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := UserID(c, store)
		if !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.Locals(LocalsUserKey, id)
		return c.Next()
	}
}

// UserIDFromCtx reads the id RequireLogin stored on the request.
func UserIDFromCtx(c *fiber.Ctx) (int, error) {
	id, ok := c.Locals(LocalsUserKey).(int)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	return id, nil
}
