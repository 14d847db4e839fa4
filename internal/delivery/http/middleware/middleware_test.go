package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"referhub/internal/domain/access"
	"referhub/internal/domain/user"
	"referhub/internal/pkg/jwt"
	"referhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, res *http.Response) envelope {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("decode %q: %v", b, err)
	}
	return env
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	return app
}

type stubSessions struct {
	s   access.Session
	err error
}

func (s stubSessions) Load(context.Context, uuid.UUID) (access.Session, error) {
	return s.s, s.err
}

func withUser(id uuid.UUID) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals(CtxUserIDKey, id)
		return c.Next()
	}
}

func ok(c fiber.Ctx) error { return c.SendString("ok") }

func TestRequireRole_RedirectsOtherRoles(t *testing.T) {
	id := uuid.New()
	mw := NewAccessMiddleware(stubSessions{s: access.Session{UserID: id, Role: user.RoleCandidate}})

	app := newApp()
	app.Get("/poster", withUser(id), mw.RequireRole(user.RolePoster), ok)
	app.Get("/candidate", withUser(id), mw.RequireRole(user.RoleCandidate), ok)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/poster", nil))
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.StatusCode)
	}
	var data struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(decode(t, res).Data, &data); err != nil || data.Redirect != "/candidate" {
		t.Fatalf("expected redirect to /candidate, got %+v err=%v", data, err)
	}

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/candidate", nil))
	if err != nil || res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %v err=%v", res.StatusCode, err)
	}
}

func TestRequireOnboarded_SendsToOnboarding(t *testing.T) {
	id := uuid.New()
	mw := NewAccessMiddleware(stubSessions{s: access.Session{UserID: id, Role: user.RoleReferrer, FirstLogin: true}})

	app := newApp()
	app.Get("/inbox", withUser(id), mw.RequireRole(user.RoleReferrer), mw.RequireOnboarded(), ok)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/inbox", nil))
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.StatusCode)
	}
	var data struct {
		Redirect string `json:"redirect"`
	}
	_ = json.Unmarshal(decode(t, res).Data, &data)
	if data.Redirect != "/onboarding/referrer" {
		t.Fatalf("unexpected redirect %q", data.Redirect)
	}
}

func TestSession_BannedAndUnknownUsers(t *testing.T) {
	id := uuid.New()

	banned := NewAccessMiddleware(stubSessions{s: access.Session{UserID: id, Role: user.RolePoster, Banned: true}})
	app := newApp()
	app.Get("/me", withUser(id), banned.Session(), ok)
	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	if err != nil || res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for banned user, got %v err=%v", res.StatusCode, err)
	}

	gone := NewAccessMiddleware(stubSessions{err: usecase.ErrUserNotFound})
	app = newApp()
	app.Get("/me", withUser(id), gone.Session(), ok)
	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	if err != nil || res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %v err=%v", res.StatusCode, err)
	}
}

func TestErrorMiddleware_StatusHandling(t *testing.T) {
	app := newApp()
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password is hunter2", nil, errors.New("x"))
	})
	app.Get("/down", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusServiceUnavailable, "", nil, nil)
	})
	app.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "Referral already requested", map[string]string{"k": "v"}, nil)
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/boom", fiber.StatusInternalServerError, "internal server error"},
		{"/down", fiber.StatusServiceUnavailable, "service unavailable"},
		{"/conflict", fiber.StatusConflict, "Referral already requested"},
		{"/panic", fiber.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			res, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
			if err != nil {
				t.Fatalf("test: %v", err)
			}
			if res.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, res.StatusCode)
			}
			if env := decode(t, res); env.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, env.Message)
			}
		})
	}
}

func TestAuthMiddleware_TokenSources(t *testing.T) {
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	id := uuid.New()
	accessTok, err := svc.GenerateAccessToken(id, "a@referhub.test", string(user.RoleCandidate))
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	refreshTok, err := svc.GenerateRefreshToken(id)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	app := newApp()
	app.Get("/p", NewAuthMiddleware(svc).Middleware(), func(c fiber.Ctx) error {
		if c.Locals(CtxUserIDKey).(uuid.UUID) != id || c.Locals(CtxRoleKey).(string) != "candidate" {
			return fiber.ErrTeapot
		}
		return c.SendString("ok")
	})

	do := func(r *http.Request) int {
		t.Helper()
		res, err := app.Test(r)
		if err != nil {
			t.Fatalf("test: %v", err)
		}
		return res.StatusCode
	}

	r := httptest.NewRequest(http.MethodGet, "/p", nil)
	r.Header.Set("Authorization", "Bearer "+accessTok)
	if got := do(r); got != fiber.StatusOK {
		t.Fatalf("bearer: expected 200, got %d", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/p", nil)
	r.Header.Set("Authorization", "Bearer "+refreshTok)
	if got := do(r); got != fiber.StatusUnauthorized {
		t.Fatalf("refresh token as access: expected 401, got %d", got)
	}

	if got := do(httptest.NewRequest(http.MethodGet, "/p?token="+accessTok, nil)); got != fiber.StatusUnauthorized {
		t.Fatalf("query token without upgrade: expected 401, got %d", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/p?token="+accessTok, nil)
	r.Header.Set("Upgrade", "websocket")
	if got := do(r); got != fiber.StatusOK {
		t.Fatalf("query token on upgrade: expected 200, got %d", got)
	}
}

func TestBearerTokenFromHeader(t *testing.T) {
	cases := map[string]bool{
		"":              false,
		"Bearer":        false,
		"Basic abc":     false,
		"bearer abc":    true,
		"Bearer  abc  ": true,
	}
	for in, want := range cases {
		if _, got := BearerTokenFromHeader(in); got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}
