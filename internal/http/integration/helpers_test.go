package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lojaweb/catalog/internal/auth"
	"github.com/lojaweb/catalog/internal/config"
	"github.com/lojaweb/catalog/internal/db"
	"github.com/lojaweb/catalog/internal/domain/product"
	apphttp "github.com/lojaweb/catalog/internal/http"
	"github.com/lojaweb/catalog/internal/http/handlers"
)

const (
	adminLogin    = "admin"
	adminPassword = "admin-pass"
)

func testConfig() config.Config {
	return config.Config{
		Env:                 "test",
		Store:               config.StoreMemory,
		JWTSecret:           "test-secret-key",
		JWTAccessTTLSeconds: 3600,
		RolesDelimiter:      ";",
		ProtectReads:        true,
		AdminLogin:          adminLogin,
		AdminPassword:       adminPassword,
		AdminName:           "Test Admin",
		AdminEmail:          "admin@example.com",
	}
}

type stores struct {
	products handlers.ProductStore
	users    apphttp.UserStore
}

func newTestRouter(t *testing.T, cfg config.Config, s stores) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if _, err := db.EnsureAdminUser(context.Background(), s.users, cfg); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return apphttp.NewRouter(logger, apphttp.Deps{
		Config:   cfg,
		Products: s.products,
		Users:    s.users,
		Tokens:   auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLSeconds)*time.Second),
	})
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doRaw sends body as-is with a JSON content type.
func doRaw(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProduct(t *testing.T, w *httptest.ResponseRecorder) product.Product {
	t.Helper()

	var p product.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode product: %v body=%s", err, w.Body.String())
	}
	return p
}

func login(t *testing.T, r http.Handler, login, password string) handlers.LoginResponse {
	t.Helper()

	w := do(t, r, http.MethodPost, "/seguranca/login", "", map[string]string{"login": login, "senha": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body=%s", login, w.Code, w.Body.String())
	}

	var resp handlers.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v body=%s", err, w.Body.String())
	}
	return env.Error.Code
}
