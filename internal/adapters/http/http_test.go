package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/adapters/http/handlers"
	"github.com/inkwellapp/inkwell-server/internal/app"
	"github.com/inkwellapp/inkwell-server/internal/platform/config"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBookRepo implements ports.BookRepository for router tests.
type fakeBookRepo struct {
	books []domain.Book
}

func (f *fakeBookRepo) List(_ context.Context) ([]domain.Book, error) { return f.books, nil }

func (f *fakeBookRepo) GetByID(_ context.Context, id string) (*domain.Book, error) {
	return nil, domain.NewNotFoundError("book", id)
}

func (f *fakeBookRepo) Create(_ context.Context, _ *domain.Book) (string, error) {
	return "665f1f77bcf86cd799439011", nil
}

func (f *fakeBookRepo) SetFields(_ context.Context, _ string, _ map[string]any) (int64, error) {
	return 1, nil
}

func (f *fakeBookRepo) SetRatings(_ context.Context, _ string, _ domain.Ratings, _ string) (int64, error) {
	return 1, nil
}

func (f *fakeBookRepo) Delete(_ context.Context, _ string) (int64, error) { return 1, nil }

// fakePinger implements ports.Pinger.
type fakePinger struct{}

func (f *fakePinger) Ping(_ context.Context) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, corsCfg *config.CORSConfig) *gin.Engine {
	t.Helper()

	engine := gin.New()

	bookService := app.NewBookService(app.BookServiceConfig{
		Repo:   &fakeBookRepo{books: []domain.Book{{ID: "b1", Title: "The Lighthouse"}}},
		Logger: testLogger(),
	})

	healthHandler := handlers.NewHealthHandler(ports.NewHealthRegistry(), &fakePinger{}, handlers.BuildInfo{})

	SetupRouter(engine, RouterConfig{
		Logger:        testLogger(),
		AppConfig:     &config.AppConfig{Name: "inkwell-server", Version: "test", Environment: "test"},
		CORSConfig:    corsCfg,
		HealthHandler: healthHandler,
		BookHandler:   handlers.NewBookHandler(bookService),
		Timeout:       DefaultRequestTimeout,
	})

	return engine
}

func TestSetupRouter_Routes(t *testing.T) {
	engine := newTestEngine(t, nil)

	t.Run("root liveness", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, handlers.LivenessMessage, w.Body.String())
	})

	t.Run("store health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("list books", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "The Lighthouse", resp[0]["title"])
	})

	t.Run("missing book yields empty object", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/665f1f77bcf86cd799439011", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
	})

	t.Run("readiness probe", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSetupRouter_CORS(t *testing.T) {
	t.Run("allow-all reflects any origin", func(t *testing.T) {
		engine := newTestEngine(t, &config.CORSConfig{Mode: config.CORSModeAllowAll})

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set("Origin", "https://random.example")

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow-list admits configured origins", func(t *testing.T) {
		engine := newTestEngine(t, &config.CORSConfig{
			Mode:      config.CORSModeAllowList,
			AllowList: []string{"https://inkwell.app"},
		})

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set("Origin", "https://inkwell.app")

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://inkwell.app", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow-list rejects other origins", func(t *testing.T) {
		engine := newTestEngine(t, &config.CORSConfig{
			Mode:      config.CORSModeAllowList,
			AllowList: []string{"https://inkwell.app"},
		})

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set("Origin", "https://evil.example")

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSetupMinimalRouter(t *testing.T) {
	engine := gin.New()
	healthHandler := handlers.NewHealthHandler(ports.NewHealthRegistry(), &fakePinger{}, handlers.BuildInfo{})

	SetupMinimalRouter(engine, testLogger(), healthHandler)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
