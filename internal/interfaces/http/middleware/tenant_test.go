package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTenantRouter(cfg TenantConfig) *gin.Engine {
	router := gin.New()
	router.Use(Tenant(cfg))
	router.GET("/api/v1/products", func(c *gin.Context) {
		id, ok := GetTenantID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestTenantMiddleware(t *testing.T) {
	tenantID := uuid.New()

	t.Run("resolves tenant from header", func(t *testing.T) {
		router := newTenantRouter(DefaultTenantConfig())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set(TenantHeaderKey, tenantID.String())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tenantID.String(), w.Body.String())
	})

	t.Run("missing header rejected without default", func(t *testing.T) {
		router := newTenantRouter(DefaultTenantConfig())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_BAD_REQUEST")
	})

	t.Run("falls back to configured default", func(t *testing.T) {
		cfg := DefaultTenantConfig()
		cfg.DefaultTenantID = tenantID.String()
		router := newTenantRouter(cfg)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tenantID.String(), w.Body.String())
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		router := newTenantRouter(DefaultTenantConfig())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set(TenantHeaderKey, "not-a-uuid")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("skip paths bypass tenant resolution", func(t *testing.T) {
		router := newTenantRouter(DefaultTenantConfig())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
