package tests

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"veloservice/internal/handler"
	"veloservice/internal/middleware"
	"veloservice/internal/service"
)

// Error policy at the HTTP boundary: validation failures come back as 400
// with the service message verbatim, anything else (driver errors, broken
// connections) is logged and surfaces as a generic 500.

func setClaims(claims *middleware.Claims) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set(middleware.ClaimsKey, claims) }
}

func TestInfrastructureErrorsAreNotLeaked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	products := newStubProductRepo()
	products.findErr = errors.New("driver: bad connection (host=10.0.0.7 dbname=veloservice)")

	h := handler.NewProductsHandler(service.NewProductService(products), nil)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/v1/products/:id", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products/1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "driver")
	assert.NotContains(t, w.Body.String(), "10.0.0.7")
}

func TestValidationErrorsPassVerbatim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	products := newStubProductRepo()
	carts := newStubCartRepo(products)
	userID := uint(1)

	h := handler.NewCartHandler(service.NewCartService(carts, products))
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(setClaims(&middleware.Claims{UserID: &userID}))
	r.POST("/v1/cart/items", h.AddItem)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/cart/items",
		strings.NewReader(`{"product_id": 42, "quantity": 1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "product not found")
}

func TestProductCreateRequiresPrice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	products := newStubProductRepo()
	centerID := uint(1)

	h := handler.NewProductsHandler(service.NewProductService(products), nil)
	r := gin.New()
	r.Use(setClaims(&middleware.Claims{ServiceCenterID: &centerID}))
	r.POST("/v1/products", h.Create)

	// an absent price is a validation error, not an implicit zero
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/products",
		strings.NewReader(`{"name":"Chain lube","category":"maintenance","stock":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Price")
	assert.Contains(t, w.Body.String(), "required")
	assert.Empty(t, products.products)
}
