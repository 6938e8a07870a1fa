package productControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/nimblecart/ecommerce-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))

	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/:id", GetProductByID(db))
	return r, db
}

func seedCatalog(t *testing.T, db *gorm.DB) models.Category {
	t.Helper()
	category := models.Category{Name: "Books", Description: "Printed and bound."}
	require.NoError(t, db.Create(&category).Error)
	for _, p := range []models.Product{
		{CategoryID: category.ID, Name: "Cheap", Price: 5, Stock: 1},
		{CategoryID: category.ID, Name: "Mid", Price: 50, Stock: 1},
		{CategoryID: category.ID, Name: "Pricey", Price: 500, Stock: 1},
	} {
		require.NoError(t, db.Create(&p).Error)
	}
	return category
}

func listNames(t *testing.T, r *gin.Engine, path string) (int, []string) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var resp struct {
		Data []ProductView `json:"data"`
	}
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	names := make([]string, 0, len(resp.Data))
	for _, v := range resp.Data {
		names = append(names, v.Name)
	}
	return w.Code, names
}

func TestGetProductsPriceRangeInclusive(t *testing.T) {
	r, db := setupRouter(t)
	seedCatalog(t, db)

	code, names := listNames(t, r, "/products?price_min=5&price_max=50")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []string{"Cheap", "Mid"}, names)
}

func TestGetProductsDefaultsIncludeExpensiveItems(t *testing.T) {
	r, db := setupRouter(t)
	category := seedCatalog(t, db)
	luxury := models.Product{CategoryID: category.ID, Name: "Luxury", Price: 20000, Stock: 1}
	require.NoError(t, db.Create(&luxury).Error)

	// no query string at all: every product shows up
	code, names := listNames(t, r, "/products")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []string{"Cheap", "Mid", "Pricey", "Luxury"}, names)
}

func TestGetProductsSortedByPrice(t *testing.T) {
	r, db := setupRouter(t)
	seedCatalog(t, db)

	code, names := listNames(t, r, "/products?price_max=100000")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []string{"Cheap", "Mid", "Pricey"}, names)

	code, names = listNames(t, r, "/products?price_max=100000&offset=1&limit=1")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []string{"Mid"}, names)
}

func TestGetProductsByCategory(t *testing.T) {
	r, db := setupRouter(t)
	category := seedCatalog(t, db)

	code, names := listNames(t, r, "/products?category="+category.ID)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, names, 3)

	code, _ = listNames(t, r, "/products?category=missing")
	require.Equal(t, http.StatusNotFound, code)
}

func TestGetProductsRejectsBadBounds(t *testing.T) {
	r, db := setupRouter(t)
	seedCatalog(t, db)

	for _, path := range []string{
		"/products?price_min=-1",
		"/products?price_min=100&price_max=10",
		"/products?offset=-1",
		"/products?limit=-1",
		"/products?price_min=abc",
	} {
		code, _ := listNames(t, r, path)
		require.Equal(t, http.StatusBadRequest, code, path)
	}
}

func TestGetProductByID(t *testing.T) {
	r, db := setupRouter(t)
	category := seedCatalog(t, db)

	var product models.Product
	require.NoError(t, db.First(&product, "name = ?", "Mid").Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/"+product.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data ProductView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Mid", resp.Data.Name)
	require.Equal(t, category.Name, resp.Data.CategoryName)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
