package adminControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/nimblecart/ecommerce-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUploader struct{}

func (fakeUploader) Upload(ctx context.Context, localPath, folder string) (string, error) {
	return "https://images.test/" + folder + "/fake.jpg", nil
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Address{},
		&models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	))

	up := fakeUploader{}
	r := gin.New()
	r.POST("/admin/categories", CreateCategory(db))
	r.GET("/admin/categories", GetCategories(db))
	r.PUT("/admin/categories/:id", UpdateCategory(db))
	r.DELETE("/admin/categories/:id", DeleteCategory(db))
	r.POST("/admin/products", CreateProduct(db, up))
	r.PUT("/admin/products/:id", UpdateProduct(db, up))
	r.DELETE("/admin/products/:id", DeleteProduct(db))
	r.GET("/admin/products", GetProducts(db))
	r.GET("/admin/products/export-excel", ExportProductsToExcel(db))
	r.GET("/admin/orders", GetOrders(db))
	r.GET("/admin/orders/:id", GetOrder(db))
	r.PUT("/admin/orders/:id", UpdateOrder(db))
	r.GET("/admin/users", GetAllUsers(db))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createCategory(t *testing.T, r *gin.Engine, name string) models.Category {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/admin/categories", gin.H{
		"name":        name,
		"description": "A well stocked shelf of " + name + ".",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func productForm(name, categoryID string) url.Values {
	return url.Values{
		"name":        {name},
		"description": {"A fine item."},
		"price":       {"20"},
		"stock":       {"5"},
		"category_id": {categoryID},
	}
}

func totalProducts(t *testing.T, db *gorm.DB, categoryID string) int {
	t.Helper()
	var category models.Category
	require.NoError(t, db.First(&category, "id = ?", categoryID).Error)
	return category.TotalProducts
}

func TestCreateCategoryStartsEmpty(t *testing.T) {
	r, db := setupRouter(t)

	category := createCategory(t, r, "Books")
	require.Equal(t, 0, totalProducts(t, db, category.ID))

	// same name again
	w := doJSON(t, r, http.MethodPost, "/admin/categories", gin.H{
		"name":        "Books",
		"description": "A well stocked shelf of Books.",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// name too short
	w = doJSON(t, r, http.MethodPost, "/admin/categories", gin.H{
		"name":        "Bo",
		"description": "A well stocked shelf.",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductLifecycleMovesCounters(t *testing.T) {
	r, db := setupRouter(t)
	books := createCategory(t, r, "Books")
	games := createCategory(t, r, "Games")

	w := doForm(t, r, http.MethodPost, "/admin/products", productForm("The Difference Engine", books.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, totalProducts(t, db, books.ID))
	require.Equal(t, 0, totalProducts(t, db, games.ID))

	var product models.Product
	require.NoError(t, db.First(&product).Error)

	// unchanged update is rejected
	w = doForm(t, r, http.MethodPut, "/admin/products/"+product.ID, productForm("The Difference Engine", books.ID))
	require.Equal(t, http.StatusConflict, w.Code)

	// moving between categories shifts both counters
	w = doForm(t, r, http.MethodPut, "/admin/products/"+product.ID, productForm("The Difference Engine", games.ID))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, totalProducts(t, db, books.ID))
	require.Equal(t, 1, totalProducts(t, db, games.ID))

	w = doForm(t, r, http.MethodDelete, "/admin/products/"+product.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, totalProducts(t, db, games.ID))
}

func TestCreateProductValidation(t *testing.T) {
	r, _ := setupRouter(t)
	books := createCategory(t, r, "Books")

	form := productForm("The Difference Engine", books.ID)
	form.Set("price", "-1")
	w := doForm(t, r, http.MethodPost, "/admin/products", form)
	require.Equal(t, http.StatusBadRequest, w.Code)

	form = productForm("The Difference Engine", books.ID)
	form.Del("stock")
	w = doForm(t, r, http.MethodPost, "/admin/products", form)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doForm(t, r, http.MethodPost, "/admin/products", productForm("The Difference Engine", "missing"))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCategory(t *testing.T) {
	r, _ := setupRouter(t)
	books := createCategory(t, r, "Books")

	w := doJSON(t, r, http.MethodPut, "/admin/categories/"+books.ID, gin.H{"name": "Books"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPut, "/admin/categories/"+books.ID, gin.H{"name": "Novels"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/admin/categories/missing", gin.H{"name": "Novels"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategoryCascadesToProducts(t *testing.T) {
	r, db := setupRouter(t)
	books := createCategory(t, r, "Books")

	w := doForm(t, r, http.MethodPost, "/admin/products", productForm("The Difference Engine", books.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doForm(t, r, http.MethodDelete, "/admin/categories/"+books.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	err := db.First(&models.Product{}).Error
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func seedOrderItem(t *testing.T, db *gorm.DB) models.OrderItem {
	t.Helper()
	user := models.User{FirstName: "Ada", LastName: "Lovelace", UserName: "ada", Email: "ada@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	address := models.Address{
		UserID: user.ID, Street: "1 Main St", City: "Springfield",
		State: "IL", PostalCode: "62701", Country: "US",
	}
	require.NoError(t, db.Create(&address).Error)
	category := models.Category{Name: "Books", Description: "Printed and bound."}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{CategoryID: category.ID, Name: "The Difference Engine", Price: 20, Stock: 5}
	require.NoError(t, db.Create(&product).Error)
	order := models.Order{UserID: user.ID}
	require.NoError(t, db.Create(&order).Error)
	item := models.OrderItem{
		OrderID:           order.ID,
		ProductID:         product.ID,
		ShippingAddressID: address.ID,
		Quantity:          2,
		PaymentMethod:     models.PaymentMethodCOD,
		Price:             40,
		Status:            models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestGetOrdersDenormalizesRows(t *testing.T) {
	r, db := setupRouter(t)
	seedOrderItem(t, db)

	w := doJSON(t, r, http.MethodGet, "/admin/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			OrderedByName   string `json:"ordered_by_name"`
			ProductName     string `json:"product_name"`
			ShippingAddress struct {
				City string `json:"city"`
			} `json:"shipping_address"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "Ada Lovelace", resp.Data[0].OrderedByName)
	require.Equal(t, "The Difference Engine", resp.Data[0].ProductName)
	require.Equal(t, "Springfield", resp.Data[0].ShippingAddress.City)

	w = doJSON(t, r, http.MethodGet, "/admin/orders?offset=-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderCompletesOnce(t *testing.T) {
	r, db := setupRouter(t)
	item := seedOrderItem(t, db)

	w := doJSON(t, r, http.MethodPut, "/admin/orders/"+item.ID, gin.H{"status": "SHIPPED"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/admin/orders/"+item.ID, gin.H{"status": "COMPLETED"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.OrderItem
	require.NoError(t, db.First(&updated, "id = ?", item.ID).Error)
	require.Equal(t, models.OrderStatusCompleted, updated.Status)

	// COMPLETED is terminal
	w = doJSON(t, r, http.MethodPut, "/admin/orders/"+item.ID, gin.H{"status": "PENDING"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPut, "/admin/orders/missing", gin.H{"status": "COMPLETED"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllUsersOmitsPasswords(t *testing.T) {
	r, db := setupRouter(t)
	seedOrderItem(t, db)

	w := doJSON(t, r, http.MethodGet, "/admin/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "ada@example.com")
	require.NotContains(t, w.Body.String(), "password")
}

func TestExportProductsToExcel(t *testing.T) {
	r, db := setupRouter(t)
	seedOrderItem(t, db)

	w := doJSON(t, r, http.MethodGet, "/admin/products/export-excel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "products.xlsx")
	require.NotZero(t, w.Body.Len())
}
