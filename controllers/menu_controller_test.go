package controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/comandaviva/comanda-api/models"
	"github.com/comandaviva/comanda-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func menuRouter(companyID uint) *gin.Engine {
	r := setupTestRouter()
	auth := mockAuthMiddleware(1, companyID, models.RoleAdmin)
	r.GET("/menu", auth, ListMenuItems)
	r.POST("/menu", auth, CreateMenuItem)
	r.PUT("/menu/:id", auth, UpdateMenuItem)
	r.DELETE("/menu/:id", auth, DeleteMenuItem)
	r.POST("/menu/:id/image", auth, UploadMenuItemImage)
	return r
}

func TestCreateMenuItemEndpoint_NamedCategoryCreated(t *testing.T) {
	db := setupTestDB(t)
	router := menuRouter(1)

	w := performRequest(router, http.MethodPost, "/menu", map[string]interface{}{
		"name":          "Pizza Margherita",
		"price":         40,
		"category_name": "Pizza",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Pizza Margherita", data["name"])
	assert.True(t, data["available"].(bool))
	category := data["category"].(map[string]interface{})
	assert.Equal(t, "Pizza", category["name"])

	// the same name reuses the category instead of duplicating it
	w = performRequest(router, http.MethodPost, "/menu", map[string]interface{}{
		"name":          "Pizza Calabresa",
		"price":         45,
		"category_name": "Pizza",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Category{}).Where("company_id = ? AND name = ?", 1, "Pizza").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateMenuItemEndpoint_UnknownCategoryID(t *testing.T) {
	setupTestDB(t)
	router := menuRouter(1)

	w := performRequest(router, http.MethodPost, "/menu", map[string]interface{}{
		"name":        "Pizza Margherita",
		"price":       40,
		"category_id": 42,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMenuItemEndpoint(t *testing.T) {
	setupTestDB(t)
	router := menuRouter(1)

	w := performRequest(router, http.MethodPost, "/menu", map[string]interface{}{
		"name":          "Pizza Margherita",
		"price":         40,
		"category_name": "Pizza",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	itemID := int(data["id"].(float64))

	available := false
	w = performRequest(router, http.MethodPut, fmt.Sprintf("/menu/%d", itemID), map[string]interface{}{
		"name":          "Pizza Margherita",
		"price":         44,
		"category_name": "Pizza",
		"available":     available,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data = parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 44.0, data["price"])
	assert.False(t, data["available"].(bool))
}

func TestDeleteMenuItemEndpoint_RemovesStoredImage(t *testing.T) {
	db := setupTestDB(t)
	mock := services.NewMockImageService()
	mock.SetAsMockForTesting()
	defer services.SetImageService(nil)

	router := menuRouter(1)

	w := performRequest(router, http.MethodPost, "/menu", map[string]interface{}{
		"name":          "Pizza Margherita",
		"price":         40,
		"category_name": "Pizza",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	itemID := int(data["id"].(float64))

	// upload an image through the mock
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "margherita.png")
	assert.NoError(t, err)
	part.Write([]byte("fake png content"))
	writer.Close()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/menu/%d/image", itemID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w2 := performRawRequest(router, req)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.True(t, mock.ImageExists("menu/mock_margherita.png"))

	// listing now carries a presigned URL
	w = performRequest(router, http.MethodGet, "/menu", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := parseResponse(t, w)["data"].([]interface{})
	item := list[0].(map[string]interface{})
	assert.Contains(t, item["image_url"], "menu/mock_margherita.png")

	// deleting the item deletes the image too
	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/menu/%d", itemID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, mock.ImageExists("menu/mock_margherita.png"))

	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUploadMenuItemImageEndpoint_RejectsBadExtension(t *testing.T) {
	setupTestDB(t)
	mock := services.NewMockImageService()
	mock.SetAsMockForTesting()
	defer services.SetImageService(nil)

	router := menuRouter(1)

	w := performRequest(router, http.MethodPost, "/menu", map[string]interface{}{
		"name":          "Pizza Margherita",
		"price":         40,
		"category_name": "Pizza",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	itemID := int(data["id"].(float64))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("image", "menu.pdf")
	part.Write([]byte("not an image"))
	writer.Close()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/menu/%d/image", itemID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w2 := performRawRequest(router, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}
