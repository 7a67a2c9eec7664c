package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/comandaviva/comanda-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func orderRouter(companyID uint) *gin.Engine {
	r := setupTestRouter()
	auth := mockAuthMiddleware(1, companyID, models.RoleAdmin)
	r.GET("/orders", auth, ListOrders)
	r.POST("/orders", auth, CreateOrder)
	r.GET("/orders/:id", auth, GetOrder)
	r.PUT("/orders/:id", auth, EditOrder)
	r.POST("/orders/:id/confirm", auth, ConfirmOrder)
	r.POST("/orders/:id/cancel", auth, CancelOrder)
	r.PATCH("/orders/:id/status", auth, SetOrderStatus)
	return r
}

func deliveryOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"type": "delivery",
		"customer": map[string]interface{}{
			"name":    "Maria Silva",
			"phone":   "+5511999990000",
			"address": "Rua das Flores 123",
		},
		"items": []map[string]interface{}{
			{"name": "Pizza Margherita", "price": 40, "quantity": 1},
			{"name": "Soda", "price": 8, "quantity": 2},
		},
		"delivery_fee": 5,
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	setupTestDB(t)
	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(1, 1, models.RoleWaiter), CreateOrder)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:           "Successfully create delivery order",
			body:           deliveryOrderBody(),
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "PED001", data["number"])
				assert.Equal(t, "pending", data["status"])
				assert.Equal(t, 56.0, data["subtotal"])
				assert.Equal(t, 5.0, data["delivery_fee"])
				assert.Equal(t, 61.0, data["total"])

				customer := data["customer"].(map[string]interface{})
				assert.Equal(t, "Maria Silva", customer["name"])
			},
		},
		{
			name: "Fail with unknown type",
			body: map[string]interface{}{
				"type":  "drive-thru",
				"items": []map[string]interface{}{{"name": "Pizza", "price": 40, "quantity": 1}},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_ORDER",
		},
		{
			name: "Fail with empty items",
			body: map[string]interface{}{
				"type":  "counter",
				"items": []map[string]interface{}{},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_ORDER",
		},
		{
			name: "Fail delivery without customer",
			body: map[string]interface{}{
				"type":  "delivery",
				"items": []map[string]interface{}{{"name": "Pizza", "price": 40, "quantity": 1}},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_ORDER",
		},
		{
			name: "Fail table order without label",
			body: map[string]interface{}{
				"type":  "table",
				"items": []map[string]interface{}{{"name": "Pizza", "price": 40, "quantity": 1}},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_ORDER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/orders", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			response := parseResponse(t, w)
			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestOrderLifecycleEndpoints(t *testing.T) {
	setupTestDB(t)
	router := orderRouter(1)

	// create
	w := performRequest(router, http.MethodPost, "/orders", deliveryOrderBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	orderID := int(data["id"].(float64))

	// confirm
	w = performRequest(router, http.MethodPost, fmt.Sprintf("/orders/%d/confirm", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data = parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])

	// kitchen flow
	w = performRequest(router, http.MethodPatch, fmt.Sprintf("/orders/%d/status", orderID),
		map[string]interface{}{"status": "preparing"})
	assert.Equal(t, http.StatusOK, w.Code)

	// editing a non-pending order is rejected
	w = performRequest(router, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), deliveryOrderBody())
	assert.Equal(t, http.StatusConflict, w.Code)
	errorData := parseResponse(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "ORDER_FINALIZED", errorData["code"])

	// cancel while preparing
	w = performRequest(router, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// confirming a cancelled order is rejected
	w = performRequest(router, http.MethodPost, fmt.Sprintf("/orders/%d/confirm", orderID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	setupTestDB(t)
	router := orderRouter(1)

	w := performRequest(router, http.MethodGet, "/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	errorData := parseResponse(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errorData["code"])
}

func TestOrderEndpoints_CompanyIsolation(t *testing.T) {
	setupTestDB(t)

	mine := orderRouter(1)
	w := performRequest(mine, http.MethodPost, "/orders", deliveryOrderBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	orderID := int(data["id"].(float64))

	theirs := orderRouter(2)
	w = performRequest(theirs, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(theirs, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := parseResponse(t, w)["data"].([]interface{})
	assert.Len(t, list, 0)
}

func TestSetOrderStatusEndpoint_UnknownStatus(t *testing.T) {
	setupTestDB(t)
	router := orderRouter(1)

	w := performRequest(router, http.MethodPost, "/orders", deliveryOrderBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	orderID := int(data["id"].(float64))

	w = performRequest(router, http.MethodPatch, fmt.Sprintf("/orders/%d/status", orderID),
		map[string]interface{}{"status": "microwaved"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errorData := parseResponse(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_ORDER", errorData["code"])
}
