package controllers

import (
	"net/http"
	"testing"

	"github.com/comandaviva/comanda-api/config"
	"github.com/comandaviva/comanda-api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authRouter() *gin.Engine {
	config.SetConfig(&config.Config{JWTSecret: "test-secret", GoEnv: "test"})
	r := setupTestRouter()
	r.POST("/auth/register", Register)
	r.POST("/auth/login", Login)
	r.GET("/auth/me", middleware.RequireAuth(), Me)
	return r
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"company_name": "Pizzaria Bella",
		"subdomain":    "bella",
		"email":        "owner@bella.com",
		"username":     "bella",
		"password":     "super-secret-1",
		"name":         "Giovanna Rossi",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	setupTestDB(t)
	router := authRouter()

	w := performRequest(router, http.MethodPost, "/auth/register", registerBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "bella", user["username"])
	assert.Equal(t, "admin", user["role"])
	assert.NotNil(t, user["company_id"])
	// the password hash must never leave the API
	_, exposed := user["password_hash"]
	assert.False(t, exposed)
}

func TestRegisterEndpoint_DuplicateSubdomain(t *testing.T) {
	setupTestDB(t)
	router := authRouter()

	w := performRequest(router, http.MethodPost, "/auth/register", registerBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	body := registerBody()
	body["email"] = "other@bella.com"
	body["username"] = "bella2"
	w = performRequest(router, http.MethodPost, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	errorData := parseResponse(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "ALREADY_REGISTERED", errorData["code"])
}

func TestLoginEndpoint(t *testing.T) {
	setupTestDB(t)
	router := authRouter()

	w := performRequest(router, http.MethodPost, "/auth/register", registerBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{
			name:           "Login with username",
			body:           map[string]interface{}{"login": "bella", "password": "super-secret-1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Login with email",
			body:           map[string]interface{}{"login": "owner@bella.com", "password": "super-secret-1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Wrong password",
			body:           map[string]interface{}{"login": "bella", "password": "wrong"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown user",
			body:           map[string]interface{}{"login": "nobody", "password": "super-secret-1"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/auth/login", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				data := parseResponse(t, w)["data"].(map[string]interface{})
				assert.NotEmpty(t, data["token"])
			}
		})
	}
}

func TestMeEndpoint(t *testing.T) {
	setupTestDB(t)
	router := authRouter()

	w := performRequest(router, http.MethodPost, "/auth/register", registerBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	token := parseResponse(t, w)["data"].(map[string]interface{})["token"].(string)

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := performRawRequest(router, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	data := parseResponse(t, w2)["data"].(map[string]interface{})
	assert.Equal(t, "bella", data["username"])
	company := data["company"].(map[string]interface{})
	assert.Equal(t, "Pizzaria Bella", company["name"])
}

func TestMeEndpoint_MissingToken(t *testing.T) {
	setupTestDB(t)
	router := authRouter()

	w := performRequest(router, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	errorData := parseResponse(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "MISSING_TOKEN", errorData["code"])
}
