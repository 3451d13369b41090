package controller

import (
	"net/http"
	"strings"
	"testing"

	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	engine := newTestEngine(0)
	engine.POST("/api/user/register", Register)
	engine.POST("/api/user/login", Login)
	engine.GET("/api/user/logout", Logout)

	w, body := doJSON(t, engine, http.MethodPost, "/api/user/register", map[string]any{
		"username": "alice",
		"password": "password123",
	})
	requireSuccess(t, w, body)

	_, body = doJSON(t, engine, http.MethodPost, "/api/user/register", map[string]any{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Username is already taken", body["message"])

	_, body = doJSON(t, engine, http.MethodPost, "/api/user/register", map[string]any{
		"username": "bob",
		"password": "short",
	})
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Input is illegal")

	w, body = doJSON(t, engine, http.MethodPost, "/api/user/login", map[string]any{
		"username": "alice",
		"password": "password123",
	})
	requireSuccess(t, w, body)
	user := body["data"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice", user["display_name"])
	assert.Equal(t, "", user["password"])
	assert.True(t, strings.Contains(w.Header().Get("Set-Cookie"), "session="))

	_, body = doJSON(t, engine, http.MethodPost, "/api/user/login", map[string]any{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, false, body["success"])

	w, body = doJSON(t, engine, http.MethodGet, "/api/user/logout", nil)
	requireSuccess(t, w, body)
}

func TestGetSelfAndAccessToken(t *testing.T) {
	setupTestDB(t)
	user := &model.User{Username: "carol", Password: "password123", DisplayName: "Carol"}
	require.NoError(t, user.Insert())

	engine := newTestEngine(user.Id)
	engine.GET("/api/user/self", GetSelf)
	engine.GET("/api/user/token", GenerateAccessToken)

	w, body := doJSON(t, engine, http.MethodGet, "/api/user/self", nil)
	requireSuccess(t, w, body)
	self := body["data"].(map[string]any)
	assert.Equal(t, "Carol", self["display_name"])
	assert.Equal(t, "", self["password"])

	w, body = doJSON(t, engine, http.MethodGet, "/api/user/token", nil)
	requireSuccess(t, w, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Bearer", data["token_type"])

	claims, err := common.ParseAccessToken(data["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user.Id, claims.UserId)
	assert.Equal(t, common.RoleCommonUser, claims.Role)
}
