package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFakeGoogle points the OAuth endpoints at a local server that trades
// "good-code" for a token and answers userinfo with userInfo.
func withFakeGoogle(t *testing.T, userInfo string) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if r.FormValue("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userInfo))
	})
	server := httptest.NewServer(mux)

	previousAuth, previousToken, previousUser := GoogleOAuthURL, GetTokenUrl, GetUserUrl
	previousEnabled, previousRegister := config.GoogleOAuthEnabled, config.RegisterEnabled
	previousId, previousSecret := config.GoogleClientId, config.GoogleClientSecret
	GoogleOAuthURL, GetTokenUrl, GetUserUrl = server.URL+"/auth", server.URL+"/token", server.URL+"/userinfo"
	config.GoogleOAuthEnabled, config.RegisterEnabled = true, true
	config.GoogleClientId, config.GoogleClientSecret = "client-id", "client-secret"
	t.Cleanup(func() {
		server.Close()
		GoogleOAuthURL, GetTokenUrl, GetUserUrl = previousAuth, previousToken, previousUser
		config.GoogleOAuthEnabled, config.RegisterEnabled = previousEnabled, previousRegister
		config.GoogleClientId, config.GoogleClientSecret = previousId, previousSecret
	})
}

func newGoogleEngine() *gin.Engine {
	engine := newTestEngine(0)
	engine.GET("/api/oauth/google", GoogleOAuth)
	engine.GET("/api/oauth/google/callback", GoogleOAuthCallback)
	return engine
}

// beginGoogleLogin follows the redirect leg and returns the issued state with
// the session cookies that carry it.
func beginGoogleLogin(t *testing.T, engine *gin.Engine) (string, []*http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/oauth/google", nil))
	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth", location.Path)
	assert.Equal(t, "client-id", location.Query().Get("client_id"))
	state := location.Query().Get("state")
	require.NotEmpty(t, state)
	return state, w.Result().Cookies()
}

func finishGoogleLogin(t *testing.T, engine *gin.Engine, state string, code string, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	query := url.Values{"state": {state}, "code": {code}}
	req := httptest.NewRequest(http.MethodGet, "/api/oauth/google/callback?"+query.Encode(), nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	return w, decoded
}

func TestGoogleOAuthDisabled(t *testing.T) {
	previous := config.GoogleOAuthEnabled
	config.GoogleOAuthEnabled = false
	t.Cleanup(func() { config.GoogleOAuthEnabled = previous })

	_, body := doJSON(t, newGoogleEngine(), http.MethodGet, "/api/oauth/google", nil)
	assert.Equal(t, false, body["success"])
}

func TestGoogleOAuthCallbackStateMismatch(t *testing.T) {
	setupTestDB(t)
	withFakeGoogle(t, `{"id":"g-1","name":"Alice","email":"alice@example.com"}`)
	engine := newGoogleEngine()

	_, cookies := beginGoogleLogin(t, engine)
	w, body := finishGoogleLogin(t, engine, "forged-state", "good-code", cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "state is empty or not same", body["message"])

	state, _ := beginGoogleLogin(t, engine)
	w, _ = finishGoogleLogin(t, engine, state, "good-code", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.False(t, model.IsGoogleIdAlreadyTaken("g-1"))
}

func TestGoogleOAuthCallbackBadCode(t *testing.T) {
	setupTestDB(t)
	withFakeGoogle(t, `{"id":"g-1","name":"Alice","email":"alice@example.com"}`)
	engine := newGoogleEngine()

	state, cookies := beginGoogleLogin(t, engine)
	w, body := finishGoogleLogin(t, engine, state, "bad-code", cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestGoogleOAuthCallbackCreatesUser(t *testing.T) {
	setupTestDB(t)
	existing := &model.User{Username: "alice", Password: "password123"}
	require.NoError(t, existing.Insert())
	withFakeGoogle(t, `{"id":"g-2","name":"Bob","email":"bob@example.com"}`)
	engine := newGoogleEngine()

	state, cookies := beginGoogleLogin(t, engine)
	w, body := finishGoogleLogin(t, engine, state, "good-code", cookies)
	requireSuccess(t, w, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, "google2", data["username"])
	assert.Equal(t, "Bob", data["display_name"])
	assert.Contains(t, w.Header().Get("Set-Cookie"), "session=")

	user := model.User{GoogleId: "g-2"}
	require.NoError(t, user.FillUserByGoogleId())
	assert.Equal(t, "google2", user.Username)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, common.RoleCommonUser, user.Role)

	// signing in again reuses the account
	state, cookies = beginGoogleLogin(t, engine)
	w, body = finishGoogleLogin(t, engine, state, "good-code", cookies)
	requireSuccess(t, w, body)
	assert.Equal(t, float64(user.Id), body["data"].(map[string]any)["id"])
}

func TestGoogleOAuthCallbackRegistrationClosed(t *testing.T) {
	setupTestDB(t)
	withFakeGoogle(t, `{"id":"g-3","name":"Carol","email":"carol@example.com"}`)
	config.RegisterEnabled = false
	engine := newGoogleEngine()

	state, cookies := beginGoogleLogin(t, engine)
	_, body := finishGoogleLogin(t, engine, state, "good-code", cookies)
	assert.Equal(t, false, body["success"])
	assert.False(t, model.IsGoogleIdAlreadyTaken("g-3"))
}

func TestGoogleOAuthCallbackRejectsExistingUser(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		status  int
		message string
	}{
		{name: "different email", email: "old@example.com", status: common.UserStatusEnabled, message: "User email is different from google email"},
		{name: "disabled", email: "dave@example.com", status: common.UserStatusDisabled, message: "User has been banned"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestDB(t)
			user := &model.User{Username: "dave", GoogleId: "g-4", Email: tt.email, Status: tt.status}
			require.NoError(t, user.Insert())
			withFakeGoogle(t, `{"id":"g-4","name":"Dave","email":"dave@example.com"}`)
			engine := newGoogleEngine()

			state, cookies := beginGoogleLogin(t, engine)
			w, body := finishGoogleLogin(t, engine, state, "good-code", cookies)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
			assert.NotContains(t, w.Header().Get("Set-Cookie"), "session=")
		})
	}
}
