package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/helper"
	"github.com/pixelforge/pixelforge/common/logger"
	"github.com/pixelforge/pixelforge/model"
	"golang.org/x/oauth2"
)

var (
	GoogleOAuthURL = "https://accounts.google.com/o/oauth2/auth"
	GetTokenUrl    = "https://accounts.google.com/o/oauth2/token"
	GetUserUrl     = "https://www.googleapis.com/oauth2/v1/userinfo"
)

type GoogleUser struct {
	GoogleId string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GoogleClientId,
		ClientSecret: config.GoogleClientSecret,
		RedirectURL:  config.GoogleRedirectUri,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  GoogleOAuthURL,
			TokenURL: GetTokenUrl,
		},
	}
}

// GoogleOAuth godoc
// @Summary Redirect to Google sign-in
// @Tags oauth
// @Success 302
// @Router /api/oauth/google [get]
func GoogleOAuth(c *gin.Context) {
	if !config.GoogleOAuthEnabled {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "The administrator has not enabled login and registration via Google",
		})
		return
	}
	// state guards the callback against CSRF
	state := helper.GetUUID()
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.Redirect(http.StatusFound, googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline))
}

// GoogleOAuthCallback godoc
// @Summary Google sign-in callback
// @Tags oauth
// @Produce json
// @Param code query string true "authorization code"
// @Param state query string true "state issued by /api/oauth/google"
// @Success 200 {object} Response
// @Router /api/oauth/google/callback [get]
func GoogleOAuthCallback(c *gin.Context) {
	session := sessions.Default(c)
	state := c.Query("state")
	expected, _ := session.Get("oauth_state").(string)
	if state == "" || expected == "" || state != expected {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "state is empty or not same",
		})
		return
	}
	if !config.GoogleOAuthEnabled {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "The administrator has not enabled login and registration via Google",
		})
		return
	}

	ctx := c.Request.Context()
	googleUser, err := getGoogleUserByCode(ctx, c.Query("code"))
	if err != nil {
		logger.Errorf(ctx, "google oauth failed: %s", err.Error())
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	user := model.User{
		GoogleId: googleUser.GoogleId,
	}
	if model.IsGoogleIdAlreadyTaken(user.GoogleId) {
		err := user.FillUserByGoogleId()
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		if user.Email != "" && user.Email != googleUser.Email {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": "User email is different from google email",
			})
			return
		}
	} else {
		if !config.RegisterEnabled {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": "The administrator has closed new user registration",
			})
			return
		}
		user.Username = "google" + strconv.Itoa(model.GetMaxUserId()+1)
		user.DisplayName = googleUser.Name
		user.Email = googleUser.Email
		user.Role = common.RoleCommonUser
		user.Status = common.UserStatusEnabled
		if err := user.Insert(); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}
	}

	if user.Status != common.UserStatusEnabled {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "User has been banned",
		})
		return
	}
	session.Delete("oauth_state")
	setupLogin(&user, c)
}

func getGoogleUserByCode(ctx context.Context, code string) (*GoogleUser, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is empty")
	}
	oauthConfig := googleOAuthConfig()
	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GetUserUrl, nil)
	if err != nil {
		return nil, err
	}
	response, err := oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: %d", response.StatusCode)
	}
	userInfo, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	var user GoogleUser
	if err = json.Unmarshal(userInfo, &user); err != nil {
		return nil, err
	}
	if user.GoogleId == "" {
		return nil, fmt.Errorf("google user id is empty")
	}
	return &user, nil
}
