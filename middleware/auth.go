package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common"
	"github.com/pixelforge/pixelforge/model"
)

func authHelper(c *gin.Context, minRole int) {
	session := sessions.Default(c)
	username := session.Get("username")
	role := session.Get("role")
	id := session.Get("id")
	if username == nil {
		// Check access token
		accessToken := strings.TrimPrefix(c.Request.Header.Get("Authorization"), "Bearer ")
		if accessToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Not authorized for this operation, not logged in and no access token provided",
			})
			c.Abort()
			return
		}
		claims, err := common.ParseAccessToken(accessToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Not authorized to perform this operation, access token is invalid",
			})
			c.Abort()
			return
		}
		user, err := model.GetUserById(claims.UserId, false)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Not authorized to perform this operation, user does not exist",
			})
			c.Abort()
			return
		}
		username = user.Username
		role = user.Role
		id = user.Id
	}
	userEnabled, err := model.CacheIsUserEnabled(id.(int))
	if err != nil {
		abortWithMessage(c, http.StatusInternalServerError, err.Error())
		return
	}
	if !userEnabled {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "User has been banned",
			"message": "User has been banned",
		})
		session.Clear()
		_ = session.Save()
		c.Abort()
		return
	}
	if role.(int) < minRole {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "Forbidden",
			"message": "You do not have permission to perform this operation. Insufficient permissions.",
		})
		c.Abort()
		return
	}
	c.Set("username", username)
	c.Set("role", role)
	c.Set("id", id)
	c.Next()
}

func UserAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		authHelper(c, common.RoleCommonUser)
	}
}

func AdminAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		authHelper(c, common.RoleAdminUser)
	}
}
