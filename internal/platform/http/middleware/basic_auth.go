// Package middleware はダッシュボード用のGinミドルウェアを提供します。
package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Realm is announced in the WWW-Authenticate challenge.
const Realm = "Jira Dashboard"

// Credentials は許可された唯一のユーザー名とbcryptハッシュ化されたパスワードです。
type Credentials struct {
	Username     string
	PasswordHash []byte
}

// NewCredentials は平文パスワードまたは事前にハッシュ化されたパスワードから Credentials を作成します。
// hash が指定されている場合はそちらを優先します。
func NewCredentials(username, password, hash string) (Credentials, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return Credentials{}, fmt.Errorf("invalid password hash: %w", err)
		}
		return Credentials{Username: username, PasswordHash: []byte(hash)}, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hash password: %w", err)
	}
	return Credentials{Username: username, PasswordHash: h}, nil
}

// BasicAuth returns a Gin middleware that accepts only the configured credential pair.
func BasicAuth(cred Credentials) gin.HandlerFunc {
	challenge := fmt.Sprintf("Basic realm=%q, charset=\"UTF-8\"", Realm)
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(cred.Username)) != 1 ||
			bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(pass)) != nil {
			c.Header("WWW-Authenticate", challenge)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
