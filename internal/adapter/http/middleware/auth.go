package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

const (
	actorKey        = "actor"
	TokenCookieName = "token"
)

var errMissingToken = errors.New("missing access token")

// Claims are issued by the account service that owns sign-in.
type Claims struct {
	jwt.RegisteredClaims

	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

type Auth struct {
	secret []byte
	leeway time.Duration
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret), leeway: 30 * time.Second}
}

// RequireUser verifies the session token and stores the actor on the context.
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := extractAccessToken(c)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		claims := &Claims{}
		_, err = jwt.ParseWithClaims(tokenStr, claims, a.keyfunc,
			jwt.WithLeeway(a.leeway),
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || claims.UserID == "" {
			abortUnauthorized(c)
			return
		}

		c.Set(actorKey, domain.Actor{UserID: claims.UserID, IsAdmin: claims.IsAdmin})
		c.Next()
	}
}

// RequireAdmin must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if !actor.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgAdminOnly, GetLang(c)))
			return
		}
		c.Next()
	}
}

// Sign issues a token for the given actor. The service itself never signs
// in users; this serves tooling and tests.
func (a *Auth) Sign(actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  actor.UserID,
		IsAdmin: actor.IsAdmin,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func GetActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

func (a *Auth) keyfunc(*jwt.Token) (any, error) {
	return a.secret, nil
}

func extractAccessToken(c *gin.Context) (string, error) {
	authz := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		if token := strings.TrimSpace(authz[7:]); token != "" {
			return token, nil
		}
	}
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errMissingToken
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, GetLang(c)))
}
