package middleware

import (
	"net/http"
	"strings"

	"veloservice/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ClaimsKey = "claims"

// Claims are the custom claims embedded in every access token.
// Exactly one of UserID / ServiceCenterID is set, establishing which
// principal type is making the request.
type Claims struct {
	UserID          *uint  `json:"user_id,omitempty"`
	ServiceCenterID *uint  `json:"service_center_id,omitempty"`
	Email           string `json:"email"`
	jwt.RegisteredClaims
}

// IsUser reports whether the token belongs to a bicycle owner.
func (c *Claims) IsUser() bool { return c != nil && c.UserID != nil }

// IsServiceCenter reports whether the token belongs to a service center.
func (c *Claims) IsServiceCenter() bool { return c != nil && c.ServiceCenterID != nil }

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		// A token must identify exactly one principal type.
		if claims.IsUser() == claims.IsServiceCenter() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireUser rejects requests not made by a bicycle owner token.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetClaims(c).IsUser() {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("User account required"))
			return
		}
		c.Next()
	}
}

// RequireServiceCenter rejects requests not made by a service center token.
func RequireServiceCenter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetClaims(c).IsServiceCenter() {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Service center account required"))
			return
		}
		c.Next()
	}
}

// GetClaims retrieves typed claims from the Gin context.
func GetClaims(c *gin.Context) *Claims {
	claims, _ := c.MustGet(ClaimsKey).(*Claims)
	return claims
}
