package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates gateway-issued access tokens. Tokens are HS256
// JWTs signed with the gateway JWT secret; claims carry sub, email and role
// as strings.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// WebSocket upgrades can't set an Authorization header from the
		// browser, so the token rides in a query parameter or subprotocol.
		if c.GetHeader("Upgrade") == "websocket" {
			token := c.Query("token")
			if token == "" {
				// Format: "authorization.bearer.<token>"
				subprotocols := c.GetHeader("Sec-WebSocket-Protocol")
				parts := strings.Split(subprotocols, ".")
				if len(parts) >= 3 && parts[0] == "authorization" && parts[1] == "bearer" {
					token = parts[2]
				}
			}

			if token == "" {
				// Abort without writing; the WebSocket handler owns the
				// close frame.
				c.Abort()
				return
			}

			claims, err := parseToken(token, secret)
			if err != nil {
				c.Abort()
				return
			}
			setClaims(c, claims)
			c.Next()
			return
		}

		var tokenString string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		setClaims(c, claims)

		// The gateway needs the raw token back for per-user auth calls.
		c.Set("access_token", tokenString)

		c.Next()
	}
}

func parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(string); ok {
		c.Set("user_id", sub)
	}
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}
