package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Session tokens are only accepted when minted by this API for its client.
const (
	TokenIssuer   = "commusics-api"
	TokenAudience = "commusics-client"
)

// SessionClaims is the validated subset of a session token. JTI and
// ExpiresAt feed the logout blacklist.
type SessionClaims struct {
	UserID    uint
	Handle    string
	JTI       string
	ExpiresAt time.Time
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// ParseSessionToken verifies the signature, issuer, audience and subject
// of a session token and returns its claims.
func ParseSessionToken(secret, tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != TokenIssuer {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != TokenAudience {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token audience")
	}

	// User ID lives in the "sub" claim (RFC 7519 subject)
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	sc := &SessionClaims{UserID: uint(userID)}
	if handle, handleOk := claims["handle"].(string); handleOk {
		sc.Handle = handle
	}
	if jti, jtiOk := claims["jti"].(string); jtiOk {
		sc.JTI = jti
	}
	if exp, expOk := claims["exp"].(float64); expOk {
		sc.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return sc, nil
}
