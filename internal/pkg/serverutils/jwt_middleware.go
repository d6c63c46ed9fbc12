package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserID     = "user_id"
	authTokenHeader = "x-auth-token"
)

// ExtractToken reads the bearer token from x-auth-token or Authorization.
func ExtractToken(ctx *fiber.Ctx) string {
	if token := ctx.Get(authTokenHeader); token != "" {
		return token
	}
	authHeader := ctx.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

// ParseUserID verifies an HS256 token and returns its user_id claim.
func ParseUserID(tokenStr string, secret []byte) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	raw, _ := claims[LocalUserID].(string)
	return uuid.Parse(raw)
}

func JwtMiddleware(secret string) fiber.Handler {
	key := []byte(secret)
	return func(ctx *fiber.Ctx) error {
		tokenStr := ExtractToken(ctx)
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		userId, err := ParseUserID(tokenStr, key)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		ctx.Locals(LocalUserID, userId)
		return ctx.Next()
	}
}

// UserID returns the id stored by JwtMiddleware.
func UserID(ctx *fiber.Ctx) uuid.UUID {
	id, _ := ctx.Locals(LocalUserID).(uuid.UUID)
	return id
}
