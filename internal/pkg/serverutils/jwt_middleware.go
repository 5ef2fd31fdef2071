package serverutils

import (
	"ai-deckgen-be/internal/constant"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func parseBearer(ctx *fiber.Ctx, secret string) (jwt.MapClaims, error) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
	}
	return claims, nil
}

// JwtMiddleware attaches the invite-code identity carried by a bearer token.
// Requests without a valid token stay anonymous; endpoints that require a
// role enforce it themselves.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claims, err := parseBearer(ctx, secret)
		if err != nil {
			return ctx.Next()
		}
		if code, ok := claims["invite_code"].(string); ok {
			ctx.Locals(constant.ContextKeyInviteCode, code)
		}
		if role, ok := claims["role"].(string); ok {
			ctx.Locals("role", role)
		}
		return ctx.Next()
	}
}

// AdminMiddleware guards the record-inspection endpoints.
func AdminMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claims, err := parseBearer(ctx, secret)
		if err != nil {
			return err
		}
		if role, _ := claims["role"].(string); role != "admin" {
			return fiber.NewError(fiber.StatusForbidden, "Admins only")
		}
		return ctx.Next()
	}
}
