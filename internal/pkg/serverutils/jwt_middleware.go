package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const AnonymousUserId = "anonymous"

// JwtMiddleware rejects requests without a valid bearer token.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	ctx.Locals("user_id", claims["user_id"])
	return ctx.Next()
}

// IdentityMiddleware resolves the caller identity without rejecting the request.
// History and uploads are scoped per user, but the API also serves clients that
// never authenticate, so an absent or invalid token falls back to a shared
// anonymous identity instead of a 401.
func IdentityMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		ctx.Locals("user_id", AnonymousUserId)
		return ctx.Next()
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		ctx.Locals("user_id", AnonymousUserId)
		return ctx.Next()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		ctx.Locals("user_id", AnonymousUserId)
		return ctx.Next()
	}

	if userId, ok := claims["user_id"].(string); ok && userId != "" {
		ctx.Locals("user_id", userId)
	} else {
		ctx.Locals("user_id", AnonymousUserId)
	}
	return ctx.Next()
}

// UserIdFromCtx reads the identity set by the middleware above.
func UserIdFromCtx(ctx *fiber.Ctx) string {
	if userId, ok := ctx.Locals("user_id").(string); ok && userId != "" {
		return userId
	}
	return AnonymousUserId
}
