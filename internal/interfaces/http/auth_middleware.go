package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/dto"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/pkg/jwt"
)

// LocalActor key del actor resuelto en c.Locals.
const LocalActor = "actor"

// RoleResolver resuelve el rol vigente de un principal autenticado. Se
// consulta en CADA petición: un cambio de rol o una eliminación surten
// efecto inmediato, sin esperar a que expire el token.
type RoleResolver interface {
	ResolveRole(ctx context.Context, principalEmail string) (*entity.Actor, error)
}

// AuthMiddleware valida el Bearer Token JWT, resuelve el actor por email y lo
// deja en c.Locals. El rol del token NO se usa para autorizar; solo el
// resuelto contra la base de datos.
func AuthMiddleware(jwtSecret string, resolver RoleResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		_, email, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		actor, err := resolver.ResolveRole(c.Context(), email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if actor == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNKNOWN_PRINCIPAL", Message: "usuario no registrado"})
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto (después del middleware de auth).
func GetActor(c *fiber.Ctx) *entity.Actor {
	v := c.Locals(LocalActor)
	if v == nil {
		return nil
	}
	a, _ := v.(*entity.Actor)
	return a
}
