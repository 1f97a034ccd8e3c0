package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
)

// RequireRole devuelve un middleware Fiber que verifica que el rol del token
// esté dentro de los roles permitidos. Debe usarse DESPUÉS de AuthMiddleware
// (necesita LocalRole).
//
// Comportamiento:
//   - 401 Unauthorized → el token no trae rol (el AuthMiddleware debería haberlo puesto).
//   - 403 Forbidden    → el rol no está autorizado para la ruta.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "rol no encontrado en el token",
			})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "el rol '" + role + "' no tiene acceso a este recurso",
		})
	}
}
