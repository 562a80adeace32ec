package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/dto"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/identity"
)

// AuthHandler maneja registro y login (público).
type AuthHandler struct {
	uc *identity.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *identity.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Completar registro de un usuario invitado
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, name, password (min 8)"
// @Success      200   {object}  dto.UserDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.Register(c.Context(), in.Email, in.Name, in.Password)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToUserDTO(user))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, user, err := h.uc.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token, User: dto.ToUserDTO(user)})
}
