package dto

import (
	"time"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
)

// InviteUserRequest invitación de un usuario por un master.
type InviteUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"` // "master" | "logistica" | "empleado"
}

// RegisterRequest registro de un usuario invitado.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest credenciales de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido más el usuario autenticado.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UpdateUserRoleRequest cambio de rol de un usuario.
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

// UserDTO representación pública de un usuario (sin hash de contraseña).
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserDTO convierte la entidad a su representación pública.
func ToUserDTO(u *entity.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserDTOs convierte una lista de entidades.
func ToUserDTOs(users []*entity.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}
