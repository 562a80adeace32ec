package entity

import "time"

// Roles válidos para User.
const (
	RoleMaster    = "master"
	RoleLogistica = "logistica"
	RoleEmpleado  = "empleado"
)

// Estados de cuenta. Un usuario nace "invitado" al ser creado por un master
// y pasa a "activo" cuando completa el registro con su email (en minúsculas).
const (
	UserStatusInvitado = "invitado"
	UserStatusActivo   = "activo"
)

// User representa un usuario del sistema. La clave de identidad inmutable es
// el email case-folded (único en la tabla).
type User struct {
	ID           string
	Email        string // siempre almacenado case-folded
	Name         string
	Role         string // master, logistica, empleado
	Status       string // invitado, activo
	PasswordHash string // bcrypt; vacío mientras el usuario siga invitado
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol pertenece al vocabulario conocido.
func ValidRole(role string) bool {
	switch role {
	case RoleMaster, RoleLogistica, RoleEmpleado:
		return true
	}
	return false
}

// Actor es la identidad resuelta que ejecuta una operación de negocio.
// La produce el resolver de roles a partir del principal autenticado.
type Actor struct {
	ID     string
	Name   string
	Email  string
	Role   string
	Status string
}
