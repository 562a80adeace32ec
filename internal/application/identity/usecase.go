package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/policy"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/pkg/jwt"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/pkg/mailkey"
)

// JWTConfig configuración para emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase resolver de identidad y gestión de usuarios: invitación por un
// master, registro del invitado (que activa la cuenta por email case-folded)
// y login. ResolveRole es el contrato que consumen los motores vía el
// middleware HTTP: pull por petición, sin estado global de sesión.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// ResolveRole mapea un principal autenticado (por email) a su actor
// {id, nombre, rol, estado}. Devuelve nil si el principal no existe.
func (uc *UseCase) ResolveRole(ctx context.Context, principalEmail string) (*entity.Actor, error) {
	user, err := uc.userRepo.GetByEmail(mailkey.Fold(principalEmail))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &entity.Actor{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}, nil
}

// Invite crea un usuario en estado "invitado" con nombre placeholder. El
// email case-folded es la clave única: invitar dos veces el mismo correo
// (en cualquier capitalización) devuelve ErrEmailAlreadyExists.
func (uc *UseCase) Invite(ctx context.Context, actor *entity.Actor, email, role string) (*entity.User, error) {
	if err := policy.Check(policy.OpInviteUser, actor); err != nil {
		return nil, err
	}
	key := mailkey.Fold(email)
	if key == "" || !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     key,
		Name:      key, // placeholder hasta completar registro
		Role:      role,
		Status:    entity.UserStatusInvitado,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Create mapea la violación de unicidad a ErrEmailAlreadyExists.
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register completa el registro de un principal invitado: enlaza su
// identidad al registro existente por email case-folded, fija nombre y
// contraseña y pasa la cuenta a "activo".
func (uc *UseCase) Register(ctx context.Context, email, name, password string) (*entity.User, error) {
	key := mailkey.Fold(email)
	if key == "" || strings.TrimSpace(name) == "" || len(password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(key)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status != entity.UserStatusInvitado {
		return nil, domain.ErrConflict
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(name)
	user.PasswordHash = string(hash)
	user.Status = entity.UserStatusActivo
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica credenciales y emite un JWT. Un usuario todavía invitado no
// puede iniciar sesión.
func (uc *UseCase) Login(ctx context.Context, email, password string) (token string, user *entity.User, err error) {
	user, err = uc.userRepo.GetByEmail(mailkey.Fold(email))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrUserNotFound
	}
	if user.Status != entity.UserStatusActivo {
		return "", nil, domain.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err = jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// List lista usuarios (vista master/logística).
func (uc *UseCase) List(ctx context.Context, actor *entity.Actor, limit, offset int) ([]*entity.User, error) {
	if err := policy.Check(policy.OpListUsers, actor); err != nil {
		return nil, err
	}
	return uc.userRepo.List(limit, offset)
}

// UpdateRole cambia el rol de un usuario (solo master).
func (uc *UseCase) UpdateRole(ctx context.Context, actor *entity.Actor, userID, role string) error {
	if err := policy.Check(policy.OpManageUsers, actor); err != nil {
		return err
	}
	if !entity.ValidRole(role) {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// Delete elimina un usuario (solo master).
func (uc *UseCase) Delete(ctx context.Context, actor *entity.Actor, userID string) error {
	if err := policy.Check(policy.OpManageUsers, actor); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(userID)
}
