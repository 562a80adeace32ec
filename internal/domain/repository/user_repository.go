package repository

import "github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// GetByEmail espera el email ya case-folded (clave de identidad inmutable).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
