package repository

import "github.com/jhoicas/pcbstock-api/internal/domain/entity"

// UserRepository puerto de usuarios (autenticación y actor de producción).
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
}
