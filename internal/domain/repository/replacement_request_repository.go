package repository

import "github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"

// ReplacementRequestRepository puerto de persistencia para solicitudes de reemplazo.
// Create devuelve domain.ErrConflict si ya existe una solicitud pendiente para
// el mismo activo (índice único parcial como respaldo del chequeo del motor).
type ReplacementRequestRepository interface {
	Create(req *entity.ReplacementRequest) error
	GetByID(id string) (*entity.ReplacementRequest, error)
	Update(req *entity.ReplacementRequest) error
	HasPendingForAsset(assetID string) (bool, error)
	ListByStatus(status string) ([]*entity.ReplacementRequest, error)
	ListByEmployee(employeeID string) ([]*entity.ReplacementRequest, error)
}
