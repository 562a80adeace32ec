package repository

import "github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"

// DevolutionProcessRepository puerto de persistencia para procesos de devolución.
// El proceso y sus entradas (snapshot de activos) se persisten juntos.
type DevolutionProcessRepository interface {
	// Create persiste el proceso con todas sus entradas.
	Create(proc *entity.DevolutionProcess) error
	// GetByID devuelve el proceso con sus entradas, o nil si no existe.
	GetByID(id string) (*entity.DevolutionProcess, error)
	// GetByIDForUpdate bloquea la fila del proceso para la verificación atómica.
	GetByIDForUpdate(id string) (*entity.DevolutionProcess, error)
	UpdateStatus(id, status string) error
	MarkAssetVerified(processID, assetID string) error
	ListByEmployee(employeeID string) ([]*entity.DevolutionProcess, error)
	List(limit, offset int) ([]*entity.DevolutionProcess, error)
}
