package repository

import "github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"

// AssetRepository define el puerto de persistencia para Asset.
// Usado también dentro de transacciones para la fusión de stock.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	Update(asset *entity.Asset) error
	Delete(id string) error
	ListStock() ([]*entity.Asset, error)
	ListByStatus(status string) ([]*entity.Asset, error)
	ListByEmployee(employeeID string) ([]*entity.Asset, error)
	ListByEmployeeAndStatus(employeeID, status string) ([]*entity.Asset, error)
	// GetStockByName obtiene la fila de stock fusionable para un nombre
	// (status "en stock"), o nil si no existe. Lectura simple, sin bloqueo.
	GetStockByName(name string) (*entity.Asset, error)
	// GetStockByNameForUpdate igual que GetStockByName pero bloqueando la
	// fila (SELECT FOR UPDATE) para la fusión atómica de stock.
	GetStockByNameForUpdate(name string) (*entity.Asset, error)
}
