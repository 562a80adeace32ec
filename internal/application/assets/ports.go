package assets

import (
	"context"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de activos atado a esa tx. Garantiza atomicidad para la fusión
// de stock (lectura-modificación-escritura sin updates perdidos).
type TxRunner interface {
	RunAssets(ctx context.Context, fn func(assetRepo repository.AssetRepository) error) error
}
