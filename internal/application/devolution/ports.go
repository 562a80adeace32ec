package devolution

import (
	"context"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del motor de devoluciones atados a esa tx. Lo exigen el
// snapshot inicial (proceso + N activos) y cada verificación (entrada del
// proceso + activo + fusión de stock en una sola escritura lógica).
type TxRunner interface {
	RunDevolution(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		procRepo repository.DevolutionProcessRepository,
	) error) error
}

// EvidenceStore contrato del object store externo para fotos de evidencia
// de bajas. La subida ocurre FUERA de la frontera transaccional.
type EvidenceStore interface {
	Upload(ctx context.Context, data []byte, name string) (url string, err error)
}
