package requests

import (
	"context"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del motor de solicitudes atados a esa tx. Lo exige el
// procesamiento de envíos (descontar stock + crear activos asignados) y la
// aprobación de reemplazos (solicitud + activo en una sola escritura lógica).
type TxRunner interface {
	RunRequests(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		assignRepo repository.AssignmentRequestRepository,
		replRepo repository.ReplacementRequestRepository,
	) error) error
}
