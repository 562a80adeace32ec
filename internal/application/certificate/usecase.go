package certificate

import (
	"context"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/policy"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

// Generator contrato del renderizador del certificado Paz y Salvo.
type Generator interface {
	GeneratePazYSalvo(ctx context.Context, proc *entity.DevolutionProcess, assets []*entity.Asset) ([]byte, error)
}

// UseCase emite el certificado Paz y Salvo de un proceso de devolución
// completado. Sobre cualquier otro estado devuelve ErrInvalidState.
type UseCase struct {
	procRepo  repository.DevolutionProcessRepository
	assetRepo repository.AssetRepository
	generator Generator
}

// NewUseCase construye el caso de uso.
func NewUseCase(procRepo repository.DevolutionProcessRepository, assetRepo repository.AssetRepository, generator Generator) *UseCase {
	return &UseCase{procRepo: procRepo, assetRepo: assetRepo, generator: generator}
}

// PazYSalvo genera el PDF del certificado. Un empleado solo puede pedir el
// de sus propios procesos.
func (uc *UseCase) PazYSalvo(ctx context.Context, actor *entity.Actor, processID string) ([]byte, error) {
	if err := policy.Check(policy.OpIssueCertificate, actor); err != nil {
		return nil, err
	}
	proc, err := uc.procRepo.GetByID(processID)
	if err != nil {
		return nil, err
	}
	if proc == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == entity.RoleEmpleado && proc.EmployeeID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if proc.Status != entity.DevolucionCompletado {
		return nil, domain.ErrInvalidState
	}

	// El destino final (stock o baja) de cada activo sale de la fila global.
	assets := make([]*entity.Asset, 0, len(proc.Assets))
	for _, entry := range proc.Assets {
		a, err := uc.assetRepo.GetByID(entry.AssetID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			// La unidad fue absorbida por una fila de stock al verificarla;
			// el snapshot del proceso conserva nombre y serial.
			a = &entity.Asset{ID: entry.AssetID, Name: entry.Name, Serial: entry.Serial, Status: entity.AssetEnStock}
		}
		assets = append(assets, a)
	}
	return uc.generator.GeneratePazYSalvo(ctx, proc, assets)
}
