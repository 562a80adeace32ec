package devolution

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/assets"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/policy"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

// UseCase motor de devoluciones: un proceso agrega todos los activos
// "activo" del empleado al iniciarse, y logística verifica cada uno
// (retorno a stock o baja) hasta completarlo.
type UseCase struct {
	txRunner TxRunner
	procRepo repository.DevolutionProcessRepository
	evidence EvidenceStore
}

// NewUseCase construye el motor.
func NewUseCase(txRunner TxRunner, procRepo repository.DevolutionProcessRepository, evidence EvidenceStore) *UseCase {
	return &UseCase{txRunner: txRunner, procRepo: procRepo, evidence: evidence}
}

// Initiate crea el proceso de devolución del actor: toma snapshot de todos
// sus activos en estado "activo" y los pasa a "en devolución", todo en una
// transacción. Falla con ErrNothingToReturn si no tiene activos.
func (uc *UseCase) Initiate(ctx context.Context, actor *entity.Actor) (*entity.DevolutionProcess, error) {
	if err := policy.Check(policy.OpInitiateDevolution, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	var created *entity.DevolutionProcess
	err := uc.txRunner.RunDevolution(ctx, func(
		assetRepo repository.AssetRepository,
		procRepo repository.DevolutionProcessRepository,
	) error {
		active, err := assetRepo.ListByEmployeeAndStatus(actor.ID, entity.AssetActivo)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			return domain.ErrNothingToReturn
		}

		proc := &entity.DevolutionProcess{
			ID:           uuid.New().String(),
			EmployeeID:   actor.ID,
			EmployeeName: actor.Name,
			Status:       entity.DevolucionIniciado,
			Date:         now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, a := range active {
			proc.Assets = append(proc.Assets, entity.DevolutionAsset{
				AssetID: a.ID,
				Name:    a.Name,
				Serial:  a.Serial,
			})
			a.Status = entity.AssetEnDevolucion
			a.UpdatedAt = now
			if err := assetRepo.Update(a); err != nil {
				return err
			}
		}
		if err := procRepo.Create(proc); err != nil {
			return err
		}
		created = proc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// VerifyReturn marca la entrada como verificada y devuelve el activo al
// inventario (fusión en la fila de stock, como AddStock). Si era la última
// entrada sin verificar, el proceso pasa a "completado" en la misma
// transacción.
func (uc *UseCase) VerifyReturn(ctx context.Context, actor *entity.Actor, processID, assetID string) error {
	if err := policy.Check(policy.OpVerifyReturn, actor); err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunDevolution(ctx, func(
		assetRepo repository.AssetRepository,
		procRepo repository.DevolutionProcessRepository,
	) error {
		entry, proc, err := uc.lockEntry(procRepo, processID, assetID)
		if err != nil {
			return err
		}

		asset, err := assetRepo.GetByID(assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if asset.Status != entity.AssetEnDevolucion {
			return domain.ErrInvalidState
		}
		if err := assets.MergeUnitIntoStock(assetRepo, asset, now); err != nil {
			return err
		}

		if err := procRepo.MarkAssetVerified(processID, assetID); err != nil {
			return err
		}
		entry.Verified = true
		return uc.completeIfVerified(procRepo, proc)
	})
}

// DecommissionInput entrada para dar de baja un activo del proceso.
// Image son los bytes de la foto de evidencia; si EvidenceURL viene dado
// (reintento tras una subida previa exitosa) no se vuelve a subir.
type DecommissionInput struct {
	Justification string
	Image         []byte
	ImageName     string
	EvidenceURL   string
}

// Decommission da de baja un activo del proceso con justificación y foto de
// evidencia obligatorias. La subida al object store ocurre ANTES y fuera de
// la transacción; la URL resultante se devuelve siempre, incluso si la
// escritura de estado falla luego, para que el llamador reintente con
// EvidenceURL sin re-subir.
func (uc *UseCase) Decommission(ctx context.Context, actor *entity.Actor, processID, assetID string, in DecommissionInput) (evidenceURL string, err error) {
	if err := policy.Check(policy.OpDecommissionAsset, actor); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Justification) == "" {
		return "", domain.ErrInvalidInput
	}
	if len(in.Image) == 0 && in.EvidenceURL == "" {
		return "", domain.ErrInvalidInput
	}

	evidenceURL = in.EvidenceURL
	if evidenceURL == "" {
		name := in.ImageName
		if name == "" {
			name = fmt.Sprintf("baja-%s-%s.jpg", processID, assetID)
		}
		evidenceURL, err = uc.evidence.Upload(ctx, in.Image, name)
		if err != nil {
			return "", fmt.Errorf("subir evidencia: %w", err)
		}
	}

	now := time.Now()
	err = uc.txRunner.RunDevolution(ctx, func(
		assetRepo repository.AssetRepository,
		procRepo repository.DevolutionProcessRepository,
	) error {
		entry, proc, err := uc.lockEntry(procRepo, processID, assetID)
		if err != nil {
			return err
		}

		asset, err := assetRepo.GetByID(assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if asset.Status != entity.AssetEnDevolucion {
			return domain.ErrInvalidState
		}
		asset.Status = entity.AssetBaja
		asset.BajaReason = strings.TrimSpace(in.Justification)
		asset.EvidenceURL = evidenceURL
		asset.UpdatedAt = now
		if err := assetRepo.Update(asset); err != nil {
			return err
		}

		if err := procRepo.MarkAssetVerified(processID, assetID); err != nil {
			return err
		}
		entry.Verified = true
		return uc.completeIfVerified(procRepo, proc)
	})
	return evidenceURL, err
}

// Complete cierra explícitamente un proceso cuyas entradas ya están todas
// verificadas. Sobre un proceso ya completado devuelve ErrInvalidState.
func (uc *UseCase) Complete(ctx context.Context, actor *entity.Actor, processID string) error {
	if err := policy.Check(policy.OpCompleteDevolution, actor); err != nil {
		return err
	}
	return uc.txRunner.RunDevolution(ctx, func(
		_ repository.AssetRepository,
		procRepo repository.DevolutionProcessRepository,
	) error {
		proc, err := procRepo.GetByIDForUpdate(processID)
		if err != nil {
			return err
		}
		if proc == nil {
			return domain.ErrNotFound
		}
		if proc.Status == entity.DevolucionCompletado {
			return domain.ErrInvalidState
		}
		if !proc.AllVerified() {
			return domain.ErrInvalidState
		}
		return procRepo.UpdateStatus(processID, entity.DevolucionCompletado)
	})
}

// Get devuelve un proceso. Un empleado solo puede ver los suyos.
func (uc *UseCase) Get(ctx context.Context, actor *entity.Actor, processID string) (*entity.DevolutionProcess, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
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
	return proc, nil
}

// List vista de logística/master sobre los procesos.
func (uc *UseCase) List(ctx context.Context, actor *entity.Actor, limit, offset int) ([]*entity.DevolutionProcess, error) {
	if err := policy.Check(policy.OpVerifyReturn, actor); err != nil {
		if err2 := policy.Check(policy.OpManageUsers, actor); err2 != nil {
			return nil, err
		}
	}
	return uc.procRepo.List(limit, offset)
}

// ListMine procesos del propio actor.
func (uc *UseCase) ListMine(ctx context.Context, actor *entity.Actor) ([]*entity.DevolutionProcess, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.procRepo.ListByEmployee(actor.ID)
}

// lockEntry bloquea el proceso y valida que siga abierto y que la entrada
// exista y no esté verificada.
func (uc *UseCase) lockEntry(procRepo repository.DevolutionProcessRepository, processID, assetID string) (*entity.DevolutionAsset, *entity.DevolutionProcess, error) {
	proc, err := procRepo.GetByIDForUpdate(processID)
	if err != nil {
		return nil, nil, err
	}
	if proc == nil {
		return nil, nil, domain.ErrNotFound
	}
	if proc.Status == entity.DevolucionCompletado {
		return nil, nil, domain.ErrInvalidState
	}
	entry := proc.Entry(assetID)
	if entry == nil {
		return nil, nil, domain.ErrNotFound
	}
	if entry.Verified {
		return nil, nil, domain.ErrInvalidState
	}
	return entry, proc, nil
}

// completeIfVerified cierra el proceso si la entrada recién verificada era la
// última pendiente.
func (uc *UseCase) completeIfVerified(procRepo repository.DevolutionProcessRepository, proc *entity.DevolutionProcess) error {
	if !proc.AllVerified() {
		return nil
	}
	return procRepo.UpdateStatus(proc.ID, entity.DevolucionCompletado)
}
