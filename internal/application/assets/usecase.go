package assets

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/policy"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

// UseCase motor del ciclo de vida de activos: alta de stock fusionable,
// confirmación/rechazo de recepción y resolución de reemplazos en logística.
type UseCase struct {
	txRunner  TxRunner
	assetRepo repository.AssetRepository
}

// NewUseCase construye el motor.
func NewUseCase(txRunner TxRunner, assetRepo repository.AssetRepository) *UseCase {
	return &UseCase{txRunner: txRunner, assetRepo: assetRepo}
}

// AddStockInput entrada para agregar inventario.
type AddStockInput struct {
	Name     string
	Serial   string
	Location string
	Tipo     string
	Quantity int
}

// AddStock fusiona la cantidad en la fila de stock existente para el nombre,
// o crea una nueva. La lectura-modificación-escritura corre dentro de una
// transacción con bloqueo de fila para que dos altas concurrentes del mismo
// nombre no pierdan unidades.
func (uc *UseCase) AddStock(ctx context.Context, actor *entity.Actor, in AddStockInput) (*entity.Asset, error) {
	if err := policy.Check(policy.OpAddStock, actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result *entity.Asset
	err := uc.txRunner.RunAssets(ctx, func(assetRepo repository.AssetRepository) error {
		row, err := assetRepo.GetStockByNameForUpdate(in.Name)
		if err != nil {
			return err
		}
		if row != nil {
			row.Stock += in.Quantity
			row.UpdatedAt = now
			if err := assetRepo.Update(row); err != nil {
				return err
			}
			result = row
			return nil
		}
		row = &entity.Asset{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(in.Name),
			Serial:    in.Serial,
			Location:  in.Location,
			Tipo:      in.Tipo,
			Status:    entity.AssetEnStock,
			Stock:     in.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := assetRepo.Create(row); err != nil {
			return err
		}
		result = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConfirmReceipt pasa un activo de "recibido pendiente" a "activo" y registra
// la fecha de asignación. Solo el empleado en custodia puede confirmarlo.
func (uc *UseCase) ConfirmReceipt(ctx context.Context, actor *entity.Actor, assetID string) error {
	if err := policy.Check(policy.OpConfirmReceipt, actor); err != nil {
		return err
	}
	asset, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return err
	}
	if asset == nil {
		return domain.ErrNotFound
	}
	if asset.EmployeeID != actor.ID {
		return domain.ErrForbidden
	}
	if asset.Status != entity.AssetRecibidoPendiente {
		return domain.ErrInvalidState
	}
	now := time.Now()
	asset.Status = entity.AssetActivo
	asset.AssignedDate = &now
	asset.UpdatedAt = now
	return uc.assetRepo.Update(asset)
}

// RejectReceipt pasa un activo de "recibido pendiente" a "en disputa",
// guardando el motivo del empleado (obligatorio).
func (uc *UseCase) RejectReceipt(ctx context.Context, actor *entity.Actor, assetID, reason string) error {
	if err := policy.Check(policy.OpRejectReceipt, actor); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return domain.ErrInvalidInput
	}
	asset, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return err
	}
	if asset == nil {
		return domain.ErrNotFound
	}
	if asset.EmployeeID != actor.ID {
		return domain.ErrForbidden
	}
	if asset.Status != entity.AssetRecibidoPendiente {
		return domain.ErrInvalidState
	}
	asset.Status = entity.AssetEnDisputa
	asset.RejectionReason = strings.TrimSpace(reason)
	asset.UpdatedAt = time.Now()
	return uc.assetRepo.Update(asset)
}

// Destinos válidos al resolver un reemplazo en logística.
const (
	ReplacementToStock = entity.AssetEnStock
	ReplacementToBaja  = entity.AssetBaja
)

// ResolveReplacement cierra un reemplazo: el activo en
// "reemplazo_en_logistica" vuelve al stock (fusionado por nombre) o queda de
// baja. Transaccional por la fusión de stock.
func (uc *UseCase) ResolveReplacement(ctx context.Context, actor *entity.Actor, assetID, outcome string) error {
	if err := policy.Check(policy.OpResolveReplacement, actor); err != nil {
		return err
	}
	if outcome != ReplacementToStock && outcome != ReplacementToBaja {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.RunAssets(ctx, func(assetRepo repository.AssetRepository) error {
		asset, err := assetRepo.GetByID(assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if asset.Status != entity.AssetReemplazoEnLogistica {
			return domain.ErrInvalidState
		}
		if outcome == ReplacementToBaja {
			asset.Status = entity.AssetBaja
			asset.UpdatedAt = now
			return assetRepo.Update(asset)
		}
		return MergeUnitIntoStock(assetRepo, asset, now)
	})
}

// UpdateAssetInput campos administrativos modificables por un master.
// Punteros nil dejan el campo sin tocar.
type UpdateAssetInput struct {
	Reference *string
	Name      *string
	Serial    *string
	Location  *string
	Tipo      *string
}

// UpdateAsset aplica una corrección administrativa sobre un activo existente.
// Sin restricción de máquina de estados más allá de la existencia.
func (uc *UseCase) UpdateAsset(ctx context.Context, actor *entity.Actor, assetID string, in UpdateAssetInput) (*entity.Asset, error) {
	if err := policy.Check(policy.OpUpdateAsset, actor); err != nil {
		return nil, err
	}
	asset, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if in.Reference != nil {
		asset.Reference = *in.Reference
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		asset.Name = strings.TrimSpace(*in.Name)
	}
	if in.Serial != nil {
		asset.Serial = *in.Serial
	}
	if in.Location != nil {
		asset.Location = *in.Location
	}
	if in.Tipo != nil {
		asset.Tipo = *in.Tipo
	}
	asset.UpdatedAt = time.Now()
	if err := uc.assetRepo.Update(asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// DeleteAsset elimina un activo (override administrativo, solo master).
func (uc *UseCase) DeleteAsset(ctx context.Context, actor *entity.Actor, assetID string) error {
	if err := policy.Check(policy.OpDeleteAsset, actor); err != nil {
		return err
	}
	asset, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return err
	}
	if asset == nil {
		return domain.ErrNotFound
	}
	return uc.assetRepo.Delete(assetID)
}

// GetAsset devuelve un activo. Un empleado solo puede ver los suyos.
func (uc *UseCase) GetAsset(ctx context.Context, actor *entity.Actor, assetID string) (*entity.Asset, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	asset, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == entity.RoleEmpleado && asset.EmployeeID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return asset, nil
}

// ListStock lista las filas de stock (vista de logística y master).
func (uc *UseCase) ListStock(ctx context.Context, actor *entity.Actor) ([]*entity.Asset, error) {
	if err := policy.Check(policy.OpListStock, actor); err != nil {
		return nil, err
	}
	return uc.assetRepo.ListStock()
}

// ListMyAssets lista los activos en custodia del actor (vista de empleado).
func (uc *UseCase) ListMyAssets(ctx context.Context, actor *entity.Actor) ([]*entity.Asset, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.assetRepo.ListByEmployee(actor.ID)
}

// MergeUnitIntoStock devuelve una unidad en custodia al inventario: si ya hay
// fila de stock con el mismo nombre se incrementa su contador y la unidad se
// absorbe (se elimina); si no, la propia unidad se convierte en fila de stock
// con contador 1. Debe llamarse con un repositorio atado a una transacción y
// tras bloquear la fila de stock.
func MergeUnitIntoStock(assetRepo repository.AssetRepository, unit *entity.Asset, now time.Time) error {
	row, err := assetRepo.GetStockByNameForUpdate(unit.Name)
	if err != nil {
		return err
	}
	if row != nil && row.ID != unit.ID {
		row.Stock++
		row.UpdatedAt = now
		if err := assetRepo.Update(row); err != nil {
			return err
		}
		return assetRepo.Delete(unit.ID)
	}
	unit.Status = entity.AssetEnStock
	unit.Stock = 1
	unit.EmployeeID = ""
	unit.EmployeeName = ""
	unit.AssignedDate = nil
	unit.UpdatedAt = now
	return assetRepo.Update(unit)
}
