package requests

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

// ReplacementUseCase motor de solicitudes de reemplazo. Invariante central:
// a lo sumo una solicitud "pendiente de aprobacion master" por activo, con el
// índice único parcial de la base de datos como respaldo del chequeo.
type ReplacementUseCase struct {
	txRunner  TxRunner
	assetRepo repository.AssetRepository
	replRepo  repository.ReplacementRequestRepository
}

// NewReplacementUseCase construye el motor.
func NewReplacementUseCase(
	txRunner TxRunner,
	assetRepo repository.AssetRepository,
	replRepo repository.ReplacementRequestRepository,
) *ReplacementUseCase {
	return &ReplacementUseCase{txRunner: txRunner, assetRepo: assetRepo, replRepo: replRepo}
}

// CreateInput entrada para crear una solicitud de reemplazo.
type CreateInput struct {
	AssetID       string
	Reason        string
	Justification string
	ImageURL      string
}

// Create registra una solicitud de reemplazo de un empleado sobre uno de sus
// activos en estado "activo". El activo no cambia de estado al crearla.
func (uc *ReplacementUseCase) Create(ctx context.Context, actor *entity.Actor, in CreateInput) (*entity.ReplacementRequest, error) {
	if err := policy.Check(policy.OpCreateReplacement, actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var created *entity.ReplacementRequest
	err := uc.txRunner.RunRequests(ctx, func(
		assetRepo repository.AssetRepository,
		_ repository.AssignmentRequestRepository,
		replRepo repository.ReplacementRequestRepository,
	) error {
		asset, err := assetRepo.GetByID(in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if asset.EmployeeID != actor.ID {
			return domain.ErrForbidden
		}
		if asset.Status != entity.AssetActivo {
			return domain.ErrInvalidState
		}

		pending, err := replRepo.HasPendingForAsset(asset.ID)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrConflict
		}

		created = &entity.ReplacementRequest{
			ID:            uuid.New().String(),
			EmployeeID:    actor.ID,
			EmployeeName:  actor.Name,
			AssetID:       asset.ID,
			AssetName:     asset.Name,
			Serial:        asset.Serial,
			Reason:        strings.TrimSpace(in.Reason),
			Justification: in.Justification,
			ImageURL:      in.ImageURL,
			Date:          now,
			Status:        entity.ReplacementPendiente,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		// Create mapea la violación del índice único parcial a ErrConflict:
		// dos creaciones concurrentes no dejan dos pendientes.
		return replRepo.Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Decide aprueba o rechaza una solicitud pendiente. La aprobación transiciona
// además el activo a "reemplazo_en_logistica": las dos escrituras van en la
// misma transacción, de modo que un fallo en el activo no deja la solicitud
// "aprobado" con el activo sin transicionar.
func (uc *ReplacementUseCase) Decide(ctx context.Context, actor *entity.Actor, requestID, decision string) error {
	if err := policy.Check(policy.OpDecideReplacement, actor); err != nil {
		return err
	}
	if decision != entity.ReplacementAprobado && decision != entity.ReplacementRechazado {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.RunRequests(ctx, func(
		assetRepo repository.AssetRepository,
		_ repository.AssignmentRequestRepository,
		replRepo repository.ReplacementRequestRepository,
	) error {
		req, err := replRepo.GetByID(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.ReplacementPendiente {
			return domain.ErrInvalidState
		}

		req.MasterID = actor.ID
		req.UpdatedAt = now

		if decision == entity.ReplacementRechazado {
			// El activo queda como estaba.
			req.Status = entity.ReplacementRechazado
			return replRepo.Update(req)
		}

		asset, err := assetRepo.GetByID(req.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if asset.Status != entity.AssetActivo {
			return domain.ErrInvalidState
		}
		asset.Status = entity.AssetReemplazoEnLogistica
		asset.UpdatedAt = now
		if err := assetRepo.Update(asset); err != nil {
			return err
		}

		req.Status = entity.ReplacementAprobado
		return replRepo.Update(req)
	})
}

// ListPending vista del master sobre las solicitudes por aprobar.
func (uc *ReplacementUseCase) ListPending(ctx context.Context, actor *entity.Actor) ([]*entity.ReplacementRequest, error) {
	if err := policy.Check(policy.OpDecideReplacement, actor); err != nil {
		return nil, err
	}
	return uc.replRepo.ListByStatus(entity.ReplacementPendiente)
}

// ListMine vista del empleado sobre sus propias solicitudes de reemplazo.
func (uc *ReplacementUseCase) ListMine(ctx context.Context, actor *entity.Actor) ([]*entity.ReplacementRequest, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.replRepo.ListByEmployee(actor.ID)
}
