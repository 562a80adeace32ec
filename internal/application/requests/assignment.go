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

// AssignmentUseCase motor de solicitudes de asignación: creación por lotes,
// procesamiento de envío (descuenta stock y crea los activos asignados),
// rechazo, archivado y re-chequeo de stock pendiente.
type AssignmentUseCase struct {
	txRunner   TxRunner
	userRepo   repository.UserRepository
	assetRepo  repository.AssetRepository
	assignRepo repository.AssignmentRequestRepository
}

// NewAssignmentUseCase construye el motor.
func NewAssignmentUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	assetRepo repository.AssetRepository,
	assignRepo repository.AssignmentRequestRepository,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		txRunner:   txRunner,
		userRepo:   userRepo,
		assetRepo:  assetRepo,
		assignRepo: assignRepo,
	}
}

// AssignmentRow una fila del lote de asignación.
type AssignmentRow struct {
	AssetID  string
	Quantity int
}

// CreateBatch crea N solicitudes independientes para un mismo empleado, una
// por fila. Cada fila decide su estado con su propia lectura de stock en el
// momento del envío: "pendiente por stock" si la cantidad supera lo
// disponible, si no "pendiente de envío".
//
// Las filas NO se validan contra el consumo de las demás dentro del mismo
// lote: dos filas que pidan el mismo activo escaso pueden quedar ambas
// "pendiente de envío" sobre lecturas desactualizadas. No se reserva stock
// aquí; el descuento real ocurre al procesar el envío.
func (uc *AssignmentUseCase) CreateBatch(ctx context.Context, actor *entity.Actor, employeeID string, rows []AssignmentRow) ([]*entity.AssignmentRequest, error) {
	if err := policy.Check(policy.OpCreateAssignment, actor); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, row := range rows {
		if row.AssetID == "" || row.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	employee, err := uc.userRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrUserNotFound
	}
	if employee.Role != entity.RoleEmpleado || employee.Status != entity.UserStatusActivo {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	created := make([]*entity.AssignmentRequest, 0, len(rows))
	for _, row := range rows {
		stock, err := uc.assetRepo.GetByID(row.AssetID)
		if err != nil {
			return created, err
		}
		if stock == nil || stock.Status != entity.AssetEnStock {
			return created, domain.ErrNotFound
		}

		status := entity.AssignmentPendienteEnvio
		if row.Quantity > stock.Stock {
			status = entity.AssignmentPendienteStock
		}
		req := &entity.AssignmentRequest{
			ID:           uuid.New().String(),
			EmployeeID:   employee.ID,
			EmployeeName: employee.Name,
			AssetID:      stock.ID,
			AssetName:    stock.Name,
			Quantity:     row.Quantity,
			Date:         now,
			Status:       status,
			MasterName:   actor.Name,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.assignRepo.Create(req); err != nil {
			return created, err
		}
		created = append(created, req)
	}
	return created, nil
}

// ProcessInput datos del envío físico.
type ProcessInput struct {
	TrackingNumber string
	Carrier        string
}

// Process despacha una solicitud "pendiente de envío": dentro de una sola
// transacción bloquea la fila de stock, descuenta la cantidad, crea un activo
// "recibido pendiente" por unidad a nombre del empleado y marca la solicitud
// como "enviado" con guía y transportadora.
func (uc *AssignmentUseCase) Process(ctx context.Context, actor *entity.Actor, requestID string, in ProcessInput) error {
	if err := policy.Check(policy.OpProcessAssignment, actor); err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunRequests(ctx, func(
		assetRepo repository.AssetRepository,
		assignRepo repository.AssignmentRequestRepository,
		_ repository.ReplacementRequestRepository,
	) error {
		req, err := assignRepo.GetByID(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.AssignmentPendienteEnvio {
			return domain.ErrInvalidState
		}

		stock, err := assetRepo.GetStockByNameForUpdate(req.AssetName)
		if err != nil {
			return err
		}
		if stock == nil || stock.Stock < req.Quantity {
			return domain.ErrInsufficientStock
		}

		stock.Stock -= req.Quantity
		stock.UpdatedAt = now
		if err := assetRepo.Update(stock); err != nil {
			return err
		}

		// Una vez en custodia, cada unidad se rastrea individualmente.
		for i := 0; i < req.Quantity; i++ {
			unit := &entity.Asset{
				ID:           uuid.New().String(),
				Reference:    stock.Reference,
				Name:         stock.Name,
				Serial:       stock.Serial,
				Location:     stock.Location,
				Tipo:         stock.Tipo,
				Status:       entity.AssetRecibidoPendiente,
				EmployeeID:   req.EmployeeID,
				EmployeeName: req.EmployeeName,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := assetRepo.Create(unit); err != nil {
				return err
			}
		}

		req.Status = entity.AssignmentEnviado
		req.TrackingNumber = in.TrackingNumber
		req.Carrier = in.Carrier
		req.UpdatedAt = now
		return assignRepo.Update(req)
	})
}

// Reject rechaza una solicitud pendiente (de envío o por stock), con motivo
// obligatorio.
func (uc *AssignmentUseCase) Reject(ctx context.Context, actor *entity.Actor, requestID, reason string) error {
	if err := policy.Check(policy.OpRejectAssignment, actor); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return domain.ErrInvalidInput
	}
	req, err := uc.assignRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if req.Status != entity.AssignmentPendienteEnvio && req.Status != entity.AssignmentPendienteStock {
		return domain.ErrInvalidState
	}
	req.Status = entity.AssignmentRechazado
	req.RejectionReason = strings.TrimSpace(reason)
	req.UpdatedAt = time.Now()
	return uc.assignRepo.Update(req)
}

// Archive archiva una solicitud ya enviada o rechazada.
func (uc *AssignmentUseCase) Archive(ctx context.Context, actor *entity.Actor, requestID string) error {
	if err := policy.Check(policy.OpArchiveAssignment, actor); err != nil {
		return err
	}
	req, err := uc.assignRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if req.Status != entity.AssignmentEnviado && req.Status != entity.AssignmentRechazado {
		return domain.ErrInvalidState
	}
	req.Status = entity.AssignmentArchivado
	req.UpdatedAt = time.Now()
	return uc.assignRepo.Update(req)
}

// RecheckPendingStock re-evalúa las solicitudes "pendiente por stock" contra
// el stock actual y pasa a "pendiente de envío" las que ya alcanzan.
// Devuelve las solicitudes que cambiaron de estado.
func (uc *AssignmentUseCase) RecheckPendingStock(ctx context.Context, actor *entity.Actor) ([]*entity.AssignmentRequest, error) {
	if err := policy.Check(policy.OpRecheckStock, actor); err != nil {
		return nil, err
	}
	pending, err := uc.assignRepo.ListByStatus(entity.AssignmentPendienteStock)
	if err != nil {
		return nil, err
	}
	var moved []*entity.AssignmentRequest
	now := time.Now()
	for _, req := range pending {
		stock, err := uc.assetRepo.GetStockByName(req.AssetName)
		if err != nil {
			return moved, err
		}
		if stock == nil || stock.Stock < req.Quantity {
			continue
		}
		req.Status = entity.AssignmentPendienteEnvio
		req.UpdatedAt = now
		if err := uc.assignRepo.Update(req); err != nil {
			return moved, err
		}
		moved = append(moved, req)
	}
	return moved, nil
}

// ListByStatus vista de logística/master sobre las solicitudes.
func (uc *AssignmentUseCase) ListByStatus(ctx context.Context, actor *entity.Actor, status string) ([]*entity.AssignmentRequest, error) {
	if err := policy.Check(policy.OpProcessAssignment, actor); err != nil {
		if err2 := policy.Check(policy.OpCreateAssignment, actor); err2 != nil {
			return nil, err
		}
	}
	return uc.assignRepo.ListByStatus(status)
}

// ListMine vista del empleado sobre sus propias solicitudes.
func (uc *AssignmentUseCase) ListMine(ctx context.Context, actor *entity.Actor) ([]*entity.AssignmentRequest, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.assignRepo.ListByEmployee(actor.ID)
}
