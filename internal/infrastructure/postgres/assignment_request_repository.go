package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

var _ repository.AssignmentRequestRepository = (*AssignmentRequestRepo)(nil)

const assignmentColumns = `id, employee_id, employee_name, asset_id, asset_name, quantity,
	date, status, tracking_number, carrier, master_name, rejection_reason, created_at, updated_at`

// AssignmentRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
type AssignmentRequestRepo struct {
	q Querier
}

// NewAssignmentRequestRepository construye el adaptador.
func NewAssignmentRequestRepository(q Querier) *AssignmentRequestRepo {
	return &AssignmentRequestRepo{q: q}
}

// Create persiste una solicitud de asignación.
func (r *AssignmentRequestRepo) Create(req *entity.AssignmentRequest) error {
	query := `
		INSERT INTO assignment_requests (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.EmployeeID, req.EmployeeName, req.AssetID, req.AssetName, req.Quantity,
		req.Date, req.Status, req.TrackingNumber, req.Carrier, req.MasterName, req.RejectionReason,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assignment request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID, o nil si no existe.
func (r *AssignmentRequestRepo) GetByID(id string) (*entity.AssignmentRequest, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignment_requests WHERE id = $1`
	var req entity.AssignmentRequest
	err := scanAssignment(r.q.QueryRow(context.Background(), query, id), &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment request: %w", err)
	}
	return &req, nil
}

// Update actualiza una solicitud.
func (r *AssignmentRequestRepo) Update(req *entity.AssignmentRequest) error {
	query := `
		UPDATE assignment_requests SET status = $2, tracking_number = $3, carrier = $4,
			rejection_reason = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.Status, req.TrackingNumber, req.Carrier, req.RejectionReason, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update assignment request: %w", err)
	}
	return nil
}

// ListByStatus lista solicitudes por estado.
func (r *AssignmentRequestRepo) ListByStatus(status string) ([]*entity.AssignmentRequest, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignment_requests WHERE status = $1 ORDER BY date DESC`
	return r.list(query, status)
}

// ListByEmployee lista las solicitudes de un empleado.
func (r *AssignmentRequestRepo) ListByEmployee(employeeID string) ([]*entity.AssignmentRequest, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignment_requests WHERE employee_id = $1 ORDER BY date DESC`
	return r.list(query, employeeID)
}

// List lista con paginación.
func (r *AssignmentRequestRepo) List(limit, offset int) ([]*entity.AssignmentRequest, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignment_requests ORDER BY date DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *AssignmentRequestRepo) list(query string, args ...any) ([]*entity.AssignmentRequest, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignment requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssignmentRequest
	for rows.Next() {
		var req entity.AssignmentRequest
		if err := scanAssignment(rows, &req); err != nil {
			return nil, fmt.Errorf("scan assignment request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

func scanAssignment(row pgx.Row, req *entity.AssignmentRequest) error {
	return row.Scan(
		&req.ID, &req.EmployeeID, &req.EmployeeName, &req.AssetID, &req.AssetName, &req.Quantity,
		&req.Date, &req.Status, &req.TrackingNumber, &req.Carrier, &req.MasterName, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
	)
}
