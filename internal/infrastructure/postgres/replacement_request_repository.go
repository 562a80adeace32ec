package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

var _ repository.ReplacementRequestRepository = (*ReplacementRequestRepo)(nil)

const replacementColumns = `id, employee_id, employee_name, master_id, asset_id, asset_name,
	serial, reason, justification, image_url, date, status, created_at, updated_at`

// ReplacementRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
type ReplacementRequestRepo struct {
	q Querier
}

// NewReplacementRequestRepository construye el adaptador.
func NewReplacementRequestRepository(q Querier) *ReplacementRequestRepo {
	return &ReplacementRequestRepo{q: q}
}

// Create persiste una solicitud de reemplazo. El índice único parcial sobre
// (asset_id) WHERE status pendiente respalda el invariante de una sola
// pendiente por activo: su violación se mapea a ErrConflict.
func (r *ReplacementRequestRepo) Create(req *entity.ReplacementRequest) error {
	query := `
		INSERT INTO replacement_requests (` + replacementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.EmployeeID, req.EmployeeName, req.MasterID, req.AssetID, req.AssetName,
		req.Serial, req.Reason, req.Justification, req.ImageURL, req.Date, req.Status,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert replacement request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID, o nil si no existe.
func (r *ReplacementRequestRepo) GetByID(id string) (*entity.ReplacementRequest, error) {
	query := `SELECT ` + replacementColumns + ` FROM replacement_requests WHERE id = $1`
	var req entity.ReplacementRequest
	err := scanReplacement(r.q.QueryRow(context.Background(), query, id), &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replacement request: %w", err)
	}
	return &req, nil
}

// Update actualiza una solicitud.
func (r *ReplacementRequestRepo) Update(req *entity.ReplacementRequest) error {
	query := `
		UPDATE replacement_requests SET master_id = $2, status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, req.ID, req.MasterID, req.Status, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update replacement request: %w", err)
	}
	return nil
}

// HasPendingForAsset indica si ya existe una solicitud pendiente para el activo.
func (r *ReplacementRequestRepo) HasPendingForAsset(assetID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM replacement_requests WHERE asset_id = $1 AND status = $2)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, assetID, entity.ReplacementPendiente).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pending replacement: %w", err)
	}
	return exists, nil
}

// ListByStatus lista solicitudes por estado.
func (r *ReplacementRequestRepo) ListByStatus(status string) ([]*entity.ReplacementRequest, error) {
	query := `SELECT ` + replacementColumns + ` FROM replacement_requests WHERE status = $1 ORDER BY date DESC`
	return r.list(query, status)
}

// ListByEmployee lista las solicitudes de un empleado.
func (r *ReplacementRequestRepo) ListByEmployee(employeeID string) ([]*entity.ReplacementRequest, error) {
	query := `SELECT ` + replacementColumns + ` FROM replacement_requests WHERE employee_id = $1 ORDER BY date DESC`
	return r.list(query, employeeID)
}

func (r *ReplacementRequestRepo) list(query string, args ...any) ([]*entity.ReplacementRequest, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list replacement requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReplacementRequest
	for rows.Next() {
		var req entity.ReplacementRequest
		if err := scanReplacement(rows, &req); err != nil {
			return nil, fmt.Errorf("scan replacement request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

func scanReplacement(row pgx.Row, req *entity.ReplacementRequest) error {
	return row.Scan(
		&req.ID, &req.EmployeeID, &req.EmployeeName, &req.MasterID, &req.AssetID, &req.AssetName,
		&req.Serial, &req.Reason, &req.Justification, &req.ImageURL, &req.Date, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
}
