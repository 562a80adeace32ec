package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `id, reference, name, serial, location, status, tipo, stock,
	employee_id, employee_name, assigned_date, rejection_reason, baja_reason, evidence_url,
	created_at, updated_at`

// AssetRepo implementación de AssetRepository sobre PostgreSQL (usable con
// pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste un activo.
func (r *AssetRepo) Create(asset *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.Reference, asset.Name, asset.Serial, asset.Location,
		asset.Status, asset.Tipo, asset.Stock,
		nullIfEmpty(asset.EmployeeID), asset.EmployeeName, asset.AssignedDate,
		asset.RejectionReason, asset.BajaReason, asset.EvidenceURL,
		asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID, o nil si no existe.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get asset by id")
}

// GetStockByName obtiene la fila de stock fusionable para un nombre, o nil.
func (r *AssetRepo) GetStockByName(name string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE name = $1 AND status = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name, entity.AssetEnStock), "get stock by name")
}

// GetStockByNameForUpdate obtiene la fila de stock bloqueándola para update
// (SELECT FOR UPDATE). Debe llamarse dentro de una transacción.
func (r *AssetRepo) GetStockByNameForUpdate(name string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE name = $1 AND status = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name, entity.AssetEnStock), "get stock for update")
}

// Update actualiza todos los campos mutables de un activo.
func (r *AssetRepo) Update(asset *entity.Asset) error {
	query := `
		UPDATE assets SET reference = $2, name = $3, serial = $4, location = $5,
			status = $6, tipo = $7, stock = $8, employee_id = $9, employee_name = $10,
			assigned_date = $11, rejection_reason = $12, baja_reason = $13, evidence_url = $14,
			updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.Reference, asset.Name, asset.Serial, asset.Location,
		asset.Status, asset.Tipo, asset.Stock,
		nullIfEmpty(asset.EmployeeID), asset.EmployeeName, asset.AssignedDate,
		asset.RejectionReason, asset.BajaReason, asset.EvidenceURL, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return nil
}

// Delete elimina un activo por ID.
func (r *AssetRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// ListStock lista las filas de stock ordenadas por nombre.
func (r *AssetRepo) ListStock() ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE status = $1 ORDER BY name`
	return r.list(query, entity.AssetEnStock)
}

// ListByStatus lista activos por estado.
func (r *AssetRepo) ListByStatus(status string) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE status = $1 ORDER BY updated_at DESC`
	return r.list(query, status)
}

// ListByEmployee lista los activos en custodia de un empleado.
func (r *AssetRepo) ListByEmployee(employeeID string) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE employee_id = $1 ORDER BY updated_at DESC`
	return r.list(query, employeeID)
}

// ListByEmployeeAndStatus lista los activos de un empleado en un estado dado.
func (r *AssetRepo) ListByEmployeeAndStatus(employeeID, status string) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE employee_id = $1 AND status = $2 ORDER BY updated_at DESC`
	return r.list(query, employeeID, status)
}

func (r *AssetRepo) list(query string, args ...any) ([]*entity.Asset, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AssetRepo) scanOne(row pgx.Row, op string) (*entity.Asset, error) {
	a, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	var employeeID *string
	err := row.Scan(
		&a.ID, &a.Reference, &a.Name, &a.Serial, &a.Location, &a.Status, &a.Tipo, &a.Stock,
		&employeeID, &a.EmployeeName, &a.AssignedDate, &a.RejectionReason, &a.BajaReason, &a.EvidenceURL,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if employeeID != nil {
		a.EmployeeID = *employeeID
	}
	return &a, nil
}

// nullIfEmpty persiste "" como NULL para que el invariante "en stock sin
// empleado" sea visible en el esquema.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
