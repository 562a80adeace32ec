package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

var _ repository.DevolutionProcessRepository = (*DevolutionProcessRepo)(nil)

const processColumns = `id, employee_id, employee_name, status, date, created_at, updated_at`

// DevolutionProcessRepo implementación sobre PostgreSQL. El proceso vive en
// devolution_processes y su snapshot de activos en devolution_process_assets.
type DevolutionProcessRepo struct {
	q Querier
}

// NewDevolutionProcessRepository construye el adaptador.
func NewDevolutionProcessRepository(q Querier) *DevolutionProcessRepo {
	return &DevolutionProcessRepo{q: q}
}

// Create persiste el proceso y todas sus entradas.
func (r *DevolutionProcessRepo) Create(proc *entity.DevolutionProcess) error {
	ctx := context.Background()
	query := `
		INSERT INTO devolution_processes (` + processColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		proc.ID, proc.EmployeeID, proc.EmployeeName, proc.Status, proc.Date,
		proc.CreatedAt, proc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert devolution process: %w", err)
	}
	for _, a := range proc.Assets {
		_, err := r.q.Exec(ctx, `
			INSERT INTO devolution_process_assets (process_id, asset_id, name, serial, verified)
			VALUES ($1, $2, $3, $4, $5)`,
			proc.ID, a.AssetID, a.Name, a.Serial, a.Verified,
		)
		if err != nil {
			return fmt.Errorf("insert devolution entry: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el proceso con sus entradas, o nil si no existe.
func (r *DevolutionProcessRepo) GetByID(id string) (*entity.DevolutionProcess, error) {
	query := `SELECT ` + processColumns + ` FROM devolution_processes WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate igual que GetByID pero bloqueando la fila del proceso
// (SELECT FOR UPDATE). Debe llamarse dentro de una transacción.
func (r *DevolutionProcessRepo) GetByIDForUpdate(id string) (*entity.DevolutionProcess, error) {
	query := `SELECT ` + processColumns + ` FROM devolution_processes WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// UpdateStatus cambia el estado del proceso.
func (r *DevolutionProcessRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE devolution_processes SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update devolution status: %w", err)
	}
	return nil
}

// MarkAssetVerified voltea el flag de la entrada del proceso.
func (r *DevolutionProcessRepo) MarkAssetVerified(processID, assetID string) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE devolution_process_assets SET verified = true
		WHERE process_id = $1 AND asset_id = $2`, processID, assetID)
	if err != nil {
		return fmt.Errorf("mark devolution entry verified: %w", err)
	}
	return nil
}

// ListByEmployee lista los procesos de un empleado, con entradas.
func (r *DevolutionProcessRepo) ListByEmployee(employeeID string) ([]*entity.DevolutionProcess, error) {
	query := `SELECT ` + processColumns + ` FROM devolution_processes WHERE employee_id = $1 ORDER BY date DESC`
	return r.listWithAssets(query, employeeID)
}

// List lista procesos con paginación, con entradas.
func (r *DevolutionProcessRepo) List(limit, offset int) ([]*entity.DevolutionProcess, error) {
	query := `SELECT ` + processColumns + ` FROM devolution_processes ORDER BY date DESC LIMIT $1 OFFSET $2`
	return r.listWithAssets(query, limit, offset)
}

func (r *DevolutionProcessRepo) getOne(query string, id string) (*entity.DevolutionProcess, error) {
	var p entity.DevolutionProcess
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.EmployeeID, &p.EmployeeName, &p.Status, &p.Date, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get devolution process: %w", err)
	}
	if err := r.loadAssets(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *DevolutionProcessRepo) listWithAssets(query string, args ...any) ([]*entity.DevolutionProcess, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list devolution processes: %w", err)
	}
	defer rows.Close()
	var list []*entity.DevolutionProcess
	for rows.Next() {
		var p entity.DevolutionProcess
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.EmployeeName, &p.Status, &p.Date, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan devolution process: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		if err := r.loadAssets(p); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *DevolutionProcessRepo) loadAssets(p *entity.DevolutionProcess) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT asset_id, name, serial, verified
		FROM devolution_process_assets WHERE process_id = $1 ORDER BY name`, p.ID)
	if err != nil {
		return fmt.Errorf("list devolution entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a entity.DevolutionAsset
		if err := rows.Scan(&a.AssetID, &a.Name, &a.Serial, &a.Verified); err != nil {
			return fmt.Errorf("scan devolution entry: %w", err)
		}
		p.Assets = append(p.Assets, a)
	}
	return rows.Err()
}
