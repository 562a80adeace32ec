package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/assets"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/devolution"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/requests"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

var _ assets.TxRunner = (*TxRunner)(nil)
var _ requests.TxRunner = (*TxRunner)(nil)
var _ devolution.TxRunner = (*TxRunner)(nil)

// txMaxAttempts intentos ante fallos de serialización o deadlock antes de
// rendirse con ErrConflict.
const txMaxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// reintento acotado sobre el estado recién leído cuando dos transacciones
// en conflicto chocan. Commit si el callback retorna nil, Rollback si no.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAssets transacción con el repositorio de activos (fusión de stock).
func (r *TxRunner) RunAssets(ctx context.Context, fn func(assetRepo repository.AssetRepository) error) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		return r.runTx(ctx, func(q Querier) error {
			return fn(NewAssetRepository(q))
		})
	})
}

// RunRequests transacción con los repositorios del motor de solicitudes.
func (r *TxRunner) RunRequests(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	assignRepo repository.AssignmentRequestRepository,
	replRepo repository.ReplacementRequestRepository,
) error) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		return r.runTx(ctx, func(q Querier) error {
			return fn(NewAssetRepository(q), NewAssignmentRequestRepository(q), NewReplacementRequestRepository(q))
		})
	})
}

// RunDevolution transacción con los repositorios del motor de devoluciones.
func (r *TxRunner) RunDevolution(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	procRepo repository.DevolutionProcessRepository,
) error) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		return r.runTx(ctx, func(q Querier) error {
			return fn(NewAssetRepository(q), NewDevolutionProcessRepository(q))
		})
	})
}

func (r *TxRunner) runTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// withRetry reintenta la transacción completa hasta txMaxAttempts veces ante
// fallos de serialización/deadlock; agotados los intentos surge ErrConflict.
func (r *TxRunner) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < txMaxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrConflict, err)
}
