package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
)

var assetCols = []string{
	"id", "reference", "name", "serial", "location", "status", "tipo", "stock",
	"employee_id", "employee_name", "assigned_date", "rejection_reason", "baja_reason", "evidence_url",
	"created_at", "updated_at",
}

func stockRow(now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(assetCols).AddRow(
		"stock-1", "REF-1", "taladro", "", "bodega", entity.AssetEnStock, "herramienta", 5,
		nil, "", nil, "", "", "",
		now, now,
	)
}

func TestAssetRepo_GetStockByName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewAssetRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE name = \$1 AND status = \$2`).
		WithArgs("taladro", entity.AssetEnStock).
		WillReturnRows(stockRow(time.Now()))

	got, err := repo.GetStockByName("taladro")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "stock-1", got.ID)
	assert.Equal(t, 5, got.Stock)
	assert.Empty(t, got.EmployeeID, "una fila de stock no tiene empleado")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetRepo_GetStockByName_SinFila(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewAssetRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE name = \$1 AND status = \$2`).
		WithArgs("inexistente", entity.AssetEnStock).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetStockByName("inexistente")
	require.NoError(t, err, "sin fila no es un error, es nil")
	assert.Nil(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetRepo_GetStockByNameForUpdate_BloqueaLaFila(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewAssetRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE name = \$1 AND status = \$2 FOR UPDATE`).
		WithArgs("taladro", entity.AssetEnStock).
		WillReturnRows(stockRow(time.Now()))

	got, err := repo.GetStockByNameForUpdate("taladro")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_EmailDuplicado(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewUserRepository(mock)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err = repo.Create(&entity.User{ID: "u1", Email: "elena@fijosdn.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists,
		"la violación del índice único de email debe mapearse al error de dominio")

	assert.NoError(t, mock.ExpectationsWereMet())
}
