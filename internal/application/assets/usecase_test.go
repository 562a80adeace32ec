package assets_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/assets"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/testutil"
)

func newAssetUC() (*assets.UseCase, *testutil.TxRunner) {
	tx := testutil.NewTxRunner()
	return assets.NewUseCase(tx, tx.AssetRepo), tx
}

// ──────────────────────────────────────────────────────────────────────────────
// AddStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_FusionaPorNombre(t *testing.T) {
	uc, tx := newAssetUC()
	ctx := context.Background()

	first, err := uc.AddStock(ctx, testutil.Logistica, assets.AddStockInput{Name: "taladro", Quantity: 5})
	require.NoError(t, err)
	require.Equal(t, 5, first.Stock)

	second, err := uc.AddStock(ctx, testutil.Logistica, assets.AddStockInput{Name: "taladro", Quantity: 5})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "la segunda alta debe fusionarse en la misma fila")
	assert.Equal(t, 10, second.Stock, "5+5 debe quedar en una sola fila con 10")

	rows, err := tx.AssetRepo.ListStock()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "nunca debe haber dos filas de stock con el mismo nombre")
}

func TestAddStock_Concurrente_NoPierdeUnidades(t *testing.T) {
	uc, tx := newAssetUC()
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, qty := range []int{3, 4} {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			_, err := uc.AddStock(ctx, testutil.Logistica, assets.AddStockInput{Name: "laptop", Quantity: q})
			assert.NoError(t, err)
		}(qty)
	}
	wg.Wait()

	row, err := tx.AssetRepo.GetStockByName("laptop")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 7, row.Stock, "3+4 concurrentes deben sumar 7 sin updates perdidos")

	rows, _ := tx.AssetRepo.ListStock()
	assert.Len(t, rows, 1)
}

func TestAddStock_Validacion(t *testing.T) {
	uc, _ := newAssetUC()
	ctx := context.Background()

	_, err := uc.AddStock(ctx, testutil.Logistica, assets.AddStockInput{Name: "  ", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío debe rechazarse")

	_, err = uc.AddStock(ctx, testutil.Logistica, assets.AddStockInput{Name: "taladro", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero debe rechazarse")

	_, err = uc.AddStock(ctx, testutil.Empleado, assets.AddStockInput{Name: "taladro", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden, "un empleado no puede agregar stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// ConfirmReceipt / RejectReceipt
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirmReceipt_PasaAActivo(t *testing.T) {
	uc, tx := newAssetUC()
	tx.AssetRepo.Seed(&entity.Asset{
		ID: "a1", Name: "laptop", Status: entity.AssetRecibidoPendiente,
		EmployeeID: testutil.Empleado.ID, EmployeeName: testutil.Empleado.Name,
	})

	require.NoError(t, uc.ConfirmReceipt(context.Background(), testutil.Empleado, "a1"))

	got, _ := tx.AssetRepo.GetByID("a1")
	assert.Equal(t, entity.AssetActivo, got.Status)
	assert.NotNil(t, got.AssignedDate, "la confirmación debe registrar la fecha de asignación")
}

func TestConfirmReceipt_EstadoInvalido(t *testing.T) {
	uc, tx := newAssetUC()
	tx.AssetRepo.Seed(&entity.Asset{
		ID: "a1", Name: "laptop", Status: entity.AssetBaja, EmployeeID: testutil.Empleado.ID,
	})

	err := uc.ConfirmReceipt(context.Background(), testutil.Empleado, "a1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestConfirmReceipt_ActivoAjeno(t *testing.T) {
	uc, tx := newAssetUC()
	tx.AssetRepo.Seed(&entity.Asset{
		ID: "a1", Name: "laptop", Status: entity.AssetRecibidoPendiente, EmployeeID: "otro-empleado",
	})

	err := uc.ConfirmReceipt(context.Background(), testutil.Empleado, "a1")
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo el empleado en custodia puede confirmar")
}

func TestRejectReceipt_MotivoObligatorio(t *testing.T) {
	uc, tx := newAssetUC()
	tx.AssetRepo.Seed(&entity.Asset{
		ID: "a1", Name: "laptop", Status: entity.AssetRecibidoPendiente, EmployeeID: testutil.Empleado.ID,
	})

	err := uc.RejectReceipt(context.Background(), testutil.Empleado, "a1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, _ := tx.AssetRepo.GetByID("a1")
	assert.Equal(t, entity.AssetRecibidoPendiente, got.Status, "el estado no debe cambiar sin motivo")
}

func TestRejectReceipt_PasaADisputa(t *testing.T) {
	uc, tx := newAssetUC()
	tx.AssetRepo.Seed(&entity.Asset{
		ID: "a1", Name: "laptop", Status: entity.AssetRecibidoPendiente, EmployeeID: testutil.Empleado.ID,
	})

	require.NoError(t, uc.RejectReceipt(context.Background(), testutil.Empleado, "a1", "llegó con la pantalla rota"))

	got, _ := tx.AssetRepo.GetByID("a1")
	assert.Equal(t, entity.AssetEnDisputa, got.Status)
	assert.Equal(t, "llegó con la pantalla rota", got.RejectionReason)
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveReplacement
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveReplacement_RetornoAStock(t *testing.T) {
	uc, tx := newAssetUC()
	tx.AssetRepo.Seed(
		&entity.Asset{ID: "stock-1", Name: "laptop", Status: entity.AssetEnStock, Stock: 2},
		&entity.Asset{ID: "unit-1", Name: "laptop", Status: entity.AssetReemplazoEnLogistica, EmployeeID: testutil.Empleado.ID},
	)

	require.NoError(t, uc.ResolveReplacement(context.Background(), testutil.Logistica, "unit-1", assets.ReplacementToStock))

	row, _ := tx.AssetRepo.GetStockByName("laptop")
	require.NotNil(t, row)
	assert.Equal(t, 3, row.Stock, "la unidad debe fusionarse en la fila de stock")

	unit, _ := tx.AssetRepo.GetByID("unit-1")
	assert.Nil(t, unit, "la unidad absorbida debe desaparecer")
}

func TestResolveReplacement_Baja(t *testing.T) {
	uc, tx := newAssetUC()
	tx.AssetRepo.Seed(&entity.Asset{ID: "unit-1", Name: "laptop", Status: entity.AssetReemplazoEnLogistica})

	require.NoError(t, uc.ResolveReplacement(context.Background(), testutil.Logistica, "unit-1", assets.ReplacementToBaja))

	got, _ := tx.AssetRepo.GetByID("unit-1")
	assert.Equal(t, entity.AssetBaja, got.Status)
}

func TestResolveReplacement_DestinoInvalido(t *testing.T) {
	uc, tx := newAssetUC()
	tx.AssetRepo.Seed(&entity.Asset{ID: "unit-1", Name: "laptop", Status: entity.AssetReemplazoEnLogistica})

	err := uc.ResolveReplacement(context.Background(), testutil.Logistica, "unit-1", "regalado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveReplacement_EstadoInvalido(t *testing.T) {
	uc, tx := newAssetUC()
	tx.AssetRepo.Seed(&entity.Asset{ID: "unit-1", Name: "laptop", Status: entity.AssetActivo})

	err := uc.ResolveReplacement(context.Background(), testutil.Logistica, "unit-1", assets.ReplacementToBaja)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
