package devolution_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/devolution"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/testutil"
)

func newDevolutionUC() (*devolution.UseCase, *testutil.TxRunner, *testutil.EvidenceStore) {
	tx := testutil.NewTxRunner()
	evidence := testutil.NewEvidenceStore()
	return devolution.NewUseCase(tx, tx.ProcRepo, evidence), tx, evidence
}

func seedCustodia(tx *testutil.TxRunner) {
	tx.AssetRepo.Seed(
		&entity.Asset{ID: "a1", Name: "taladro", Serial: "SN-1", Status: entity.AssetActivo,
			EmployeeID: testutil.Empleado.ID, EmployeeName: testutil.Empleado.Name},
		&entity.Asset{ID: "a2", Name: "taladro", Serial: "SN-2", Status: entity.AssetActivo,
			EmployeeID: testutil.Empleado.ID, EmployeeName: testutil.Empleado.Name},
		// Una unidad sin confirmar no entra al proceso.
		&entity.Asset{ID: "a3", Name: "laptop", Status: entity.AssetRecibidoPendiente,
			EmployeeID: testutil.Empleado.ID, EmployeeName: testutil.Empleado.Name},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Initiate
// ──────────────────────────────────────────────────────────────────────────────

func TestInitiate_SnapshotDeActivos(t *testing.T) {
	uc, tx, _ := newDevolutionUC()
	seedCustodia(tx)

	proc, err := uc.Initiate(context.Background(), testutil.Empleado)
	require.NoError(t, err)
	assert.Equal(t, entity.DevolucionIniciado, proc.Status)
	assert.Len(t, proc.Assets, 2, "solo los activos en estado activo entran al proceso")

	for _, id := range []string{"a1", "a2"} {
		a, _ := tx.AssetRepo.GetByID(id)
		assert.Equal(t, entity.AssetEnDevolucion, a.Status)
	}
	a3, _ := tx.AssetRepo.GetByID("a3")
	assert.Equal(t, entity.AssetRecibidoPendiente, a3.Status, "lo no confirmado queda fuera")
}

func TestInitiate_SinActivos(t *testing.T) {
	uc, _, _ := newDevolutionUC()

	_, err := uc.Initiate(context.Background(), testutil.Empleado)
	assert.ErrorIs(t, err, domain.ErrNothingToReturn)
}

// ──────────────────────────────────────────────────────────────────────────────
// VerifyReturn — ida y vuelta completa
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyReturn_IdaYVueltaCompleta(t *testing.T) {
	uc, tx, _ := newDevolutionUC()
	seedCustodia(tx)
	ctx := context.Background()

	proc, err := uc.Initiate(ctx, testutil.Empleado)
	require.NoError(t, err)

	require.NoError(t, uc.VerifyReturn(ctx, testutil.Logistica, proc.ID, "a1"))

	got, _ := tx.ProcRepo.GetByID(proc.ID)
	assert.Equal(t, entity.DevolucionIniciado, got.Status, "con entradas pendientes el proceso sigue abierto")

	require.NoError(t, uc.VerifyReturn(ctx, testutil.Logistica, proc.ID, "a2"))

	got, _ = tx.ProcRepo.GetByID(proc.ID)
	assert.Equal(t, entity.DevolucionCompletado, got.Status,
		"la última verificación debe completar el proceso")

	// Las dos unidades del mismo nombre se fusionan en una sola fila de stock.
	row, err := tx.AssetRepo.GetStockByName("taladro")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 2, row.Stock, "dos taladros devueltos deben sumar 2 en la fila de stock")
	rows, _ := tx.AssetRepo.ListStock()
	assert.Len(t, rows, 1)
}

func TestVerifyReturn_EntradaYaVerificada(t *testing.T) {
	uc, tx, _ := newDevolutionUC()
	seedCustodia(tx)
	ctx := context.Background()
	proc, err := uc.Initiate(ctx, testutil.Empleado)
	require.NoError(t, err)

	require.NoError(t, uc.VerifyReturn(ctx, testutil.Logistica, proc.ID, "a1"))
	err = uc.VerifyReturn(ctx, testutil.Logistica, proc.ID, "a1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	row, _ := tx.AssetRepo.GetStockByName("taladro")
	assert.Equal(t, 1, row.Stock, "la doble verificación no debe duplicar stock")
}

func TestVerifyReturn_ActivoFueraDelProceso(t *testing.T) {
	uc, tx, _ := newDevolutionUC()
	seedCustodia(tx)
	proc, err := uc.Initiate(context.Background(), testutil.Empleado)
	require.NoError(t, err)

	err = uc.VerifyReturn(context.Background(), testutil.Logistica, proc.ID, "a3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decommission
// ──────────────────────────────────────────────────────────────────────────────

func TestDecommission_JustificacionObligatoria(t *testing.T) {
	uc, tx, evidence := newDevolutionUC()
	seedCustodia(tx)
	proc, err := uc.Initiate(context.Background(), testutil.Empleado)
	require.NoError(t, err)

	_, err = uc.Decommission(context.Background(), testutil.Logistica, proc.ID, "a1", devolution.DecommissionInput{
		Justification: "  ", Image: []byte("foto"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, evidence.Uploads, "sin justificación no debe subirse nada")

	a1, _ := tx.AssetRepo.GetByID("a1")
	assert.Equal(t, entity.AssetEnDevolucion, a1.Status, "el activo no debe cambiar de estado")
}

func TestDecommission_EvidenciaObligatoria(t *testing.T) {
	uc, tx, _ := newDevolutionUC()
	seedCustodia(tx)
	proc, err := uc.Initiate(context.Background(), testutil.Empleado)
	require.NoError(t, err)

	_, err = uc.Decommission(context.Background(), testutil.Logistica, proc.ID, "a1", devolution.DecommissionInput{
		Justification: "irreparable",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin foto ni URL previa no hay baja")
}

func TestDecommission_DaDeBajaConEvidencia(t *testing.T) {
	uc, tx, evidence := newDevolutionUC()
	seedCustodia(tx)
	proc, err := uc.Initiate(context.Background(), testutil.Empleado)
	require.NoError(t, err)

	url, err := uc.Decommission(context.Background(), testutil.Logistica, proc.ID, "a1", devolution.DecommissionInput{
		Justification: "carcasa partida", Image: []byte("foto"), ImageName: "rota.jpg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.Len(t, evidence.Uploads, 1)

	a1, _ := tx.AssetRepo.GetByID("a1")
	assert.Equal(t, entity.AssetBaja, a1.Status)
	assert.Equal(t, "carcasa partida", a1.BajaReason)
	assert.Equal(t, url, a1.EvidenceURL)

	row, _ := tx.AssetRepo.GetStockByName("taladro")
	assert.Nil(t, row, "una baja no debe volver al stock")
}

func TestDecommission_ReintentoConURLNoResube(t *testing.T) {
	uc, tx, evidence := newDevolutionUC()
	seedCustodia(tx)
	proc, err := uc.Initiate(context.Background(), testutil.Empleado)
	require.NoError(t, err)

	url, err := uc.Decommission(context.Background(), testutil.Logistica, proc.ID, "a1", devolution.DecommissionInput{
		Justification: "irreparable", EvidenceURL: "https://storage.test/evidencias/previa.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/evidencias/previa.jpg", url)
	assert.Empty(t, evidence.Uploads, "con URL previa no se vuelve a subir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_RequiereTodoVerificado(t *testing.T) {
	uc, tx, _ := newDevolutionUC()
	seedCustodia(tx)
	ctx := context.Background()
	proc, err := uc.Initiate(ctx, testutil.Empleado)
	require.NoError(t, err)

	err = uc.Complete(ctx, testutil.Logistica, proc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "con entradas pendientes no puede completarse")

	require.NoError(t, uc.VerifyReturn(ctx, testutil.Logistica, proc.ID, "a1"))
	require.NoError(t, uc.VerifyReturn(ctx, testutil.Logistica, proc.ID, "a2"))

	// La última verificación ya lo completó: completar de nuevo es inválido.
	err = uc.Complete(ctx, testutil.Logistica, proc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "completado es terminal")
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_EmpleadoSoloVeLosSuyos(t *testing.T) {
	uc, tx, _ := newDevolutionUC()
	seedCustodia(tx)
	proc, err := uc.Initiate(context.Background(), testutil.Empleado)
	require.NoError(t, err)

	otro := &entity.Actor{ID: "emp-2", Name: "Otro", Role: entity.RoleEmpleado, Status: entity.UserStatusActivo}
	_, err = uc.Get(context.Background(), otro, proc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.Get(context.Background(), testutil.Logistica, proc.ID)
	require.NoError(t, err)
	assert.Equal(t, proc.ID, got.ID, "logística ve cualquier proceso")
}
