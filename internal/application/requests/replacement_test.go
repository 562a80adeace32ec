package requests_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/requests"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/testutil"
)

func newReplacementUC() (*requests.ReplacementUseCase, *testutil.TxRunner) {
	tx := testutil.NewTxRunner()
	return requests.NewReplacementUseCase(tx, tx.AssetRepo, tx.ReplRepo), tx
}

func seedActivoDeEmpleado(tx *testutil.TxRunner) {
	tx.AssetRepo.Seed(&entity.Asset{
		ID: "a1", Name: "laptop", Serial: "SN-1", Status: entity.AssetActivo,
		EmployeeID: testutil.Empleado.ID, EmployeeName: testutil.Empleado.Name,
	})
}

func TestCreateReplacement(t *testing.T) {
	uc, tx := newReplacementUC()
	seedActivoDeEmpleado(tx)

	created, err := uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{
		AssetID: "a1", Reason: "teclado dañado",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReplacementPendiente, created.Status)
	assert.Equal(t, "laptop", created.AssetName)
	assert.Equal(t, "SN-1", created.Serial)

	// Crear la solicitud no transiciona el activo.
	asset, _ := tx.AssetRepo.GetByID("a1")
	assert.Equal(t, entity.AssetActivo, asset.Status)
}

func TestCreateReplacement_DuplicadaPendiente(t *testing.T) {
	uc, tx := newReplacementUC()
	seedActivoDeEmpleado(tx)

	_, err := uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{AssetID: "a1", Reason: "falla"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{AssetID: "a1", Reason: "otra falla"})
	assert.ErrorIs(t, err, domain.ErrConflict, "a lo sumo una solicitud pendiente por activo")
}

func TestCreateReplacement_Validacion(t *testing.T) {
	uc, tx := newReplacementUC()
	seedActivoDeEmpleado(tx)

	_, err := uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{AssetID: "a1", Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el motivo es obligatorio")

	tx.AssetRepo.Seed(&entity.Asset{ID: "ajeno", Name: "laptop", Status: entity.AssetActivo, EmployeeID: "otro"})
	_, err = uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{AssetID: "ajeno", Reason: "falla"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo sobre activos propios")

	tx.AssetRepo.Seed(&entity.Asset{ID: "pend", Name: "laptop", Status: entity.AssetRecibidoPendiente, EmployeeID: testutil.Empleado.ID})
	_, err = uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{AssetID: "pend", Reason: "falla"})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "solo sobre activos en estado activo")
}

func TestDecide_AprobadoTransicionaElActivo(t *testing.T) {
	uc, tx := newReplacementUC()
	seedActivoDeEmpleado(tx)
	created, err := uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{AssetID: "a1", Reason: "falla"})
	require.NoError(t, err)

	require.NoError(t, uc.Decide(context.Background(), testutil.Master, created.ID, entity.ReplacementAprobado))

	req, _ := tx.ReplRepo.GetByID(created.ID)
	assert.Equal(t, entity.ReplacementAprobado, req.Status)
	assert.Equal(t, testutil.Master.ID, req.MasterID)

	asset, _ := tx.AssetRepo.GetByID("a1")
	assert.Equal(t, entity.AssetReemplazoEnLogistica, asset.Status,
		"la aprobación debe transicionar el activo en la misma escritura lógica")
}

func TestDecide_RechazadoDejaElActivoComoEstaba(t *testing.T) {
	uc, tx := newReplacementUC()
	seedActivoDeEmpleado(tx)
	created, err := uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{AssetID: "a1", Reason: "falla"})
	require.NoError(t, err)

	require.NoError(t, uc.Decide(context.Background(), testutil.Master, created.ID, entity.ReplacementRechazado))

	req, _ := tx.ReplRepo.GetByID(created.ID)
	assert.Equal(t, entity.ReplacementRechazado, req.Status)

	asset, _ := tx.AssetRepo.GetByID("a1")
	assert.Equal(t, entity.AssetActivo, asset.Status)

	// Tras el rechazo ya no hay pendiente: puede crearse otra solicitud.
	_, err = uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{AssetID: "a1", Reason: "sigue fallando"})
	assert.NoError(t, err)
}

func TestDecide_Validacion(t *testing.T) {
	uc, tx := newReplacementUC()
	seedActivoDeEmpleado(tx)
	created, err := uc.Create(context.Background(), testutil.Empleado, requests.CreateInput{AssetID: "a1", Reason: "falla"})
	require.NoError(t, err)

	err = uc.Decide(context.Background(), testutil.Master, created.ID, "tal vez")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Decide(context.Background(), testutil.Logistica, created.ID, entity.ReplacementAprobado)
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo un master decide reemplazos")

	require.NoError(t, uc.Decide(context.Background(), testutil.Master, created.ID, entity.ReplacementAprobado))
	err = uc.Decide(context.Background(), testutil.Master, created.ID, entity.ReplacementAprobado)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una solicitud ya decidida no se decide de nuevo")
}
