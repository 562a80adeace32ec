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

func newAssignmentUC() (*requests.AssignmentUseCase, *testutil.TxRunner, *testutil.UserRepo) {
	tx := testutil.NewTxRunner()
	users := testutil.NewUserRepo()
	_ = users.Create(&entity.User{
		ID: testutil.Empleado.ID, Email: testutil.Empleado.Email,
		Name: testutil.Empleado.Name, Role: entity.RoleEmpleado, Status: entity.UserStatusActivo,
	})
	return requests.NewAssignmentUseCase(tx, users, tx.AssetRepo, tx.AssignRepo), tx, users
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateBatch
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBatch_EstadoPorFilaSegunStock(t *testing.T) {
	uc, tx, _ := newAssignmentUC()
	tx.AssetRepo.Seed(&entity.Asset{ID: "stock-1", Name: "taladro", Status: entity.AssetEnStock, Stock: 5})

	created, err := uc.CreateBatch(context.Background(), testutil.Master, testutil.Empleado.ID, []requests.AssignmentRow{
		{AssetID: "stock-1", Quantity: 3},
		{AssetID: "stock-1", Quantity: 9},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, entity.AssignmentPendienteEnvio, created[0].Status, "3 <= 5 debe quedar pendiente de envío")
	assert.Equal(t, entity.AssignmentPendienteStock, created[1].Status, "9 > 5 debe quedar pendiente por stock")
	assert.Equal(t, testutil.Master.Name, created[0].MasterName)

	row, _ := tx.AssetRepo.GetByID("stock-1")
	assert.Equal(t, 5, row.Stock, "crear solicitudes no reserva ni descuenta stock")
}

func TestCreateBatch_DestinatarioInvalido(t *testing.T) {
	uc, tx, users := newAssignmentUC()
	tx.AssetRepo.Seed(&entity.Asset{ID: "stock-1", Name: "taladro", Status: entity.AssetEnStock, Stock: 5})
	rows := []requests.AssignmentRow{{AssetID: "stock-1", Quantity: 1}}

	_, err := uc.CreateBatch(context.Background(), testutil.Master, "no-existe", rows)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_ = users.Create(&entity.User{ID: "inv-1", Email: "inv@fijosdn.test", Role: entity.RoleEmpleado, Status: entity.UserStatusInvitado})
	_, err = uc.CreateBatch(context.Background(), testutil.Master, "inv-1", rows)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "un invitado no puede recibir asignaciones")

	_ = users.Create(&entity.User{ID: "logi-x", Email: "logi-x@fijosdn.test", Role: entity.RoleLogistica, Status: entity.UserStatusActivo})
	_, err = uc.CreateBatch(context.Background(), testutil.Master, "logi-x", rows)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "solo un empleado puede recibir asignaciones")
}

func TestCreateBatch_Validacion(t *testing.T) {
	uc, _, _ := newAssignmentUC()

	_, err := uc.CreateBatch(context.Background(), testutil.Master, testutil.Empleado.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateBatch(context.Background(), testutil.Master, testutil.Empleado.ID,
		[]requests.AssignmentRow{{AssetID: "stock-1", Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateBatch(context.Background(), testutil.Logistica, testutil.Empleado.ID,
		[]requests.AssignmentRow{{AssetID: "stock-1", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo un master crea solicitudes de asignación")
}

// ──────────────────────────────────────────────────────────────────────────────
// Process
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_DescuentaYCreaUnidades(t *testing.T) {
	uc, tx, _ := newAssignmentUC()
	tx.AssetRepo.Seed(&entity.Asset{ID: "stock-1", Name: "taladro", Status: entity.AssetEnStock, Stock: 5, Location: "bodega"})
	created, err := uc.CreateBatch(context.Background(), testutil.Master, testutil.Empleado.ID,
		[]requests.AssignmentRow{{AssetID: "stock-1", Quantity: 3}})
	require.NoError(t, err)

	err = uc.Process(context.Background(), testutil.Logistica, created[0].ID, requests.ProcessInput{
		TrackingNumber: "TRK-001", Carrier: "Servientrega",
	})
	require.NoError(t, err)

	row, _ := tx.AssetRepo.GetByID("stock-1")
	assert.Equal(t, 2, row.Stock, "el despacho debe descontar la cantidad")

	units, _ := tx.AssetRepo.ListByEmployeeAndStatus(testutil.Empleado.ID, entity.AssetRecibidoPendiente)
	require.Len(t, units, 3, "una unidad rastreable por cada cantidad enviada")
	for _, u := range units {
		assert.Equal(t, "taladro", u.Name)
		assert.Equal(t, testutil.Empleado.Name, u.EmployeeName)
	}

	req, _ := tx.AssignRepo.GetByID(created[0].ID)
	assert.Equal(t, entity.AssignmentEnviado, req.Status)
	assert.Equal(t, "TRK-001", req.TrackingNumber)
	assert.Equal(t, "Servientrega", req.Carrier)
}

func TestProcess_StockInsuficiente(t *testing.T) {
	uc, tx, _ := newAssignmentUC()
	tx.AssetRepo.Seed(&entity.Asset{ID: "stock-1", Name: "taladro", Status: entity.AssetEnStock, Stock: 5})
	created, err := uc.CreateBatch(context.Background(), testutil.Master, testutil.Empleado.ID,
		[]requests.AssignmentRow{{AssetID: "stock-1", Quantity: 4}})
	require.NoError(t, err)

	// Otro despacho consumió el stock entre la creación y el proceso.
	row, _ := tx.AssetRepo.GetByID("stock-1")
	row.Stock = 2
	require.NoError(t, tx.AssetRepo.Update(row))

	err = uc.Process(context.Background(), testutil.Logistica, created[0].ID, requests.ProcessInput{})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	row, _ = tx.AssetRepo.GetByID("stock-1")
	assert.Equal(t, 2, row.Stock, "el stock no debe cambiar en un despacho fallido")
	req, _ := tx.AssignRepo.GetByID(created[0].ID)
	assert.Equal(t, entity.AssignmentPendienteEnvio, req.Status)
}

func TestProcess_EstadoInvalido(t *testing.T) {
	uc, tx, _ := newAssignmentUC()
	_ = tx.AssignRepo.Create(&entity.AssignmentRequest{ID: "r1", Status: entity.AssignmentEnviado})

	err := uc.Process(context.Background(), testutil.Logistica, "r1", requests.ProcessInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reject / Archive / RecheckPendingStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_MotivoObligatorio(t *testing.T) {
	uc, tx, _ := newAssignmentUC()
	_ = tx.AssignRepo.Create(&entity.AssignmentRequest{ID: "r1", Status: entity.AssignmentPendienteEnvio})

	err := uc.Reject(context.Background(), testutil.Master, "r1", " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Reject(context.Background(), testutil.Master, "r1", "ya no aplica"))
	req, _ := tx.AssignRepo.GetByID("r1")
	assert.Equal(t, entity.AssignmentRechazado, req.Status)
	assert.Equal(t, "ya no aplica", req.RejectionReason)
}

func TestArchive_SoloTerminales(t *testing.T) {
	uc, tx, _ := newAssignmentUC()
	_ = tx.AssignRepo.Create(&entity.AssignmentRequest{ID: "r1", Status: entity.AssignmentPendienteEnvio})
	_ = tx.AssignRepo.Create(&entity.AssignmentRequest{ID: "r2", Status: entity.AssignmentEnviado})

	err := uc.Archive(context.Background(), testutil.Master, "r1")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una solicitud pendiente no puede archivarse")

	require.NoError(t, uc.Archive(context.Background(), testutil.Master, "r2"))
	req, _ := tx.AssignRepo.GetByID("r2")
	assert.Equal(t, entity.AssignmentArchivado, req.Status)
}

func TestRecheckPendingStock_LiberaLasQueAlcanzan(t *testing.T) {
	uc, tx, _ := newAssignmentUC()
	tx.AssetRepo.Seed(&entity.Asset{ID: "stock-1", Name: "taladro", Status: entity.AssetEnStock, Stock: 10})
	_ = tx.AssignRepo.Create(&entity.AssignmentRequest{ID: "r1", AssetName: "taladro", Quantity: 4, Status: entity.AssignmentPendienteStock})
	_ = tx.AssignRepo.Create(&entity.AssignmentRequest{ID: "r2", AssetName: "taladro", Quantity: 40, Status: entity.AssignmentPendienteStock})

	moved, err := uc.RecheckPendingStock(context.Background(), testutil.Logistica)
	require.NoError(t, err)
	require.Len(t, moved, 1, "solo la que alcanza stock debe cambiar")
	assert.Equal(t, "r1", moved[0].ID)

	r1, _ := tx.AssignRepo.GetByID("r1")
	assert.Equal(t, entity.AssignmentPendienteEnvio, r1.Status)
	r2, _ := tx.AssignRepo.GetByID("r2")
	assert.Equal(t, entity.AssignmentPendienteStock, r2.Status)
}
