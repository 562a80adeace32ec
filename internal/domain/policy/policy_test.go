package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
)

func actorWith(role, status string) *entity.Actor {
	return &entity.Actor{ID: "u1", Name: "Test", Email: "t@x.co", Role: role, Status: status}
}

// Cada rol solo puede ejecutar las operaciones de su columna en la tabla.
func TestCheck_MatrizDeRoles(t *testing.T) {
	cases := []struct {
		name string
		op   Operation
		role string
		ok   bool
	}{
		{"logistica agrega stock", OpAddStock, entity.RoleLogistica, true},
		{"master agrega stock", OpAddStock, entity.RoleMaster, true},
		{"empleado no agrega stock", OpAddStock, entity.RoleEmpleado, false},
		{"empleado confirma recepción", OpConfirmReceipt, entity.RoleEmpleado, true},
		{"master no confirma recepción", OpConfirmReceipt, entity.RoleMaster, false},
		{"master crea asignación", OpCreateAssignment, entity.RoleMaster, true},
		{"logistica no crea asignación", OpCreateAssignment, entity.RoleLogistica, false},
		{"logistica procesa envío", OpProcessAssignment, entity.RoleLogistica, true},
		{"master decide reemplazo", OpDecideReplacement, entity.RoleMaster, true},
		{"empleado no decide reemplazo", OpDecideReplacement, entity.RoleEmpleado, false},
		{"empleado inicia devolución", OpInitiateDevolution, entity.RoleEmpleado, true},
		{"logistica verifica devolución", OpVerifyReturn, entity.RoleLogistica, true},
		{"empleado no da de baja", OpDecommissionAsset, entity.RoleEmpleado, false},
		{"master invita usuarios", OpInviteUser, entity.RoleMaster, true},
		{"logistica no invita usuarios", OpInviteUser, entity.RoleLogistica, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.op, actorWith(tc.role, entity.UserStatusActivo))
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}

// Un actor invitado no puede ejecutar ninguna operación aunque su rol aplique.
func TestCheck_InvitadoBloqueado(t *testing.T) {
	err := Check(OpAddStock, actorWith(entity.RoleLogistica, entity.UserStatusInvitado))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Sin actor resuelto la operación es no autorizada, no prohibida.
func TestCheck_SinActor(t *testing.T) {
	err := Check(OpAddStock, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Una operación desconocida no está permitida para ningún rol.
func TestCheck_OperacionDesconocida(t *testing.T) {
	err := Check(Operation("assets.inexistente"), actorWith(entity.RoleMaster, entity.UserStatusActivo))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
