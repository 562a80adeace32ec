// Package policy centraliza la autorización: una sola tabla
// {operación -> roles permitidos} consultada por los motores de negocio,
// en lugar de chequeos de rol repartidos por cada punto de llamada.
package policy

import (
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
)

// Operation identifica una operación de negocio autorizable.
type Operation string

const (
	OpAddStock           Operation = "assets.add_stock"
	OpUpdateAsset        Operation = "assets.update"
	OpDeleteAsset        Operation = "assets.delete"
	OpConfirmReceipt     Operation = "assets.confirm_receipt"
	OpRejectReceipt      Operation = "assets.reject_receipt"
	OpResolveReplacement Operation = "assets.resolve_replacement"
	OpListStock          Operation = "assets.list_stock"

	OpCreateAssignment  Operation = "requests.create_assignment"
	OpProcessAssignment Operation = "requests.process_assignment"
	OpRejectAssignment  Operation = "requests.reject_assignment"
	OpArchiveAssignment Operation = "requests.archive_assignment"
	OpRecheckStock      Operation = "requests.recheck_stock"
	OpCreateReplacement Operation = "requests.create_replacement"
	OpDecideReplacement Operation = "requests.decide_replacement"

	OpInitiateDevolution Operation = "devolution.initiate"
	OpVerifyReturn       Operation = "devolution.verify_return"
	OpDecommissionAsset  Operation = "devolution.decommission"
	OpCompleteDevolution Operation = "devolution.complete"
	OpIssueCertificate   Operation = "devolution.certificate"

	OpInviteUser  Operation = "users.invite"
	OpManageUsers Operation = "users.manage"
	OpListUsers   Operation = "users.list"
)

// allowed es la tabla de autorización. Una operación ausente no está
// permitida para nadie.
var allowed = map[Operation][]string{
	OpAddStock:           {entity.RoleLogistica, entity.RoleMaster},
	OpUpdateAsset:        {entity.RoleMaster},
	OpDeleteAsset:        {entity.RoleMaster},
	OpConfirmReceipt:     {entity.RoleEmpleado},
	OpRejectReceipt:      {entity.RoleEmpleado},
	OpResolveReplacement: {entity.RoleLogistica},
	OpListStock:          {entity.RoleLogistica, entity.RoleMaster},

	OpCreateAssignment:  {entity.RoleMaster},
	OpProcessAssignment: {entity.RoleLogistica},
	OpRejectAssignment:  {entity.RoleMaster, entity.RoleLogistica},
	OpArchiveAssignment: {entity.RoleMaster, entity.RoleLogistica},
	OpRecheckStock:      {entity.RoleLogistica},
	OpCreateReplacement: {entity.RoleEmpleado},
	OpDecideReplacement: {entity.RoleMaster},

	OpInitiateDevolution: {entity.RoleEmpleado},
	OpVerifyReturn:       {entity.RoleLogistica},
	OpDecommissionAsset:  {entity.RoleLogistica},
	OpCompleteDevolution: {entity.RoleLogistica},
	OpIssueCertificate:   {entity.RoleMaster, entity.RoleLogistica, entity.RoleEmpleado},

	OpInviteUser:  {entity.RoleMaster},
	OpManageUsers: {entity.RoleMaster},
	OpListUsers:   {entity.RoleMaster, entity.RoleLogistica},
}

// Check valida que el actor exista, esté activo y su rol permita la operación.
func Check(op Operation, actor *entity.Actor) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if actor.Status != entity.UserStatusActivo {
		return domain.ErrForbidden
	}
	for _, role := range allowed[op] {
		if actor.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}
