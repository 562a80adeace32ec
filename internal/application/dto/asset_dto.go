package dto

import (
	"time"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
)

// AddStockRequest alta de inventario fusionable por nombre.
type AddStockRequest struct {
	Name     string `json:"name"`
	Serial   string `json:"serial"`
	Location string `json:"location"`
	Tipo     string `json:"tipo"`
	Quantity int    `json:"quantity"`
}

// RejectReceiptRequest rechazo de recepción con motivo obligatorio.
type RejectReceiptRequest struct {
	Reason string `json:"reason"`
}

// ResolveReplacementRequest destino final de un activo en logística de
// reemplazo: "en stock" o "baja".
type ResolveReplacementRequest struct {
	Outcome string `json:"outcome"`
}

// UpdateAssetRequest corrección administrativa; los campos nil no se tocan.
type UpdateAssetRequest struct {
	Reference *string `json:"reference"`
	Name      *string `json:"name"`
	Serial    *string `json:"serial"`
	Location  *string `json:"location"`
	Tipo      *string `json:"tipo"`
}

// AssetDTO representación pública de un activo.
type AssetDTO struct {
	ID              string     `json:"id"`
	Reference       string     `json:"reference,omitempty"`
	Name            string     `json:"name"`
	Serial          string     `json:"serial,omitempty"`
	Location        string     `json:"location,omitempty"`
	Status          string     `json:"status"`
	Tipo            string     `json:"tipo,omitempty"`
	Stock           int        `json:"stock"`
	EmployeeID      string     `json:"employee_id,omitempty"`
	EmployeeName    string     `json:"employee_name,omitempty"`
	AssignedDate    *time.Time `json:"assigned_date,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	BajaReason      string     `json:"baja_reason,omitempty"`
	EvidenceURL     string     `json:"evidence_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToAssetDTO convierte la entidad a su representación pública.
func ToAssetDTO(a *entity.Asset) AssetDTO {
	return AssetDTO{
		ID:              a.ID,
		Reference:       a.Reference,
		Name:            a.Name,
		Serial:          a.Serial,
		Location:        a.Location,
		Status:          a.Status,
		Tipo:            a.Tipo,
		Stock:           a.Stock,
		EmployeeID:      a.EmployeeID,
		EmployeeName:    a.EmployeeName,
		AssignedDate:    a.AssignedDate,
		RejectionReason: a.RejectionReason,
		BajaReason:      a.BajaReason,
		EvidenceURL:     a.EvidenceURL,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToAssetDTOs convierte una lista de entidades.
func ToAssetDTOs(assets []*entity.Asset) []AssetDTO {
	out := make([]AssetDTO, 0, len(assets))
	for _, a := range assets {
		out = append(out, ToAssetDTO(a))
	}
	return out
}
