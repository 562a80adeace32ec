package dto

import (
	"time"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
)

// ── Solicitudes de asignación ─────────────────────────────────────────────────

// AssignmentRowRequest una fila del lote de asignación.
type AssignmentRowRequest struct {
	AssetID  string `json:"asset_id"`
	Quantity int    `json:"quantity"`
}

// CreateAssignmentBatchRequest lote de asignación para un empleado.
type CreateAssignmentBatchRequest struct {
	EmployeeID string                 `json:"employee_id"`
	Rows       []AssignmentRowRequest `json:"rows"`
}

// ProcessAssignmentRequest datos del envío físico.
type ProcessAssignmentRequest struct {
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
}

// RejectRequest rechazo con motivo obligatorio (asignación).
type RejectRequest struct {
	Reason string `json:"reason"`
}

// AssignmentRequestDTO representación pública de una solicitud de asignación.
type AssignmentRequestDTO struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	AssetID         string    `json:"asset_id"`
	AssetName       string    `json:"asset_name"`
	Quantity        int       `json:"quantity"`
	Date            time.Time `json:"date"`
	Status          string    `json:"status"`
	TrackingNumber  string    `json:"tracking_number,omitempty"`
	Carrier         string    `json:"carrier,omitempty"`
	MasterName      string    `json:"master_name,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
}

// ToAssignmentRequestDTO convierte la entidad a su representación pública.
func ToAssignmentRequestDTO(r *entity.AssignmentRequest) AssignmentRequestDTO {
	return AssignmentRequestDTO{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		AssetID:         r.AssetID,
		AssetName:       r.AssetName,
		Quantity:        r.Quantity,
		Date:            r.Date,
		Status:          r.Status,
		TrackingNumber:  r.TrackingNumber,
		Carrier:         r.Carrier,
		MasterName:      r.MasterName,
		RejectionReason: r.RejectionReason,
	}
}

// ToAssignmentRequestDTOs convierte una lista de entidades.
func ToAssignmentRequestDTOs(reqs []*entity.AssignmentRequest) []AssignmentRequestDTO {
	out := make([]AssignmentRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ToAssignmentRequestDTO(r))
	}
	return out
}

// ── Solicitudes de reemplazo ──────────────────────────────────────────────────

// CreateReplacementRequest solicitud de reemplazo de un activo en custodia.
type CreateReplacementRequest struct {
	AssetID       string `json:"asset_id"`
	Reason        string `json:"reason"`
	Justification string `json:"justification"`
	ImageURL      string `json:"image_url"`
}

// DecideReplacementRequest decisión del master: "aprobado" o "rechazado".
type DecideReplacementRequest struct {
	Decision string `json:"decision"`
}

// ReplacementRequestDTO representación pública de una solicitud de reemplazo.
type ReplacementRequestDTO struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	MasterID      string    `json:"master_id,omitempty"`
	AssetID       string    `json:"asset_id"`
	AssetName     string    `json:"asset_name"`
	Serial        string    `json:"serial,omitempty"`
	Reason        string    `json:"reason"`
	Justification string    `json:"justification,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
}

// ToReplacementRequestDTO convierte la entidad a su representación pública.
func ToReplacementRequestDTO(r *entity.ReplacementRequest) ReplacementRequestDTO {
	return ReplacementRequestDTO{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		MasterID:      r.MasterID,
		AssetID:       r.AssetID,
		AssetName:     r.AssetName,
		Serial:        r.Serial,
		Reason:        r.Reason,
		Justification: r.Justification,
		ImageURL:      r.ImageURL,
		Date:          r.Date,
		Status:        r.Status,
	}
}

// ToReplacementRequestDTOs convierte una lista de entidades.
func ToReplacementRequestDTOs(reqs []*entity.ReplacementRequest) []ReplacementRequestDTO {
	out := make([]ReplacementRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, ToReplacementRequestDTO(r))
	}
	return out
}
