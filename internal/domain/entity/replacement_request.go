package entity

import "time"

// Estados de una solicitud de reemplazo.
const (
	ReplacementPendiente = "pendiente de aprobacion master"
	ReplacementAprobado  = "aprobado"
	ReplacementRechazado = "rechazado"
)

// ReplacementRequest solicitud de un empleado para reemplazar uno de sus
// activos en estado "activo". Invariante: a lo sumo una solicitud pendiente
// por activo (respaldada por índice único parcial en la base de datos).
type ReplacementRequest struct {
	ID            string
	EmployeeID    string
	EmployeeName  string
	MasterID      string
	AssetID       string
	AssetName     string
	Serial        string
	Reason        string
	Justification string
	ImageURL      string
	Date          time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
