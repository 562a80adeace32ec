package entity

import "time"

// Estados de una solicitud de asignación. El estado se decide al crearla:
// "pendiente por stock" si la cantidad pedida supera el stock disponible en
// ese momento; si no, "pendiente de envío".
const (
	AssignmentPendienteEnvio = "pendiente de envío"
	AssignmentPendienteStock = "pendiente por stock"
	AssignmentEnviado        = "enviado"
	AssignmentRechazado      = "rechazado"
	AssignmentArchivado      = "archivado"
)

// AssignmentRequest solicitud de un master para asignar unidades de un activo
// en stock a un empleado. La creación es por lotes: cada fila del lote genera
// una solicitud independiente con su propia verificación de stock.
type AssignmentRequest struct {
	ID             string
	EmployeeID     string
	EmployeeName   string
	AssetID        string // fila de stock referenciada al crear
	AssetName      string
	Quantity       int
	Date           time.Time
	Status         string
	TrackingNumber string
	Carrier        string
	MasterName     string
	RejectionReason string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
