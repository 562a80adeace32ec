package entity

import "time"

// Estados del ciclo de vida de un activo fijo.
//
//	en stock --(asignar)--> recibido pendiente --(empleado confirma)--> activo
//	recibido pendiente --(empleado rechaza, motivo obligatorio)--> en disputa
//	activo --(reemplazo aprobado)--> reemplazo_en_logistica --(logística resuelve)--> en stock | baja
//	activo --(devolución iniciada)--> en devolución --(logística verifica)--> en stock
//	en devolución --(logística da de baja, justificación+evidencia)--> baja
const (
	AssetEnStock              = "en stock"
	AssetRecibidoPendiente    = "recibido pendiente"
	AssetActivo               = "activo"
	AssetEnDisputa            = "en disputa"
	AssetEnDevolucion         = "en devolución"
	AssetReemplazoSolicitado  = "reemplazo solicitado"
	AssetReemplazoEnLogistica = "reemplazo_en_logistica"
	AssetBaja                 = "baja"
)

// Tipos de activo.
const (
	TipoComputador  = "computador"
	TipoHerramienta = "herramienta"
)

// Asset representa un activo fijo. Un activo "en stock" es una fila fusionable
// por nombre con contador Stock >= 0 y sin empleado; un activo en custodia de
// un empleado (recibido pendiente, activo, en disputa, en devolución) lleva
// EmployeeID/EmployeeName y su Stock no tiene significado.
type Asset struct {
	ID           string
	Reference    string
	Name         string
	Serial       string
	Location     string
	Status       string
	Tipo         string
	Stock        int
	EmployeeID   string
	EmployeeName string
	AssignedDate *time.Time
	// RejectionReason motivo del empleado al rechazar la recepción.
	RejectionReason string
	// BajaReason y EvidenceURL se llenan al dar de baja el activo durante
	// una devolución (justificación obligatoria + foto de evidencia).
	BajaReason  string
	EvidenceURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Assigned indica si el activo está en custodia de un empleado.
func (a *Asset) Assigned() bool {
	switch a.Status {
	case AssetRecibidoPendiente, AssetActivo, AssetEnDisputa, AssetEnDevolucion, AssetReemplazoEnLogistica:
		return true
	}
	return false
}
