package entity

import "time"

// Estados de un proceso de devolución. "completado" es terminal y solo se
// alcanza cuando todos los activos del proceso quedaron verificados.
const (
	DevolucionIniciado   = "iniciado"
	DevolucionVerificado = "verificado por logística"
	DevolucionCompletado = "completado"
)

// DevolutionProcess agrega la devolución de todos los activos que un empleado
// tenía en estado "activo" al momento de iniciarla. Cada entrada lleva un flag
// Verified que logística voltea al recibir el activo (retorno a stock o baja).
type DevolutionProcess struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Status       string
	Date         time.Time
	Assets       []DevolutionAsset
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DevolutionAsset entrada de un proceso de devolución (snapshot del activo al
// iniciar el proceso).
type DevolutionAsset struct {
	AssetID  string
	Name     string
	Serial   string
	Verified bool
}

// AllVerified indica si todas las entradas del proceso están verificadas.
func (p *DevolutionProcess) AllVerified() bool {
	for _, a := range p.Assets {
		if !a.Verified {
			return false
		}
	}
	return len(p.Assets) > 0
}

// Entry devuelve la entrada del activo dado, o nil si no pertenece al proceso.
func (p *DevolutionProcess) Entry(assetID string) *DevolutionAsset {
	for i := range p.Assets {
		if p.Assets[i].AssetID == assetID {
			return &p.Assets[i]
		}
	}
	return nil
}
