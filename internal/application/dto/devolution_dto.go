package dto

import (
	"time"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
)

// DecommissionRequest baja de un activo dentro de un proceso de devolución.
// La foto viaja en base64; si evidence_url viene dado (reintento de una
// escritura fallida tras subida exitosa) no se vuelve a subir.
type DecommissionRequest struct {
	Justification string `json:"justification"`
	ImageBase64   string `json:"image_base64"`
	ImageName     string `json:"image_name"`
	EvidenceURL   string `json:"evidence_url"`
}

// DecommissionResponse URL de la evidencia subida; el llamador la reenvía en
// un reintento para no duplicar el objeto.
type DecommissionResponse struct {
	EvidenceURL string `json:"evidence_url"`
}

// DevolutionAssetDTO entrada del snapshot del proceso.
type DevolutionAssetDTO struct {
	AssetID  string `json:"asset_id"`
	Name     string `json:"name"`
	Serial   string `json:"serial,omitempty"`
	Verified bool   `json:"verified"`
}

// DevolutionProcessDTO representación pública de un proceso de devolución.
type DevolutionProcessDTO struct {
	ID           string               `json:"id"`
	EmployeeID   string               `json:"employee_id"`
	EmployeeName string               `json:"employee_name"`
	Status       string               `json:"status"`
	Date         time.Time            `json:"date"`
	Assets       []DevolutionAssetDTO `json:"assets"`
}

// ToDevolutionProcessDTO convierte la entidad a su representación pública.
func ToDevolutionProcessDTO(p *entity.DevolutionProcess) DevolutionProcessDTO {
	out := DevolutionProcessDTO{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Status:       p.Status,
		Date:         p.Date,
		Assets:       make([]DevolutionAssetDTO, 0, len(p.Assets)),
	}
	for _, a := range p.Assets {
		out.Assets = append(out.Assets, DevolutionAssetDTO{
			AssetID:  a.AssetID,
			Name:     a.Name,
			Serial:   a.Serial,
			Verified: a.Verified,
		})
	}
	return out
}

// ToDevolutionProcessDTOs convierte una lista de entidades.
func ToDevolutionProcessDTOs(procs []*entity.DevolutionProcess) []DevolutionProcessDTO {
	out := make([]DevolutionProcessDTO, 0, len(procs))
	for _, p := range procs {
		out = append(out, ToDevolutionProcessDTO(p))
	}
	return out
}
