package http

import (
	"encoding/base64"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/certificate"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/devolution"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/dto"
)

// DevolutionHandler maneja procesos de devolución y el certificado Paz y
// Salvo (protegido).
type DevolutionHandler struct {
	uc     *devolution.UseCase
	certUC *certificate.UseCase
}

// NewDevolutionHandler construye el handler.
func NewDevolutionHandler(uc *devolution.UseCase, certUC *certificate.UseCase) *DevolutionHandler {
	return &DevolutionHandler{uc: uc, certUC: certUC}
}

// Initiate godoc
// @Summary      Iniciar proceso de devolución del actor
// @Description  Toma snapshot de todos sus activos "activo" y los pasa a "en devolución".
// @Tags         devolution
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.DevolutionProcessDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/devolutions [post]
func (h *DevolutionHandler) Initiate(c *fiber.Ctx) error {
	proc, err := h.uc.Initiate(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDevolutionProcessDTO(proc))
}

// VerifyReturn godoc
// @Summary      Verificar el retorno de un activo (logística)
// @Description  Marca la entrada verificada y fusiona el activo de vuelta al stock.
// @Tags         devolution
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID del proceso"
// @Param        assetId  path  string  true  "ID del activo"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/devolutions/{id}/assets/{assetId}/verify [post]
func (h *DevolutionHandler) VerifyReturn(c *fiber.Ctx) error {
	if err := h.uc.VerifyReturn(c.Context(), GetActor(c), c.Params("id"), c.Params("assetId")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "retorno verificado"})
}

// Decommission godoc
// @Summary      Dar de baja un activo del proceso (logística)
// @Description  Justificación y foto de evidencia obligatorias. Devuelve siempre la URL
//
//	de la evidencia subida; en un reintento reenvíela como evidence_url
//	para no duplicar el objeto.
//
// @Tags         devolution
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID del proceso"
// @Param        assetId  path  string  true  "ID del activo"
// @Param        body     body  dto.DecommissionRequest  true  "justification, image_base64 o evidence_url"
// @Success      200  {object}  dto.DecommissionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/devolutions/{id}/assets/{assetId}/decommission [post]
func (h *DevolutionHandler) Decommission(c *fiber.Ctx) error {
	var in dto.DecommissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var image []byte
	if in.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(in.ImageBase64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IMAGE", Message: "image_base64 no es base64 válido"})
		}
		image = decoded
	}
	evidenceURL, err := h.uc.Decommission(c.Context(), GetActor(c), c.Params("id"), c.Params("assetId"), devolution.DecommissionInput{
		Justification: in.Justification,
		Image:         image,
		ImageName:     in.ImageName,
		EvidenceURL:   in.EvidenceURL,
	})
	if err != nil {
		if evidenceURL != "" {
			// La subida ya ocurrió: entregar la URL junto al error para que el
			// llamador reintente sin re-subir.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":         "WRITE_FAILED",
				"message":      err.Error(),
				"evidence_url": evidenceURL,
			})
		}
		return writeDomainError(c, err)
	}
	return c.JSON(dto.DecommissionResponse{EvidenceURL: evidenceURL})
}

// Complete godoc
// @Summary      Cerrar explícitamente un proceso con todo verificado
// @Tags         devolution
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proceso"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/devolutions/{id}/complete [post]
func (h *DevolutionHandler) Complete(c *fiber.Ctx) error {
	if err := h.uc.Complete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "proceso completado"})
}

// GetByID godoc
// @Summary      Obtener un proceso de devolución
// @Tags         devolution
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proceso"
// @Success      200  {object}  dto.DevolutionProcessDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devolutions/{id} [get]
func (h *DevolutionHandler) GetByID(c *fiber.Ctx) error {
	proc, err := h.uc.Get(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToDevolutionProcessDTO(proc))
}

// List godoc
// @Summary      Listar procesos de devolución (logística/master)
// @Tags         devolution
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (def. 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.DevolutionProcessDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/devolutions [get]
func (h *DevolutionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), GetActor(c), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToDevolutionProcessDTOs(list))
}

// ListMine godoc
// @Summary      Listar los procesos de devolución del actor
// @Tags         devolution
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DevolutionProcessDTO
// @Router       /api/devolutions/mine [get]
func (h *DevolutionHandler) ListMine(c *fiber.Ctx) error {
	list, err := h.uc.ListMine(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToDevolutionProcessDTOs(list))
}

// Certificate godoc
// @Summary      Certificado Paz y Salvo en PDF de un proceso completado
// @Tags         devolution
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del proceso"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/devolutions/{id}/certificate [get]
func (h *DevolutionHandler) Certificate(c *fiber.Ctx) error {
	pdfBytes, err := h.certUC.PazYSalvo(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="paz-y-salvo-%s.pdf"`, c.Params("id")))
	return c.Send(pdfBytes)
}
