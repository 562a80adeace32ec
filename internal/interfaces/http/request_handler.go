package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/dto"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/requests"
)

// RequestHandler maneja solicitudes de asignación y de reemplazo (protegido).
type RequestHandler struct {
	assignUC *requests.AssignmentUseCase
	replUC   *requests.ReplacementUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(assignUC *requests.AssignmentUseCase, replUC *requests.ReplacementUseCase) *RequestHandler {
	return &RequestHandler{assignUC: assignUC, replUC: replUC}
}

// ── Asignación ────────────────────────────────────────────────────────────────

// CreateAssignmentBatch godoc
// @Summary      Crear lote de solicitudes de asignación (solo master)
// @Description  Una solicitud independiente por fila; cada una decide su estado con su propia lectura de stock.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssignmentBatchRequest  true  "employee_id, rows"
// @Success      201   {array}   dto.AssignmentRequestDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/assignments [post]
func (h *RequestHandler) CreateAssignmentBatch(c *fiber.Ctx) error {
	var in dto.CreateAssignmentBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rows := make([]requests.AssignmentRow, 0, len(in.Rows))
	for _, r := range in.Rows {
		rows = append(rows, requests.AssignmentRow{AssetID: r.AssetID, Quantity: r.Quantity})
	}
	created, err := h.assignUC.CreateBatch(c.Context(), GetActor(c), in.EmployeeID, rows)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAssignmentRequestDTOs(created))
}

// ProcessAssignment godoc
// @Summary      Despachar una solicitud pendiente de envío (logística)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.ProcessAssignmentRequest  true  "tracking_number, carrier"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/assignments/{id}/process [post]
func (h *RequestHandler) ProcessAssignment(c *fiber.Ctx) error {
	var in dto.ProcessAssignmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.assignUC.Process(c.Context(), GetActor(c), c.Params("id"), requests.ProcessInput{
		TrackingNumber: in.TrackingNumber,
		Carrier:        in.Carrier,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud enviada"})
}

// RejectAssignment godoc
// @Summary      Rechazar una solicitud pendiente
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.RejectRequest  true  "reason (obligatorio)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/assignments/{id}/reject [post]
func (h *RequestHandler) RejectAssignment(c *fiber.Ctx) error {
	var in dto.RejectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.assignUC.Reject(c.Context(), GetActor(c), c.Params("id"), in.Reason); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud rechazada"})
}

// ArchiveAssignment godoc
// @Summary      Archivar una solicitud enviada o rechazada
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/assignments/{id}/archive [post]
func (h *RequestHandler) ArchiveAssignment(c *fiber.Ctx) error {
	if err := h.assignUC.Archive(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud archivada"})
}

// RecheckPendingStock godoc
// @Summary      Re-evaluar solicitudes pendientes por stock
// @Description  Pasa a "pendiente de envío" las que ya alcanzan stock; devuelve las que cambiaron.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.AssignmentRequestDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/requests/assignments/recheck-stock [post]
func (h *RequestHandler) RecheckPendingStock(c *fiber.Ctx) error {
	moved, err := h.assignUC.RecheckPendingStock(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAssignmentRequestDTOs(moved))
}

// ListAssignments godoc
// @Summary      Listar solicitudes de asignación por estado
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  true  "estado a filtrar"
// @Success      200  {array}   dto.AssignmentRequestDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/requests/assignments [get]
func (h *RequestHandler) ListAssignments(c *fiber.Ctx) error {
	list, err := h.assignUC.ListByStatus(c.Context(), GetActor(c), c.Query("status"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAssignmentRequestDTOs(list))
}

// ListMyAssignments godoc
// @Summary      Listar las solicitudes de asignación del actor
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AssignmentRequestDTO
// @Router       /api/requests/assignments/mine [get]
func (h *RequestHandler) ListMyAssignments(c *fiber.Ctx) error {
	list, err := h.assignUC.ListMine(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAssignmentRequestDTOs(list))
}

// ── Reemplazo ─────────────────────────────────────────────────────────────────

// CreateReplacement godoc
// @Summary      Solicitar reemplazo de un activo en custodia (empleado)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReplacementRequest  true  "asset_id, reason, justification, image_url"
// @Success      201   {object}  dto.ReplacementRequestDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/replacements [post]
func (h *RequestHandler) CreateReplacement(c *fiber.Ctx) error {
	var in dto.CreateReplacementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.replUC.Create(c.Context(), GetActor(c), requests.CreateInput{
		AssetID:       in.AssetID,
		Reason:        in.Reason,
		Justification: in.Justification,
		ImageURL:      in.ImageURL,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToReplacementRequestDTO(created))
}

// DecideReplacement godoc
// @Summary      Aprobar o rechazar una solicitud de reemplazo (solo master)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.DecideReplacementRequest  true  "decision: aprobado | rechazado"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/replacements/{id}/decide [post]
func (h *RequestHandler) DecideReplacement(c *fiber.Ctx) error {
	var in dto.DecideReplacementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.replUC.Decide(c.Context(), GetActor(c), c.Params("id"), in.Decision); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud decidida"})
}

// ListPendingReplacements godoc
// @Summary      Listar solicitudes de reemplazo pendientes (solo master)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplacementRequestDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/requests/replacements/pending [get]
func (h *RequestHandler) ListPendingReplacements(c *fiber.Ctx) error {
	list, err := h.replUC.ListPending(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToReplacementRequestDTOs(list))
}

// ListMyReplacements godoc
// @Summary      Listar las solicitudes de reemplazo del actor
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplacementRequestDTO
// @Router       /api/requests/replacements/mine [get]
func (h *RequestHandler) ListMyReplacements(c *fiber.Ctx) error {
	list, err := h.replUC.ListMine(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToReplacementRequestDTOs(list))
}
