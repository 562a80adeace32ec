package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/assets"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/dto"
)

// AssetHandler maneja el ciclo de vida de activos (protegido).
type AssetHandler struct {
	uc *assets.UseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *assets.UseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// AddStock godoc
// @Summary      Agregar inventario (fusiona por nombre)
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "name, quantity, serial, location, tipo"
// @Success      201   {object}  dto.AssetDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/assets/stock [post]
func (h *AssetHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	asset, err := h.uc.AddStock(c.Context(), GetActor(c), assets.AddStockInput{
		Name:     in.Name,
		Serial:   in.Serial,
		Location: in.Location,
		Tipo:     in.Tipo,
		Quantity: in.Quantity,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAssetDTO(asset))
}

// ListStock godoc
// @Summary      Listar filas de stock
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.AssetDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/assets/stock [get]
func (h *AssetHandler) ListStock(c *fiber.Ctx) error {
	list, err := h.uc.ListStock(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAssetDTOs(list))
}

// ListMine godoc
// @Summary      Listar los activos en custodia del actor
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AssetDTO
// @Router       /api/assets/mine [get]
func (h *AssetHandler) ListMine(c *fiber.Ctx) error {
	list, err := h.uc.ListMyAssets(c.Context(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAssetDTOs(list))
}

// GetByID godoc
// @Summary      Obtener un activo
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	asset, err := h.uc.GetAsset(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAssetDTO(asset))
}

// Update godoc
// @Summary      Corrección administrativa de un activo (solo master)
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.UpdateAssetRequest  true  "campos a modificar; nil no toca"
// @Success      200   {object}  dto.AssetDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	asset, err := h.uc.UpdateAsset(c.Context(), GetActor(c), c.Params("id"), assets.UpdateAssetInput{
		Reference: in.Reference,
		Name:      in.Name,
		Serial:    in.Serial,
		Location:  in.Location,
		Tipo:      in.Tipo,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToAssetDTO(asset))
}

// Delete godoc
// @Summary      Eliminar un activo (override administrativo, solo master)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del activo"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteAsset(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "activo eliminado"})
}

// ConfirmReceipt godoc
// @Summary      Confirmar recepción de un activo enviado
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del activo"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/confirm [post]
func (h *AssetHandler) ConfirmReceipt(c *fiber.Ctx) error {
	if err := h.uc.ConfirmReceipt(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recepción confirmada"})
}

// RejectReceipt godoc
// @Summary      Rechazar recepción de un activo enviado (pasa a disputa)
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.RejectReceiptRequest  true  "reason (obligatorio)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/reject [post]
func (h *AssetHandler) RejectReceipt(c *fiber.Ctx) error {
	var in dto.RejectReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RejectReceipt(c.Context(), GetActor(c), c.Params("id"), in.Reason); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recepción rechazada"})
}

// ResolveReplacement godoc
// @Summary      Resolver un activo en logística de reemplazo
// @Description  outcome "en stock" lo fusiona de vuelta al inventario; "baja" lo retira.
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.ResolveReplacementRequest  true  "outcome"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/resolve-replacement [post]
func (h *AssetHandler) ResolveReplacement(c *fiber.Ctx) error {
	var in dto.ResolveReplacementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ResolveReplacement(c.Context(), GetActor(c), c.Params("id"), in.Outcome); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reemplazo resuelto"})
}
