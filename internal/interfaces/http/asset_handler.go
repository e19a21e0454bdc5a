package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pentasoft/pims-api/internal/application/assets"
	"github.com/pentasoft/pims-api/internal/application/dto"
	"github.com/pentasoft/pims-api/internal/domain/repository"
)

// AssetHandler maneja tipos de activo, activos y ciclo de vida (protegido).
type AssetHandler struct {
	registry  *assets.RegistryUseCase
	lifecycle *assets.LifecycleUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(registry *assets.RegistryUseCase, lifecycle *assets.LifecycleUseCase) *AssetHandler {
	return &AssetHandler{registry: registry, lifecycle: lifecycle}
}

// ── Tipos de activo ───────────────────────────────────────────────────────────

// CreateAssetType godoc
// @Summary      Crear tipo de activo
// @Tags         asset-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetTypeRequest  true  "Nombre del tipo"
// @Success      201   {object}  dto.AssetTypeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/asset-types [post]
func (h *AssetHandler) CreateAssetType(c *fiber.Ctx) error {
	var in dto.CreateAssetTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.registry.CreateAssetType(c.Context(), in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAssetTypes godoc
// @Summary      Listar tipos de activo con sus campos
// @Tags         asset-types
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AssetTypeResponse
// @Router       /api/asset-types [get]
func (h *AssetHandler) ListAssetTypes(c *fiber.Ctx) error {
	out, err := h.registry.ListAssetTypes(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AddField godoc
// @Summary      Añadir campo dinámico a un tipo
// @Tags         asset-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tipo de activo"
// @Param        body  body  dto.CreateAssetTypeFieldRequest  true  "Definición del campo"
// @Success      201   {object}  dto.AssetTypeFieldResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/asset-types/{id}/fields [post]
func (h *AssetHandler) AddField(c *fiber.Ctx) error {
	var in dto.CreateAssetTypeFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.registry.AddField(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ── Activos ───────────────────────────────────────────────────────────────────

// CreateAsset godoc
// @Summary      Crear activo con valores dinámicos
// @Description  Valida el payload dinámico contra el esquema del tipo (requeridos, tipos, unicidad por tipo).
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "Datos del activo"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) CreateAsset(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.registry.CreateAsset(c.Context(), in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAssets godoc
// @Summary      Listar activos
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        assetTypeId  query  string  false  "Filtrar por tipo"
// @Param        status       query  string  false  "Filtrar por estado"
// @Param        q            query  string  false  "Buscar en assetNumber o serialNumber"
// @Success      200  {array}  dto.AssetResponse
// @Router       /api/assets [get]
func (h *AssetHandler) ListAssets(c *fiber.Ctx) error {
	out, err := h.registry.ListAssets(c.Context(), assetFilterFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Tablero resumen de activos
// @Description  Total y conteo por estado, con los mismos filtros en cada conteo.
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        assetTypeId  query  string  false  "Filtrar por tipo"
// @Param        status       query  string  false  "Filtrar por estado"
// @Param        q            query  string  false  "Buscar en assetNumber o serialNumber"
// @Success      200  {object}  dto.AssetSummaryResponse
// @Router       /api/assets/summary [get]
func (h *AssetHandler) Summary(c *fiber.Ctx) error {
	out, err := h.registry.Summary(c.Context(), assetFilterFromQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UserAssets godoc
// @Summary      Activos actualmente asignados a un usuario
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {array}  dto.AssetDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/user/{id} [get]
func (h *AssetHandler) UserAssets(c *fiber.Ctx) error {
	out, err := h.registry.UserAssets(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetAsset godoc
// @Summary      Obtener activo con valores dinámicos e historial
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetAsset(c *fiber.Ctx) error {
	out, err := h.registry.GetAsset(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ── Ciclo de vida ─────────────────────────────────────────────────────────────

// Assign godoc
// @Summary      Asignar activo a un usuario
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.AssignAssetRequest  true  "Destinatario y fecha"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/assign [post]
func (h *AssetHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.lifecycle.Assign(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Return godoc
// @Summary      Devolver activo (cierra la asignación activa)
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.ReturnAssetRequest  true  "Fecha de devolución"
// @Success      200   {object}  dto.AssignmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/return [post]
func (h *AssetHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.lifecycle.Return(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir activo a otro usuario
// @Description  Cierra la asignación activa y abre una nueva en la misma transacción; el activo sigue ASSIGNED.
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.TransferAssetRequest  true  "Nuevo destinatario y fecha"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/transfer [post]
func (h *AssetHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.lifecycle.Transfer(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func assetFilterFromQuery(c *fiber.Ctx) repository.AssetFilter {
	return repository.AssetFilter{
		AssetTypeID: c.Query("assetTypeId"),
		Status:      c.Query("status"),
		Query:       c.Query("q"),
	}
}
