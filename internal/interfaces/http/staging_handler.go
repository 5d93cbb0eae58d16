package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/staging"
)

// StagingHandler maneja el flujo de recepción: registro en staging,
// control de calidad y guardado en bodega (protegido).
type StagingHandler struct {
	uc *staging.UseCase
}

// NewStagingHandler construye el handler.
func NewStagingHandler(uc *staging.UseCase) *StagingHandler {
	return &StagingHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar recepción en staging
// @Description  La entrada nace con estado de calidad HOLD.
// @Tags         staging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStagingRequest  true  "Datos de la recepción"
// @Success      201   {object}  dto.StagingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/staging [post]
func (h *StagingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStagingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada de staging por ID
// @Tags         staging
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.StagingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/staging/{id} [get]
func (h *StagingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada de staging no encontrada"})
	}
	return c.JSON(out)
}

// Filter godoc
// @Summary      Filtrar entradas de staging
// @Description  Filtros combinables: estado QC, factura, producto, bodega y fecha
//
//	(exacta o rango). La fecha exacta tiene prioridad sobre el rango.
//
// @Tags         staging
// @Security     Bearer
// @Produce      json
// @Param        qc_status   query  string  false  "HOLD | APPROVED | REJECTED"
// @Param        invoice_no  query  string  false  "Número de factura"
// @Param        product_id  query  string  false  "ID del producto"
// @Param        warehouse_id query string  false  "ID de la bodega"
// @Param        exact_date  query  string  false  "Fecha exacta YYYY-MM-DD"
// @Param        start_date  query  string  false  "Inicio del rango YYYY-MM-DD"
// @Param        end_date    query  string  false  "Fin del rango YYYY-MM-DD"
// @Success      200  {array}   dto.StagingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/staging [get]
func (h *StagingHandler) Filter(c *fiber.Ctx) error {
	var in dto.StagingFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Filter(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordQC godoc
// @Summary      Registrar resultado de control de calidad
// @Description  Solo válido sobre entradas en HOLD; la decisión es única e inmutable.
// @Tags         staging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrada"
// @Param        body  body  dto.RecordQCRequest  true  "Resultado de QC"
// @Success      200   {object}  dto.StagingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staging/{id}/qc [patch]
func (h *StagingHandler) RecordQC(c *fiber.Ctx) error {
	var in dto.RecordQCRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordQC(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PutAway godoc
// @Summary      Guardar mercancía aprobada en bodega
// @Description  Mueve la cantidad aprobada de la entrada a la línea de stock
//
//	(lote, pallet) indicada. Solo una vez por entrada.
//
// @Tags         staging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrada"
// @Param        body  body  dto.PutAwayRequest  true  "Destino del guardado"
// @Success      200   {object}  dto.StagingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staging/{id}/putaway [post]
func (h *StagingHandler) PutAway(c *fiber.Ctx) error {
	var in dto.PutAwayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.PutAway(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrada de staging
// @Description  Solo se permiten borrar entradas todavía en HOLD.
// @Tags         staging
// @Security     Bearer
// @Param        id   path  string  true  "ID de la entrada"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/staging/{id} [delete]
func (h *StagingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
