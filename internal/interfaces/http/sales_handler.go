package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/sales"
)

// SalesHandler maneja ventas con asignación automática de stock,
// consultas de existencias y el recibo PDF (protegido).
type SalesHandler struct {
	allocate *sales.AllocateUseCase
	sale     *sales.SaleUseCase
	stock    *sales.StockQueryUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(allocate *sales.AllocateUseCase, sale *sales.SaleUseCase, stock *sales.StockQueryUseCase) *SalesHandler {
	return &SalesHandler{allocate: allocate, sale: sale, stock: stock}
}

// AllocateBulk godoc
// @Summary      Registrar ventas con asignación de stock
// @Description  Asigna stock a cada ítem según la política FIFO o FEFO en una
//
//	sola transacción: o se concretan todas las ventas o ninguna.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkSaleRequest  true  "Ítems a vender"
// @Success      201   {array}   dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/bulk [post]
func (h *SalesHandler) AllocateBulk(c *fiber.Ctx) error {
	var in dto.BulkSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.allocate.AllocateBulk(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/sales/:id
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.sale.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(out)
}

// List GET /api/sales?limit=20&offset=0
func (h *SalesHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.sale.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/sales/:id
//
// Solo admite corregir el cliente y el precio; las cantidades y el lote
// asignado son parte del registro histórico y no se tocan.
func (h *SalesHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.sale.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(out)
}

// Delete DELETE /api/sales/:id
//
// Las ventas son un registro histórico: nunca se eliminan.
func (h *SalesHandler) Delete(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "DELETION_BLOCKED",
		Message: "las ventas no se pueden eliminar",
	})
}

// TotalStock godoc
// @Summary      Existencias totales de un producto
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockTotalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/stock/total/{product_id} [get]
func (h *SalesHandler) TotalStock(c *fiber.Ctx) error {
	out, err := h.stock.TotalStock(c.Params("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockDetails godoc
// @Summary      Existencias de un producto desglosadas por lote y pallet
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/stock/details/{product_id} [get]
func (h *SalesHandler) StockDetails(c *fiber.Ctx) error {
	out, err := h.stock.StockDetails(c.Params("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt.pdf [get]
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.sale.GenerateReceiptPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recibo.pdf"`)
	return c.Send(pdfBytes)
}
