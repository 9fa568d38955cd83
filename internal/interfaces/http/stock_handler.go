package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// StockHandler lecturas del ledger (protegido).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ByWarehouse godoc
// @Summary      Stock de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la bodega"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/warehouse/{id} [get]
func (h *StockHandler) ByWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.ByWarehouse(c.Context(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByProduct godoc
// @Summary      Stock de un producto en todas las bodegas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/product/{id} [get]
func (h *StockHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
