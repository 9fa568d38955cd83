package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
)

// TransactionInHandler maneja las entradas de mercancía (protegido).
type TransactionInHandler struct {
	uc *transactions.TransactionInUseCase
}

// NewTransactionInHandler construye el handler.
func NewTransactionInHandler(uc *transactions.TransactionInUseCase) *TransactionInHandler {
	return &TransactionInHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrada de mercancía
// @Tags         transactions-in
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionInRequest  true  "product_id, supplier_id, warehouse_id, invoice, amount"
// @Success      201   {object}  dto.TransactionInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/transactions-in [post]
func (h *TransactionInHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entradas
// @Tags         transactions-in
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Tamaño de página (máx 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Param        search  query  string  false  "Factura, código o producto"
// @Success      200  {object}  dto.TransactionInListResponse
// @Router       /api/transactions-in [get]
func (h *TransactionInHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Find(c.Context(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada por ID
// @Tags         transactions-in
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.TransactionInResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions-in/{id} [get]
func (h *TransactionInHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.FindOne(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar entrada y revertir su stock
// @Tags         transactions-in
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.TransactionInResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions-in/{id} [delete]
func (h *TransactionInHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Remove(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
