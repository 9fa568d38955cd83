package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/transactions"
)

// TransactionOutHandler maneja las salidas de mercancía (protegido).
type TransactionOutHandler struct {
	uc *transactions.TransactionOutUseCase
}

// NewTransactionOutHandler construye el handler.
func NewTransactionOutHandler(uc *transactions.TransactionOutUseCase) *TransactionOutHandler {
	return &TransactionOutHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar salida de mercancía
// @Description  409 INSUFFICIENT_STOCK es terminal; 503 CONFLICT_RETRY
//
//	significa que la petición puede reenviarse tal cual.
//
// @Tags         transactions-out
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionOutRequest  true  "product_id, warehouse_id, invoice, amount, purpose"
// @Success      201   {object}  dto.TransactionOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/transactions-out [post]
func (h *TransactionOutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionOutRequest
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
// @Summary      Listar salidas
// @Tags         transactions-out
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Tamaño de página (máx 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Param        search  query  string  false  "Factura, código o producto"
// @Success      200  {object}  dto.TransactionOutListResponse
// @Router       /api/transactions-out [get]
func (h *TransactionOutHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Find(c.Context(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener salida por ID
// @Tags         transactions-out
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.TransactionOutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions-out/{id} [get]
func (h *TransactionOutHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.FindOne(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar salida y devolver su stock
// @Tags         transactions-out
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.TransactionOutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions-out/{id} [delete]
func (h *TransactionOutHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Remove(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
