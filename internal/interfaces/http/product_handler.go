package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
// El listado y el detalle son públicos; crear y actualizar requieren admin.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos del catálogo
// @Tags         products
// @Produce      json
// @Param        limit      query  int   false  "Límite (0 = todo)"
// @Param        offset     query  int   false  "Offset"
// @Param        available  query  bool  false  "Solo productos con stock"
// @Success      200  {object}  dto.Envelope
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	onlyAvailable := c.QueryBool("available", false)
	out, err := h.uc.ListProducts(limit, offset, onlyAvailable)
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.CreateProduct(in)
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.uc.UpdateProduct(c.Params("id"), in)
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Retirar producto del catálogo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.DeleteProduct(id); err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"id": id, "deleted": true})
}
