package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// maxImageBytes bounds an uploaded product image.
const maxImageBytes = 5 << 20

// ProductHandler serves the super_admin products collection. Writes arrive as
// multipart forms so they can carry an image.
type ProductHandler struct {
	service ports.ProductAdminService
	log     zerolog.Logger
}

func NewProductHandler(service ports.ProductAdminService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: log}
}

type productForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
	Price       string `form:"price" validate:"required,numeric"`
	Stock       string `form:"stock" validate:"required,number"`
}

// List returns the products collection as a JSON array.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "1-based page"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {array}   domain.Product
// @Failure      401    {object}  errorBody
// @Router       /api/super_admin/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	products, err := h.service.List(c.Request().Context(), ports.Page{Page: page, Limit: limit})
	if err != nil {
		return err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

// Create adds a product.
//
// @Summary      Create product
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name           formData  string  true   "Name"
// @Param        description    formData  string  true   "Description"
// @Param        price          formData  number  true   "Price"
// @Param        stock          formData  int     true   "Stock"
// @Param        product_image  formData  file    false  "Image"
// @Success      201  {object}  domain.Product
// @Failure      422  {object}  errorBody
// @Router       /api/super_admin/products/ [post]
func (h *ProductHandler) Create(c echo.Context) error {
	in, err := h.bindProduct(c)
	if err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	who, _ := actor(c)
	h.log.Info().Str("actor", who).Int64("product_id", product.ProductID).Msg("product created via api")
	return c.JSON(http.StatusCreated, product)
}

// Update replaces the fields of a product. Clients that cannot send a
// multipart PUT post the form with _method=PUT instead.
//
// @Summary      Update product
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id             path      int     true   "Product ID"
// @Param        name           formData  string  true   "Name"
// @Param        description    formData  string  true   "Description"
// @Param        price          formData  number  true   "Price"
// @Param        stock          formData  int     true   "Stock"
// @Param        product_image  formData  file    false  "Image"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorBody
// @Failure      422  {object}  errorBody
// @Router       /api/super_admin/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	in, err := h.bindProduct(c)
	if err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product.
//
// @Summary      Delete product
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  int  true  "Product ID"
// @Success      204
// @Failure      404  {object}  errorBody
// @Router       /api/super_admin/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) bindProduct(c echo.Context) (ports.ProductInput, error) {
	form := productForm{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Stock:       c.FormValue("stock"),
	}
	if err := c.Validate(&form); err != nil {
		return ports.ProductInput{}, err
	}

	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil {
		return ports.ProductInput{}, fieldInvalid("price", "The price must be a number.")
	}
	stock, err := strconv.ParseInt(form.Stock, 10, 64)
	if err != nil {
		return ports.ProductInput{}, fieldInvalid("stock", "The stock must be an integer.")
	}

	in := ports.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Stock:       stock,
	}

	file, err := c.FormFile(domain.ProductsResource.AttachmentField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, nil
	case err != nil:
		return ports.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid product image")
	}
	if file.Size > maxImageBytes {
		return ports.ProductInput{}, fieldInvalid("product_image", "The product image may not be greater than 5 MB.")
	}
	in.Image = &ports.ProductImageInput{FileName: file.Filename, Size: file.Size}
	return in, nil
}

func fieldInvalid(field, msg string) error {
	return &domain.ValidationError{Message: msg, Fields: map[string]string{field: msg}}
}
