package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/usecase"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// AccountantHandler cargos, impuestos, recibos y tablero del accountant.
type AccountantHandler struct {
	uc *usecase.AccountantUseCase
}

// NewAccountantHandler construye el handler.
func NewAccountantHandler(uc *usecase.AccountantUseCase) *AccountantHandler {
	return &AccountantHandler{uc: uc}
}

// SubmitFees godoc
// @Summary      Registrar cargos de una declaración
// @Tags         accountant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.FeeFormRequest  true  "Cargos"
// @Success      201   {object}  dto.FormResult
// @Failure      400   {object}  dto.FormResult
// @Failure      409   {object}  dto.FormResult
// @Router       /api/accountant/fees [post]
func (h *AccountantHandler) SubmitFees(c *fiber.Ctx) error {
	var in dto.FeeFormRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.SubmitFees(c.UserContext(), GetToken(c), in)
	return writeForm(c, res, err)
}

// SubmitTaxes godoc
// @Summary      Registrar liquidación de impuestos
// @Tags         accountant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.TaxFormRequest  true  "Impuestos"
// @Success      201   {object}  dto.FormResult
// @Failure      400   {object}  dto.FormResult
// @Router       /api/accountant/taxes [post]
func (h *AccountantHandler) SubmitTaxes(c *fiber.Ctx) error {
	var in dto.TaxFormRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.SubmitTaxes(c.UserContext(), GetToken(c), in)
	return writeForm(c, res, err)
}

// UploadReceipt godoc
// @Summary      Subir recibo principal o de retención
// @Tags         accountant
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        kind               path      string  true  "main-receipt | withholding-receipt"
// @Param        declarationNumber  formData  string  true  "Número de declaración"
// @Param        file               formData  file    true  "PDF, JPEG o PNG"
// @Success      201  {object}  dto.UploadResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/accountant/receipts/{kind} [post]
func (h *AccountantHandler) UploadReceipt(c *fiber.Ctx) error {
	in, err := readUpload(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UploadReceipt(c.UserContext(), GetToken(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Dashboard godoc
// @Summary      Tablero: recibos principales, de retención, facturas comerciales y permisos bancarios
// @Tags         accountant
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "texto libre"
// @Success      200  {object}  dto.AccountantDashboard
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/accountant/dashboard [get]
func (h *AccountantHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetToken(c), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipts godoc
// @Summary      Visor de una categoría
// @Tags         accountant
// @Produce      json
// @Security     BearerAuth
// @Param        kind    path   string  true   "main-receipt | withholding-receipt | commercial-invoice | bank-permit"
// @Param        search  query  string  false  "texto libre"
// @Param        group   query  string  false  "company (defecto) | declaration | user | none"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/accountant/receipts/{kind} [get]
func (h *AccountantHandler) Receipts(c *fiber.Ctx) error {
	kind, ok := entity.ParseKind(c.Params("kind"))
	if !ok {
		return writeError(c, fmt.Errorf("%w: categoría %q desconocida", domain.ErrValidation, c.Params("kind")))
	}
	out, err := h.uc.Receipts(c.UserContext(), GetToken(c), kind, c.Query("search"), c.Query("group"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
