package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/usecase"
)

// OwnerHandler empresas y visor general del owner.
type OwnerHandler struct {
	uc *usecase.OwnerUseCase
}

// NewOwnerHandler construye el handler.
func NewOwnerHandler(uc *usecase.OwnerUseCase) *OwnerHandler {
	return &OwnerHandler{uc: uc}
}

// RegisterCompany godoc
// @Summary      Registrar empresa
// @Tags         owner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.FormResult
// @Failure      400   {object}  dto.FormResult
// @Failure      409   {object}  dto.FormResult
// @Router       /api/owner/companies [post]
func (h *OwnerHandler) RegisterCompany(c *fiber.Ctx) error {
	in := dto.NewCompanyRequest()
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.RegisterCompany(c.UserContext(), GetToken(c), in)
	return writeForm(c, res, err)
}

// Companies godoc
// @Summary      Listar empresas
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "nombre o TIN"
// @Param        status  query  string  false  "active | suspended | inactive"
// @Success      200  {object}  dto.CompanyListResponse
// @Router       /api/owner/companies [get]
func (h *OwnerHandler) Companies(c *fiber.Ctx) error {
	out, err := h.uc.Companies(c.UserContext(), GetToken(c), c.Query("search"), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Documents godoc
// @Summary      Todos los documentos
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "texto libre"
// @Param        group   query  string  false  "tree (defecto) | company | declaration | user | none"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/owner/documents [get]
func (h *OwnerHandler) Documents(c *fiber.Ctx) error {
	out, err := h.uc.Documents(c.UserContext(), GetToken(c), c.Query("search"), c.Query("group"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
