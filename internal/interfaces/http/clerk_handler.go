package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/usecase"
)

// ClerkHandler formularios y visor del clerk.
type ClerkHandler struct {
	uc *usecase.ClerkUseCase
}

// NewClerkHandler construye el handler inyectando el caso de uso.
func NewClerkHandler(uc *usecase.ClerkUseCase) *ClerkHandler {
	return &ClerkHandler{uc: uc}
}

// SubmitDeclaration godoc
// @Summary      Registrar declaración
// @Tags         clerk
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DeclarationRequest  true  "Declaración con ítems"
// @Success      201   {object}  dto.FormResult
// @Failure      400   {object}  dto.FormResult
// @Failure      409   {object}  dto.FormResult
// @Router       /api/clerk/declarations [post]
func (h *ClerkHandler) SubmitDeclaration(c *fiber.Ctx) error {
	var in dto.DeclarationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.SubmitDeclaration(c.UserContext(), GetToken(c), in)
	return writeForm(c, res, err)
}

// ListDeclarations godoc
// @Summary      Declaraciones registradas
// @Tags         clerk
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "número, empresa o TIN"
// @Success      200  {array}  dto.DeclarationSummary
// @Router       /api/clerk/declarations [get]
func (h *ClerkHandler) ListDeclarations(c *fiber.Ctx) error {
	out, err := h.uc.ListDeclarations(c.UserContext(), GetToken(c), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Subir factura comercial, permiso bancario o archivo de almacén
// @Tags         clerk
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        kind               path      string  true  "commercial-invoice | bank-permit | warehouse-file"
// @Param        declarationNumber  formData  string  true  "Número de declaración"
// @Param        file               formData  file    true  "PDF, JPEG o PNG"
// @Success      201  {object}  dto.UploadResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/clerk/documents/{kind} [post]
func (h *ClerkHandler) Upload(c *fiber.Ctx) error {
	in, err := readUpload(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UploadDocument(c.UserContext(), GetToken(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// WarehouseFiles godoc
// @Summary      Visor de archivos de almacén
// @Tags         clerk
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "texto libre"
// @Param        group   query  string  false  "company (defecto) | declaration | user | none"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/clerk/warehouse-files [get]
func (h *ClerkHandler) WarehouseFiles(c *fiber.Ctx) error {
	out, err := h.uc.WarehouseFiles(c.UserContext(), GetToken(c), c.Query("search"), c.Query("group"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
