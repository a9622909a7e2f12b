package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/usecase"
)

// RenderHandler exportación de declaraciones a PDF o XML.
type RenderHandler struct {
	uc *usecase.RenderUseCase
}

// NewRenderHandler construye el handler.
func NewRenderHandler(uc *usecase.RenderUseCase) *RenderHandler {
	return &RenderHandler{uc: uc}
}

// Render godoc
// @Summary      Hoja resumen (PDF) o exportación XML de una declaración
// @Tags         declarations
// @Accept       json
// @Produce      application/pdf
// @Produce      application/xml
// @Security     BearerAuth
// @Param        format  query  string                  false  "pdf (defecto) | xml"
// @Param        body    body   dto.DeclarationRequest  true   "Declaración"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/declarations/render [post]
func (h *RenderHandler) Render(c *fiber.Ctx) error {
	var in dto.DeclarationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Render(c.UserContext(), in, c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set("X-Declaration-Fingerprint", out.Fingerprint)
	return sendFile(c, out.Name, out.MIME, out.Data)
}

// Import godoc
// @Summary      Leer una declaración desde XML y devolverla como formulario
// @Tags         declarations
// @Accept       application/xml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DeclarationRequest
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/declarations/import [post]
func (h *RenderHandler) Import(c *fiber.Ctx) error {
	out, err := h.uc.ImportXML(c.Body())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
