package http

import (
	"fmt"
	"mime"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customs-receipts/internal/application/usecase"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// DocumentHandler vista previa y descarga de un documento puntual.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

func documentParams(c *fiber.Ctx) (entity.DocumentKind, string, error) {
	kind, ok := entity.ParseKind(c.Params("kind"))
	if !ok {
		return "", "", fmt.Errorf("%w: categoría %q desconocida", domain.ErrValidation, c.Params("kind"))
	}
	id := c.Params("id")
	if id == "" {
		return "", "", fmt.Errorf("%w: id es requerido", domain.ErrValidation)
	}
	return kind, id, nil
}

// Get godoc
// @Summary      Documento con URL data: para vista previa
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path  string  true  "categoría"
// @Param        id    path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentView
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	kind, id, err := documentParams(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Find(c.UserContext(), GetToken(c), GetRole(c), kind, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar el archivo decodificado
// @Tags         documents
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        kind  path  string  true  "categoría"
// @Param        id    path  string  true  "ID del documento"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	kind, id, err := documentParams(c)
	if err != nil {
		return writeError(c, err)
	}
	file, err := h.uc.Download(c.UserContext(), GetToken(c), GetRole(c), kind, id)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, file.Name, file.MIME, file.Data)
}

func sendFile(c *fiber.Ctx, name, contentType string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	return c.Status(fiber.StatusOK).Send(data)
}
