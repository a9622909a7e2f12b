package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customs-receipts/internal/application/usecase"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// readUpload lee el multipart: campo "file" + "declarationNumber". La categoría viene en la ruta.
func readUpload(c *fiber.Ctx) (usecase.UploadInput, error) {
	kind, ok := entity.ParseKind(c.Params("kind"))
	if !ok {
		return usecase.UploadInput{}, fmt.Errorf("%w: categoría %q desconocida", domain.ErrValidation, c.Params("kind"))
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return usecase.UploadInput{}, fmt.Errorf("%w: falta el archivo (campo file)", domain.ErrInvalidFile)
	}
	f, err := fh.Open()
	if err != nil {
		return usecase.UploadInput{}, fmt.Errorf("%w: %w", domain.ErrInvalidFile, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return usecase.UploadInput{}, fmt.Errorf("%w: %w", domain.ErrInvalidFile, err)
	}
	return usecase.UploadInput{
		Kind:              kind,
		DeclarationNumber: c.FormValue("declarationNumber"),
		FileName:          fh.Filename,
		Data:              data,
	}, nil
}
