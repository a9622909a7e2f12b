package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/usecase"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// readForm parte de los valores iniciales del formulario y sobreescribe con el archivo.
// Acepta JSON o YAML; el YAML se pasa a JSON para respetar los tags de los DTO.
// En YAML los TIN con ceros a la izquierda van entre comillas.
func readForm[T any](path string, initial func() T) (T, error) {
	v := initial()
	raw, err := os.ReadFile(path)
	if err != nil {
		return v, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return v, fmt.Errorf("%w: %s: %w", domain.ErrValidation, path, err)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return v, err
		}
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %w", domain.ErrValidation, path, err)
	}
	return v, nil
}

// readDeclaration acepta JSON, YAML o XML (misma forma que 'render --format xml').
func (c *cli) readDeclaration(path string) (dto.DeclarationRequest, error) {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		raw, err := os.ReadFile(path)
		if err != nil {
			return dto.DeclarationRequest{}, err
		}
		return c.render.ImportXML(raw)
	}
	return readForm(path, dto.NewDeclarationRequest)
}

// printForm muestra el estado del formulario y devuelve el error para el código de salida.
func (c *cli) printForm(res dto.FormResult, err error) error {
	if perr := c.printJSON(res); perr != nil {
		return perr
	}
	if res.Duplicate {
		fmt.Fprintln(c.out, "Aviso: el registro ya existe; el formulario se conserva.")
	}
	return err
}

func (c *cli) submitCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Envía un formulario (declaration, fees, taxes, company) desde un archivo",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "Archivo JSON o YAML (también XML para declaration)")
	_ = cmd.MarkPersistentFlagRequired("file")

	form := func(use, short string, run func(ctx context.Context, token string) (dto.FormResult, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				sess, err := c.session()
				if err != nil {
					return err
				}
				return c.printForm(run(cmd.Context(), sess.Token))
			},
		}
	}

	cmd.AddCommand(
		form("declaration", "Declaración con ítems (clerk)", func(ctx context.Context, token string) (dto.FormResult, error) {
			in, err := c.readDeclaration(file)
			if err != nil {
				return dto.FormResult{Status: dto.FormStatusInvalid, Message: err.Error()}, err
			}
			return c.clerk.SubmitDeclaration(ctx, token, in)
		}),
		form("fees", "Cargos pagados de una declaración (accountant)", func(ctx context.Context, token string) (dto.FormResult, error) {
			in, err := readForm(file, dto.NewFeeFormRequest)
			if err != nil {
				return dto.FormResult{Status: dto.FormStatusInvalid, Message: err.Error()}, err
			}
			return c.accountant.SubmitFees(ctx, token, in)
		}),
		form("taxes", "Liquidación de impuestos (accountant)", func(ctx context.Context, token string) (dto.FormResult, error) {
			in, err := readForm(file, dto.NewTaxFormRequest)
			if err != nil {
				return dto.FormResult{Status: dto.FormStatusInvalid, Message: err.Error()}, err
			}
			return c.accountant.SubmitTaxes(ctx, token, in)
		}),
		form("company", "Alta de empresa (owner)", func(ctx context.Context, token string) (dto.FormResult, error) {
			in, err := readForm(file, dto.NewCompanyRequest)
			if err != nil {
				return dto.FormResult{Status: dto.FormStatusInvalid, Message: err.Error()}, err
			}
			return c.owner.RegisterCompany(ctx, token, in)
		}),
	)
	return cmd
}

func (c *cli) uploadCmd() *cobra.Command {
	var kindFlag, declaration, path string
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Sube un recibo, factura comercial, permiso bancario o archivo de almacén",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, ok := entity.ParseKind(kindFlag)
			if !ok {
				return fmt.Errorf("%w: categoría %q desconocida", domain.ErrValidation, kindFlag)
			}
			sess, err := c.session()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			in := usecase.UploadInput{
				Kind:              kind,
				DeclarationNumber: declaration,
				FileName:          filepath.Base(path),
				Data:              data,
			}
			var out *dto.UploadResult
			switch kind {
			case entity.KindMainReceipt, entity.KindWithholdingReceipt:
				out, err = c.accountant.UploadReceipt(cmd.Context(), sess.Token, in)
			default:
				out, err = c.clerk.UploadDocument(cmd.Context(), sess.Token, in)
			}
			if err != nil {
				return err
			}
			return c.printJSON(out)
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "", "main-receipt | withholding-receipt | commercial-invoice | bank-permit | warehouse-file")
	cmd.Flags().StringVar(&declaration, "declaration", "", "Número de declaración")
	cmd.Flags().StringVar(&path, "path", "", "Archivo PDF, JPEG o PNG")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
