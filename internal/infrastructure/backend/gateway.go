package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

var _ ports.BackendGateway = (*Client)(nil)

// endpoint rutas de subida y listado por categoría de documento.
type endpoint struct {
	upload string // se completa con el número de declaración
	list   string
}

var endpoints = map[entity.DocumentKind]endpoint{
	entity.KindMainReceipt:        {upload: "/api/v1/accountant/mainreceipt/", list: "/api/v1/accountant/mainreceiptAll"},
	entity.KindWithholdingReceipt: {upload: "/api/v1/accountant/withholdingreceipt/", list: "/api/v1/accountant/withholdingreceiptAll"},
	entity.KindCommercialInvoice:  {upload: "/api/v1/clerk/commercialinvoice/", list: "/api/v1/accountant/commercialinvoiceAll"},
	entity.KindBankPermit:         {upload: "/api/v1/clerk/bankpermit/", list: "/api/v1/accountant/bankpermitAll"},
	entity.KindWarehouseFile:      {upload: "/api/v1/clerk/wareHousefile/", list: "/api/v1/clerk/wareHousefileAll"},
}

func endpointFor(kind entity.DocumentKind) (endpoint, error) {
	ep, ok := endpoints[kind]
	if !ok {
		return endpoint{}, fmt.Errorf("%w: categoría de documento desconocida %q", domain.ErrValidation, kind)
	}
	return ep, nil
}

// loginResponse el backend ha devuelto tanto user_id como userId según la versión.
type loginResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	UserID2 string `json:"userId"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Login POST /api/v1/auth/login. No requiere token.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out loginResponse
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", "", false, in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: respuesta de login sin token", domain.ErrBackend)
	}
	userID := out.UserID
	if userID == "" {
		userID = out.UserID2
	}
	return &dto.LoginResponse{Token: out.Token, UserID: userID, Role: out.Role, Message: out.Message}, nil
}

// ── Clerk ────────────────────────────────────────────────────────────────────

func (c *Client) SubmitDeclaration(ctx context.Context, token string, d entity.Declaration) (string, error) {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/clerk/declaration", token, true, d, nil)
}

func (c *Client) ListDeclarations(ctx context.Context, token string) ([]entity.Declaration, error) {
	var raw json.RawMessage
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/v1/clerk/declarationAll", token, true, nil, &raw); err != nil {
		return nil, err
	}
	list, err := decodeList[entity.Declaration](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: listado de declaraciones: %w", domain.ErrBackend, err)
	}
	return list, nil
}

// ── Accountant ───────────────────────────────────────────────────────────────

func (c *Client) SubmitFees(ctx context.Context, token, declarationNumber string, fees []entity.FeeLine) (string, error) {
	body := struct {
		Fees []entity.FeeLine `json:"fees"`
	}{Fees: fees}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/accountant/fee/"+url.PathEscape(declarationNumber), token, true, body, nil)
}

func (c *Client) SubmitTaxes(ctx context.Context, token, declarationNumber string, taxes []entity.TaxLine) (string, error) {
	body := struct {
		Taxes []entity.TaxLine `json:"taxes"`
	}{Taxes: taxes}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/accountant/tax/"+url.PathEscape(declarationNumber), token, true, body, nil)
}

// ── Documentos ───────────────────────────────────────────────────────────────

// UploadDocument envía el archivo como multipart en el campo "file".
func (c *Client) UploadDocument(ctx context.Context, token string, kind entity.DocumentKind, declarationNumber string, file ports.FileUpload) (string, error) {
	ep, err := endpointFor(kind)
	if err != nil {
		return "", err
	}
	return c.doMultipart(ctx, ep.upload+url.PathEscape(declarationNumber), token, file.FileName, file.MIME, file.Data, nil)
}

// ListDocuments listado de una categoría. Los documentos sin "type" quedan con kind.
func (c *Client) ListDocuments(ctx context.Context, token string, kind entity.DocumentKind) ([]entity.Document, error) {
	ep, err := endpointFor(kind)
	if err != nil {
		return nil, err
	}
	docs, err := c.listDocuments(ctx, token, ep.list)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].Kind == "" {
			docs[i].Kind = kind
		}
	}
	return docs, nil
}

// ListAllDocuments GET /api/v1/owner/documentAll (todas las categorías).
func (c *Client) ListAllDocuments(ctx context.Context, token string) ([]entity.Document, error) {
	return c.listDocuments(ctx, token, "/api/v1/owner/documentAll")
}

func (c *Client) listDocuments(ctx context.Context, token, path string) ([]entity.Document, error) {
	var raw json.RawMessage
	if _, err := c.doJSON(ctx, http.MethodGet, path, token, true, nil, &raw); err != nil {
		return nil, err
	}
	docs, err := decodeList[entity.Document](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: listado %s: %w", domain.ErrBackend, path, err)
	}
	return docs, nil
}

// ── Owner ────────────────────────────────────────────────────────────────────

func (c *Client) RegisterCompany(ctx context.Context, token string, co entity.Company) (string, error) {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/owner/company", token, true, co, nil)
}

func (c *Client) ListCompanies(ctx context.Context, token string) ([]entity.Company, error) {
	var raw json.RawMessage
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/v1/owner/companyAll", token, true, nil, &raw); err != nil {
		return nil, err
	}
	list, err := decodeList[entity.Company](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: listado de empresas: %w", domain.ErrBackend, err)
	}
	return list, nil
}
