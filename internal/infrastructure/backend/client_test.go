package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/application/usecase"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/internal/infrastructure/backend"
	"github.com/jhoicas/customs-receipts/pkg/logger"
)

func newClient(t *testing.T, h http.HandlerFunc) (*backend.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL+"/", 5*time.Second, nil), srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var in dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "clerk@example.com", in.Email)
		writeJSON(w, http.StatusOK, map[string]string{"token": "tok-1", "userId": "u-9", "role": "clerk"})
	})

	out, err := c.Login(context.Background(), dto.LoginRequest{Email: "clerk@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", out.Token)
	assert.Equal(t, "u-9", out.UserID)
	assert.Equal(t, "clerk", out.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	})

	_, err := c.Login(context.Background(), dto.LoginRequest{Email: "x@example.com", Password: "bad"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.UserMessage())
}

func TestSinToken_NoLlamaALaRed(t *testing.T) {
	calls := 0
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := c.SubmitDeclaration(context.Background(), "", entity.Declaration{Number: "C-1"})
	assert.ErrorIs(t, err, domain.ErrMissingToken)
	_, err = c.ListDocuments(context.Background(), "", entity.KindWarehouseFile)
	assert.ErrorIs(t, err, domain.ErrMissingToken)
	_, err = c.ListCompanies(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingToken)
	assert.Equal(t, 0, calls)
}

func TestSubmitDeclaration_EnviaBearerYRequestID(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/clerk/declaration", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "C-2024-0001", body["declarationNumber"])
		assert.Equal(t, "2024-03-15", body["declarationDate"])
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Declaration saved"})
	})

	ctx := logger.WithRequestID(context.Background(), "req-42")
	msg, err := c.SubmitDeclaration(ctx, "tok", entity.Declaration{
		Number:       "C-2024-0001",
		Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		ExchangeRate: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "Declaration saved", msg)
}

func TestDuplicado_409YMensaje(t *testing.T) {
	cases := []struct {
		name   string
		status int
		msg    string
	}{
		{"conflict", http.StatusConflict, "duplicate"},
		{"mensaje already exists", http.StatusBadRequest, "Declaration number already exists"},
		{"mensaje en mayúsculas", http.StatusInternalServerError, "Company ALREADY EXISTS"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, map[string]string{"message": tc.msg})
			})
			_, err := c.RegisterCompany(context.Background(), "tok", entity.Company{Name: "Abay"})
			assert.ErrorIs(t, err, domain.ErrDuplicate)
		})
	}
}

func TestMapeoDeStatus(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadGateway, domain.ErrBackend},
	}
	for _, tc := range cases {
		c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = io.WriteString(w, "boom")
		})
		_, err := c.ListDeclarations(context.Background(), "tok")
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
		assert.Contains(t, err.Error(), "boom")
	}
}

func TestBackendCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := backend.NewClient(url, time.Second, nil)
	_, err := c.ListCompanies(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestUploadDocument_Multipart(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/clerk/commercialinvoice/C-7", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "factura.pdf", hdr.Filename)
		assert.Equal(t, "application/pdf", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4", string(data))
		writeJSON(w, http.StatusOK, map[string]string{"message": "uploaded"})
	})

	msg, err := c.UploadDocument(context.Background(), "tok", entity.KindCommercialInvoice, "C-7", ports.FileUpload{
		FileName: "factura.pdf", MIME: "application/pdf", Data: []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "uploaded", msg)
}

func TestListDocuments_ArregloYEnvoltorio(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/clerk/wareHousefileAll":
			writeJSON(w, http.StatusOK, []map[string]string{{"id": "1", "companyName": "Abay", "data": "JVBERi0xLjQ="}})
		case "/api/v1/accountant/mainreceiptAll":
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]string{{"id": "2", "type": "main_receipt"}, {"id": "3"}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	wh, err := c.ListDocuments(context.Background(), "tok", entity.KindWarehouseFile)
	require.NoError(t, err)
	require.Len(t, wh, 1)
	assert.Equal(t, entity.KindWarehouseFile, wh[0].Kind, "sin type se completa con la categoría")

	mr, err := c.ListDocuments(context.Background(), "tok", entity.KindMainReceipt)
	require.NoError(t, err)
	require.Len(t, mr, 2)
	assert.Equal(t, entity.KindMainReceipt, mr[1].Kind)
}

func TestListDeclarations_FechaCorta(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"declarationNumber":"C-1","declarationDate":"2024-01-02","exchangeRate":"1.5","items":[]}]`)
	})

	list, err := c.ListDeclarations(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2024, list[0].Date.Year())
	assert.True(t, list[0].ExchangeRate.Equal(decimal.RequireFromString("1.5")))
}

func TestDocumentos_TypeComoEtiqueta(t *testing.T) {
	labeled := []map[string]string{{"id": "1", "type": "main receipt", "declarationNumber": "D1", "data": "JVBERi0xLjQK"}}
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/accountant/mainreceiptAll", "/api/v1/owner/documentAll":
			writeJSON(w, http.StatusOK, labeled)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	docs, err := c.ListAllDocuments(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, entity.KindMainReceipt, docs[0].Kind)

	uc := usecase.NewDocumentUseCase(c, nil)
	for _, role := range []string{entity.RoleOwner, entity.RoleAccountant} {
		view, err := uc.Find(context.Background(), "tok", role, entity.KindMainReceipt, "1")
		require.NoError(t, err, role)
		assert.Equal(t, "1", view.ID)

		file, err := uc.Download(context.Background(), "tok", role, entity.KindMainReceipt, "1")
		require.NoError(t, err, role)
		assert.Equal(t, "D1_main_receipt.pdf", file.Name)
	}
}

func TestListDocuments_EnvoltorioDesconocido(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"results": []map[string]string{{"id": "1"}}})
	})

	_, err := c.ListDocuments(context.Background(), "tok", entity.KindWarehouseFile)
	assert.ErrorIs(t, err, domain.ErrBackend)

	_, err = c.ListCompanies(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrBackend)
}
