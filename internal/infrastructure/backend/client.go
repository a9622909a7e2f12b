// Package backend implementa ports.BackendGateway sobre la API REST remota
// (declaraciones, cargos, impuestos, empresas y documentos en base64).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/pkg/logger"
)

const (
	// maxResponseBytes los listados traen archivos en base64; se permite hasta 64 MB.
	maxResponseBytes = 64 << 20
	maxErrorBody     = 512
	headerRequestID  = "X-Request-ID"
)

// Client adaptador HTTP hacia el backend. Usa net/http; no hay SDK del backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. timeout <= 0 usa 30 s.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("backend"),
	}
}

// messageBody forma mínima de las respuestas del backend.
type messageBody struct {
	Message string `json:"message"`
}

// doJSON envía in como JSON (nil = sin cuerpo) y decodifica la respuesta en out (nil = ignorar).
// Devuelve el "message" de la respuesta exitosa.
func (c *Client) doJSON(ctx context.Context, method, path, token string, auth bool, in, out any) (string, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return "", fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	contentType := ""
	if in != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, token, auth, body, contentType, out)
}

// doMultipart envía un archivo en el campo "file" más campos de texto opcionales.
func (c *Client) doMultipart(ctx context.Context, path, token, fileName, mime string, data []byte, fields map[string]string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", fmt.Errorf("backend: campo multipart %s: %w", k, err)
		}
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(fileName)))
	h.Set("Content-Type", mime)
	part, err := w.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("backend: crear parte multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("backend: escribir archivo: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("backend: cerrar multipart: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, token, true, &buf, w.FormDataContentType(), nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, auth bool, body io.Reader, contentType string, out any) (string, error) {
	if auth && token == "" {
		return "", domain.ErrMissingToken
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := logger.RequestIDFrom(ctx); id != "" {
		req.Header.Set(headerRequestID, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: timeout o cancelación: %w", domain.ErrBackendUnavailable, ctx.Err())
		}
		return "", fmt.Errorf("%w: %s %s: %w", domain.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: leer respuesta: %w", domain.ErrBackendUnavailable, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("llamada al backend")

	var msg messageBody
	_ = json.Unmarshal(raw, &msg) // el cuerpo puede ser un arreglo o texto plano

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: msg.Message,
			kind:    classify(resp.StatusCode, msg.Message),
		}
		if apiErr.Message == "" {
			apiErr.Body = truncate(strings.TrimSpace(string(raw)), maxErrorBody)
		}
		return "", apiErr
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return "", fmt.Errorf("%w: deserializar respuesta de %s: %w", domain.ErrBackend, path, err)
		}
	}
	return msg.Message, nil
}

// decodeList acepta un arreglo JSON o un objeto que lo envuelve en "data", "items" o "files".
// Un objeto sin ninguna de esas claves es un error: el formato del backend cambió.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}
	var list []T
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	for _, key := range []string{"data", "items", "files"} {
		if inner, ok := wrapped[key]; ok {
			return decodeList[T](inner)
		}
	}
	return nil, fmt.Errorf("respuesta sin lista (se esperaba data, items o files)")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
