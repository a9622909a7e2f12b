// Package datauri normaliza los documentos que el backend devuelve en base64
// (recibos, facturas comerciales, permisos bancarios) a URLs data: y los decodifica
// para descargas.
package datauri

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEPDF     = "application/pdf"
	MIMEJPEG    = "image/jpeg"
	MIMEPNG     = "image/png"
	MIMEGIF     = "image/gif"
	MIMEWebP    = "image/webp"
	MIMEDefault = "application/octet-stream"

	prefix       = "data:"
	base64Marker = ";base64,"
)

// ErrInvalid se devuelve cuando la entrada no es una URL data: base64 decodificable.
var ErrInvalid = errors.New("datauri: contenido base64 inválido")

// firmas conocidas al inicio del texto base64 (antes de decodificar).
var signatures = []struct {
	prefix string
	mime   string
}{
	{"JVBERi0", MIMEPDF},
	{"/9j/", MIMEJPEG},
	{"iVBORw0KGgo", MIMEPNG},
	{"R0lGOD", MIMEGIF},
	{"UklGR", MIMEWebP},
}

// Normalize devuelve "data:<mime>;base64,<payload>" para una entrada ya prefijada o
// para base64 plano. Devuelve "" si la entrada está vacía o no decodifica.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" || raw == "undefined" {
		return ""
	}
	if strings.HasPrefix(raw, prefix) {
		mime, _, err := Decode(raw)
		if err != nil {
			return ""
		}
		// se reconstruye: MIME vacío o espacios dentro del payload
		payload := stripSpaces(raw[strings.Index(raw, base64Marker)+len(base64Marker):])
		return prefix + mime + base64Marker + payload
	}
	payload := stripSpaces(raw)
	decoded, err := decodePayload(payload)
	if err != nil || len(decoded) == 0 {
		return ""
	}
	return prefix + SniffMIME(payload, decoded) + base64Marker + payload
}

// Decode separa una URL data: en tipo MIME y bytes. Acepta también base64 plano.
func Decode(uri string) (string, []byte, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", nil, ErrInvalid
	}
	if !strings.HasPrefix(uri, prefix) {
		payload := stripSpaces(uri)
		data, err := decodePayload(payload)
		if err != nil || len(data) == 0 {
			return "", nil, ErrInvalid
		}
		return SniffMIME(payload, data), data, nil
	}
	idx := strings.Index(uri, base64Marker)
	if idx < 0 {
		return "", nil, ErrInvalid
	}
	mime := uri[len(prefix):idx]
	payload := stripSpaces(uri[idx+len(base64Marker):])
	data, err := decodePayload(payload)
	if err != nil || len(data) == 0 {
		return "", nil, ErrInvalid
	}
	if mime == "" {
		mime = SniffMIME(payload, data)
	}
	return mime, data, nil
}

// SniffMIME identifica el tipo por las firmas conocidas del texto base64 y, si no
// hay coincidencia, por el contenido decodificado.
func SniffMIME(payload string, decoded []byte) string {
	for _, s := range signatures {
		if strings.HasPrefix(payload, s.prefix) {
			return s.mime
		}
	}
	if len(decoded) > 0 {
		mt := mimetype.Detect(decoded)
		// mimetype agrega parámetros (charset) a los tipos de texto
		if m := strings.TrimSpace(strings.SplitN(mt.String(), ";", 2)[0]); m != "" {
			return m
		}
	}
	return MIMEDefault
}

// Extension devuelve la extensión de archivo (con punto) para un tipo MIME.
func Extension(mime string) string {
	switch mime {
	case MIMEPDF:
		return ".pdf"
	case MIMEJPEG:
		return ".jpg"
	case MIMEPNG:
		return ".png"
	}
	if mt := mimetype.Lookup(mime); mt != nil && mt.Extension() != "" {
		return mt.Extension()
	}
	return ".bin"
}

// IsPDF indica si la URL data: corresponde a un PDF.
func IsPDF(uri string) bool { return mimeOf(uri) == MIMEPDF }

// IsImage indica si la URL data: corresponde a una imagen.
func IsImage(uri string) bool { return strings.HasPrefix(mimeOf(uri), "image/") }

func mimeOf(uri string) string {
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	idx := strings.Index(uri, base64Marker)
	if idx < 0 {
		return ""
	}
	return uri[len(prefix):idx]
}

func decodePayload(payload string) ([]byte, error) {
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
}
