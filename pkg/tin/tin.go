// Package tin normaliza el número de identificación tributaria (TIN)
// usado como llave de búsqueda de empresas y usuarios.
package tin

import "unicode"

// Normalize elimina todo lo que no sea dígito ("000-123-4567" → "0001234567").
// La longitud no se comprueba: el backend es quien acepta o rechaza el TIN.
func Normalize(s string) string {
	return string(extractDigits(s))
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			out = append(out, byte(r))
		}
	}
	return out
}
