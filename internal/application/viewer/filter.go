package viewer

import (
	"strings"

	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/tin"
)

// Filter conserva los documentos cuyo número de declaración, empresa, TIN, usuario
// o nombre de archivo contiene query (sin distinguir mayúsculas). Query vacío no filtra.
func Filter(docs []entity.Document, query string) []entity.Document {
	q := fold(query)
	if q == "" {
		return docs
	}
	qDigits := tin.Normalize(query)
	out := make([]entity.Document, 0, len(docs))
	for _, d := range docs {
		if matches(d, q, qDigits) {
			out = append(out, d)
		}
	}
	return out
}

func matches(d entity.Document, q, qDigits string) bool {
	for _, field := range []string{d.DeclarationNumber, d.CompanyName, d.TIN, d.UploadedBy, d.FileName} {
		if strings.Contains(fold(field), q) {
			return true
		}
	}
	// "000-123-4567" debe encontrar "0001234567"
	return len(qDigits) >= 4 && strings.Contains(tin.Normalize(d.TIN), qDigits)
}

// FilterCompanies filtra empresas por nombre o TIN y, opcionalmente, por estado.
func FilterCompanies(companies []entity.Company, query, status string) []entity.Company {
	q := fold(query)
	qDigits := tin.Normalize(query)
	out := make([]entity.Company, 0, len(companies))
	for _, c := range companies {
		if status != "" && !strings.EqualFold(c.Status, status) {
			continue
		}
		if q != "" && !strings.Contains(fold(c.Name), q) &&
			!(qDigits != "" && strings.Contains(tin.Normalize(c.TIN), qDigits)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// MatchDeclaration mismo criterio que Filter aplicado a una declaración.
func MatchDeclaration(d entity.Declaration, query string) bool {
	q := fold(query)
	if q == "" {
		return true
	}
	for _, field := range []string{d.Number, d.CompanyName, d.TIN} {
		if strings.Contains(fold(field), q) {
			return true
		}
	}
	qDigits := tin.Normalize(query)
	return len(qDigits) >= 4 && strings.Contains(tin.Normalize(d.TIN), qDigits)
}
