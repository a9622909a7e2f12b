package viewer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/tin"
)

// Modos de agrupamiento aceptados por los visores.
const (
	GroupNone        = "none"
	GroupCompany     = "company"
	GroupDeclaration = "declaration"
	GroupUser        = "user"
	GroupTree        = "tree"
)

// fold clave de comparación: sin espacios extremos, espacios internos colapsados y
// sin distinción de mayúsculas.
func fold(s string) string {
	// un Caser tiene estado y no se comparte entre goroutines
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// companyKey agrupa por nombre; sin nombre se usa el TIN normalizado.
func companyKey(d entity.Document) string {
	if k := fold(d.CompanyName); k != "" {
		return "name:" + k
	}
	if t := tin.Normalize(d.TIN); t != "" {
		return "tin:" + t
	}
	return ""
}

// groupOrdered agrupa conservando el orden de primera aparición.
func groupOrdered(docs []entity.Document, key func(entity.Document) string) ([]string, map[string][]entity.Document) {
	var order []string
	groups := make(map[string][]entity.Document)
	for _, d := range docs {
		k := key(d)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], d)
	}
	return order, groups
}

// GroupByCompany un grupo por nombre de empresa distinto, con todos sus documentos.
func GroupByCompany(docs []entity.Document) []dto.CompanyGroup {
	order, groups := groupOrdered(docs, companyKey)
	out := make([]dto.CompanyGroup, 0, len(order))
	for _, k := range order {
		members := groups[k]
		out = append(out, dto.CompanyGroup{
			CompanyName: displayName(members, func(d entity.Document) string { return d.CompanyName }, "Sin empresa"),
			TINs:        distinctTINs(members),
			Count:       len(members),
			Documents:   RenderAll(members),
		})
	}
	return out
}

// GroupByDeclaration un grupo por número de declaración.
func GroupByDeclaration(docs []entity.Document) []dto.DeclarationGroup {
	order, groups := groupOrdered(docs, func(d entity.Document) string { return fold(d.DeclarationNumber) })
	out := make([]dto.DeclarationGroup, 0, len(order))
	for _, k := range order {
		members := groups[k]
		out = append(out, dto.DeclarationGroup{
			DeclarationNumber: displayName(members, func(d entity.Document) string { return d.DeclarationNumber }, "Sin declaración"),
			CompanyName:       displayName(members, func(d entity.Document) string { return d.CompanyName }, ""),
			Count:             len(members),
			Documents:         RenderAll(members),
		})
	}
	return out
}

// GroupByUser un grupo por usuario que subió el documento.
func GroupByUser(docs []entity.Document) []dto.UserGroup {
	order, groups := groupOrdered(docs, userKey)
	out := make([]dto.UserGroup, 0, len(order))
	for _, k := range order {
		members := groups[k]
		out = append(out, dto.UserGroup{
			UserID:     members[0].UserID,
			UploadedBy: displayName(members, func(d entity.Document) string { return d.UploadedBy }, "Desconocido"),
			Count:      len(members),
			Documents:  RenderAll(members),
		})
	}
	return out
}

// GroupOwnerTree empresa → usuario → declaración.
func GroupOwnerTree(docs []entity.Document) []dto.OwnerCompanyNode {
	order, groups := groupOrdered(docs, companyKey)
	out := make([]dto.OwnerCompanyNode, 0, len(order))
	for _, k := range order {
		members := groups[k]
		userOrder, byUser := groupOrdered(members, userKey)
		users := make([]dto.OwnerUserNode, 0, len(userOrder))
		for _, uk := range userOrder {
			userDocs := byUser[uk]
			users = append(users, dto.OwnerUserNode{
				UserID:       userDocs[0].UserID,
				UploadedBy:   displayName(userDocs, func(d entity.Document) string { return d.UploadedBy }, "Desconocido"),
				Count:        len(userDocs),
				Declarations: GroupByDeclaration(userDocs),
			})
		}
		out = append(out, dto.OwnerCompanyNode{
			CompanyName: displayName(members, func(d entity.Document) string { return d.CompanyName }, "Sin empresa"),
			TINs:        distinctTINs(members),
			Count:       len(members),
			Users:       users,
		})
	}
	return out
}

// Build arma la respuesta del visor según groupBy (vacío o desconocido = lista plana).
func Build(docs []entity.Document, groupBy string) dto.DocumentListResponse {
	resp := dto.DocumentListResponse{Total: len(docs), GroupBy: groupBy}
	switch groupBy {
	case GroupCompany:
		resp.Companies = GroupByCompany(docs)
	case GroupDeclaration:
		resp.Declarations = GroupByDeclaration(docs)
	case GroupUser:
		resp.Users = GroupByUser(docs)
	case GroupTree:
		resp.Tree = GroupOwnerTree(docs)
	default:
		resp.GroupBy = GroupNone
		resp.Documents = RenderAll(docs)
	}
	return resp
}

func userKey(d entity.Document) string {
	if d.UserID != "" {
		return "id:" + d.UserID
	}
	return "name:" + fold(d.UploadedBy)
}

// displayName primer valor no vacío del grupo, tal como vino del backend.
func displayName(docs []entity.Document, field func(entity.Document) string, fallback string) string {
	for _, d := range docs {
		if v := strings.TrimSpace(field(d)); v != "" {
			return v
		}
	}
	return fallback
}

func distinctTINs(docs []entity.Document) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, d := range docs {
		t := tin.Normalize(d.TIN)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
