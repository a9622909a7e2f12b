package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/tin"
)

// DeclarationFromRequest convierte el formulario ya validado en la entidad.
func DeclarationFromRequest(in dto.DeclarationRequest) (entity.Declaration, error) {
	date, err := time.Parse(entity.DateLayout, in.DeclarationDate)
	if err != nil {
		return entity.Declaration{}, fmt.Errorf("%w: declarationDate: %w", domain.ErrValidation, err)
	}
	d := entity.Declaration{
		Number:       strings.TrimSpace(in.DeclarationNumber),
		Date:         date,
		CompanyName:  strings.TrimSpace(in.CompanyName),
		TIN:          tin.Normalize(in.TIN),
		Currency:     strings.ToUpper(in.Currency),
		ExchangeRate: in.ExchangeRate,
		Items:        make([]entity.Item, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		d.Items = append(d.Items, entity.Item{
			Description: strings.TrimSpace(it.Description),
			HSCode:      it.HSCode,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
			Taxes:       taxesFromRequest(it.Taxes),
		})
	}
	return d, nil
}

// DeclarationToRequest inverso de DeclarationFromRequest (importación desde XML).
func DeclarationToRequest(d entity.Declaration) dto.DeclarationRequest {
	out := dto.DeclarationRequest{
		DeclarationNumber: d.Number,
		CompanyName:       d.CompanyName,
		TIN:               d.TIN,
		Currency:          d.Currency,
		ExchangeRate:      d.ExchangeRate,
		Items:             make([]dto.ItemRequest, 0, len(d.Items)),
	}
	if !d.Date.IsZero() {
		out.DeclarationDate = d.Date.Format(entity.DateLayout)
	}
	for _, it := range d.Items {
		ir := dto.ItemRequest{Description: it.Description, HSCode: it.HSCode, Quantity: it.Quantity, UnitCost: it.UnitCost}
		for _, t := range it.Taxes {
			ir.Taxes = append(ir.Taxes, dto.TaxLineRequest{Type: t.Type, Rate: t.Rate, Amount: t.Amount})
		}
		out.Items = append(out.Items, ir)
	}
	return out
}

func taxesFromRequest(in []dto.TaxLineRequest) []entity.TaxLine {
	out := make([]entity.TaxLine, 0, len(in))
	for _, t := range in {
		out = append(out, entity.TaxLine{Type: t.Type, Rate: t.Rate, Amount: t.Amount})
	}
	return out
}

func feesFromRequest(in []dto.FeeLineRequest) ([]entity.FeeLine, error) {
	out := make([]entity.FeeLine, 0, len(in))
	for _, f := range in {
		paid, err := time.Parse(entity.DateLayout, f.PaidAt)
		if err != nil {
			return nil, fmt.Errorf("%w: paidAt: %w", domain.ErrValidation, err)
		}
		out = append(out, entity.FeeLine{
			Type:          strings.TrimSpace(f.Type),
			Amount:        f.Amount,
			ReceiptNumber: strings.TrimSpace(f.ReceiptNumber),
			PaidAt:        paid,
		})
	}
	return out, nil
}

func companyFromRequest(in dto.CompanyRequest) entity.Company {
	return entity.Company{
		Name:    strings.TrimSpace(in.Name),
		TIN:     tin.Normalize(in.TIN),
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Status:  in.Status,
	}
}

func companyToResponse(c entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:      c.ID,
		Name:    c.Name,
		TIN:     c.TIN,
		Address: c.Address,
		Phone:   c.Phone,
		Email:   c.Email,
		Status:  c.Status,
	}
}

func declarationSummary(d entity.Declaration) dto.DeclarationSummary {
	t := d.Totals()
	s := dto.DeclarationSummary{
		DeclarationNumber: d.Number,
		CompanyName:       d.CompanyName,
		TIN:               d.TIN,
		ItemCount:         len(d.Items),
		GoodsValue:        t.GoodsValue,
		TaxTotal:          t.TaxTotal,
		GrandTotal:        t.GrandTotal,
	}
	if !d.Date.IsZero() {
		s.DeclarationDate = d.Date.Format(entity.DateLayout)
	}
	return s
}
