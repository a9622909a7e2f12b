package dto

// CompanyRequest formulario del owner para registrar una empresa.
type CompanyRequest struct {
	Name    string `json:"companyName" validate:"required"`
	TIN     string `json:"tin" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Status  string `json:"status" validate:"required"`
}

// NewCompanyRequest valores iniciales del formulario.
func NewCompanyRequest() CompanyRequest {
	return CompanyRequest{Status: "active"}
}

// CompanyResponse empresa tal como se lista en el tablero del owner.
type CompanyResponse struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"companyName"`
	TIN     string `json:"tin"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Status  string `json:"status"`
}

// CompanyListResponse lista filtrada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Total int               `json:"total"`
}
