package entity

// Estados de empresa que maneja el backend.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// Company importador/exportador registrado por el owner.
type Company struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"companyName"`
	TIN     string `json:"tin"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Status  string `json:"status"`
}
