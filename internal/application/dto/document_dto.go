package dto

import "time"

// Tipos de vista previa de un documento.
const (
	PreviewPDF   = "pdf"
	PreviewImage = "image"
	PreviewNone  = "none"
)

// DocumentView documento listo para mostrar: base64 normalizado a URL data:.
type DocumentView struct {
	ID                string    `json:"id"`
	Kind              string    `json:"kind"`
	KindLabel         string    `json:"kindLabel"`
	DeclarationNumber string    `json:"declarationNumber"`
	CompanyName       string    `json:"companyName"`
	TIN               string    `json:"tin"`
	UserID            string    `json:"userId,omitempty"`
	UploadedBy        string    `json:"uploadedBy,omitempty"`
	FileName          string    `json:"fileName"`
	DataURL           string    `json:"dataUrl"`
	Preview           string    `json:"preview"`
	DownloadName      string    `json:"downloadName"`
	CreatedAt         time.Time `json:"createdAt"`
}

// CompanyGroup documentos de una misma empresa (nombre o TIN).
type CompanyGroup struct {
	CompanyName string         `json:"companyName"`
	TINs        []string       `json:"tins"`
	Count       int            `json:"count"`
	Documents   []DocumentView `json:"documents"`
}

// DeclarationGroup documentos de una misma declaración.
type DeclarationGroup struct {
	DeclarationNumber string         `json:"declarationNumber"`
	CompanyName       string         `json:"companyName"`
	Count             int            `json:"count"`
	Documents         []DocumentView `json:"documents"`
}

// UserGroup documentos subidos por un mismo usuario.
type UserGroup struct {
	UserID     string         `json:"userId"`
	UploadedBy string         `json:"uploadedBy"`
	Count      int            `json:"count"`
	Documents  []DocumentView `json:"documents"`
}

// OwnerCompanyNode árbol empresa → usuario → declaración del tablero del owner.
type OwnerCompanyNode struct {
	CompanyName string          `json:"companyName"`
	TINs        []string        `json:"tins"`
	Count       int             `json:"count"`
	Users       []OwnerUserNode `json:"users"`
}

// OwnerUserNode usuario dentro de una empresa.
type OwnerUserNode struct {
	UserID       string             `json:"userId"`
	UploadedBy   string             `json:"uploadedBy"`
	Count        int                `json:"count"`
	Declarations []DeclarationGroup `json:"declarations"`
}

// DocumentListResponse listado de un visor. Solo se llena el agrupamiento pedido.
type DocumentListResponse struct {
	Total        int                `json:"total"`
	GroupBy      string             `json:"groupBy"`
	Documents    []DocumentView     `json:"documents,omitempty"`
	Companies    []CompanyGroup     `json:"companies,omitempty"`
	Declarations []DeclarationGroup `json:"declarations,omitempty"`
	Users        []UserGroup        `json:"users,omitempty"`
	Tree         []OwnerCompanyNode `json:"tree,omitempty"`
}

// CategorySummary una de las cuatro categorías del tablero del accountant.
type CategorySummary struct {
	Kind      string         `json:"kind"`
	Label     string         `json:"label"`
	Count     int            `json:"count"`
	Companies []CompanyGroup `json:"companies"`
}

// AccountantDashboard respuesta de GET /api/accountant/dashboard.
type AccountantDashboard struct {
	Categories []CategorySummary `json:"categories"`
	Total      int               `json:"total"`
}

// UploadResult resultado de subir un archivo al backend.
type UploadResult struct {
	Kind              string `json:"kind"`
	DeclarationNumber string `json:"declarationNumber"`
	FileName          string `json:"fileName"`
	MIME              string `json:"mime"`
	Size              int64  `json:"size"`
	Message           string `json:"message"`
}
