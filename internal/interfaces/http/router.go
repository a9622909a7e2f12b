package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customs-receipts/internal/application/auth"
	"github.com/jhoicas/customs-receipts/internal/application/usecase"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ClerkUC      *usecase.ClerkUseCase
	AccountantUC *usecase.AccountantUseCase
	OwnerUC      *usecase.OwnerUseCase
	DocumentUC   *usecase.DocumentUseCase
	RenderUC     *usecase.RenderUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Clerk
	clerk := protected.Group("/clerk", RequireRole(entity.RoleClerk))
	clerkHandler := NewClerkHandler(deps.ClerkUC)
	clerk.Post("/declarations", clerkHandler.SubmitDeclaration)
	clerk.Get("/declarations", clerkHandler.ListDeclarations)
	clerk.Post("/documents/:kind", clerkHandler.Upload)
	clerk.Get("/warehouse-files", clerkHandler.WarehouseFiles)

	// Accountant
	accountant := protected.Group("/accountant", RequireRole(entity.RoleAccountant))
	accountantHandler := NewAccountantHandler(deps.AccountantUC)
	accountant.Post("/fees", accountantHandler.SubmitFees)
	accountant.Post("/taxes", accountantHandler.SubmitTaxes)
	accountant.Post("/receipts/:kind", accountantHandler.UploadReceipt)
	accountant.Get("/receipts/:kind", accountantHandler.Receipts)
	accountant.Get("/dashboard", accountantHandler.Dashboard)

	// Owner
	owner := protected.Group("/owner", RequireRole(entity.RoleOwner))
	ownerHandler := NewOwnerHandler(deps.OwnerUC)
	owner.Post("/companies", ownerHandler.RegisterCompany)
	owner.Get("/companies", ownerHandler.Companies)
	owner.Get("/documents", ownerHandler.Documents)

	// Documentos (cualquier rol; el caso de uso limita las categorías)
	allRoles := RequireRole(entity.RoleClerk, entity.RoleAccountant, entity.RoleOwner)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	docs := protected.Group("/documents", allRoles)
	docs.Get("/:kind/:id", documentHandler.Get)
	docs.Get("/:kind/:id/download", documentHandler.Download)

	// Exportación de declaraciones (sin llamada al backend: exige firma verificada)
	renderHandler := NewRenderHandler(deps.RenderUC)
	decl := protected.Group("/declarations", RequireVerifiedToken(deps.JWTSecret), allRoles)
	decl.Post("/render", renderHandler.Render)
	decl.Post("/import", renderHandler.Import)
}
