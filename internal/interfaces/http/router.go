package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/assets"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/certificate"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/devolution"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/identity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/application/requests"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IdentityUC   *identity.UseCase
	AssetUC      *assets.UseCase
	AssignmentUC *requests.AssignmentUseCase
	ReplaceUC    *requests.ReplacementUseCase
	DevolutionUC *devolution.UseCase
	CertUC       *certificate.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.IdentityUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas: el rol se resuelve contra la base en cada petición.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.IdentityUC))

	// Usuarios (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.IdentityUC)
	users.Post("/invite", userHandler.Invite)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.UpdateRole)
	users.Delete("/:id", userHandler.Delete)

	// Activos (protegido)
	assetsGroup := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	assetsGroup.Post("/stock", assetHandler.AddStock)
	assetsGroup.Get("/stock", assetHandler.ListStock)
	assetsGroup.Get("/mine", assetHandler.ListMine)
	assetsGroup.Get("/:id", assetHandler.GetByID)
	assetsGroup.Put("/:id", assetHandler.Update)
	assetsGroup.Delete("/:id", assetHandler.Delete)
	assetsGroup.Post("/:id/confirm", assetHandler.ConfirmReceipt)
	assetsGroup.Post("/:id/reject", assetHandler.RejectReceipt)
	assetsGroup.Post("/:id/resolve-replacement", assetHandler.ResolveReplacement)

	// Solicitudes (protegido)
	reqGroup := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.AssignmentUC, deps.ReplaceUC)
	reqGroup.Post("/assignments", requestHandler.CreateAssignmentBatch)
	reqGroup.Get("/assignments", requestHandler.ListAssignments)
	reqGroup.Get("/assignments/mine", requestHandler.ListMyAssignments)
	reqGroup.Post("/assignments/recheck-stock", requestHandler.RecheckPendingStock)
	reqGroup.Post("/assignments/:id/process", requestHandler.ProcessAssignment)
	reqGroup.Post("/assignments/:id/reject", requestHandler.RejectAssignment)
	reqGroup.Post("/assignments/:id/archive", requestHandler.ArchiveAssignment)
	reqGroup.Post("/replacements", requestHandler.CreateReplacement)
	reqGroup.Get("/replacements/pending", requestHandler.ListPendingReplacements)
	reqGroup.Get("/replacements/mine", requestHandler.ListMyReplacements)
	reqGroup.Post("/replacements/:id/decide", requestHandler.DecideReplacement)

	// Devoluciones y certificado (protegido)
	devGroup := protected.Group("/devolutions")
	devolutionHandler := NewDevolutionHandler(deps.DevolutionUC, deps.CertUC)
	devGroup.Post("/", devolutionHandler.Initiate)
	devGroup.Get("/", devolutionHandler.List)
	devGroup.Get("/mine", devolutionHandler.ListMine)
	devGroup.Get("/:id", devolutionHandler.GetByID)
	devGroup.Post("/:id/complete", devolutionHandler.Complete)
	devGroup.Get("/:id/certificate", devolutionHandler.Certificate)
	devGroup.Post("/:id/assets/:assetId/verify", devolutionHandler.VerifyReturn)
	devGroup.Post("/:id/assets/:assetId/decommission", devolutionHandler.Decommission)
}
