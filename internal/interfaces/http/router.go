package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/albaranes-api/internal/application/auth"
	"github.com/jhoicas/albaranes-api/internal/application/deliverynote"
	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/internal/application/usecase"
	"github.com/jhoicas/albaranes-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ClientUC  *usecase.ClientUseCase
	ProjectUC *usecase.ProjectUseCase
	NoteUC    *deliverynote.UseCase
	UserRepo  repository.UserRepository
	Notifier  ports.Notifier
	JWTSecret string
}

// Router registra las rutas de la API.
//
// Las rutas estáticas (archived, restore, pdf, sign) van antes que las
// paramétricas :id del mismo método: Fiber resuelve por orden de registro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", NotifyMiddleware(deps.Notifier))

	authRequired := AuthMiddleware(deps.JWTSecret, deps.UserRepo)

	// Users
	users := api.Group("/user")
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC)

	// público
	users.Post("/register", userHandler.Register)
	users.Post("/login", userHandler.Login)
	users.Post("/recover", userHandler.Recover)
	users.Put("/reset-password", userHandler.ResetPassword)

	// protegido
	users.Put("/validation", authRequired, userHandler.Validate)
	users.Get("/me", authRequired, userHandler.Me)
	users.Put("/register", authRequired, userHandler.Onboarding)
	users.Patch("/company", authRequired, userHandler.Company)
	users.Patch("/logo", authRequired, userHandler.Logo)
	users.Put("/restore", authRequired, userHandler.Restore)
	users.Patch("/password", authRequired, userHandler.Password)
	users.Post("/invite", authRequired, userHandler.Invite)
	users.Delete("/", authRequired, userHandler.Delete)

	// Clients (protegido)
	clients := api.Group("/client", authRequired)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/archived", clientHandler.ListArchived)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/restore/:id", clientHandler.Restore)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Projects (protegido)
	projects := api.Group("/project", authRequired)
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/archived", projectHandler.ListArchived)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/restore/:id", projectHandler.Restore)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)

	// Delivery notes (protegido)
	notes := api.Group("/deliverynote", authRequired)
	noteHandler := NewDeliveryNoteHandler(deps.NoteUC)
	notes.Post("/", noteHandler.Create)
	notes.Get("/", noteHandler.List)
	notes.Get("/pdf/:id", noteHandler.PDF)
	notes.Get("/:id", noteHandler.GetByID)
	notes.Patch("/sign/:id", noteHandler.Sign)
	notes.Delete("/:id", noteHandler.Delete)
}
