package http

import (
	"log/slog"
	"os"

	"github.com/gestionpro/erp-backend-go/internal/config"
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/middleware"
	"github.com/gestionpro/erp-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Navigation NavigationHandler
	Customer   CustomerHandler
	Quote      QuoteHandler
	Invoice    InvoiceHandler
	Employee   EmployeeHandler
	Mission    MissionHandler
	Material   MaterialHandler
	Message    MessageHandler
	Report     ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "gestionpro"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	loginLimiter := middleware.NewLoginRateLimiter(cfg.App.LoginRatePers, cfg.App.LoginRateBurst)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Handler).Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a verified access token.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/profile", h.Auth.Profile)
			r.Get("/navigation", h.Navigation.GetNavigation)

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionUsersRead)).Get("/", h.User.ListUsers)
				r.With(middleware.RequirePermission(user.PermissionUsersRead)).Get("/{id}", h.User.GetUser)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUsersManage))
					r.Post("/", h.User.CreateUser)
					r.Put("/{id}", h.User.UpdateUser)
					r.Post("/{id}/deactivate", h.User.DeactivateUser)
					r.Post("/{id}/activate", h.User.ActivateUser)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUsersManagePermissions))
					r.Get("/{id}/permissions", h.User.GetPermissions)
					r.Put("/{id}/permissions", h.User.ReplacePermissions)
					r.Delete("/{id}/permissions", h.User.ResetPermissions)
				})
			})

			r.Route("/customers", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionCustomersRead)).Get("/", h.Customer.ListCustomers)
				r.With(middleware.RequirePermission(user.PermissionCustomersRead)).Get("/{id}", h.Customer.GetCustomer)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCustomersManage))
					r.Post("/", h.Customer.CreateCustomer)
					r.Put("/{id}", h.Customer.UpdateCustomer)
					r.Post("/{id}/convert", h.Customer.ConvertProspect)
					r.Delete("/{id}", h.Customer.DeleteCustomer)
				})
			})

			r.Route("/quotes", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionQuotesRead)).Get("/", h.Quote.ListQuotes)
				r.With(middleware.RequirePermission(user.PermissionQuotesRead)).Get("/{id}", h.Quote.GetQuote)
				r.With(middleware.RequirePermission(user.PermissionQuotesRead)).Get("/{id}/history", h.Quote.GetHistory)
				r.With(middleware.RequirePermission(user.PermissionQuotesCreate)).Post("/", h.Quote.CreateQuote)
				r.With(middleware.RequirePermission(user.PermissionQuotesUpdate)).Put("/{id}", h.Quote.UpdateQuote)
				// The per-action permission is enforced inside the service,
				// keyed on the transition table.
				r.Post("/{id}/actions/{action}", h.Quote.TransitionQuote)
				r.With(middleware.RequirePermission(user.PermissionQuotesRecordClientDecision)).
					Post("/{id}/client-decision", h.Quote.RecordClientDecision)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionInvoicesRead)).Get("/", h.Invoice.ListInvoices)
				r.With(middleware.RequirePermission(user.PermissionInvoicesRead)).Get("/{id}", h.Invoice.GetInvoice)
				r.With(middleware.RequirePermission(user.PermissionInvoicesCreate)).Post("/", h.Invoice.CreateInvoice)
				r.With(middleware.RequirePermission(user.PermissionInvoicesCreate)).Post("/{id}/cancel", h.Invoice.CancelInvoice)
				r.With(middleware.RequirePermission(user.PermissionInvoicesRecordPayment)).
					Post("/{id}/payments", h.Invoice.RecordPayment)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeesRead)).Get("/", h.Employee.ListEmployees)
				r.With(middleware.RequirePermission(user.PermissionEmployeesRead)).Get("/{id}", h.Employee.GetEmployee)
				r.With(middleware.RequirePermission(user.PermissionEmployeesRead)).Get("/{id}/contracts", h.Employee.ListContracts)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeesManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Post("/{id}/deactivate", h.Employee.DeactivateEmployee)
					r.Post("/{id}/contracts", h.Employee.AddContract)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeavesCreate)).Post("/", h.Employee.RequestLeave)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeavesApprove))
					r.Get("/pending", h.Employee.ListPendingLeaves)
					r.Post("/{id}/approve", h.Employee.ApproveLeave)
					r.Post("/{id}/reject", h.Employee.RejectLeave)
				})
			})

			r.Route("/loans", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLoansRequest)).Post("/", h.Employee.RequestLoan)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLoansApprove))
					r.Get("/pending", h.Employee.ListPendingLoans)
					r.Post("/{id}/approve", h.Employee.ApproveLoan)
					r.Post("/{id}/reject", h.Employee.RejectLoan)
				})
			})

			r.Route("/missions", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionMissionsRead)).Get("/", h.Mission.ListMissions)
				r.With(middleware.RequirePermission(user.PermissionMissionsRead)).Get("/{id}", h.Mission.GetMission)
				r.With(middleware.RequirePermission(user.PermissionMissionsRead)).Get("/{id}/interventions", h.Mission.ListInterventions)
				r.With(middleware.RequirePermission(user.PermissionMissionsManage)).Post("/", h.Mission.CreateMission)
				r.With(middleware.RequirePermission(user.PermissionMissionsManage)).Put("/{id}", h.Mission.UpdateMission)
				r.With(middleware.RequirePermission(user.PermissionInterventionsSchedule)).
					Post("/{id}/interventions", h.Mission.ScheduleIntervention)
			})

			r.Route("/interventions", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionInterventionsComplete)).
					Post("/{interventionID}/complete", h.Mission.CompleteIntervention)
				r.With(middleware.RequirePermission(user.PermissionInterventionsSchedule)).
					Post("/{interventionID}/cancel", h.Mission.CancelIntervention)
			})

			r.Route("/materials", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionMaterialsRead)).Get("/", h.Material.ListMaterials)
				r.With(middleware.RequirePermission(user.PermissionMaterialsRead)).Get("/{id}", h.Material.GetMaterial)
				r.With(middleware.RequirePermission(user.PermissionMaterialsRead)).Get("/{id}/movements", h.Material.ListMovements)
				r.With(middleware.RequirePermission(user.PermissionMaterialsManage)).Post("/", h.Material.CreateMaterial)
				r.With(middleware.RequirePermission(user.PermissionMaterialsManage)).Post("/{id}/adjust", h.Material.AdjustStock)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/", h.Message.ListInbox)
				r.Post("/", h.Message.SendMessage)
				r.Get("/unread-count", h.Message.UnreadCount)
				r.Get("/{id}", h.Message.ReadMessage)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/dashboard", h.Report.GetDashboard)
				r.Get("/revenue", h.Report.GetRevenue)
			})
		})
	})
	return r
}
