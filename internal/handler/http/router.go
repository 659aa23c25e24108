package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/handler/http/middleware"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/jwt"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/metrics"
)

func NewRouter(
	JWTService jwt.Service,
	m *metrics.Metrics,
	env string,
	authHandler AuthHandler,
	userHandler UserHandler,
	employeeHandler EmployeeHandler,
	skillHandler SkillHandler,
	movementHandler LevelMovementHandler,
	assignmentHandler AssignmentHandler,
	auditHandler AuditHandler,
	dashboardHandler DashboardHandler,
	hrmsHandler HRMSHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "skillsphere"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(middleware.ClientIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(m.Middleware)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(httprate.LimitByIP(10, time.Minute))
				r.Post("/login", authHandler.Login)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/me", userHandler.GetMe)

			r.Route("/users", func(r chi.Router) {
				r.Put("/{id}/role", userHandler.UpdateUserRole)
				r.Delete("/{id}", userHandler.DeactivateUser)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Post("/", employeeHandler.CreateEmployee)
				r.Post("/import", employeeHandler.ImportEmployees)
				r.Get("/export", employeeHandler.ExportEmployees)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.GetEmployee)
					r.Put("/", employeeHandler.UpdateEmployee)
					r.Delete("/", employeeHandler.DeactivateEmployee)

					r.Get("/skills", skillHandler.ListAssessments)
					r.Put("/skills/{skillID}", skillHandler.Assess)
					r.Get("/skills/{skillID}/history", skillHandler.ListHistory)
					r.Get("/readiness", skillHandler.Readiness)
					r.Post("/pathway", skillHandler.AssignPathway)
				})
			})

			r.Route("/skills", func(r chi.Router) {
				r.Get("/", skillHandler.ListSkills)
				r.Post("/", skillHandler.CreateSkill)
				r.Put("/requirements", skillHandler.SetRequirement)
				r.Post("/{id}/pathways/{pathwayID}", skillHandler.TagSkill)
			})

			r.Route("/pathways", func(r chi.Router) {
				r.Get("/", skillHandler.ListPathways)
				r.Post("/", skillHandler.CreatePathway)
			})

			r.Route("/level-movements", func(r chi.Router) {
				r.Get("/", movementHandler.ListMovements)
				r.Post("/", movementHandler.RequestMovement)
				r.Post("/{id}/approve", movementHandler.ApproveMovement)
				r.Post("/{id}/reject", movementHandler.RejectMovement)
				r.Post("/{id}/apply", movementHandler.ApplyMovement)
			})

			r.Route("/projects/assignments", func(r chi.Router) {
				r.Get("/", assignmentHandler.ListAssignments)
				r.Post("/", assignmentHandler.CreateAssignment)
				r.Delete("/{id}", assignmentHandler.EndAssignment)
			})

			r.Get("/audit", auditHandler.QueryAuditLog)
			r.Get("/dashboard/coverage", dashboardHandler.GetCoverage)
			r.Post("/hrms/sync", hrmsHandler.TriggerSync)
		})
	})
	return r
}
