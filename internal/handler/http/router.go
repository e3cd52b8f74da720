package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/uniteam-app/uniteam-backend-go/internal/handler/http/middleware"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	masterHandler MasterHandler,
	syncHandler SyncHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "uniteam-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/device", func(r chi.Router) {
			r.Post("/token", authHandler.DeviceToken)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Post("/admin", authHandler.AdminLogin)
			})
		})

		// Report accounts authenticate per request; no session required.
		r.Route("/reports", func(r chi.Router) {
			r.Post("/login", reportHandler.Login)
			r.Post("/export", reportHandler.Export)
		})

		// The bootstrap deep link arrives before anyone can log in.
		r.Get("/sync/bootstrap", syncHandler.Bootstrap)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/my", attendanceHandler.GetMyRecords)
			})

			r.Get("/sync/status", syncHandler.Status)

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/branches", func(r chi.Router) {
					r.Get("/", masterHandler.ListBranches)
					r.Post("/", masterHandler.CreateBranch)
					r.Get("/{id}", masterHandler.GetBranch)
					r.Put("/{id}", masterHandler.UpdateBranch)
					r.Delete("/{id}", masterHandler.DeleteBranch)
				})

				r.Route("/jobs", func(r chi.Router) {
					r.Get("/", masterHandler.ListJobs)
					r.Post("/", masterHandler.CreateJob)
					r.Get("/{id}", masterHandler.GetJob)
					r.Put("/{id}", masterHandler.UpdateJob)
					r.Delete("/{id}", masterHandler.DeleteJob)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", masterHandler.ListUsers)
					r.Get("/{id}", masterHandler.GetUser)
					r.Put("/{id}", masterHandler.UpdateUser)
					r.Delete("/{id}", masterHandler.DeleteUser)
					r.Post("/{id}/reset-device", masterHandler.ResetDevice)
				})

				r.Route("/report-accounts", func(r chi.Router) {
					r.Get("/", masterHandler.ListReportAccounts)
					r.Post("/", masterHandler.CreateReportAccount)
					r.Get("/{id}", masterHandler.GetReportAccount)
					r.Put("/{id}", masterHandler.UpdateReportAccount)
					r.Delete("/{id}", masterHandler.DeleteReportAccount)
				})

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", masterHandler.GetSettings)
					r.Put("/", masterHandler.UpdateSettings)
				})

				r.Get("/attendance", attendanceHandler.ListRecords)

				r.Route("/sync", func(r chi.Router) {
					r.Post("/pull", syncHandler.Pull)
					r.Post("/push", syncHandler.Push)
				})
			})
		})
	})
	return r
}
