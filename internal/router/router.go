package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/config"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/handler"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/middleware"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/observability"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/service"
)

// Dependencies carries everything the route tree needs.
type Dependencies struct {
	Recorder  service.AuditRecorder
	Auth      *handler.AuthHandler
	Students  *handler.StudentHandler
	Teachers  *handler.TeacherHandler
	Grades    *handler.GradeHandler
	Schedule  *handler.ScheduleHandler
	News      *handler.NewsHandler
	Shop      *handler.ShopHandler
	Library   *handler.LibraryHandler
	Materials *handler.MaterialHandler
	Audit     *handler.AdminAuditHandler
	Dashboard *handler.DashboardHandler
}

// Register wires the full route tree. Role gates record an access_denied
// audit event before rejecting the request.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.ScrapeHandler())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow))
	deps.Auth.Register(auth)

	protected := api.Group("", middleware.JWTProtected(cfg.JWTSecret))
	deps.Auth.RegisterProtected(protected.Group("/auth"))

	staff := []string{models.RoleAdmin, models.RoleTeacher}
	adminOnly := []string{models.RoleAdmin}

	deps.Students.Register(protected.Group("/students",
		middleware.RequireRole(deps.Recorder, "students", staff...)))
	deps.Teachers.Register(protected.Group("/teachers",
		middleware.RequireRole(deps.Recorder, "teachers", adminOnly...)))
	// Students read their own grade book; the full grade book stays with
	// staff.
	deps.Grades.RegisterStudent(protected.Group("/grades/my",
		middleware.RequireRole(deps.Recorder, "grades", models.RoleStudent)))
	deps.Grades.Register(protected.Group("/grades",
		middleware.RequireRole(deps.Recorder, "grades", staff...)))
	schedule := protected.Group("/schedule")
	deps.Schedule.Register(schedule)
	deps.Schedule.RegisterEditor(schedule.Group("",
		middleware.RequireRole(deps.Recorder, "schedule", adminOnly...)))

	news := protected.Group("/news")
	deps.News.Register(news)
	deps.News.RegisterEditor(news.Group("",
		middleware.RequireRole(deps.Recorder, "news", staff...)))

	shop := protected.Group("/shop")
	deps.Shop.Register(shop)
	deps.Shop.RegisterAdmin(shop.Group("",
		middleware.RequireRole(deps.Recorder, "shop_products", adminOnly...)))

	library := protected.Group("/library")
	deps.Library.Register(library)
	deps.Library.RegisterAdmin(library.Group("",
		middleware.RequireRole(deps.Recorder, "library_books", adminOnly...)))

	materials := protected.Group("/materials")
	deps.Materials.Register(materials)
	deps.Materials.RegisterEditor(materials.Group("",
		middleware.RequireRole(deps.Recorder, "materials", staff...)))

	admin := protected.Group("/admin",
		middleware.RequireRole(deps.Recorder, "admin", adminOnly...))
	deps.Audit.Register(admin.Group("/audit-logs"))
	deps.Dashboard.Register(admin.Group("/dashboard"))
}
