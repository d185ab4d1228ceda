package handler

import (
	"net/http"

	"github.com/chetan-code/missioncontrol/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Identity  service.IdentityService
	Tasks     service.TaskService
	Taxonomy  service.TaxonomyService
	Admin     service.AdminService
	Dashboard service.DashboardService
	// nil leaves the Google routes unmounted
	Google *GoogleAuth
}

func NewRouter(s Services) http.Handler {
	authH := NewAuthHandler(s.Identity)
	taskH := NewTaskHandler(s.Tasks)
	taxH := NewTaxonomyHandler(s.Taxonomy)
	adminH := NewAdminHandler(s.Admin)
	dashH := NewDashboardHandler(s.Dashboard, s.Identity)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(loggerMW)
	r.Use(middleware.Recoverer)

	r.Get("/health", Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		if s.Google != nil {
			r.Get("/auth/google", s.Google.Begin)
			r.Get("/auth/google/callback", s.Google.Callback)
		}

		//we will protect them - only callers with a valid token reach these routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.Identity))

			r.Get("/auth/me", authH.Me)
			r.Get("/dashboard", dashH.Summary)
			r.Get("/users", dashH.Directory)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskH.List)
				r.Post("/", taskH.Create)
				r.Get("/{id}", taskH.Get)
				r.Put("/{id}", taskH.Update)
				r.Delete("/{id}", taskH.Delete)
				r.Post("/{id}/notes", taskH.AddNote)
				r.Delete("/{id}/notes/{noteID}", taskH.DeleteNote)
			})

			r.Route("/cti", func(r chi.Router) {
				r.Get("/categories", taxH.ListCategories)
				r.Post("/categories", taxH.CreateCategory)
				r.Delete("/categories/{id}", taxH.DeleteCategory)
				r.Get("/types", taxH.ListTypes)
				r.Post("/types", taxH.CreateType)
				r.Delete("/types/{id}", taxH.DeleteType)
				r.Get("/items", taxH.ListItems)
				r.Post("/items", taxH.CreateItem)
				r.Delete("/items/{id}", taxH.DeleteItem)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(AdminMiddleware(s.Identity))
				r.Get("/users", adminH.ListUsers)
				r.Put("/users/{id}", adminH.UpdateUser)
				r.Delete("/users/{id}", adminH.DeleteUser)
				r.Put("/users/{id}/role", adminH.SetRole)
			})
		})
	})

	return r
}
