package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers : всё, что нужно для регистрации маршрутов API
type Handlers struct {
	Auth  *AuthenticationHandler
	Users *UserHandler
	Teas  *TeaHandler
	// Gate : JWTMiddleware для защищённых маршрутов
	Gate func(http.Handler) http.Handler
}

func SetupRoutes(r chi.Router, h Handlers) {
	r.Get("/", Hello)
	r.Get("/ice-tea", IceTea)
	r.Get("/api/v1/healthcheck", Healthcheck)

	setupUserRoutes(r, h)
	setupTeaRoutes(r, h.Teas)

	r.NotFound(NotFound)
}

func setupUserRoutes(r chi.Router, h Handlers) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Post("/register", h.Users.RegisterUser)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh-token", h.Auth.RefreshToken)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.Gate)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/change-password", h.Auth.ChangePassword)
			r.Get("/current-user", h.Users.GetCurrentUser)
			r.Patch("/update-account", h.Users.UpdateAccount)
			r.Patch("/avatar", h.Users.UpdateAvatar)
			r.Patch("/cover-image", h.Users.UpdateCoverImage)
		})
	})
}

func setupTeaRoutes(r chi.Router, h *TeaHandler) {
	r.Route("/teas", func(r chi.Router) {
		r.Post("/", h.CreateTea)
		r.Get("/", h.ListTeas)
		r.Get("/{id}", h.GetTea)
		r.Put("/{id}", h.UpdateTea)
		r.Delete("/{id}", h.DeleteTea)
	})
}
