package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/SARVESHVARADKAR123/memberclub/internal/middleware"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

type Handlers struct {
	Profile       *ProfileHandler
	Mentor        *MentorHandler
	Admin         *AdminHandler
	Banner        *BannerHandler
	Whiteboard    *WhiteboardHandler
	MentorRequest *MentorRequestHandler
	Upload        *UploadHandler
}

type RouterOptions struct {
	ServiceName       string
	JWTSecret         []byte
	JWTIssuer         string
	JWTAudience       string
	RateLimitRequests int
	RateLimitWindow   string
	RequestTimeout    time.Duration
	AllowedOrigins    []string
	Ready             []observability.Pinger
}

func NewRouter(h Handlers, o RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(observability.MetricsMiddleware(o.ServiceName))
	r.Use(middleware.Recovery())

	r.Get("/health/live", observability.HealthLiveHandler)
	r.Get("/health/ready", observability.HealthReadyHandler(o.Ready...))

	auth := middleware.JWT(o.JWTSecret, o.JWTIssuer, o.JWTAudience)

	r.Route("/api/v1", func(api chi.Router) {
		if o.RateLimitRequests > 0 {
			api.Use(middleware.RateLimit(o.RateLimitRequests, o.RateLimitWindow))
		}
		api.Use(middleware.Timeout(o.RequestTimeout))

		// Public
		api.Get("/mentors", h.Mentor.List)
		api.Get("/mentors/expertise", h.Mentor.Expertise)
		api.Get("/mentors/{id}", h.Mentor.Get)

		api.Get("/banners", h.Banner.List)
		api.Get("/banners/{id}", h.Banner.Get)
		api.Post("/banners/{id}/click", h.Banner.Click)

		api.Get("/whiteboard", h.Whiteboard.List)
		api.Get("/whiteboard/{id}", h.Whiteboard.Get)

		// Members
		api.Group(func(p chi.Router) {
			p.Use(auth)

			profilePath := "/profile"
			p.Get(profilePath, h.Profile.Get)
			p.Post(profilePath, h.Profile.Upsert)
			p.Delete(profilePath, h.Profile.Delete)
			p.Patch(profilePath+"/image", h.Profile.UpdateImage)
			p.Delete(profilePath+"/image", h.Profile.RemoveImage)

			p.Get("/uploads/{uploadId}/progress", h.Upload.Progress)

			p.Post("/whiteboard", h.Whiteboard.Create)
			p.Put("/whiteboard/{id}", h.Whiteboard.Update)
			p.Delete("/whiteboard/{id}", h.Whiteboard.Delete)

			reqPath := "/mentor-requests"
			p.Post(reqPath, h.MentorRequest.Create)
			p.Get(reqPath+"/sent", h.MentorRequest.Sent)
			p.Get(reqPath+"/received", h.MentorRequest.Received)
			p.Patch(reqPath+"/{id}", h.MentorRequest.Respond)
		})

		// Admins
		api.Route("/admin", func(a chi.Router) {
			a.Use(auth)
			a.Use(middleware.RequireAdmin)

			a.Get("/profiles", h.Admin.List)
			a.Get("/profiles/{id}", h.Admin.Get)
			a.Delete("/profiles/{id}", h.Admin.Delete)
			a.Patch("/profiles/{id}/toggle-mentor", h.Admin.ToggleMentor)
			a.Patch("/profiles/{id}/verify", h.Admin.Verify)

			a.Post("/banners", h.Banner.Create)
			a.Put("/banners/{id}", h.Banner.Update)
			a.Delete("/banners/{id}", h.Banner.Delete)
			a.Patch("/banners/{id}/toggle", h.Banner.Toggle)

			a.Patch("/whiteboard/{id}", h.Whiteboard.Moderate)
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	return otelhttp.NewHandler(c.Handler(r), o.ServiceName)
}
