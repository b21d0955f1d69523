package api

import (
	"net/http"

	"github.com/ben/workshop-manager/internal/api/handlers"
	"github.com/ben/workshop-manager/internal/api/middleware"
	"github.com/ben/workshop-manager/internal/service"
	"github.com/ben/workshop-manager/internal/ws"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, hub *ws.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)
	equipmentHandler := handlers.NewEquipmentHandler(services.Equipment)
	shopHandler := handlers.NewShopSpaceHandler(services.ShopSpace, hub)
	wsHandler := handlers.NewWebSocketHandler(hub, services.ShopSpace)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/search", userHandler.Search)
			r.Get("/{userID}", userHandler.Get)
			r.Delete("/{userID}", userHandler.Delete)
			r.Get("/{userID}/equipment", equipmentHandler.ListByUser)
			r.Get("/{userID}/maintenance/summary", equipmentHandler.MaintenanceSummary)
			r.Get("/{userID}/maintenance/schedule", equipmentHandler.MaintenanceSchedule)
			r.Get("/{userID}/maintenance/overdue", equipmentHandler.OverdueMaintenance)
			r.Get("/{userID}/maintenance/due", equipmentHandler.MaintenanceDue)
		})

		r.Route("/equipment", func(r chi.Router) {
			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", equipmentHandler.GetCatalog)
				r.Post("/", equipmentHandler.AddType)
				r.Get("/{typeID}", equipmentHandler.GetType)
			})

			r.Route("/instances", func(r chi.Router) {
				r.Get("/", equipmentHandler.ListAll)
				r.Post("/", equipmentHandler.AddInstance)
				r.Get("/{instanceID}", equipmentHandler.GetInstance)
				r.Delete("/{instanceID}", equipmentHandler.DeleteInstance)
				r.Post("/{instanceID}/maintenance", equipmentHandler.PerformMaintenance)
			})
		})

		r.Route("/shops", func(r chi.Router) {
			r.Get("/", shopHandler.ListAll)
			r.Post("/", shopHandler.Create)
			r.Get("/user/{username}", shopHandler.ListByUsername)

			r.Route("/{shopID}", func(r chi.Router) {
				r.Get("/", shopHandler.Get)
				r.Put("/", shopHandler.UpdateLayout)
				r.Delete("/", shopHandler.Delete)
				r.Patch("/dimensions", shopHandler.UpdateDimensions)

				r.Route("/equipment", func(r chi.Router) {
					r.Post("/", shopHandler.AddEquipment)
					r.Delete("/{equipmentID}", shopHandler.RemoveEquipment)
					r.Patch("/{equipmentID}/position", shopHandler.UpdateEquipmentPosition)
				})
			})
		})
	})

	r.Get("/ws", wsHandler.Handle)

	return r
}
