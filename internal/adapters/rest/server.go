package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/saurav73/GrihaMate/internal/core/domain"
	core_port "github.com/saurav73/GrihaMate/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	authHandler *AuthHandler,
	propertyHandler *PropertyHandler,
	requestHandler *RequestHandler,
	roomRequestHandler *RoomRequestHandler,
	paymentHandler *PaymentHandler,
	adminHandler *AdminHandler,
	authMW *AuthMiddleware,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные роуты
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/properties", propertyHandler.Search)
		r.Get("/properties/{propertyID}", propertyHandler.GetByID)

		// Шлюз редиректит сюда после оплаты, токена у него нет
		r.Get("/payments/esewa/callback", paymentHandler.EsewaCallback)
		r.Post("/payments/esewa/callback", paymentHandler.EsewaCallback)

		// Роуты, требующие аутентификации
		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Post("/payments/esewa/initiate", paymentHandler.InitiateEsewa)
			r.Post("/payments/card", paymentHandler.ProcessCard)

			// landlord
			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireRole(domain.RoleLandlord))
				r.Post("/properties", propertyHandler.Create)
				r.Put("/properties/{propertyID}", propertyHandler.Update)
				r.Delete("/properties/{propertyID}", propertyHandler.Delete)
				r.Patch("/properties/{propertyID}/status", propertyHandler.UpdateStatus)
				r.Get("/landlord/properties", propertyHandler.ListMine)
				r.Get("/landlord/requests", requestHandler.ListForLandlord)
				r.Patch("/requests/{requestID}/status", requestHandler.UpdateStatus)
			})

			// seeker
			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireRole(domain.RoleSeeker))
				r.Post("/properties/{propertyID}/requests", requestHandler.Create)
				r.Get("/properties/{propertyID}/requests/mine", requestHandler.GetMineForProperty)
				r.Get("/seeker/requests", requestHandler.ListForSeeker)
				r.Delete("/seeker/requests/rejected", requestHandler.PurgeRejected)
				r.Delete("/requests/{requestID}", requestHandler.Delete)

				r.Post("/room-requests", roomRequestHandler.Create)
				r.Get("/room-requests", roomRequestHandler.ListMine)
				r.Put("/room-requests/{requestID}", roomRequestHandler.Update)
				r.Delete("/room-requests/{requestID}", roomRequestHandler.Delete)

				r.Post("/subscriptions", roomRequestHandler.Subscribe)
				r.Get("/subscriptions", roomRequestHandler.ListSubscriptions)
				r.Delete("/subscriptions/{subscriptionID}", roomRequestHandler.Unsubscribe)
			})

			// admin
			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireRole(domain.RoleAdmin))
				r.Patch("/admin/users/{userID}/verification", adminHandler.ReviewUserVerification)
				r.Patch("/admin/properties/{propertyID}/verification", adminHandler.ReviewPropertyVerification)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
