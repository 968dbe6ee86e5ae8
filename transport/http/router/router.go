package router

import (
	"github.com/go-chi/chi/v5"

	"lodgehub/internal/handlers/auth"
	"lodgehub/internal/handlers/booking"
	"lodgehub/internal/handlers/gallery"
	"lodgehub/internal/handlers/lodge"
	"lodgehub/internal/handlers/room"
	"lodgehub/internal/handlers/user"
	"lodgehub/transport/http/middleware"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Booking booking.Handler
	Lodge   lodge.Handler
	Room    room.Handler
	Staff   user.Handler
	Gallery gallery.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.RateLimit())

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)

		// The gallery shares the /lodges group so image routes nest under a lodge.
		routerGroup.Route("/lodges", func(lodgeGroup chi.Router) {
			r.DomainHandlers.Lodge.Router(lodgeGroup)
			r.DomainHandlers.Gallery.Router(lodgeGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthRole:       authRole,
	}
}
