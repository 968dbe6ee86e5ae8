//go:build wireinject
// +build wireinject

package di

import (
	"lodgehub/config"
	"lodgehub/infras/jwt"
	"lodgehub/infras/kafka"
	"lodgehub/infras/otel"
	"lodgehub/infras/postgres"
	"lodgehub/infras/redis"
	"lodgehub/infras/s3"
	"lodgehub/internal/events"
	"lodgehub/permissions"
	"lodgehub/shared/cache"
	"lodgehub/transport/http"
	"lodgehub/transport/http/middleware"
	"lodgehub/transport/http/router"

	"github.com/google/wire"

	authService "lodgehub/internal/domains/auth/service"
	bookingRepository "lodgehub/internal/domains/booking/repository"
	bookingService "lodgehub/internal/domains/booking/service"
	galleryRepository "lodgehub/internal/domains/gallery/repository"
	galleryService "lodgehub/internal/domains/gallery/service"
	lodgeRepository "lodgehub/internal/domains/lodge/repository"
	lodgeService "lodgehub/internal/domains/lodge/service"
	roomRepository "lodgehub/internal/domains/room/repository"
	roomService "lodgehub/internal/domains/room/service"
	userRepository "lodgehub/internal/domains/user/repository"
	userService "lodgehub/internal/domains/user/service"

	authHandler "lodgehub/internal/handlers/auth"
	bookingHandler "lodgehub/internal/handlers/booking"
	galleryHandler "lodgehub/internal/handlers/gallery"
	lodgeHandler "lodgehub/internal/handlers/lodge"
	roomHandler "lodgehub/internal/handlers/room"
	userHandler "lodgehub/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var lodgeDomain = wire.NewSet(
	lodgeRepository.New,
	lodgeService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var domains = wire.NewSet(
	authDomain,
	lodgeDomain,
	roomDomain,
	bookingDomain,
	galleryDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	lodgeHandler.New,
	roomHandler.New,
	userHandler.New,
	galleryHandler.New,
	router.New,
)

var eventing = wire.NewSet(
	events.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		eventing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
