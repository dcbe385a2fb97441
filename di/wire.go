//go:build wireinject
// +build wireinject

package di

import (
	"cottage/config"
	"cottage/infras/jwt"
	"cottage/infras/otel"
	"cottage/infras/postgres"
	"cottage/infras/redis"
	"cottage/permissions"
	"cottage/shared/cache"
	"cottage/shared/ratelimit"
	"cottage/transport/http"
	"cottage/transport/http/middleware"
	"cottage/transport/http/router"

	blockdateRepository "cottage/internal/domains/blockdate/repository"
	blockdateService "cottage/internal/domains/blockdate/service"
	bookingRepository "cottage/internal/domains/booking/repository"
	bookingService "cottage/internal/domains/booking/service"
	roomRepository "cottage/internal/domains/room/repository"
	roomService "cottage/internal/domains/room/service"

	blockdateHandler "cottage/internal/handlers/blockdate"
	bookingHandler "cottage/internal/handlers/booking"
	roomHandler "cottage/internal/handlers/room"

	"github.com/google/wire"
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
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	ratelimit.NewFromConfig,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var blockdateDomain = wire.NewSet(
	blockdateRepository.New,
	blockdateService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	roomDomain,
	blockdateDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	blockdateHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
