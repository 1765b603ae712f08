package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/config"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/infra/database"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/infra/repository"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/present/rest"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/present/rest/middleware"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/service"
	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if conf.Server.EnableTrace {
		shutdown, err := setupTraceProvider(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to setup tracing", "error", err)
			os.Exit(1)
		}
		defer shutdown()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}
	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	var cache repository.DocumentCache
	switch {
	case conf.Server.RedisAddr != "":
		cache = repository.NewRedisCache(database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB))
	case conf.Server.MemcachedAddr != "":
		cache = repository.NewMemcachedCache(database.NewMemcached(conf.Server.MemcachedAddr))
	}

	domainConf := conf.Domain()

	repo := repository.NewCollectionRepository(db, cache)
	presentation := usecase.NewPresentationUsecase(repo, domainConf)

	auth, err := service.NewAuthService(domainConf)
	if err != nil {
		slog.Error("failed to setup auth service", "error", err)
		os.Exit(1)
	}
	sessions := service.NewSessionService()

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("iiif-server"))
	}
	e.Use(middleware.NewAuthMiddleware(auth, sessions, domainConf).IdentifySubject)

	handler := rest.NewHandler(domainConf, presentation, auth, sessions)
	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTraceProvider(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("iiif-server"),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error("failed to shutdown trace provider", "error", err)
		}
	}, nil
}
