package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arbelos/inkwell/blog/application"
	"github.com/arbelos/inkwell/blog/persistence"
	"github.com/arbelos/inkwell/config"
	"github.com/arbelos/inkwell/internal/middleware"
	"github.com/arbelos/inkwell/internal/rest"
	"github.com/arbelos/inkwell/shared/db"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()
	client, database, err := db.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from database")
		}
	}()

	postRepo := persistence.NewMongoPostRepository(database, nil)
	authorRepo := persistence.NewMongoAuthorRepository(database, nil)
	categoryRepo := persistence.NewMongoCategoryRepository(database)

	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create post indexes")
	}
	if err := authorRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create author indexes")
	}
	if err := categoryRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create category indexes")
	}

	renderer := application.NewContentRenderer()
	postService := application.NewPostService(postRepo, authorRepo, categoryRepo, renderer, nil)
	authorService := application.NewAuthorService(authorRepo, nil)
	categoryService := application.NewCategoryService(categoryRepo, nil)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))

	rest.RegisterRoutes(router, postService, authorService, categoryService, cfg.Pagination.DefaultPageSize)

	srv := &http.Server{
		Addr:    cfg.App.Addr(),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
