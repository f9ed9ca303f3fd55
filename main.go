package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"social-publisher/infrastructure/cache"
	linkedinclient "social-publisher/infrastructure/clients/linkedin"
	twitterclient "social-publisher/infrastructure/clients/twitter"
	"social-publisher/infrastructure/configuration"
	"social-publisher/infrastructure/logger"
	"social-publisher/infrastructure/persistence"
	"social-publisher/infrastructure/secrets"
	httpHandler "social-publisher/interfaces/http"
	"social-publisher/server"
	"social-publisher/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence),
	// then re-read configuration since package init ran before this.
	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.Reload()

	app := configuration.C.App
	if app.SecretKey == "" {
		logger.GetLogger().Error("JWT_SECRET is not set; tokens and stored credentials cannot be protected")
		os.Exit(1)
	}

	mongoClient, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to MongoDB")
		os.Exit(1)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB ping failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")

	db := mongoClient.Database(configuration.C.Database.Mongo.Name)
	if err := persistence.EnsureIndexes(ctx, db); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while ensuring indexes")
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - OAuth state will be in-memory only")
		redisClient = nil
	}
	stateStore := cache.NewStateStore(redisClient)

	cipher, err := secrets.NewCipher(app.SecretKey)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot initialize credential cipher")
		os.Exit(1)
	}

	userRepository := persistence.NewUserRepository(db)
	credentialsRepository := persistence.NewCredentialsRepository(db)
	postRepository := persistence.NewPostRepository(db)

	linkedinClient := linkedinclient.NewClient(&linkedinclient.Config{
		ClientID:                    configuration.C.OAuth.LinkedIn.ClientID,
		ClientSecret:                configuration.C.OAuth.LinkedIn.ClientSecret,
		RedirectURL:                 configuration.C.OAuth.LinkedIn.RedirectURI,
		AssumeValidOnAmbiguousError: true,
	})
	twitterClient := twitterclient.NewClient(nil)

	userUsecase := usecase.NewUserUsecase(userRepository, app.SecretKey)
	credentialsUsecase := usecase.NewCredentialsUsecase(credentialsRepository, cipher)
	postUsecase := usecase.NewPostUsecase(postRepository)
	publishUsecase := usecase.NewPublishUsecase(credentialsUsecase, postRepository, linkedinClient, twitterClient, linkedinClient)

	healthHandler := httpHandler.NewHealthHandler(mongoClient)
	userHandler := httpHandler.NewUserHandler(userUsecase)
	credentialsHandler := httpHandler.NewCredentialsHandler(credentialsUsecase, stateStore)
	postHandler := httpHandler.NewPostHandler(postUsecase)
	publishHandler := httpHandler.NewPublishHandler(publishUsecase)
	linkedinAuthHandler := httpHandler.NewLinkedInAuthHandler(linkedinClient, userRepository, stateStore, app.SecretKey)

	router := server.InitiateRouter(
		healthHandler,
		userHandler,
		credentialsHandler,
		postHandler,
		publishHandler,
		linkedinAuthHandler,
		app.FrontendURL,
		app.SecretKey,
	)

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
		} else {
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Error while disconnecting MongoDB")
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
