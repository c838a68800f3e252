package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/exera-hr/jobdesk/backend/internal/ai"
	"github.com/exera-hr/jobdesk/backend/internal/config"
	"github.com/exera-hr/jobdesk/backend/internal/domain"
	"github.com/exera-hr/jobdesk/backend/internal/handler"
	"github.com/exera-hr/jobdesk/backend/internal/platform"
	"github.com/exera-hr/jobdesk/backend/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the network, an explicit ping does.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	if err := repo.RunMigrations(context.Background()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		return
	}

	// The system needs at least one IT Admin to manage everyone else.
	hasAdmin, err := repo.HasAdminUser()
	if err != nil {
		logger.Error("failed to check for admin user", "error", err)
		return
	}
	if !hasAdmin {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash initial admin password", "error", err)
			return
		}
		initialAdmin := &domain.User{
			Username:     cfg.InitialAdmin.Username,
			PasswordHash: string(passwordHash),
			Email:        cfg.InitialAdmin.Email,
			Role:         domain.RoleITAdmin,
		}
		if err := repo.CreateUser(initialAdmin); err != nil {
			var pgErr *pgconn.PgError
			switch {
			case errors.As(err, &pgErr) && (pgErr.ConstraintName == "users_username_key" || pgErr.ConstraintName == "users_email_key"):
				// A concurrent instance already created the admin.
			default:
				logger.Error("failed to create initial admin", "error", err)
				return
			}
		} else {
			logger.Info("initial admin created", "email", cfg.InitialAdmin.Email)
		}
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open rabbitmq channel", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"notification_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to declare queue", "error", err)
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	aiClient := ai.NewClient(
		cfg.Gemini.APIKey,
		cfg.Gemini.BiasModel,
		cfg.Gemini.AutoCompleteModel,
		time.Duration(cfg.Gemini.RequestTimeout)*time.Second,
	)

	publisher := platform.NewPublisher(
		platform.NewLinkedInPoster(
			cfg.LinkedIn.BaseURL,
			cfg.LinkedIn.AccessToken,
			cfg.LinkedIn.OrganizationID,
			time.Duration(cfg.LinkedIn.RequestTimeout)*time.Second,
		),
		platform.NewIndeedPoster(
			cfg.Indeed.BaseURL,
			cfg.Indeed.APIKey,
			time.Duration(cfg.Indeed.RequestTimeout)*time.Second,
		),
	)

	handler, err := handler.NewHandler(cfg, repo, ch, rdb, aiClient, publisher)
	if err != nil {
		logger.Error("failed to create handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down server", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
