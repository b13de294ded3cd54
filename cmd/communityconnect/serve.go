package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"communityconnect/internal/db"
	"communityconnect/internal/server"
	"communityconnect/internal/service"
	"communityconnect/internal/storage"
	"communityconnect/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	volunteerRepo := store.NewVolunteerRepository(pool)
	organisationRepo := store.NewOrganisationRepository(pool)
	eventRepo := store.NewEventRepository(pool)
	skillRepo := store.NewSkillRepository(pool)
	roleRepo := store.NewRoleRepository(pool)
	signupRepo := store.NewSignupRepository(pool)

	// Media uploads are optional; without a bucket the photo/logo
	// endpoint reports uploads as unconfigured.
	var media storage.MediaStore
	if config.MediaBucketName != "" {
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}
		media = storage.NewS3Store(s3.NewFromConfig(awsConfig), config.MediaBucketName)
	}

	srv, err := server.New(
		config,
		logger,
		service.NewAuthService(volunteerRepo, organisationRepo, logger),
		service.NewProfileService(volunteerRepo, organisationRepo, logger),
		service.NewEventService(eventRepo, skillRepo, logger),
		service.NewSignupService(signupRepo, eventRepo, roleRepo, logger),
		service.NewSkillService(skillRepo, logger),
		roleRepo,
		media,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
