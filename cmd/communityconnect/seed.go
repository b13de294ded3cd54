package main

import (
	"context"
	"fmt"

	"communityconnect/internal/db"
	"communityconnect/internal/seed"
	"communityconnect/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial skills and roles",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		logrus.Info("Seeding skills...")
		if err := seed.SeedSkills(ctx, store.NewSkillRepository(pool)); err != nil {
			return fmt.Errorf("failed to seed skills: %w", err)
		}

		logrus.Info("Seeding roles...")
		if err := seed.SeedRoles(ctx, store.NewRoleRepository(pool)); err != nil {
			return fmt.Errorf("failed to seed roles: %w", err)
		}

		logrus.Info("Seed data applied")

		return nil
	},
}
