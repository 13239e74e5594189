package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/justsurfingit/jobs-tracker/internal/config"
	"github.com/justsurfingit/jobs-tracker/internal/database"
	"github.com/justsurfingit/jobs-tracker/internal/storage"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// app is filled in by the root command before any subcommand runs.
type app struct {
	cfg   *config.Config
	db    *gorm.DB
	users *database.UserRepository
	jobs  *database.JobRepository
	blobs *storage.S3Store
	board *storage.PostingBoard
}

var deps app

var rootCmd = &cobra.Command{
	Use:   "jobctl",
	Short: "Operate the jobs tracker from the command line",
	Long: `jobctl runs migrations, prints application stats, exports them to CSV or XLSX,
drives the AI job agent and seeds the public posting board.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		awsCfg, err := storage.NewAWSConfig(cmd.Context(), cfg.AWSRegion, cfg.S3Endpoint != "" || cfg.DynamoEndpoint != "")
		if err != nil {
			return err
		}

		deps = app{
			cfg:   cfg,
			db:    db,
			users: database.NewUserRepository(db),
			jobs:  database.NewJobRepository(db),
			blobs: storage.NewS3Store(awsCfg, cfg.S3Bucket, cfg.S3PublicBaseURL, storage.WithS3Endpoint(cfg.S3Endpoint)),
			board: storage.NewPostingBoard(awsCfg, cfg.DynamoTableName, storage.WithDynamoEndpoint(cfg.DynamoEndpoint)),
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if deps.db == nil {
			return nil
		}
		sqlDB, err := deps.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	},
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootCmd.SetContext(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
