package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"

	fieldwork "github.com/dangerclosesec/fieldwork"
	"github.com/dangerclosesec/fieldwork/internal/config"
	"github.com/dangerclosesec/fieldwork/internal/database"
	"github.com/dangerclosesec/fieldwork/internal/itinerary"
	"github.com/dangerclosesec/fieldwork/internal/migration"
	"github.com/dangerclosesec/fieldwork/internal/repository"
	"github.com/dangerclosesec/fieldwork/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(syncMeetingsCmd)
	rootCmd.AddCommand(itineraryCmd)
}

var rootCmd = &cobra.Command{
	Use:   "fieldctl",
	Short: "fieldctl is an operator tool for the fieldwork database",
	Long:  `fieldctl applies schema migrations and runs maintenance tasks against the configured fieldwork database.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelInfo
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending Postgres schema migrations",
	Long:  `Apply every embedded SQL migration newer than the recorded schema version.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cfg.Database.Driver != config.DriverPostgres {
			log.Fatalf("migrate requires the postgres driver, got %q", cfg.Database.Driver)
		}

		ctx := cmd.Context()
		db, err := migration.Open(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		files, err := fs.Sub(fieldwork.MigrationFS, "migrations")
		if err != nil {
			log.Fatalf("Failed to read migrations: %v", err)
		}

		applied, err := migration.NewMigrator(db, files).Up(ctx)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		if len(applied) == 0 {
			fmt.Println("Schema is up to date")
			return
		}
		for _, f := range applied {
			fmt.Printf("Applied %s\n", f.Name)
		}
	},
}

var syncMeetingsCmd = &cobra.Command{
	Use:   "sync-meetings [tripID]",
	Short: "Create missing meetings for scheduled outreach",
	Long:  `Create a meeting for every outreach on the trip marked meeting_scheduled that has none.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tripID := parseID(args[0])
		ctx := cmd.Context()
		store := openStore(ctx)

		activity := service.NewActivityLogService(store.ActivityLogs)
		created, err := service.NewMeetingService(store, activity, nil).SyncMeetings(ctx, tripID)
		if err != nil {
			log.Fatalf("Failed to sync meetings: %v", err)
		}

		fmt.Printf("Created %d meeting(s)\n", len(created))
		if verbose {
			for _, m := range created {
				fmt.Printf("  - %s %s %s\n", m.ScheduledDate, m.ScheduledTime, m.Title)
			}
		}
	},
}

var itineraryCmd = &cobra.Command{
	Use:   "itinerary [tripID]",
	Short: "Print a trip's day-by-day itinerary",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tripID := parseID(args[0])
		ctx := cmd.Context()
		store := openStore(ctx)

		activity := service.NewActivityLogService(store.ActivityLogs)
		it, err := service.NewTripService(store, activity).GetItinerary(ctx, tripID)
		if err != nil {
			log.Fatalf("Failed to build itinerary: %v", err)
		}
		if err := itinerary.Render(os.Stdout, it.Trip, it.Days); err != nil {
			log.Fatalf("Failed to print itinerary: %v", err)
		}
	},
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func openStore(ctx context.Context) *repository.Store {
	db, err := database.Open(ctx, loadConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return repository.NewStore(db)
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		log.Fatalf("Invalid id %q: %v", s, err)
	}
	return id
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
