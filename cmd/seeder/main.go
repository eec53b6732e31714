package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"ems/inner/common"
	"ems/inner/database"
	"ems/inner/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	EnvFile   string
	Employees int
	Truncate  bool
}

var ropts rootOptions

var rootCmd = &cobra.Command{
	Use:   "seeder [flags]",
	Short: "Fill the database with demo departments, managers, employees and an admin user.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&ropts.EnvFile, "env", "e", ".env", "Path to the .env file")
	rootCmd.Flags().IntVarP(&ropts.Employees, "employees", "n", 50, "Number of employees to create")
	rootCmd.Flags().BoolVarP(&ropts.Truncate, "truncate", "t", false, "Truncate employee and department tables first")
}

func run(ctx context.Context) error {
	cfg := common.GetConfig(ropts.EnvFile)
	logger := common.NewLogger(cfg)
	defer func() { _ = logger.Sync() }()

	db, err := database.ConnectDbWithCfg(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	summary, err := seed.NewSeeder(db, logger).Run(ctx, seed.Options{
		Employees: ropts.Employees,
		Truncate:  ropts.Truncate,
	})
	if err != nil {
		logger.Error("seeding failed", zap.Error(err))
		return err
	}

	logger.Info("seeding finished",
		zap.Int("departments", summary.Departments),
		zap.Int("managers", summary.Managers),
		zap.Int("employees", summary.Employees),
		zap.Int("skipped", summary.Skipped),
		zap.Bool("admin_created", summary.AdminCreated))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error executing command: %s", err)
	}
}
