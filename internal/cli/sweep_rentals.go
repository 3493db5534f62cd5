package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/rentals/internal/config"
	"github.com/mrlokans/rentals/internal/database"
	"github.com/mrlokans/rentals/internal/database/rentals"
)

// SweepRentalsCommand completes expired rentals once, without the server.
// Useful when the server has been down past several rental end dates.
type SweepRentalsCommand struct {
	DatabasePath string
	DryRun       bool
}

func NewSweepRentalsCommand() *SweepRentalsCommand {
	return &SweepRentalsCommand{}
}

func (cmd *SweepRentalsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sweep-rentals", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show how many rentals would be completed without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sweep-rentals [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Complete every pending rental whose end date has passed and return\n")
		fmt.Fprintf(os.Stderr, "the vehicles to the available pool.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SweepRentalsCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := rentals.NewRepository(db.DB)

	if cmd.DryRun {
		count, err := repo.CountExpired(time.Now())
		if err != nil {
			return fmt.Errorf("failed to count expired rentals: %w", err)
		}
		fmt.Printf("Dry run: %d rentals would be completed\n", count)
		return nil
	}

	completed, err := repo.CompleteExpired(time.Now())
	if err != nil {
		return fmt.Errorf("failed to sweep rentals: %w", err)
	}

	fmt.Printf("Completed %d expired rentals\n", completed)
	return nil
}
