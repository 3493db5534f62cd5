// Package cli implements the administrative subcommands that run outside the
// HTTP server.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/rentals/internal/auth"
	"github.com/mrlokans/rentals/internal/config"
	"github.com/mrlokans/rentals/internal/database"
	"github.com/mrlokans/rentals/internal/database/users"
	"github.com/mrlokans/rentals/internal/entities"
)

// CreateAdminCommand creates an administrator account from the command line.
type CreateAdminCommand struct {
	Username     string
	Password     string
	Email        string
	DatabasePath string
	BcryptCost   int
}

func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{}
}

func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username for the new administrator (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new administrator (required, min 8 characters)")
	fs.StringVar(&cmd.Email, "email", "", "Email for the new administrator")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 12, "bcrypt cost factor for the password hash")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin -username <name> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an administrator account for the rental service.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s create-admin -username fleet-admin -password 'a-long-password'\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}

	return nil
}

func (cmd *CreateAdminCommand) Run() error {
	passwordHash, err := auth.HashPassword(cmd.Password, cmd.BcryptCost)
	if err != nil {
		return err
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := users.NewRepository(db.DB)
	admin, err := repo.CreateUser(&entities.User{
		Username:     cmd.Username,
		PasswordHash: passwordHash,
		Email:        cmd.Email,
		IsAdmin:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Printf("Created administrator %q (id=%d)\n", admin.Username, admin.ID)
	return nil
}
