package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/crewplan/crewplan/db"
	"github.com/crewplan/crewplan/internal/config"
	"github.com/crewplan/crewplan/internal/db"
	"github.com/crewplan/crewplan/internal/repository/sqlite"
	"github.com/crewplan/crewplan/pkg/models"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// db_init applies migrations and seeds, and optionally provisions one user
// account. Accounts (boss accounts in particular) are created here, not
// through the HTTP surface.
func main() {
	var (
		name     = flag.String("name", "", "Name of a user to create")
		email    = flag.String("email", "", "Email of a user to create")
		password = flag.String("password", "", "Password of a user to create")
		role     = flag.String("role", models.RoleEmployee, "Role of a user to create (employee or boss)")
	)
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	// run migrations and seed using internal/db.Migrate
	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	if *email != "" {
		if *role != models.RoleEmployee && *role != models.RoleBoss {
			fmt.Fprintf(os.Stderr, "Invalid role %q\n", *role)
			os.Exit(1)
		}
		var hash string
		if *password != "" {
			h, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Hash error: %v\n", err)
				os.Exit(1)
			}
			hash = string(h)
		}

		repo := sqlite.New(database)
		id, err := repo.CreateUser(ctx, &models.User{
			Name:         *name,
			Email:        *email,
			Role:         *role,
			PasswordHash: hash,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Create user error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created %s user %d (%s)\n", *role, id, *email)
	}

	fmt.Println("Database initialized successfully.")
}
