// Command ticketadmin seeds a user account directly in the database,
// bypassing the HTTP API. Useful for bootstrapping a fresh deployment.
package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/Vvitsh/ticketstore/internal/server/auth"
	"github.com/Vvitsh/ticketstore/internal/server/models"
	"github.com/Vvitsh/ticketstore/internal/server/repositories/repomanager"
)

func main() {

	dsn := flag.String("d", "", "database DSN")
	username := flag.String("u", "", "username to create")
	flag.Parse()

	if *dsn == "" || *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Println("Repeat password")
	confirmation, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("%v", err)
	}

	if !bytes.Equal(password, confirmation) {
		log.Fatal("passwords do not match")
	}

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	user, err := m.Users(db).Create(ctx, &models.User{Username: *username, PasswordHash: hash})
	if err != nil {
		log.Fatalf("user create error: %v", err)
	}

	fmt.Printf("Created user %q (id=%d)\n", user.Username, user.ID)

}
