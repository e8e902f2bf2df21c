//cmd/seeder/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/unclebandit/mailflow-backend/internal/config"
	"github.com/unclebandit/mailflow-backend/internal/db"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	conn, err := db.Connect(cfg, zap.NewNop())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	sqlFiles := []string{
		"migrations/001_init.sql",
		"seed/users.sql",
		"seed/recipients.sql",
		"seed/messages.sql",
		"seed/mailings.sql",
	}

	for _, file := range sqlFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("failed to read %s: %v", file, err)
		}

		if _, err = conn.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute %s: %v", file, err)
		}
		fmt.Printf("Applied: %s\n", file)
	}

	fmt.Println("Database seeding completed successfully!")
}
