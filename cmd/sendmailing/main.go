// cmd/sendmailing/main.go
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/unclebandit/mailflow-backend/internal/config"
	"github.com/unclebandit/mailflow-backend/internal/db"
	"github.com/unclebandit/mailflow-backend/internal/logger"
	"github.com/unclebandit/mailflow-backend/internal/mailer"
	"github.com/unclebandit/mailflow-backend/internal/repository"
	"github.com/unclebandit/mailflow-backend/internal/service"
)

// Operator trigger: send one running mailing by ID. Refuses mailings that
// are not currently running.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: sendmailing <mailing-id>")
		os.Exit(2)
	}
	mailingID, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid mailing id: %s\n", os.Args[1])
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.New(cfg.Development, cfg.LogFile)
	defer log.Sync()

	conn, err := db.Connect(cfg, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer conn.Close()

	dispatch := &service.DispatchService{
		MailingRepo:   &repository.MailingRepository{DB: conn},
		MessageRepo:   &repository.MessageRepository{DB: conn},
		RecipientRepo: &repository.RecipientRepository{DB: conn},
		AttemptRepo:   &repository.SendAttemptRepository{DB: conn},
		Transport:     mailer.FromConfig(cfg),
		FromAddress:   cfg.FromAddress,
		Log:           log,
	}

	result, err := dispatch.RunScheduled(mailingID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("mailing %d sent: total %d, successful %d, failed %d\n",
		result.MailingID, result.TotalSent, result.SuccessfulSends, result.FailedSends)
}
