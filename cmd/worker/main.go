// cmd/worker/main.go
package main

import (
	"encoding/json"
	"errors"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/unclebandit/mailflow-backend/internal/config"
	"github.com/unclebandit/mailflow-backend/internal/db"
	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/logger"
	"github.com/unclebandit/mailflow-backend/internal/mailer"
	"github.com/unclebandit/mailflow-backend/internal/repository"
	"github.com/unclebandit/mailflow-backend/internal/service"
)

// dispatchJob is one trigger message: run a pass over one mailing. The
// queue never carries per-recipient work — each job is a full sequential
// pass in this process.
type dispatchJob struct {
	MailingID int `json:"mailing_id"`
}

func main() {
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

	amqpConn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer amqpConn.Close()

	ch, err := amqpConn.Channel()
	if err != nil {
		log.Fatal("failed to open a channel", zap.Error(err))
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"mailing_dispatch", // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		log.Fatal("failed to declare queue", zap.Error(err))
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("failed to register consumer", zap.Error(err))
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job dispatchJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Warn("invalid dispatch job", zap.Error(err))
				d.Ack(false)
				continue
			}

			result, err := dispatch.RunScheduled(job.MailingID)
			if err != nil {
				if isPermanent(err) {
					// Unknown or non-running mailing will not heal on retry.
					log.Warn("dispatch refused", zap.Int("mailing_id", job.MailingID), zap.Error(err))
					d.Ack(false)
					continue
				}
				if !d.Redelivered {
					log.Warn("dispatch failed, requeueing once",
						zap.Int("mailing_id", job.MailingID), zap.Error(err))
					d.Nack(false, true)
					continue
				}
				log.Error("dispatch failed after redelivery",
					zap.Int("mailing_id", job.MailingID), zap.Error(err))
				d.Ack(false)
				continue
			}

			log.Info("📩 mailing dispatched",
				zap.Int("mailing_id", result.MailingID),
				zap.Int("total_sent", result.TotalSent),
				zap.Int("successful", result.SuccessfulSends),
				zap.Int("failed", result.FailedSends),
			)
			d.Ack(false)
		}
	}()

	log.Info("Worker running, waiting for dispatch requests...")
	<-forever
}

func isPermanent(err error) bool {
	var notFound *appErrors.ErrMailingNotFound
	var notRunning *appErrors.ErrMailingNotRunning
	return errors.As(err, &notFound) || errors.As(err, &notRunning)
}
