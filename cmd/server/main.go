// cmd/server/main.go
package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/unclebandit/mailflow-backend/internal/config"
	"github.com/unclebandit/mailflow-backend/internal/controller"
	"github.com/unclebandit/mailflow-backend/internal/db"
	"github.com/unclebandit/mailflow-backend/internal/logger"
	"github.com/unclebandit/mailflow-backend/internal/mailer"
	"github.com/unclebandit/mailflow-backend/internal/middleware"
	"github.com/unclebandit/mailflow-backend/internal/repository"
	"github.com/unclebandit/mailflow-backend/internal/service"
	"github.com/unclebandit/mailflow-backend/internal/token"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Development, cfg.LogFile)
	defer log.Sync()

	conn, err := db.Connect(cfg, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer conn.Close()

	recipientRepo := &repository.RecipientRepository{DB: conn}
	messageRepo := &repository.MessageRepository{DB: conn}
	mailingRepo := &repository.MailingRepository{DB: conn}
	attemptRepo := &repository.SendAttemptRepository{DB: conn}
	userRepo := &repository.UserRepository{DB: conn}

	tokens := token.NewManager(cfg.JWTSecret, "mailflow", 24*time.Hour, time.Hour)
	transport := mailer.FromConfig(cfg)

	dispatchService := &service.DispatchService{
		MailingRepo:   mailingRepo,
		MessageRepo:   messageRepo,
		RecipientRepo: recipientRepo,
		AttemptRepo:   attemptRepo,
		Transport:     transport,
		FromAddress:   cfg.FromAddress,
		Log:           log,
	}
	mailingService := &service.MailingService{
		MailingRepo: mailingRepo,
		MessageRepo: messageRepo,
		AttemptRepo: attemptRepo,
	}
	recipientService := &service.RecipientService{RecipientRepo: recipientRepo}
	messageService := &service.MessageService{MessageRepo: messageRepo}
	statsService := &service.StatsService{
		MailingRepo:   mailingRepo,
		RecipientRepo: recipientRepo,
		AttemptRepo:   attemptRepo,
	}
	userService := &service.UserService{
		UserRepo:    userRepo,
		Tokens:      tokens,
		Transport:   transport,
		FromAddress: cfg.FromAddress,
		BaseURL:     cfg.BaseURL,
		Log:         log,
	}

	mailingController := &controller.MailingController{
		MailingService:  mailingService,
		DispatchService: dispatchService,
	}
	recipientController := &controller.RecipientController{RecipientService: recipientService}
	messageController := &controller.MessageController{MessageService: messageService}
	authController := &controller.AuthController{UserService: userService}
	adminController := &controller.AdminController{UserService: userService}
	statsController := &controller.StatsController{StatsService: statsService}

	auth := &middleware.Auth{Tokens: tokens, UserRepo: userRepo}

	r := chi.NewRouter()

	// Account lifecycle (public)
	r.Post("/auth/register", authController.Register)
	r.Get("/auth/activate/{token}", authController.Activate)
	r.Post("/auth/login", authController.Login)
	r.Post("/auth/password-reset", authController.RequestPasswordReset)
	r.Post("/auth/password-reset/confirm", authController.ConfirmPasswordReset)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Get("/profile", authController.GetProfile)
		r.Put("/profile", authController.UpdateProfile)
		r.Get("/stats", statsController.HomeStats)

		r.Post("/recipients", recipientController.CreateRecipient)
		r.Get("/recipients", recipientController.ListRecipients)
		r.Get("/recipients/{id}", recipientController.GetRecipient)
		r.Put("/recipients/{id}", recipientController.UpdateRecipient)
		r.Delete("/recipients/{id}", recipientController.DeleteRecipient)

		r.Post("/messages", messageController.CreateMessage)
		r.Get("/messages", messageController.ListMessages)
		r.Get("/messages/{id}", messageController.GetMessage)
		r.Put("/messages/{id}", messageController.UpdateMessage)
		r.Delete("/messages/{id}", messageController.DeleteMessage)

		r.Post("/mailings", mailingController.CreateMailing)
		r.Get("/mailings", mailingController.ListMailings)
		r.Get("/mailings/{id}", mailingController.GetMailing)
		r.Put("/mailings/{id}", mailingController.UpdateMailing)
		r.Delete("/mailings/{id}", mailingController.DeleteMailing)
		r.Post("/mailings/{id}/send", mailingController.SendMailing)
		r.Get("/mailings/{id}/attempts", mailingController.ListAttempts)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireManager)
			r.Get("/users", adminController.ListUsers)
			r.Post("/users/{id}/block", adminController.BlockUser)
			r.Post("/users/{id}/unblock", adminController.UnblockUser)
		})
	})

	log.Info("🚀 Server running", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
