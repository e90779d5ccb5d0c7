package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/config"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/mercadopago"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/sheets"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/infra/worker"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.ValidateAPI(); err != nil {
		log.Fatalw("configuração inválida", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("falha ao conectar no banco", "error", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			log.Fatalw("falha ao aplicar migrations", "error", err)
		}
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
	if err != nil {
		log.Fatalw("falha ao conectar no RabbitMQ", "error", err)
	}
	defer rabbitMQ.Close()

	// 1. Repositórios e integrações
	leadRepo := database.NewLeadRepository(db)

	sheetClient, err := sheets.NewClient(ctx, cfg.GoogleCredentials)
	if err != nil {
		log.Fatalw("falha ao criar cliente do Google Sheets", "error", err)
	}

	gateway := mercadopago.NewClient(cfg.MercadoPagoToken, cfg.MercadoPagoBaseURL)
	producer := queue.NewProducer(rabbitMQ.Ch)

	// 2. UseCases
	syncUC := usecase.NewSyncLeadsUseCase(
		sheetClient, leadRepo, usecase.DefaultColumnMapping(),
		cfg.SpreadsheetID, cfg.SheetRange, log,
	)
	reconcileUC := usecase.NewReconcilePaymentUseCase(leadRepo, syncUC, log)
	processUC := usecase.NewProcessPaymentUseCase(reconcileUC, leadRepo, producer, log)
	createPaymentUC := usecase.NewCreatePaymentUseCase(gateway, cfg.NotificationURL, log)

	// 3. Workers
	notifier := buildNotifier(cfg, log)
	queueWorker := queue.NewWorker(rabbitMQ.Ch, notifier, log)
	go func() {
		if err := queueWorker.Start(ctx, queue.QueueName); err != nil {
			log.Errorw("worker da fila parou", "error", err)
		}
	}()

	syncWorker := worker.NewLeadSyncWorker(syncUC, cfg.SyncInterval, log)
	go syncWorker.Start(ctx)

	// 4. Handlers e router
	r := NewRouter(cfg, Handlers{
		Payment: handlers.NewPaymentHandler(createPaymentUC, processUC, log),
		Webhook: handlers.NewWebhookHandler(gateway, processUC, cfg.MercadoPagoWebhookSecret, log),
		Lead:    handlers.NewLeadHandler(syncUC, leadRepo, log),
		Health:  handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg.MercadoPagoToken != ""),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("servidor ligue-leads rodando", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("servidor HTTP caiu", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown forçado", "error", err)
	}
}

func buildNotifier(cfg *config.Config, log *zap.SugaredLogger) *mail.PaymentNotifier {
	notifier := &mail.PaymentNotifier{Log: log}

	if cfg.WhatsAppToken != "" && cfg.WhatsAppPhoneID != "" {
		wa := whatsapp.NewClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneID, cfg.WhatsAppBaseURL)
		notifier.WhatsApp = mail.NewWhatsAppSender(wa, cfg.WhatsAppTemplate)
	} else {
		log.Warnw("WhatsApp não configurado, notificações só por e-mail")
	}

	if cfg.MailEnabled() {
		notifier.Email = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	} else {
		log.Warnw("SMTP não configurado, e-mail de confirmação desligado")
	}

	return notifier
}
