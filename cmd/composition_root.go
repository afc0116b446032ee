package cmd

import (
	"log/slog"
	"time"

	httpin "pharmacy/internal/adapters/in/http"
	"pharmacy/internal/adapters/out/notify"
	"pharmacy/internal/adapters/out/payment"
	"pharmacy/internal/adapters/out/postgres"
	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	gateway    ports.PaymentGateway
	notifier   ports.Notifier
	staleAfter time.Duration
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, staleAfter time.Duration, logger *slog.Logger) CompositionRoot {
	gateway := payment.NewHTTPGateway(payment.Config{
		BaseURL: cfg.PaymentGatewayURL,
		APIKey:  cfg.PaymentGatewayKey,
	})

	directory := notify.NewHTTPPatientDirectory(cfg.PatientDirectoryURL)
	channels := []ports.NotificationChannel{
		notify.NewEmailChannel(cfg.EmailServiceURL, cfg.EmailAPIKey, cfg.EmailSender),
		notify.NewSMSChannel(cfg.SMSServiceURL, cfg.SMSAPIKey, cfg.SMSSender),
		notify.NewWebhookChannel(cfg.WebhookURL, cfg.WebhookToken),
	}
	ops := ports.Contact{
		Name:  cfg.OpsContactName,
		Email: cfg.OpsContactEmail,
	}
	notifier := notify.NewDispatcher(directory, channels, ops, logger)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:    gateway,
		notifier:   notifier,
		staleAfter: staleAfter,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.requestUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateRequestCommandHandler() commands.UpdateRequestCommandHandler {
	return commands.NewUpdateRequestCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateChangeRequestStatusCommandHandler() commands.ChangeRequestStatusCommandHandler {
	return commands.NewChangeRequestStatusCommandHandler(c.requestUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelRequestCommandHandler() commands.CancelRequestCommandHandler {
	return commands.NewCancelRequestCommandHandler(c.requestUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.fullUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	return commands.NewProcessPaymentCommandHandler(c.orderUoWFactory(), c.gateway, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fullUoWFactory(), c.gateway, c.notifier)
}

func (c *CompositionRoot) CreateAssignDeliveryPartnerCommandHandler() commands.AssignDeliveryPartnerCommandHandler {
	return commands.NewAssignDeliveryPartnerCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() commands.GenerateInvoiceCommandHandler {
	return commands.NewGenerateInvoiceCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetRequestsQueryHandler() queries.GetRequestsQueryHandler {
	return queries.NewGetRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateRequestCommandHandler(),
		c.CreateUpdateRequestCommandHandler(),
		c.CreateChangeRequestStatusCommandHandler(),
		c.CreateCancelRequestCommandHandler(),
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateProcessPaymentCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateAssignDeliveryPartnerCommandHandler(),
		c.CreateGenerateInvoiceCommandHandler(),
		c.CreateGetRequestsQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(&c.uowFactory, c.notifier, c.staleAfter, c.logger)
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
