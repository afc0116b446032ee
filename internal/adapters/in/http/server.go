// Package http exposes the request and order lifecycle over a REST API.
// Handlers translate JSON payloads into commands and queries; all domain
// decisions stay in the application layer.
package http

import (
	"net/http"

	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// callerHeader carries the authenticated caller's ID. Authentication itself
// happens upstream at the API gateway.
const callerHeader = "X-Caller-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createRequest       commands.CreateRequestCommandHandler
	updateRequest       commands.UpdateRequestCommandHandler
	changeRequestStatus commands.ChangeRequestStatusCommandHandler
	cancelRequest       commands.CancelRequestCommandHandler

	createOrder       commands.CreateOrderCommandHandler
	updateOrder       commands.UpdateOrderCommandHandler
	changeOrderStatus commands.ChangeOrderStatusCommandHandler
	processPayment    commands.ProcessPaymentCommandHandler
	cancelOrder       commands.CancelOrderCommandHandler
	assignPartner     commands.AssignDeliveryPartnerCommandHandler
	generateInvoice   commands.GenerateInvoiceCommandHandler

	getRequests queries.GetRequestsQueryHandler
	getOrders   queries.GetOrdersQueryHandler
	getOrder    queries.GetOrderQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createRequest commands.CreateRequestCommandHandler,
	updateRequest commands.UpdateRequestCommandHandler,
	changeRequestStatus commands.ChangeRequestStatusCommandHandler,
	cancelRequest commands.CancelRequestCommandHandler,
	createOrder commands.CreateOrderCommandHandler,
	updateOrder commands.UpdateOrderCommandHandler,
	changeOrderStatus commands.ChangeOrderStatusCommandHandler,
	processPayment commands.ProcessPaymentCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	assignPartner commands.AssignDeliveryPartnerCommandHandler,
	generateInvoice commands.GenerateInvoiceCommandHandler,
	getRequests queries.GetRequestsQueryHandler,
	getOrders queries.GetOrdersQueryHandler,
	getOrder queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createRequest:       createRequest,
		updateRequest:       updateRequest,
		changeRequestStatus: changeRequestStatus,
		cancelRequest:       cancelRequest,
		createOrder:         createOrder,
		updateOrder:         updateOrder,
		changeOrderStatus:   changeOrderStatus,
		processPayment:      processPayment,
		cancelOrder:         cancelOrder,
		assignPartner:       assignPartner,
		generateInvoice:     generateInvoice,
		getRequests:         getRequests,
		getOrders:           getOrders,
		getOrder:            getOrder,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/requests", s.CreateRequest)
	api.GET("/requests", s.GetRequests)
	api.PATCH("/requests/:id", s.UpdateRequest)
	api.POST("/requests/:id/status", s.ChangeRequestStatus)
	api.POST("/requests/:id/cancel", s.CancelRequest)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/payment", s.ProcessPayment)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/delivery-partner", s.AssignDeliveryPartner)
	api.POST("/orders/:id/invoice", s.GenerateInvoice)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(ctx echo.Context) error {
	var body createRequestBody
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	patientID, err := kernel.UUIDFromString(body.PatientID)
	if err != nil {
		return respondError(ctx, err)
	}
	pharmacyID, err := kernel.UUIDFromString(body.PharmacyID)
	if err != nil {
		return respondError(ctx, err)
	}
	urgency, err := request.UrgencyFromString(body.Urgency)
	if err != nil {
		return respondError(ctx, err)
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(
		requestID, patientID, pharmacyID, body.MedicationName, body.Quantity,
		urgency, body.PrescriptionRequired, body.Notes, body.EstimatedAvailability,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": requestID.String()})
}

// UpdateRequest handles PATCH /api/v1/requests/:id.
func (s *Server) UpdateRequest(ctx echo.Context) error {
	requestID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body updateRequestBody
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	var urgency *request.Urgency
	if body.Urgency != nil {
		u, err := request.UrgencyFromString(*body.Urgency)
		if err != nil {
			return respondError(ctx, err)
		}
		urgency = &u
	}

	cmd, err := commands.NewUpdateRequestCommand(
		requestID, callerID, body.Quantity, urgency, body.Notes, body.PrescriptionImage,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeRequestStatus handles POST /api/v1/requests/:id/status.
// Pharmacies use it to accept, fulfill availability, or reject requests;
// cancellation has its own endpoint.
func (s *Server) ChangeRequestStatus(ctx echo.Context) error {
	requestID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body changeRequestStatusBody
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	newStatus, err := request.StatusFromString(body.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeRequestStatusCommand(
		requestID, callerID, newStatus, body.Notes, nil, body.EstimatedAvailability,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.changeRequestStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelRequest handles POST /api/v1/requests/:id/cancel.
func (s *Server) CancelRequest(ctx echo.Context) error {
	requestID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelRequestCommand(requestID, callerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetRequests handles GET /api/v1/requests.
func (s *Server) GetRequests(ctx echo.Context) error {
	scope, scopeID, err := requestScope(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var status *request.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := request.StatusFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		status = &parsed
	}

	var urgency *request.Urgency
	if raw := ctx.QueryParam("urgency"); raw != "" {
		parsed, err := request.UrgencyFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		urgency = &parsed
	}

	pagination, err := paginationFromQuery(ctx, queries.RequestSortColumns())
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetRequestsQuery(scope, scopeID, status, urgency, pagination)
	if err != nil {
		return respondError(ctx, err)
	}

	page, err := s.getRequests.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]requestSummaryResponse, len(page.Items))
	for i, summary := range page.Items {
		items[i] = toRequestSummaryResponse(summary)
	}

	return ctx.JSON(http.StatusOK, pageResponse[requestSummaryResponse]{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Pages: page.Pages,
	})
}

// CreateOrder handles POST /api/v1/orders. The caller is the patient
// converting one of their available requests into an order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	callerID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body createOrderBody
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	requestID, err := kernel.UUIDFromString(body.RequestID)
	if err != nil {
		return respondError(ctx, err)
	}

	address, err := addressFromBody(body.Address)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryFee, err := kernel.NewMoneyFromFloat(body.DeliveryFee)
	if err != nil {
		return respondError(ctx, err)
	}

	var method *order.PaymentMethod
	if body.PaymentMethod != nil {
		m, err := order.PaymentMethodFromString(*body.PaymentMethod)
		if err != nil {
			return respondError(ctx, err)
		}
		method = &m
	}

	items := make([]commands.OrderLine, 0, len(body.Items))
	for _, line := range body.Items {
		items = append(items, commands.OrderLine{
			MedicationName: line.MedicationName,
			Quantity:       line.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, requestID, callerID, items, address, deliveryFee, body.EstimatedDelivery, method,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// UpdateOrder handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body updateOrderBody
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	var address *order.Address
	if body.Address != nil {
		parsed, err := addressFromBody(*body.Address)
		if err != nil {
			return respondError(ctx, err)
		}
		address = &parsed
	}

	var deliveryFee *kernel.Money
	if body.DeliveryFee != nil {
		fee, err := kernel.NewMoneyFromFloat(*body.DeliveryFee)
		if err != nil {
			return respondError(ctx, err)
		}
		deliveryFee = &fee
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, callerID, address, deliveryFee, body.EstimatedDelivery)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body changeOrderStatusBody
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	newStatus, err := order.StatusFromString(body.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, callerID, newStatus, body.Location, body.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.changeOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProcessPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) ProcessPayment(ctx echo.Context) error {
	orderID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body processPaymentBody
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	method, err := order.PaymentMethodFromString(body.Method)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewProcessPaymentCommand(orderID, callerID, method)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.processPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body cancelOrderBody
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, callerID, body.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDeliveryPartner handles POST /api/v1/orders/:id/delivery-partner.
func (s *Server) AssignDeliveryPartner(ctx echo.Context) error {
	orderID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var body assignPartnerBody
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("body"))
	}

	partnerID, err := kernel.UUIDFromString(body.PartnerID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignDeliveryPartnerCommand(orderID, callerID, partnerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.assignPartner.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GenerateInvoice handles POST /api/v1/orders/:id/invoice. Repeated calls
// return the same reference.
func (s *Server) GenerateInvoice(ctx echo.Context) error {
	orderID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewGenerateInvoiceCommand(orderID, callerID)
	if err != nil {
		return respondError(ctx, err)
	}

	reference, err := s.generateInvoice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, invoiceResponse{InvoiceReference: reference})
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	scope, scopeID, err := orderScope(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		status = &parsed
	}

	var paymentStatus *order.PaymentStatus
	if raw := ctx.QueryParam("payment_status"); raw != "" {
		parsed, err := order.PaymentStatusFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		paymentStatus = &parsed
	}

	pagination, err := paginationFromQuery(ctx, queries.OrderSortColumns())
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrdersQuery(scope, scopeID, status, paymentStatus, pagination)
	if err != nil {
		return respondError(ctx, err)
	}

	page, err := s.getOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]orderSummaryResponse, len(page.Items))
	for i, summary := range page.Items {
		items[i] = toOrderSummaryResponse(summary)
	}

	return ctx.JSON(http.StatusOK, pageResponse[orderSummaryResponse]{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Pages: page.Pages,
	})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, callerID, err := pathIDAndCaller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, callerID)
	if err != nil {
		return respondError(ctx, err)
	}

	details, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetailsResponse(details))
}
