// Package http exposes the REST surface of the coordinator on an echo
// router. Every handler follows the same shape: resolve the principal,
// translate the request into a command or query, and map domain error
// categories onto status codes.
package http

import (
	"net/http"
	"time"

	"quickdrop/internal/adapters/in/auth"
	"quickdrop/internal/core/application/services"
	"quickdrop/internal/core/application/usecases/commands"
	"quickdrop/internal/core/application/usecases/queries"
	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	claimOrderHandler     commands.ClaimOrderCommandHandler
	advanceOrderHandler   commands.AdvanceOrderCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	reportLocationHandler commands.ReportLocationCommandHandler

	// Query handlers
	getClaimableOrdersHandler queries.GetClaimableOrdersQueryHandler
	getPartnerOrdersHandler   queries.GetPartnerOrdersQueryHandler
	getOrderSummaryHandler    queries.GetOrderSummaryQueryHandler
	getDashboardStatsHandler  queries.GetDashboardStatsQueryHandler

	liveStatus *services.LiveStatusService
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	getClaimableOrdersHandler queries.GetClaimableOrdersQueryHandler,
	getPartnerOrdersHandler queries.GetPartnerOrdersQueryHandler,
	getOrderSummaryHandler queries.GetOrderSummaryQueryHandler,
	getDashboardStatsHandler queries.GetDashboardStatsQueryHandler,
	liveStatus *services.LiveStatusService,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		claimOrderHandler:         claimOrderHandler,
		advanceOrderHandler:       advanceOrderHandler,
		cancelOrderHandler:        cancelOrderHandler,
		reportLocationHandler:     reportLocationHandler,
		getClaimableOrdersHandler: getClaimableOrdersHandler,
		getPartnerOrdersHandler:   getPartnerOrdersHandler,
		getOrderSummaryHandler:    getOrderSummaryHandler,
		getDashboardStatsHandler:  getDashboardStatsHandler,
		liveStatus:                liveStatus,
	}
}

// RegisterRoutes attaches all REST endpoints to the router.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.POST("/orders/:orderID/claim", s.ClaimOrder)
	api.PUT("/orders/:orderID/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/location", s.ReportLocation)
	api.GET("/orders/:orderID/tracking", s.GetOrderTracking)
	api.GET("/partners/me/orders", s.GetPartnerOrders)
	api.GET("/admin/stats", s.GetDashboardStats)
}

// CreateOrder handles POST /api/v1/orders - a customer places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := auth.FromHeaders(ctx.Request().Header)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}
	if !actor.IsCustomer() {
		return errorMessage(ctx, http.StatusForbidden, "only customers place orders")
	}

	var req NewOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return errorMessage(ctx, http.StatusBadRequest, "invalid request body")
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, order.Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor.ID(), req.CustomerEmail, items, req.Total,
		order.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
			Phone:   req.Address.Phone,
		})
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(http.StatusCreated, NewOrderResponse{
		OrderID: orderID.String(),
		Status:  order.Placed.String(),
	})
}

// GetAvailableOrders handles GET /api/v1/orders/available - the partner feed
// of claimable orders.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	actor, err := auth.FromHeaders(ctx.Request().Header)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}
	if !actor.IsPartner() && !actor.IsAdmin() {
		return errorMessage(ctx, http.StatusForbidden, "partner role required")
	}

	orders, err := s.getClaimableOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetClaimableOrdersQuery())
	if err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	response := make([]AvailableOrder, len(orders))
	for i, o := range orders {
		response[i] = AvailableOrder{
			OrderID:       o.ID.String(),
			CustomerEmail: o.CustomerEmail,
			Total:         o.Total,
			Street:        o.Street,
			City:          o.City,
			PlacedAt:      o.PlacedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimOrder handles POST /api/v1/orders/:orderID/claim - a partner tries to
// win the order. Losers of the race get a 409.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	actor, err := auth.FromHeaders(ctx.Request().Header)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}
	if !actor.IsPartner() {
		return errorMessage(ctx, http.StatusForbidden, "partner role required")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, actor.ID())
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"orderId": orderID.String(),
		"status":  order.Accepted.String(),
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:orderID/status - the
// assigned partner advances the lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, err := auth.FromHeaders(ctx.Request().Header)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}
	if !actor.IsPartner() {
		return errorMessage(ctx, http.StatusForbidden, "partner role required")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return errorMessage(ctx, http.StatusBadRequest, "invalid request body")
	}

	requested, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, actor.ID(), requested)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"orderId": orderID.String(),
		"status":  requested.String(),
	})
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel - the owning
// customer or an admin cancels before pickup.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := auth.FromHeaders(ctx.Request().Header)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"orderId": orderID.String(),
		"status":  order.Cancelled.String(),
	})
}

// ReportLocation handles POST /api/v1/orders/:orderID/location - the
// assigned partner reports a courier position.
func (s *Server) ReportLocation(ctx echo.Context) error {
	actor, err := auth.FromHeaders(ctx.Request().Header)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}
	if !actor.IsPartner() {
		return errorMessage(ctx, http.StatusForbidden, "partner role required")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	var req ReportLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return errorMessage(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewReportLocationCommand(orderID, actor.ID(), req.Lat, req.Lng)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	if err = s.reportLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetOrderTracking handles GET /api/v1/orders/:orderID/tracking - the
// durable order state plus the cached courier position, for late joiners.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	actor, err := auth.FromHeaders(ctx.Request().Header)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	reqCtx := ctx.Request().Context()
	if err = s.liveStatus.Authorize(reqCtx, actor, ports.TopicOrder(orderID)); err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	query, err := queries.NewGetOrderSummaryQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	summary, err := s.getOrderSummaryHandler.Handle(reqCtx, query)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	response := TrackingResponse{
		OrderID:  summary.ID.String(),
		Status:   summary.Status,
		Timeline: buildTimeline(summary),
	}
	if summary.AssignedPartner != nil {
		partnerID := summary.AssignedPartner.String()
		response.AssignedPartner = &partnerID
	}
	if sample, ok := s.liveStatus.Last(orderID); ok {
		response.Location = &TrackingLocation{
			Lat:        sample.Lat(),
			Lng:        sample.Lng(),
			ObservedAt: sample.ObservedAt(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPartnerOrders handles GET /api/v1/partners/me/orders - the acting
// partner's active worklist.
func (s *Server) GetPartnerOrders(ctx echo.Context) error {
	actor, err := auth.FromHeaders(ctx.Request().Header)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}
	if !actor.IsPartner() {
		return errorMessage(ctx, http.StatusForbidden, "partner role required")
	}

	query, err := queries.NewGetPartnerOrdersQuery(actor.ID())
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err)
	}

	orders, err := s.getPartnerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	response := make([]PartnerOrder, len(orders))
	for i, o := range orders {
		response[i] = PartnerOrder{
			OrderID:       o.ID.String(),
			CustomerEmail: o.CustomerEmail,
			Total:         o.Total,
			Street:        o.Street,
			City:          o.City,
			Status:        o.Status,
			AcceptedAt:    o.AcceptedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDashboardStats handles GET /api/v1/admin/stats.
func (s *Server) GetDashboardStats(ctx echo.Context) error {
	actor, err := auth.FromHeaders(ctx.Request().Header)
	if err != nil {
		return errorJSON(ctx, http.StatusUnauthorized, err)
	}
	if !actor.IsAdmin() {
		return errorMessage(ctx, http.StatusForbidden, "admin role required")
	}

	stats, err := s.getDashboardStatsHandler.Handle(
		ctx.Request().Context(), queries.NewGetDashboardStatsQuery())
	if err != nil {
		return errorJSON(ctx, statusFor(err), err)
	}

	return ctx.JSON(http.StatusOK, DashboardStats{
		Total:     stats.Total,
		Claimable: stats.Claimable,
		Active:    stats.Active,
		Delivered: stats.Delivered,
		Cancelled: stats.Cancelled,
	})
}

func buildTimeline(summary queries.GetOrderSummaryQueryResponse) map[string]string {
	timeline := make(map[string]string)
	put := func(status order.Status, at *time.Time) {
		if at != nil {
			timeline[status.String()] = at.UTC().Format(time.RFC3339)
		}
	}

	put(order.Placed, summary.PlacedAt)
	put(order.Accepted, summary.AcceptedAt)
	put(order.PickedUp, summary.PickedUpAt)
	put(order.InTransit, summary.InTransitAt)
	put(order.Delivered, summary.DeliveredAt)
	put(order.Cancelled, summary.CancelledAt)

	return timeline
}

func errorJSON(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func errorMessage(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
