// Package http is the inbound adapter of the dispatch core: a JSON API that
// turns authenticated requests into commands and queries.
package http

import (
	"net/http"
	"strconv"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/feedback"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the use cases the API delivers events to.
type Handlers struct {
	CreateOrder  commands.CreateOrderCommandHandler
	RequestInput commands.RequestInputCommandHandler
	EditField    commands.EditFieldCommandHandler
	SubmitInput  commands.SubmitInputCommandHandler
	SetPayment   commands.SetPaymentCommandHandler
	CancelDraft  commands.CancelDraftCommandHandler
	Dispatch     commands.DispatchCommandHandler
	AssignDriver commands.AssignDriverCommandHandler
	Advance      *commands.DriverAdvanceCommandHandler
	Connect      commands.DriverConnectCommandHandler
	Disconnect   commands.DriverDisconnectCommandHandler
	Feedback     commands.FeedbackCommandHandler

	GetActiveOrders     queries.GetActiveOrdersQueryHandler
	GetRecentOrders     queries.GetRecentOrdersQueryHandler
	GetConnectedDrivers queries.GetConnectedDriversQueryHandler
	GetOrder            queries.GetOrderQueryHandler
	TrackOrder          queries.TrackOrderQueryHandler
}

// Server translates HTTP requests into the inbound events of the core.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// RegisterRoutes mounts the API on e.
//
// Routes:
//   - GET  /health, GET /metrics
//   - /api/v1/orders...      operator: drafts, dispatch, views
//   - /api/v1/driver...      driver: presence, transitions, feedback
//   - /api/v1/track/:number  customer: tracking
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string, operators []kernel.ActorID) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", Authenticate(jwtSecret))

	op := RequireRole(RoleOperator, operators)
	api.POST("/orders", s.CreateOrder, op)
	api.GET("/orders/active", s.GetActiveOrders, op)
	api.GET("/orders/recent", s.GetRecentOrders, op)
	api.GET("/orders/:number", s.GetOrder, op)
	api.DELETE("/orders/:number", s.CancelDraft, op)
	api.PUT("/orders/:number/fields/:field", s.EditField, op)
	api.POST("/orders/:number/fields/:field/request", s.RequestInput, op)
	api.PUT("/orders/:number/payment", s.SetPayment, op)
	api.GET("/orders/:number/candidates", s.Dispatch, op)
	api.POST("/orders/:number/assignment", s.AssignDriver, op)
	api.POST("/input", s.SubmitInput, op)
	api.GET("/drivers", s.GetConnectedDrivers, op)

	drv := api.Group("/driver", RequireRole(RoleDriver, nil))
	drv.PUT("/presence", s.Connect)
	drv.DELETE("/presence", s.Disconnect)
	drv.POST("/orders/:number/:transition", s.Advance)
	drv.POST("/feedback/rating", s.SubmitRating)
	drv.POST("/feedback/comment", s.SubmitComment)
	drv.POST("/feedback/skip", s.SkipComment)

	api.GET("/track/:number", s.TrackOrder, RequireRole(RoleCustomer, nil))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	p, _ := principalFrom(c)

	cmd, err := commands.NewCreateOrderCommand(p.ActorID)
	if err != nil {
		return writeError(c, err)
	}

	number, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateOrderResponse{Number: number.String()})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(c echo.Context) error {
	orders, err := s.h.GetActiveOrders.Handle(c.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetRecentOrders handles GET /api/v1/orders/recent?limit=N.
func (s *Server) GetRecentOrders(c echo.Context) error {
	var limit int
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, err)
		}
		limit = parsed
	}

	query, err := queries.NewGetRecentOrdersQuery(limit)
	if err != nil {
		return writeError(c, err)
	}

	orders, err := s.h.GetRecentOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrder handles GET /api/v1/orders/:number.
func (s *Server) GetOrder(c echo.Context) error {
	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetOrderQuery(number)
	if err != nil {
		return writeError(c, err)
	}

	snapshot, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(snapshot))
}

// CancelDraft handles DELETE /api/v1/orders/:number.
func (s *Server) CancelDraft(c echo.Context) error {
	p, _ := principalFrom(c)

	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCancelDraftCommand(p.ActorID, number)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.h.CancelDraft.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// EditField handles PUT /api/v1/orders/:number/fields/:field.
func (s *Server) EditField(c echo.Context) error {
	p, _ := principalFrom(c)

	var body FieldRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	number, field, err := numberAndField(c)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewEditFieldCommand(p.ActorID, number, field, body.Value)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.h.EditField.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestInput handles POST /api/v1/orders/:number/fields/:field/request.
func (s *Server) RequestInput(c echo.Context) error {
	p, _ := principalFrom(c)

	number, field, err := numberAndField(c)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRequestInputCommand(p.ActorID, number, field)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.h.RequestInput.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SubmitInput handles POST /api/v1/input.
func (s *Server) SubmitInput(c echo.Context) error {
	p, _ := principalFrom(c)

	var body InputRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewSubmitInputCommand(p.ActorID, body.Text)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.h.SubmitInput.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SubmitInputResponse{
		Number: result.OrderNumber.String(),
		Field:  result.Field.String(),
	})
}

// SetPayment handles PUT /api/v1/orders/:number/payment.
func (s *Server) SetPayment(c echo.Context) error {
	p, _ := principalFrom(c)

	var body PaymentRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	method, err := order.ParsePaymentMethod(body.Method)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewSetPaymentCommand(p.ActorID, number, method)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.h.SetPayment.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Dispatch handles GET /api/v1/orders/:number/candidates.
func (s *Server) Dispatch(c echo.Context) error {
	p, _ := principalFrom(c)

	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewDispatchCommand(p.ActorID, number)
	if err != nil {
		return writeError(c, err)
	}

	candidates, err := s.h.Dispatch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toDriverResponses(candidates))
}

// AssignDriver handles POST /api/v1/orders/:number/assignment.
func (s *Server) AssignDriver(c echo.Context) error {
	p, _ := principalFrom(c)

	var body AssignRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	driverID, err := kernel.NewActorID(body.DriverID)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewAssignDriverCommand(p.ActorID, number, driverID)
	if err != nil {
		return writeError(c, err)
	}

	snapshot, err := s.h.AssignDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(snapshot))
}

// GetConnectedDrivers handles GET /api/v1/drivers.
func (s *Server) GetConnectedDrivers(c echo.Context) error {
	drivers, err := s.h.GetConnectedDrivers.Handle(c.Request().Context(), queries.NewGetConnectedDriversQuery())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toDriverResponses(drivers))
}

// Connect handles PUT /api/v1/driver/presence.
func (s *Server) Connect(c echo.Context) error {
	p, _ := principalFrom(c)

	var body ConnectRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	name := body.Name
	if name == "" {
		name = p.Name
	}
	info, err := driver.NewInfo(p.ActorID, name)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewDriverConnectCommand(info)
	if err != nil {
		return writeError(c, err)
	}

	isNew, err := s.h.Connect.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ConnectResponse{IsNew: isNew})
}

// Disconnect handles DELETE /api/v1/driver/presence?reason=requested|left-group.
func (s *Server) Disconnect(c echo.Context) error {
	p, _ := principalFrom(c)

	reason, err := commands.ParseDisconnectReason(c.QueryParam("reason"))
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewDriverDisconnectCommand(p.ActorID, reason)
	if err != nil {
		return writeError(c, err)
	}

	removed, err := s.h.Disconnect.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DisconnectResponse{Removed: removed})
}

// Advance handles POST /api/v1/driver/orders/:number/:transition.
func (s *Server) Advance(c echo.Context) error {
	p, _ := principalFrom(c)

	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	transition, err := order.ParseTransition(c.Param("transition"))
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewDriverAdvanceCommand(p.ActorID, number, transition)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.h.Advance.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, AdvanceResponse{
		Order:          toOrderResponse(result.Snapshot),
		AlreadyInState: result.AlreadyInState,
	})
}

// SubmitRating handles POST /api/v1/driver/feedback/rating.
func (s *Server) SubmitRating(c echo.Context) error {
	p, _ := principalFrom(c)

	var body RatingRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	rating, err := feedback.NewRating(body.Stars)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewSubmitRatingCommand(p.ActorID, rating)
	if err != nil {
		return writeError(c, err)
	}

	number, err := s.h.Feedback.SubmitRating(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, FeedbackResponse{Number: number.String()})
}

// SubmitComment handles POST /api/v1/driver/feedback/comment.
func (s *Server) SubmitComment(c echo.Context) error {
	p, _ := principalFrom(c)

	var body CommentRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewSubmitCommentCommand(p.ActorID, body.Text)
	if err != nil {
		return writeError(c, err)
	}

	number, err := s.h.Feedback.SubmitComment(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, FeedbackResponse{Number: number.String()})
}

// SkipComment handles POST /api/v1/driver/feedback/skip.
func (s *Server) SkipComment(c echo.Context) error {
	p, _ := principalFrom(c)

	cmd, err := commands.NewSkipCommentCommand(p.ActorID)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.h.Feedback.SkipComment(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TrackOrder handles GET /api/v1/track/:number.
func (s *Server) TrackOrder(c echo.Context) error {
	p, _ := principalFrom(c)

	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewTrackOrderQuery(p.ActorID, number)
	if err != nil {
		return writeError(c, err)
	}

	tracking, err := s.h.TrackOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toTrackingResponse(tracking))
}

func numberAndField(c echo.Context) (kernel.OrderNumber, order.Field, error) {
	number, err := kernel.ParseOrderNumber(c.Param("number"))
	if err != nil {
		return kernel.OrderNumber{}, order.FieldUnknown, err
	}
	field, err := order.ParseField(c.Param("field"))
	if err != nil {
		return kernel.OrderNumber{}, order.FieldUnknown, err
	}
	return number, field, nil
}
