package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
	"commerce/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the order API. It coordinates between
// HTTP handlers and application use cases; orders are addressed by their
// customer-facing number in every route.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	addLineItemHandler     commands.AddLineItemCommandHandler
	addPaymentHandler      commands.AddPaymentCommandHandler
	advanceCheckoutHandler commands.AdvanceCheckoutCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	resumeOrderHandler     commands.ResumeOrderCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getIncompleteOrdersHandler queries.GetIncompleteOrdersQueryHandler

	contract *openapi3.T
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The contract is published on /openapi.json.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addLineItemHandler commands.AddLineItemCommandHandler,
	addPaymentHandler commands.AddPaymentCommandHandler,
	advanceCheckoutHandler commands.AdvanceCheckoutCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	resumeOrderHandler commands.ResumeOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getIncompleteOrdersHandler queries.GetIncompleteOrdersQueryHandler,
	contract *openapi3.T,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		addLineItemHandler:         addLineItemHandler,
		addPaymentHandler:          addPaymentHandler,
		advanceCheckoutHandler:     advanceCheckoutHandler,
		cancelOrderHandler:         cancelOrderHandler,
		resumeOrderHandler:         resumeOrderHandler,
		getOrderHandler:            getOrderHandler,
		getIncompleteOrdersHandler: getIncompleteOrdersHandler,
		contract:                   contract,
	}
}

// LoadContract reads the OpenAPI contract and validates it, so a malformed
// contract fails startup instead of serving broken documentation.
func LoadContract(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	return doc, nil
}

// RegisterRoutes attaches every order route to the echo instance. The static
// /incomplete segment is registered alongside /:number; echo prefers the
// static match.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.GET("/api/v1/orders/incomplete", s.GetIncompleteOrders)
	e.GET("/api/v1/orders/:number", s.GetOrder)
	e.POST("/api/v1/orders/:number/line-items", s.AddLineItem)
	e.POST("/api/v1/orders/:number/payments", s.AddPayment)
	e.POST("/api/v1/orders/:number/advance", s.AdvanceCheckout)
	e.POST("/api/v1/orders/:number/cancel", s.CancelOrder)
	e.POST("/api/v1/orders/:number/resume", s.ResumeOrder)
	e.GET("/openapi.json", s.GetContract)
}

// CreateOrder handles POST /api/v1/orders - opens a new cart for a customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, req.Email)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeError(ctx, handleErr)
	}

	return s.respondWithOrderByID(ctx, http.StatusCreated, orderID)
}

// AddLineItem handles POST /api/v1/orders/:number/line-items - puts quantity
// units of a variant into an open cart.
func (s *Server) AddLineItem(ctx echo.Context) error {
	var req AddLineItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	found, err := s.resolveOrder(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	variantID, err := kernel.UUIDFromString(req.VariantID)
	if err != nil {
		return badRequest(ctx, "Invalid variant id")
	}
	price, err := kernel.NewMoneyFromString(req.Price)
	if err != nil {
		return badRequest(ctx, "Invalid price")
	}

	cmd, err := commands.NewAddLineItemCommand(found.ID, kernel.NewUUID(), variantID, price, req.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid line item data: "+err.Error())
	}

	if handleErr := s.addLineItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AddPayment handles POST /api/v1/orders/:number/payments - promises money
// against the order from a named source.
func (s *Server) AddPayment(ctx echo.Context) error {
	var req AddPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	found, err := s.resolveOrder(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	amount, err := kernel.NewMoneyFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid amount")
	}

	cmd, err := commands.NewAddPaymentCommand(found.ID, kernel.NewUUID(), amount, req.Source)
	if err != nil {
		return badRequest(ctx, "Invalid payment data: "+err.Error())
	}

	if handleErr := s.addPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AdvanceCheckout handles POST /api/v1/orders/:number/advance - moves the
// order one step along the checkout path. Billing and shipping addresses may
// ride along with the request, both or neither.
func (s *Server) AdvanceCheckout(ctx echo.Context) error {
	var req AdvanceCheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	found, err := s.resolveOrder(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := advanceCommandFromRequest(found.ID, req)
	if err != nil {
		return badRequest(ctx, "Invalid checkout data: "+err.Error())
	}

	handleErr := s.advanceCheckoutHandler.Handle(ctx.Request().Context(), cmd)
	var postErr *order.PostTransitionError
	if handleErr != nil && !errors.As(handleErr, &postErr) {
		return s.writeError(ctx, handleErr)
	}
	if postErr != nil {
		// The step committed; report the hook failure and serve the new state.
		ctx.Logger().Errorf("post-transition hook failed for order %s: %v", found.Number, postErr)
	}

	return s.respondWithOrderByID(ctx, http.StatusOK, found.ID)
}

// CancelOrder handles POST /api/v1/orders/:number/cancel. Canceling an order
// that cannot be canceled is accepted and leaves it untouched.
func (s *Server) CancelOrder(ctx echo.Context) error {
	found, err := s.resolveOrder(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(found.ID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeError(ctx, handleErr)
	}

	return s.respondWithOrderByID(ctx, http.StatusOK, found.ID)
}

// ResumeOrder handles POST /api/v1/orders/:number/resume - brings a canceled
// order back to its pre-cancellation position.
func (s *Server) ResumeOrder(ctx echo.Context) error {
	found, err := s.resolveOrder(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewResumeOrderCommand(found.ID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	if handleErr := s.resumeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeError(ctx, handleErr)
	}

	return s.respondWithOrderByID(ctx, http.StatusOK, found.ID)
}

// GetOrder handles GET /api/v1/orders/:number - the full order read model.
func (s *Server) GetOrder(ctx echo.Context) error {
	found, err := s.resolveOrder(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromReadModel(found))
}

// GetIncompleteOrders handles GET /api/v1/orders/incomplete - every order
// that is neither completed nor canceled.
func (s *Server) GetIncompleteOrders(ctx echo.Context) error {
	query := queries.NewGetIncompleteOrdersQuery()

	orders, err := s.getIncompleteOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]IncompleteOrder, len(orders))
	for i, o := range orders {
		response[i] = IncompleteOrder{
			ID:     o.ID.String(),
			Number: o.Number.String(),
			State:  o.State.String(),
			Total:  o.Total.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetContract handles GET /openapi.json - serves the validated contract.
func (s *Server) GetContract(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.contract)
}

// resolveOrder looks the order read model up by the :number path parameter.
func (s *Server) resolveOrder(ctx echo.Context) (queries.GetOrderQueryResponse, error) {
	number, err := kernel.OrderNumberFromString(ctx.Param("number"))
	if err != nil {
		return queries.GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("number", ctx.Param("number"), err)
	}

	query, err := queries.NewGetOrderQueryByNumber(number)
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}

	return s.getOrderHandler.Handle(ctx.Request().Context(), query)
}

func (s *Server) respondWithOrderByID(ctx echo.Context, status int, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(status, orderFromReadModel(found))
}

// writeError maps application errors to HTTP statuses: missing orders to
// 404, declined payments to 402, rejected lifecycle moves to 422, storage
// version conflicts to 409, anything else to 500.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var notFoundErr *errs.ObjectNotFoundError
	var versionErr *errs.VersionIsInvalidError

	switch {
	case errors.As(err, &notFoundErr):
		return writeStatus(ctx, http.StatusNotFound, "Order not found")
	case errors.Is(err, order.ErrPaymentDeclined):
		return writeStatus(ctx, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, commands.ErrOrderCannotAdvance),
		errors.Is(err, commands.ErrOrderNotResumable),
		errors.Is(err, services.ErrShippingUnavailable):
		return writeStatus(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &versionErr):
		return writeStatus(ctx, http.StatusConflict, "Order was modified concurrently")
	default:
		return writeStatus(ctx, http.StatusInternalServerError, "Internal error")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return writeStatus(ctx, http.StatusBadRequest, message)
}

func writeStatus(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func advanceCommandFromRequest(orderID kernel.UUID, req AdvanceCheckoutRequest) (commands.AdvanceCheckoutCommand, error) {
	if req.BillAddress == nil && req.ShipAddress == nil {
		return commands.NewAdvanceCheckoutCommand(orderID)
	}
	if req.BillAddress == nil || req.ShipAddress == nil {
		return commands.AdvanceCheckoutCommand{}, commands.ErrAddressesAreIncomplete
	}

	bill, err := addressFromRequest(*req.BillAddress)
	if err != nil {
		return commands.AdvanceCheckoutCommand{}, err
	}
	ship, err := addressFromRequest(*req.ShipAddress)
	if err != nil {
		return commands.AdvanceCheckoutCommand{}, err
	}

	return commands.NewAdvanceCheckoutCommandWithAddresses(orderID, bill, ship)
}

func addressFromRequest(a Address) (kernel.Address, error) {
	return kernel.NewAddress(a.FirstName, a.LastName, a.Street, a.City, a.Region, a.PostalCode, a.Country)
}

func orderFromReadModel(found queries.GetOrderQueryResponse) Order {
	lineItems := make([]LineItem, len(found.LineItems))
	for i, li := range found.LineItems {
		lineItems[i] = LineItem{
			ID:        li.ID.String(),
			VariantID: li.VariantID.String(),
			Price:     li.Price.String(),
			Quantity:  li.Quantity,
		}
	}

	return Order{
		ID:              found.ID.String(),
		Number:          found.Number.String(),
		Email:           found.Email,
		State:           found.State.String(),
		PaymentState:    found.PaymentState.String(),
		ShipmentState:   found.ShipmentState.String(),
		ItemTotal:       found.ItemTotal.String(),
		AdjustmentTotal: found.AdjustmentTotal.String(),
		PaymentTotal:    found.PaymentTotal.String(),
		Total:           found.Total.String(),
		CompletedAt:     found.CompletedAt,
		LineItems:       lineItems,
	}
}

// Order is the wire form of the order read model.
type Order struct {
	ID              string     `json:"id"`
	Number          string     `json:"number"`
	Email           string     `json:"email"`
	State           string     `json:"state"`
	PaymentState    string     `json:"payment_state"`
	ShipmentState   string     `json:"shipment_state"`
	ItemTotal       string     `json:"item_total"`
	AdjustmentTotal string     `json:"adjustment_total"`
	PaymentTotal    string     `json:"payment_total"`
	Total           string     `json:"total"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	LineItems       []LineItem `json:"line_items"`
}

// LineItem is one purchased variant within the wire order.
type LineItem struct {
	ID        string `json:"id"`
	VariantID string `json:"variant_id"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

// IncompleteOrder is one in-progress order in the incomplete listing.
type IncompleteOrder struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	State  string `json:"state"`
	Total  string `json:"total"`
}

// Error is the wire form of a failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest opens a cart for the given customer email.
type CreateOrderRequest struct {
	Email string `json:"email"`
}

// AddLineItemRequest puts quantity units of a variant into the cart.
type AddLineItemRequest struct {
	VariantID string `json:"variant_id"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

// AddPaymentRequest promises money against the order from a named source.
type AddPaymentRequest struct {
	Amount string `json:"amount"`
	Source string `json:"source"`
}

// AdvanceCheckoutRequest moves the order one checkout step forward,
// optionally recording both addresses first.
type AdvanceCheckoutRequest struct {
	BillAddress *Address `json:"bill_address,omitempty"`
	ShipAddress *Address `json:"ship_address,omitempty"`
}

// Address is the wire form of a billing or shipping address.
type Address struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
