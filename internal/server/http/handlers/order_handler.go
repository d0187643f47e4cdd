package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
	"github.com/polkiloo/papermill/internal/server/http/dto"
)

const maxListLimit = 100

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Quote handles POST /api/pricing/quote.
func (h *OrderHandler) Quote(c *gin.Context) {
	var draft model.OrderDraft
	if !bindJSON(c, &draft) {
		return
	}

	quote, err := h.facade.QuotePrice(c.Request.Context(), draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var draft model.OrderDraft
	if !bindJSON(c, &draft) {
		return
	}

	actor := CurrentActor(c)
	order, err := h.facade.CreateOrder(c.Request.Context(), actor, draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order, actor.IsAdmin()))
}

// List handles GET /api/orders?status=&limit=&offset=.
func (h *OrderHandler) List(c *gin.Context) {
	actor := CurrentActor(c)
	filter, err := parseOrderFilter(c, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), actor, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o, actor.IsAdmin()))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	actor := CurrentActor(c)
	order, err := h.facade.Order(c.Request.Context(), actor, c.Param("id"))
	h.respond(c, actor, order, err)
}

// Update handles PATCH /api/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	var req dto.OrderUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := CurrentActor(c)
	order, err := h.facade.UpdateOrder(c.Request.Context(), actor, c.Param("id"), toOrderUpdate(req))
	h.respond(c, actor, order, err)
}

// Transition handles POST /api/orders/:id/status.
func (h *OrderHandler) Transition(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := CurrentActor(c)
	order, err := h.facade.TransitionStatus(c.Request.Context(), actor, c.Param("id"), model.OrderStatus(req.Status), req.Note)
	h.respond(c, actor, order, err)
}

// Cancel handles POST /api/orders/:id/cancel. The body is optional.
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req dto.CancelRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	actor := CurrentActor(c)
	order, err := h.facade.CancelOrder(c.Request.Context(), actor, c.Param("id"), req.Reason)
	h.respond(c, actor, order, err)
}

// Instructions handles PUT /api/orders/:id/instructions.
func (h *OrderHandler) Instructions(c *gin.Context) {
	var req dto.InstructionsRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := CurrentActor(c)
	order, err := h.facade.UpdateInstructions(c.Request.Context(), actor, c.Param("id"), req.AdditionalInstructions)
	h.respond(c, actor, order, err)
}

// Review handles POST /api/orders/:id/review.
func (h *OrderHandler) Review(c *gin.Context) {
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := CurrentActor(c)
	order, err := h.facade.SubmitReview(c.Request.Context(), actor, c.Param("id"), req.Rating, req.Review)
	h.respond(c, actor, order, err)
}

// AdminUpdate handles PATCH /api/admin/orders/:id.
func (h *OrderHandler) AdminUpdate(c *gin.Context) {
	var req dto.OrderUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.AdditionalInstructions != nil {
		writeError(c, domainErrors.NewValidationError("additionalInstructions", "cannot be set by an administrator"))
		return
	}

	actor := CurrentActor(c)
	order, err := h.facade.UpdateAdminFields(c.Request.Context(), actor, c.Param("id"), toOrderUpdate(req))
	h.respond(c, actor, order, err)
}

func (h *OrderHandler) respond(c *gin.Context, actor model.Actor, order *model.Order, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order, actor.IsAdmin()))
}

func parseOrderFilter(c *gin.Context, actor model.Actor) (model.OrderFilter, error) {
	verr := &domainErrors.ValidationError{}
	var filter model.OrderFilter

	if raw := c.Query("status"); raw != "" {
		status := model.OrderStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			verr.Add("limit", "must be between 1 and "+strconv.Itoa(maxListLimit))
		}
		filter.Limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			verr.Add("offset", "must be a non-negative integer")
		}
		filter.Offset = n
	}
	if raw := c.Query("requesterId"); raw != "" && actor.IsAdmin() {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			verr.Add("requesterId", "must be an integer")
		}
		filter.RequesterID = &id
	}
	return filter, verr.OrNil()
}

func toOrderUpdate(req dto.OrderUpdateRequest) model.OrderUpdate {
	upd := model.OrderUpdate{
		Note:                   req.Note,
		AdditionalInstructions: req.AdditionalInstructions,
		AdminNotes:             req.AdminNotes,
		Progress:               req.Progress,
	}
	if req.Status != nil {
		status := model.OrderStatus(*req.Status)
		upd.Status = &status
	}
	return upd
}

func toOrderResponse(order model.Order, admin bool) dto.OrderResponse {
	history := make([]dto.StatusChangeResponse, 0, len(order.StatusHistory))
	for _, h := range order.StatusHistory {
		history = append(history, dto.StatusChangeResponse{Status: string(h.Status), Timestamp: h.Timestamp, Note: h.Note})
	}

	resp := dto.OrderResponse{
		ID:                     order.ID,
		OrderNumber:            order.OrderNumber,
		RequesterID:            order.RequesterID,
		EducationLevel:         string(order.EducationLevel),
		TaskType:               string(order.TaskType),
		Subject:                order.Subject,
		Title:                  order.Title,
		Description:            order.Description,
		AdditionalInstructions: order.AdditionalInstructions,
		PageCount:              order.PageCount,
		ComplexityLevel:        string(order.ComplexityLevel),
		CitationStyle:          string(order.CitationStyle),
		Deadline:               order.Deadline,
		Urgency:                string(order.Urgency),
		BasePrice:              order.BasePrice,
		TotalPrice:             order.TotalPrice,
		Currency:               order.Currency,
		Status:                 string(order.Status),
		StatusHistory:          history,
		Progress:               order.Progress,
		Rating:                 order.Rating,
		Review:                 order.Review,
		ReviewedAt:             order.ReviewedAt,
		CreatedAt:              order.CreatedAt,
		UpdatedAt:              order.UpdatedAt,
	}
	if admin {
		resp.AdminNotes = order.AdminNotes
	}
	return resp
}

func toQuoteResponse(quote *model.PriceQuote) dto.QuoteResponse {
	steps := make([]dto.MultiplierResponse, 0, len(quote.Multipliers))
	for _, m := range quote.Multipliers {
		steps = append(steps, dto.MultiplierResponse{
			Category:   string(m.Category),
			AppliesTo:  m.AppliesTo,
			RuleName:   m.RuleName,
			Multiplier: m.Multiplier,
		})
	}
	return dto.QuoteResponse{
		Urgency:          string(quote.Urgency),
		BasePricePerPage: quote.BasePricePerPage,
		PageCount:        quote.PageCount,
		BasePrice:        quote.BasePrice,
		Multipliers:      steps,
		TotalPrice:       quote.TotalPrice,
		Currency:         quote.Currency,
	}
}
