package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
	"github.com/polkiloo/papermill/internal/server/http/dto"
)

// RuleHandler serves the pricing rule catalog.
type RuleHandler struct {
	facade RuleFacade
}

// NewRuleHandler constructs RuleHandler.
func NewRuleHandler(facade RuleFacade) *RuleHandler {
	return &RuleHandler{facade: facade}
}

// Active handles GET /api/pricing/rules?category=.
func (h *RuleHandler) Active(c *gin.Context) {
	category := model.RuleCategory(c.Query("category"))
	if category == "" {
		writeError(c, domainErrors.NewValidationError("category", "is required"))
		return
	}

	rules, err := h.facade.ActivePricingRules(c.Request.Context(), category)
	h.respondList(c, rules, err)
}

// List handles GET /api/admin/pricing-rules?category=.
func (h *RuleHandler) List(c *gin.Context) {
	var category *model.RuleCategory
	if raw := c.Query("category"); raw != "" {
		cat := model.RuleCategory(raw)
		category = &cat
	}

	rules, err := h.facade.PricingRules(c.Request.Context(), category)
	h.respondList(c, rules, err)
}

// Get handles GET /api/admin/pricing-rules/:id.
func (h *RuleHandler) Get(c *gin.Context) {
	id, ok := ruleID(c)
	if !ok {
		return
	}

	rule, err := h.facade.PricingRule(c.Request.Context(), id)
	h.respond(c, http.StatusOK, rule, err)
}

// Create handles POST /api/admin/pricing-rules.
func (h *RuleHandler) Create(c *gin.Context) {
	var req dto.RuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.facade.CreatePricingRule(c.Request.Context(), toRule(req))
	h.respond(c, http.StatusCreated, rule, err)
}

// Update handles PUT /api/admin/pricing-rules/:id.
func (h *RuleHandler) Update(c *gin.Context) {
	id, ok := ruleID(c)
	if !ok {
		return
	}
	var req dto.RuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.facade.UpdatePricingRule(c.Request.Context(), id, toRule(req))
	h.respond(c, http.StatusOK, rule, err)
}

// Delete handles DELETE /api/admin/pricing-rules/:id.
func (h *RuleHandler) Delete(c *gin.Context) {
	id, ok := ruleID(c)
	if !ok {
		return
	}

	if err := h.facade.DeletePricingRule(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAll handles DELETE /api/admin/pricing-rules.
func (h *RuleHandler) DeleteAll(c *gin.Context) {
	if err := h.facade.DeleteAllPricingRules(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Seed handles POST /api/admin/pricing-rules/seed.
func (h *RuleHandler) Seed(c *gin.Context) {
	rules, err := h.facade.SeedPricingRules(c.Request.Context())
	h.respondList(c, rules, err)
}

func (h *RuleHandler) respond(c *gin.Context, status int, rule *model.PricingRule, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, toRuleResponse(*rule))
}

func (h *RuleHandler) respondList(c *gin.Context, rules []model.PricingRule, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.RuleResponse, 0, len(rules))
	for _, r := range rules {
		response = append(response, toRuleResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

func ruleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, domainErrors.ErrNotFound)
		return 0, false
	}
	return id, true
}

func toRule(req dto.RuleRequest) model.PricingRule {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return model.PricingRule{
		Name:         req.Name,
		Category:     model.RuleCategory(req.Category),
		AppliesTo:    req.AppliesTo,
		Multiplier:   req.Multiplier,
		BasePrice:    req.BasePrice,
		Priority:     req.Priority,
		IsActive:     active,
		DisplayOrder: req.DisplayOrder,
		DisplayName:  req.DisplayName,
		Description:  req.Description,
	}
}

func toRuleResponse(rule model.PricingRule) dto.RuleResponse {
	return dto.RuleResponse{
		ID:           rule.ID,
		Name:         rule.Name,
		Category:     string(rule.Category),
		AppliesTo:    rule.AppliesTo,
		Multiplier:   rule.Multiplier,
		BasePrice:    rule.BasePrice,
		Priority:     rule.Priority,
		IsActive:     rule.IsActive,
		DisplayOrder: rule.DisplayOrder,
		DisplayName:  rule.DisplayName,
		Description:  rule.Description,
		CreatedAt:    rule.CreatedAt,
		UpdatedAt:    rule.UpdatedAt,
	}
}
