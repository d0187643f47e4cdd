package test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in memory with the same uniqueness and
// version semantics as the PostgreSQL repository.
type OrderRepositoryStub struct {
	CreateFn func(context.Context, *model.Order) error
	UpdateFn func(context.Context, *model.Order) error
	Err      error

	// Attempts records every order number passed to Create.
	Attempts []string
	Updates  int

	mu     sync.Mutex
	orders map[string]*model.Order
	nextID int
}

// NewOrderRepositoryStub constructs an empty in-memory repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{orders: make(map[string]*model.Order)}
}

// Create assigns an ID and stores the order unless its number is taken.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Attempts = append(s.Attempts, order.OrderNumber)
	if s.Err != nil {
		return s.Err
	}
	if s.CreateFn != nil {
		if err := s.CreateFn(ctx, order); err != nil {
			return err
		}
	}
	if s.orders == nil {
		s.orders = make(map[string]*model.Order)
	}
	for _, existing := range s.orders {
		if existing.OrderNumber == order.OrderNumber {
			return domainErrors.ErrAlreadyExists
		}
	}
	s.nextID++
	order.ID = fmt.Sprintf("order-%d", s.nextID)
	order.Version = 1
	s.orders[order.ID] = CloneOrder(order)
	return nil
}

// Put stores order as is, replacing any order with the same ID.
func (s *OrderRepositoryStub) Put(order *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orders == nil {
		s.orders = make(map[string]*model.Order)
	}
	s.orders[order.ID] = CloneOrder(order)
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return CloneOrder(order), nil
}

// List filters, sorts newest first and paginates stored orders.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if filter.RequesterID != nil && o.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		result = append(result, *CloneOrder(o))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if filter.Offset >= len(result) {
		return []model.Order{}, nil
	}
	result = result[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Update writes order when its version matches the stored one.
func (s *OrderRepositoryStub) Update(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.UpdateFn != nil {
		if err := s.UpdateFn(ctx, order); err != nil {
			return err
		}
	}
	stored, ok := s.orders[order.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if stored.Version != order.Version {
		return domainErrors.ErrConflict
	}
	order.Version++
	s.orders[order.ID] = CloneOrder(order)
	s.Updates++
	return nil
}

// Len returns the number of stored orders.
func (s *OrderRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// CloneOrder deep copies order so callers never share slices or pointers with the store.
func CloneOrder(order *model.Order) *model.Order {
	c := *order
	c.StatusHistory = append([]model.StatusChange(nil), order.StatusHistory...)
	if order.Rating != nil {
		r := *order.Rating
		c.Rating = &r
	}
	if order.ReviewedAt != nil {
		t := *order.ReviewedAt
		c.ReviewedAt = &t
	}
	return &c
}

// RuleRepositoryStub keeps pricing rules in memory.
type RuleRepositoryStub struct {
	Err error
	// Lookups counts FindActive and FindActiveByName calls.
	Lookups int

	mu     sync.Mutex
	rules  []model.PricingRule
	nextID int64
}

// NewRuleRepositoryStub constructs repository pre-populated with rules.
func NewRuleRepositoryStub(rules ...model.PricingRule) *RuleRepositoryStub {
	s := &RuleRepositoryStub{}
	_ = s.ReplaceAll(context.Background(), rules)
	return s
}

// FindActive returns the highest priority active rule for the pair or nil.
func (s *RuleRepositoryStub) FindActive(ctx context.Context, category model.RuleCategory, appliesTo string) (*model.PricingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lookups++
	if s.Err != nil {
		return nil, s.Err
	}
	var best *model.PricingRule
	for i := range s.rules {
		r := &s.rules[i]
		if !r.IsActive || r.Category != category || r.AppliesTo != appliesTo {
			continue
		}
		if best == nil || r.Priority > best.Priority {
			best = r
		}
	}
	if best == nil {
		return nil, nil
	}
	found := *best
	return &found, nil
}

// FindActiveByName returns the active rule named name or nil.
func (s *RuleRepositoryStub) FindActiveByName(ctx context.Context, name string) (*model.PricingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lookups++
	if s.Err != nil {
		return nil, s.Err
	}
	for _, r := range s.rules {
		if r.Name == name && r.IsActive {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

// ListActiveByCategory returns active rules ordered by priority then display order.
func (s *RuleRepositoryStub) ListActiveByCategory(ctx context.Context, category model.RuleCategory) ([]model.PricingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.PricingRule
	for _, r := range s.rules {
		if r.IsActive && r.Category == category {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority > result[j].Priority
		}
		return result[i].DisplayOrder < result[j].DisplayOrder
	})
	return result, nil
}

// List returns every rule ordered by id.
func (s *RuleRepositoryStub) List(ctx context.Context) ([]model.PricingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.PricingRule{}, s.rules...), nil
}

// GetByID returns the rule or not found.
func (s *RuleRepositoryStub) GetByID(ctx context.Context, id int64) (*model.PricingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, r := range s.rules {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Upsert inserts a rule with zero id or replaces the rule with the same id.
func (s *RuleRepositoryStub) Upsert(ctx context.Context, rule *model.PricingRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	return s.upsertLocked(rule)
}

func (s *RuleRepositoryStub) upsertLocked(rule *model.PricingRule) error {
	for _, r := range s.rules {
		if r.Name == rule.Name && r.ID != rule.ID {
			return domainErrors.ErrAlreadyExists
		}
	}
	if rule.ID == 0 {
		s.nextID++
		rule.ID = s.nextID
		s.rules = append(s.rules, *rule)
		return nil
	}
	for i := range s.rules {
		if s.rules[i].ID == rule.ID {
			s.rules[i] = *rule
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Delete removes the rule or returns not found.
func (s *RuleRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// DeleteAll empties the store.
func (s *RuleRepositoryStub) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.rules = nil
	return nil
}

// ReplaceAll swaps the whole rule set.
func (s *RuleRepositoryStub) ReplaceAll(ctx context.Context, rules []model.PricingRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.rules = nil
	for _, r := range rules {
		r.ID = 0
		if err := s.upsertLocked(&r); err != nil {
			return err
		}
	}
	return nil
}
