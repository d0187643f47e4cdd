package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
)

const ruleColumns = `id, name, category, applies_to, multiplier, base_price, priority, is_active,
       display_order, display_name, description, created_at, updated_at`

type ruleRepository struct {
	storage *Storage
}

func (r *ruleRepository) FindActive(ctx context.Context, category model.RuleCategory, appliesTo string) (*model.PricingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules
        WHERE category=$1 AND applies_to=$2 AND is_active
        ORDER BY priority DESC, id LIMIT 1`
	return r.findOptional(ctx, query, category, appliesTo)
}

func (r *ruleRepository) FindActiveByName(ctx context.Context, name string) (*model.PricingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules WHERE name=$1 AND is_active`
	return r.findOptional(ctx, query, name)
}

func (r *ruleRepository) findOptional(ctx context.Context, query string, args ...any) (*model.PricingRule, error) {
	rule, err := scanRule(r.storage.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *ruleRepository) ListActiveByCategory(ctx context.Context, category model.RuleCategory) ([]model.PricingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules
        WHERE category=$1 AND is_active
        ORDER BY priority DESC, display_order, id`
	return r.list(ctx, query, category)
}

func (r *ruleRepository) List(ctx context.Context) ([]model.PricingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules ORDER BY category, display_order, id`
	return r.list(ctx, query)
}

func (r *ruleRepository) list(ctx context.Context, query string, args ...any) ([]model.PricingRule, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.PricingRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ruleRepository) GetByID(ctx context.Context, id int64) (*model.PricingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules WHERE id=$1`
	rule, err := scanRule(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return rule, nil
}

func (r *ruleRepository) Upsert(ctx context.Context, rule *model.PricingRule) error {
	if rule.ID == 0 {
		return insertRule(ctx, r.storage.pool, rule)
	}

	const query = `UPDATE pricing_rules SET name=$2, category=$3, applies_to=$4, multiplier=$5, base_price=$6,
            priority=$7, is_active=$8, display_order=$9, display_name=$10, description=$11, updated_at=NOW()
        WHERE id=$1
        RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		rule.ID, rule.Name, rule.Category, rule.AppliesTo, rule.Multiplier, rule.BasePrice,
		rule.Priority, rule.IsActive, rule.DisplayOrder, rule.DisplayName, rule.Description,
	).Scan(&rule.CreatedAt, &rule.UpdatedAt)
	return translate(err)
}

func (r *ruleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM pricing_rules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *ruleRepository) DeleteAll(ctx context.Context) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM pricing_rules`)
	return err
}

// ReplaceAll swaps the catalog atomically; readers never observe a partial set.
func (r *ruleRepository) ReplaceAll(ctx context.Context, rules []model.PricingRule) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM pricing_rules`); err != nil {
			return err
		}
		for i := range rules {
			if err := insertRule(ctx, tx, &rules[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertRule(ctx context.Context, q querier, rule *model.PricingRule) error {
	const query = `INSERT INTO pricing_rules (name, category, applies_to, multiplier, base_price, priority,
            is_active, display_order, display_name, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`
	err := q.QueryRow(ctx, query,
		rule.Name, rule.Category, rule.AppliesTo, rule.Multiplier, rule.BasePrice, rule.Priority,
		rule.IsActive, rule.DisplayOrder, rule.DisplayName, rule.Description,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	return translate(err)
}

func scanRule(row pgx.Row) (*model.PricingRule, error) {
	var rule model.PricingRule
	err := row.Scan(
		&rule.ID, &rule.Name, &rule.Category, &rule.AppliesTo, &rule.Multiplier, &rule.BasePrice, &rule.Priority,
		&rule.IsActive, &rule.DisplayOrder, &rule.DisplayName, &rule.Description, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
