// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"signup-bonus-tracker/internal/domain"
	"signup-bonus-tracker/internal/storage"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// sanitizeString очищает строку от невидимых и проблемных символов
func sanitizeString(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		// NO-BREAK SPACE и прочие пробельные → обычный пробел
		if unicode.IsSpace(r) {
			result = append(result, ' ')
		} else if unicode.IsPrint(r) {
			result = append(result, r)
		}
	}
	return strings.Join(strings.Fields(string(result)), " ")
}

// === CurrencyStorage ===

func (s *Storage) ListCurrencies(ctx context.Context) ([]domain.RewardCurrency, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, code, currency_type, base_value_cents::float8
		FROM reward_currencies
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.RewardCurrency
	for rows.Next() {
		var c domain.RewardCurrency
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CurrencyType, &c.BaseValueCents); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

func (s *Storage) ListUserOverrides(ctx context.Context, userID string) ([]domain.CurrencyValueOverride, error) {
	rows, err := s.db.Query(ctx, `
		SELECT currency_id, value_cents::float8
		FROM user_currency_values
		WHERE user_id = $1::uuid
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query overrides: %w", err)
	}
	defer rows.Close()

	var overrides []domain.CurrencyValueOverride
	for rows.Next() {
		o := domain.CurrencyValueOverride{UserID: userID}
		if err := rows.Scan(&o.CurrencyID, &o.ValueCents); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

func (s *Storage) UpsertUserOverride(ctx context.Context, o domain.CurrencyValueOverride) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_currency_values (user_id, currency_id, value_cents)
		VALUES ($1::uuid, $2, $3)
		ON CONFLICT (user_id, currency_id)
		DO UPDATE SET value_cents = EXCLUDED.value_cents
	`, o.UserID, o.CurrencyID, o.ValueCents)
	if err != nil {
		return fmt.Errorf("upsert override %q: %w", o.CurrencyID, err)
	}
	slog.Debug("Currency override saved", "user_id", o.UserID, "currency_id", o.CurrencyID, "value_cents", o.ValueCents)
	return nil
}

func (s *Storage) DeleteUserOverride(ctx context.Context, userID, currencyID string) error {
	result, err := s.db.Exec(ctx, `
		DELETE FROM user_currency_values WHERE user_id = $1::uuid AND currency_id = $2
	`, userID, currencyID)
	if err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// === TemplateStorage ===

func (s *Storage) ListTemplates(ctx context.Context) ([]domain.PointValueTemplate, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, is_default FROM point_value_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.PointValueTemplate
	for rows.Next() {
		var t domain.PointValueTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.IsDefault); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (s *Storage) SelectedTemplateValues(ctx context.Context, userID string) ([]domain.TemplateCurrencyValue, error) {
	var templateID string
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(
			(SELECT selected_template_id FROM user_settings WHERE user_id = $1::uuid),
			(SELECT id FROM point_value_templates WHERE is_default LIMIT 1),
			''
		)
	`, userID).Scan(&templateID)
	if err != nil {
		return nil, fmt.Errorf("find selected template: %w", err)
	}
	if templateID == "" {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT template_id, currency_id, value_cents::float8
		FROM template_currency_values
		WHERE template_id = $1
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("query template values: %w", err)
	}
	defer rows.Close()

	var values []domain.TemplateCurrencyValue
	for rows.Next() {
		var v domain.TemplateCurrencyValue
		if err := rows.Scan(&v.TemplateID, &v.CurrencyID, &v.ValueCents); err != nil {
			return nil, fmt.Errorf("scan template value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *Storage) SelectTemplate(ctx context.Context, userID, templateID string) error {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM point_value_templates WHERE id = $1)`, templateID).Scan(&exists); err != nil {
		return fmt.Errorf("check template: %w", err)
	}
	if !exists {
		return storage.ErrNotFound
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO user_settings (user_id, selected_template_id) VALUES ($1::uuid, $2)
		ON CONFLICT (user_id) DO UPDATE SET selected_template_id = EXCLUDED.selected_template_id
	`, userID, templateID)
	if err != nil {
		return fmt.Errorf("select template: %w", err)
	}
	return nil
}

// === OfferStorage ===

const cardColumns = `c.id, c.name, c.issuer_name, c.brand_name, c.product_type, c.card_charge_type,
	COALESCE(c.currency_id, ''), COALESCE(c.secondary_currency_id, ''), c.default_earn_rate::float8`

func scanCard(row pgx.Row, extra ...any) (domain.Card, error) {
	var c domain.Card
	dest := append(extra, &c.ID, &c.Name, &c.IssuerName, &c.BrandName, &c.ProductType, &c.CardChargeType,
		&c.CurrencyID, &c.SecondaryCurrencyID, &c.DefaultEarnRate)
	err := row.Scan(dest...)
	return c, err
}

func (s *Storage) ListCards(ctx context.Context) ([]domain.Card, error) {
	rows, err := s.db.Query(ctx, `SELECT `+cardColumns+` FROM cards c ORDER BY c.issuer_name, c.name`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *Storage) FindCard(ctx context.Context, cardID string) (*domain.Card, error) {
	c, err := scanCard(s.db.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards c WHERE c.id = $1`, cardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	return &c, nil
}

func (s *Storage) ListActiveOffers(ctx context.Context) ([]domain.OfferWithCard, error) {
	rows, err := s.db.Query(ctx, `
		SELECT o.id::text, o.is_featured, `+cardColumns+`
		FROM card_offers o
		JOIN cards c ON c.id = o.card_id
		WHERE NOT o.is_archived
		ORDER BY o.created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer rows.Close()

	var offers []domain.OfferWithCard
	index := make(map[string]int)
	for rows.Next() {
		var offerID string
		var featured bool
		card, err := scanCard(rows, &offerID, &featured)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		index[offerID] = len(offers)
		offers = append(offers, domain.OfferWithCard{
			Offer: domain.CardOffer{ID: offerID, CardID: card.ID, IsFeatured: featured},
			Card:  card,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	if len(offers) == 0 {
		return offers, nil
	}

	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	if err := s.loadBonuses(ctx, ids, offers, index); err != nil {
		return nil, err
	}
	if err := s.loadElevatedEarnings(ctx, ids, offers, index); err != nil {
		return nil, err
	}
	if err := s.loadIntroAprs(ctx, ids, offers, index); err != nil {
		return nil, err
	}
	return offers, nil
}

func (s *Storage) loadBonuses(ctx context.Context, ids []string, offers []domain.OfferWithCard, index map[string]int) error {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, offer_id::text, component_type, spend_requirement_cents, time_period, time_period_unit,
			points_amount, currency_id, cash_amount_cents, benefit_description, default_benefit_value_cents
		FROM card_offer_bonuses
		WHERE offer_id::text = ANY($1)
		ORDER BY spend_requirement_cents, id
	`, ids)
	if err != nil {
		return fmt.Errorf("query bonuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b domain.BonusTier
		if err := rows.Scan(&b.ID, &b.OfferID, &b.ComponentType, &b.SpendRequirementCents, &b.TimePeriod, &b.TimePeriodUnit,
			&b.PointsAmount, &b.CurrencyID, &b.CashAmountCents, &b.BenefitDescription, &b.DefaultBenefitValueCents); err != nil {
			return fmt.Errorf("scan bonus: %w", err)
		}
		if i, ok := index[b.OfferID]; ok {
			offers[i].Offer.Bonuses = append(offers[i].Offer.Bonuses, b)
		}
	}
	return rows.Err()
}

func (s *Storage) loadElevatedEarnings(ctx context.Context, ids []string, offers []domain.OfferWithCard, index map[string]int) error {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, offer_id::text, elevated_rate::float8, duration, duration_unit, category
		FROM card_offer_elevated_earnings
		WHERE offer_id::text = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("query elevated earnings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.ElevatedEarning
		var offerID string
		if err := rows.Scan(&e.ID, &offerID, &e.ElevatedRate, &e.Duration, &e.DurationUnit, &e.Category); err != nil {
			return fmt.Errorf("scan elevated earning: %w", err)
		}
		if i, ok := index[offerID]; ok {
			offers[i].Offer.ElevatedEarnings = append(offers[i].Offer.ElevatedEarnings, e)
		}
	}
	return rows.Err()
}

func (s *Storage) loadIntroAprs(ctx context.Context, ids []string, offers []domain.OfferWithCard, index map[string]int) error {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, offer_id::text, apr_type, percentage::float8, duration, duration_unit
		FROM card_offer_intro_aprs
		WHERE offer_id::text = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("query intro aprs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.IntroApr
		var offerID string
		if err := rows.Scan(&a.ID, &offerID, &a.AprType, &a.Percentage, &a.Duration, &a.DurationUnit); err != nil {
			return fmt.Errorf("scan intro apr: %w", err)
		}
		if i, ok := index[offerID]; ok {
			offers[i].Offer.IntroAprs = append(offers[i].Offer.IntroAprs, a)
		}
	}
	return rows.Err()
}

func (s *Storage) AddBonusTier(ctx context.Context, b domain.BonusTier) (string, error) {
	if b.BenefitDescription != nil {
		d := sanitizeString(*b.BenefitDescription)
		b.BenefitDescription = &d
	}

	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO card_offer_bonuses (offer_id, component_type, spend_requirement_cents, time_period, time_period_unit,
			points_amount, currency_id, cash_amount_cents, benefit_description, default_benefit_value_cents)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id::text
	`, b.OfferID, b.ComponentType, b.SpendRequirementCents, b.TimePeriod, b.TimePeriodUnit,
		b.PointsAmount, b.CurrencyID, b.CashAmountCents, b.BenefitDescription, b.DefaultBenefitValueCents).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert bonus tier: %w", err)
	}
	slog.Debug("Bonus tier added", "offer_id", b.OfferID, "bonus_id", id, "component_type", b.ComponentType)
	return id, nil
}

// === WalletStorage ===

func (s *Storage) ListWallet(ctx context.Context, userID string) ([]domain.WalletCardApproval, error) {
	rows, err := s.db.Query(ctx, `
		SELECT w.id::text, w.player_number, c.id, c.issuer_name, c.brand_name, c.product_type, c.card_charge_type,
			COALESCE(c.currency_id, ''), w.approval_date, w.closed_date
		FROM user_wallets w
		JOIN cards c ON c.id = w.card_id
		WHERE w.user_id = $1::uuid
		ORDER BY w.player_number, w.approval_date
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query wallet: %w", err)
	}
	defer rows.Close()

	var wallet []domain.WalletCardApproval
	for rows.Next() {
		var w domain.WalletCardApproval
		if err := rows.Scan(&w.ID, &w.PlayerNumber, &w.CardID, &w.IssuerName, &w.BrandName, &w.ProductType,
			&w.CardChargeType, &w.CurrencyID, &w.ApprovalDate, &w.ClosedDate); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallet = append(wallet, w)
	}
	return wallet, rows.Err()
}

func (s *Storage) AddWalletCard(ctx context.Context, userID string, w domain.WalletCardApproval) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO user_wallets (user_id, player_number, card_id, approval_date, closed_date)
		VALUES ($1::uuid, $2, $3, $4, $5)
		RETURNING id::text
	`, userID, w.PlayerNumber, w.CardID, w.ApprovalDate, w.ClosedDate).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert wallet card: %w", err)
	}
	return id, nil
}

// === TelegramStorage ===

func (s *Storage) LinkTelegramChat(ctx context.Context, telegramID int64, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO telegram_links (telegram_id, user_id) VALUES ($1, $2::uuid)
		ON CONFLICT (telegram_id) DO UPDATE SET user_id = EXCLUDED.user_id
	`, telegramID, userID)
	if err != nil {
		return fmt.Errorf("link telegram chat: %w", err)
	}
	return nil
}

func (s *Storage) FindUserByTelegramID(ctx context.Context, telegramID int64) (string, error) {
	var userID string
	err := s.db.QueryRow(ctx, `SELECT user_id::text FROM telegram_links WHERE telegram_id = $1`, telegramID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("find telegram link: %w", err)
	}
	return userID, nil
}
