// internal/service/eligibility.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"signup-bonus-tracker/internal/domain"
	"signup-bonus-tracker/internal/eligibility"
)

type CardEligibility struct {
	Card    domain.Card               `json:"card"`
	Verdict domain.EligibilityVerdict `json:"verdict"`
	Rules   []eligibility.RuleStatus  `json:"rules,omitempty"`
}

// Eligibility проверяет карты для игрока по его истории одобрений.
// Если cardID задан, проверяется только эта карта.
func (s *Service) Eligibility(ctx context.Context, userID string, player int, cardID string) ([]CardEligibility, error) {
	if player < 1 {
		return nil, ErrInvalidPlayer
	}

	var cards []domain.Card
	if cardID != "" {
		card, err := s.store.FindCard(ctx, cardID)
		if err != nil {
			return nil, fmt.Errorf("find card: %w", err)
		}
		if card == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCard, cardID)
		}
		cards = []domain.Card{*card}
	} else {
		var err error
		cards, err = s.store.ListCards(ctx)
		if err != nil {
			return nil, fmt.Errorf("list cards: %w", err)
		}
	}

	wallet, err := s.store.ListWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallet: %w", err)
	}

	now := s.now()
	result := make([]CardEligibility, 0, len(cards))
	blocked := 0
	for _, card := range cards {
		candidate := eligibility.Candidate{
			PlayerNumber: player,
			IssuerName:   card.IssuerName,
			ProductType:  card.ProductType,
		}
		verdict := s.engine.Check(candidate, wallet, now)
		if !verdict.Eligible {
			blocked++
		}
		result = append(result, CardEligibility{
			Card:    card,
			Verdict: verdict,
			Rules:   s.engine.Explain(candidate, wallet, now),
		})
	}

	slog.Info("Eligibility checked", "user_id", userID, "player", player, "cards", len(result), "blocked", blocked)
	return result, nil
}

// IssuerVerdict — вердикт эмитента отдельно для личной и бизнес-карты:
// часть правил (1/95 у Citi) касается только бизнес-карт.
type IssuerVerdict struct {
	Personal domain.EligibilityVerdict `json:"personal"`
	Business domain.EligibilityVerdict `json:"business"`
}

// IssuerVerdicts — вердикт по каждому эмитенту из таблицы правил (для короткой сводки в боте).
func (s *Service) IssuerVerdicts(ctx context.Context, userID string, player int) (map[string]IssuerVerdict, error) {
	if player < 1 {
		return nil, ErrInvalidPlayer
	}
	wallet, err := s.store.ListWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallet: %w", err)
	}

	now := s.now()
	out := make(map[string]IssuerVerdict)
	for _, issuer := range s.engine.Issuers() {
		personal := eligibility.Candidate{PlayerNumber: player, IssuerName: issuer, ProductType: domain.ProductPersonal}
		business := eligibility.Candidate{PlayerNumber: player, IssuerName: issuer, ProductType: domain.ProductBusiness}
		out[issuer] = IssuerVerdict{
			Personal: s.engine.Check(personal, wallet, now),
			Business: s.engine.Check(business, wallet, now),
		}
	}
	return out, nil
}

// AddWalletCard записывает одобрение карты игроку.
func (s *Service) AddWalletCard(ctx context.Context, userID string, approval domain.WalletCardApproval) (string, error) {
	if approval.PlayerNumber < 1 {
		return "", ErrInvalidPlayer
	}
	card, err := s.store.FindCard(ctx, approval.CardID)
	if err != nil {
		return "", fmt.Errorf("find card: %w", err)
	}
	if card == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCard, approval.CardID)
	}

	id, err := s.store.AddWalletCard(ctx, userID, approval)
	if err != nil {
		return "", err
	}
	slog.Info("Wallet card added", "user_id", userID, "player", approval.PlayerNumber, "card_id", approval.CardID)
	return id, nil
}
