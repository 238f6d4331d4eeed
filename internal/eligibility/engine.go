// internal/eligibility/engine.go
package eligibility

import (
	"log/slog"
	"strings"
	"time"

	"signup-bonus-tracker/internal/domain"
)

const day = 24 * time.Hour

// Candidate — карта, на которую игрок собирается подать заявку
type Candidate struct {
	PlayerNumber int
	IssuerName   string
	ProductType  domain.ProductType
}

// RuleStatus — состояние одного правила для кандидата
type RuleStatus struct {
	Reason    string   `json:"reason"`
	Kind      RuleKind `json:"kind"`
	Count     int      `json:"count"`
	Threshold int      `json:"threshold"`
	Triggered bool     `json:"triggered"`
}

// Engine интерпретирует таблицу правил. Неизменяем после создания.
type Engine struct {
	rules    []IssuerRule
	flagship map[string]string
}

func NewEngine(rules []IssuerRule, flagshipBrands map[string]string) *Engine {
	fb := make(map[string]string, len(flagshipBrands))
	for issuer, brand := range flagshipBrands {
		fb[normalize(issuer)] = brand
	}
	return &Engine{
		rules:    append([]IssuerRule(nil), rules...),
		flagship: fb,
	}
}

// Default — движок со встроенной таблицей правил
func Default() *Engine {
	return NewEngine(DefaultRules, DefaultFlagshipBrands)
}

// CheckEligibility — проверка кандидата встроенными правилами.
func CheckEligibility(c Candidate, history []domain.WalletCardApproval, now time.Time) domain.EligibilityVerdict {
	return Default().Check(c, history, now)
}

// Check возвращает первое сработавшее правило эмитента кандидата. Эмитент без правил — Eligible.
func (e *Engine) Check(c Candidate, history []domain.WalletCardApproval, now time.Time) domain.EligibilityVerdict {
	h := NewHistory(history, c.PlayerNumber, now)
	for _, rule := range e.rules {
		if !matches(c.IssuerName, rule.IssuerMatch) {
			continue
		}
		if count, applies := e.count(rule, c, h); applies && count >= rule.Threshold {
			return domain.Blocked(rule.Reason)
		}
	}
	return domain.Eligible()
}

// Explain считает все правила эмитента кандидата без остановки на первом.
func (e *Engine) Explain(c Candidate, history []domain.WalletCardApproval, now time.Time) []RuleStatus {
	h := NewHistory(history, c.PlayerNumber, now)
	var out []RuleStatus
	for _, rule := range e.rules {
		if !matches(c.IssuerName, rule.IssuerMatch) {
			continue
		}
		count, applies := e.count(rule, c, h)
		out = append(out, RuleStatus{
			Reason:    rule.Reason,
			Kind:      rule.Kind,
			Count:     count,
			Threshold: rule.Threshold,
			Triggered: applies && count >= rule.Threshold,
		})
	}
	return out
}

// HasRules — есть ли для эмитента хоть одно правило
func (e *Engine) HasRules(issuer string) bool {
	for _, rule := range e.rules {
		if matches(issuer, rule.IssuerMatch) {
			return true
		}
	}
	return false
}

// Issuers — эмитенты таблицы правил (первое имя из IssuerMatch) в порядке таблицы
func (e *Engine) Issuers() []string {
	var out []string
	seen := make(map[string]bool)
	for _, rule := range e.rules {
		if len(rule.IssuerMatch) == 0 {
			continue
		}
		name := rule.IssuerMatch[0]
		if !seen[normalize(name)] {
			seen[normalize(name)] = true
			out = append(out, name)
		}
	}
	return out
}

// count возвращает значение счётчика правила; applies=false, если правило к кандидату неприменимо.
func (e *Engine) count(rule IssuerRule, c Candidate, h History) (int, bool) {
	switch rule.Kind {
	case KindIssuerWindow:
		return h.CountIssuerApprovalsInWindow(rule.IssuerMatch, rule.WindowDays), true
	case KindAnyIssuerWindow:
		return h.CountAllApprovalsInWindow(rule.WindowDays), true
	case KindLifetimeByChargeType:
		return h.CountIssuerApprovalsByChargeType(rule.IssuerMatch, rule.ChargeType, rule.ExcludeChargeType), true
	case KindBusinessWindow:
		if c.ProductType != domain.ProductBusiness {
			return 0, false
		}
		return h.CountIssuerBusinessApprovalsInWindow(rule.IssuerMatch, rule.WindowDays), true
	case KindBrandedOnlyWindow:
		brand, ok := e.flagshipBrand(rule.IssuerMatch)
		if !ok {
			slog.Warn("No flagship brand configured, branded-only rule skipped", "issuer", c.IssuerName, "reason", rule.Reason)
			return 0, false
		}
		return h.CountBrandedApprovalsInWindow(rule.IssuerMatch, brand, rule.WindowDays), true
	}
	slog.Warn("Unknown eligibility rule kind", "kind", rule.Kind, "reason", rule.Reason)
	return 0, false
}

func (e *Engine) flagshipBrand(issuers []string) (string, bool) {
	for _, issuer := range issuers {
		if brand, ok := e.flagship[normalize(issuer)]; ok {
			return brand, true
		}
	}
	return "", false
}

// History — одобренные карты одного игрока на момент now
type History struct {
	approvals []domain.WalletCardApproval
	now       time.Time
}

// NewHistory оставляет только записи игрока с датой одобрения.
func NewHistory(all []domain.WalletCardApproval, player int, now time.Time) History {
	approvals := make([]domain.WalletCardApproval, 0, len(all))
	for _, a := range all {
		if a.PlayerNumber != player || a.ApprovalDate == nil {
			continue
		}
		approvals = append(approvals, a)
	}
	return History{approvals: approvals, now: now}
}

func (h History) inWindow(a domain.WalletCardApproval, windowDays int) bool {
	cutoff := h.now.Add(-time.Duration(windowDays) * day)
	return !a.ApprovalDate.Before(cutoff)
}

func (h History) CountIssuerApprovalsInWindow(issuers []string, windowDays int) int {
	n := 0
	for _, a := range h.approvals {
		if matches(a.IssuerName, issuers) && h.inWindow(a, windowDays) {
			n++
		}
	}
	return n
}

func (h History) CountAllApprovalsInWindow(windowDays int) int {
	n := 0
	for _, a := range h.approvals {
		if h.inWindow(a, windowDays) {
			n++
		}
	}
	return n
}

// CountIssuerApprovalsByChargeType — без окна. exclude=true считает всё, кроме chargeType.
func (h History) CountIssuerApprovalsByChargeType(issuers []string, chargeType string, exclude bool) int {
	n := 0
	for _, a := range h.approvals {
		if !matches(a.IssuerName, issuers) {
			continue
		}
		if strings.EqualFold(a.CardChargeType, chargeType) != exclude {
			n++
		}
	}
	return n
}

func (h History) CountIssuerBusinessApprovalsInWindow(issuers []string, windowDays int) int {
	n := 0
	for _, a := range h.approvals {
		if a.ProductType == domain.ProductBusiness && matches(a.IssuerName, issuers) && h.inWindow(a, windowDays) {
			n++
		}
	}
	return n
}

// CountBrandedApprovalsInWindow не учитывает ко-бренды эмитента.
func (h History) CountBrandedApprovalsInWindow(issuers []string, brand string, windowDays int) int {
	n := 0
	for _, a := range h.approvals {
		if matches(a.IssuerName, issuers) && normalize(a.BrandName) == normalize(brand) && h.inWindow(a, windowDays) {
			n++
		}
	}
	return n
}

func matches(name string, names []string) bool {
	n := normalize(name)
	if n == "" {
		return false
	}
	for _, candidate := range names {
		if normalize(candidate) == n {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
