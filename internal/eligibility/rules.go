// internal/eligibility/rules.go
package eligibility

type RuleKind string

const (
	// KindIssuerWindow — одобрения от эмитента за окно
	KindIssuerWindow RuleKind = "issuer-window"
	// KindAnyIssuerWindow — одобрения от любых эмитентов за окно (5/24 и т.п.)
	KindAnyIssuerWindow RuleKind = "any-issuer-window"
	// KindLifetimeByChargeType — пожизненное число карт эмитента по типу (charge / не charge)
	KindLifetimeByChargeType RuleKind = "lifetime-by-chargetype"
	// KindBusinessWindow — бизнес-карты эмитента за окно, только если кандидат тоже бизнес
	KindBusinessWindow RuleKind = "business-window"
	// KindBrandedOnlyWindow — только карты флагманского бренда эмитента, без ко-брендов
	KindBrandedOnlyWindow RuleKind = "branded-only-window"
)

// IssuerRule — одна строка таблицы правил. Правило срабатывает, когда счётчик >= Threshold.
type IssuerRule struct {
	IssuerMatch []string
	Kind        RuleKind
	WindowDays  int
	Threshold   int
	// ChargeType и ExcludeChargeType используются только KindLifetimeByChargeType
	ChargeType        string
	ExcludeChargeType bool
	Reason            string
}

var (
	amex       = []string{"American Express", "Amex"}
	bankOfAm   = []string{"Bank of America", "BofA"}
	capitalOne = []string{"Capital One"}
	chase      = []string{"Chase"}
	citi       = []string{"Citi", "Citibank"}
)

// DefaultRules — таблица правил эмитентов. Порядок внутри эмитента важен: возвращается первое сработавшее.
var DefaultRules = []IssuerRule{
	{IssuerMatch: amex, Kind: KindIssuerWindow, WindowDays: 5, Threshold: 1, Reason: "1/5 rule"},
	{IssuerMatch: amex, Kind: KindIssuerWindow, WindowDays: 90, Threshold: 2, Reason: "2/90 rule"},
	{IssuerMatch: amex, Kind: KindLifetimeByChargeType, ChargeType: "charge", ExcludeChargeType: true, Threshold: 5, Reason: "5 credit card limit"},
	{IssuerMatch: amex, Kind: KindLifetimeByChargeType, ChargeType: "charge", Threshold: 10, Reason: "10 charge card limit"},

	{IssuerMatch: bankOfAm, Kind: KindIssuerWindow, WindowDays: 60, Threshold: 2, Reason: "2/3/4 rule"},
	{IssuerMatch: bankOfAm, Kind: KindIssuerWindow, WindowDays: 365, Threshold: 3, Reason: "2/3/4 rule"},
	{IssuerMatch: bankOfAm, Kind: KindIssuerWindow, WindowDays: 730, Threshold: 4, Reason: "2/3/4 rule"},
	{IssuerMatch: bankOfAm, Kind: KindAnyIssuerWindow, WindowDays: 365, Threshold: 7, Reason: "7/12 rule"},

	{IssuerMatch: capitalOne, Kind: KindBrandedOnlyWindow, WindowDays: 180, Threshold: 1, Reason: "1/6 rule"},

	{IssuerMatch: chase, Kind: KindAnyIssuerWindow, WindowDays: 730, Threshold: 5, Reason: "5/24 rule"},
	{IssuerMatch: chase, Kind: KindIssuerWindow, WindowDays: 30, Threshold: 2, Reason: "2/30 rule"},

	{IssuerMatch: citi, Kind: KindIssuerWindow, WindowDays: 8, Threshold: 1, Reason: "1/8 rule"},
	{IssuerMatch: citi, Kind: KindIssuerWindow, WindowDays: 65, Threshold: 2, Reason: "2/65 rule"},
	{IssuerMatch: citi, Kind: KindBusinessWindow, WindowDays: 95, Threshold: 1, Reason: "1/95 business rule"},
}

// DefaultFlagshipBrands — бренд эмитента, карты которого считаются "своими" (не ко-бренд)
var DefaultFlagshipBrands = map[string]string{
	"Capital One": "Capital One",
}
