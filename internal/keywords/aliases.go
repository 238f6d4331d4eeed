// internal/keywords/aliases.go
package keywords

var IssuerAliases = map[string][]string{
	"American Express": {"amex", "ax"},
	"Bank of America":  {"boa", "bofa", "bank of america"},
	"Capital One":      {"c1", "cap1", "capone"},
	"Chase":            {"jpm", "jpmorgan"},
	"Citi":             {"citibank", "citigroup"},
	"Wells Fargo":      {"wf", "wells"},
	"U.S. Bank":        {"usb", "us bank"},
	"Barclays":         {"barclaycard"},
}

var CurrencyAliases = map[string][]string{
	"Chase Ultimate Rewards":       {"ur", "ultimate rewards"},
	"Amex Membership Rewards":      {"mr", "membership rewards"},
	"Citi ThankYou Points":         {"ty", "typ", "thankyou"},
	"Capital One Miles":            {"c1 miles", "venture miles"},
	"Bilt Rewards":                 {"bilt"},
	"World of Hyatt":               {"hyatt", "woh"},
	"Marriott Bonvoy":              {"bonvoy", "marriott"},
	"Hilton Honors":                {"hh", "hilton"},
	"United MileagePlus":           {"mileageplus", "united miles"},
	"Delta SkyMiles":               {"skymiles", "skypesos"},
	"Southwest Rapid Rewards":      {"rr", "rapid rewards"},
	"American Airlines AAdvantage": {"aa", "aadvantage"},
	"Alaska Mileage Plan":          {"as", "mileage plan"},
	"Wells Fargo Rewards":          {"wf rewards"},
	"Bank of America Points":       {"boa points"},
}

var CardAliases = map[string][]string{
	"Chase Sapphire Reserve":          {"csr"},
	"Chase Sapphire Preferred":        {"csp"},
	"Chase Freedom Unlimited":         {"cfu"},
	"Chase Freedom Flex":              {"cff"},
	"Chase Ink Business Preferred":    {"cip", "ibp"},
	"Chase Ink Business Cash":         {"cic", "ink cash"},
	"Chase Ink Business Unlimited":    {"ciu", "ink unlimited"},
	"American Express Platinum Card":  {"amex plat", "plat"},
	"American Express Gold Card":      {"amex gold"},
	"Capital One Venture X":           {"vx", "venture x"},
	"Citi Strata Premier":             {"csp citi", "premier"},
	"Citi Double Cash":                {"dc", "double cash"},
	"Bank of America Premium Rewards": {"bopr", "premium rewards"},
}

// Default — общий индекс по эмитентам, валютам и картам
var Default = BuildBidirectionalIndex(merge(IssuerAliases, CurrencyAliases, CardAliases))

func merge(maps ...map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for _, m := range maps {
		for canonical, aliases := range m {
			out[canonical] = append(out[canonical], aliases...)
		}
	}
	return out
}
