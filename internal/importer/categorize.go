package importer

import (
	"strings"

	"github.com/cleared-dev/bizledger/internal/model"
)

type rule struct {
	keywords []string
	category string
}

var expenseRules = []rule{
	{[]string{"RENT", "LEASE"}, "Rent"},
	{[]string{"INSURANCE", "GEICO", "STATE FARM"}, "Insurance"},
	{[]string{"ELECTRIC", "WATER", "GAS CO", "COMCAST", "VERIZON", "AT&T", "UTILITY"}, "Utilities"},
	{[]string{"AIRLINE", "DELTA", "UNITED", "UBER", "LYFT", "HOTEL", "MARRIOTT", "AIRBNB"}, "Travel"},
	{[]string{"RESTAURANT", "CAFE", "COFFEE", "STARBUCKS", "DOORDASH", "GRUBHUB"}, "Meals"},
	{[]string{"GITHUB", "ADOBE", "GOOGLE", "MICROSOFT", "SLACK", "ZOOM", "SUBSCRIPTION", "SAAS"}, "Software"},
	{[]string{"FACEBOOK", "META ADS", "MAILCHIMP", "ADVERTIS"}, "Marketing"},
	{[]string{"STAPLES", "OFFICE DEPOT", "OFFICEMAX"}, "Office Supplies"},
	{[]string{"BEST BUY", "APPLE STORE", "DELL"}, "Equipment"},
	{[]string{"LEGAL", "ATTORNEY", "CPA", "ACCOUNTING"}, "Professional Services"},
}

var incomeRules = []rule{
	{[]string{"CONSULTING"}, "Consulting"},
	{[]string{"STRIPE", "SHOPIFY", "SQUARE", "PAYPAL"}, "Sales"},
}

// Categorize guesses a default category from the line's description. It
// falls back to Sales for income and Other for expenses.
func Categorize(l Line) string {
	desc := strings.ToUpper(l.Description)
	rules, fallback := expenseRules, "Other"
	if l.Kind() == model.KindIncome {
		rules, fallback = incomeRules, "Sales"
	}
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(desc, k) {
				return r.category
			}
		}
	}
	return fallback
}
