package classify

import (
	"strings"

	"github.com/ignite/support-triage/internal/domain"
)

// categoryRule pairs a category with the keywords that select it.
type categoryRule struct {
	category domain.Category
	keywords []string
}

// categoryRules is checked in order and the first matching rule wins. The
// order is the tie-break: an email mentioning both "invoice" and "login" is
// a Billing Issue because billing is checked first.
var categoryRules = []categoryRule{
	{domain.CategoryBilling, []string{"billing", "invoice", "payment", "pricing", "charge"}},
	{domain.CategoryAccount, []string{"account", "login", "password", "reset", "verify"}},
	{domain.CategoryTechnical, []string{"api", "integration", "sdk", "token", "webhook"}},
}

// CategoryLabel classifies the issue category from the lowercased
// subject+body blob. Emails matching no rule are a General Query.
func CategoryLabel(subject, body string) domain.Category {
	blob := strings.ToLower(subject + " " + body)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(blob, kw) {
				return rule.category
			}
		}
	}
	return domain.CategoryGeneral
}
