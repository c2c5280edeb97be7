package Constants

// WhatsappGoService is the base URL of the self-hosted WhatsApp gateway.
const WhatsappGoService = "http://localhost:3000"

// DefaultCountryCode is prepended to phone numbers entered without one.
const DefaultCountryCode = "+964"

// DefaultTimeZone is the clinic timezone used when CLINIC_TIMEZONE is unset.
const DefaultTimeZone = "Asia/Baghdad"

// ExpenseCategories is the allowed set for Expense.Category.
var ExpenseCategories = []string{
	"salaries",
	"rent",
	"supplies",
	"equipment",
	"utilities",
	"marketing",
	"other",
}

func IsValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}
