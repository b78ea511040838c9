package models

import "github.com/yukikurage/freelance-tracker-api/internal/constants"

// User field names
const (
	UserFieldEmail       = "email"
	UserFieldPassword    = "password"
	UserFieldToken       = "token"
	UserFieldPreferences = "preferences"
)

// NewUser builds a user record carrying the registration defaults.
func NewUser(id int64, name, email, password, token string) Record {
	return Record{
		"id":         id,
		"name":       name,
		"email":      email,
		"password":   password,
		"hourlyRate": constants.DefaultHourlyRate,
		"currency":   constants.DefaultCurrency,
		"preferences": map[string]any{
			"theme":         constants.DefaultTheme,
			"invoicePrefix": constants.DefaultInvoicePrefix,
		},
		"token": token,
	}
}

// InvoicePrefix returns the user's preferred invoice prefix, falling back to
// the default when the user has none.
func InvoicePrefix(user Record) string {
	prefs, ok := user[UserFieldPreferences].(map[string]any)
	if !ok {
		return constants.DefaultInvoicePrefix
	}
	prefix, _ := prefs["invoicePrefix"].(string)
	if prefix == "" {
		return constants.DefaultInvoicePrefix
	}
	return prefix
}
