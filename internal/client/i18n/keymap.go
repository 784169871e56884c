package i18n

import "strings"

// keyMap wires the backend's namespaced translation keys to the flat display
// keys used by the client. New server keys are connected here.
var keyMap = map[string]string{
	"auth.login":                "sign_in",
	"auth.register":             "sign_up",
	"auth.forgot_password":      "forgot_password",
	"auth.email_placeholder":    "enter_email",
	"auth.password_placeholder": "enter_password",
	"auth.email_validation":     "email_required",
	"auth.password_required":    "password_required",

	"nav.home":      "home",
	"nav.order":     "order",
	"nav.customers": "customers",
	"nav.about":     "about",
	"nav.contact":   "contact",

	"language.english": "english",
	"language.swedish": "svenska",

	"ui.save":    "save",
	"ui.cancel":  "cancel",
	"ui.delete":  "delete",
	"ui.edit":    "edit",
	"ui.add":     "add",
	"ui.search":  "search",
	"ui.loading": "loading",
	"ui.yes":     "yes",
	"ui.no":      "no",
	"ui.confirm": "confirm",

	"brand.name": "brand_name",

	"product.name":        "product_name",
	"product.price":       "price",
	"product.description": "description",

	"dashboard.welcome":  "welcome_dashboard",
	"dashboard.overview": "overview",

	"message.success": "success_message",
	"message.error":   "error_message",
}

// DisplayKey returns the flat key for a raw server key. Keys missing from
// the table have every '.' replaced with '_'.
func DisplayKey(raw string) string {
	if k, ok := keyMap[raw]; ok {
		return k
	}
	return strings.ReplaceAll(raw, ".", "_")
}

// Remap converts a raw server pack to display keys.
func Remap(raw map[string]string) Pack {
	out := make(Pack, len(raw))
	for k, v := range raw {
		out[DisplayKey(k)] = v
	}
	return out
}
