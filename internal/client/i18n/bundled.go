package i18n

// bundled packs are used when the backend cannot deliver a language and no
// earlier copy of it was loaded. brand_name is filled in by the manager.
var bundled = map[string]Pack{
	"en": {
		"welcome_back":            "Welcome Back",
		"create_account":          "Create Account",
		"email_address":           "Email Address",
		"email":                   "Email",
		"password":                "Password",
		"sign_in":                 "Sign In",
		"sign_up":                 "Sign Up",
		"login":                   "Login",
		"register":                "Register",
		"logout":                  "Logout",
		"first_name":              "First Name",
		"last_name":               "Last Name",
		"full_name":               "Full Name",
		"confirm_password":        "Confirm Password",
		"remember_me":             "Remember me",
		"forgot_password":         "Forgot password?",
		"submit":                  "Submit",
		"loading":                 "Loading...",
		"error":                   "Error",
		"or":                      "or",
		"no_account":              "Don't have an account? ",
		"have_account":            "Already have an account? ",
		"email_required":          "Email is required",
		"password_required":       "Password is required",
		"email_invalid":           "Please enter a valid email",
		"password_min_length":     "Password must be at least 6 characters",
		"first_name_required":     "First name is required",
		"last_name_required":      "Last name is required",
		"home":                    "Home",
		"products":                "Products",
		"orders":                  "Orders",
		"customers":               "Customers",
		"reports":                 "Reports",
		"about":                   "About",
		"contact":                 "Contact",
		"product_name":            "Product Name",
		"product_list":            "Product List",
		"product_management":      "Product Management",
		"article_number":          "Article #",
		"description":             "Description",
		"price":                   "Price",
		"unit":                    "Unit",
		"stock":                   "Stock",
		"in_price":                "Cost Price",
		"actions":                 "Actions",
		"view":                    "View",
		"edit":                    "Edit",
		"add":                     "Add",
		"save":                    "Save",
		"cancel":                  "Cancel",
		"delete":                  "Delete",
		"yes":                     "Yes",
		"no":                      "No",
		"confirm":                 "Confirm",
		"search":                  "Search",
		"search_products":         "Search products...",
		"clear_search":            "Clear",
		"no_products_found":       "No products found",
		"try_different_search":    "Try adjusting your search terms",
		"no_products_available":   "No products available",
		"page":                    "Page",
		"of":                      "of",
		"total_products":          "total products",
		"previous":                "Previous",
		"next":                    "Next",
		"showing_results":         "Showing",
		"article_number_required": "Article number is required",
		"product_name_required":   "Product name is required",
		"price_invalid":           "Valid price is required",
		"current_password":        "Current password",
		"new_password":            "New password",
		"logged_in_as":            "Logged in as",
		"not_logged_in":           "Not logged in",
		"session_expired":         "Session expired. Please login again.",
		"verify_email_first":      "Please verify your email before logging in.",
		"registration_success":    "Account created. Check your email to verify it.",
		"email_verified":          "Email verified. You can now sign in.",
		"reset_email_sent":        "If the address exists, a reset link has been sent.",
		"password_reset_done":     "Password updated. You can now sign in.",
		"password_changed":        "Password changed.",
		"product_saved":           "Product saved.",
		"product_deleted":         "Product deleted.",
		"language_changed":        "Language changed",
		"unknown_command":         "Unknown command. Type 'help' for a list.",
		"token_expires":           "Access token expires",
		"status_checking":         "checking",
		"status_authenticated":    "signed in",
		"status_unauthenticated":  "signed out",
		"available_languages":     "Available languages",
		"api_unreachable":         "The server is unreachable",
	},
	"sv": {
		"welcome_back":            "Välkommen tillbaka",
		"create_account":          "Skapa konto",
		"email_address":           "E-postadress",
		"email":                   "E-post",
		"password":                "Lösenord",
		"sign_in":                 "Logga in",
		"sign_up":                 "Registrera",
		"login":                   "Logga in",
		"register":                "Registrera",
		"logout":                  "Logga ut",
		"first_name":              "Förnamn",
		"last_name":               "Efternamn",
		"full_name":               "Fullständigt namn",
		"confirm_password":        "Bekräfta lösenord",
		"remember_me":             "Kom ihåg mig",
		"forgot_password":         "Glömt lösenord?",
		"submit":                  "Skicka",
		"loading":                 "Laddar...",
		"error":                   "Fel",
		"or":                      "eller",
		"no_account":              "Har du inget konto? ",
		"have_account":            "Har du redan ett konto? ",
		"email_required":          "E-post krävs",
		"password_required":       "Lösenord krävs",
		"email_invalid":           "Ange en giltig e-postadress",
		"password_min_length":     "Lösenordet måste vara minst 6 tecken",
		"first_name_required":     "Förnamn krävs",
		"last_name_required":      "Efternamn krävs",
		"home":                    "Hem",
		"products":                "Produkter",
		"orders":                  "Beställningar",
		"customers":               "Kunder",
		"reports":                 "Rapporter",
		"about":                   "Om oss",
		"contact":                 "Kontakt",
		"product_name":            "Produktnamn",
		"product_list":            "Produktlista",
		"product_management":      "Produkthantering",
		"article_number":          "Artikelnr",
		"description":             "Beskrivning",
		"price":                   "Pris",
		"unit":                    "Enhet",
		"stock":                   "Lager",
		"in_price":                "Inköpspris",
		"actions":                 "Åtgärder",
		"view":                    "Visa",
		"edit":                    "Redigera",
		"add":                     "Lägg till",
		"save":                    "Spara",
		"cancel":                  "Avbryt",
		"delete":                  "Ta bort",
		"yes":                     "Ja",
		"no":                      "Nej",
		"confirm":                 "Bekräfta",
		"search":                  "Sök",
		"search_products":         "Sök produkter...",
		"clear_search":            "Rensa",
		"no_products_found":       "Inga produkter hittades",
		"try_different_search":    "Prova att justera dina söktermer",
		"no_products_available":   "Inga produkter tillgängliga",
		"page":                    "Sida",
		"of":                      "av",
		"total_products":          "totalt produkter",
		"previous":                "Föregående",
		"next":                    "Nästa",
		"showing_results":         "Visar",
		"article_number_required": "Artikelnummer krävs",
		"product_name_required":   "Produktnamn krävs",
		"price_invalid":           "Ange ett giltigt pris",
		"current_password":        "Nuvarande lösenord",
		"new_password":            "Nytt lösenord",
		"logged_in_as":            "Inloggad som",
		"not_logged_in":           "Inte inloggad",
		"session_expired":         "Sessionen har gått ut. Logga in igen.",
		"verify_email_first":      "Verifiera din e-post innan du loggar in.",
		"registration_success":    "Kontot är skapat. Kontrollera din e-post för att verifiera det.",
		"email_verified":          "E-postadressen är verifierad. Du kan nu logga in.",
		"reset_email_sent":        "Om adressen finns har en återställningslänk skickats.",
		"password_reset_done":     "Lösenordet är uppdaterat. Du kan nu logga in.",
		"password_changed":        "Lösenordet är ändrat.",
		"product_saved":           "Produkten är sparad.",
		"product_deleted":         "Produkten är borttagen.",
		"language_changed":        "Språket är ändrat",
		"unknown_command":         "Okänt kommando. Skriv 'help' för en lista.",
		"token_expires":           "Åtkomsttoken går ut",
		"status_checking":         "kontrollerar",
		"status_authenticated":    "inloggad",
		"status_unauthenticated":  "utloggad",
		"available_languages":     "Tillgängliga språk",
		"api_unreachable":         "Servern går inte att nå",
	},
}

// Bundled returns a copy of the bundled pack for code, falling back to the
// English one.
func Bundled(code, brand string) Pack {
	src, ok := bundled[code]
	if !ok {
		src = bundled["en"]
	}
	out := make(Pack, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	if brand != "" {
		out["brand_name"] = brand
	}
	return out
}
