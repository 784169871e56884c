package i18n

// commonDefaults fill display keys the server pack did not provide. They
// never replace a key produced by Remap.
var commonDefaults = map[string]Pack{
	"en": {
		"welcome_back":                 "Welcome Back",
		"create_account":               "Create Account",
		"email_address":                "Email Address",
		"password":                     "Password",
		"full_name":                    "Full Name",
		"confirm_password":             "Confirm Password",
		"remember_me":                  "Remember me",
		"or":                           "or",
		"no_account":                   "Don't have an account? ",
		"have_account":                 "Already have an account? ",
		"sign_in_subtitle":             "Sign in to your account to continue",
		"sign_up_subtitle":             "Join us today and get started",
		"enter_full_name":              "Enter your full name",
		"confirm_password_placeholder": "Confirm your password",
	},
	"sv": {
		"welcome_back":                 "Välkommen tillbaka",
		"create_account":               "Skapa konto",
		"email_address":                "E-postadress",
		"password":                     "Lösenord",
		"full_name":                    "Fullständigt namn",
		"confirm_password":             "Bekräfta lösenord",
		"remember_me":                  "Kom ihåg mig",
		"or":                           "eller",
		"no_account":                   "Har du inget konto? ",
		"have_account":                 "Har du redan ett konto? ",
		"sign_in_subtitle":             "Logga in på ditt konto för att fortsätta",
		"sign_up_subtitle":             "Gå med oss idag och kom igång",
		"enter_full_name":              "Ange ditt fullständiga namn",
		"confirm_password_placeholder": "Bekräfta ditt lösenord",
	},
}

// WithDefaults adds the defaults for code to p in place and returns it.
// Swedish gets Swedish defaults, every other language English ones.
func WithDefaults(p Pack, code string) Pack {
	d, ok := commonDefaults[code]
	if !ok {
		d = commonDefaults["en"]
	}
	for k, v := range d {
		if _, exists := p[k]; !exists {
			p[k] = v
		}
	}
	return p
}
