package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// EnvironmentLanguage returns the base language code ("sv", "en") of the
// user's locale, read from LC_ALL, LC_MESSAGES and LANG in that order. It
// returns "" when no usable locale is set.
func EnvironmentLanguage(getenv func(string) string) string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := getenv(name)
		if v == "" {
			continue
		}
		if code := baseLanguage(v); code != "" {
			return code
		}
	}
	return ""
}

// baseLanguage parses POSIX locale names such as "sv_SE.UTF-8" or
// "de_DE@euro" as well as BCP 47 tags.
func baseLanguage(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}
