package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/faktura/internal/client/i18n"
)

// Lang lists the available languages, or switches to code.
func (a *App) Lang(ctx context.Context, code string) error {
	if code == "" {
		current := a.lang.Language()
		langs := a.lang.AvailableLanguages()
		for i, l := range langs {
			if l == current {
				langs[i] = "*" + l
			}
		}
		a.printf("%s: %s\n", a.t("available_languages"), strings.Join(langs, ", "))
		return nil
	}

	origin, err := a.lang.SwitchLanguage(ctx, strings.ToLower(code))
	if err != nil {
		if errors.Is(err, i18n.ErrSuperseded) {
			return nil
		}
		return a.report(err)
	}
	a.log.Debug(ctx, "language switched", "code", a.lang.Language(), "origin", origin.String())
	a.printf("%s: %s\n", a.t("language_changed"), a.lang.Language())
	return nil
}
