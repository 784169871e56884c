package cli

import (
	"errors"

	"github.com/dmitrijs2005/faktura/internal/client/api"
	"github.com/dmitrijs2005/faktura/internal/client/session"
	"github.com/dmitrijs2005/faktura/internal/validate"
)

// errUsage marks a command invoked without its argument.
var errUsage = errors.New("usage")

// errNotLoggedIn is returned by commands that need a session.
var errNotLoggedIn = errors.New("not logged in")

// message turns an error into the text shown to the user, translated where a
// key for it exists.
func (a *App) message(err error) string {
	var (
		verr   *validate.Error
		apiErr *api.APIError
	)
	switch {
	case errors.As(err, &verr):
		return a.lang.Translate(verr.Key, verr.Message)
	case errors.Is(err, api.ErrSessionExpired):
		return a.t("session_expired")
	case errors.Is(err, api.ErrNetwork):
		return a.t("api_unreachable")
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return a.t("error") + ": " + err.Error()
	}
}

func (a *App) report(err error) error {
	a.println(a.message(err))
	return err
}

// reportResult prints the outcome of an account operation. success is the
// key of the message shown when it worked.
func (a *App) reportResult(res session.Result, success string) error {
	if res.Success {
		a.println(a.t(success))
		return nil
	}
	switch {
	case res.NeedsVerification():
		a.println(a.t("verify_email_first"))
	case res.Err != nil && !errors.Is(res.Err, api.ErrNetwork):
		a.println(a.message(res.Err))
	default:
		a.println(res.Error)
	}
	if res.Err != nil {
		return res.Err
	}
	return errors.New(res.Error)
}

func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	a.println(a.t("not_logged_in"))
	return errNotLoggedIn
}

func (a *App) usage(text string) error {
	a.println("Usage:", text)
	return errUsage
}
