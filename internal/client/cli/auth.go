package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/faktura/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates the account. The new
// account has to be verified by email before it can sign in.
func (a *App) Register(ctx context.Context) error {
	var r session.Registration
	var err error

	if r.Email, err = getSimpleText(a.reader, a.t("email"), a); err != nil {
		return err
	}
	if r.Password, err = getPassword(a.t("password"), a); err != nil {
		return err
	}
	if r.FirstName, err = getSimpleText(a.reader, a.t("first_name"), a); err != nil {
		return err
	}
	if r.LastName, err = getSimpleText(a.reader, a.t("last_name"), a); err != nil {
		return err
	}

	return a.reportResult(a.session.Register(ctx, r), "registration_success")
}

// Verify confirms an email address with the token from the verification mail.
func (a *App) Verify(ctx context.Context, token string) error {
	if token == "" {
		return a.usage("verify <token>")
	}
	return a.reportResult(a.session.VerifyEmail(ctx, token), "email_verified")
}

// Login prompts for credentials and signs in. A rejected login caused by an
// unverified email address is reported with a hint to verify it first.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, a.t("email"), a)
	if err != nil {
		return err
	}
	password, err := getPassword(a.t("password"), a)
	if err != nil {
		return err
	}

	res := a.session.Login(ctx, email, password)
	if !res.Success {
		a.log.Info(ctx, "login unsuccessful", "err", res.Error)
		return a.reportResult(res, "")
	}

	a.log.Info(ctx, "login successful")
	snap := a.session.Snapshot()
	if snap.User != nil {
		a.println(a.t("logged_in_as"), snap.User.Email)
	}
	return nil
}

// Logout ends the session and forgets the product listing.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return a.report(err)
	}
	a.mu.Lock()
	a.current = listing{}
	a.mu.Unlock()
	a.println(a.t("not_logged_in"))
	return nil
}

// Forgot requests a password reset mail.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, a.t("email"), a)
	if err != nil {
		return err
	}
	return a.reportResult(a.session.ForgotPassword(ctx, email), "reset_email_sent")
}

// Reset sets a new password using the token from the reset mail.
func (a *App) Reset(ctx context.Context, token string) error {
	if token == "" {
		return a.usage("reset <token>")
	}
	password, err := getPassword(a.t("new_password"), a)
	if err != nil {
		return err
	}
	return a.reportResult(a.session.ResetPassword(ctx, token, password), "password_reset_done")
}

func (a *App) ChangePassword(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	current, err := getPassword(a.t("current_password"), a)
	if err != nil {
		return err
	}
	next, err := getPassword(a.t("new_password"), a)
	if err != nil {
		return err
	}
	return a.reportResult(a.session.ChangePassword(ctx, current, next), "password_changed")
}

// Me prints the signed-in user and when the access token expires.
func (a *App) Me(ctx context.Context) error {
	snap := a.session.Snapshot()
	if !snap.Authenticated() || snap.User == nil {
		a.println(a.t("not_logged_in"))
		return errNotLoggedIn
	}
	u := snap.User

	a.printf("%s %s\n", a.t("logged_in_as"), u.Email)
	if name := fmt.Sprintf("%s %s", u.FirstName, u.LastName); name != " " {
		a.printf("%s: %s\n", a.t("full_name"), name)
	}
	if exp, ok := a.session.AccessExpiry(ctx); ok {
		a.printf("%s: %s\n", a.t("token_expires"), exp.Local().Format(time.DateTime))
	}
	return nil
}
