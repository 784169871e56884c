package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/faktura/internal/client/api"
	"github.com/dmitrijs2005/faktura/internal/client/tokens"
	"github.com/dmitrijs2005/faktura/internal/validate"
)

// Result is how account operations report their outcome. Failures are data:
// Error holds a message ready to be shown next to the form.
type Result struct {
	Success bool
	Error   string
	// Err is the underlying error of a failed operation.
	Err  error
	Data any
}

// NeedsVerification reports a login rejected because the email address has
// not been confirmed yet.
func (r Result) NeedsVerification() bool {
	return !r.Success && strings.Contains(strings.ToLower(r.Error), "verify")
}

func ok(data any) Result { return Result{Success: true, Data: data} }

func failed(err error) Result {
	return Result{Error: errorText(err), Err: err}
}

// LoginResponse is the body of a successful /auth/login.
type LoginResponse struct {
	tokens.Pair
	TokenType string `json:"token_type,omitempty"`
}

type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login exchanges credentials for a token pair, stores it and loads the user.
// A logout issued while Login is in flight wins: Login then reports
// ErrSuperseded and leaves the session unauthenticated.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	if err := validate.Credentials(email, password).Err(); err != nil {
		return failed(err)
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	epoch := m.currentEpoch()

	var resp LoginResponse
	err := m.gw.Raw(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"email": email, "password": password},
	}, &resp)
	if err != nil {
		m.log.Info(ctx, "login rejected", "email", email, "error", err)
		return failed(err)
	}
	if resp.AccessToken == "" {
		return failed(ErrNoAccessToken)
	}

	if err := m.persist(ctx, epoch, resp.Pair); err != nil {
		return failed(err)
	}

	u, err := m.fetchUser(ctx)
	if err != nil {
		return failed(err)
	}
	if err := m.settle(epoch, StatusAuthenticated, u); err != nil {
		return failed(err)
	}

	m.log.Info(ctx, "logged in", "email", email)
	return ok(resp)
}

// Register creates an account. It never changes the session: a new account
// has to confirm its email before it can log in.
func (m *Manager) Register(ctx context.Context, r Registration) Result {
	if err := validate.Registration(r.Email, r.Password, r.FirstName, r.LastName).Err(); err != nil {
		return failed(err)
	}
	return m.post(ctx, "/auth/register", r)
}

func (m *Manager) VerifyEmail(ctx context.Context, token string) Result {
	if !validate.Required(token) {
		return failed(errors.New("verification token is required"))
	}
	return m.post(ctx, "/auth/verify-email", map[string]string{"token": token})
}

func (m *Manager) ForgotPassword(ctx context.Context, email string) Result {
	if err := validate.EmailAddress(email).Err(); err != nil {
		return failed(err)
	}
	return m.post(ctx, "/auth/forgot-password", map[string]string{"email": email})
}

func (m *Manager) ResetPassword(ctx context.Context, token, newPassword string) Result {
	if !validate.Required(token) {
		return failed(errors.New("reset token is required"))
	}
	if err := validate.NewPassword(newPassword).Err(); err != nil {
		return failed(err)
	}
	return m.post(ctx, "/auth/reset-password", map[string]string{
		"token":        token,
		"new_password": newPassword,
	})
}

// ChangePassword goes through the authenticated gateway path, so an expired
// access token is refreshed transparently.
func (m *Manager) ChangePassword(ctx context.Context, current, newPassword string) Result {
	if !validate.Required(current) {
		return failed(errors.New("current password is required"))
	}
	if err := validate.NewPassword(newPassword).Err(); err != nil {
		return failed(err)
	}
	var data map[string]any
	err := m.gw.Call(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/auth/change-password",
		Body: map[string]string{
			"current_password": current,
			"new_password":     newPassword,
		},
	}, &data)
	if err != nil {
		return failed(err)
	}
	return ok(data)
}

func (m *Manager) post(ctx context.Context, path string, body any) Result {
	var data map[string]any
	if err := m.gw.Raw(ctx, api.Request{Method: http.MethodPost, Path: path, Body: body}, &data); err != nil {
		return failed(err)
	}
	return ok(data)
}
