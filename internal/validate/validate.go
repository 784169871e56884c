// Package validate holds the client-side checks that run before any network
// call. Failures carry the translation key of their message so the View
// Layer can render them in the active language.
package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var ErrValidation = errors.New("validation error")

// MinPasswordLength is the shortest password the backend accepts.
const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error is a single failed check on one input field.
type Error struct {
	Field   string
	Key     string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return ErrValidation }

func newError(field, key, msg string) *Error {
	return &Error{Field: field, Key: key, Message: msg}
}

func Email(s string) bool { return emailRe.MatchString(s) }

func Password(s string) bool { return len([]rune(s)) >= MinPasswordLength }

func Required(s string) bool { return strings.TrimSpace(s) != "" }

// Price accepts any non-negative decimal number.
func Price(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && v >= 0
}

// Errors is the set of failures for one form, in field order.
type Errors []*Error

// Err returns the first failure, or nil when the form is valid.
func (es Errors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es[0]
}

// Field returns the failure recorded for field, if any.
func (es Errors) Field(field string) *Error {
	for _, e := range es {
		if e.Field == field {
			return e
		}
	}
	return nil
}

// EmailAddress checks a single email field.
func EmailAddress(email string) Errors {
	switch {
	case email == "":
		return Errors{newError("email", "email_required", "Email is required")}
	case !Email(email):
		return Errors{newError("email", "email_invalid", "Please enter a valid email")}
	}
	return nil
}

// Credentials checks a login form.
func Credentials(email, password string) Errors {
	es := EmailAddress(email)
	switch {
	case password == "":
		es = append(es, newError("password", "password_required", "Password is required"))
	case !Password(password):
		es = append(es, newError("password", "password_min_length", "Password must be at least 6 characters"))
	}
	return es
}

// Registration checks a sign-up form.
func Registration(email, password, firstName, lastName string) Errors {
	es := Credentials(email, password)
	if !Required(firstName) {
		es = append(es, newError("first_name", "first_name_required", "First name is required"))
	}
	if !Required(lastName) {
		es = append(es, newError("last_name", "last_name_required", "Last name is required"))
	}
	return es
}

// NewPassword checks a replacement password.
func NewPassword(password string) Errors {
	if !Password(password) {
		return Errors{newError("new_password", "password_min_length", "Password must be at least 6 characters")}
	}
	return nil
}

// Product checks the product edit form.
func Product(articleNumber, name, price string) Errors {
	var es Errors
	if !Required(articleNumber) {
		es = append(es, newError("article_number", "article_number_required", "Article number is required"))
	}
	if !Required(name) {
		es = append(es, newError("product", "product_name_required", "Product name is required"))
	}
	if !Price(price) {
		es = append(es, newError("price", "price_invalid", "Valid price is required"))
	}
	return es
}
