// Package validate checks login and registration form input before any
// credential lookup happens.
package validate

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/lepinkainen/marquee/internal/errors"
)

// Field names used as keys in Result.Fields.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldPhone    = "phoneNumber"
)

const (
	minPasswordLen = 8
	minNameLen     = 2
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// Result collects per-field error messages. An empty result is valid.
type Result struct {
	Fields map[string]string
}

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r.Fields) == 0
}

// Err returns a *errors.ValidationError for an invalid result, nil otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return errors.NewValidationError(r.Fields)
}

func (r *Result) check(field, msg string) {
	if msg == "" {
		return
	}
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[field] = msg
}

// Login validates the login form.
func Login(email, password string) Result {
	var r Result
	r.check(FieldEmail, Email(email))
	if password == "" {
		r.check(FieldPassword, "Password is required")
	}
	return r
}

// Register validates the registration form.
func Register(name, email, password, phone string) Result {
	var r Result
	r.check(FieldName, Name(name))
	r.check(FieldEmail, Email(email))
	r.check(FieldPassword, Password(password))
	r.check(FieldPhone, Phone(phone))
	return r
}

// Email returns an error message for an unusable address, or "".
func Email(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "Please enter a valid email"
	}
	_, domain, _ := strings.Cut(addr.Address, "@")
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "Please enter a valid email"
	}
	return ""
}

// Password requires eight characters with an upper-case letter, a
// lower-case letter and a digit.
func Password(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len([]rune(password)) < minPasswordLen {
		return "Password must be at least 8 characters"
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return "Password must contain an uppercase letter, a lowercase letter and a number"
	}
	return ""
}

// Name requires at least two characters.
func Name(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required"
	}
	if len([]rune(name)) < minNameLen {
		return "Name must be at least 2 characters"
	}
	return ""
}

// Phone accepts 10 to 15 digits with an optional leading +.
func Phone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "Phone number is required"
	}
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return "Phone number must be 10 to 15 digits"
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "Phone number must contain only digits"
		}
	}
	return ""
}
