package tui

import (
	stdErrors "errors"

	"github.com/charmbracelet/huh"

	"github.com/lepinkainen/marquee/internal/session"
	"github.com/lepinkainen/marquee/internal/validate"
)

var runForm = func(f *huh.Form) error {
	return f.Run()
}

// LoginInput is what the login form collects.
type LoginInput struct {
	Email    string
	Password string
}

// fieldCheck adapts a validate rule (message or "") to huh's validator signature.
func fieldCheck(rule func(string) string) func(string) error {
	return func(value string) error {
		if msg := rule(value); msg != "" {
			return stdErrors.New(msg)
		}
		return nil
	}
}

func requirePassword(value string) string {
	if value == "" {
		return "Password is required"
	}
	return ""
}

func newLoginForm(in *LoginInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome back").
				Description("Sign in to browse movies"),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&in.Email).
				Validate(fieldCheck(validate.Email)),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&in.Password).
				Validate(fieldCheck(requirePassword)),
		),
	)
}

func newRegisterForm(in *session.RegisterInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Create account").
				Description("Sign up to start browsing"),
			huh.NewInput().
				Title("Name").
				Value(&in.Name).
				Validate(fieldCheck(validate.Name)),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&in.Email).
				Validate(fieldCheck(validate.Email)),
			huh.NewInput().
				Title("Password").
				Description("At least 8 characters with upper and lower case letters and a number").
				EchoMode(huh.EchoModePassword).
				Value(&in.Password).
				Validate(fieldCheck(validate.Password)),
			huh.NewInput().
				Title("Phone number").
				Placeholder("+358401234567").
				Value(&in.PhoneNumber).
				Validate(fieldCheck(validate.Phone)),
		),
	)
}

// PromptLogin shows the login form.
func PromptLogin() (LoginInput, error) {
	var in LoginInput
	if err := runForm(newLoginForm(&in)); err != nil {
		return LoginInput{}, err
	}
	return in, nil
}

// PromptRegister shows the registration form.
func PromptRegister() (session.RegisterInput, error) {
	var in session.RegisterInput
	if err := runForm(newRegisterForm(&in)); err != nil {
		return session.RegisterInput{}, err
	}
	return in, nil
}
