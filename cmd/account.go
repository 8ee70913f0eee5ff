package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/session"
)

// LoginCmd signs a user in
type LoginCmd struct {
	Email    string `short:"e" help:"Account email; prompts when empty"`
	Password string `help:"Account password; prompts when empty"`
}

// RegisterCmd creates an account
type RegisterCmd struct {
	Name     string `help:"Display name"`
	Email    string `short:"e" help:"Account email"`
	Password string `help:"At least 8 characters with upper and lower case letters and a number"`
	Phone    string `help:"Phone number, 10 to 15 digits"`
}

// LogoutCmd ends the current session
type LogoutCmd struct{}

// WhoamiCmd prints the signed in user
type WhoamiCmd struct{}

func (l *LoginCmd) Run() error {
	return withApp(func(ctx context.Context, a *app) error {
		email, password := l.Email, l.Password
		if email == "" || password == "" {
			in, err := promptLogin()
			if err != nil {
				return err
			}
			email, password = in.Email, in.Password
		}

		if err := a.session.Login(ctx, email, password); err != nil {
			return err
		}
		return printSignedIn(a)
	})
}

func (r *RegisterCmd) Run() error {
	return withApp(func(ctx context.Context, a *app) error {
		in := session.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password, PhoneNumber: r.Phone}
		if in.Name == "" || in.Email == "" || in.Password == "" || in.PhoneNumber == "" {
			prompted, err := promptRegister()
			if err != nil {
				return err
			}
			in = prompted
		}

		if err := a.session.Register(ctx, in); err != nil {
			return err
		}
		return printSignedIn(a)
	})
}

func (l *LogoutCmd) Run() error {
	return withApp(func(ctx context.Context, a *app) error {
		if !a.session.IsAuthenticated() {
			_, err := fmt.Fprintln(stdout, "Not signed in")
			return err
		}
		if err := a.session.Logout(ctx); err != nil {
			return err
		}
		_, err := fmt.Fprintln(stdout, "Signed out")
		return err
	})
}

func (w *WhoamiCmd) Run() error {
	return withApp(func(_ context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		u := a.session.User()
		_, err := fmt.Fprintf(stdout, "%s <%s>\nID:    %s\nPhone: %s\n", u.Name, u.Email, u.ID, u.PhoneNumber)
		return err
	})
}

// interactiveLogin shows the login form until it succeeds or the user aborts.
func interactiveLogin(ctx context.Context, a *app) error {
	for {
		in, err := promptLogin()
		if err != nil {
			return err
		}
		err = a.session.Login(ctx, in.Email, in.Password)
		if err == nil {
			return nil
		}
		if !errors.IsAuthError(err) && !errors.IsValidationError(err) {
			return err
		}
		fmt.Fprintln(stdout, errors.UserMessage(err))
	}
}

func printSignedIn(a *app) error {
	_, err := fmt.Fprintf(stdout, "Signed in as %s <%s>\n", a.session.User().Name, a.session.User().Email)
	return err
}
