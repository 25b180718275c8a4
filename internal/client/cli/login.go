package cli

import (
	"context"
	"os"

	"github.com/evote-app/evote-backend/internal/shared"
)

// Login runs the one-time credential flow: the server emails a login ID and
// password, the user types them in, and a session token is installed on
// success.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter your email address", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.RequestLogin(ctx, email); err != nil {
		printlnFn("Login request failed:", err)
		return err
	}
	printlnFn("A one-time login ID and password were sent to", email)

	loginID, err := GetSimpleText(a.reader, "Enter the login ID from the email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.api.ValidateLogin(ctx, email, loginID, string(password))
	if err != nil {
		printlnFn("Login failed:", err)
		return err
	}

	a.email = user.Email
	printlnFn("Logged in as", user.Email)
	return nil
}

// Logout drops the session token.
func (a *App) Logout(ctx context.Context) error {
	a.api.ClearToken()
	a.email = ""
	printlnFn("Logged out")
	return nil
}
