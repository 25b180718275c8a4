package cli

import (
	"context"
	"os"
)

// Register creates an account. The server replies by emailing a verification
// code; the user confirms it with the "verify" command.
func (a *App) Register(ctx context.Context) error {
	firstName, err := GetSimpleText(a.reader, "Enter your first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(a.reader, "Enter your last name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter your email address", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.api.Register(ctx, firstName, lastName, email)
	if err != nil {
		printlnFn("Registration failed:", err)
		return err
	}

	printlnFn("Registered", user.Email, "- check your inbox for the verification code, then run 'verify'")
	return nil
}

// Verify confirms the emailed verification code.
func (a *App) Verify(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter your email address", os.Stdout)
	if err != nil {
		return err
	}
	code, err := GetSimpleText(a.reader, "Enter the verification code", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.VerifyEmail(ctx, email, code); err != nil {
		printlnFn("Verification failed:", err)
		return err
	}

	printlnFn("Email verified. You can now log in.")
	return nil
}
