package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userauth/internal/client/models"
	"github.com/dmitrijs2005/userauth/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registration successful!")
	a.printUser(user)
	return nil
}

// Login prompts for credentials and saves the returned token.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", user.Email)
	return nil
}

// Profile prints the user the saved token belongs to.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}
	a.printUser(user)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Health(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is up")
	return nil
}

func (a *App) printUser(u *models.User) {
	fmt.Fprintf(a.out, "ID:      %s\n", u.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", u.Name)
	fmt.Fprintf(a.out, "Email:   %s\n", u.Email)
	fmt.Fprintf(a.out, "Created: %s\n", u.CreatedAt.Format(time.RFC3339))
}
