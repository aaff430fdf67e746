package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/bpkeeper/internal/common"
)

// Register creates an account and signs the user in.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Display name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.auth.Register(ctx, email, name, password)
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			printlnFn("This email is already registered.")
			return err
		}
		printlnFn("Registration failed:", err)
		return err
	}

	a.user = id
	printlnFn("Welcome,", id.DisplayName)
	return a.store.SetUser(ctx, id.ID)
}

// Login authenticates and switches the store to the user's readings.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			printlnFn("Invalid email or password.")
			return err
		}
		printlnFn("Login failed:", err)
		return err
	}

	a.user = id
	printlnFn("Welcome,", id.DisplayName)
	return a.store.SetUser(ctx, id.ID)
}

// Logout clears the cached session and empties the store.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err)
		return err
	}
	a.user = nil
	printlnFn("Logged out.")
	return a.store.SetUser(ctx, "")
}
