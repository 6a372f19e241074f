package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hwidgate/internal/client/services"
	"github.com/dmitrijs2005/hwidgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) promptUsername(ctx context.Context) (string, error) {
	prompt := "Enter username"
	last := a.authService.LastUsername(ctx)
	if last != "" {
		prompt = fmt.Sprintf("Enter username [%s]", last)
	}
	name, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = last
	}
	return name, nil
}

// Register prompts for a username, a password and its confirmation, creates
// the account and verifies this device. Rejections are printed, not returned.
func (a *App) Register(ctx context.Context) error {
	name, err := a.promptUsername(ctx)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	s, err := a.authService.Register(ctx, name, password, confirm)
	if err != nil {
		a.println(services.UserMessage(err))
		return nil
	}

	a.println("Registered as", s.Username)
	a.verify(ctx)
	return nil
}

// Login prompts for credentials, signs in and verifies this device.
// Rejections are printed, not returned.
func (a *App) Login(ctx context.Context) error {
	name, err := a.promptUsername(ctx)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, name, password)
	if err != nil {
		a.println(services.UserMessage(err))
		return nil
	}

	a.println("Signed in as", s.Username)
	a.verify(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.println("Signed out")
	return nil
}

// Status renders the current view. A session whose verification has not
// run yet, or whose run was discarded, is verified first.
func (a *App) Status(ctx context.Context) error {
	snap := a.sessions.Snapshot()
	if snap.Session.Authenticated() && !snap.Started {
		a.verify(ctx)
		return nil
	}
	a.render()
	return nil
}

func (a *App) verify(ctx context.Context) {
	a.println("Verifying device...")
	out := a.verifier.Verify(ctx)
	if out.Discarded {
		a.log.Info(ctx, "verification result discarded", "generation", out.Generation)
	}
	a.render()
}
