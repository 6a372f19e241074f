package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hwidgate/internal/client/models"
	"github.com/dmitrijs2005/hwidgate/internal/client/services"
)

func (a *App) show(title string, f models.Fields, err error) error {
	if err != nil {
		return errors.New(services.UserMessage(err))
	}
	a.println(title)
	a.printFields(f)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	f, err := a.accountService.Profile(ctx)
	return a.show("Profile:", f, err)
}

// Subscription prints both the subscription details and the subscribed flag.
func (a *App) Subscription(ctx context.Context) error {
	f, err := a.accountService.CheckSubscription(ctx)
	if err := a.show("Subscription:", f, err); err != nil {
		return err
	}
	f, err = a.accountService.IsSubscribed(ctx)
	return a.show("Subscribed:", f, err)
}

func (a *App) Banned(ctx context.Context) error {
	f, err := a.accountService.BanStatus(ctx)
	return a.show("Ban status:", f, err)
}

// Checkout starts a checkout for args[0] months, one by default.
func (a *App) Checkout(ctx context.Context, args []string) error {
	months := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			a.println("Usage: checkout [months]")
			return nil
		}
		months = n
	}

	f, err := a.accountService.CreateCheckout(ctx, months)
	if err := a.show("Checkout:", f, err); err != nil {
		return err
	}
	if url := f.String("url"); url != "" {
		a.println("Open", url, "to complete the payment")
	}
	return nil
}

func (a *App) PaymentSuccess(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: payment-success <session-id>")
		return nil
	}
	f, err := a.accountService.PaymentSuccess(ctx, args[0])
	return a.show("Payment:", f, err)
}

func (a *App) PaymentCancel(ctx context.Context) error {
	f, err := a.accountService.PaymentCancel(ctx)
	return a.show("Payment:", f, err)
}

// Ban bans the signed-in account after confirmation and signs out.
func (a *App) Ban(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This bans your account. Type 'yes' to continue", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		a.println("Cancelled")
		return nil
	}

	if err := a.accountService.Ban(ctx); err != nil {
		return errors.New(services.UserMessage(err))
	}
	a.println("Account banned")
	a.authService.Logout(ctx)
	return nil
}
