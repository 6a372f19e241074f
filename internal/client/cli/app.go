package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/hwidgate/internal/client/gate"
	"github.com/dmitrijs2005/hwidgate/internal/client/models"
	"github.com/dmitrijs2005/hwidgate/internal/client/services"
	"github.com/dmitrijs2005/hwidgate/internal/client/session"
	"github.com/dmitrijs2005/hwidgate/internal/logging"
)

// Verifier runs device verification for the current session.
type Verifier interface {
	Verify(ctx context.Context) services.Outcome
}

// AccountService is the account surface the CLI drives.
type AccountService interface {
	Profile(ctx context.Context) (models.Fields, error)
	CheckSubscription(ctx context.Context) (models.Fields, error)
	IsSubscribed(ctx context.Context) (models.Fields, error)
	BanStatus(ctx context.Context) (models.Fields, error)
	Ban(ctx context.Context) error
	CreateCheckout(ctx context.Context, months int) (models.Fields, error)
	PaymentSuccess(ctx context.Context, sessionID string) (models.Fields, error)
	PaymentCancel(ctx context.Context) (models.Fields, error)
}

type App struct {
	authService    services.AuthService
	verifier       Verifier
	accountService AccountService
	sessions       *session.Holder
	log            logging.Logger
	reader         *bufio.Reader
	out            io.Writer
}

// NewApp builds the REPL application. in and out are the user's terminal.
func NewApp(as services.AuthService, v Verifier, acc AccountService, sessions *session.Holder,
	log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService:    as,
		verifier:       v,
		accountService: acc,
		sessions:       sessions,
		log:            log,
		reader:         bufio.NewReader(in),
		out:            out,
	}
}

// Run greets the user and blocks in the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to hwidgate (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	a.log.Debug(ctx, "repl finished")
}

func (a *App) view() gate.View {
	v, _ := gate.Current(a.sessions)
	return v
}

func (a *App) getStatus() string {
	v, snap := gate.Current(a.sessions)
	if !snap.Session.Authenticated() {
		return v.String()
	}
	return fmt.Sprintf("%s %s", snap.Session.Username, v)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
