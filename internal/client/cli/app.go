package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/userauth/internal/client/client"
	"github.com/dmitrijs2005/userauth/internal/client/config"
	"github.com/dmitrijs2005/userauth/internal/client/repositories/session"
	"github.com/dmitrijs2005/userauth/internal/client/services"
)

// ErrUsage is returned when the command line cannot be understood.
var ErrUsage = errors.New("usage error")

const usage = `Usage: userauth [flags] <command>

Commands:
  register   create an account and log in
  login      log in with email and password
  profile    show the logged in user
  logout     forget the saved token
  health     check the server

Flags:
  -u string  server URL (default http://127.0.0.1:5000)
  -t int     request timeout, seconds
  -f string  token file
  -c string  JSON config file
`

type App struct {
	config      *config.Config
	authService services.AuthService
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp wires the HTTP client and the token file from c. Prompts read from
// stdin and output goes to stdout.
func NewApp(c *config.Config) *App {
	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, nil)
	sessions := session.NewFileRepository(c.TokenFile)

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient, sessions),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

// Run executes the command in args (as returned by config.LoadConfig).
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	cmd := args[0]
	if len(args) > 1 {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %s takes no arguments", ErrUsage, cmd)
	}

	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "profile":
		return a.Profile(ctx)
	case "logout":
		return a.Logout(ctx)
	case "health":
		return a.Health(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}
