package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mfgtrace/tracectl/internal/config"
	"github.com/mfgtrace/tracectl/internal/credstore"
	"github.com/mfgtrace/tracectl/internal/feedback"
	"github.com/mfgtrace/tracectl/internal/logging"
	"github.com/mfgtrace/tracectl/internal/session"
	"github.com/mfgtrace/tracectl/internal/tui"
	"github.com/mfgtrace/tracectl/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// errNotLoggedIn is returned by commands that need a session when none is stored.
var errNotLoggedIn = errors.New("not logged in")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cli carries what every command needs once configuration is loaded.
type cli struct {
	cfg    *config.Config
	store  *credstore.Store
	closer io.Closer
}

// client returns a gateway that reports failures through n.
func (c *cli) client(n client.Notifier) *client.Client {
	return client.New(c.cfg.APIBase(), c.store, n)
}

// session runs the authentication gate for a plain command.
func (c *cli) session(path string) (*session.Manager, session.Outcome) {
	mgr := session.NewManager(c.store, tui.NewRouter(path), &session.Context{})
	return mgr, mgr.EnsureAuthenticated()
}

func newRootCmd() *cobra.Command {
	app := &cli{}
	var page string

	root := &cobra.Command{
		Use:   "tracectl",
		Short: "Manufacturing traceability console",
		Long: `tracectl is the operator console for the manufacturing traceability panel.
Without a subcommand it opens the interactive terminal UI on the dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			mode := logging.Console
			if cmd.Name() == "tracectl" {
				mode = logging.File
			}
			closer, err := logging.Setup(cfg, mode)
			if err != nil {
				return err
			}
			app.cfg = cfg
			app.store = credstore.New(cfg.HomeDir)
			app.closer = closer
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if app.closer != nil {
				return app.closer.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), app, page)
		},
	}
	root.Flags().StringVar(&page, "page", "/dashboard", "page to open: dashboard, products, tracking, quality, suppliers, devices")

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newScanCmd(app),
		newProductsCmd(app),
		newTrackingCmd(app),
		newStatsCmd(app),
		newOpenCmd(app),
		newVersionCmd(),
	)
	return root
}

func runTUI(ctx context.Context, app *cli, page string) error {
	inbox := feedback.NewInbox()
	defer inbox.Close()

	c := app.client(inbox)
	router := tui.NewRouter(page)
	mgr := session.NewManager(app.store, router, &session.Context{})
	log.Info().Str("api", app.cfg.APIBase()).Str("page", router.Path()).Msg("starting tui")

	p := tea.NewProgram(tui.NewApp(c, mgr, router, inbox), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
