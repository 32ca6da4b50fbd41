// Package app wires the client core together and backs the CLI commands.
// Everything here is thin presentation over the session manager and the
// typed endpoint clients.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"zippgo/internal/auth"
	"zippgo/internal/common/log"
	"zippgo/internal/config"
	"zippgo/internal/credstore"
	"zippgo/internal/driverops"
	"zippgo/internal/gateway"
	"zippgo/internal/rides"
	"zippgo/internal/session"
	"zippgo/internal/tracking"
)

// App is the composed client.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Session *session.Manager
	Rider   *auth.Client
	Driver  *driverops.Client
	Rides   *rides.Client
	Track   *tracking.Client
}

// New composes the client core: store, session (seeded from the store),
// gateway (with the session as its token/teardown capability), and the
// endpoint clients, which are then bound back onto the session manager.
func New(cfg *config.Config) *App {
	logger := log.New("zippgo-client", cfg.Log.Level)
	store := credstore.New(cfg.Credentials.Path)
	sess := session.NewManager(store, logger)

	gw := gateway.New(cfg.Server.BaseURL, cfg.Server.Timeout, sess, logger)
	gw.OnForcedLogout(func() {
		fmt.Fprintln(os.Stderr, "Your session is no longer valid. Please log in again.")
	})

	rider := auth.NewClient(gw)
	driver := driverops.NewClient(gw)
	sess.Bind(rider, driver)

	return &App{
		Config:  cfg,
		Log:     logger,
		Session: sess,
		Rider:   rider,
		Driver:  driver,
		Rides:   rides.NewClient(gw),
		Track:   tracking.New(cfg.Server.WSURL, sess, logger),
	}
}
