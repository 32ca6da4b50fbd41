package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"zippgo/internal/app"
	"zippgo/internal/cli"
	"zippgo/internal/config"
)

func main() {
	// global flags come before the command; Parse stops at the first
	// non-flag argument, which is the command itself
	root := flag.NewFlagSet("zippgo", flag.ContinueOnError)
	root.SetOutput(io.Discard)
	server := root.String("server", "", "Override the service base URL")
	if err := root.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.PrintUsage(os.Stdout)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		cli.PrintUsage(os.Stderr)
		os.Exit(2)
	}

	args := root.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stdout)
		os.Exit(2)
	}

	cmd, cmdArgs, err := cli.ParseCommand(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cli.PrintUsage(os.Stderr)
		os.Exit(2)
	}

	cfgPath := config.DefaultPath()
	if env := strings.TrimSpace(os.Getenv("ZIPPGO_CONFIG")); env != "" {
		cfgPath = env
	}
	cfg, err := config.Load(cfgPath, *server)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	// context cancelled on SIGINT/SIGTERM so a live track exits cleanly
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := app.New(cfg)

	if err := run(ctx, a, cmd, cmdArgs); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, cmd string, args []string) error {
	switch cmd {
	case cli.CmdLogin:
		return app.RunLogin(ctx, a, args, false)
	case cli.CmdDriverLogin:
		return app.RunLogin(ctx, a, args, true)
	case cli.CmdSignup:
		return app.RunSignup(ctx, a, args)
	case cli.CmdDriverRegister:
		return app.RunDriverRegister(ctx, a, args)
	case cli.CmdLogout:
		return app.RunLogout(ctx, a)
	case cli.CmdWhoami:
		return app.RunWhoami(ctx, a)
	case cli.CmdProfile:
		return app.RunProfile(ctx, a, args)
	case cli.CmdChangePassword:
		return app.RunChangePassword(ctx, a, args)
	case cli.CmdBook:
		return app.RunBook(ctx, a, args)
	case cli.CmdRides:
		return app.RunRides(ctx, a, args)
	case cli.CmdCancel:
		return app.RunCancel(ctx, a, args)
	case cli.CmdTrack:
		return app.RunTrack(ctx, a, args)
	case cli.CmdHealth:
		return app.RunHealth(ctx, a)
	case cli.CmdOnline:
		return app.RunOnlineStatus(ctx, a, true)
	case cli.CmdOffline:
		return app.RunOnlineStatus(ctx, a, false)
	case cli.CmdEarnings:
		return app.RunEarnings(ctx, a, args)
	case cli.CmdAvailable:
		return app.RunAvailable(ctx, a)
	case cli.CmdAccept, cli.CmdStart, cli.CmdComplete:
		return app.RunRideAction(ctx, a, cmd, args)
	default:
		// should not happen because ParseCommand validates known commands
		return fmt.Errorf("unknown command %q", cmd)
	}
}
