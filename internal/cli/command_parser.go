package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	CmdSignup         = "signup"
	CmdLogin          = "login"
	CmdLogout         = "logout"
	CmdWhoami         = "whoami"
	CmdProfile        = "profile"
	CmdChangePassword = "change-password"
	CmdBook           = "book"
	CmdRides          = "rides"
	CmdCancel         = "cancel"
	CmdTrack          = "track"
	CmdHealth         = "health"

	CmdDriverRegister = "driver-register"
	CmdDriverLogin    = "driver-login"
	CmdOnline         = "online"
	CmdOffline        = "offline"
	CmdEarnings       = "earnings"
	CmdAvailable      = "available"
	CmdAccept         = "accept"
	CmdStart          = "start"
	CmdComplete       = "complete"
)

// isKnownCommand checks if the provided command name is known.
func isKnownCommand(s string) (string, bool) {
	switch s {
	case CmdSignup, "register":
		return CmdSignup, true
	case CmdLogin:
		return CmdLogin, true
	case CmdLogout:
		return CmdLogout, true
	case CmdWhoami, "me":
		return CmdWhoami, true
	case CmdProfile:
		return CmdProfile, true
	case CmdChangePassword, "passwd":
		return CmdChangePassword, true
	case CmdBook, "b":
		return CmdBook, true
	case CmdRides, "list":
		return CmdRides, true
	case CmdCancel:
		return CmdCancel, true
	case CmdTrack:
		return CmdTrack, true
	case CmdHealth:
		return CmdHealth, true
	case CmdDriverRegister:
		return CmdDriverRegister, true
	case CmdDriverLogin:
		return CmdDriverLogin, true
	case CmdOnline:
		return CmdOnline, true
	case CmdOffline:
		return CmdOffline, true
	case CmdEarnings:
		return CmdEarnings, true
	case CmdAvailable:
		return CmdAvailable, true
	case CmdAccept:
		return CmdAccept, true
	case CmdStart:
		return CmdStart, true
	case CmdComplete:
		return CmdComplete, true
	default:
		return "", false
	}
}

// ParseCommand extracts the subcommand from args and returns the remaining
// arguments for that command's FlagSet.
func ParseCommand(args []string) (string, []string, error) {
	var cmd string
	var out []string

	for _, arg := range args {
		if cmd == "" && !strings.HasPrefix(arg, "-") {
			if c, ok := isKnownCommand(arg); ok {
				cmd = c
				continue
			}
			return "", nil, fmt.Errorf("unknown command %q", arg)
		}
		out = append(out, arg)
	}

	if cmd == "" {
		return "", out, errors.New("no command specified")
	}

	return cmd, out, nil
}

// PrintUsage prints the usage information with examples.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage:
  zippgo [--server <url>] <command> [flags]

Rider commands:
  signup            Create a rider account and log in
  login             Log in as a rider
  logout            Clear the stored session
  whoami            Show the logged-in principal
  profile           Show (or --refresh, --name, --phone) the profile
  change-password   Rotate the account password (--current, --new)
  book              Book a ride (--pickup, --drop, --vehicle)
  rides             List your rides, most recent first
  cancel            Cancel a ride (--ride)
  track             Follow a ride's status live (--ride)
  health            Probe the service health endpoint

Driver commands:
  driver-register   Register as a driver (documents via --rc, --license, --photo)
  driver-login      Log in as a driver
  online | offline  Flip availability
  earnings          Earnings summary (--period today|week|month|all)
  available         List pending rides near you
  accept            Accept a ride (--ride)
  start             Start a ride (--ride, --otp)
  complete          Complete a ride (--ride)

Examples:
  zippgo login --email a@b.com --password secret1
  zippgo book --pickup "MG Road" --drop "Airport" --vehicle Mini
  zippgo start --ride 42 --otp 1234`)
}

// AttachUsage wires a concise per-command usage to a FlagSet.
func AttachUsage(fs *flag.FlagSet, cmd string) {
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: zippgo %s [flags]\n", cmd)
		fs.PrintDefaults()
	}
}
