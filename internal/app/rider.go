package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"zippgo/internal/auth"
	"zippgo/internal/cli"
	"zippgo/internal/domain/principal"
	"zippgo/internal/domain/ride"
	"zippgo/internal/driverops"
	"zippgo/internal/rides"
	"zippgo/internal/session"
)

func RunLogin(ctx context.Context, a *App, args []string, asDriver bool) error {
	name := cli.CmdLogin
	if asDriver {
		name = cli.CmdDriverLogin
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	cli.AttachUsage(fs, name)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("--email and --password are required")
	}

	kind := principal.KindRider
	if asDriver {
		kind = principal.KindDriver
	}
	p, err := a.Session.Authenticate(ctx, session.Credentials{Email: *email, Password: *password}, kind)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", p.Base().Name, p.Kind())
	return nil
}

func RunSignup(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet(cli.CmdSignup, flag.ContinueOnError)
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email")
	phone := fs.String("phone", "", "Phone number")
	password := fs.String("password", "", "Password")
	cli.AttachUsage(fs, cli.CmdSignup)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" || *password == "" {
		return errors.New("--name, --email and --password are required")
	}

	reg := session.Registration{Name: *name, Email: *email, Phone: *phone, Password: *password}
	p, err := a.Session.Register(ctx, reg, principal.KindRider)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome to ZippGo, %s!\n", p.Base().Name)
	return nil
}

func RunLogout(ctx context.Context, a *App) error {
	a.Session.Logout(ctx)
	fmt.Println("Logged out.")
	return nil
}

func RunWhoami(_ context.Context, a *App) error {
	p := a.Session.Principal()
	if p == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	id := p.Base()
	fmt.Printf("%s <%s> (%s)\n", id.Name, id.Email, p.Kind())
	return nil
}

func RunProfile(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet(cli.CmdProfile, flag.ContinueOnError)
	refresh := fs.Bool("refresh", false, "Re-fetch the profile from the server")
	newName := fs.String("name", "", "Update the display name")
	newPhone := fs.String("phone", "", "Update the phone number")
	cli.AttachUsage(fs, cli.CmdProfile)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := a.Session.Principal()
	if p == nil {
		return session.ErrNotAuthenticated
	}

	if *newName != "" || *newPhone != "" {
		var err error
		switch p.Kind() {
		case principal.KindDriver:
			_, err = a.Driver.UpdateProfile(ctx, driverops.ProfileUpdate{Name: *newName, Phone: *newPhone})
		default:
			_, err = a.Rider.UpdateProfile(ctx, auth.ProfileUpdate{Name: *newName, Phone: *newPhone})
		}
		if err != nil {
			return err
		}
		// re-sync the cached principal with the server's copy
		*refresh = true
	}

	if *refresh {
		var err error
		if p, err = a.Session.RefreshProfile(ctx); err != nil {
			return err
		}
	}

	id := p.Base()
	fmt.Printf("Name:  %s\nEmail: %s\nPhone: %s\n", id.Name, id.Email, id.Phone)
	if d, ok := p.(*principal.Driver); ok {
		fmt.Printf("Vehicle: %s %s\nOnline:  %v\n", d.VehicleType, d.VehicleNumber, d.IsOnline)
	}
	return nil
}

func RunChangePassword(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet(cli.CmdChangePassword, flag.ContinueOnError)
	current := fs.String("current", "", "Current password")
	next := fs.String("new", "", "New password")
	cli.AttachUsage(fs, cli.CmdChangePassword)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *current == "" || *next == "" {
		return errors.New("--current and --new are required")
	}

	if err := a.Rider.ChangePassword(ctx, *current, *next); err != nil {
		return err
	}
	fmt.Println("Password updated.")
	return nil
}

func RunBook(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet(cli.CmdBook, flag.ContinueOnError)
	pickup := fs.String("pickup", "", "Pickup location")
	drop := fs.String("drop", "", "Drop location")
	vehicle := fs.String("vehicle", "Mini", "Vehicle type (Bike|Auto|Mini|Sedan|SUV)")
	cli.AttachUsage(fs, cli.CmdBook)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pickup == "" || *drop == "" {
		return errors.New("--pickup and --drop are required")
	}
	vt, err := ride.ParseVehicleType(*vehicle)
	if err != nil {
		return err
	}

	booked, err := a.Rides.Book(ctx, rides.BookingRequest{
		PickupLocation: *pickup,
		DropLocation:   *drop,
		VehicleType:    vt,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Ride %s booked: %s -> %s (%s), fare %.2f, status %s\n",
		booked.ID, booked.PickupLocation, booked.DropLocation, booked.VehicleType, booked.Fare, booked.Status)
	if booked.OTP != "" {
		fmt.Printf("Share OTP %s with your driver at pickup.\n", booked.OTP)
	}
	return nil
}

func RunRides(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet(cli.CmdRides, flag.ContinueOnError)
	all := fs.Bool("all", false, "List every ride, not just yours")
	cli.AttachUsage(fs, cli.CmdRides)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		list []ride.Ride
		err  error
	)
	if *all {
		list, err = a.Rides.ListAll(ctx)
	} else {
		p := a.Session.Principal()
		if p == nil {
			return session.ErrNotAuthenticated
		}
		list, err = a.Rides.ListForRider(ctx, p.Base().ID)
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No rides yet.")
		return nil
	}
	for _, r := range list {
		fmt.Printf("%s  %-10s %s -> %s  %.2f\n", r.ID, r.Status, r.PickupLocation, r.DropLocation, r.Fare)
	}
	return nil
}

func RunCancel(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet(cli.CmdCancel, flag.ContinueOnError)
	rideID := fs.String("ride", "", "Ride id")
	cli.AttachUsage(fs, cli.CmdCancel)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rideID == "" {
		return errors.New("--ride is required")
	}

	updated, err := a.Rides.Transition(ctx, *rideID, ride.StatusCancelled, nil)
	if err != nil {
		return err
	}
	fmt.Printf("Ride %s is now %s\n", updated.ID, updated.Status)
	return nil
}

func RunTrack(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet(cli.CmdTrack, flag.ContinueOnError)
	rideID := fs.String("ride", "", "Ride id")
	from := fs.String("from", "Pending", "Last status you observed")
	cli.AttachUsage(fs, cli.CmdTrack)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rideID == "" {
		return errors.New("--ride is required")
	}
	status, err := ride.ParseStatus(*from)
	if err != nil {
		return err
	}

	updates, err := a.Track.Follow(ctx, *rideID, status)
	if err != nil {
		return err
	}
	for update := range updates {
		if update.Err != nil {
			fmt.Fprintln(os.Stderr, "ignored:", update.Err)
			continue
		}
		fmt.Printf("ride %s: %s", *rideID, update.Status)
		if update.Driver != nil {
			fmt.Printf(" (driver %s)", update.Driver.Name)
		}
		fmt.Println()
	}
	return nil
}

func RunHealth(ctx context.Context, a *App) error {
	if err := a.Rides.Health(ctx); err != nil {
		return err
	}
	fmt.Println("Service is up.")
	return nil
}
