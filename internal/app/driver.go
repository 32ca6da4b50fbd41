package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"zippgo/internal/cli"
	"zippgo/internal/domain/principal"
	"zippgo/internal/session"
)

func RunDriverRegister(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet(cli.CmdDriverRegister, flag.ContinueOnError)
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email")
	phone := fs.String("phone", "", "Phone number")
	password := fs.String("password", "", "Password")
	vehicleType := fs.String("vehicle", "", "Vehicle type")
	vehicleNumber := fs.String("vehicle-number", "", "Vehicle registration number")
	licenseNumber := fs.String("license-number", "", "Driving license number")
	rcPath := fs.String("rc", "", "Path to registration certificate")
	licensePath := fs.String("license", "", "Path to driving license scan")
	photoPath := fs.String("photo", "", "Path to profile photo")
	cli.AttachUsage(fs, cli.CmdDriverRegister)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" || *password == "" {
		return errors.New("--name, --email and --password are required")
	}

	reg := session.Registration{
		Name:          *name,
		Email:         *email,
		Phone:         *phone,
		Password:      *password,
		VehicleType:   *vehicleType,
		VehicleNumber: *vehicleNumber,
		LicenseNumber: *licenseNumber,
	}
	for field, path := range map[string]string{
		"rc":           *rcPath,
		"license":      *licensePath,
		"profilePhoto": *photoPath,
	} {
		if path == "" {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s attachment: %w", field, err)
		}
		reg.Attachments = append(reg.Attachments, session.Attachment{
			Field:    field,
			Filename: filepath.Base(path),
			Content:  content,
		})
	}

	p, err := a.Session.Register(ctx, reg, principal.KindDriver)
	if err != nil {
		return err
	}
	fmt.Printf("Driver account created for %s.\n", p.Base().Name)
	return nil
}

func RunOnlineStatus(ctx context.Context, a *App, online bool) error {
	d, err := a.Driver.SetOnlineStatus(ctx, online)
	if err != nil {
		return err
	}
	if d.IsOnline {
		fmt.Println("You are online and visible to riders.")
	} else {
		fmt.Println("You are offline.")
	}
	return nil
}

func RunEarnings(ctx context.Context, a *App, args []string) error {
	fs := flag.NewFlagSet(cli.CmdEarnings, flag.ContinueOnError)
	period := fs.String("period", "all", "today|week|month|all")
	cli.AttachUsage(fs, cli.CmdEarnings)
	if err := fs.Parse(args); err != nil {
		return err
	}

	earnings, err := a.Driver.EarningsFor(ctx, *period)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %.2f over %d rides\n", earnings.Period, earnings.TotalEarnings, earnings.RideCount)
	return nil
}

func RunAvailable(ctx context.Context, a *App) error {
	list, err := a.Driver.AvailableRides(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No pending rides right now.")
		return nil
	}
	for _, r := range list {
		fmt.Printf("%s  %s -> %s  (%s, fare %.2f)\n", r.ID, r.PickupLocation, r.DropLocation, r.VehicleType, r.Fare)
	}
	return nil
}

func RunRideAction(ctx context.Context, a *App, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	rideID := fs.String("ride", "", "Ride id")
	otp := fs.String("otp", "", "Pickup OTP from the rider (start only)")
	cli.AttachUsage(fs, cmd)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rideID == "" {
		return errors.New("--ride is required")
	}

	var err error
	switch cmd {
	case cli.CmdAccept:
		_, err = a.Driver.Accept(ctx, *rideID)
	case cli.CmdStart:
		if *otp == "" {
			return errors.New("--otp is required to start a ride")
		}
		_, err = a.Driver.Start(ctx, *rideID, *otp)
	case cli.CmdComplete:
		_, err = a.Driver.Complete(ctx, *rideID)
	default:
		return fmt.Errorf("unknown ride action %q", cmd)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Ride %s: %s ok\n", *rideID, cmd)
	return nil
}
