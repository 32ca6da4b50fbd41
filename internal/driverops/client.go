// Package driverops is the typed client for the driver side of the service:
// registration with document uploads, login, profile, online status,
// earnings, and the driver's ride actions.
package driverops

import (
	"context"
	"fmt"
	"net/url"

	"zippgo/internal/common/contextx"
	"zippgo/internal/domain/principal"
	"zippgo/internal/domain/ride"
	"zippgo/internal/gateway"
	"zippgo/internal/session"
)

// Client speaks to the /driver endpoints through the gateway.
type Client struct {
	gw *gateway.Gateway
}

// it doubles as the session manager's driver authenticator
var _ session.Authenticator = (*Client)(nil)

func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

type authPayload struct {
	Token string            `json:"token"`
	User  *principal.Driver `json:"user"`
}

type driverPayload struct {
	User *principal.Driver `json:"user"`
}

// Login authenticates a driver.
func (client *Client) Login(ctx context.Context, creds session.Credentials) (string, principal.Principal, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{creds.Email, creds.Password}

	var payload authPayload
	if err := client.gw.Post(ctx, "/driver/login", req, &payload); err != nil {
		return "", nil, err
	}
	if payload.Token == "" || payload.User == nil {
		return "", nil, fmt.Errorf("driverops: login response missing token or user")
	}
	return payload.Token, payload.User, nil
}

// Register submits a driver registration: scalar fields plus up to three
// attachments (registration certificate, license, profile photo) over the
// gateway's multipart path.
func (client *Client) Register(ctx context.Context, reg session.Registration) (string, principal.Principal, error) {
	fields := map[string]string{
		"name":          reg.Name,
		"email":         reg.Email,
		"phone":         reg.Phone,
		"password":      reg.Password,
		"vehicleType":   reg.VehicleType,
		"vehicleNumber": reg.VehicleNumber,
		"licenseNumber": reg.LicenseNumber,
	}
	files := make([]gateway.FilePart, 0, len(reg.Attachments))
	for _, attachment := range reg.Attachments {
		files = append(files, gateway.FilePart{
			Field:    attachment.Field,
			Filename: attachment.Filename,
			Content:  attachment.Content,
		})
	}

	var payload authPayload
	if err := client.gw.PostMultipart(ctx, "/driver/register", fields, files, &payload); err != nil {
		return "", nil, err
	}
	if payload.Token == "" || payload.User == nil {
		return "", nil, fmt.Errorf("driverops: register response missing token or user")
	}
	return payload.Token, payload.User, nil
}

// Profile fetches the authenticated driver's profile.
func (client *Client) Profile(ctx context.Context) (principal.Principal, error) {
	var payload driverPayload
	if err := client.gw.Get(ctx, "/driver/profile", &payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, fmt.Errorf("driverops: profile response missing user")
	}
	return payload.User, nil
}

// ProfileUpdate carries the editable driver profile fields.
type ProfileUpdate struct {
	Name          string `json:"name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	VehicleType   string `json:"vehicleType,omitempty"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`
}

// UpdateProfile edits the driver profile and returns the server's copy.
func (client *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*principal.Driver, error) {
	var payload driverPayload
	if err := client.gw.Put(ctx, "/driver/profile", update, &payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, fmt.Errorf("driverops: profile response missing user")
	}
	return payload.User, nil
}

// SetOnlineStatus flips the driver's availability flag.
func (client *Client) SetOnlineStatus(ctx context.Context, online bool) (*principal.Driver, error) {
	req := struct {
		IsOnline bool `json:"isOnline"`
	}{online}

	var payload driverPayload
	if err := client.gw.Put(ctx, "/driver/online-status", req, &payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, fmt.Errorf("driverops: online-status response missing user")
	}
	return payload.User, nil
}

// Earnings is the driver earnings summary for one period.
type Earnings struct {
	Period        string  `json:"period"` // today | week | month | all
	TotalEarnings float64 `json:"totalEarnings"`
	RideCount     int     `json:"rideCount"`
}

// EarningsFor fetches the earnings summary; period defaults to "all".
func (client *Client) EarningsFor(ctx context.Context, period string) (*Earnings, error) {
	if period == "" {
		period = "all"
	}
	var out Earnings
	if err := client.gw.Get(ctx, "/driver/earnings?period="+url.QueryEscape(period), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AvailableRides lists pending rides the driver can accept, in server order.
func (client *Client) AvailableRides(ctx context.Context) ([]ride.Ride, error) {
	var out []ride.Ride
	if err := client.gw.Get(ctx, "/driver/available-rides", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Accept claims a pending ride for this driver.
func (client *Client) Accept(ctx context.Context, rideID string) (*ride.Ride, error) {
	return client.rideAction(ctx, rideID, "accept", nil)
}

// Start begins a ride the driver already accepted; the OTP proves the rider
// was picked up.
func (client *Client) Start(ctx context.Context, rideID, otp string) (*ride.Ride, error) {
	req := struct {
		OTP string `json:"otp"`
	}{otp}
	return client.rideAction(ctx, rideID, "start", req)
}

// Complete finishes an ongoing ride.
func (client *Client) Complete(ctx context.Context, rideID string) (*ride.Ride, error) {
	return client.rideAction(ctx, rideID, "complete", nil)
}

func (client *Client) rideAction(ctx context.Context, rideID, action string, body any) (*ride.Ride, error) {
	ctx = contextx.WithRideID(ctx, rideID)
	var out ride.Ride
	if err := client.gw.Post(ctx, "/driver/rides/"+url.PathEscape(rideID)+"/"+action, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
