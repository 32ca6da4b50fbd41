// Package rides is the typed client for the ride lifecycle: booking,
// listing, and status transitions.
package rides

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"zippgo/internal/common/contextx"
	"zippgo/internal/domain/ride"
	"zippgo/internal/gateway"
)

// Client speaks to the /rides endpoints through the gateway.
type Client struct {
	gw *gateway.Gateway
}

func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

// BookingRequest is the body for POST /rides/book.
type BookingRequest struct {
	PickupLocation string           `json:"pickupLocation"`
	DropLocation   string           `json:"dropLocation"`
	VehicleType    ride.VehicleType `json:"vehicleType"`
}

// TransitionExtra carries transition-specific data; currently only the OTP
// required for Accepted -> Ongoing.
type TransitionExtra struct {
	OTP string
}

// Book submits a new ride request; the created ride comes back in Pending.
// Each call carries a fresh client-generated idempotency key so the service
// can deduplicate a resubmission of the same booking.
func (client *Client) Book(ctx context.Context, req BookingRequest) (*ride.Ride, error) {
	var out ride.Ride
	err := client.gw.Post(ctx, "/rides/book", req, &out, gateway.WithIdempotencyKey(uuid.NewString()))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListForRider returns a rider's rides in server order, most recent first.
// The client does not re-sort.
func (client *Client) ListForRider(ctx context.Context, riderID string) ([]ride.Ride, error) {
	var out []ride.Ride
	if err := client.gw.Get(ctx, "/rides/user/"+url.PathEscape(riderID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every ride the caller is allowed to see (the dashboard's
// admin view).
func (client *Client) ListAll(ctx context.Context) ([]ride.Ride, error) {
	var out []ride.Ride
	if err := client.gw.Get(ctx, "/rides/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Transition issues the status-change call for target and returns the
// updated ride. The requested transition is not validated locally: the
// service owns the transition table, and its rejection comes back as a
// validation failure.
func (client *Client) Transition(ctx context.Context, rideID string, target ride.Status, extra *TransitionExtra) (*ride.Ride, error) {
	ctx = contextx.WithRideID(ctx, rideID)

	var (
		out ride.Ride
		err error
	)
	switch target {
	case ride.StatusAccepted:
		err = client.gw.Post(ctx, "/driver/rides/"+url.PathEscape(rideID)+"/accept", nil, &out)
	case ride.StatusOngoing:
		body := struct {
			OTP string `json:"otp"`
		}{}
		if extra != nil {
			body.OTP = extra.OTP
		}
		err = client.gw.Post(ctx, "/driver/rides/"+url.PathEscape(rideID)+"/start", body, &out)
	case ride.StatusCompleted:
		err = client.gw.Post(ctx, "/driver/rides/"+url.PathEscape(rideID)+"/complete", nil, &out)
	default:
		// cancel and anything else go through the generic status endpoint
		body := struct {
			Status ride.Status `json:"status"`
		}{target}
		err = client.gw.Put(ctx, "/rides/status/"+url.PathEscape(rideID), body, &out)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the service's health endpoint.
func (client *Client) Health(ctx context.Context) error {
	return client.gw.Get(ctx, "/health", nil)
}
