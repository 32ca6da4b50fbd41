// Package principal models the authenticated actor of a session: a rider or
// a driver, as a tagged variant over a shared identity rather than one loose
// record with optional keys.
package principal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Identity is the base shape both variants share.
type Identity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// Principal is an authenticated actor. Exactly two implementations exist:
// *Rider and *Driver. The session owns the principal; everything else holds
// a read reference.
type Principal interface {
	Kind() Kind
	Base() Identity
}

// Rider is a passenger account.
type Rider struct {
	Identity
}

func (r *Rider) Kind() Kind     { return KindRider }
func (r *Rider) Base() Identity { return r.Identity }

// Driver is a driver account. On top of the shared identity it carries the
// onboarding document references and the online/offline flag.
type Driver struct {
	Identity
	VehicleType   string `json:"vehicleType,omitempty"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	RCDocument    string `json:"rc,omitempty"`           // registration certificate upload ref
	LicenseDoc    string `json:"license,omitempty"`      // license upload ref
	ProfilePhoto  string `json:"profilePhoto,omitempty"` // photo upload ref
	IsOnline      bool   `json:"isOnline"`
}

func (d *Driver) Kind() Kind     { return KindDriver }
func (d *Driver) Base() Identity { return d.Identity }

// envelope is the serialized form used by the credential store, with an
// explicit discriminator so decoding restores the right variant.
type envelope struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Encode serializes a principal with its kind discriminator.
func Encode(p Principal) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("encode principal: nil principal")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode principal: %w", err)
	}
	return json.Marshal(envelope{Kind: p.Kind(), Data: data})
}

// Decode restores a principal from its Encode form.
func Decode(raw []byte) (Principal, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode principal: %w", err)
	}

	switch env.Kind {
	case KindRider:
		var r Rider
		if err := json.Unmarshal(env.Data, &r); err != nil {
			return nil, fmt.Errorf("decode rider: %w", err)
		}
		return &r, nil
	case KindDriver:
		var d Driver
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, fmt.Errorf("decode driver: %w", err)
		}
		return &d, nil
	default:
		return nil, fmt.Errorf("decode principal: %w: %q", ErrInvalidKind, env.Kind)
	}
}
