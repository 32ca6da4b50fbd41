package rides

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zippgo/internal/domain/ride"
	"zippgo/internal/gateway"
)

type fakeHooks struct {
	token  string
	has    bool
	forced int
}

func (f *fakeHooks) CurrentToken() (string, bool)  { return f.token, f.has }
func (f *fakeHooks) ForceLogout(_ context.Context) { f.forced++; f.token = ""; f.has = false }

func newClient(t *testing.T, handler http.HandlerFunc, hooks *fakeHooks) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	gw := gateway.New(srv.URL, 5*time.Second, hooks, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewClient(gw)
}

func writeRide(w http.ResponseWriter, r ride.Ride) {
	payload, _ := json.Marshal(r)
	w.Write([]byte(`{"success":true,"data":` + string(payload) + `}`))
}

func TestBook(t *testing.T) {
	t.Parallel()

	var (
		gotPath string
		gotKey  string
		gotBody BookingRequest
	)
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode booking body: %v", err)
		}
		writeRide(w, ride.Ride{
			ID:             "r1",
			PickupLocation: gotBody.PickupLocation,
			DropLocation:   gotBody.DropLocation,
			VehicleType:    gotBody.VehicleType,
			Status:         ride.StatusPending,
		})
	}, &fakeHooks{token: "tok", has: true})

	booked, err := client.Book(context.Background(), BookingRequest{
		PickupLocation: "MG Road",
		DropLocation:   "Airport",
		VehicleType:    ride.VehicleSedan,
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if gotPath != "/rides/book" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey == "" {
		t.Error("booking must carry an idempotency key")
	}
	if booked.Status != ride.StatusPending {
		t.Errorf("status = %q, want Pending", booked.Status)
	}
	if booked.PickupLocation != "MG Road" || booked.DropLocation != "Airport" {
		t.Errorf("locations = %q -> %q", booked.PickupLocation, booked.DropLocation)
	}
}

func TestBookKeysAreFreshPerCall(t *testing.T) {
	t.Parallel()

	keys := make(map[string]bool)
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		keys[r.Header.Get("X-Idempotency-Key")] = true
		writeRide(w, ride.Ride{ID: "r1", Status: ride.StatusPending})
	}, &fakeHooks{token: "tok", has: true})

	for i := 0; i < 3; i++ {
		if _, err := client.Book(context.Background(), BookingRequest{}); err != nil {
			t.Fatalf("Book: %v", err)
		}
	}
	if len(keys) != 3 {
		t.Errorf("got %d distinct keys from 3 bookings", len(keys))
	}
}

func TestListForRider(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rides/user/u1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":[
			{"id":"r2","status":"Pending"},
			{"id":"r1","status":"Completed"}
		]}`))
	}, &fakeHooks{token: "tok", has: true})

	list, err := client.ListForRider(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListForRider: %v", err)
	}
	// server order is preserved as-is
	if len(list) != 2 || list[0].ID != "r2" || list[1].ID != "r1" {
		t.Errorf("list = %+v", list)
	}
}

func TestTransitionRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     ride.Status
		extra      *TransitionExtra
		wantMethod string
		wantPath   string
		wantOTP    string
	}{
		{"accept", ride.StatusAccepted, nil, http.MethodPost, "/driver/rides/r1/accept", ""},
		{"start with otp", ride.StatusOngoing, &TransitionExtra{OTP: "4821"}, http.MethodPost, "/driver/rides/r1/start", "4821"},
		{"complete", ride.StatusCompleted, nil, http.MethodPost, "/driver/rides/r1/complete", ""},
		{"cancel", ride.StatusCancelled, nil, http.MethodPut, "/rides/status/r1", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				gotMethod, gotPath string
				gotBody            map[string]string
			)
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				json.NewDecoder(r.Body).Decode(&gotBody)
				writeRide(w, ride.Ride{ID: "r1", Status: tt.target})
			}, &fakeHooks{token: "tok", has: true})

			updated, err := client.Transition(context.Background(), "r1", tt.target, tt.extra)
			if err != nil {
				t.Fatalf("Transition: %v", err)
			}
			if gotMethod != tt.wantMethod || gotPath != tt.wantPath {
				t.Errorf("routed %s %s, want %s %s", gotMethod, gotPath, tt.wantMethod, tt.wantPath)
			}
			if tt.wantOTP != "" && gotBody["otp"] != tt.wantOTP {
				t.Errorf("otp = %q, want %q", gotBody["otp"], tt.wantOTP)
			}
			if updated.Status != tt.target {
				t.Errorf("status = %q, want %q", updated.Status, tt.target)
			}
		})
	}
}

func TestTransitionRejectionSurfacesServerMessage(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"ride already completed"}`))
	}, &fakeHooks{token: "tok", has: true})

	_, err := client.Transition(context.Background(), "r1", ride.StatusCancelled, nil)
	apiErr, ok := gateway.AsAPIError(err)
	if !ok {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if !apiErr.Validation() || apiErr.Message != "ride already completed" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestUnauthorizedBookingTearsDownSession(t *testing.T) {
	t.Parallel()

	hooks := &fakeHooks{token: "stale", has: true}
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"jwt expired"}`))
	}, hooks)

	_, err := client.Book(context.Background(), BookingRequest{PickupLocation: "X"})
	if !errors.Is(err, gateway.ErrSessionInvalid) {
		t.Fatalf("err = %v, want ErrSessionInvalid", err)
	}
	if hooks.forced != 1 {
		t.Errorf("forced logout ran %d times, want 1", hooks.forced)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}, &fakeHooks{})

	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}
