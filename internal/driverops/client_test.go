package driverops

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zippgo/internal/domain/principal"
	"zippgo/internal/gateway"
	"zippgo/internal/session"
)

type fakeHooks struct {
	token string
	has   bool
}

func (f *fakeHooks) CurrentToken() (string, bool)  { return f.token, f.has }
func (f *fakeHooks) ForceLogout(_ context.Context) { f.token = ""; f.has = false }

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	gw := gateway.New(srv.URL, 5*time.Second, &fakeHooks{token: "tok", has: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewClient(gw)
}

func TestRegisterSendsFieldsAndAttachments(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/driver/register" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		if got := r.FormValue("vehicleNumber"); got != "KA01AB1234" {
			t.Errorf("vehicleNumber = %q", got)
		}
		for _, field := range []string{"rc", "license", "profilePhoto"} {
			if _, _, err := r.FormFile(field); err != nil {
				t.Errorf("missing %s attachment: %v", field, err)
			}
		}
		w.Write([]byte(`{"success":true,"data":{"token":"new-tok","user":{"id":"d1","name":"Ravi","vehicleType":"Sedan"}}}`))
	})

	token, p, err := client.Register(context.Background(), session.Registration{
		Name:          "Ravi",
		Email:         "ravi@x.com",
		Phone:         "9999",
		Password:      "pw",
		VehicleType:   "Sedan",
		VehicleNumber: "KA01AB1234",
		LicenseNumber: "DL-7",
		Attachments: []session.Attachment{
			{Field: "rc", Filename: "rc.pdf", Content: []byte("rc")},
			{Field: "license", Filename: "dl.pdf", Content: []byte("dl")},
			{Field: "profilePhoto", Filename: "me.png", Content: []byte("img")},
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token != "new-tok" {
		t.Errorf("token = %q", token)
	}
	if p.Kind() != principal.KindDriver || p.Base().Name != "Ravi" {
		t.Errorf("principal = %+v", p.Base())
	}
}

func TestLoginRejectsPartialPayload(t *testing.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"token":"t-only"}}`))
	})

	if _, _, err := client.Login(context.Background(), session.Credentials{Email: "a@b.com"}); err == nil {
		t.Fatal("login payload without user must be rejected")
	}
}

func TestSetOnlineStatus(t *testing.T) {
	t.Parallel()

	var gotBody map[string]bool
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/driver/online-status" {
			t.Errorf("routed %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"success":true,"data":{"user":{"id":"d1","isOnline":true}}}`))
	})

	driver, err := client.SetOnlineStatus(context.Background(), true)
	if err != nil {
		t.Fatalf("SetOnlineStatus: %v", err)
	}
	if !gotBody["isOnline"] {
		t.Error("isOnline flag not sent")
	}
	if !driver.IsOnline {
		t.Error("returned driver not online")
	}
}

func TestEarningsForDefaultsPeriod(t *testing.T) {
	t.Parallel()

	var gotPeriod string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPeriod = r.URL.Query().Get("period")
		w.Write([]byte(`{"success":true,"data":{"period":"all","totalEarnings":1520.5,"rideCount":12}}`))
	})

	earnings, err := client.EarningsFor(context.Background(), "")
	if err != nil {
		t.Fatalf("EarningsFor: %v", err)
	}
	if gotPeriod != "all" {
		t.Errorf("period = %q, want all", gotPeriod)
	}
	if earnings.TotalEarnings != 1520.5 || earnings.RideCount != 12 {
		t.Errorf("earnings = %+v", earnings)
	}
}

func TestStartCarriesOTP(t *testing.T) {
	t.Parallel()

	var gotBody map[string]string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/driver/rides/r1/start" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"success":true,"data":{"id":"r1","status":"Ongoing"}}`))
	})

	updated, err := client.Start(context.Background(), "r1", "4821")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if gotBody["otp"] != "4821" {
		t.Errorf("otp = %q", gotBody["otp"])
	}
	if updated.Status != "Ongoing" {
		t.Errorf("status = %q", updated.Status)
	}
}
