package ride

import "testing"

func TestParseStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"Pending", StatusPending, false},
		{"pending", StatusPending, false},
		{"  ONGOING ", StatusOngoing, false},
		{"cancelled", StatusCancelled, false},
		{"Requested", "", true},
		{"", "", true},
		{"Done", "", true},
	}

	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusTransitionTable(t *testing.T) {
	t.Parallel()

	all := []Status{StatusPending, StatusAccepted, StatusOngoing, StatusCompleted, StatusCancelled}

	allowed := map[Status][]Status{
		StatusPending:   {StatusAccepted, StatusCancelled},
		StatusAccepted:  {StatusOngoing, StatusCancelled},
		StatusOngoing:   {StatusCompleted},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	for _, from := range all {
		wanted := allowed[from]
		for _, to := range all {
			want := false
			for _, w := range wanted {
				if w == to {
					want = true
				}
			}
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s: CanTransitionTo = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestStatusNoBackwardOrTerminalExit(t *testing.T) {
	t.Parallel()

	if StatusOngoing.CanTransitionTo(StatusPending) {
		t.Error("Ongoing -> Pending must be rejected")
	}
	for _, terminal := range []Status{StatusCompleted, StatusCancelled} {
		if !terminal.Terminal() {
			t.Errorf("%s must report Terminal()", terminal)
		}
		for _, to := range []Status{StatusPending, StatusAccepted, StatusOngoing, StatusCompleted, StatusCancelled} {
			if terminal.CanTransitionTo(to) {
				t.Errorf("%s -> %s must be rejected", terminal, to)
			}
		}
	}
}

func TestRideAdvanceTo(t *testing.T) {
	t.Parallel()

	r := &Ride{ID: "ride-1", Status: StatusAccepted}
	if err := r.AdvanceTo(StatusOngoing); err != nil {
		t.Fatalf("Accepted -> Ongoing: unexpected error: %v", err)
	}
	if r.Status != StatusOngoing {
		t.Fatalf("status = %s, want %s", r.Status, StatusOngoing)
	}

	if err := r.AdvanceTo(StatusAccepted); err != ErrInvalidStatusTransition {
		t.Fatalf("backward transition: err = %v, want ErrInvalidStatusTransition", err)
	}
	if r.Status != StatusOngoing {
		t.Fatalf("rejected transition mutated status to %s", r.Status)
	}

	if err := r.AdvanceTo(Status("Teleported")); err != ErrInvalidStatus {
		t.Fatalf("unknown status: err = %v, want ErrInvalidStatus", err)
	}
}
