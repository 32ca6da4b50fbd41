package session

// State is the session lifecycle state. A session is either fully
// authenticated (principal and token both present) or fully anonymous;
// Loading exists only between construction start and the synchronous seed
// from the credential store.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

// String returns the string representation of the State.
func (state State) String() string {
	switch state {
	case StateLoading:
		return "Loading"
	case StateAnonymous:
		return "Anonymous"
	case StateAuthenticated:
		return "Authenticated"
	default:
		return "Unknown"
	}
}
