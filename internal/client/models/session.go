package models

// SessionStatus is the client's belief about the current login.
//
//	Unknown -> LoggedOut                (no persisted token)
//	Unknown -> Verifying                (token present)
//	Verifying -> LoggedIn | LoggedOut
//	LoggedOut -> LoggedIn               (login or register)
//	LoggedIn -> LoggedOut               (logout or failed verification)
type SessionStatus uint8

const (
	SessionUnknown SessionStatus = iota
	SessionVerifying
	SessionLoggedIn
	SessionLoggedOut
)

func (s SessionStatus) String() string {
	switch s {
	case SessionUnknown:
		return "unknown"
	case SessionVerifying:
		return "verifying"
	case SessionLoggedIn:
		return "logged in"
	case SessionLoggedOut:
		return "logged out"
	default:
		return "invalid"
	}
}

// CanTransition reports whether moving from s to next is allowed.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	switch s {
	case SessionUnknown:
		return next == SessionLoggedOut || next == SessionVerifying
	case SessionVerifying:
		return next == SessionLoggedIn || next == SessionLoggedOut
	case SessionLoggedOut:
		return next == SessionLoggedIn
	case SessionLoggedIn:
		return next == SessionLoggedOut
	default:
		return false
	}
}

// Session is the observable authentication state.
// IsAuthenticated is true exactly when Status is SessionLoggedIn and User is set.
type Session struct {
	User            *User
	IsAuthenticated bool
	Loading         bool
	Error           string
	Status          SessionStatus
}
