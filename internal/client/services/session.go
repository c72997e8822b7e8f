// Package services holds the client-side state holders and feature services
// of the tailorhub marketplace client. Each service owns its observable state
// and talks to the backend through the client package interfaces.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/tailorhub/internal/client/state"
	"github.com/dmitrijs2005/tailorhub/internal/common"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

const (
	MsgSessionExpired = "Your session has expired. Please log in again."
	minPasswordLength = 6
)

// SessionService owns the authentication state of the client.
//
// Contract:
//   - Bootstrap: restore a persisted token once at startup and verify it.
//   - Login / Register: authenticate and persist the new token.
//   - Logout: forget the token locally; no server call.
//   - Token: the bearer token for outgoing requests (client.TokenSource).
//
// Operations that are not allowed from the current status fail with
// common.ErrIllegalTransition and leave the state untouched.
type SessionService struct {
	api   client.AuthAPI
	store credentials.Repository
	log   logging.Logger
	now   func() time.Time

	// mu serializes transitions; the holder only guards the value.
	mu    sync.Mutex
	state *state.Holder[models.Session]

	tokenMu sync.RWMutex
	token   string
}

var _ client.TokenSource = (*SessionService)(nil)

func NewSessionService(api client.AuthAPI, store credentials.Repository, log logging.Logger) *SessionService {
	if log == nil {
		log = logging.Discard()
	}
	return &SessionService{
		api:   api,
		store: store,
		log:   log.With("component", "session"),
		now:   time.Now,
		state: state.New(models.Session{Status: models.SessionUnknown}),
	}
}

func (s *SessionService) State() models.Session {
	return s.state.Get()
}

func (s *SessionService) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	return s.state.Subscribe(fn)
}

func (s *SessionService) Token() string {
	s.tokenMu.RLock()
	defer s.tokenMu.RUnlock()
	return s.token
}

func (s *SessionService) setToken(t string) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()
	s.token = t
}

// Bootstrap restores the session from the persisted credential. It is only
// legal from the initial Unknown status. Verification failures are not
// returned: they leave the session LoggedOut with Error set. A credential
// store that cannot be read also leaves the session LoggedOut, and that
// error is returned.
func (s *SessionService) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkTransition("bootstrap", s.state.Get().Status, models.SessionVerifying); err != nil {
		return err
	}

	cred, err := s.store.Load(ctx)
	if err != nil {
		s.loggedOut("")
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		s.log.Warn(ctx, "credential load failed", "error", err)
		return fmt.Errorf("load credential: %w", err)
	}

	s.state.Update(func(v *models.Session) {
		v.Status = models.SessionVerifying
		v.Loading = true
		v.Error = ""
	})

	if err := checkExpiry(cred.Token, s.now()); err != nil {
		s.log.Info(ctx, "persisted token rejected", "user_id", cred.UserID, "error", err)
		s.invalidate(ctx, MsgSessionExpired)
		return nil
	}

	s.setToken(cred.Token)
	user, err := s.api.Me(ctx)
	if err == nil {
		err = checkUser(user)
	}
	if err != nil {
		msg := client.ErrorMessage(err)
		if errors.Is(err, client.ErrUnauthorized) {
			msg = MsgSessionExpired
		}
		s.log.Warn(ctx, "token verification failed", "user_id", cred.UserID, "error", err)
		s.invalidate(ctx, msg)
		return nil
	}

	s.loggedIn(user)
	s.log.Info(ctx, "session restored", "user_id", user.ID, "role", user.Role.String())
	return nil
}

// Login authenticates with email, password and role.
func (s *SessionService) Login(ctx context.Context, email, password string, role models.Role) error {
	req := models.LoginRequest{Email: strings.TrimSpace(email), Password: password, Role: role}
	if err := validateLogin(req); err != nil {
		return err
	}
	return s.authenticate(ctx, "login", func(ctx context.Context) (models.AuthResponse, error) {
		return s.api.Login(ctx, req)
	})
}

// Register creates an account and logs into it.
func (s *SessionService) Register(ctx context.Context, req models.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRegister(req); err != nil {
		return err
	}
	return s.authenticate(ctx, "register", func(ctx context.Context) (models.AuthResponse, error) {
		return s.api.Register(ctx, req)
	})
}

func (s *SessionService) authenticate(ctx context.Context, op string, call func(context.Context) (models.AuthResponse, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkTransition(op, s.state.Get().Status, models.SessionLoggedIn); err != nil {
		return err
	}

	s.state.Update(func(v *models.Session) {
		v.Loading = true
		v.Error = ""
	})

	resp, err := call(ctx)
	if err == nil && resp.Token == "" {
		err = malformedResponse(errors.New("empty token in auth response"))
	}
	if err == nil {
		err = checkUser(resp.User)
	}
	if err != nil {
		s.state.Update(func(v *models.Session) {
			v.Loading = false
			v.Error = client.ErrorMessage(err)
		})
		s.log.Warn(ctx, op+" failed", "error", err)
		return err
	}

	if err := s.store.Save(ctx, models.Credential{Token: resp.Token, UserID: resp.User.ID}); err != nil {
		s.log.Warn(ctx, "credential save failed", "error", err)
	}
	s.setToken(resp.Token)
	s.loggedIn(resp.User)
	s.log.Info(ctx, op+" succeeded", "user_id", resp.User.ID, "role", resp.User.Role.String())
	return nil
}

// Logout drops the credential and resets the session. It completes without
// contacting the backend.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Get()
	if !cur.IsAuthenticated {
		return fmt.Errorf("logout from %s: %w", cur.Status, common.ErrIllegalTransition)
	}
	if err := checkTransition("logout", cur.Status, models.SessionLoggedOut); err != nil {
		return err
	}

	s.invalidate(ctx, "")
	s.log.Info(ctx, "logged out")
	return nil
}

// invalidate clears every trace of the credential and moves to LoggedOut.
func (s *SessionService) invalidate(ctx context.Context, msg string) {
	s.setToken("")
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn(ctx, "credential clear failed", "error", err)
	}
	s.loggedOut(msg)
}

func (s *SessionService) loggedIn(u models.User) {
	s.state.Update(func(v *models.Session) {
		user := u
		*v = models.Session{User: &user, IsAuthenticated: true, Status: models.SessionLoggedIn}
	})
}

func (s *SessionService) loggedOut(msg string) {
	s.state.Update(func(v *models.Session) {
		*v = models.Session{Status: models.SessionLoggedOut, Error: msg}
	})
}

func checkTransition(op string, from, to models.SessionStatus) error {
	if !from.CanTransition(to) {
		return fmt.Errorf("%s from %s: %w", op, from, common.ErrIllegalTransition)
	}
	return nil
}

// checkExpiry returns common.ErrTokenExpired when token is a JWT whose exp
// claim is not after now. Tokens that cannot be parsed are left to the
// backend to judge.
func checkExpiry(token string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if !exp.After(now) {
		return fmt.Errorf("exp %s: %w", exp.Format(time.RFC3339), common.ErrTokenExpired)
	}
	return nil
}

// checkUser rejects a user the backend answered with but that cannot back a
// session.
func checkUser(u models.User) error {
	if strings.TrimSpace(u.ID) == "" {
		return malformedResponse(errors.New("user without id"))
	}
	if !u.Role.Valid() {
		return malformedResponse(fmt.Errorf("user %s has role %s", u.ID, u.Role))
	}
	return nil
}

func malformedResponse(err error) error {
	return &client.APIError{Status: http.StatusOK, Message: client.MsgGeneric, Kind: client.ErrServer, Err: err}
}

func validateEmail(email string) error {
	if email == "" {
		return common.NewValidationError("email", "is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return common.NewValidationError("email", "is not a valid address")
	}
	return nil
}

func validateLogin(req models.LoginRequest) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return common.NewValidationError("password", "is required")
	}
	if !req.Role.Valid() {
		return common.NewValidationError("role", "must be customer, tailor or shop")
	}
	return nil
}

func validateRegister(req models.RegisterRequest) error {
	if req.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Password) < minPasswordLength {
		return common.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if !req.Role.Valid() {
		return common.NewValidationError("role", "must be customer, tailor or shop")
	}
	return nil
}
