// Package auth runs the sign-up, sign-in and sign-out flows of the
// storefront against the shop API and keeps the issued bearer token in
// the session store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/activity"
	"storefront/internal/apiclient"
	"storefront/internal/notify"
	"storefront/internal/session"
)

// HomePath is where successful auth flows land.
const HomePath = "/"

// API is the subset of the shop API the auth flows need.
type API interface {
	Register(ctx context.Context, in apiclient.RegisterRequest) (string, error)
	Login(ctx context.Context, in apiclient.LoginRequest) (string, error)
}

// View receives the outcome of an auth flow.
type View interface {
	ShowErrors(FieldErrors)
	Notify(notify.Notification)
	Redirect(path string)
}

// Service implements the auth flows.
type Service struct {
	api       API
	sessions  session.Manager
	publisher activity.Publisher
	logger    *slog.Logger
}

// NewService creates the auth service. publisher may be nil.
func NewService(api API, sessions session.Manager, publisher activity.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = activity.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:       api,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
	}
}

// SignUp validates the form, registers the account and signs the session
// in. It reports whether the session is now signed in.
func (s *Service) SignUp(ctx context.Context, sessionID string, form SignupForm, v View) bool {
	if errs := form.Validate(); errs != nil {
		v.ShowErrors(errs)
		return false
	}

	token, err := s.api.Register(ctx, apiclient.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err == nil {
		err = s.sessions.SaveToken(ctx, sessionID, token)
	}
	if err != nil {
		msg := failureMessage(err, "Registration failed", "An error occurred during registration")
		s.logger.Warn("Sign-up failed", "error", err.Error())
		v.ShowErrors(FieldErrors{FieldEmail: msg})
		return false
	}

	s.logger.Info("Account created", "session_id", sessionID)
	s.publish(activity.TypeSignedUp)
	v.Notify(notify.Success("Account created successfully!"))
	v.Redirect(HomePath)
	return true
}

// SignIn validates the form, logs in and signs the session in.
func (s *Service) SignIn(ctx context.Context, sessionID string, form SigninForm, v View) bool {
	if errs := form.Validate(); errs != nil {
		v.ShowErrors(errs)
		return false
	}

	token, err := s.api.Login(ctx, apiclient.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	if err == nil {
		err = s.sessions.SaveToken(ctx, sessionID, token)
	}
	if err != nil {
		s.logger.Warn("Sign-in failed", "error", err.Error())
		msg := failureMessage(err, "Invalid credentials", "An error occurred during login")
		var rejected *apiclient.RejectedError
		if errors.As(err, &rejected) {
			v.ShowErrors(FieldErrors{FieldSigninUsername: msg, FieldSigninPassword: msg})
		} else {
			v.ShowErrors(FieldErrors{FieldSigninUsername: msg})
		}
		return false
	}

	s.logger.Info("Signed in", "session_id", sessionID)
	s.publish(activity.TypeSignedIn)
	v.Notify(notify.Success("Signed in successfully!"))
	v.Redirect(HomePath)
	return true
}

// SignOut deletes the session token and returns to the home page.
func (s *Service) SignOut(ctx context.Context, sessionID string, v View) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.publish(activity.TypeSignedOut)
	v.Redirect(HomePath)
	return nil
}

// State reports whether the session holds a token.
func (s *Service) State(ctx context.Context, sessionID string) (State, error) {
	ok, err := s.sessions.SignedIn(ctx, sessionID)
	if err != nil {
		return State{}, fmt.Errorf("failed to read session: %w", err)
	}
	return State{Authenticated: ok}, nil
}

func (s *Service) publish(eventType string) {
	if err := s.publisher.Publish(activity.New(eventType, nil)); err != nil {
		s.logger.Warn("Failed to publish activity", "type", eventType, "error", err.Error())
	}
}

// failureMessage picks the server message for a rejection, the rejection
// default when the server gave none, and the generic message otherwise.
func failureMessage(err error, rejectedDefault, generic string) string {
	msg, ok := apiclient.RejectionMessage(err)
	switch {
	case !ok:
		return generic
	case msg == "":
		return rejectedDefault
	}
	return msg
}
