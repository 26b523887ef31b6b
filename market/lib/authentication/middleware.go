package authentication

import (
	"context"
	"net/http"
	"regexp"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/logging"
	"github.com/curiohq/curio/lib/respond"
	"github.com/curiohq/curio/market/model"
)

// ContextKey is the type of the key used with context to carry the
// authentication status.
type ContextKey string

const (
	// statusKey the context.Context key to store the authentication status.
	statusKey ContextKey = "authentication.status"
)

// AutStatus indicates the status of the authentication.
type AutStatus string

const (
	// AutStSkipped authentication was skipped.
	AutStSkipped AutStatus = "skipped"
	// AutStSucceeded authentication was successful.
	AutStSucceeded AutStatus = "succeeded"
	// AutStFailed authentication failed.
	AutStFailed AutStatus = "failed"
)

// Status stores the authentication status and the authenticated user if
// applicable.
type Status struct {
	Status AutStatus
	User   *model.User
}

// With stores the authentication status in the provided context.
func With(
	ctx context.Context,
	status Status,
) context.Context {
	return context.WithValue(ctx, statusKey, status)
}

// Get returns the authentication status currently stored in the context.
func Get(
	ctx context.Context,
) Status {
	return ctx.Value(statusKey).(Status)
}

// SkipRule defines a rule that lets a request skip authentication.
type SkipRule struct {
	Method  string
	Pattern *regexp.Regexp
}

type middleware struct {
	http.Handler
}

// SkipList is the list of endpoints that do not require authentication.
var SkipList = []*SkipRule{
	{"POST", regexp.MustCompile("^/users$")},
	{"GET", regexp.MustCompile("^/items")},
	{"GET", regexp.MustCompile("^/parameters$")},
	{"GET", regexp.MustCompile("^/roles/[a-z]+/[a-z0-9\\-_]+$")},
}

// ServeHTTPC handles incoming HTTP requests and attempts to authenticate
// them.
func (m middleware) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	ctx := r.Context()

	withStatus := With(ctx, Status{AutStSkipped, nil})

	skip := false
	for _, s := range SkipList {
		if s.Method == r.Method && s.Pattern.MatchString(r.URL.EscapedPath()) {
			skip = true
		}
	}
	if skip {
		m.Handler.ServeHTTP(w, r.WithContext(withStatus))
		return
	}

	username, password, _ := r.BasicAuth()

	user, err := model.LoadUserByUsername(ctx, username)
	if err != nil {
		respond.Error(ctx, w, errors.Trace(err)) // 500
		return
	} else if user == nil {
		withStatus = With(ctx, Status{AutStFailed, nil})
		logging.Logf(ctx,
			"Authentication: status=%q username=%q",
			AutStFailed, username)
		respond.Error(withStatus, w, errors.Trace(errors.NewUserErrorf(nil,
			401, "authentication_failed",
			"Unknown username: %s.",
			username,
		)))
		return
	}

	if err := user.CheckPassword(ctx, password); err != nil {
		withStatus = With(ctx, Status{AutStFailed, user})
		logging.Logf(ctx,
			"Authentication: status=%q username=%q",
			AutStFailed, username)
		respond.Error(withStatus, w, errors.Trace(errors.NewUserErrorf(nil,
			401, "authentication_failed",
			"Invalid password for username: %s.",
			username,
		)))
		return
	}

	withStatus = With(ctx, Status{AutStSucceeded, user})
	logging.Logf(ctx,
		"Authentication: status=%q username=%q",
		AutStSucceeded, username)

	m.Handler.ServeHTTP(w, r.WithContext(withStatus))
}

// Middleware that attempts basic authentication against the users table.
func Middleware(h http.Handler) http.Handler {
	return middleware{h}
}
