package endpoint

import (
	"context"
	"net/http"

	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/format"
	"github.com/curiohq/curio/lib/logging"
	"github.com/curiohq/curio/lib/ptr"
	"github.com/curiohq/curio/lib/svc"
	"github.com/curiohq/curio/market/model"
)

const (
	// EndPtCreateUser creates a new user.
	EndPtCreateUser EndPtName = "CreateUser"
)

func init() {
	registrar[EndPtCreateUser] = NewCreateUser
}

// CreateUser registers a new user by username and password. New users hold
// no role; roles are granted separately by an admin.
type CreateUser struct {
	Username string
	Password string
}

// NewCreateUser constructs and initializes the endpoint.
func NewCreateUser(
	r *http.Request,
) (Endpoint, error) {
	return &CreateUser{}, nil
}

// Validate validates the input parameters.
func (e *CreateUser) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	username, err := ValidateUsername(ctx, r.PostFormValue("username"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Username = *username

	password, err := ValidatePassword(ctx, r.PostFormValue("password"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Password = *password

	return nil
}

// Execute executes the endpoint.
func (e *CreateUser) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	user, err := model.CreateUser(ctx,
		e.Username,
		e.Password,
	)
	if err != nil {
		switch err := errors.Cause(err).(type) {
		case model.ErrUniqueConstraintViolation:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "username_taken",
				"A user already exists with username: %s.",
				e.Username,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	db.Commit(ctx)

	logging.Logf(ctx,
		"Created user: id=%s created=%q username=%s",
		user.Token, user.Created, user.Username)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"user": format.JSONPtr(model.NewUserResource(ctx, user)),
	}, nil
}
