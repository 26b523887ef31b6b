package app

import (
	"context"
	"fmt"

	"goji.io"

	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/env"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/logging"
	"github.com/curiohq/curio/lib/recoverer"
	"github.com/curiohq/curio/lib/requestlogger"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/lib/authentication"

	// force initialization of schemas
	_ "github.com/curiohq/curio/market/model/schemas"
)

// BackgroundContextFromFlags initializes a background context fully loaded
// with everything that could be extracted from the flags.
func BackgroundContextFromFlags(
	envFlag string,
	dsnFlag string,
	hstFlag string,
	prtFlag string,
) (context.Context, error) {
	ctx := context.Background()

	marketEnv := env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	}
	if envFlag == "production" || envFlag == "prod" {
		marketEnv.Environment = env.Production
	}
	marketEnv.Config[market.EnvCfgHost] = hstFlag

	port := market.DefaultPort[marketEnv.Environment]
	if prtFlag != "" {
		port = prtFlag
	}
	marketEnv.Config[market.EnvCfgPort] = port

	ctx = env.With(ctx, &marketEnv)

	marketDB, err := db.NewDBForDSN(ctx,
		dsnFlag,
		fmt.Sprintf("sqlite3://~/.curio/curiod-%s.db",
			env.Get(ctx).Environment))
	if err != nil {
		return nil, errors.Trace(err)
	}
	err = db.CreateDBTables(ctx, "market", marketDB)
	if err != nil {
		return nil, errors.Trace(err)
	}
	ctx = db.WithDB(ctx, marketDB)

	return ctx, nil
}

// Build initializes the app and its web stack.
func Build(
	ctx context.Context,
) (*goji.Mux, error) {
	if market.GetHost(ctx) == "" &&
		env.Get(ctx).Environment == env.Production {
		return nil, errors.Trace(errors.Newf(
			"You must set the `-host` flag to the publicly accessible " +
				"hostname of this marketplace when running in production " +
				"(place it behind a HAProxy, NGINX or similar for SSL " +
				"termination). If you're just testing, run with `-env=qa`.",
		))
	}

	mux := goji.NewMux()
	mux.Use(requestlogger.Middleware)
	mux.Use(recoverer.Middleware)
	mux.Use(db.Middleware(db.GetDB(ctx)))
	mux.Use(env.Middleware(env.Get(ctx)))
	mux.Use(authentication.Middleware)

	logging.Logf(ctx, "Initializing: environment=%s host=%s port=%s",
		env.Get(ctx).Environment, market.GetHost(ctx), market.GetPort(ctx))

	(&Controller{}).Bind(mux)

	return mux, nil
}
