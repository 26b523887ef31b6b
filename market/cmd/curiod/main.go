package main

import (
	"context"
	"flag"
	"log"
	"math/big"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/logging"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/app"
	"github.com/curiohq/curio/market/model"
	"github.com/zenazn/goji/bind"
	"github.com/zenazn/goji/graceful"
	"goji.io"
)

var actFlag string

var envFlag string
var dsnFlag string
var hstFlag string
var prtFlag string

var usrFlag string
var pasFlag string

var lsfFlag string
var fbpFlag string

func init() {
	flag.StringVar(&actFlag, "action",
		"run", "The action to perform (run, init, create_user)")

	flag.StringVar(&envFlag, "env",
		"qa", "The environment to run in (qa, production), default: qa")
	flag.StringVar(&dsnFlag, "db_dsn",
		"", "The DSN of the database to use, default: sqlite3://~/.curio/curiod-$env.db")
	flag.StringVar(&hstFlag, "host",
		"", "The externally accessible host name of this marketplace")
	flag.StringVar(&prtFlag, "port",
		"", "The port to listen on, default: 2406 (qa), 2407 (production)")

	flag.StringVar(&usrFlag, "username",
		"admin", "The username of the user to upsert")
	flag.StringVar(&pasFlag, "password",
		"", "The password of the user to upsert")

	flag.StringVar(&lsfFlag, "listing_fee",
		"0", "The flat listing fee, in native units")
	flag.StringVar(&fbpFlag, "fee_bps",
		"250", "The marketplace fee on sales, in basis points")

	bind.WithFlag()
	if fl := log.Flags(); fl&log.Ltime != 0 {
		log.SetFlags(fl | log.Lmicroseconds)
	}
	graceful.DoubleKickWindow(2 * time.Second)
}

// Serve starts the given mux using reasonable defaults.
func Serve(mux *goji.Mux) {
	ServeListener(mux, bind.Default())
}

// ServeListener is like Serve, but runs `mux` on top of an arbitrary
// net.Listener.
func ServeListener(mux *goji.Mux, listener net.Listener) {
	// Install our handler at the root of the standard net/http default mux.
	// This allows packages like expvar to continue working as expected.
	http.Handle("/", mux)

	log.Println("Starting Goji on", listener.Addr())

	graceful.HandleSignals()
	bind.Ready()
	graceful.PreHook(func() { log.Printf("Goji received signal, gracefully stopping") })
	graceful.PostHook(func() { log.Printf("Goji stopped") })

	err := graceful.Serve(listener, http.DefaultServeMux)

	if err != nil {
		log.Fatal(err)
	}

	graceful.Wait()
}

func main() {
	if !flag.Parsed() {
		flag.Parse()
	}

	ctx, err := app.BackgroundContextFromFlags(
		envFlag, dsnFlag, hstFlag, prtFlag,
	)
	if err != nil {
		log.Fatal(errors.Details(err))
	}

	validActions := []string{"run", "init", "create_user"}
	switch actFlag {
	case "run":
		mux, err := app.Build(ctx)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
		Serve(mux)
	case "init":
		initMarketplace(ctx, usrFlag, pasFlag, lsfFlag, fbpFlag)
	case "create_user":
		createUser(ctx, usrFlag, pasFlag)
	default:
		log.Fatalf("Invalid action `%s`, valid actions are: %s",
			actFlag, strings.Join(validActions, ", "))
	}
}

// initMarketplace upserts the operator user, grants it the admin and minter
// roles and installs the initial marketplace parameters with the operator as
// wallet. Running it again updates the operator password and parameters.
func initMarketplace(
	ctx context.Context,
	username string,
	password string,
	listingFee string,
	feeBps string,
) {
	if password == "" {
		log.Fatal("You must set the `-password` flag to initialize")
	}

	var fee big.Int
	if _, ok := fee.SetString(listingFee, 10); !ok || fee.Sign() < 0 {
		log.Fatalf("Invalid listing fee `%s`", listingFee)
	}
	bps, err := strconv.ParseInt(feeBps, 10, 64)
	if err != nil || bps < 0 || bps > 10000 {
		log.Fatalf("Invalid fee bps `%s`", feeBps)
	}

	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	upsertUser(ctx, username, password)

	for _, name := range []market.RoName{market.RoAdmin, market.RoMinter} {
		role, err := model.LoadRoleByUsernameName(ctx, username, name)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
		if role == nil {
			if _, err := model.CreateRole(ctx, username, name); err != nil {
				log.Fatal(errors.Details(err))
			}
			logging.Logf(ctx, "Granted role: username=%s role=%s",
				username, name)
		}
	}

	parameters, err := model.LoadParameters(ctx)
	if err != nil {
		log.Fatal(errors.Details(err))
	}
	if parameters == nil {
		if _, err := model.CreateParameters(ctx,
			model.Amount(fee), bps, username); err != nil {
			log.Fatal(errors.Details(err))
		}
		logging.Logf(ctx,
			"Created parameters: listing_fee=%s fee_bps=%d wallet=%s",
			fee.String(), bps, username)
	} else {
		parameters.ListingFee = model.Amount(fee)
		parameters.FeeBps = bps
		parameters.Wallet = username
		if err := parameters.Save(ctx); err != nil {
			log.Fatal(errors.Details(err))
		}
		logging.Logf(ctx,
			"Updated parameters: listing_fee=%s fee_bps=%d wallet=%s",
			fee.String(), bps, username)
	}

	db.Commit(ctx)
}

func createUser(
	ctx context.Context,
	username string,
	password string,
) {
	if password == "" {
		log.Fatal("You must set the `-password` flag to create a user")
	}

	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	upsertUser(ctx, username, password)

	db.Commit(ctx)
}

func upsertUser(
	ctx context.Context,
	username string,
	password string,
) {
	user, err := model.LoadUserByUsername(ctx, username)
	if err != nil {
		log.Fatal(errors.Details(err))
	}

	if user != nil {
		logging.Logf(ctx, "Updating user: %s", username)
		err := user.UpdatePassword(ctx, password)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
		err = user.Save(ctx)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	} else {
		logging.Logf(ctx, "Creating user: %s", username)
		_, err := model.CreateUser(ctx, username, password)
		if err != nil {
			log.Fatal(errors.Details(err))
		}
	}
}
