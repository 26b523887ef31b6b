package market

import (
	"context"

	"github.com/curiohq/curio/lib/env"
)

const (
	// Version is the current protocol version.
	Version string = "0.0.1"

	// TimeResolutionNs is the resolution of our time variables in
	// nanoseconds (aka resolution in milliseconds).
	TimeResolutionNs int64 = 1000 * 1000

	// ExternalFunds is the source account recorded on deposit transfers,
	// representing value entering the marketplace from the outside world.
	ExternalFunds string = "external"
)

const (
	// EnvCfgHost is the env config key for the market host.
	EnvCfgHost env.ConfigKey = "host"
	// EnvCfgPort is the env config key for the port the market is listening
	// on.
	EnvCfgPort env.ConfigKey = "port"
)

// DefaultPort is the default port the market listens on, by environment.
var DefaultPort = map[env.Environment]string{
	env.Production: "2407",
	env.QA:         "2406",
}

// GetHost retrieves the current market host from the given context.
func GetHost(
	ctx context.Context,
) string {
	return env.Get(ctx).Config[EnvCfgHost]
}

// GetPort retrieves the current market port from the given context.
func GetPort(
	ctx context.Context,
) string {
	return env.Get(ctx).Config[EnvCfgPort]
}
