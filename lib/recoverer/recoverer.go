package recoverer

import (
	"net/http"
	"runtime/debug"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/logging"
	"github.com/curiohq/curio/lib/respond"
)

type middleware struct {
	http.Handler
}

// ServeHTTP recovers from panics, logs the panic (and a backtrace), and
// returns a HTTP 500 (Internal Server Error) status if possible.
func (m middleware) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	ctx := r.Context()
	defer func() {
		if err := recover(); err != nil {
			if e, ok := err.(error); ok {
				logging.Logf(ctx, "Panic: error=%q", e.Error())
				respond.Error(ctx, w, errors.Trace(e))
			} else {
				logging.Logf(ctx, "Non error panic: dump=%+v", err)
				respond.Error(ctx, w, errors.Newf("Non error panic: %+v", err))
			}
			debug.PrintStack()
		}
	}()

	m.Handler.ServeHTTP(w, r)
}

// Middleware that recovers from panics in downstream handlers.
func Middleware(h http.Handler) http.Handler {
	return middleware{h}
}
