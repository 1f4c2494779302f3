package collector

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoData is wrapped when a source answers but has nothing for the symbol.
var ErrNoData = errors.New("no data returned")

// FetchError reports a failed retrieval. It is distinct from the engine's
// insufficient-data condition: the data never arrived.
type FetchError struct {
	Source     string
	Symbol     string
	Op         string
	StatusCode int
	Retriable  bool
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s %s %s", e.Source, e.Op, e.Symbol)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsRetriable reports whether err is a fetch failure worth trying again later.
func IsRetriable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Retriable
}

// IsFetchError reports whether err came from a data source.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// retriableStatus: rate limiting and server-side failures may clear up.
func retriableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
