package market

import "fmt"

// ErrMarketClient is returned by the client when a proper error is returned
// by the market it interacted with.
type ErrMarketClient struct {
	StatusCode int
	ErrCode    string
	ErrMessage string
}

func (e ErrMarketClient) Error() string {
	return fmt.Sprintf(
		"[%d] (%s) %s", e.StatusCode, e.ErrCode, e.ErrMessage)
}
