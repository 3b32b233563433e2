// Package remote adapts the record store HTTP API to the frontdesk domain.
// Every failed call comes back as a restaurant.NetworkError, as
// restaurant.ErrConflict when a fenced write lost against a newer state, or as
// restaurant.ErrDuplicateSubmission when an order id already exists.
package remote

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/restaurant"
)

// decodeSuccessResponse copies the dynamic response payload into dest.
func decodeSuccessResponse(resp *apt.SuccessResponse, dest interface{}) error {
	if resp == nil {
		return errors.New("nil success response")
	}

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return err
	}

	return nil
}

// isConflict reports whether the record store answered 409.
func isConflict(err error) bool {
	var httpErr *apt.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusConflict
}

func networkError(op string, err error) error {
	return &restaurant.NetworkError{Op: op, Err: err}
}

var errNotConfigured = errors.New("records client not configured")
