package remote

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors classifying raw transport failures. Callers match
// with errors.Is.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnavailable      = errors.New("service unavailable")
	ErrUnauthenticated  = errors.New("unauthenticated")
)

// Mongo server error codes mapped to the taxonomy.
const (
	codeUnauthorized         = 13
	codeAuthenticationFailed = 18
)

// ClassifyError maps a raw driver error to one of the sentinel errors,
// wrapping the original so its detail is preserved. Errors outside the
// taxonomy are returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrUnavailable, err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case codeUnauthorized:
			return errors.Join(ErrPermissionDenied, err)
		case codeAuthenticationFailed:
			return errors.Join(ErrUnauthenticated, err)
		}
	}
	return err
}
