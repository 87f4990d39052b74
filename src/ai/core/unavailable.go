package core

import "context"

type unavailable struct{ err error }

// Unavailable returns a Client whose every call fails with err. Used when no
// provider credential is configured, so callers can keep their fallback
// behavior instead of special-casing a nil client.
func Unavailable(err error) Client {
	return unavailable{err: err}
}

func (u unavailable) Complete(ctx context.Context, msgs []Message, opts Options) (string, error) {
	return "", u.err
}

func (u unavailable) Stream(ctx context.Context, msgs []Message, opts Options, fn StreamFunc) error {
	return u.err
}
