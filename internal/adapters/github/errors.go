package github

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"

	"github.com/cenkalti/backoff/v5"
	gh "github.com/google/go-github/v67/github"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/zerr"
)

// classify maps an API failure onto the domain error taxonomy.
func classify(ctx context.Context, err error, resp *gh.Response) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zerr.Wrap(errors.Join(domain.ErrRemoteRequestFailed, ctxErr), "request cancelled")
	}

	var (
		respErr *gh.ErrorResponse
		netErr  net.Error
	)

	switch {
	case isRateLimited(err):
		return zerr.Wrap(domain.ErrTransientNetwork, err.Error())
	case errors.As(err, &respErr) && respErr.Response != nil:
		return classifyStatus(respErr.Response.StatusCode, err)
	case resp != nil && resp.Response != nil && resp.StatusCode >= http.StatusBadRequest:
		return classifyStatus(resp.StatusCode, err)
	case errors.As(err, &netErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, context.DeadlineExceeded):
		return zerr.Wrap(domain.ErrTransientNetwork, err.Error())
	default:
		return zerr.Wrap(domain.ErrRemoteRequestFailed, err.Error())
	}
}

func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusNotFound:
		return zerr.Wrap(domain.ErrRemoteNotFound, err.Error())
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return zerr.Wrap(domain.ErrRemoteAuthFailed, err.Error())
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return zerr.With(zerr.Wrap(domain.ErrTransientNetwork, err.Error()), "status", status)
	default:
		return zerr.With(zerr.Wrap(domain.ErrRemoteRequestFailed, err.Error()), "status", status)
	}
}

// retryable reports whether a classified failure is worth another attempt.
// Rate limits are transient for callers but are not retried in-process.
func retryable(cause, classified error) bool {
	return errors.Is(classified, domain.ErrTransientNetwork) && !isRateLimited(cause)
}

func isRateLimited(err error) bool {
	var (
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
	)
	return errors.As(err, &rateErr) || errors.As(err, &abuseErr)
}

func unwrapPermanent(err error) error {
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Unwrap()
	}
	return err
}
