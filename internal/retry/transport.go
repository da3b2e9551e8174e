package retry

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Transport retries failed round trips according to Strategy and
// Conditions. The attempt count travels in the request context so the
// recursion stays stateless.
type Transport struct {
	Base       http.RoundTripper
	Strategy   Strategy
	Conditions *Conditions
}

type contextKey string

const attemptContextKey contextKey = "attemptKey"

func getAttempt(ctx context.Context) uint {
	v := ctx.Value(attemptContextKey)

	i, ok := v.(uint)
	if !ok {
		return 0
	}

	return i
}

func setAttempt(ctx context.Context, attempt uint) context.Context {
	return context.WithValue(ctx, attemptContextKey, attempt)
}

func (t *Transport) RoundTrip(request *http.Request) (*http.Response, error) {
	attempt := getAttempt(request.Context())
	sleep, exhausted := t.strategy().Sleep(attempt)

	response, err := t.base().RoundTrip(request)
	if err != nil {
		if !exhausted && t.Conditions != nil && t.Conditions.CheckError(err) {
			return t.retryAfter(request, sleep, attempt)
		}
		return nil, err
	}
	if !exhausted && t.Conditions != nil && t.Conditions.CheckResponse(response) {
		_, _ = io.Copy(io.Discard, response.Body)
		_ = response.Body.Close()
		return t.retryAfter(request, sleep, attempt)
	}
	return response, nil
}

func (t *Transport) retryAfter(request *http.Request, sleep time.Duration, attempt uint) (*http.Response, error) {
	timer := time.NewTimer(sleep)
	select {
	case <-request.Context().Done():
		timer.Stop()
		return nil, request.Context().Err()
	case <-timer.C:
	}

	// Bodies are consumed by the failed attempt; GetBody restores them.
	if request.GetBody != nil {
		body, err := request.GetBody()
		if err != nil {
			return nil, err
		}
		request.Body = body
	}

	return t.RoundTrip(request.WithContext(setAttempt(request.Context(), attempt+1)))
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) strategy() Strategy {
	if t.Strategy != nil {
		return t.Strategy
	}
	return NewNever()
}

func (t *Transport) CancelRequest(request *http.Request) {
	type canceler interface {
		CancelRequest(*http.Request)
	}
	if cr, ok := t.base().(canceler); ok {
		cr.CancelRequest(request)
	}
}
