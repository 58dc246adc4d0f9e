// Package dispatch executes authenticated calls against the gateway. It
// owns the retry loop: transport failures and token expiry both draw from
// one shared attempt budget.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/sabitahmadumid/bkash-go/logging"
	"github.com/sabitahmadumid/bkash-go/metrics"
	"github.com/sabitahmadumid/bkash-go/response"
)

// TokenSource supplies and evicts the bearer token. *token.Manager
// satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

type Dispatcher struct {
	Tokens     TokenSource
	Client     *http.Client
	MaxRetries int
	RetryDelay time.Duration
	Logger     logging.Logger
	Metrics    *metrics.Counters
}

// Do runs one business call. The raw decoded body is returned on any 2xx
// status; every failure is one of *token.AuthError, *APIError,
// *NetworkError, or an ErrRetryExhausted wrapper.
//
// A 401 invalidates the cached token and retries, forcing regeneration.
// Transport failures retry after a fixed delay. Both paths consume the
// same budget of MaxRetries attempts.
func (d *Dispatcher) Do(ctx context.Context, method, url string, payload map[string]any) (response.Payload, error) {
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop{}
	}

	delay := backoff.NewConstantBackOff(d.RetryDelay)
	var lastErr error

	for attempt := 0; attempt < d.MaxRetries; attempt++ {
		if d.Metrics != nil {
			d.Metrics.IncDispatched()
		}
		if attempt > 0 && d.Metrics != nil {
			d.Metrics.IncRetries()
		}

		tok, err := d.Tokens.Token(ctx)
		if err != nil {
			// Token acquisition already exhausted its own fallback
			// chain; not retryable here.
			if d.Metrics != nil {
				d.Metrics.IncFailed()
			}
			return nil, err
		}

		resp, err := d.execute(ctx, method, url, tok, payload)
		if err != nil {
			lastErr = &NetworkError{Cause: err}
			logger.Warn("request failed at transport level", map[string]any{
				"url":     url,
				"attempt": attempt + 1,
				"error":   err.Error(),
			})
			if attempt < d.MaxRetries-1 {
				if err := d.wait(ctx, delay.NextBackOff()); err != nil {
					break
				}
				continue
			}
			break
		}

		if resp.statusCode >= 200 && resp.statusCode <= 299 {
			if resp.decodeErr != nil {
				if d.Metrics != nil {
					d.Metrics.IncFailed()
				}
				return nil, &APIError{
					Code:       CodeMalformedResponse,
					Message:    "malformed response body: " + resp.decodeErr.Error(),
					HTTPStatus: resp.statusCode,
				}
			}
			if d.Metrics != nil {
				d.Metrics.IncSucceeded()
			}
			return resp.payload, nil
		}

		if resp.statusCode == http.StatusUnauthorized && attempt < d.MaxRetries-1 {
			logger.Info("token rejected, regenerating", map[string]any{
				"url":     url,
				"attempt": attempt + 1,
			})
			d.Tokens.Invalidate()
			lastErr = apiErrorFrom(resp)
			continue
		}

		if d.Metrics != nil {
			d.Metrics.IncFailed()
		}
		return nil, apiErrorFrom(resp)
	}

	if d.Metrics != nil {
		d.Metrics.IncFailed()
	}
	return nil, exhausted(lastErr)
}

type rawResponse struct {
	statusCode int
	payload    response.Payload
	decodeErr  error
}

func (d *Dispatcher) execute(ctx context.Context, method, url, tok string, payload map[string]any) (*rawResponse, error) {
	if payload == nil {
		payload = map[string]any{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	// The gateway wants the raw token, not "Bearer <token>".
	req.Header.Set("Authorization", tok)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw := &rawResponse{statusCode: resp.StatusCode}
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		raw.decodeErr = err
	} else {
		raw.payload = response.Payload(decoded)
	}
	return raw, nil
}

// wait blocks for the retry delay, bailing out early when the context is
// done.
func (d *Dispatcher) wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func apiErrorFrom(resp *rawResponse) *APIError {
	apiErr := &APIError{
		Message:    "API request failed",
		Code:       strconv.Itoa(resp.statusCode),
		HTTPStatus: resp.statusCode,
	}
	if resp.payload == nil {
		return apiErr
	}

	if msg, ok := resp.payload.String("errorMessage"); ok {
		apiErr.Message = msg
	} else if msg, ok := resp.payload.String("statusMessage"); ok {
		apiErr.Message = msg
	}

	if code, ok := resp.payload.String("errorCode"); ok {
		apiErr.Code = code
	} else if code, ok := resp.payload.String("statusCode"); ok {
		apiErr.Code = code
	}

	return apiErr
}
