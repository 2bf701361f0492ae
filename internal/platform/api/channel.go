package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Channel issues JSON requests against the record service with the static
// Basic credential attached to every call. There are no retries and no
// caching; each call is a fresh round trip.
type Channel struct {
	base     string
	username string
	password string
	client   *http.Client
	logger   zerolog.Logger
}

// NewChannel builds a channel for the given base URL and credential pair.
func NewChannel(base, username, password string, timeout time.Duration, logger zerolog.Logger) *Channel {
	return &Channel{
		base:     strings.TrimRight(base, "/"),
		username: username,
		password: password,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Get issues a GET request and decodes the 2xx payload into T.
func Get[T any](ctx context.Context, ch *Channel, path string, query url.Values) Result[T] {
	return request[T](ctx, ch, http.MethodGet, path, nil, query)
}

// Post issues a POST request with a JSON body.
func Post[T any](ctx context.Context, ch *Channel, path string, body any, query url.Values) Result[T] {
	return request[T](ctx, ch, http.MethodPost, path, body, query)
}

// Put issues a PUT request with a JSON body.
func Put[T any](ctx context.Context, ch *Channel, path string, body any, query url.Values) Result[T] {
	return request[T](ctx, ch, http.MethodPut, path, body, query)
}

// Delete issues a DELETE request.
func Delete[T any](ctx context.Context, ch *Channel, path string, query url.Values) Result[T] {
	return request[T](ctx, ch, http.MethodDelete, path, nil, query)
}

// request performs one round trip and converts every possible outcome into a
// Result. The conversion is total: a transport fault, a non-2xx status and an
// undecodable body all come back as the failed branch, never as a panic or a
// raw error.
func request[T any](ctx context.Context, ch *Channel, method, path string, body any, query url.Values) Result[T] {
	target := ch.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return Fail[T](&Failure{Message: err.Error()})
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return Fail[T](&Failure{Message: err.Error()})
	}
	req.SetBasicAuth(ch.username, ch.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := ch.client.Do(req)
	if err != nil {
		ch.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return Fail[T](&Failure{Message: err.Error()})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Fail[T](&Failure{Message: err.Error()})
	}

	ch.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Fail[T](decodeFailure(data))
	}
	return decodePayload[T](data)
}

// decodeFailure reads the structured failure body the service is expected,
// but not required, to send. Anything unusable falls back to the generic
// message so the failed branch never surfaces empty.
func decodeFailure(data []byte) *Failure {
	failure := &Failure{}
	if err := json.Unmarshal(data, failure); err != nil || failure.Message == "" {
		failure.Message = GenericMessage
	}
	failure.Success = false
	failure.Message = composeMessage(failure.Message, failure.Errors)
	return failure
}

// decodePayload turns a 2xx body into the success branch. An empty body is a
// valid success (delete endpoints return nothing), and a plain-text body
// decodes into a string payload as-is (the risk endpoint returns a bare
// label).
func decodePayload[T any](data []byte) Result[T] {
	var value T
	if len(bytes.TrimSpace(data)) == 0 {
		return OK(value)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		if text, ok := any(&value).(*string); ok {
			*text = string(bytes.TrimSpace(data))
			return OK(value)
		}
		return Fail[T](&Failure{Message: err.Error()})
	}
	return OK(value)
}
