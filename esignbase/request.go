package esignbase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	contentTypeJSON = "application/json"
	requestIDHeader = "X-Request-Id"

	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 4 << 10
)

// apiRequest describes one call to a resource endpoint.
type apiRequest struct {
	op     string
	method string
	// path is relative to the base URL and already escaped.
	path  string
	query url.Values
	body  any
	// accept defaults to application/json.
	accept string
	// validate checks the operation's arguments once the client is known
	// to be connected.
	validate func() error
}

// send is the single choke point for resource calls. It checks the client
// is connected, attaches the bearer token and maps failures into *Error.
// On success the caller owns the response body.
func (c *OAuth2Client) send(ctx context.Context, r apiRequest) (*http.Response, error) {
	if !c.token.present() {
		return nil, newError(KindNotAuthenticated, r.op, ErrNotConnected)
	}
	if r.validate != nil {
		if err := r.validate(); err != nil {
			return nil, newError(KindInvalidArgument, r.op, err)
		}
	}

	var bodyReader io.Reader
	if r.body != nil {
		bodyBytes, err := json.Marshal(r.body)
		if err != nil {
			return nil, newError(KindInvalidArgument, r.op, errors.Wrap(err, "encode request body"))
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	u := c.endpoint(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), bodyReader)
	if err != nil {
		return nil, newError(KindInvalidArgument, r.op, errors.Wrap(err, "build request"))
	}

	requestID := c.newRequestID()
	c.token.authorize(req)
	accept := r.accept
	if accept == "" {
		accept = contentTypeJSON
	}
	req.Header.Set("Accept", accept)
	req.Header.Set(requestIDHeader, requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	start := c.nowFunc()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		e := newError(KindTransport, r.op, errors.Wrapf(err, "%s %s", r.method, r.path))
		e.RequestID = requestID
		return nil, e
	}

	c.logger.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("duration", c.nowFunc().Sub(start)).
		Msg("esignbase: request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			Kind:       KindAPI,
			Op:         r.op,
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(body, resp.Status),
			RequestID:  requestID,
		}
	}

	return resp, nil
}

// request sends r and decodes the JSON response into an untyped tree of
// maps, slices and scalars. An empty body decodes to nil.
func (c *OAuth2Client) request(ctx context.Context, r apiRequest) (any, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		e := newError(KindTransport, r.op, errors.Wrap(err, "read response body"))
		e.RequestID = resp.Request.Header.Get(requestIDHeader)
		return nil, e
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		e := newError(KindAPI, r.op, errors.Wrap(err, "decode response body"))
		e.StatusCode = resp.StatusCode
		e.RequestID = resp.Request.Header.Get(requestIDHeader)
		return nil, e
	}
	return result, nil
}

// apiErrorMessage extracts the server's explanation from an error body.
func apiErrorMessage(body []byte, status string) string {
	var apiErr struct {
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Detail           string `json:"detail"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		for _, m := range []string{apiErr.Message, apiErr.ErrorDescription, apiErr.Detail, apiErr.Error} {
			if m != "" {
				return m
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return status
}
