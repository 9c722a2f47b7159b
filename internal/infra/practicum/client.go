// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Endpoint is the only API this client talks to.
const Endpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const requestTimeout = 30 * time.Second

// RequestError reports a failed status request: a transport-level failure,
// a non-200 reply, or an unreadable body.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("practicum: request to %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("practicum: endpoint %s unavailable: HTTP %d", e.Endpoint, e.StatusCode)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client fetches homework statuses from the Practicum API.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewClient creates a client for the production endpoint authorized by the
// given token.
func NewClient(token string, logger *logrus.Entry) *Client {
	return &Client{
		endpoint:   Endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// Fetch requests every status update since fromDate (unix seconds) and
// returns the decoded JSON payload verbatim. Shape validation is the
// caller's concern; every failure here is a *RequestError.
func (c *Client) Fetch(ctx context.Context, fromDate int64) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, http.NoBody)
	if err != nil {
		return nil, &RequestError{Endpoint: c.endpoint, Err: err}
	}

	query := req.URL.Query()
	query.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", "OAuth "+c.token)

	c.logger.WithField("from_date", fromDate).Debug("Requesting homework statuses")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Endpoint: c.endpoint, StatusCode: resp.StatusCode}
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &RequestError{Endpoint: c.endpoint, Err: err}
	}

	return payload, nil
}
