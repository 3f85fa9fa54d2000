package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestIDHeader = "X-Request-ID"

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body and request id.
func (c *HTTPClient) Post(ctx context.Context, url, requestID string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// requestBody builds an ES request, or a CX request when cx is set.
func requestBody(s Scenario, cx bool) map[string]any {
	params := s.Parameters
	if params == nil {
		params = map[string]any{}
	}
	if cx {
		return map[string]any{
			"fulfillmentInfo": map[string]any{"tag": s.Intent},
			"sessionInfo":     map[string]any{"parameters": params},
		}
	}
	return map[string]any{
		"queryResult": map[string]any{
			"intent":     map[string]any{"displayName": s.Intent},
			"parameters": params,
		},
	}
}

type webhookReply struct {
	FulfillmentText     string `json:"fulfillmentText"`
	FulfillmentResponse *struct {
		Messages []struct {
			Text struct {
				Text []string `json:"text"`
			} `json:"text"`
		} `json:"messages"`
	} `json:"fulfillment_response"`
}

// text returns the reply text, preferring the CX message when cx is set.
func (r webhookReply) text(cx bool) (string, error) {
	if !cx {
		return r.FulfillmentText, nil
	}
	if r.FulfillmentResponse == nil || len(r.FulfillmentResponse.Messages) == 0 ||
		len(r.FulfillmentResponse.Messages[0].Text.Text) == 0 {
		return "", fmt.Errorf("%w: missing fulfillment_response", ErrUnexpectedReply)
	}
	return r.FulfillmentResponse.Messages[0].Text.Text[0], nil
}
