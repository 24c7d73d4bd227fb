package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Raw performs an authenticated request against any Web API path and returns the undecoded response.
// Non-2xx statuses are not errors here. It backs the CLI's api command.
func (s *SpotifyService) Raw(ctx context.Context, method, endpoint string, query url.Values, body []byte) (*APIResponse, error) {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	var payload any
	if len(body) > 0 {
		payload = json.RawMessage(body)
	}

	resp, err := s.send(ctx, method, endpoint, query, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	var jsonData any
	if len(bytes.TrimSpace(data)) > 0 && json.Unmarshal(data, &jsonData) == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
