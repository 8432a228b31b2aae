package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nekogravitycat/shareit/internal/api"
	"github.com/nekogravitycat/shareit/internal/auth"
)

// maxReplyBytes caps how much of a server reply the gateway buffers.
const maxReplyBytes = 10 << 20

// Call is one request to forward to the server.
type Call struct {
	Method    string
	Path      string
	RawQuery  string
	UserID    string
	RequestID string
	Body      []byte
}

// Reply is the server's answer, relayed to the caller unchanged.
type Reply struct {
	Status      int
	ContentType string
	Body        []byte
}

// ServerClient forwards validated calls to the server tier.
type ServerClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewServerClient(baseURL string, timeout time.Duration) *ServerClient {
	return &ServerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ServerClient) Forward(ctx context.Context, call Call) (*Reply, error) {
	u, err := url.Parse(c.baseURL + call.Path)
	if err != nil {
		return nil, fmt.Errorf("build server url: %w", err)
	}
	u.RawQuery = call.RawQuery

	var body io.Reader
	if len(call.Body) > 0 {
		body = bytes.NewReader(call.Body)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build server request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if call.UserID != "" {
		req.Header.Set(auth.HeaderUserID, call.UserID)
	}
	if call.RequestID != "" {
		req.Header.Set(api.HeaderRequestID, call.RequestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, fmt.Errorf("read server reply: %w", err)
	}

	return &Reply{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}
