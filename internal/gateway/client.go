package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"CaffeineSentinel/internal/model"
)

// HTTPGateway implements Gateway against the CaffeineSentinel REST server.
type HTTPGateway struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewHTTPGateway creates a gateway client with optional proxy support.
func NewHTTPGateway(baseURL, token, proxyURL string) *HTTPGateway {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPGateway{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (g *HTTPGateway) Name() string { return "http" }

func (g *HTTPGateway) AddIntake(ctx context.Context, req AddIntakeRequest) (*model.CaffeineInfo, error) {
	var resp struct {
		Message      string             `json:"message"`
		CaffeineInfo model.CaffeineInfo `json:"caffeine_info"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/caffeine/intake", req, &resp); err != nil {
		return nil, fmt.Errorf("add intake: %w", err)
	}
	return &resp.CaffeineInfo, nil
}

func (g *HTTPGateway) TodayHistory(ctx context.Context) ([]model.IntakeEvent, error) {
	var events []model.IntakeEvent
	if err := g.do(ctx, http.MethodGet, "/api/caffeine/today", nil, &events); err != nil {
		return nil, fmt.Errorf("today history: %w", err)
	}
	return events, nil
}

func (g *HTTPGateway) CurrentInfo(ctx context.Context) (*model.CaffeineInfo, error) {
	var info model.CaffeineInfo
	if err := g.do(ctx, http.MethodGet, "/api/caffeine/info", nil, &info); err != nil {
		return nil, fmt.Errorf("current info: %w", err)
	}
	return &info, nil
}

func (g *HTTPGateway) UpdateInfo(ctx context.Context, req UpdateInfoRequest) (*model.CaffeineInfo, error) {
	var resp struct {
		Message      string             `json:"message"`
		CaffeineInfo model.CaffeineInfo `json:"caffeine_info"`
	}
	if err := g.do(ctx, http.MethodPut, "/api/caffeine/info", req, &resp); err != nil {
		return nil, fmt.Errorf("update info: %w", err)
	}
	return &resp.CaffeineInfo, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.Token)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		respBody, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
