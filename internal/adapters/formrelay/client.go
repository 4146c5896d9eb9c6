package formrelay

import (
	"context"
	"fmt"
	"io"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Endpoint - адрес формы, например https://formsubmit.co/<inbox>
	Endpoint string
	// Origin уходит в поле _origin и заголовок Origin
	Origin       string
	ContactNext  string
	PropertyNext string
	Timeout      time.Duration
}

// Client пересылает заявки во внешний сервис форм (formsubmit-совместимый).
// Тело ответа не разбирается, любой не-2xx статус считается отказом.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("form relay endpoint is required")
	}
	if _, err := url.ParseRequestURI(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid form relay endpoint: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// formValues собирает поля формы так же, как их отправляла страница
func (c *Client) formValues(inquiry domain.Inquiry) url.Values {
	form := url.Values{}
	form.Set("name", inquiry.Name)
	form.Set("email", inquiry.Email)
	form.Set("message", inquiry.Message)
	form.Set("_captcha", "false")
	if inquiry.Subject != "" {
		form.Set("_subject", inquiry.Subject)
	}
	if c.cfg.Origin != "" {
		form.Set("_origin", c.cfg.Origin)
	}

	switch inquiry.Kind {
	case domain.InquiryKindProperty:
		form.Set("phone", inquiry.Phone)
		form.Set("property", inquiry.PropertyTitle)
		form.Set("property_id", strconv.Itoa(inquiry.PropertyID))
		if c.cfg.PropertyNext != "" {
			form.Set("_next", c.cfg.PropertyNext)
		}
	default:
		form.Set("subject", inquiry.Subject)
		if c.cfg.ContactNext != "" {
			form.Set("_next", c.cfg.ContactNext)
		}
	}
	return form
}

func (c *Client) Relay(ctx context.Context, inquiry domain.Inquiry) error {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "FormRelayClient",
		"inquiry_id": inquiry.ID.String(),
		"kind":       inquiry.Kind,
	})

	body := c.formValues(inquiry).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.cfg.Origin != "" {
		req.Header.Set("Origin", c.cfg.Origin)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	clientLogger.Debug("Sending inquiry to form relay", port.Fields{"endpoint": c.cfg.Endpoint})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to perform request to form relay", err, nil)
		return fmt.Errorf("form relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("%w: status %d: %s", domain.ErrRelayRejected, resp.StatusCode, strings.TrimSpace(string(snippet)))
		clientLogger.Error("Form relay returned non-success status", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	// соединение переиспользуется только если тело дочитано
	_, _ = io.Copy(io.Discard, resp.Body)

	clientLogger.Info("Inquiry relayed", port.Fields{"status_code": resp.StatusCode})
	return nil
}
