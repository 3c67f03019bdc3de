// Package email отправляет транзакционные письма через HTTP API провайдера (Resend).
package email

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"wishly/internal/domain/entity"
	"wishly/pkg/contextx"
	"wishly/pkg/httpx"
	"wishly/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const errorBodyLimit = 1024

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type Client struct {
	baseURL    string
	from       string
	httpClient *http.Client
}

// NewClient собирает клиента: логирование запросов с маскированием и Bearer-ключ провайдера.
func NewClient(
	baseURL string,
	apiKey string,
	from string,
	timeout time.Duration,
	opts ...httpx.Option,
) *Client {
	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(http.DefaultTransport, opts...),
		httpx.StaticBearer(apiKey),
	)

	return &Client{
		baseURL: baseURL,
		from:    from,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

func (c *Client) SendGiftClaimedEmail(ctx context.Context, e entity.GiftClaimedEmail) error {
	msg, err := RenderGiftClaimed(e)
	if err != nil {
		return fmt.Errorf("RenderGiftClaimed: %w", err)
	}

	return c.send(ctx, msg)
}

func (c *Client) SendClaimConfirmationEmail(ctx context.Context, e entity.ClaimConfirmationEmail) error {
	msg, err := RenderClaimConfirmation(e)
	if err != nil {
		return fmt.Errorf("RenderClaimConfirmation: %w", err)
	}

	return c.send(ctx, msg)
}

func (c *Client) send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit)) //nolint:errcheck

		return fmt.Errorf("email provider responded %d: %s", resp.StatusCode, b)
	}

	var out sendResponse

	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	logger(ctx).Info("email sent", slog.String(logx.FieldMessageID, out.ID))

	return nil
}
