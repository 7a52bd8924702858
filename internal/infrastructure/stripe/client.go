package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gigvault/escrow-service/internal/domain"
)

// Client talks to the Stripe PaymentIntents API directly. Holds are
// payment intents created with manual capture: the money stays reserved
// until we either capture it (release to freelancer) or cancel the
// intent (refund to client).
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type paymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *Client) CreateHold(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.Hold, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("capture_method", "manual")
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("description", "Freelancer platform escrow payment")
	for key, value := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	intent, err := c.doForm(ctx, http.MethodPost, "/v1/payment_intents", form)
	if err != nil {
		return nil, err
	}

	return &domain.Hold{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
		Status:       mapIntentStatus(intent.Status),
	}, nil
}

func (c *Client) CaptureHold(ctx context.Context, holdID string) (domain.HoldStatus, error) {
	intent, err := c.doForm(ctx, http.MethodPost, fmt.Sprintf("/v1/payment_intents/%s/capture", holdID), url.Values{})
	if err != nil {
		return domain.HoldStatusUnknown, err
	}
	return mapIntentStatus(intent.Status), nil
}

func (c *Client) RefundHold(ctx context.Context, holdID string) (domain.HoldStatus, error) {
	form := url.Values{}
	form.Set("cancellation_reason", "requested_by_customer")
	intent, err := c.doForm(ctx, http.MethodPost, fmt.Sprintf("/v1/payment_intents/%s/cancel", holdID), form)
	if err != nil {
		return domain.HoldStatusUnknown, err
	}
	return mapIntentStatus(intent.Status), nil
}

func (c *Client) GetHoldStatus(ctx context.Context, holdID string) (domain.HoldStatus, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/payment_intents/%s", c.baseURL, holdID), nil)
	if err != nil {
		return domain.HoldStatusUnknown, err
	}
	request.Header.Set("Authorization", "Bearer "+c.secretKey)

	intent, err := c.send(request)
	if err != nil {
		return domain.HoldStatusUnknown, err
	}
	return mapIntentStatus(intent.Status), nil
}

func (c *Client) doForm(ctx context.Context, method, path string, form url.Values) (*paymentIntentResponse, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Authorization", "Bearer "+c.secretKey)

	return c.send(request)
}

func (c *Client) send(request *http.Request) (*paymentIntentResponse, error) {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var intent paymentIntentResponse
		if err := json.Unmarshal(responseBodyBytes, &intent); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
		}
		return &intent, nil
	}

	var stripeError errorResponse
	if err := json.Unmarshal(responseBodyBytes, &stripeError); err != nil {
		return nil, fmt.Errorf("%w: status %d", domain.ErrPaymentGateway, response.StatusCode)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrPaymentGateway, stripeError.Error.Message)
}

func mapIntentStatus(status string) domain.HoldStatus {
	switch status {
	case "requires_capture":
		return domain.HoldStatusHeld
	case "succeeded":
		return domain.HoldStatusCaptured
	case "canceled":
		return domain.HoldStatusRefunded
	case "requires_payment_method", "requires_confirmation", "requires_action", "processing":
		return domain.HoldStatusPending
	default:
		return domain.HoldStatusUnknown
	}
}
