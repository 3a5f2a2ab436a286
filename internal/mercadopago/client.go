package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pixmart/pixmart/internal/models"
)

// request timeout for gateway calls
const requestTimeout = 10 * time.Second

// Client is HTTP client for the Mercado Pago payments API
type Client struct {
	client      *http.Client
	baseURL     string
	accessToken string
}

// NewClient creates new Client instance
func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:     baseURL,
		accessToken: accessToken,
	}
}

// CreatePaymentRequest is input for CreatePayment. Amount is centavos.
type CreatePaymentRequest struct {
	OrderID     string
	Amount      int64
	Description string
	PayerEmail  string
}

type payerPayload struct {
	Email string `json:"email"`
}

type createPaymentPayload struct {
	TransactionAmount json.Number  `json:"transaction_amount"`
	Description       string       `json:"description"`
	PaymentMethodID   string       `json:"payment_method_id"`
	Payer             payerPayload `json:"payer"`
	ExternalReference string       `json:"external_reference"`
}

type transactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
}

type pointOfInteraction struct {
	TransactionData transactionData `json:"transaction_data"`
}

type paymentResponse struct {
	ID                 json.Number        `json:"id"`
	Status             string             `json:"status"`
	ExternalReference  string             `json:"external_reference"`
	PointOfInteraction pointOfInteraction `json:"point_of_interaction"`
}

// formatAmount renders centavos as a decimal with two fraction digits
func formatAmount(cents int64) json.Number {
	return json.Number(fmt.Sprintf("%d.%02d", cents/100, cents%100))
}

// CreatePayment issues a PIX charge. The order id is sent as the
// idempotency key.
// POST /v1/payments
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*models.Charge, error) {
	if req.Amount <= 0 {
		return nil, models.ErrInvalidAmount
	}

	reqURL, err := url.JoinPath(c.baseURL, "v1", "payments")
	if err != nil {
		return nil, err
	}

	payload := createPaymentPayload{
		TransactionAmount: formatAmount(req.Amount),
		Description:       req.Description,
		PaymentMethodID:   "pix",
		Payer:             payerPayload{Email: req.PayerEmail},
		ExternalReference: req.OrderID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Idempotency-Key", req.OrderID)

	resp, err := c.client.Do(httpReq)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		// timeout or connection failure
		return nil, models.NewRetryableGatewayError(0, err.Error())
	}

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}

	mpResp := paymentResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&mpResp); err != nil {
		return nil, models.NewPermanentGatewayError(resp.StatusCode, "malformed payment response: "+err.Error())
	}

	if mpResp.ID.String() == "" || mpResp.PointOfInteraction.TransactionData.QRCode == "" {
		return nil, models.NewPermanentGatewayError(resp.StatusCode, "payment response missing id or qr code")
	}

	return &models.Charge{
		TransactionID: mpResp.ID.String(),
		Status:        mpResp.Status,
		QRCode:        mpResp.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64:  mpResp.PointOfInteraction.TransactionData.QRCodeBase64,
	}, nil
}

// GetPayment fetches the authoritative payment record by transaction id.
// GET /v1/payments/{id}
func (c *Client) GetPayment(ctx context.Context, transactionID string) (*models.Payment, error) {
	reqURL, err := url.JoinPath(c.baseURL, "v1", "payments", transactionID)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.client.Do(httpReq)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, models.NewRetryableGatewayError(0, err.Error())
	}

	if err := classifyStatus(resp); err != nil {
		return nil, err
	}

	mpResp := paymentResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&mpResp); err != nil {
		return nil, models.NewPermanentGatewayError(resp.StatusCode, "malformed payment response: "+err.Error())
	}

	if mpResp.ID.String() == "" || mpResp.Status == "" {
		return nil, models.NewPermanentGatewayError(resp.StatusCode, "payment response missing id or status")
	}

	return &models.Payment{
		TransactionID:     mpResp.ID.String(),
		Status:            mpResp.Status,
		ExternalReference: mpResp.ExternalReference,
	}, nil
}

// classifyStatus maps non-2xx responses to gateway errors: 5xx is retryable,
// 4xx is a configuration or request problem and is not
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return models.NewRetryableGatewayError(resp.StatusCode, readErrorBody(resp))
	default:
		return models.NewPermanentGatewayError(resp.StatusCode, readErrorBody(resp))
	}
}

func readErrorBody(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil || len(body) == 0 {
		return resp.Status
	}
	return string(body)
}
