package payment

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
)

const providerPayPal = "paypal"

type PayPalConfig struct {
	ClientID string
	Secret   string
	BaseURL  string // e.g. https://api-m.paypal.com
}

// PayPalVerifier exchanges client credentials for a bearer token, fetches
// the order by reference and checks status + amount. The server-confirmed
// amount must be at least the requested amount; a greater amount is
// accepted since it already covers the pledge.
type PayPalVerifier struct {
	cfg        PayPalConfig
	httpClient *http.Client
}

func NewPayPalVerifier(cfg PayPalConfig) *PayPalVerifier {
	return &PayPalVerifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type paypalOrder struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Amount struct {
			CurrencyCode string `json:"currency_code"`
			Value        string `json:"value"`
		} `json:"amount"`
	} `json:"purchase_units"`
	Links []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"links"`
}

func (v *PayPalVerifier) Verify(ctx context.Context, amount float64, reference string) Result {
	if v.cfg.ClientID == "" || v.cfg.Secret == "" {
		return failure(providerPayPal, ReasonMissingCredentials)
	}

	token, err := v.fetchToken(ctx)
	if err != nil {
		return failure(providerPayPal, ReasonProviderError)
	}

	order, err := v.fetchOrder(ctx, token, reference)
	if err != nil {
		return failure(providerPayPal, ReasonProviderError)
	}

	if order.Status != "COMPLETED" {
		return failure(providerPayPal, ReasonNotCompleted)
	}
	paid, ok := orderAmount(order)
	if !ok || paid < amount {
		return failure(providerPayPal, ReasonAmountMismatch)
	}

	now := time.Now().UTC()
	res := Result{
		Success:       true,
		Provider:      providerPayPal,
		TransactionID: order.ID,
		VerifiedAt:    &now,
	}
	for _, l := range order.Links {
		if l.Rel == "self" {
			res.ReceiptURL = l.Href
		}
	}
	return res
}

func orderAmount(o *paypalOrder) (float64, bool) {
	if len(o.PurchaseUnits) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(o.PurchaseUnits[0].Amount.Value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (v *PayPalVerifier) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.cfg.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(v.cfg.ClientID, v.cfg.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("paypal token: status %d: %s", resp.StatusCode, body)
	}
	var tok paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("paypal token: empty access_token")
	}
	return tok.AccessToken, nil
}

func (v *PayPalVerifier) fetchOrder(ctx context.Context, token, orderID string) (*paypalOrder, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		v.cfg.BaseURL+"/v2/checkout/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("paypal order %s: status %d: %s", orderID, resp.StatusCode, body)
	}
	var order paypalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}
