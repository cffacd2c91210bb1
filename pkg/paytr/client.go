// Package paytr talks to the PayTR iFrame payment API: token requests, refunds and
// verification of the signed payment notification.
package paytr

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const statusSuccess = "success"

var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected the request")
	ErrMissingToken       = errors.New("payment gateway returned no token")
)

type Client interface {
	RequestPaymentToken(ctx context.Context, req *TokenRequest) (string, error)
	VerifyCallback(signature, merchantOID, status, totalAmount string) bool
	RequestRefund(ctx context.Context, merchantOID string, amount decimal.Decimal) error
}

type Config struct {
	MerchantID     string
	MerchantKey    string
	MerchantSalt   string
	TokenURL       string
	RefundURL      string
	Currency       string
	TestMode       bool
	DebugOn        bool
	NoInstallment  bool
	MaxInstallment int
	TimeoutLimit   int
	ClientLang     string
	OkURL          string
	FailURL        string
	HTTPTimeout    time.Duration
}

type BasketItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

type TokenRequest struct {
	MerchantOID string
	UserIP      string
	Email       string
	Amount      decimal.Decimal
	Basket      []BasketItem
	UserName    string
	UserAddress string
	UserPhone   string
	CallbackURL string
}

type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

type refundResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"err_msg"`
	Reason       string `json:"reason"`
}

type client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return NewClientWithHTTP(cfg, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewClientWithHTTP(cfg Config, httpClient *http.Client) Client {
	return &client{cfg: cfg, httpClient: httpClient}
}

func (c *client) RequestPaymentToken(ctx context.Context, req *TokenRequest) (string, error) {

	basket, err := encodeBasket(req.Basket)
	if err != nil {
		return "", fmt.Errorf("failed to encode basket: %w", err)
	}

	amount := formatMinor(req.Amount)
	noInstallment := boolFlag(c.cfg.NoInstallment)
	maxInstallment := strconv.Itoa(c.cfg.MaxInstallment)
	testMode := boolFlag(c.cfg.TestMode)

	signature := c.sign(
		c.cfg.MerchantID,
		req.UserIP,
		req.MerchantOID,
		req.Email,
		amount,
		basket,
		noInstallment,
		maxInstallment,
		c.cfg.Currency,
		testMode,
		req.CallbackURL,
		c.cfg.MerchantSalt,
	)

	form := url.Values{}
	form.Set("merchant_id", c.cfg.MerchantID)
	form.Set("user_ip", req.UserIP)
	form.Set("merchant_oid", req.MerchantOID)
	form.Set("email", req.Email)
	form.Set("payment_amount", amount)
	form.Set("paytr_token", signature)
	form.Set("user_basket", basket)
	form.Set("debug_on", boolFlag(c.cfg.DebugOn))
	form.Set("client_lang", c.cfg.ClientLang)
	form.Set("no_installment", noInstallment)
	form.Set("max_installment", maxInstallment)
	form.Set("user_name", req.UserName)
	form.Set("user_address", req.UserAddress)
	form.Set("user_phone", req.UserPhone)
	form.Set("merchant_ok_url", c.cfg.OkURL)
	form.Set("merchant_fail_url", c.cfg.FailURL)
	form.Set("merchant_notify_url", req.CallbackURL)
	form.Set("timeout_limit", strconv.Itoa(c.cfg.TimeoutLimit))
	form.Set("currency", c.cfg.Currency)
	form.Set("test_mode", testMode)

	var resp tokenResponse
	if err := c.postForm(ctx, c.cfg.TokenURL, form, &resp); err != nil {
		return "", err
	}

	if resp.Status != statusSuccess {
		return "", fmt.Errorf("%w: %s", ErrGatewayRejected, resp.Reason)
	}

	if resp.Token == "" {
		return "", ErrMissingToken
	}

	return resp.Token, nil
}

func (c *client) VerifyCallback(signature, merchantOID, status, totalAmount string) bool {
	if signature == "" {
		return false
	}

	expected := c.sign(merchantOID, c.cfg.MerchantSalt, status, totalAmount)

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *client) RequestRefund(ctx context.Context, merchantOID string, amount decimal.Decimal) error {

	returnAmount := formatMinor(amount)

	form := url.Values{}
	form.Set("merchant_id", c.cfg.MerchantID)
	form.Set("merchant_oid", merchantOID)
	form.Set("return_amount", returnAmount)
	form.Set("paytr_token", c.sign(c.cfg.MerchantID, merchantOID, returnAmount, c.cfg.MerchantSalt))

	var resp refundResponse
	if err := c.postForm(ctx, c.cfg.RefundURL, form, &resp); err != nil {
		return err
	}

	if resp.Status != statusSuccess {
		reason := resp.ErrorMessage
		if reason == "" {
			reason = resp.Reason
		}

		return fmt.Errorf("%w: %s", ErrGatewayRejected, reason)
	}

	return nil
}

// sign is base64(HMAC-SHA256(merchant key, concatenated parts)).
func (c *client) sign(parts ...string) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.MerchantKey))
	mac.Write([]byte(strings.Join(parts, "")))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (c *client) postForm(ctx context.Context, endpoint string, form url.Values, dest any) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: http status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrGatewayUnavailable, err)
	}

	return nil
}

// encodeBasket renders [[name, unit price in minor units, quantity], ...].
func encodeBasket(items []BasketItem) (string, error) {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{item.Name, formatMinor(item.UnitPrice), item.Quantity})
	}

	encoded, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}

	return "0"
}
