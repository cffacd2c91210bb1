package paytr_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Muhammed-KRM/E-ticaret/pkg/paytr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMerchantID   = "100200"
	testMerchantKey  = "merchant-key"
	testMerchantSalt = "merchant-salt"
)

func expectedSignature(payload string) string {
	mac := hmac.New(sha256.New, []byte(testMerchantKey))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func setupGateway(t *testing.T, handler http.HandlerFunc) (paytr.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := paytr.NewClientWithHTTP(paytr.Config{
		MerchantID:     testMerchantID,
		MerchantKey:    testMerchantKey,
		MerchantSalt:   testMerchantSalt,
		TokenURL:       server.URL + "/odeme/api/get-token",
		RefundURL:      server.URL + "/odeme/iade",
		Currency:       "TL",
		TestMode:       true,
		MaxInstallment: 0,
		TimeoutLimit:   30,
		ClientLang:     "tr",
	}, server.Client())

	return client, server
}

func testTokenRequest() *paytr.TokenRequest {
	return &paytr.TokenRequest{
		MerchantOID: "abc123",
		UserIP:      "203.0.113.7",
		Email:       "buyer@example.com",
		Amount:      decimal.RequireFromString("25.00"),
		Basket: []paytr.BasketItem{
			{Name: "Product A", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
			{Name: "Product B", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 1},
		},
		UserName:    "Buyer",
		UserAddress: "Street 1",
		UserPhone:   "5550000",
		CallbackURL: "https://shop.example.com/api/v1/payments/callback",
	}
}

func TestRequestPaymentToken(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Signed form is posted and token returned", func(t *testing.T) {
		// Arrange
		var received url.Values
		client, _ := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			received = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","token":"iframe-token"}`))
		})

		// Act
		token, err := client.RequestPaymentToken(ctx, testTokenRequest())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "iframe-token", token)

		basket := `[["Product A","1000",2],["Product B","500",1]]`
		assert.Equal(t, "2500", received.Get("payment_amount"))
		assert.Equal(t, basket, received.Get("user_basket"))
		assert.Equal(t, "abc123", received.Get("merchant_oid"))
		assert.Equal(t, "1", received.Get("test_mode"))
		assert.Equal(t, "30", received.Get("timeout_limit"))

		payload := testMerchantID + "203.0.113.7" + "abc123" + "buyer@example.com" + "2500" + basket +
			"0" + "0" + "TL" + "1" + "https://shop.example.com/api/v1/payments/callback" + testMerchantSalt
		assert.Equal(t, expectedSignature(payload), received.Get("paytr_token"))
	})

	t.Run("Failure - Gateway status not success", func(t *testing.T) {
		client, _ := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"failed","reason":"invalid merchant"}`))
		})

		_, err := client.RequestPaymentToken(ctx, testTokenRequest())

		require.Error(t, err)
		assert.ErrorIs(t, err, paytr.ErrGatewayRejected)
		assert.Contains(t, err.Error(), "invalid merchant")
	})

	t.Run("Failure - Missing token", func(t *testing.T) {
		client, _ := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success"}`))
		})

		_, err := client.RequestPaymentToken(ctx, testTokenRequest())

		assert.ErrorIs(t, err, paytr.ErrMissingToken)
	})

	t.Run("Failure - Non-2xx response", func(t *testing.T) {
		client, _ := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.RequestPaymentToken(ctx, testTokenRequest())

		assert.ErrorIs(t, err, paytr.ErrGatewayUnavailable)
	})

	t.Run("Failure - Gateway unreachable", func(t *testing.T) {
		client, server := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()

		_, err := client.RequestPaymentToken(ctx, testTokenRequest())

		assert.ErrorIs(t, err, paytr.ErrGatewayUnavailable)
	})
}

func TestVerifyCallback(t *testing.T) {
	client, _ := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {})
	valid := expectedSignature("abc123" + testMerchantSalt + "success" + "2500")

	t.Run("Success - Matching signature", func(t *testing.T) {
		assert.True(t, client.VerifyCallback(valid, "abc123", "success", "2500"))
	})

	t.Run("Failure - Tampered status", func(t *testing.T) {
		assert.False(t, client.VerifyCallback(valid, "abc123", "failed", "2500"))
	})

	t.Run("Failure - Tampered amount", func(t *testing.T) {
		assert.False(t, client.VerifyCallback(valid, "abc123", "success", "1"))
	})

	t.Run("Failure - Empty signature", func(t *testing.T) {
		assert.False(t, client.VerifyCallback("", "abc123", "success", "2500"))
	})
}

func TestRequestRefund(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Refund accepted", func(t *testing.T) {
		// Arrange
		var received url.Values
		client, _ := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			received = r.PostForm
			_, _ = w.Write([]byte(`{"status":"success","merchant_oid":"abc123","return_amount":"1250"}`))
		})

		// Act
		err := client.RequestRefund(ctx, "abc123", decimal.RequireFromString("12.50"))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "1250", received.Get("return_amount"))
		assert.Equal(t, expectedSignature(testMerchantID+"abc123"+"1250"+testMerchantSalt), received.Get("paytr_token"))
	})

	t.Run("Failure - Refund rejected with message", func(t *testing.T) {
		client, _ := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"error","err_no":"005","err_msg":"insufficient balance"}`))
		})

		err := client.RequestRefund(ctx, "abc123", decimal.RequireFromString("12.50"))

		require.Error(t, err)
		assert.ErrorIs(t, err, paytr.ErrGatewayRejected)
		assert.Contains(t, err.Error(), "insufficient balance")
	})

	t.Run("Failure - Malformed response", func(t *testing.T) {
		client, _ := setupGateway(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		err := client.RequestRefund(ctx, "abc123", decimal.RequireFromString("1"))

		assert.ErrorIs(t, err, paytr.ErrGatewayUnavailable)
	})
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		minor  int64
	}{
		{"25.00", 2500},
		{"0.01", 1},
		{"10.005", 1001},
		{"10.004", 1000},
		{"199.99", 19999},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			minor := paytr.ToMinorUnits(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.minor, minor)
		})
	}

	t.Run("Round trip", func(t *testing.T) {
		amount, err := paytr.ParseMinorUnits("2500")
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("25").Equal(amount))
		assert.Equal(t, int64(2500), paytr.ToMinorUnits(paytr.FromMinorUnits(2500)))
	})

	t.Run("Round to minor", func(t *testing.T) {
		assert.Equal(t, "30.00", paytr.RoundToMinor(decimal.RequireFromString("29.999")).StringFixed(2))
		assert.True(t, paytr.RoundToMinor(decimal.RequireFromString("-0.005")).Equal(decimal.RequireFromString("-0.01")))
		assert.True(t, paytr.RoundToMinor(decimal.RequireFromString("0.004")).IsZero())
	})

	t.Run("Failure - Not a number", func(t *testing.T) {
		_, err := paytr.ParseMinorUnits("12.5")
		assert.Error(t, err)
	})
}
