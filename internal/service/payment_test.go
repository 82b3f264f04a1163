package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetline/config"
	"assetline/internal/dto"
	cErr "assetline/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentServiceForTest(baseURL string) *PaymentService {
	return NewPaymentService(&config.Configuration{
		Payment: config.Payment{BaseURL: baseURL, APIKey: "sk_test_abc", Timeout: 2000},
	}, testTrace())
}

func TestCreateIntentSendsCentsWithBearerKey(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody intentRequest

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"client_secret": "pi_secret_123"})
	}))
	defer gateway.Close()

	service := newPaymentServiceForTest(gateway.URL)
	intent, err := service.CreateIntent(context.Background(), &dto.CreateIntentDto{Package: 250})
	require.NoError(t, err)

	assert.Equal(t, "pi_secret_123", intent.ClientSecret)
	assert.Equal(t, "/v1/payment_intents", gotPath)
	assert.Equal(t, "Bearer sk_test_abc", gotAuth)
	// 方案價是美元，閘道收 cents
	assert.Equal(t, int64(25000), gotBody.Amount)
	assert.Equal(t, "usd", gotBody.Currency)
}

func TestCreateIntentGatewayErrorStatus(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer gateway.Close()

	_, err := newPaymentServiceForTest(gateway.URL).CreateIntent(context.Background(), &dto.CreateIntentDto{Package: 1})
	requireErrorCode(t, err, cErr.EXTERNAL_REQUEST_ERROR)
}

func TestCreateIntentGatewayUnreachable(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	gateway.Close()

	_, err := newPaymentServiceForTest(gateway.URL).CreateIntent(context.Background(), &dto.CreateIntentDto{Package: 1})
	requireErrorCode(t, err, cErr.EXTERNAL_REQUEST_ERROR)
}

func TestCreateIntentMalformedResponse(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer gateway.Close()

	_, err := newPaymentServiceForTest(gateway.URL).CreateIntent(context.Background(), &dto.CreateIntentDto{Package: 1})
	requireErrorCode(t, err, cErr.EXTERNAL_RESPONSE_FORMAT_ERROR)
}

func TestCreateIntentMissingClientSecret(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "pi_123"})
	}))
	defer gateway.Close()

	_, err := newPaymentServiceForTest(gateway.URL).CreateIntent(context.Background(), &dto.CreateIntentDto{Package: 1})
	requireErrorCode(t, err, cErr.EXTERNAL_RESPONSE_FORMAT_ERROR)
}
