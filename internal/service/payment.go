package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"assetline/config"
	"assetline/internal/dto"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/telemetry"
)

// PaymentService 對外部金流閘道建立 payment intent。
// 閘道對我們是不透明的：送 cents 金額，拿回 clientSecret，僅此而已。
type PaymentService struct {
	conf       *config.Configuration
	trace      *telemetry.Trace
	httpClient *http.Client
}

func NewPaymentService(conf *config.Configuration, trace *telemetry.Trace) *PaymentService {
	timeout := time.Duration(conf.Payment.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PaymentService{
		conf:       conf,
		trace:      trace,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type intentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type intentResponse struct {
	ClientSecret string `json:"client_secret"`
}

// CreateIntent 方案價以美元計，閘道收 cents，所以先乘 100
func (s *PaymentService) CreateIntent(ctx context.Context, createDto *dto.CreateIntentDto) (_ *dto.IntentResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	payload, err := json.Marshal(intentRequest{
		Amount:   createDto.Package * 100,
		Currency: "usd",
	})
	if err != nil {
		return nil, cErr.InternalServer("marshal intent request error")
	}

	httpRequest, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		s.conf.Payment.BaseURL+"/v1/payment_intents",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, cErr.InternalServer("build intent request error")
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+s.conf.Payment.APIKey)

	httpResponse, err := s.httpClient.Do(httpRequest)
	if err != nil {
		return nil, cErr.ExternalRequestError(fmt.Sprintf("payment gateway request error: %v", err))
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < http.StatusOK || httpResponse.StatusCode >= http.StatusMultipleChoices {
		return nil, cErr.ExternalRequestError(fmt.Sprintf("payment gateway returned status %d", httpResponse.StatusCode))
	}

	var intent intentResponse
	if err = json.NewDecoder(httpResponse.Body).Decode(&intent); err != nil {
		return nil, cErr.ExternalResponseFormatError("decode intent response error")
	}
	if intent.ClientSecret == "" {
		return nil, cErr.ExternalResponseFormatError("intent response missing client_secret")
	}
	return &dto.IntentResponseDto{ClientSecret: intent.ClientSecret}, nil
}
