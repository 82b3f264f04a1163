package error

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryCodeBands(t *testing.T) {
	tests := []struct {
		name      string
		err       *Error
		httpCode  int
		errorCode int
	}{
		{"validate", ValidateErr("bad body"), http.StatusBadRequest, BAD_REQUEST_BODY},
		{"missing credential", Unauthorized("no header"), http.StatusUnauthorized, UNAUTHORIZED},
		{"invalid credential", InvalidCredential("bad token"), http.StatusUnauthorized, INVALID_CREDENTIAL},
		{"forbidden role", Forbidden("not a manager"), http.StatusForbidden, FORBIDDEN},
		{"forbidden scope", ForbiddenScope("not yours"), http.StatusForbidden, FORBIDDEN_SCOPE},
		{"not found", NotFound("gone"), http.StatusNotFound, NOT_FOUND},
		{"duplicate registration", DuplicateRegistration("taken"), http.StatusConflict, DUPLICATE_REGISTRATION},
		{"inventory exhausted", InventoryExhausted("empty"), http.StatusConflict, INVENTORY_EXHAUSTED},
		{"invalid transition", InvalidTransition("not pending"), http.StatusConflict, INVALID_TRANSITION},
		{"rate limited", RateLimitExceeded("slow down"), http.StatusTooManyRequests, RATE_LIMIT_EXCEEDED},
		{"database", DatabaseError("boom"), http.StatusInternalServerError, DATABASE_ERROR},
		{"gateway request", ExternalRequestError("refused"), http.StatusBadGateway, EXTERNAL_REQUEST_ERROR},
		{"gateway format", ExternalResponseFormatError("not json"), http.StatusBadGateway, EXTERNAL_RESPONSE_FORMAT_ERROR},
		{"gateway timeout", GatewayTimeout("slow"), http.StatusGatewayTimeout, GATEWAY_TIMEOUT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.httpCode, tt.err.HttpCode())
			assert.Equal(t, tt.errorCode, tt.err.ErrorCode())
		})
	}
}

func TestFromPassesThroughAppErrors(t *testing.T) {
	original := NotFound("gone")
	assert.Same(t, original, From(original))

	wrapped := From(errors.New("plain failure"))
	assert.Equal(t, http.StatusInternalServerError, wrapped.HttpCode())
	assert.Equal(t, INTERNAL_ERROR, wrapped.ErrorCode())
	assert.Equal(t, "plain failure", wrapped.ErrorDesc())
}

func TestMapHttpStatusToError(t *testing.T) {
	// 409 一律映成生命週期衝突
	conflict := MapHttpStatusToError(http.StatusConflict, "already moved on")
	assert.Equal(t, INVALID_TRANSITION, conflict.ErrorCode())

	unknown := MapHttpStatusToError(http.StatusTeapot, "weird")
	assert.Equal(t, INTERNAL_ERROR, unknown.ErrorCode())
}
