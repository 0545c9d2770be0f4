package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
	"sparkle/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "domain failure", err: failure.StaleState, code: http.StatusConflict, message: failure.StaleState.Message},
		{name: "internal error is masked", err: errors.New("pq: connection refused"), code: http.StatusInternalServerError, message: constant.ResponseErrorTryAgain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.code, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.message)
			assert.NotContains(t, recorder.Body.String(), "pq:")
			assert.Equal(t, constant.ContentTypeJSON, recorder.Header().Get(constant.RequestHeaderContentType))
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithJSON(recorder, http.StatusCreated, map[string]string{"id": "bk-1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"id":"bk-1"}}`, recorder.Body.String())
}
