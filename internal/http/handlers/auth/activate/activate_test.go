package activate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	services "github.com/magabrotheeeer/xbot-api/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Activate(ctx context.Context, in services.ActivateInput) error {
	return m.Called(ctx, in).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestActivateHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantKey        string
		wantValue      string
	}{
		{
			name: "by username",
			body: `{"username":"alice","activation_code":"a1b2c3"}`,
			setupMock: func(m *AuthServiceMock) {
				m.On("Activate", mock.Anything, services.ActivateInput{Username: "alice", Code: "a1b2c3"}).Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantKey:        "message",
			wantValue:      "Conta ativada com sucesso.",
		},
		{
			name: "by email",
			body: `{"email":"alice@example.com","activation_code":"a1b2c3"}`,
			setupMock: func(m *AuthServiceMock) {
				m.On("Activate", mock.Anything, services.ActivateInput{Email: "alice@example.com", Code: "a1b2c3"}).Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantKey:        "message",
			wantValue:      "Conta ativada com sucesso.",
		},
		{
			name: "wrong code",
			body: `{"username":"alice","activation_code":"zzzzzz"}`,
			setupMock: func(m *AuthServiceMock) {
				m.On("Activate", mock.Anything, mock.Anything).Return(apperr.ErrInvalidCode).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantKey:        "detail",
			wantValue:      "Código de ativação inválido.",
		},
		{
			name: "unknown user",
			body: `{"username":"bob","activation_code":"a1b2c3"}`,
			setupMock: func(m *AuthServiceMock) {
				m.On("Activate", mock.Anything, mock.Anything).Return(apperr.ErrNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantKey:        "detail",
			wantValue:      "Recurso não encontrado.",
		},
		{
			name:           "neither username nor email",
			body:           `{"activation_code":"a1b2c3"}`,
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing code",
			body:           `{"username":"alice"}`,
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantKey:        "detail",
			wantValue:      "field ActivationCode is a required field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/activate", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			if tt.wantKey != "" {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantValue, resp[tt.wantKey])
			}
			svc.AssertExpectations(t)
		})
	}
}
