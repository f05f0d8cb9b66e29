package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk/internal/service/staff"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		svc        *fakeStaffService
		payload    map[string]interface{}
		wantStatus int
		wantToken  string
	}{
		{
			name:       "valid credentials",
			svc:        &fakeStaffService{employee: testManager(), token: "test-token"},
			payload:    map[string]interface{}{"login": "petrov", "password": "secret123"},
			wantStatus: http.StatusOK,
			wantToken:  "test-token",
		},
		{
			name:       "wrong credentials",
			svc:        &fakeStaffService{err: staff.ErrInvalidCredentials},
			payload:    map[string]interface{}{"login": "petrov", "password": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing login",
			svc:        &fakeStaffService{},
			payload:    map[string]interface{}{"password": "secret123"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			svc:        &fakeStaffService{},
			payload:    map[string]interface{}{"login": "petrov"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewAuthHandler(tt.svc)

			body, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.Login(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken != "" {
				var resp LoginResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, tt.wantToken, resp.Token)
				assert.Equal(t, "petrov", resp.Employee.Login)
				assert.Equal(t, "Менеджер", resp.Employee.RoleDisplay)
			}
		})
	}
}

func TestLoginMalformedBody(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&fakeStaffService{})

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString("{not json"))
	recorder := httptest.NewRecorder()

	handler.Login(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
