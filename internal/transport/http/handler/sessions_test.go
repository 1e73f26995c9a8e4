package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evote-api-nosql/internal/application/auth"
	"github.com/evote-api-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *mockAuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func loginBody() []byte {
	b, _ := json.Marshal(auth.LoginRequest{
		Identifier: "123456789012",
		Password:   "s3cret-pass",
		Embedding:  domain.Embedding{0.1, 0.2},
	})
	return b
}

func TestLogin_MatchIssuesBearer(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(&auth.LoginResult{
		Voter:  &domain.Voter{LegalID: "123456789012", Name: "Asha Kumar"},
		Match:  true,
		Bearer: "token-abc",
	}, nil)
	h := NewSessionHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewReader(loginBody()))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env LoginEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Match)
	assert.Equal(t, "token-abc", env.Bearer)
	require.NotNil(t, env.Voter)
	assert.Equal(t, "123456789012", env.Voter.LegalID)
}

func TestLogin_MismatchWithholdsBearer(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(&auth.LoginResult{
		Voter: &domain.Voter{LegalID: "123456789012", Name: "Asha Kumar", Email: "asha@example.com"},
		Match: false,
	}, nil)
	h := NewSessionHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewReader(loginBody()))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env LoginEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.False(t, env.Match)
	assert.Empty(t, env.Bearer)

	// The outcome comes back alongside the record's public fields.
	require.NotNil(t, env.Voter)
	assert.Equal(t, "123456789012", env.Voter.LegalID)
	assert.Equal(t, "Asha Kumar", env.Voter.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredential)
	h := NewSessionHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewReader(loginBody()))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin_UnknownVoter(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	h := NewSessionHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewReader(loginBody()))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminLogin_BadCredentials(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("AdminLogin", mock.Anything, "admin", "wrong").Return("", domain.ErrInvalidCredential)
	h := NewSessionHandler(svc)

	b, _ := json.Marshal(adminLoginRequest{Username: "admin", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/admin-login", bytes.NewReader(b))
	rr := httptest.NewRecorder()
	h.AdminLogin(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
