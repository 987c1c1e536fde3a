//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/handler/dto/request"
	"inspection-marketplace/internal/handler/dto/response"
	"inspection-marketplace/tests/common/authtest"
	"inspection-marketplace/tests/common/dbtest"
	"inspection-marketplace/tests/common/httptest"
	"inspection-marketplace/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "buyer@example.com", string(user.RoleBuyer))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleBuyer))

	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestRegister() {
	tests := []struct {
		name           string
		body           request.RegisterRequest
		expectedStatus int
	}{
		{
			name:           "buyer",
			body:           request.RegisterRequest{Email: "new-buyer@example.com", Password: "password123", Role: "buyer"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "mechanic",
			body:           request.RegisterRequest{Email: "new-mechanic@example.com", Password: "password123", Role: "mechanic"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "email is case-insensitive",
			body:           request.RegisterRequest{Email: "BUYER@example.com", Password: "password123", Role: "buyer"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "admin cannot self-register",
			body:           request.RegisterRequest{Email: "root@example.com", Password: "password123", Role: "admin"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			body:           request.RegisterRequest{Email: "short@example.com", Password: "short", Role: "buyer"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, tt.body, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusCreated {
				var res response.RegisterResponse
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))

				var verified bool
				err := s.DB.QueryRow(t.Context(), "SELECT email_verified FROM users WHERE id = $1", res.ID).Scan(&verified)
				require.NoError(t, err)
				require.False(t, verified, "new accounts start unverified")
			}
		})
	}
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			email:          "buyer@example.com",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			email:          "nobody@example.com",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			email:          "buyer@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "inactive user",
			email:          "inactive@example.com",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing email",
			email:          "",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var res response.LoginResponse
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
				require.NotEmpty(t, res.AccessToken)
				require.Equal(t, "buyer", res.Role)
				require.Greater(t, res.ExpiresIn, int64(0))

				cookie := httptest.ExtractCookie(w, "access_token")
				require.NotNil(t, cookie)
				require.True(t, cookie.HttpOnly)
			}
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("cookie session", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "buyer@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me response.UserResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &me))
		require.Equal(t, "buyer@example.com", me.Email)
	})

	s.Run("expired token", func() {
		t := s.T()
		token := s.jwt.CreateExpiredToken(t, uuid.New(), user.RoleBuyer)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("token for a deleted user", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleBuyer)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *authSuite) TestLogout() {
	s.Run("revoked token is refused afterwards", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "buyer@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		cookies := httptest.ExtractCookies(w)

		authtest.LogoutUser(t, s.Router, cookies)

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, meURL, nil, cookies, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		var revoked int
		err := s.DB.QueryRow(t.Context(), "SELECT count(*) FROM revoked_tokens").Scan(&revoked)
		require.NoError(t, err)
		require.Equal(t, 1, revoked)
	})

	s.Run("requires a session", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}
