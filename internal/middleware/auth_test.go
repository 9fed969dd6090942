package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ledgerly/internal/config"
	"ledgerly/internal/models"
)

func setTestConfig(t *testing.T, expiry time.Duration) {
	t.Helper()
	config.Set(&config.Config{JWTSecret: "test-secret", JWTExpirationDur: expiry})
	t.Cleanup(func() { config.Set(nil) })
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID")})
	})
	return r
}

func authRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGenerateToken(t *testing.T) {
	setTestConfig(t, time.Hour)
	user := &models.User{Base: models.Base{ID: "0190b2a4-7d3c-7c1e-9f00-000000000001"}, Email: "a@example.com"}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if d := time.Until(claims.ExpiresAt.Time); d < 59*time.Minute || d > time.Hour {
		t.Errorf("expected expiry about an hour away, got %v", d)
	}
}

func TestAuthMiddleware(t *testing.T) {
	setTestConfig(t, time.Hour)
	user := &models.User{Base: models.Base{ID: "0190b2a4-7d3c-7c1e-9f00-000000000002"}, Email: "b@example.com"}
	valid, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	t.Run("valid_token", func(t *testing.T) {
		rec := authRequest(setupAuthRouter(), "Bearer "+valid)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseBody(t, rec)["user_id"] != user.ID {
			t.Errorf("expected user id in context, got %s", rec.Body.String())
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		rec := authRequest(setupAuthRouter(), "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, rec, "UNAUTHORIZED")
	})

	t.Run("wrong_scheme", func(t *testing.T) {
		rec := authRequest(setupAuthRouter(), "Token "+valid)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong_secret", func(t *testing.T) {
		claims := &JWTClaims{
			UserID:           user.ID,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		}
		forged, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		rec := authRequest(setupAuthRouter(), "Bearer "+forged)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("expired_token", func(t *testing.T) {
		claims := &JWTClaims{
			UserID:           user.ID,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
		}
		expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		rec := authRequest(setupAuthRouter(), "Bearer "+expired)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
