package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims are the JWT claims issued by the session layer. Subject is the user id.
type IdentityClaims struct {
	Role       string `json:"role"`
	BoutiqueID string `json:"boutique_id"`
	EmpID      string `json:"emp_id"`
	jwt.RegisteredClaims
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    string(apperrors.CodeUnauthorized),
		Message: "Unauthorized",
	})
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens and stores the caller's
// identity in the request context.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortUnauthorized(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			abortUnauthorized(c)
			return
		}

		opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})}
		if issuer != "" {
			opts = append(opts, jwt.WithIssuer(issuer))
		}
		claims := &IdentityClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
			return []byte(jwtSecret), nil
		}, opts...)
		if err != nil || !token.Valid {
			reason := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				reason = "token expired"
			}
			logger.Warn("Rejected token", slog.String("reason", reason))
			abortUnauthorized(c)
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			abortUnauthorized(c)
			return
		}
		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			logger.Warn("Token carries unknown role", slog.String("role", claims.Role))
			abortUnauthorized(c)
			return
		}

		identity := domain.Identity{
			UserID:     claims.Subject,
			Role:       role,
			BoutiqueID: claims.BoutiqueID,
			EmpID:      claims.EmpID,
		}
		enriched := logger.With(
			slog.String("user_id", identity.UserID),
			slog.String("role", string(identity.Role)),
		)
		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(WithLogger(ctx, enriched))

		c.Next()
	}
}

// IssueToken signs an HS256 identity token. The session layer owns real issuance; this is used by
// tooling and tests.
func IssueToken(jwtSecret, issuer string, identity domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		Role:       string(identity.Role),
		BoutiqueID: identity.BoutiqueID,
		EmpID:      identity.EmpID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
}
