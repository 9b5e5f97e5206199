package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// CookieName — имя cookie с JWT.
const CookieName = "vault_token"

const tokenTTL = 24 * time.Hour

// Claims — полезная нагрузка токена.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// BuildJWT выпускает подписанный токен для пользователя.
func BuildJWT(userID int64, secret string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// SetLoginCookie выпускает токен и кладёт его в cookie ответа.
func SetLoginCookie(w http.ResponseWriter, userID int64, secret string) error {
	token, err := BuildJWT(userID, secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(tokenTTL.Seconds()),
	})
	return nil
}

// parseToken валидирует подпись и возвращает user id.
func parseToken(tokenStr, secret string) (int64, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, false
	}
	return claims.UserID, true
}

// WithAuth достаёт JWT из заголовка Authorization (Bearer) или cookie и кладёт
// user id в контекст запроса. Запросы без валидного токена проходят дальше
// анонимно — отказ отдают сами хендлеры.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				tokenStr = strings.TrimPrefix(auth, "Bearer ")
			} else if c, err := r.Cookie(CookieName); err == nil {
				tokenStr = c.Value
			}

			if tokenStr != "" {
				if uid, ok := parseToken(tokenStr, secret); ok {
					r = r.WithContext(context.WithValue(r.Context(), userIDContextKey, uid))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext возвращает user id, если запрос аутентифицирован.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(userIDContextKey).(int64)
	return uid, ok
}
