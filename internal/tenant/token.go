package tenant

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tenantClaim = "tenant_id"
	tokenQuery  = "token"
)

// TokenResolver takes the tenant from the tenant_id claim of an HS256 token
// carried in "Authorization: Bearer", or the token query parameter once
// wrapped by ForUpgrade.
type TokenResolver struct {
	secret []byte
	query  string
}

func NewTokenResolver(secret string) (*TokenResolver, error) {
	if secret == "" {
		return nil, errors.New("tenant token secret is empty")
	}
	return &TokenResolver{secret: []byte(secret)}, nil
}

func (t *TokenResolver) Resolve(r *http.Request) (int64, error) {
	raw := bearerToken(r.Header.Get("Authorization"))
	if raw == "" && t.query != "" {
		raw = r.URL.Query().Get(t.query)
	}
	if raw == "" {
		return 0, ErrUnresolved
	}
	return t.Parse(raw)
}

// Issue signs a token for tenantID valid for ttl.
func (t *TokenResolver) Issue(tenantID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		tenantClaim: tenantID,
		"iat":       now.Unix(),
		"nbf":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse validates raw and returns its tenant claim.
func (t *TokenResolver) Parse(raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, ErrUnresolved
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrUnresolved
	}
	// numeric claims decode as float64
	id, ok := claims[tenantClaim].(float64)
	if !ok || id != float64(int64(id)) {
		return 0, ErrUnresolved
	}
	return int64(id), nil
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
