package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
	"github.com/benjaminBJ/taller-api-rest/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig is read once at startup and never changes afterwards.
type TokenConfig struct {
	Key        string
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenService issues HS256 token pairs and applies the claim rules to
// tokens that already passed signature verification. It holds no mutable
// state and is safe for concurrent use.
type TokenService struct {
	cfg    TokenConfig
	signer *jwtx.HS256Signer
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now as the source of issue and validation times.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, fmt.Errorf("token service: issuer and audience are required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("token service: token lifetimes must be positive")
	}
	signer, err := jwtx.NewSignerHS256([]byte(cfg.Key))
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	s := &TokenService{cfg: cfg, signer: signer, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Verifier checks signatures of tokens issued by this service.
func (s *TokenService) Verifier() jwtx.Verifier { return s.signer.Verifier() }

// Issue signs an access token and a refresh token for subject. Both share
// the key, issuer, audience and subject; only the refresh token carries
// is_refresh and it outlives the access token when configured so.
func (s *TokenService) Issue(subject string) (domain.TokenPair, error) {
	now := s.now().UTC()

	access, err := s.signer.Sign(jwtx.NewClaims(subject, s.cfg.Issuer, s.cfg.Audience, s.cfg.AccessTTL, false, now))
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.signer.Sign(jwtx.NewClaims(subject, s.cfg.Issuer, s.cfg.Audience, s.cfg.RefreshTTL, true, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	// Expiries are reported at the second precision the tokens carry.
	base := now.Truncate(time.Second)
	return domain.TokenPair{
		AccessToken:      access,
		ExpiresAt:        base.Add(s.cfg.AccessTTL),
		RefreshToken:     refresh,
		RefreshExpiresAt: base.Add(s.cfg.RefreshTTL),
		TokenType:        domain.TokenTypeBearer,
	}, nil
}

// ValidateTokenData applies the claim rules: iss, aud and exp must be
// present and exp must lie strictly in the future. Issuer and audience
// values are not compared with configuration.
func (s *TokenService) ValidateTokenData(claims jwt.MapClaims) bool {
	if claims == nil {
		return false
	}
	if _, ok := claims[jwtx.ClaimIssuer]; !ok {
		return false
	}
	if _, ok := claims[jwtx.ClaimAudience]; !ok {
		return false
	}
	raw, ok := claims[jwtx.ClaimExpiresAt]
	if !ok {
		return false
	}
	exp, ok := unixSeconds(raw)
	if !ok {
		return false
	}
	return exp > s.now().UTC().Unix()
}

// ExtractUser returns the subject stored in the "user" claim.
func (s *TokenService) ExtractUser(claims jwt.MapClaims) (string, error) {
	u, ok := claims[jwtx.ClaimUser].(string)
	if !ok {
		return "", authError("Invalid token")
	}
	return u, nil
}

// GetTokenData decodes the registered claims. Each missing claim has its
// own message.
func (s *TokenService) GetTokenData(claims jwt.MapClaims) (domain.TokenData, error) {
	iss, ok := claims[jwtx.ClaimIssuer].(string)
	if !ok {
		return domain.TokenData{}, authError("Invalid JWT: Missing issuer.")
	}

	aud, ok := audience(claims[jwtx.ClaimAudience])
	if !ok {
		return domain.TokenData{}, authError("Invalid JWT: Missing audience.")
	}

	iat, ok := unixSeconds(claims[jwtx.ClaimIssuedAt])
	if !ok {
		return domain.TokenData{}, authError("Invalid JWT: Missing issued-at time.")
	}

	exp, ok := unixSeconds(claims[jwtx.ClaimExpiresAt])
	if !ok {
		return domain.TokenData{}, authError("Invalid JWT: Missing expiration time.")
	}

	return domain.TokenData{
		Issuer:     iss,
		Audience:   aud,
		IssuedAt:   time.Unix(iat, 0).UTC(),
		Expiration: time.Unix(exp, 0).UTC(),
	}, nil
}

// audience accepts both the single string and the list form of "aud". The
// first entry of a list wins.
func audience(v any) (string, bool) {
	switch a := v.(type) {
	case string:
		return a, true
	case []string:
		if len(a) > 0 {
			return a[0], true
		}
	case []any:
		if len(a) > 0 {
			s, ok := a[0].(string)
			return s, ok
		}
	}
	return "", false
}

// unixSeconds reads a NumericDate in any of the forms a decoded claim set
// may hold it.
func unixSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int64(f), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case *jwt.NumericDate:
		if n == nil {
			return 0, false
		}
		return n.Unix(), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
