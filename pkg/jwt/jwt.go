package jwt

import (
	"errors"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Service signs and verifies JWTs with a single symmetric key.
type Service struct {
	signingKey []byte
	method     *jwtv5.SigningMethodHMAC
	leeway     time.Duration
}

type config struct {
	method *jwtv5.SigningMethodHMAC
	leeway time.Duration
}

// Option is a functional option for configuring the Service.
type Option func(*config)

// WithSigningMethod selects the HMAC variant used for signing and
// verification. Defaults to HS256.
func WithSigningMethod(method *jwtv5.SigningMethodHMAC) Option {
	return func(c *config) {
		if method != nil {
			c.method = method
		}
	}
}

// WithLeeway tolerates clock skew when validating temporal claims.
func WithLeeway(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.leeway = d
		}
	}
}

// SigningMethodByName resolves an algorithm name to its HMAC signing
// method. Only the HS256, HS384, and HS512 family is supported; an empty
// name resolves to HS256.
func SigningMethodByName(name string) (*jwtv5.SigningMethodHMAC, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "HS256":
		return jwtv5.SigningMethodHS256, nil
	case "HS384":
		return jwtv5.SigningMethodHS384, nil
	case "HS512":
		return jwtv5.SigningMethodHS512, nil
	default:
		return nil, ErrInvalidSigningMethod
	}
}

// New creates a Service with the given signing key.
func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	cfg := &config{method: jwtv5.SigningMethodHS256}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Service{
		signingKey: signingKey,
		method:     cfg.method,
		leeway:     cfg.leeway,
	}, nil
}

// NewFromString creates a Service from a string key.
func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// Generate signs claims into a compact JWT.
func (s *Service) Generate(claims jwtv5.Claims) (string, error) {
	return s.GenerateWithType("", claims)
}

// GenerateWithType signs claims into a compact JWT with an explicit JOSE
// header typ value. An empty typ keeps the library default.
func (s *Service) GenerateWithType(typ string, claims jwtv5.Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	t := jwtv5.NewWithClaims(s.method, claims)
	if typ != "" {
		t.Header["typ"] = typ
	}

	signed, err := t.SignedString(s.signingKey)
	if err != nil {
		return "", errors.Join(ErrInvalidClaims, err)
	}
	return signed, nil
}

// Parse verifies the signature and temporal claims of an encoded token and
// unmarshals its payload into claims. The exp claim is mandatory; the
// configured leeway applies to exp and nbf validation.
func (s *Service) Parse(encoded string, claims jwtv5.Claims) (*jwtv5.Token, error) {
	if claims == nil {
		return nil, ErrMissingClaims
	}
	if strings.TrimSpace(encoded) == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwtv5.ParseWithClaims(encoded, claims, s.keyfunc,
		jwtv5.WithLeeway(s.leeway),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return parsed, nil
}

// keyfunc rejects any signing method outside the HMAC family before the
// key is handed to the verifier, closing the alg-substitution hole.
func (s *Service) keyfunc(t *jwtv5.Token) (any, error) {
	if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
		return nil, ErrUnexpectedSigningMethod
	}
	return s.signingKey, nil
}

// classifyParseError maps golang-jwt sentinel errors onto this package's
// stable error set while keeping the original cause attached.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, ErrUnexpectedSigningMethod):
		return err
	case errors.Is(err, jwtv5.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	case errors.Is(err, jwtv5.ErrTokenSignatureInvalid):
		return errors.Join(ErrInvalidSignature, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
