package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de principal. Staff y clientes del portal no comparten espacio de identidad.
const (
	KindStaff  = "staff"
	KindClient = "client"
)

// Tipos de token.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrInvalidToken cualquier fallo de firma, expiración, tipo o claims.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// IsClient se mantiene junto a Kind para que un token de cliente nunca pase por staff.
type Claims struct {
	jwt.RegisteredClaims
	PrincipalID string `json:"pid"`
	Kind        string `json:"kind"`
	IsClient    bool   `json:"is_client"`
	TokenType   string `json:"typ"`
}

// Config parámetros del emisor.
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Pair par de tokens emitidos en login/refresh.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PrincipalRef lo que se recupera de un token válido.
type PrincipalRef struct {
	ID        string
	Kind      string
	TokenID   string
	ExpiresAt time.Time
}

// Issuer firma y valida tokens HS256 con una sola clave.
type Issuer struct {
	cfg Config
	now func() time.Time
}

// NewIssuer construye el emisor. Falla si el secret está vacío o los TTL no son positivos.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("jwt: TTL inválido")
	}
	return &Issuer{cfg: cfg, now: time.Now}, nil
}

// Issue genera access + refresh para el principal indicado.
func (i *Issuer) Issue(principalID, kind string) (Pair, error) {
	if principalID == "" || !validKind(kind) {
		return Pair{}, fmt.Errorf("jwt: principal inválido")
	}
	access, err := i.sign(principalID, kind, TypeAccess, i.cfg.AccessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.sign(principalID, kind, TypeRefresh, i.cfg.RefreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess valida un access token.
func (i *Issuer) ParseAccess(token string) (PrincipalRef, error) {
	return i.parse(token, TypeAccess)
}

// ParseRefresh valida un refresh token.
func (i *Issuer) ParseRefresh(token string) (PrincipalRef, error) {
	return i.parse(token, TypeRefresh)
}

func (i *Issuer) sign(principalID, kind, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    i.cfg.Issuer,
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		PrincipalID: principalID,
		Kind:        kind,
		IsClient:    kind == KindClient,
		TokenType:   tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: firmar: %w", err)
	}
	return s, nil
}

func (i *Issuer) parse(tokenString, wantType string) (PrincipalRef, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(i.cfg.Secret), nil
	},
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return PrincipalRef{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return PrincipalRef{}, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return PrincipalRef{}, fmt.Errorf("%w: tipo %q", ErrInvalidToken, claims.TokenType)
	}
	if !validKind(claims.Kind) || claims.IsClient != (claims.Kind == KindClient) {
		return PrincipalRef{}, fmt.Errorf("%w: kind inconsistente", ErrInvalidToken)
	}
	if claims.PrincipalID == "" || claims.PrincipalID != claims.Subject {
		return PrincipalRef{}, fmt.Errorf("%w: subject", ErrInvalidToken)
	}
	return PrincipalRef{
		ID:        claims.PrincipalID,
		Kind:      claims.Kind,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func validKind(k string) bool {
	return k == KindStaff || k == KindClient
}
