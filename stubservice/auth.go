package stubservice

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type role int

const (
	roleUser  role = 0
	roleAdmin role = 1
)

const (
	tokenIssuerName = "interview-stub"
	adminTokenTTL   = 30 * time.Minute
	userTokenTTL    = 7 * 24 * time.Hour
	claimsKey       = "claims"
	secretByteSize  = 32
)

type tokenClaims struct {
	UserID   int  `json:"user_id"`
	Identity role `json:"identity"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	secret []byte
}

func newTokenIssuer(secret []byte) (*tokenIssuer, error) {
	if len(secret) == 0 {
		secret = make([]byte, secretByteSize)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generating token secret: %w", err)
		}
	}
	return &tokenIssuer{secret: secret}, nil
}

func (t *tokenIssuer) issue(id int, r role) (string, time.Duration, error) {
	ttl := userTokenTTL
	if r == roleAdmin {
		ttl = adminTokenTTL
	}
	now := time.Now()
	claims := tokenClaims{
		UserID:   id,
		Identity: r,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuerName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	return token, ttl, err
}

func (t *tokenIssuer) parse(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuerName))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func cookiePath(r role) string {
	if r == roleAdmin {
		return servicedef.AdminCookiePath
	}
	return servicedef.UserCookiePath
}

func (s *Service) setTokenCookie(c *gin.Context, id int, r role) error {
	token, ttl, err := s.tokens.issue(id, r)
	if err != nil {
		return err
	}
	c.SetCookie(servicedef.TokenCookieName, token, int(ttl/time.Second), cookiePath(r), "", false, true)
	return nil
}

// requireToken admits requests carrying a valid token for the role. Anything else gets
// that role's login prompt, or a redirect to it.
func (s *Service) requireToken(r role) gin.HandlerFunc {
	loginPath, roleName := s.path(servicedef.EndpointUserLogin), "user"
	if r == roleAdmin {
		loginPath, roleName = s.path(servicedef.EndpointAdminLogin), "admin"
	}
	return func(c *gin.Context) {
		claims, err := s.tokenFromRequest(c, r)
		if err != nil {
			if s.redirect {
				c.Redirect(http.StatusFound, loginPath)
			} else {
				writeLoginPage(c, roleName, c.Request.URL.Path)
			}
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func (s *Service) tokenFromRequest(c *gin.Context, r role) (*tokenClaims, error) {
	raw, err := c.Cookie(servicedef.TokenCookieName)
	if err != nil {
		return nil, err
	}
	claims, err := s.tokens.parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.Identity != r {
		return nil, errors.New("token was issued for another role")
	}
	return claims, nil
}

func callerID(c *gin.Context) int {
	if claims, ok := c.Get(claimsKey); ok {
		return claims.(*tokenClaims).UserID
	}
	return 0
}
