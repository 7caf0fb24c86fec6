package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service wraps the jwtauth token authority. The payroll API only verifies
// tokens issued by the identity service; it never handles credentials.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	// EncodeToken mints a company-scoped token. Used by tooling and tests.
	EncodeToken(userID, companyID, role string, ttl time.Duration) (string, error)
}

type jwtService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewService(secretKey string) Service {
	return &jwtService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (s *jwtService) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

func (s *jwtService) EncodeToken(userID, companyID, role string, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"role":       role,
		"type":       "access",
		"exp":        time.Now().Add(ttl).Unix(),
	}
	_, token, err := s.tokenAuth.Encode(claims)
	return token, err
}
