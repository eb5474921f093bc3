package jwt

import (
	"net/http"
	"sync"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const sessionTokenType = "session"

type Service interface {
	GenerateSessionToken(session auth.Session) (token string, expiresAt int64, err error)
	SessionFromClaims(claims map[string]interface{}) (auth.Session, error)
	JWTAuth() *jwtauth.JWTAuth
	CookieName() string
	SessionCookie(token string, expiresAt int64) *http.Cookie
	ClearSessionCookie() *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	expiration    time.Duration
	cookieName    string
	secureCookies bool
	tokenAuth     *jwtauth.JWTAuth
	revokedTokens map[string]int64
	mu            sync.RWMutex
	now           func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) CookieName() string {
	return j.cookieName
}

func NewJWTService(secretKey string, expiration time.Duration, cookieName string, secureCookies bool) Service {
	return &JWTService{
		expiration:    expiration,
		cookieName:    cookieName,
		secureCookies: secureCookies,
		tokenAuth:     jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens: make(map[string]int64),
		now:           time.Now,
	}
}

func (j *JWTService) GenerateSessionToken(session auth.Session) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.expiration).Unix()

	claims := map[string]interface{}{
		"user_id":      session.UserID,
		"discord_id":   session.DiscordID,
		"username":     session.Username,
		"display_name": session.DisplayName,
		"rank":         string(session.Rank),
		"department":   string(session.Department),
		"is_web_admin": session.IsWebAdmin,
		"type":         sessionTokenType,
		"exp":          expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// SessionFromClaims rebuilds the session snapshot from verified claims.
func (j *JWTService) SessionFromClaims(claims map[string]interface{}) (auth.Session, error) {
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != sessionTokenType {
		return auth.Session{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.Session{}, auth.ErrInvalidToken
	}

	session := auth.Session{UserID: userID}
	session.DiscordID, _ = claims["discord_id"].(string)
	session.Username, _ = claims["username"].(string)
	session.DisplayName, _ = claims["display_name"].(string)
	if rank, ok := claims["rank"].(string); ok {
		session.Rank = user.Rank(rank)
	}
	if department, ok := claims["department"].(string); ok {
		session.Department = user.Department(department)
	}
	session.IsWebAdmin, _ = claims["is_web_admin"].(bool)

	return session, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     j.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     j.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// RevokeToken blocks token until its own expiry. Expired entries are pruned
// on every call.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}
