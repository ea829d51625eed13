package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recruitment-buddy/internal/service"
)

const (
	authClaimsKey     = "auth_claims"
	accessCookieName  = "rb_access"
	refreshCookieName = "rb_refresh"
)

// CookieConfig controla los atributos de las cookies de sesion.
type CookieConfig struct {
	Secure bool
}

// Session resuelve el usuario de cada request a partir de la cookie de acceso
// (o un header Bearer) y, si el access token vencio, rota el refresh token.
type Session struct {
	logger  *zap.Logger
	jwtServ *service.JWTService
	cookies CookieConfig
}

func NewSession(logger *zap.Logger, jwtServ *service.JWTService, cookies CookieConfig) *Session {
	return &Session{logger: logger, jwtServ: jwtServ, cookies: cookies}
}

// Middleware nunca aborta: solo deja los claims en el contexto si son validos.
func (s *Session) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cookieSecureKey, s.cookies.Secure)
		if s.jwtServ == nil {
			c.Next()
			return
		}

		if token := accessTokenFrom(c); token != "" {
			if claims, err := s.jwtServ.ParseAccessToken(token); err == nil {
				c.Set(authClaimsKey, claims)
				c.Next()
				return
			}
		}

		if refresh, err := c.Cookie(refreshCookieName); err == nil && refresh != "" {
			pair, err := s.jwtServ.RefreshPair(refresh)
			if err != nil {
				s.clearCookies(c)
			} else if claims, err := s.jwtServ.ParseAccessToken(pair.AccessToken); err == nil {
				s.setCookies(c, pair)
				c.Set(authClaimsKey, claims)
			}
		}
		c.Next()
	}
}

func accessTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(accessCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > len("bearer ") && strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	return ""
}

func (s *Session) setCookies(c *gin.Context, pair service.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookieName, pair.AccessToken, int(pair.ExpiresIn), "/", "", s.cookies.Secure, true)
	c.SetCookie(refreshCookieName, pair.RefreshToken, int(pair.RefreshExpiresIn/time.Second), "/", "", s.cookies.Secure, true)
}

func (s *Session) clearCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookieName, "", -1, "/", "", s.cookies.Secure, true)
	c.SetCookie(refreshCookieName, "", -1, "/", "", s.cookies.Secure, true)
}

// RequireLogin redirige a /login con un flash cuando no hay sesion.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetAuthClaims(c); !ok {
			setFlash(c, "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireLoginJSON es la variante para endpoints consumidos via fetch: el
// cliente sigue el campo redirect.
func RequireLoginJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetAuthClaims(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"redirect": "/login"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAuthClaims obtiene los claims de sesion desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
