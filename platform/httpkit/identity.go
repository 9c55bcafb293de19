// Package httpkit provides HTTP utilities including session identity.
package httpkit

import (
	"context"
	"net/http"

	"leadcapture_frontend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName holds the anonymous browser session id.
	SessionCookieName = "lead_session"
	// ContextSessionIDKey is the gin context key for the session ID.
	ContextSessionIDKey = "sessionID"
	// ContextSessionNewKey marks a session created on this request.
	ContextSessionNewKey = "sessionNew"

	sessionMaxAge = 30 * 24 * 60 * 60
)

// Identity represents the anonymous visitor behind a request.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access session information without depending on Gin.
type Identity interface {
	// SessionID returns the visitor's session ID.
	SessionID() uuid.UUID
	// IsNew reports whether the session was issued on this request.
	IsNew() bool
	// HasSession returns true if a session is attached.
	HasSession() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	sessionID uuid.UUID
	isNew     bool
	present   bool
}

func (i *identity) SessionID() uuid.UUID {
	return i.sessionID
}

func (i *identity) IsNew() bool {
	return i.isNew
}

func (i *identity) HasSession() bool {
	return i.present
}

// Session returns middleware that attaches a session to every request,
// issuing a new lead_session cookie when the request carries none or an
// invalid one.
func Session(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := readSessionCookie(c)
		isNew := false
		if err != nil {
			id = uuid.New()
			isNew = true
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, id.String(), sessionMaxAge, "/", "", secure, true)
		}

		c.Set(ContextSessionIDKey, id)
		c.Set(ContextSessionNewKey, isNew)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.SessionIDKey, id.String()))
		c.Next()
	}
}

func readSessionCookie(c *gin.Context) (uuid.UUID, error) {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(raw)
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an identity without a session if none was attached.
func GetIdentity(c *gin.Context) Identity {
	raw, ok := c.Get(ContextSessionIDKey)
	if !ok {
		return &identity{}
	}

	id, ok := raw.(uuid.UUID)
	if !ok {
		return &identity{}
	}

	return &identity{
		sessionID: id,
		isNew:     c.GetBool(ContextSessionNewKey),
		present:   true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If no session is attached, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.HasSession() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing session"})
		return nil
	}
	return id
}
