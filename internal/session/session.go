package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the client knows about the signed-in user, decoded from
// the bearer token's claims for display only. The token is never verified
// here; verification belongs to the analytics service.
type Identity struct {
	Subject      string
	Email        string
	Organization string
}

// Session shares the bearer token and identity across commands and pages.
// Single writer, many readers; nothing is persisted.
type Session struct {
	mu       sync.RWMutex
	token    string
	identity Identity
}

func New() *Session {
	return &Session{}
}

// SetToken stores the token and refreshes the decoded identity. An empty
// token clears both.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.identity = decodeIdentity(token)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func decodeIdentity(token string) Identity {
	if token == "" {
		return Identity{}
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Identity{}
	}

	identity := Identity{}
	if sub, err := claims.GetSubject(); err == nil {
		identity.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if org, ok := claims["org"].(string); ok {
		identity.Organization = org
	}
	return identity
}

// Diagnostic is the transient cross-page handoff: the last result a tool
// produced, kept so another page can reference it without re-running.
type Diagnostic struct {
	Tool       string
	Summary    string
	Payload    any
	CapturedAt time.Time
}

// DiagnosticContext holds at most one diagnostic for the process lifetime.
type DiagnosticContext struct {
	mu   sync.RWMutex
	last *Diagnostic
}

func NewDiagnosticContext() *DiagnosticContext {
	return &DiagnosticContext{}
}

func (d *DiagnosticContext) Set(tool, summary string, payload any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = &Diagnostic{
		Tool:       tool,
		Summary:    summary,
		Payload:    payload,
		CapturedAt: time.Now(),
	}
}

// Last returns a copy of the held diagnostic, or nil when none was captured.
func (d *DiagnosticContext) Last() *Diagnostic {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.last == nil {
		return nil
	}
	diagnostic := *d.last
	return &diagnostic
}

func (d *DiagnosticContext) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = nil
}
