package wizard

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

const defaultCookieMaxAge = 30 * 24 * time.Hour

// CookieJar encodes wizard payloads into signed cookies.
type CookieJar struct {
	codec  *securecookie.SecureCookie
	maxAge time.Duration
	secure bool
}

// CookieJarConfig configures a CookieJar. BlockKey is optional; when set the
// payload is also encrypted.
type CookieJarConfig struct {
	HashKey  []byte
	BlockKey []byte
	MaxAge   time.Duration
	Secure   bool
}

// NewCookieJar validates cfg and returns a jar.
func NewCookieJar(cfg CookieJarConfig) (*CookieJar, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("wizard: cookie hash key is required")
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaultCookieMaxAge
	}
	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(cfg.MaxAge.Seconds()))
	return &CookieJar{codec: codec, maxAge: cfg.MaxAge, secure: cfg.Secure}, nil
}

// Store binds the jar to one request/response pair under cookie name.
func (j *CookieJar) Store(w http.ResponseWriter, r *http.Request, name string) Store {
	return &cookieStore{jar: j, w: w, r: r, name: name}
}

type cookieStore struct {
	jar  *CookieJar
	w    http.ResponseWriter
	r    *http.Request
	name string
}

func (s *cookieStore) Load() (Envelope, error) {
	c, err := s.r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return Envelope{}, ErrNoState
	}
	var env Envelope
	if err := s.jar.codec.Decode(s.name, c.Value, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return env, nil
}

func (s *cookieStore) Save(env Envelope) error {
	value, err := s.jar.codec.Encode(s.name, env)
	if err != nil {
		return fmt.Errorf("wizard: encode cookie: %w", err)
	}
	s.set(&http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.jar.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.jar.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *cookieStore) Clear() error {
	s.set(&http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.jar.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// set replaces any Set-Cookie for the same name already queued on the response.
func (s *cookieStore) set(c *http.Cookie) {
	h := s.w.Header()
	prefix := s.name + "="
	kept := h.Values("Set-Cookie")[:0:0]
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	http.SetCookie(s.w, c)
}
