package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/observability"
)

// ClientCookieName is the signed cookie carrying the client id and CSRF token.
const ClientCookieName = "pm_client"

const clientCookieMaxAge = 30 * 24 * time.Hour

// ClientState identifies one browser. The id keys the toast queue; the token
// backs CSRF checks on form posts.
type ClientState struct {
	ID        string    `json:"id"`
	CSRFToken string    `json:"csrf"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientCodec signs client cookies.
type ClientCodec struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// NewClientCodec returns a codec using hashKey (required) and blockKey (optional).
func NewClientCodec(hashKey, blockKey []byte, secure bool) (*ClientCodec, error) {
	if len(hashKey) == 0 {
		return nil, fmt.Errorf("middleware: client cookie hash key is required")
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(clientCookieMaxAge.Seconds()))
	return &ClientCodec{sc: sc, secure: secure}, nil
}

// Client loads the client cookie or issues a fresh one, and stores the state
// on the request context.
func Client(codec *ClientCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, ok := codec.read(r)
			if !ok {
				if _, err := r.Cookie(ClientCookieName); err == nil {
					observability.FromContext(r.Context()).Info("client cookie rejected, issuing a new one")
				}
				state = newClientState()
				if err := codec.write(w, state); err != nil {
					observability.FromContext(r.Context()).Error("client cookie encode failed")
				}
			}
			next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), state)))
		})
	}
}

func (c *ClientCodec) read(r *http.Request) (*ClientState, bool) {
	ck, err := r.Cookie(ClientCookieName)
	if err != nil || ck.Value == "" {
		return nil, false
	}
	var st ClientState
	if err := c.sc.Decode(ClientCookieName, ck.Value, &st); err != nil {
		return nil, false
	}
	if st.ID == "" || st.CSRFToken == "" {
		return nil, false
	}
	return &st, true
}

func (c *ClientCodec) write(w http.ResponseWriter, st *ClientState) error {
	value, err := c.sc.Encode(ClientCookieName, st)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(clientCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Encode returns the signed cookie value for st. Tests use it to replay a client.
func (c *ClientCodec) Encode(st *ClientState) (string, error) {
	return c.sc.Encode(ClientCookieName, st)
}

func newClientState() *ClientState {
	return &ClientState{
		ID:        uuid.NewString(),
		CSRFToken: newCSRFToken(),
		CreatedAt: time.Now().UTC(),
	}
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
