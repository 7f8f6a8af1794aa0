package wizard

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type pickInput struct {
	Choice string   `json:"choice"`
	Tags   []string `json:"tags"`
}

func pickConfig(store Store) Config[pickInput, int] {
	return Config[pickInput, int]{
		Steps:    []string{"choose", "tags", "done"},
		Version:  1,
		Defaults: func() pickInput { return pickInput{Tags: []string{}} },
		Ready:    func(in pickInput) bool { return in.Choice != "" },
		Validate: func(in pickInput) error {
			if in.Tags == nil {
				return errors.New("tags missing")
			}
			return nil
		},
		Compute: func(in pickInput) int { return len(in.Tags) },
		Store:   store,
	}
}

func TestAdvanceGuardedOnFirstStepOnly(t *testing.T) {
	m, err := Restore(pickConfig(nil))
	require.NoError(t, err)

	require.ErrorIs(t, m.Advance(), ErrIncomplete)
	require.Equal(t, "choose", m.Step())

	require.NoError(t, m.Update(func(in *pickInput) { in.Choice = "fmcg" }))
	require.NoError(t, m.Advance())
	require.Equal(t, "tags", m.Step())

	// no guard beyond the first step
	require.NoError(t, m.Advance())
	require.True(t, m.AtTerminal())
	res, ok := m.Result()
	require.True(t, ok)
	require.Equal(t, 0, res)
}

func TestAdvanceAtTerminalIsNoop(t *testing.T) {
	m, err := Restore(pickConfig(nil))
	require.NoError(t, err)
	require.NoError(t, m.Update(func(in *pickInput) { in.Choice = "x"; in.Tags = []string{"a", "b"} }))
	require.NoError(t, m.Advance())
	require.NoError(t, m.Advance())
	require.Equal(t, "done", m.Step())

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Advance())
		require.Equal(t, "done", m.Step())
	}
	res, _ := m.Result()
	require.Equal(t, 2, res)
}

func TestBackAtInitialAndTerminal(t *testing.T) {
	m, err := Restore(pickConfig(nil))
	require.NoError(t, err)
	require.NoError(t, m.Back())
	require.True(t, m.AtStart())

	require.NoError(t, m.Update(func(in *pickInput) { in.Choice = "x" }))
	require.NoError(t, m.Advance())
	require.NoError(t, m.Back())
	require.Equal(t, "choose", m.Step())

	require.NoError(t, m.Advance())
	require.NoError(t, m.Advance())
	require.NoError(t, m.Back())
	require.Equal(t, "done", m.Step())
}

func TestResetRestoresDefaultsAndClearsStore(t *testing.T) {
	store := NewMemoryStore()
	m, err := Restore(pickConfig(store))
	require.NoError(t, err)

	sequence := []func() error{
		func() error { return m.Update(func(in *pickInput) { in.Choice = "pharma" }) },
		m.Advance,
		func() error { return m.Update(func(in *pickInput) { in.Tags = append(in.Tags, "coated") }) },
		m.Back,
		m.Advance,
		m.Advance,
	}
	for _, step := range sequence {
		require.NoError(t, step())
	}
	_, err = store.Load()
	require.NoError(t, err)

	require.NoError(t, m.Reset())
	require.True(t, m.AtStart())
	require.Equal(t, pickInput{Tags: []string{}}, m.Input())
	_, ok := m.Result()
	require.False(t, ok)

	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoState)
}

func TestRestoreFromStore(t *testing.T) {
	store := NewMemoryStore()
	first, err := Restore(pickConfig(store))
	require.NoError(t, err)
	require.NoError(t, first.Update(func(in *pickInput) { in.Choice = "ecommerce"; in.Tags = []string{"x"} }))
	require.NoError(t, first.Advance())

	second, err := Restore(pickConfig(store))
	require.NoError(t, err)
	require.Equal(t, "tags", second.Step())
	require.Equal(t, "ecommerce", second.Input().Choice)
}

func TestRestoreTerminalRecomputesResult(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Envelope{Version: 1, Step: "done", Input: json.RawMessage(`{"choice":"a","tags":["1","2","3"]}`)}))
	m, err := Restore(pickConfig(store))
	require.NoError(t, err)
	res, ok := m.Result()
	require.True(t, ok)
	require.Equal(t, 3, res)
}

func TestRestoreCorruptState(t *testing.T) {
	cases := map[string]Envelope{
		"bad json":     {Version: 1, Input: json.RawMessage(`{"choice":`)},
		"old version":  {Version: 0, Input: json.RawMessage(`{"choice":"a","tags":[]}`)},
		"invalid":      {Version: 1, Input: json.RawMessage(`{"choice":"a","tags":null}`)},
		"unknown step": {Version: 1, Step: "bogus", Input: json.RawMessage(`{"tags":[]}`)},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Save(env))

			m, err := Restore(pickConfig(store))
			require.ErrorIs(t, err, ErrCorruptState)
			require.NotNil(t, m)
			require.True(t, m.AtStart())
			require.Equal(t, pickInput{Tags: []string{}}, m.Input())

			_, err = store.Load()
			require.ErrorIs(t, err, ErrNoState)
		})
	}
}

func TestCookieStoreRoundTrip(t *testing.T) {
	jar, err := NewCookieJar(CookieJarConfig{HashKey: []byte("0123456789abcdef0123456789abcdef")})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/finder", nil)
	m, err := Restore(pickConfig(jar.Store(rec, req, "productFinderState")))
	require.NoError(t, err)
	require.NoError(t, m.Update(func(in *pickInput) { in.Choice = "fmcg" }))
	require.NoError(t, m.Advance())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1, "repeated saves must collapse into one Set-Cookie")
	require.Equal(t, "productFinderState", cookies[0].Name)

	next := httptest.NewRequest(http.MethodGet, "/finder", nil)
	next.AddCookie(cookies[0])
	restored, err := Restore(pickConfig(jar.Store(httptest.NewRecorder(), next, "productFinderState")))
	require.NoError(t, err)
	require.Equal(t, "tags", restored.Step())
	require.Equal(t, "fmcg", restored.Input().Choice)
}

func TestCookieStoreTamperedValue(t *testing.T) {
	jar, err := NewCookieJar(CookieJarConfig{HashKey: []byte("0123456789abcdef0123456789abcdef")})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/finder", nil)
	req.AddCookie(&http.Cookie{Name: "productFinderState", Value: "not-signed"})
	rec := httptest.NewRecorder()

	_, err = Restore(pickConfig(jar.Store(rec, req, "productFinderState")))
	require.ErrorIs(t, err, ErrCorruptState)
	setCookie := rec.Header().Get("Set-Cookie")
	require.True(t, strings.HasPrefix(setCookie, "productFinderState="))
	require.Contains(t, setCookie, "Max-Age=0")
}

func TestFileStore(t *testing.T) {
	store := NewFileStore(t.TempDir(), "productFinderState")
	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoState)

	require.NoError(t, store.Save(Envelope{Version: 1, Step: "tags", Input: json.RawMessage(`{}`)}))
	env, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "tags", env.Step)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoState)
}
