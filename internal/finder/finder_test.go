package finder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hilal-Ahmad786/PaperWebsite/internal/catalog"
	"github.com/Hilal-Ahmad786/PaperWebsite/internal/wizard"
)

func slugs(ps []catalog.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Slug)
	}
	return out
}

func TestStaticRecommender(t *testing.T) {
	rec := NewStaticRecommender(catalog.Default())

	cases := []struct {
		name string
		in   Input
		want []string
	}{
		{"no filters caps to three", Defaults(), []string{"duplex-board", "testliner-fluting", "kraftliner-white-top"}},
		{"fmcg", Input{Application: "fmcg"}, []string{"duplex-board", "triplex-board"}},
		{"ecommerce", Input{Application: "ecommerce"}, []string{"testliner-fluting"}},
		{"pharma from asia", Input{Application: "pharma", Origins: []string{"Asia"}}, []string{"duplex-board", "triplex-board"}},
		{"europe only", Input{Origins: []string{"Europe"}}, []string{"duplex-board", "testliner-fluting", "kraftliner-white-top"}},
		{"fallback when empty", Input{Application: "industrial", Origins: []string{"USA"}}, []string{"duplex-board", "testliner-fluting", "kraftliner-white-top"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, slugs(rec.Recommend(tc.in)))
		})
	}
}

func TestFinderFlow(t *testing.T) {
	store := wizard.NewMemoryStore()
	m, err := New(store, nil)
	require.NoError(t, err)
	require.Equal(t, StepApplication, m.Step())
	require.False(t, m.CanAdvance())

	require.NoError(t, m.Update(func(in *Input) { in.Application = "ecommerce" }))
	require.NoError(t, m.Advance())
	require.NoError(t, m.Update(func(in *Input) {
		in.GSMRange = ClampGSM(200, 120)
		in.Grades = Toggle(in.Grades, "Recycled")
	}))
	require.NoError(t, m.Advance())
	require.NoError(t, m.Update(func(in *Input) { in.Origins = Toggle(in.Origins, "Turkey") }))
	require.NoError(t, m.Advance())

	require.Equal(t, StepResults, m.Step())
	res, ok := m.Result()
	require.True(t, ok)
	require.Equal(t, []string{"testliner-fluting"}, slugs(res))
	require.Equal(t, [2]int{120, 200}, m.Input().GSMRange)

	env, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, SchemaVersion, env.Version)
	var persisted Input
	require.NoError(t, json.Unmarshal(env.Input, &persisted))
	require.Equal(t, "ecommerce", persisted.Application)

	require.NoError(t, m.Reset())
	require.Equal(t, Defaults(), m.Input())
	_, err = store.Load()
	require.ErrorIs(t, err, wizard.ErrNoState)
}

func TestNewWithCorruptPayload(t *testing.T) {
	store := wizard.NewMemoryStore()
	require.NoError(t, store.Save(wizard.Envelope{
		Version: SchemaVersion,
		Input:   json.RawMessage(`{"application":"spaceships","gsmRange":[100,400],"grades":[],"origins":[],"budget":"standard"}`),
	}))
	m, err := New(store, nil)
	require.ErrorIs(t, err, wizard.ErrCorruptState)
	require.Equal(t, Defaults(), m.Input())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Defaults()))

	bad := Defaults()
	bad.GSMRange = [2]int{50, 700}
	require.Error(t, Validate(bad))

	bad = Defaults()
	bad.Budget = "luxury"
	require.Error(t, Validate(bad))

	bad = Defaults()
	bad.Grades = nil
	require.Error(t, Validate(bad))
}

func TestToggle(t *testing.T) {
	list := Toggle(nil, "Coated")
	list = Toggle(list, "Virgin")
	require.Equal(t, []string{"Coated", "Virgin"}, list)
	require.Equal(t, []string{"Virgin"}, Toggle(list, "Coated"))
	require.Equal(t, []string{"Coated", "Virgin"}, list)
}
