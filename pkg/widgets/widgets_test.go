package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/hub"
	"github.com/provide-io/erlc/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	reg      *registry.Registry
	hub      *hub.Hub
	versions *VersionSelector
	picker   *ConstantPicker
	input    *LevelInput
	summary  *SummaryView
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := hclog.New(&hclog.LoggerOptions{Name: "widgets_test", Level: hclog.Trace})
	reg := registry.Default()
	h := hub.New(logger)

	f := &fixture{
		reg:      reg,
		hub:      h,
		versions: NewVersionSelector(reg, logger),
		picker:   NewConstantPicker(reg, h, logger),
		input:    NewLevelInput(reg, h, logger),
		summary:  NewSummaryView(reg, h, logger),
	}
	h.Subscribe(f.picker)
	h.Subscribe(f.input)
	h.Subscribe(f.summary)

	f.versions.OnVersionChange(func(key string) {
		max, err := reg.MaxLevel(key)
		require.NoError(t, err)
		eAll, err := reg.EAllLevel(key)
		require.NoError(t, err)
		require.NoError(t, f.picker.ShowAvailableConstants(key))
		h.Reset(key, max, eAll)
		h.Publish(hub.OriginNone)
	})
	require.NoError(t, f.versions.Init())
	return f
}

func TestVersionSelectorList(t *testing.T) {
	f := newFixture(t)

	want := []VersionOption{
		{Key: "5.4", Label: "5.4.* and higher", Selected: true},
		{Key: "5.3", Label: "5.3.*"},
		{Key: "5.2", Label: "5.2.*"},
		{Key: "5.0", Label: "5.0.* - 5.1.*"},
		{Key: "pre_5", Label: "Pre 5.*"},
	}
	if diff := cmp.Diff(want, f.versions.ListVersions()); diff != "" {
		t.Errorf("ListVersions mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionSelectorHandlersInOrder(t *testing.T) {
	reg := registry.Default()
	v := NewVersionSelector(reg, nil)

	var calls []string
	v.OnVersionChange(func(key string) { calls = append(calls, "first:"+key) })
	v.OnVersionChange(func(key string) { calls = append(calls, "second:"+key) })

	require.NoError(t, v.Init())
	require.NoError(t, v.SelectVersion("5.2"))

	assert.Equal(t, []string{"first:5.4", "second:5.4", "first:5.2", "second:5.2"}, calls)
	assert.Equal(t, "5.2", v.Active())
}

func TestVersionSelectorUnknownKey(t *testing.T) {
	v := NewVersionSelector(registry.Default(), nil)
	called := false
	v.OnVersionChange(func(string) { called = true })

	err := v.SelectVersion("8.0")
	require.ErrorIs(t, err, registry.ErrUnknownVersion)

	var cfgErr *registry.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.False(t, called)
	assert.Equal(t, "5.4", v.Active())
}

func TestVersion52Scenario(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.versions.SelectVersion("5.2"))

	st := f.hub.State()
	assert.EqualValues(t, 8191, st.MaxLevel)
	assert.EqualValues(t, 6143, st.EAllLevel)
	assert.EqualValues(t, 8191, st.SelectedLevel)

	s := f.summary.Summary()
	assert.Equal(t, "E_ALL | E_STRICT", s.ErrorReporting)
	assert.Equal(t, s.ErrorReporting, s.PHPIni)
	assert.Equal(t, "8191", s.Raw)
	assert.Equal(t, "8191", f.input.Text())
}

func TestShowAvailableConstants(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.versions.SelectVersion("5.0"))

	toggles := f.picker.Toggles()
	require.Len(t, toggles, 13)

	last := toggles[len(toggles)-1]
	assert.Equal(t, "E_ALL", last.Name)
	assert.True(t, last.Aggregate)
	assert.EqualValues(t, 2047, last.Value)

	for _, tg := range toggles {
		assert.True(t, tg.Checked, tg.Name)
	}

	require.ErrorIs(t, f.picker.ShowAvailableConstants("nope"), registry.ErrUnknownVersion)
	assert.Empty(t, f.picker.Toggles())
}

func TestToggleRoundTrip(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.versions.SelectVersion("5.3"))
	require.NoError(t, f.picker.ToggleByName("E_NOTICE", false))
	before := f.hub.Selected()

	for _, c := range f.reg.Constants() {
		checked := before.Has(c.Value)
		require.NoError(t, f.picker.Toggle(c.Value, !checked), c.Name)
		require.NoError(t, f.picker.Toggle(c.Value, checked), c.Name)
		assert.Equal(t, before, f.hub.Selected(), c.Name)
	}
}

func TestToggleUpdatesOtherViews(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.versions.SelectVersion("5.2"))

	require.NoError(t, f.picker.ToggleByName("E_ALL", false))
	assert.EqualValues(t, 2048, f.hub.Selected())
	assert.Equal(t, "2048", f.input.Text())
	assert.Equal(t, "E_STRICT", f.summary.Summary().ErrorReporting)

	for _, tg := range f.picker.Toggles() {
		assert.Equal(t, tg.Name == "E_STRICT", tg.Checked, tg.Name)
	}
}

func TestToggleUnknown(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.versions.SelectVersion("pre_5"))

	assert.ErrorIs(t, f.picker.ToggleByName("E_DEPRECATED", true), ErrUnknownToggle)
	assert.ErrorIs(t, f.picker.Toggle(registry.EDeprecated, true), ErrUnknownToggle)
	assert.EqualValues(t, 2047, f.hub.Selected())
}

func TestLevelInputEdit(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		input    string
		level    registry.Level
		expected string
	}{
		{name: "valid pair", version: "5.2", input: "3", level: 3, expected: "E_ERROR | E_WARNING"},
		{name: "unknown bits", version: "5.2", input: "99999", level: 0, expected: "0"},
		{name: "not a number", version: "5.2", input: "abc", level: 0, expected: "0"},
		{name: "empty", version: "5.2", input: "", level: 0, expected: "0"},
		{name: "negative", version: "5.2", input: "-1", level: 0, expected: "0"},
		{name: "surrounding spaces", version: "5.2", input: " 8 ", level: 8, expected: "E_NOTICE"},
		{name: "known but outside version", version: "5.0", input: "8192", level: 0, expected: "0"},
		{name: "dense", version: "5.4", input: "32759", level: 32759, expected: "E_ALL & ~E_NOTICE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.versions.SelectVersion(tt.version))

			f.input.Edit(tt.input)

			assert.Equal(t, tt.level, f.hub.Selected())
			assert.Equal(t, tt.expected, f.summary.Summary().ErrorReporting)
			assert.Equal(t, tt.level.String(), f.summary.Summary().Raw)
			// the field keeps what was typed
			assert.Equal(t, tt.input, f.input.Text())
		})
	}
}

func TestLevelInputUpdatesPicker(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.versions.SelectVersion("5.2"))

	f.input.Edit("3")

	for _, tg := range f.picker.Toggles() {
		want := tg.Name == "E_ERROR" || tg.Name == "E_WARNING"
		assert.Equal(t, want, tg.Checked, tg.Name)
	}
}

func TestVersionSwitchDropsBits(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.versions.SelectVersion("5.2"))
	f.input.Edit("2048")
	require.EqualValues(t, 2048, f.hub.Selected())

	require.NoError(t, f.versions.SelectVersion("5.0"))

	assert.EqualValues(t, 4095, f.hub.Selected())
	assert.Equal(t, "4095", f.input.Text())
	assert.Equal(t, "E_ALL | E_STRICT", f.summary.Summary().ErrorReporting)
}

func TestRenderIdempotent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.versions.SelectVersion("5.3"))
	f.input.Edit("4097")

	f.picker.Render()
	f.input.Render()
	f.summary.Render()
	toggles, text, summary := f.picker.Toggles(), f.input.Text(), f.summary.Summary()

	f.picker.Render()
	f.input.Render()
	f.summary.Render()

	assert.Empty(t, cmp.Diff(toggles, f.picker.Toggles()))
	assert.Equal(t, text, f.input.Text())
	assert.Empty(t, cmp.Diff(summary, f.summary.Summary()))
	assert.EqualValues(t, 4097, f.hub.Selected())
}

func TestBuildToggles(t *testing.T) {
	reg := registry.Default()

	toggles, err := BuildToggles(reg, "pre_5", registry.EError|registry.EParse)
	require.NoError(t, err)
	require.Len(t, toggles, 12)

	var checked []string
	for _, tg := range toggles {
		if tg.Checked {
			checked = append(checked, tg.Name)
		}
	}
	assert.Equal(t, []string{"E_ERROR", "E_PARSE"}, checked)

	_, err = BuildToggles(reg, "6.0", 0)
	assert.ErrorIs(t, err, registry.ErrUnknownVersion)
}
