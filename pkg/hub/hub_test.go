package hub

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	origin Origin
	log    *[]Origin
}

func (r recorder) Origin() Origin { return r.origin }
func (r recorder) Render()        { *r.log = append(*r.log, r.origin) }

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	return New(hclog.New(&hclog.LoggerOptions{
		Name:  "hub_test",
		Level: hclog.Trace,
	}))
}

func TestPublishSkipsOrigin(t *testing.T) {
	tests := []struct {
		name     string
		origin   Origin
		expected []Origin
	}{
		{name: "document", origin: OriginNone, expected: []Origin{OriginConstants, OriginLevel, OriginSummary}},
		{name: "constants", origin: OriginConstants, expected: []Origin{OriginLevel, OriginSummary}},
		{name: "level", origin: OriginLevel, expected: []Origin{OriginConstants, OriginSummary}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rendered []Origin
			h := newTestHub(t)
			h.Subscribe(recorder{OriginConstants, &rendered})
			h.Subscribe(recorder{OriginLevel, &rendered})
			h.Subscribe(recorder{OriginSummary, &rendered})

			ev := h.Publish(tt.origin)

			assert.Equal(t, tt.expected, rendered)
			assert.Equal(t, tt.expected, ev.Rendered)
			assert.Equal(t, tt.origin, ev.Origin)
		})
	}
}

func TestResetRecomputesSelection(t *testing.T) {
	h := newTestHub(t)

	h.Reset("5.2", 8191, 6143)
	require.NoError(t, h.SetSelected(OriginConstants, 2048))

	h.Reset("5.0", 4095, 2047)
	assert.Equal(t, State{Version: "5.0", SelectedLevel: 4095, MaxLevel: 4095, EAllLevel: 2047}, h.State())
}

func TestSetSelectedRefusesUnknownBits(t *testing.T) {
	h := newTestHub(t)
	h.Reset("5.0", 4095, 2047)

	err := h.SetSelected(OriginLevel, 8192)
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.EqualValues(t, 4095, h.Selected())

	require.NoError(t, h.SetSelected(OriginLevel, 0))
	assert.EqualValues(t, 0, h.Selected())
}

func TestWatchersSeeFinalState(t *testing.T) {
	h := newTestHub(t)
	h.Reset("5.4", 32767, 32767)

	var events []Event
	h.Watch(func(ev Event) { events = append(events, ev) })

	require.NoError(t, h.SetSelected(OriginLevel, 3))
	h.Publish(OriginLevel)

	require.Len(t, events, 1)
	assert.EqualValues(t, 3, events[0].State.SelectedLevel)
	assert.Equal(t, OriginLevel, events[0].Origin)
}

func TestOriginString(t *testing.T) {
	assert.Equal(t, "constants", OriginConstants.String())
	assert.Equal(t, "origin(42)", Origin(42).String())
}
