package scroll

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Ratio(t *testing.T) {
	tests := []struct {
		name     string
		entry    Entry
		margin   float64
		ratio    float64
		touching bool
	}{
		{"fully inside", Entry{Top: 100, Height: 20, ViewportHeight: 600}, 0, 1, true},
		{"below viewport", Entry{Top: 700, Height: 20, ViewportHeight: 600}, 0, 0, false},
		{"below viewport but within margin", Entry{Top: 690, Height: 20, ViewportHeight: 600}, 100, 0.5, true},
		{"half visible at bottom", Entry{Top: 590, Height: 20, ViewportHeight: 600}, 0, 0.5, true},
		{"scrolled above", Entry{Top: -50, Height: 20, ViewportHeight: 600}, 0, 0, false},
		{"zero height inside", Entry{Top: 10, Height: 0, ViewportHeight: 600}, 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, touching := tt.entry.Ratio(tt.margin)
			assert.InDelta(t, tt.ratio, ratio, 1e-9)
			assert.Equal(t, tt.touching, touching)
		})
	}
}

type list struct {
	status Status
	loads  int
}

func (l *list) Status() Status { return l.status }
func (l *list) Load()          { l.loads++ }

var visible = Entry{Top: 500, Height: 10, ViewportHeight: 600}

func TestTrigger_FiresWhenIntersectingAndReady(t *testing.T) {
	sig := NewSignal()
	l := &list{status: Status{HasMore: true}}
	tr := Attach(sig, DefaultOptions(), l.Status, l.Load)
	defer tr.Close()

	sig.Publish(Entry{Top: 900, Height: 10, ViewportHeight: 600})
	assert.Equal(t, 0, l.loads)
	assert.False(t, tr.Intersecting())

	sig.Publish(visible)
	assert.Equal(t, 1, l.loads)
	assert.True(t, tr.Intersecting())
}

func TestTrigger_RootMarginLoadsEarly(t *testing.T) {
	sig := NewSignal()
	l := &list{status: Status{HasMore: true}}
	tr := Attach(sig, DefaultOptions(), l.Status, l.Load)
	defer tr.Close()

	// 50px below the fold, inside the default 100px margin
	sig.Publish(Entry{Top: 650, Height: 10, ViewportHeight: 600})
	assert.Equal(t, 1, l.loads)
}

func TestTrigger_Gates(t *testing.T) {
	tests := []struct {
		name   string
		status Status
	}{
		{"no more pages", Status{HasMore: false}},
		{"already loading", Status{HasMore: true, Loading: true}},
		{"previous error", Status{HasMore: true, Err: errors.New("boom")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := NewSignal()
			l := &list{status: tt.status}
			tr := Attach(sig, DefaultOptions(), l.Status, l.Load)
			defer tr.Close()

			sig.Publish(visible)
			assert.Equal(t, 0, l.loads)
			assert.True(t, tr.Intersecting())
		})
	}
}

func TestTrigger_DisabledNeverSubscribes(t *testing.T) {
	sig := NewSignal()
	l := &list{status: Status{HasMore: true}}
	opts := DefaultOptions()
	opts.Enabled = false
	tr := Attach(sig, opts, l.Status, l.Load)

	assert.Equal(t, 0, sig.Subscribers())
	sig.Publish(visible)
	assert.Equal(t, 0, l.loads)
	tr.Close()
}

func TestTrigger_CloseUnsubscribes(t *testing.T) {
	sig := NewSignal()
	l := &list{status: Status{HasMore: true}}
	tr := Attach(sig, DefaultOptions(), l.Status, l.Load)
	require.Equal(t, 1, sig.Subscribers())

	tr.Close()
	tr.Close()
	assert.Equal(t, 0, sig.Subscribers())

	sig.Publish(visible)
	assert.Equal(t, 0, l.loads)
}

func TestTrigger_ThresholdNotReached(t *testing.T) {
	sig := NewSignal()
	l := &list{status: Status{HasMore: true}}
	opts := Options{RootMargin: 0, Threshold: 0.5, Enabled: true}
	tr := Attach(sig, opts, l.Status, l.Load)
	defer tr.Close()

	// 2 of 10 px visible
	sig.Publish(Entry{Top: 598, Height: 10, ViewportHeight: 600})
	assert.Equal(t, 0, l.loads)
	assert.False(t, tr.Intersecting())
}
