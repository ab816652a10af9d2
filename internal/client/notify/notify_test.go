package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(Notice{Kind: Success, Message: "ok"})
	r.Notify(Notice{Kind: Error, Message: "bad"})

	got := r.Notices()
	assert.Equal(t, []Notice{{Success, "ok"}, {Error, "bad"}}, got)

	got[0].Message = "changed"
	assert.Equal(t, "ok", r.Notices()[0].Message)
}

func TestFunc(t *testing.T) {
	var seen Notice
	var n Notifier = Func(func(x Notice) { seen = x })
	n.Notify(Notice{Kind: Info, Message: "hi"})
	assert.Equal(t, Notice{Info, "hi"}, seen)

	Discard.Notify(Notice{Message: "dropped"})
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
}
