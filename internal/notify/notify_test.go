package notify

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderKeepsOrder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	Dispatch(&r, []Notice{
		{Kind: Success, Title: "File selected", Message: "notes.pdf is ready to upload"},
		{Kind: Error, Title: "Error", Message: "boom"},
	})

	got := r.Notices()
	require.Len(t, got, 2)
	assert.Equal(t, "File selected", got[0].Title)
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, Error, last.Kind)

	got[0].Title = "mutated"
	assert.Equal(t, "File selected", r.Notices()[0].Title)
}

func TestDispatchNilNotifier(t *testing.T) {
	assert.NotPanics(t, func() {
		Dispatch(nil, []Notice{{Kind: Info, Title: "x"}})
	})
}

func TestKindDurations(t *testing.T) {
	assert.Equal(t, 5*time.Second, Error.Duration())
	assert.Equal(t, 3*time.Second, Success.Duration())
	assert.Equal(t, 3*time.Second, Info.Duration())
	assert.Equal(t, "error", Error.String())
}

func TestConsoleWritesTitleAndMessage(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	NewConsole(&buf).Notify(Success, "Success", "Generated 2 flashcards")
	assert.Equal(t, "Success: Generated 2 flashcards\n", buf.String())
}

func TestLogAndTee(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var r Recorder

	Tee{Log{Logger: logger}, &r, nil}.Notify(Error, "Error", "timed out")

	assert.Len(t, r.Notices(), 1)
	out := buf.String()
	assert.True(t, strings.Contains(out, "level=WARN"), out)
	assert.Contains(t, out, "title=Error")
}

func TestFuncAdapter(t *testing.T) {
	var got Notice
	n := Func(func(kind Kind, title, message string) {
		got = Notice{Kind: kind, Title: title, Message: message}
	})
	n.Notify(Info, "t", "m")
	assert.Equal(t, Notice{Kind: Info, Title: "t", Message: "m"}, got)
}
