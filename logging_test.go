package relight

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_LevelsAndPrefix(t *testing.T) {
	var out, errOut bytes.Buffer
	l := newDefaultLogger("relight", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("hello %s", "world")
	l.Warnf("careful")
	l.Errorf("broken: %v", "x")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[relight] INFO: hello world")
	assert.Contains(t, errOut.String(), "[relight] WARN: careful")
	assert.Contains(t, errOut.String(), "[relight] ERROR: broken: x")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	assert.Contains(t, out.String(), "[relight] DEBUG: shown 2")
}

func TestDefaultLogger_NoPrefix(t *testing.T) {
	var out bytes.Buffer
	l := newDefaultLogger("", false, &out, &out)
	l.Infof("plain")
	assert.Contains(t, out.String(), "INFO: plain")
	assert.NotContains(t, out.String(), "[")
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	var app *App
	assert.NotNil(t, app.Logger())

	built := NewAppBuilder().Build()
	_, isNop := built.Logger().(*nopLogger)
	assert.True(t, isNop)

	withLogger := NewAppBuilder().UseModule(LoggingModule{Prefix: "t"}).Build()
	_, isDefault := withLogger.Logger().(*DefaultLogger)
	assert.True(t, isDefault)
}

func TestRecordingLogger(t *testing.T) {
	r := &RecordingLogger{}
	r.Warnf("w%d", 1)
	r.Errorf("e")
	r.Infof("i")

	assert.Equal(t, []string{"w1"}, r.Warnings())
	assert.Equal(t, []string{"e"}, r.ErrorLines())
	assert.Equal(t, []string{"i"}, r.Infos)
}
