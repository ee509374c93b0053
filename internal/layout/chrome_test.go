package layout

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jonathan/resume-docgen/internal/typography"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChromeEngine_DefaultTimeout(t *testing.T) {
	e := NewChromeEngine("", 0)
	assert.Equal(t, DefaultChromeTimeout, e.Timeout)
	assert.Equal(t, "chrome", e.Name())

	e = NewChromeEngine("/opt/chrome", 5*time.Second)
	assert.Equal(t, "/opt/chrome", e.ExecPath)
	assert.Equal(t, 5*time.Second, e.Timeout)
}

func TestChromeEngine_Print(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	path, err := FindChrome()
	if err != nil {
		t.Skip("chrome not installed")
	}

	engine := NewChromeEngine(path, time.Minute)
	out, err := NewRenderer(typography.Default(), engine).Render(context.Background(), sampleResume())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
