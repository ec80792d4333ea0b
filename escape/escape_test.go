package escape

import "testing"

import (
	"bytes"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSGRSequences(t *testing.T) {
	assert.Equal(t, "\x1b[0m", Reset)
	assert.Equal(t, "\x1b[1m", Bold)
	assert.Equal(t, "\x1b[31m", Fg(Red))
	assert.Equal(t, "\x1b[42m", Bg(Green))
	assert.Equal(t, "\x1b[96m", FgBright(Cyan))
	assert.Equal(t, "\x1b[107m", BgBright(White))
	assert.Equal(t, "\x1b[38;5;208m", Fg256(208))
	assert.Equal(t, "\x1b[48;2;1;2;3m", BgRGB(1, 2, 3))
}

func TestPaint(t *testing.T) {
	assert.Equal(t, "\x1b[31mfail\x1b[0m", Paint(Fg(Red), "fail"))
}

func TestCursorAndClear(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CursorUp(&buf, 3))
	require.NoError(t, CursorPosition(&buf, 10, 5))
	require.NoError(t, ClearLine(&buf))
	require.NoError(t, ClearScreen(&buf))
	require.NoError(t, ScrollDown(&buf, 2))
	assert.Equal(t, "\x1b[3A\x1b[5;10H\x1b[2K\x1b[2J\x1b[2T", buf.String())
}
