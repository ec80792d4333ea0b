/*
Package escape emits ANSI escape sequences for cursor movement, screen
clearing, and SGR styling. Fixed sequences are string constants; the
parameterised ones are either formatters returning strings or writers
onto an io.Writer. Nothing here talks to the terminal: the caller
decides where the bytes go and whether the other end understands them.
*/
package escape

import (
	"fmt"
	"io"
)

// CSI is the control sequence introducer every sequence starts with.
const CSI = "\x1b["

// SGR attribute sequences.
const (
	Reset         = CSI + "0m"
	Bold          = CSI + "1m"
	Underline     = CSI + "4m"
	Blink         = CSI + "5m"
	Reverse       = CSI + "7m"
	Strikethrough = CSI + "9m"
	Overline      = CSI + "53m"
)

// Color indexes the eight standard terminal colors.
type Color int

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// Fg returns the SGR sequence selecting c as the foreground color.
func Fg(c Color) string {
	return fmt.Sprintf("%s3%dm", CSI, c)
}

// Bg returns the SGR sequence selecting c as the background color.
func Bg(c Color) string {
	return fmt.Sprintf("%s4%dm", CSI, c)
}

// FgBright and BgBright select the high intensity variant of c.
func FgBright(c Color) string {
	return fmt.Sprintf("%s9%dm", CSI, c)
}

func BgBright(c Color) string {
	return fmt.Sprintf("%s10%dm", CSI, c)
}

// Fg256 and Bg256 select a color from the 256 color palette.
func Fg256(n int) string {
	return fmt.Sprintf("%s38;5;%dm", CSI, n)
}

func Bg256(n int) string {
	return fmt.Sprintf("%s48;5;%dm", CSI, n)
}

// FgRGB and BgRGB select a 24 bit color.
func FgRGB(r, g, b int) string {
	return fmt.Sprintf("%s38;2;%d;%d;%dm", CSI, r, g, b)
}

func BgRGB(r, g, b int) string {
	return fmt.Sprintf("%s48;2;%d;%d;%dm", CSI, r, g, b)
}

// Paint wraps s in the given style sequence and a reset.
func Paint(style, s string) string {
	return style + s + Reset
}

func CursorUp(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "%s%dA", CSI, n)
	return err
}

func CursorDown(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "%s%dB", CSI, n)
	return err
}

func CursorForward(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "%s%dC", CSI, n)
	return err
}

func CursorBack(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "%s%dD", CSI, n)
	return err
}

func CursorNextLine(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "%s%dE", CSI, n)
	return err
}

// CursorPosition moves the cursor to column x, row y, both 1 based.
func CursorPosition(w io.Writer, x, y int) error {
	_, err := fmt.Fprintf(w, "%s%d;%dH", CSI, y, x)
	return err
}

func ClearScreen(w io.Writer) error {
	_, err := io.WriteString(w, CSI+"2J")
	return err
}

func ClearScreenToStart(w io.Writer) error {
	_, err := io.WriteString(w, CSI+"1J")
	return err
}

func ClearScreenToEnd(w io.Writer) error {
	_, err := io.WriteString(w, CSI+"0J")
	return err
}

func ClearLine(w io.Writer) error {
	_, err := io.WriteString(w, CSI+"2K")
	return err
}

func ClearLineToStart(w io.Writer) error {
	_, err := io.WriteString(w, CSI+"1K")
	return err
}

func ClearLineToEnd(w io.Writer) error {
	_, err := io.WriteString(w, CSI+"0K")
	return err
}

func ScrollUp(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "%s%dS", CSI, n)
	return err
}

func ScrollDown(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "%s%dT", CSI, n)
	return err
}
