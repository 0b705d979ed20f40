package flow

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/shazow/iwconnect/internal/tui"
)

// LinePrompter asks questions on plain console lines.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the terminal behind the input, or -1.
	fd int
}

// fileDescriptor is satisfied by *os.File.
type fileDescriptor interface {
	Fd() uintptr
}

// NewLinePrompter reads answers from in and writes prompts to out. Secrets
// are read without echo when in is a terminal.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	p := &LinePrompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(fileDescriptor); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// Select prints each option as "index: option" and reads the answer.
func (p *LinePrompter) Select(label string, options []string) (string, error) {
	styles := tui.NewStyles(p.out)
	for i, o := range options {
		fmt.Fprintf(p.out, "%s: %s\n", styles.Index(i), o)
	}
	return p.Input(label, false)
}

// Input prints "label: " and reads one line without its line ending.
// End of input with nothing read is io.EOF.
func (p *LinePrompter) Input(label string, secret bool) (string, error) {
	fmt.Fprint(p.out, label+": ")

	// Typed-ahead input is taken from the buffer.
	if secret && p.fd >= 0 && p.in.Buffered() == 0 {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		return string(b), nil
	}

	line, err := p.in.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
	} else if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
