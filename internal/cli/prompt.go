package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/toddler-meals/internal/meal"

	"github.com/peterh/liner"
)

var errInterrupted = errors.New("interrupted")

// prompter reads one line of input after printing a prompt.
//
// Prompt returns io.EOF at end of input and errInterrupted when the user
// aborts. The returned line has no trailing newline.
type prompter interface {
	Prompt(prompt string) (string, error)
	Remember(line string)
	Close() error
}

// plainPrompter reads lines from a non-terminal reader.
type plainPrompter struct {
	r     *bufio.Reader
	out   io.Writer
	sigCh <-chan os.Signal
}

func newPlainPrompter(in io.Reader, out io.Writer, sigCh <-chan os.Signal) *plainPrompter {
	if in == nil {
		in = strings.NewReader("")
	}

	return &plainPrompter{r: bufio.NewReader(in), out: out, sigCh: sigCh}
}

func (p *plainPrompter) Prompt(prompt string) (string, error) {
	_, _ = io.WriteString(p.out, prompt)

	return awaitLine(p.sigCh, p.readLine)
}

func (p *plainPrompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		// A last line without newline still counts.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}

		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (p *plainPrompter) Remember(string) {}

func (p *plainPrompter) Close() error { return nil }

// linerPrompter provides line editing, history and tab completion on a
// terminal.
type linerPrompter struct {
	state *liner.State
	sigCh <-chan os.Signal
}

func newLinerPrompter(words []string, sigCh <-chan os.Signal) *linerPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(completer(words))

	return &linerPrompter{state: state, sigCh: sigCh}
}

func (p *linerPrompter) Prompt(prompt string) (string, error) {
	line, err := awaitLine(p.sigCh, func() (string, error) {
		return p.state.Prompt(prompt)
	})
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", errInterrupted
	}

	return line, err
}

func (p *linerPrompter) Remember(line string) {
	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
}

func (p *linerPrompter) Close() error {
	return p.state.Close()
}

// completer completes the last comma-separated segment of the line against
// words, case-insensitively.
func completer(words []string) liner.Completer {
	return func(line string) []string {
		head := ""
		last := line

		if i := strings.LastIndexByte(line, ','); i >= 0 {
			head = line[:i+1]
			last = line[i+1:]
		}

		trimmed := strings.TrimLeft(last, " ")
		head += last[:len(last)-len(trimmed)]
		needle := meal.Fold(trimmed)

		var out []string

		for _, w := range words {
			if strings.HasPrefix(meal.Fold(w), needle) {
				out = append(out, head+w)
			}
		}

		return out
	}
}

// awaitLine runs read and returns its result, or errInterrupted if a signal
// arrives first. The abandoned read keeps running until input ends.
func awaitLine(sigCh <-chan os.Signal, read func() (string, error)) (string, error) {
	if sigCh == nil {
		return read()
	}

	type result struct {
		line string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		line, err := read()
		done <- result{line: line, err: err}
	}()

	select {
	case r := <-done:
		return r.line, r.err
	case <-sigCh:
		return "", errInterrupted
	}
}

// newPrompter picks line editing when in is a terminal and plain reads
// otherwise. words feed tab completion.
func newPrompter(in io.Reader, out io.Writer, sigCh <-chan os.Signal, words []string) prompter {
	if f, ok := in.(*os.File); ok && isTerminal(f.Fd()) {
		return newLinerPrompter(words, sigCh)
	}

	return newPlainPrompter(in, out, sigCh)
}
