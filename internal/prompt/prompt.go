// Package prompt implements the interactive question layer used when flags
// leave a decision to the operator.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// set when stdin is a real terminal, enabling hidden input
	fd  int
	tty bool
}

func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Ask prints the question and returns one trimmed line of input.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskSecret reads a line without echoing it when attached to a terminal.
// Falls back to a plain read otherwise (pipes, tests).
func (p *Prompter) AskSecret(question string) (string, error) {
	if !p.tty {
		return p.Ask(question)
	}
	fmt.Fprintf(p.out, "%s: ", question)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Choose asks until the answer exactly matches one of choices. An answer
// outside the set is refused and the question is repeated - it is never
// silently mapped onto a choice.
func (p *Prompter) Choose(question string, choices []string) (string, error) {
	valid := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		valid[c] = struct{}{}
	}

	for {
		answer, err := p.Ask(question)
		if err != nil {
			return "", err
		}
		if _, ok := valid[answer]; ok {
			return answer, nil
		}
		fmt.Fprintf(p.out, "%q is not one of the available choices.\n", answer)
	}
}

// Confirm asks a yes/no question. Empty input counts as no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
