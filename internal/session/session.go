// Package session runs a calculator over a line-oriented terminal dialog.
// Each input line is one UI event.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/pkg/calculator"
	"github.com/provide-io/erlc/pkg/expression"
	"github.com/provide-io/erlc/pkg/hub"
)

const prompt = "erlc> "

const helpText = `commands:
  versions                 list versions
  version <key>            select a version
  constants                list constants with descriptions
  toggle <NAME> [on|off]   flip a constant or E_ALL
  level <number>           type a raw level
  expr <expression>        evaluate e.g. E_ALL & ~E_NOTICE into the level field
  show                     print every region
  help                     this text
  quit                     leave
`

var errQuit = errors.New("quit")

// Session is an interactive dialog over one calculator.
type Session struct {
	calc   *calculator.Calculator
	in     io.Reader
	out    io.Writer
	prompt bool
	last   *hub.Event
	logger hclog.Logger
}

// New creates a session. When interactive is set a prompt is printed
// before every line.
func New(calc *calculator.Calculator, in io.Reader, out io.Writer, interactive bool, logger hclog.Logger) *Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Session{
		calc:   calc,
		in:     in,
		out:    out,
		prompt: interactive,
		logger: logger.Named("session"),
	}
	calc.Hub().Watch(func(ev hub.Event) { s.last = &ev })
	return s
}

// Run reads commands until EOF or quit.
func (s *Session) Run() error {
	WriteSnapshot(s.out, s.calc.Snapshot())

	scanner := bufio.NewScanner(s.in)
	for {
		if s.prompt {
			fmt.Fprint(s.out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		err := s.Exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			s.logger.Debug("command failed", "line", scanner.Text(), "error", err)
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Exec runs a single command line.
func (s *Session) Exec(line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	s.last = nil

	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "quit", "exit":
		return errQuit
	case "help", "?":
		fmt.Fprint(s.out, helpText)
		return nil
	case "show":
		WriteSnapshot(s.out, s.calc.Snapshot())
		return nil
	case "versions":
		WriteVersions(s.out, s.calc.Versions.ListVersions())
		return nil
	case "constants":
		WriteToggles(s.out, s.calc.Constants.Toggles(), true)
		return nil
	case "version":
		if arg == "" {
			return fmt.Errorf("usage: version <key>")
		}
		if err := s.calc.SelectVersion(arg); err != nil {
			return err
		}
	case "toggle":
		if err := s.toggle(arg); err != nil {
			return err
		}
	case "level":
		s.calc.EnterLevel(arg)
	case "expr":
		level, err := expression.Evaluate(s.calc.Registry(), s.calc.Versions.Active(), arg)
		if err != nil {
			return err
		}
		s.calc.EnterLevel(level.String())
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}

	if s.last != nil {
		writeRendered(s.out, s.calc.Snapshot(), s.last.Rendered)
	}
	return nil
}

func (s *Session) toggle(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 || len(fields) > 2 {
		return fmt.Errorf("usage: toggle <NAME> [on|off]")
	}
	name := strings.ToUpper(fields[0])

	var checked bool
	if len(fields) == 2 {
		switch strings.ToLower(fields[1]) {
		case "on", "1", "true":
			checked = true
		case "off", "0", "false":
			checked = false
		default:
			return fmt.Errorf("toggle state must be on or off, got %q", fields[1])
		}
	} else {
		current, ok := s.checked(name)
		if !ok {
			return fmt.Errorf("no constant %q in version %s", name, s.calc.Versions.Active())
		}
		checked = !current
	}

	if err := s.calc.Toggle(name, checked); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (s *Session) checked(name string) (bool, bool) {
	for _, t := range s.calc.Constants.Toggles() {
		if t.Name == name {
			return t.Checked, true
		}
	}
	return false, false
}
