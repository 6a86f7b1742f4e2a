package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/flatdb/internal/record"
	"github.com/calvinalkan/flatdb/internal/store"
)

// shellCommands is the completion list for the REPL.
var shellCommands = []string{
	"select", "indices", "update", "get", "set", "append",
	"columns", "len", "save", "reload", "help", "exit", "quit",
}

const defaultHistoryFile = ".flatdb_history"

var errExitShell = errors.New("exit")

func newShellCommand(e *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Interactive shell",
		Long: `Open an interactive shell on the store. Conditions with spaces must
be double-quoted:

  flatdb> select "age>=30 and dept=eng"
  flatdb> update "age>=20" age 99

With autosave disabled, mutations stay in memory until 'save'.`,
		Exec: func(o *IO, _ []string) error {
			s, err := e.openStore(false)
			if err != nil {
				return err
			}

			return runShell(o, e, s)
		},
	}
}

func historyPath(e *Env) string {
	if e.Cfg.HistoryFile != "" {
		if filepath.IsAbs(e.Cfg.HistoryFile) {
			return e.Cfg.HistoryFile
		}

		return filepath.Join(e.WorkDir, e.Cfg.HistoryFile)
	}

	if home := e.Environ["HOME"]; home != "" {
		return filepath.Join(home, defaultHistoryFile)
	}

	return ""
}

func runShell(o *IO, e *Env, s *store.Store) error {
	line := liner.NewLiner()
	defer line.Close()

	stopWatch := watchSignals(e.Signals, line)
	defer stopWatch()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string

		for _, cmd := range shellCommands {
			if strings.HasPrefix(cmd, prefix) {
				matches = append(matches, cmd)
			}
		}

		return matches
	})

	histPath := historyPath(e)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	defer func() {
		if histPath == "" {
			return
		}

		f, err := os.Create(histPath)
		if err != nil {
			return
		}

		_, _ = line.WriteHistory(f)
		_ = f.Close()
	}()

	o.Println("flatdb shell -", e.StorePath)
	o.Println("type 'help' for commands, 'exit' to leave")

	for {
		input, err := line.Prompt("flatdb> ")
		if err != nil {
			// Ctrl-C or Ctrl-D ends the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}

			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		execErr := execShellLine(o, s, input)
		if execErr != nil {
			if errors.Is(execErr, errExitShell) {
				return nil
			}

			o.ErrPrintln("error:", execErr)
		}
	}
}

// watchSignals exits the process on Interrupt/SIGTERM after closing the
// prompt. liner puts the terminal into raw mode, so dying without the
// Close leaves the user's shell unusable. The returned stop function ends
// the watch when the session finishes normally.
func watchSignals(sigCh <-chan os.Signal, line *liner.State) func() {
	if sigCh == nil {
		return func() {}
	}

	done := make(chan struct{})

	go func() {
		select {
		case <-sigCh:
			_ = line.Close()

			os.Exit(1)
		case <-done:
		}
	}()

	return func() { close(done) }
}

// execShellLine runs one shell command line against the store.
func execShellLine(o *IO, s *store.Store, input string) error {
	args := splitShellArgs(input)
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "exit", "quit", "q":
		return errExitShell
	case "help":
		printShellHelp(o)

		return nil
	case "columns":
		o.Println(strings.Join(s.Columns(), ";"))

		return nil
	case "len":
		o.Println(s.Len())

		return nil
	case "save":
		return s.Save()
	case "reload":
		return s.Reload()
	case "select":
		return shellSelect(o, s, rest)
	case "indices":
		return shellIndices(o, s, rest)
	case "update":
		return shellUpdate(o, s, rest)
	case "get":
		return shellGet(o, s, rest)
	case "set":
		return shellSet(o, s, rest)
	case "append":
		return shellAppend(o, s, rest)
	}

	return fmt.Errorf("%w: %s (try 'help')", errUnknownCommand, cmd)
}

func shellSelect(o *IO, s *store.Store, args []string) error {
	if len(args) == 0 {
		return errConditionRequired
	}

	matched, err := s.Select(strings.Join(args, " "))
	if err != nil {
		return err
	}

	for _, rec := range matched {
		o.Println(record.Encode([]record.Record{rec}, s.Columns(), false))
	}

	return nil
}

func shellIndices(o *IO, s *store.Store, args []string) error {
	if len(args) == 0 {
		return errConditionRequired
	}

	positions, err := s.SelectIndices(strings.Join(args, " "))
	if err != nil {
		return err
	}

	for _, pos := range positions {
		o.Println(pos)
	}

	return nil
}

func shellUpdate(o *IO, s *store.Store, args []string) error {
	if len(args) != updateArgCount {
		return fmt.Errorf("%w: want update <condition> <column> <value>", errWrongArgCount)
	}

	updated, err := s.Update(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	o.Println("updated", updated)

	return nil
}

func shellGet(o *IO, s *store.Store, args []string) error {
	if len(args) != 1 {
		return errIDRequired
	}

	rec, err := s.FindByID(args[0])
	if err != nil {
		return err
	}

	o.Println(record.Encode([]record.Record{rec}, s.Columns(), false))

	return nil
}

func shellSet(o *IO, s *store.Store, args []string) error {
	if len(args) != setArgCount {
		return fmt.Errorf("%w: want set <id> <column> <value>", errWrongArgCount)
	}

	err := s.SetByID(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	o.Println("updated", args[0])

	return nil
}

func shellAppend(o *IO, s *store.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: want append <v1;v2;...>", errWrongArgCount)
	}

	if strings.HasPrefix(args[0], "#") {
		return errRowIsComment
	}

	records, err := record.Decode(args[0], s.Columns())
	if err != nil {
		return err
	}

	appendErr := s.Append(records[0])
	if appendErr != nil {
		return appendErr
	}

	o.Println("appended row", s.Len()-1)

	return nil
}

func printShellHelp(o *IO) {
	o.Println(`Commands:
  select <condition>                 Print matching records
  indices <condition>                Print matching row positions
  update <condition> <col> <value>   Set column on all matches
  get <id>                           Print first record by id
  set <id> <col> <value>             Update first record by id
  append <v1;v2;...>                 Append one record
  columns                            Print the schema
  len                                Print the record count
  save                               Persist to the backing file
  reload                             Re-read the backing file
  exit / quit / q                    Leave the shell

Double-quote conditions containing spaces: select "a=1 or b=2"`)
}

// splitShellArgs splits a shell line on spaces, keeping double-quoted
// spans intact (quotes included) so conditions survive as one argument.
// The outermost quotes around a whole argument are dropped.
func splitShellArgs(input string) []string {
	var (
		args    []string
		current strings.Builder
		inQuote bool
		quoted  bool
	)

	flush := func() {
		if current.Len() == 0 && !quoted {
			return
		}

		args = append(args, current.String())
		current.Reset()

		quoted = false
	}

	for _, r := range input {
		switch {
		case r == '"' && !inQuote && current.Len() == 0:
			// Opening quote of a whole argument: drop it.
			inQuote = true
			quoted = true
		case r == '"' && inQuote && quoted:
			inQuote = false
		case r == '"':
			inQuote = !inQuote

			current.WriteRune(r)
		case r == ' ' && !inQuote:
			flush()
		default:
			current.WriteRune(r)
		}
	}

	flush()

	return args
}
