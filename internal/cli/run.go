// Package cli implements the flatdb command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/calvinalkan/flatdb/internal/store"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Env carries the resolved configuration and paths shared by all commands.
type Env struct {
	Cfg       Config
	WorkDir   string
	StorePath string // absolute path to the backing file
	In        io.Reader
	Environ   map[string]string
	Signals   <-chan os.Signal
}

// openStore opens the configured store. One-shot mutating commands pass
// forceSave so their changes persist even with autosave disabled.
func (e *Env) openStore(forceSave bool) (*store.Store, error) {
	var opts []store.Option

	if len(e.Cfg.Columns) > 0 {
		opts = append(opts, store.WithColumns(e.Cfg.Columns))
	}

	if e.Cfg.AutoSave || forceSave {
		opts = append(opts, store.WithAutoSave())
	}

	if e.Cfg.ReadBeforeOperations {
		opts = append(opts, store.WithReadBeforeOps())
	}

	return store.Open(e.StorePath, opts...)
}

// Run is the main entry point. Returns exit code. sigCh delivers
// Interrupt/SIGTERM so the interactive shell can restore the terminal
// before the process dies; nil is fine for non-interactive use.
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	o := NewIO(out, errOut)

	if len(args) < minArgs {
		printUsage(o)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			o.ErrPrintln("error: cannot get working directory:", err)

			return 1
		}
	}

	cliOverrides := Config{File: flags.file}

	cfg, sources, err := LoadConfig(workDir, flags.configPath, cliOverrides, flags.hasFileOverride, env)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	storePath := cfg.File
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(workDir, storePath)
	}

	if len(flags.remaining) == 0 {
		printUsage(o)

		return 0
	}

	cmdName := flags.remaining[0]
	if cmdName == "-h" || cmdName == helpFlag {
		printUsage(o)

		return 0
	}

	environ := env
	if environ == nil {
		environ = map[string]string{}
	}

	e := &Env{
		Cfg:       cfg,
		WorkDir:   workDir,
		StorePath: storePath,
		In:        in,
		Environ:   environ,
		Signals:   sigCh,
	}

	if cmdName == "print-config" {
		return cmdPrintConfig(o, cfg, sources)
	}

	commands := registry(e)

	cmd, ok := commands[cmdName]
	if !ok {
		o.ErrPrintln("error:", fmt.Errorf("%w: %s", errUnknownCommand, cmdName))
		printUsage(o)

		return 1
	}

	return cmd.Run(o, flags.remaining[1:])
}

// registry builds the command table for one invocation.
func registry(e *Env) map[string]*Command {
	cmds := []*Command{
		newInitCommand(e),
		newSelectCommand(e),
		newUpdateCommand(e),
		newGetCommand(e),
		newSetCommand(e),
		newAppendCommand(e),
		newColumnsCommand(e),
		newShellCommand(e),
	}

	byName := make(map[string]*Command, len(cmds))
	for _, c := range cmds {
		byName[c.Name()] = c
	}

	return byName
}

type globalFlags struct {
	workDir         string
	configPath      string
	file            string
	hasFileOverride bool
	remaining       []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args
// consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// -f/--file flag (store file override)
	if arg == "-f" || arg == "--file" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.file = args[idx+1]
		flags.hasFileOverride = true

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--file="); ok {
		flags.file = after
		flags.hasFileOverride = true

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func cmdPrintConfig(o *IO, cfg Config, sources ConfigSources) int {
	formatted, err := FormatConfig(cfg)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	o.Println(formatted)

	o.Println("")
	o.Println("# Sources:")

	if sources.Global != "" {
		o.Println("#   global:", sources.Global)
	}

	if sources.Project != "" {
		o.Println("#   project:", sources.Project)
	}

	if sources.Global == "" && sources.Project == "" {
		o.Println("#   (using defaults only)")
	}

	return o.Finish()
}

func printUsage(o *IO) {
	o.Println(`flatdb - minimal flat-file record store

Usage: flatdb [options] <command> [args]

Options:
  -C, --cwd <dir>     Run as if started in <dir>
  -c, --config <file> Use specified config file
  -f, --file <file>   Store file (overrides config)

Conditions combine column/operator/value clauses with and/or:
  id=1    name!="Dan Smith"    age>=30 and dept=eng or role=admin
The condition "*" matches every record.

Commands:
  init -c <a,b,c>                    Create an empty store file
  select <condition>                 Print matching records
  update <condition> <col> <value>   Set column on all matches
  get <id>                           Print first record by id
  set <id> <col> <value>             Update first record by id
  append <v1;v2;...>                 Append one record
  columns                            Print the schema
  shell                              Interactive shell
  print-config                       Show resolved configuration`)
}
