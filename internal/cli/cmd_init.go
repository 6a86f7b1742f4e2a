package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/flatdb/internal/record"
)

const initDirPerms = 0o750

func newInitCommand(e *Env) *Command {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)
	columns := flags.StringSliceP("columns", "c", nil, "Column names, in order")

	return &Command{
		Flags: flags,
		Usage: "init -c <a,b,c>",
		Short: "Create an empty store file",
		Long: `Create an empty store file containing only the schema header line.
The column list fixes the schema for the store's lifetime.`,
		Exec: func(o *IO, _ []string) error {
			if len(*columns) == 0 {
				return errColumnsRequired
			}

			_, statErr := os.Stat(e.StorePath)
			if statErr == nil {
				return fmt.Errorf("%w: %s", errStoreFileExists, e.StorePath)
			}

			mkdirErr := os.MkdirAll(filepath.Dir(e.StorePath), initDirPerms)
			if mkdirErr != nil {
				return fmt.Errorf("creating store dir: %w", mkdirErr)
			}

			header := record.Schema(*columns).Header()

			writeErr := atomic.WriteFile(e.StorePath, strings.NewReader(header))
			if writeErr != nil {
				return fmt.Errorf("writing store file: %w", writeErr)
			}

			o.Println("initialized", e.StorePath)

			return nil
		},
	}
}
