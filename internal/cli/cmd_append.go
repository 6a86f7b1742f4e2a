package cli

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/flatdb/internal/record"
)

func newAppendCommand(e *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("append", flag.ContinueOnError),
		Usage: "append <v1;v2;...>",
		Short: "Append one record",
		Long: `Append one record with positional field values, then persist the
store. Fields map to schema columns in order; trailing columns may be
omitted. More fields than columns is an error:

  flatdb append '3;Kim;25'`,
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: want one ';'-delimited row", errWrongArgCount)
			}

			row := args[0]
			if strings.HasPrefix(row, "#") {
				return errRowIsComment
			}

			s, err := e.openStore(true)
			if err != nil {
				return err
			}

			// Decode reuses the store codec so positional assignment and
			// the too-many-fields check match file parsing exactly.
			records, err := record.Decode(row, s.Columns())
			if err != nil {
				return err
			}

			appendErr := s.Append(records[0])
			if appendErr != nil {
				return appendErr
			}

			o.Println("appended row", s.Len()-1)

			return nil
		},
	}
}
