package cli

import (
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/flatdb/internal/record"
)

func newSelectCommand(e *Env) *Command {
	flags := flag.NewFlagSet("select", flag.ContinueOnError)
	indices := flags.Bool("indices", false, "Print matching row positions instead of rows")
	count := flags.Bool("count", false, "Print only the number of matches")

	return &Command{
		Flags: flags,
		Usage: "select <condition> [flags]",
		Short: "Print matching records",
		Long: `Print every record matching the condition, one per line, fields
joined by ';' in schema order. Quote the condition so the shell passes
it as one argument:

  flatdb select 'age>=30 and dept=eng'
  flatdb select '*'`,
		Exec: func(o *IO, args []string) error {
			if len(args) == 0 {
				return errConditionRequired
			}

			condition := strings.Join(args, " ")

			s, err := e.openStore(false)
			if err != nil {
				return err
			}

			if *indices {
				positions, selErr := s.SelectIndices(condition)
				if selErr != nil {
					return selErr
				}

				for _, pos := range positions {
					o.Println(pos)
				}

				return nil
			}

			matched, err := s.Select(condition)
			if err != nil {
				return err
			}

			if *count {
				o.Println(len(matched))

				return nil
			}

			for _, rec := range matched {
				o.Println(record.Encode([]record.Record{rec}, s.Columns(), false))
			}

			return nil
		},
	}
}
