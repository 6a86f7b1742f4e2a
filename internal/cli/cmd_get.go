package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/flatdb/internal/record"
)

func newGetCommand(e *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("get", flag.ContinueOnError),
		Usage: "get <id>",
		Short: "Print first record by id",
		Long: `Print the first record whose "id" column equals the given id.
Stops at the first match even when ids are duplicated.`,
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 || args[0] == "" {
				return errIDRequired
			}

			s, err := e.openStore(false)
			if err != nil {
				return err
			}

			rec, err := s.FindByID(args[0])
			if err != nil {
				return err
			}

			o.Println(record.Encode([]record.Record{rec}, s.Columns(), false))

			return nil
		},
	}
}
