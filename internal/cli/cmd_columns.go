package cli

import (
	"strings"

	flag "github.com/spf13/pflag"
)

func newColumnsCommand(e *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("columns", flag.ContinueOnError),
		Usage: "columns",
		Short: "Print the schema",
		Exec: func(o *IO, _ []string) error {
			s, err := e.openStore(false)
			if err != nil {
				return err
			}

			o.Println(strings.Join(s.Columns(), ";"))

			return nil
		},
	}
}
