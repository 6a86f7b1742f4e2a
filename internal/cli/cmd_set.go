package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

const setArgCount = 3

func newSetCommand(e *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("set", flag.ContinueOnError),
		Usage: "set <id> <column> <value>",
		Short: "Update first record by id",
		Long: `Set the column to the value on the first record whose "id" column
equals the given id, then persist the store.`,
		Exec: func(o *IO, args []string) error {
			if len(args) != setArgCount {
				return fmt.Errorf("%w: want <id> <column> <value>", errWrongArgCount)
			}

			id, column, value := args[0], args[1], args[2]
			if id == "" {
				return errIDRequired
			}

			s, err := e.openStore(true)
			if err != nil {
				return err
			}

			setErr := s.SetByID(id, column, value)
			if setErr != nil {
				return setErr
			}

			o.Println("updated", id)

			return nil
		},
	}
}
