package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

const updateArgCount = 3

func newUpdateCommand(e *Env) *Command {
	return &Command{
		Flags: flag.NewFlagSet("update", flag.ContinueOnError),
		Usage: "update <condition> <column> <value>",
		Short: "Set column on all matching records",
		Long: `Set the column to the value on every record matching the condition,
then persist the store. The value is applied uniformly to all matches:

  flatdb update 'age>=20' age 99`,
		Exec: func(o *IO, args []string) error {
			if len(args) != updateArgCount {
				return fmt.Errorf("%w: want <condition> <column> <value>", errWrongArgCount)
			}

			condition, column, value := args[0], args[1], args[2]

			s, err := e.openStore(true)
			if err != nil {
				return err
			}

			updated, err := s.Update(condition, column, value)
			if err != nil {
				return err
			}

			o.Println("updated", updated)

			return nil
		},
	}
}
