package cli

import "errors"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("cannot read config file")
	errConfigInvalid      = errors.New("invalid config file")
	errFileEmpty          = errors.New("file cannot be empty")
	errFlagRequiresArg    = errors.New("flag requires an argument")
	errUnknownFlag        = errors.New("unknown flag")
	errUnknownCommand     = errors.New("unknown command")
	errColumnsRequired    = errors.New("columns are required")
	errStoreFileExists    = errors.New("store file already exists")
	errConditionRequired  = errors.New("condition is required")
	errIDRequired         = errors.New("record ID is required")
	errWrongArgCount      = errors.New("wrong number of arguments")
	errRowIsComment       = errors.New("row cannot start with '#'")
)
