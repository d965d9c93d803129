package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Lex   LexCmd   `cmd:"" help:"Show lexical tokens from a Forthic file."`
	Check CheckCmd `cmd:"" help:"Tokenize a Forthic file and report scan errors."`
}
