package domain

// ImportResult is the business outcome of importing one ledger file. Fatal
// problems (bad key, bad amount, database failure) are errors, not results.
type ImportResult int

const (
	ImportSuccess ImportResult = iota
	ImportGameExists
	ImportMissingNicknames
)

func (r ImportResult) String() string {
	switch r {
	case ImportSuccess:
		return "success"
	case ImportGameExists:
		return "game_exists"
	case ImportMissingNicknames:
		return "missing_nicknames"
	default:
		return "unknown"
	}
}

type ImportReport struct {
	Result           ImportResult
	Filename         string
	DateKey          string
	Rows             int
	PlayersUpdated   int
	MissingNicknames []string
}
