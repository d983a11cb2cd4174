package ledger

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"putr/internal/domain"
)

// Column names of the ledger export.
const (
	ColNickname       = "player_nickname"
	ColPlayerID       = "player_id"
	ColBuyIn          = "buy_in"
	ColBuyOut         = "buy_out"
	ColStack          = "stack"
	ColNet            = "net"
	ColSessionStartAt = "session_start_at"
	ColSessionEndAt   = "session_end_at"
)

// Row is one player-session line of a ledger, in file order.
type Row struct {
	Line           int
	Nickname       string
	ExternalID     string
	SessionStartAt *string
	SessionEndAt   *string
	BuyIn          float64
	BuyOut         float64
	Stack          float64
	Net            float64
}

type Ledger struct {
	Filename string
	Key      domain.GameKey
	Rows     []Row
}

// Parse extracts the game key from the filename and parses the file contents
// with the parser matching its extension.
func Parse(filename string, data []byte, prefix string) (*Ledger, error) {
	name := filepath.Base(filename)

	key, err := KeyFromFilename(name, prefix)
	if err != nil {
		return nil, err
	}

	parser, err := NewFactory().GetParser(name)
	if err != nil {
		return nil, err
	}

	rows, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return &Ledger{Filename: name, Key: key, Rows: rows}, nil
}

// KeyFromFilename turns "ledger23_10_07(1).csv" into the key 23_10_07(1).
func KeyFromFilename(filename, prefix string) (domain.GameKey, error) {
	name := filepath.Base(filename)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if !strings.HasPrefix(stem, prefix) {
		return domain.GameKey{}, &domain.ValidationError{
			Field: "filename",
			Value: name,
			Err:   fmt.Errorf("expected prefix %q", prefix),
		}
	}
	return domain.ParseGameKey(strings.TrimPrefix(stem, prefix))
}

// ParseAmount parses a money cell. Blank cells are zero; anything else that is
// not a finite decimal number is an error.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if digits := strings.ToLower(strings.TrimLeft(s, "+-")); strings.HasPrefix(digits, "0x") {
		return 0, fmt.Errorf("amount %q is not a decimal number", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount %q is not a finite number", s)
	}
	return v, nil
}

// rowsFromRecords maps raw records (header first) to ledger rows. It is shared
// by the CSV and XLSX parsers.
func rowsFromRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, &domain.ValidationError{Field: "ledger", Value: "", Err: errors.New("file is empty")}
	}

	header := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := header[col]; !dup {
			header[col] = i
		}
	}
	if _, ok := header[ColNickname]; !ok {
		return nil, &domain.ValidationError{Field: "header", Value: strings.Join(records[0], ","), Err: fmt.Errorf("missing %s column", ColNickname)}
	}

	var rows []Row
	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		line := i + 2

		cell := func(col string) (string, bool) {
			idx, ok := header[col]
			if !ok || idx >= len(record) {
				return "", false
			}
			return record[idx], true
		}
		amount := func(col string) (float64, error) {
			raw, _ := cell(col)
			v, err := ParseAmount(raw)
			if err != nil {
				return 0, &domain.ValidationError{Field: col, Value: raw, Line: line, Err: err}
			}
			return v, nil
		}
		optional := func(col string) *string {
			raw, ok := cell(col)
			if !ok || strings.TrimSpace(raw) == "" {
				return nil
			}
			return &raw
		}

		nickname, _ := cell(ColNickname)
		externalID, _ := cell(ColPlayerID)
		row := Row{
			Line:           line,
			Nickname:       nickname,
			ExternalID:     externalID,
			SessionStartAt: optional(ColSessionStartAt),
			SessionEndAt:   optional(ColSessionEndAt),
		}

		var err error
		if row.BuyIn, err = amount(ColBuyIn); err != nil {
			return nil, err
		}
		if row.BuyOut, err = amount(ColBuyOut); err != nil {
			return nil, err
		}
		if row.Stack, err = amount(ColStack); err != nil {
			return nil, err
		}
		if row.Net, err = amount(ColNet); err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &domain.ValidationError{Field: "ledger", Value: "", Err: errors.New("no player rows")}
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
