package domain

import (
	"time"
)

type Player struct {
	ID         int64
	Name       string
	ExternalID string // first player_id seen in a ledger, "" until then
	Flag       string
	Rating     Rating
	Stats      Aggregates
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Aggregates are derived from a player's game history and overwritten on every
// recalculation.
type Aggregates struct {
	Net         float64
	GamesUp     int
	GamesDown   int
	AverageNet  float64
	BiggestWin  float64
	BiggestLoss float64 // stored as a negative number
	HighestNet  float64 // rolling max of cumulative net, seeded at 0
	LowestNet   float64 // rolling min of cumulative net, seeded at 0
}

type PlayerNickname struct {
	ID         int64
	Nickname   string
	PlayerName string // display cache, players.name is authoritative
	PlayerID   int64
}

type Game struct {
	ID             int64
	Key            GameKey
	LedgerFilename string
	CreatedAt      time.Time
}

type PlayerGameStats struct {
	ID       int64
	PlayerID int64
	GameID   int64
	Net      float64
}

type LedgerEntry struct {
	ID             int64
	GameID         int64
	PlayerID       int64
	PlayerNickname string
	PlayerIDCSV    string
	SessionStartAt *string
	SessionEndAt   *string
	BuyIn          float64
	BuyOut         float64
	Stack          float64
	Net            float64
}

// GameResult is one PlayerGameStats row joined with its game.
type GameResult struct {
	GameID int64
	Key    GameKey
	Net    float64
}

// HistoryPoint is a GameResult placed on the player's chronological timeline.
type HistoryPoint struct {
	GameResult
	Cumulative float64
}

// GameParticipant is one player's result within a single game.
type GameParticipant struct {
	PlayerID   int64
	PlayerName string
	Net        float64
}
