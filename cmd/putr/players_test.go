package main

import (
	"testing"

	"putr/internal/domain"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestPlayerTable(t *testing.T) {
	color.NoColor = true

	data := playerTable([]domain.Player{{
		ID:     3,
		Name:   "Alice",
		Rating: domain.Unrated(),
		Stats:  domain.Aggregates{Net: 75, GamesUp: 2, GamesDown: 1, AverageNet: 25, BiggestWin: 100, BiggestLoss: -75, HighestNet: 150},
	}})

	require.Len(t, data, 2)
	require.Equal(t, []string{"3", "Alice", "UR", "+75.00", "2", "1", "25.00", "100.00", "-75.00", "150.00", "0.00"}, data[1])
}
