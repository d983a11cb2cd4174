package storage

import (
	"os"
	"path/filepath"
	"testing"

	"putr/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "ledger23_09_26.csv", want: "ledger23_09_26.csv"},
		{in: "../../etc/ledger23_09_26.csv", want: "ledger23_09_26.csv"},
		{in: `C:\Users\me\ledger23_09_26(1).csv`, want: "ledger23_09_26(1).csv"},
		{in: "ledger23_09_26.xlsx", want: "ledger23_09_26.xlsx"},
		{in: "ledger23_09_26.exe", wantErr: true},
		{in: ".hidden.csv", wantErr: true},
		{in: "", wantErr: true},
		{in: "dir/", wantErr: true},
	}

	for _, tt := range tests {
		got, err := SanitizeFilename(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, domain.ErrValidation, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got)
	}
}

func TestLedgerStoreSaveAndList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ledgers")
	store, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)

	path, err := store.Save("uploads/ledger23_09_27.csv", []byte("b"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "ledger23_09_27.csv"), path)

	_, err = store.Save("ledger23_09_26.csv", []byte("a"))
	require.NoError(t, err)

	// Overwrites are atomic replacements.
	_, err = store.Save("ledger23_09_26.csv", []byte("a2"))
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "ledger23_09_26.csv"))
	require.NoError(t, err)
	require.Equal(t, "a2", string(data))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o644))

	paths, err := store.List()
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "ledger23_09_26.csv"),
		filepath.Join(dir, "ledger23_09_27.csv"),
	}, paths)

	_, err = store.Save("notes.txt", []byte("x"))
	require.ErrorIs(t, err, domain.ErrValidation)
}
