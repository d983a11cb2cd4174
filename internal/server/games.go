package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"putr/internal/constants"
	"putr/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	uploadSuccess = "success"
	uploadError   = "error"
	uploadSkipped = "skipped"
)

type gameResponse struct {
	ID             int64     `json:"id"`
	DateKey        string    `json:"date_key"`
	PlayedOn       string    `json:"played_on"`
	LedgerFilename string    `json:"ledger_filename,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ledgerEntryResponse struct {
	ID             int64   `json:"id"`
	PlayerID       int64   `json:"player_id"`
	PlayerNickname string  `json:"player_nickname"`
	PlayerIDCSV    string  `json:"player_id_csv"`
	SessionStartAt *string `json:"session_start_at"`
	SessionEndAt   *string `json:"session_end_at"`
	BuyIn          float64 `json:"buy_in"`
	BuyOut         float64 `json:"buy_out"`
	Stack          float64 `json:"stack"`
	Net            float64 `json:"net"`
}

type participantResponse struct {
	PlayerID   int64   `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Net        float64 `json:"net"`
}

type gameDetailResponse struct {
	gameResponse
	Results []participantResponse `json:"results"`
	Ledger  []ledgerEntryResponse `json:"ledger"`
}

type fileUploadResult struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type batchUploadResponse struct {
	Total      int                `json:"total"`
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
	Skipped    int                `json:"skipped"`
	Results    []fileUploadResult `json:"results"`
}

// upload is one multipart file after it has been written to the ledger store.
// A non-empty failure means the file never reached the store.
type upload struct {
	filename string
	data     []byte
	failure  string
}

func toGameResponse(g domain.Game) gameResponse {
	return gameResponse{
		ID:             g.ID,
		DateKey:        g.Key.String(),
		PlayedOn:       g.Key.Date().Format("2006-01-02"),
		LedgerFilename: g.LedgerFilename,
		CreatedAt:      g.CreatedAt,
	}
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := pageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	games, total, err := s.games.ListGames(r.Context(), offset, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]gameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, toGameResponse(g))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"games": out, "total": total})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	detail, err := s.games.GetGame(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := gameDetailResponse{
		gameResponse: toGameResponse(detail.Game),
		Results:      make([]participantResponse, 0, len(detail.Participants)),
		Ledger:       make([]ledgerEntryResponse, 0, len(detail.Entries)),
	}
	for _, p := range detail.Participants {
		out.Results = append(out.Results, participantResponse(p))
	}
	for _, e := range detail.Entries {
		out.Ledger = append(out.Ledger, ledgerEntryResponse{
			ID:             e.ID,
			PlayerID:       e.PlayerID,
			PlayerNickname: e.PlayerNickname,
			PlayerIDCSV:    e.PlayerIDCSV,
			SessionStartAt: e.SessionStartAt,
			SessionEndAt:   e.SessionEndAt,
			BuyIn:          e.BuyIn,
			BuyOut:         e.BuyOut,
			Stack:          e.Stack,
			Net:            e.Net,
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// handleUpload stores every uploaded ledger, then imports them one at a time
// in upload order. A failing file never stops the rest of the batch.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "payload_too_large",
				fmt.Sprintf("Upload exceeds %d MB", s.cfg.MaxUploadMB), nil)
			return
		}
		respondError(w, r, &domain.ValidationError{Field: "files", Value: "", Err: err})
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, r, http.StatusBadRequest, "bad_request", "No files provided", nil)
		return
	}
	logger.Info().Int("files", len(headers)).Msg("received batch upload")

	uploads := make([]upload, len(headers))
	var g errgroup.Group
	g.SetLimit(constants.UploadConcurrency)
	for i, fh := range headers {
		i, fh := i, fh
		g.Go(func() error {
			uploads[i] = s.saveUpload(fh)
			return nil
		})
	}
	_ = g.Wait()

	resp := batchUploadResponse{Total: len(uploads), Results: make([]fileUploadResult, 0, len(uploads))}
	for _, u := range uploads {
		res := s.importUpload(r, u)
		switch res.Status {
		case uploadSuccess:
			resp.Successful++
		case uploadSkipped:
			resp.Skipped++
		default:
			resp.Failed++
		}
		resp.Results = append(resp.Results, res)
	}

	logger.Info().
		Int("successful", resp.Successful).
		Int("failed", resp.Failed).
		Int("skipped", resp.Skipped).
		Msg("batch upload complete")
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) saveUpload(fh *multipart.FileHeader) upload {
	if strings.TrimSpace(fh.Filename) == "" {
		return upload{filename: "unknown", failure: "No filename provided"}
	}

	f, err := fh.Open()
	if err != nil {
		return upload{filename: fh.Filename, failure: "Failed to read upload: " + err.Error()}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return upload{filename: fh.Filename, failure: "Failed to read upload: " + err.Error()}
	}

	path, err := s.store.Save(fh.Filename, data)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return upload{filename: fh.Filename, failure: "File must be a .csv or .xlsx ledger"}
		}
		s.logger.Error().Err(err).Str("filename", fh.Filename).Msg("failed to store upload")
		return upload{filename: fh.Filename, failure: "Failed to save file: " + err.Error()}
	}
	return upload{filename: filepath.Base(path), data: data}
}

func (s *Server) importUpload(r *http.Request, u upload) fileUploadResult {
	if u.failure != "" {
		return fileUploadResult{Filename: u.filename, Status: uploadError, Message: u.failure}
	}

	report, err := s.imports.ImportLedger(r.Context(), u.filename, u.data)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("filename", u.filename).Msg("failed to import upload")
		return fileUploadResult{Filename: u.filename, Status: uploadError, Message: "Failed to import ledger: " + err.Error()}
	}

	switch report.Result {
	case domain.ImportGameExists:
		return fileUploadResult{Filename: u.filename, Status: uploadSkipped, Message: "Game already exists"}
	case domain.ImportMissingNicknames:
		return fileUploadResult{
			Filename: u.filename,
			Status:   uploadError,
			Message:  "Contains unknown player nicknames: " + strings.Join(report.MissingNicknames, ", "),
		}
	default:
		return fileUploadResult{Filename: u.filename, Status: uploadSuccess, Message: "Successfully imported"}
	}
}
