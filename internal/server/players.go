package server

import (
	"net/http"

	"putr/internal/domain"
	"putr/internal/service"
)

type playerResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	ExternalID  string        `json:"player_id_str,omitempty"`
	Flag        string        `json:"flag"`
	Rating      domain.Rating `json:"putr"`
	Net         float64       `json:"net"`
	GamesUp     int           `json:"games_up"`
	GamesDown   int           `json:"games_down"`
	AverageNet  float64       `json:"average_net"`
	BiggestWin  float64       `json:"biggest_win"`
	BiggestLoss float64       `json:"biggest_loss"`
	HighestNet  float64       `json:"highest_net"`
	LowestNet   float64       `json:"lowest_net"`
}

type playerDetailResponse struct {
	playerResponse
	Nicknames []string `json:"nicknames"`
}

type nicknameResponse struct {
	ID         int64  `json:"id"`
	Nickname   string `json:"nickname"`
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type historyPointResponse struct {
	GameID     int64   `json:"game_id"`
	DateKey    string  `json:"date_key"`
	Net        float64 `json:"net"`
	Cumulative float64 `json:"cumulative"`
}

func toPlayerResponse(p *domain.Player) playerResponse {
	return playerResponse{
		ID:          p.ID,
		Name:        p.Name,
		ExternalID:  p.ExternalID,
		Flag:        p.Flag,
		Rating:      p.Rating,
		Net:         p.Stats.Net,
		GamesUp:     p.Stats.GamesUp,
		GamesDown:   p.Stats.GamesDown,
		AverageNet:  p.Stats.AverageNet,
		BiggestWin:  p.Stats.BiggestWin,
		BiggestLoss: p.Stats.BiggestLoss,
		HighestNet:  p.Stats.HighestNet,
		LowestNet:   p.Stats.LowestNet,
	}
}

func toNicknameResponse(n *domain.PlayerNickname) nicknameResponse {
	return nicknameResponse{ID: n.ID, Nickname: n.Nickname, PlayerID: n.PlayerID, PlayerName: n.PlayerName}
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := pageParams(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	players, total, err := s.players.ListPlayers(r.Context(), offset, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]playerResponse, 0, len(players))
	for i := range players {
		out = append(out, toPlayerResponse(&players[i]))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"players": out, "total": total})
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	player, err := s.players.GetPlayer(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	nicknames, err := s.players.ListNicknames(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := playerDetailResponse{playerResponse: toPlayerResponse(player), Nicknames: make([]string, 0, len(nicknames))}
	for _, n := range nicknames {
		out.Nicknames = append(out.Nicknames, n.Nickname)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handlePlayerGames(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	points, err := s.players.GameHistory(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]historyPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, historyPointResponse{
			GameID:     p.GameID,
			DateKey:    p.Key.String(),
			Net:        p.Net,
			Cumulative: p.Cumulative,
		})
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"games": out})
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name      string         `json:"name"`
		Flag      string         `json:"flag"`
		Rating    *domain.Rating `json:"putr"`
		Nicknames []string       `json:"nicknames"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	rating := domain.Rated(0)
	if in.Rating != nil {
		rating = *in.Rating
	}
	player, err := s.players.RegisterPlayer(r.Context(), service.RegisterPlayerInput{
		Name:      in.Name,
		Flag:      in.Flag,
		Rating:    rating,
		Nicknames: in.Nicknames,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toPlayerResponse(player))
}

func (s *Server) handleAddNickname(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in struct {
		Nickname string `json:"nickname"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	n, err := s.players.AddNickname(r.Context(), id, in.Nickname)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toNicknameResponse(n))
}

func (s *Server) handleSetRating(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in struct {
		Rating *domain.Rating `json:"putr"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if in.Rating == nil {
		respondError(w, r, &domain.ValidationError{Field: "putr", Value: ""})
		return
	}

	player, err := s.players.SetRating(r.Context(), id, *in.Rating)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toPlayerResponse(player))
}

func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	player, err := s.stats.Recalculate(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toPlayerResponse(player))
}

func (s *Server) handleRecalculateAll(w http.ResponseWriter, r *http.Request) {
	n, err := s.stats.RecalculateAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"recalculated": n})
}
