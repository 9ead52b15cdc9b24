package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pitchside/matchday/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

func (h *TournamentHandler) RoundState(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuidParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.tournamentService.RoundState(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round_state": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuidParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.tournamentService.Standings(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type submitRoundRequest struct {
	Scores services.RoundScores `json:"scores"`
}

func (h *TournamentHandler) SubmitRound(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuidParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := strconv.Atoi(chi.URLParam(r, "roundNumber"))
	if err != nil || round < 1 {
		badRequestResponse(w, r, errors.New("invalid roundNumber parameter"))
		return
	}

	var req submitRoundRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.tournamentService.SubmitRound(r.Context(), gameID, round, req.Scores)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round_state": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type finalizeRequest struct {
	WinningTeam string  `json:"winning_team"`
	MVPPlayerID *string `json:"mvp_player_id"`
}

func (h *TournamentHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuidParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req finalizeRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Finalize(r.Context(), gameID, req.WinningTeam, req.MVPPlayerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "finalized"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type reFinalizeRequest struct {
	Scores      services.RoundScores `json:"scores"`
	MVPPlayerID json.RawMessage      `json:"mvp_player_id"`
}

// parseMVPUpdate decodes the tri-state mvp_player_id field: an absent field
// keeps the current holder, an explicit null removes the award, and a string
// moves it to that player.
func parseMVPUpdate(raw json.RawMessage) (services.MVPUpdate, error) {
	if len(raw) == 0 {
		return services.MVPUpdate{}, nil
	}
	if string(raw) == "null" {
		return services.MVPUpdate{Set: true}, nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return services.MVPUpdate{}, errors.New("mvp_player_id must be a string or null")
	}
	return services.MVPUpdate{Set: true, PlayerID: &id}, nil
}

func (h *TournamentHandler) ReFinalize(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuidParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req reFinalizeRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	mvp, err := parseMVPUpdate(req.MVPPlayerID)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.ReFinalize(r.Context(), gameID, req.Scores, mvp); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "refinalized"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
