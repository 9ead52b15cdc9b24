package handlers

import (
	"errors"
	"net/http"

	"github.com/pitchside/matchday/services"
)

const maxCoverUploadBytes = 10 << 20 // 10MB

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) Detail(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuidParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	detail, err := h.gameService.Detail(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, detail, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuidParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxCoverUploadBytes); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form"))
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		badRequestResponse(w, r, errors.New("cover file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	location, err := h.gameService.UploadCover(r.Context(), gameID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"cover_url": location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) SyncPlayers(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuidParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	count, err := h.gameService.SyncPlayerCount(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"current_players": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
