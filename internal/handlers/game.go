package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/levelup-dev/levelup/db"
	"github.com/levelup-dev/levelup/internal/stores"
	"github.com/levelup-dev/levelup/internal/utils"
)

type GameRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MinPlayer   int    `json:"min_player" binding:"required"`
	MaxPlayer   int    `json:"max_player" binding:"required"`
	GameType    uint   `json:"game_type" binding:"required"`
}

func (r GameRequest) params() stores.GameParams {
	return stores.GameParams{
		Name:        r.Name,
		Description: r.Description,
		MinPlayer:   r.MinPlayer,
		MaxPlayer:   r.MaxPlayer,
		GameTypeID:  r.GameType,
	}
}

// ListGames supports ?type= to restrict to one game type. Every row
// carries event_count and user_event_count for the calling gamer.
func ListGames(ctx *gin.Context) {
	gamer, ok := currentGamer(ctx)
	if !ok {
		return
	}

	gameTypeID, err := utils.ParseIDQuery(ctx, "type")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game type filter"})
		return
	}

	games, err := stores.NewGameStore(db.DB).List(gamer.ID, gameTypeID)

	if err != nil {
		storeError(ctx, err, "Game not found")
		return
	}

	ctx.JSON(http.StatusOK, games)
}

func GetGame(ctx *gin.Context) {
	gamer, ok := currentGamer(ctx)
	if !ok {
		return
	}

	gameID, err := utils.GetGameID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	game, err := stores.NewGameStore(db.DB).Get(gameID, gamer.ID)

	if err != nil {
		storeError(ctx, err, "Game not found")
		return
	}

	ctx.JSON(http.StatusOK, game)
}

func CreateGame(ctx *gin.Context) {
	gamer, ok := currentGamer(ctx)
	if !ok {
		return
	}

	var req GameRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := stores.NewGameStore(db.DB).Create(req.params(), gamer.ID)

	if err != nil {
		storeError(ctx, err, "Game not found")
		return
	}

	ctx.JSON(http.StatusCreated, game)
}

func UpdateGame(ctx *gin.Context) {
	gamer, ok := currentGamer(ctx)
	if !ok {
		return
	}

	gameID, err := utils.GetGameID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	var req GameRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := stores.NewGameStore(db.DB).Update(gameID, req.params(), gamer.ID); err != nil {
		storeError(ctx, err, "Game not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func DeleteGame(ctx *gin.Context) {
	if _, ok := currentGamer(ctx); !ok {
		return
	}

	gameID, err := utils.GetGameID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	if err := stores.NewGameStore(db.DB).Delete(gameID); err != nil {
		storeError(ctx, err, "Game not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}
