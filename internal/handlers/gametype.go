package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/levelup-dev/levelup/db"
	"github.com/levelup-dev/levelup/internal/stores"
	"github.com/levelup-dev/levelup/internal/utils"
)

type GameTypeRequest struct {
	Label string `json:"label" binding:"required"`
}

func GetGameType(ctx *gin.Context) {
	gameTypeID, err := utils.GetGameTypeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game type ID"})
		return
	}

	gameType, err := stores.NewGameTypeStore(db.DB).Get(gameTypeID)

	if err != nil {
		storeError(ctx, err, "Game type not found")
		return
	}

	ctx.JSON(http.StatusOK, gameType)
}

func ListGameTypes(ctx *gin.Context) {
	gameTypes, err := stores.NewGameTypeStore(db.DB).List()

	if err != nil {
		storeError(ctx, err, "Game type not found")
		return
	}

	ctx.JSON(http.StatusOK, gameTypes)
}

func CreateGameType(ctx *gin.Context) {
	var req GameTypeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please submit the label. It cannot be blank."})
		return
	}

	gameType, err := stores.NewGameTypeStore(db.DB).Create(req.Label)

	if err != nil {
		storeError(ctx, err, "Game type not found")
		return
	}

	ctx.JSON(http.StatusCreated, gameType)
}

func UpdateGameType(ctx *gin.Context) {
	gameTypeID, err := utils.GetGameTypeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game type ID"})
		return
	}

	var req GameTypeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please submit the label. It cannot be blank."})
		return
	}

	if err := stores.NewGameTypeStore(db.DB).Update(gameTypeID, req.Label); err != nil {
		storeError(ctx, err, "Game type not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func DeleteGameType(ctx *gin.Context) {
	gameTypeID, err := utils.GetGameTypeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game type ID"})
		return
	}

	if err := stores.NewGameTypeStore(db.DB).Delete(gameTypeID); err != nil {
		storeError(ctx, err, "Game type not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}
