package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}

func GetGameTypeID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "game_type_id")
}

func GetGameID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "game_id")
}

func GetEventID(ctx *gin.Context) (uint, error) {
	return parseIDParam(ctx, "event_id")
}

// ParseIDQuery reads an optional numeric query parameter, returning nil
// when the parameter is absent.
func ParseIDQuery(ctx *gin.Context, name string) (*uint, error) {
	raw, ok := ctx.GetQuery(name)
	if !ok {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.New("invalid " + name)
	}

	parsed := uint(id)
	return &parsed, nil
}
