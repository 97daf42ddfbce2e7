package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/levelup-dev/levelup/db"
	"github.com/levelup-dev/levelup/internal/stores"
	"github.com/levelup-dev/levelup/internal/utils"
)

// currentGamer resolves the authenticated user into their gamer profile
// and writes the response itself on failure. The "invalid token" wording
// is the caller-facing contract for a valid account with no profile.
func currentGamer(ctx *gin.Context) (stores.GamerProfile, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return stores.GamerProfile{}, false
	}

	gamer, err := stores.NewGamerStore(db.DB).GetByUserID(userID)

	if err != nil {
		if errors.Is(err, stores.ErrNoGamerProfile) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "You sent an invalid token"})
		} else {
			log.Printf("Failed to resolve gamer for user %d: %v", userID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return stores.GamerProfile{}, false
	}

	return gamer, true
}

// storeError maps the store taxonomy onto status codes. notFoundMsg
// customizes the 404 wording per endpoint.
func storeError(ctx *gin.Context, err error, notFoundMsg string) {
	var validationErr *stores.ValidationError
	var conflictErr *stores.ConflictError

	switch {
	case errors.Is(err, stores.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &conflictErr):
		ctx.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	default:
		log.Printf("Store error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
