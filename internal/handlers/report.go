package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/levelup-dev/levelup/db"
	"github.com/levelup-dev/levelup/internal/stores"
)

// EventsByUser renders the attendance report: every attended event
// grouped by the attending gamer.
func EventsByUser(ctx *gin.Context) {
	report, err := stores.NewAggregates(db.DB).EventsByUser()

	if err != nil {
		storeError(ctx, err, "Report not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"userevent_list": report})
}
