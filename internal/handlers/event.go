package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/levelup-dev/levelup/db"
	"github.com/levelup-dev/levelup/internal/stores"
	"github.com/levelup-dev/levelup/internal/utils"
)

type EventRequest struct {
	DateOfEvent string `json:"date_of_event" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Game        uint   `json:"game" binding:"required"`
}

func (r EventRequest) params() stores.EventParams {
	return stores.EventParams{
		DateOfEvent: r.DateOfEvent,
		StartTime:   r.StartTime,
		Location:    r.Location,
		GameID:      r.Game,
	}
}

// ListEvents supports ?game= for an exact-match filter on the game
// foreign key. Every row carries attendees_count and the calling
// gamer's joined flag.
func ListEvents(ctx *gin.Context) {
	gamer, ok := currentGamer(ctx)
	if !ok {
		return
	}

	gameID, err := utils.ParseIDQuery(ctx, "game")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game filter"})
		return
	}

	events, err := stores.NewEventStore(db.DB).List(gamer.ID, gameID)

	if err != nil {
		storeError(ctx, err, "Event not found")
		return
	}

	ctx.JSON(http.StatusOK, events)
}

func GetEvent(ctx *gin.Context) {
	gamer, ok := currentGamer(ctx)
	if !ok {
		return
	}

	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	event, err := stores.NewEventStore(db.DB).Get(eventID, gamer.ID)

	if err != nil {
		storeError(ctx, err, "Event not found")
		return
	}

	ctx.JSON(http.StatusOK, event)
}

func CreateEvent(ctx *gin.Context) {
	gamer, ok := currentGamer(ctx)
	if !ok {
		return
	}

	var req EventRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := stores.NewEventStore(db.DB).Create(req.params(), gamer.ID)

	if err != nil {
		storeError(ctx, err, "You sent an invalid game ID")
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

func UpdateEvent(ctx *gin.Context) {
	if _, ok := currentGamer(ctx); !ok {
		return
	}

	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req EventRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := stores.NewEventStore(db.DB).Update(eventID, req.params()); err != nil {
		storeError(ctx, err, "You sent an invalid game ID")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func DeleteEvent(ctx *gin.Context) {
	if _, ok := currentGamer(ctx); !ok {
		return
	}

	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	if err := stores.NewEventStore(db.DB).Delete(eventID); err != nil {
		storeError(ctx, err, "Event not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func SignupEvent(ctx *gin.Context) {
	gamer, ok := currentGamer(ctx)
	if !ok {
		return
	}

	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	if err := stores.NewEventStore(db.DB).Signup(eventID, gamer.ID); err != nil {
		storeError(ctx, err, "Event not found")
		return
	}

	broadcastAttendance(eventID)

	ctx.JSON(http.StatusCreated, gin.H{"message": "Gamer added"})
}

func LeaveEvent(ctx *gin.Context) {
	gamer, ok := currentGamer(ctx)
	if !ok {
		return
	}

	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	if err := stores.NewEventStore(db.DB).Leave(eventID, gamer.ID); err != nil {
		storeError(ctx, err, "Event not found")
		return
	}

	broadcastAttendance(eventID)

	ctx.Status(http.StatusNoContent)
}
