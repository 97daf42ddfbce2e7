package handlers

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/levelup-dev/levelup/db"
	"github.com/levelup-dev/levelup/internal/stores"
	"github.com/levelup-dev/levelup/internal/types"
	"github.com/levelup-dev/levelup/internal/utils"
)

// Live attendance feed: clients subscribed to an event receive a
// message with the new attendee count whenever someone signs up or
// leaves.

var (
	eventClients   = make(map[uint]map[*websocket.Conn]bool)
	eventClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

func broadcastAttendance(eventID uint) {
	eventClientsMu.RLock()
	clients, exists := eventClients[eventID]
	if !exists || len(clients) == 0 {
		eventClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	eventClientsMu.RUnlock()

	count, err := stores.NewAggregates(db.DB).EventAttendeeCount(eventID)
	if err != nil {
		log.Printf("Failed to count attendees for event %d: %v", eventID, err)
		return
	}

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]interface{}{
			"type":            "attendance",
			"event_id":        eventID,
			"attendees_count": count,
		})

		if err != nil {
			log.Printf("Failed to broadcast attendance to client: %v", err)
			removeEventClient(eventID, conn)
			conn.Close()
		}
	}
}

func removeEventClient(eventID uint, conn *websocket.Conn) {
	eventClientsMu.Lock()
	if clients, exists := eventClients[eventID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(eventClients, eventID)
		}
	}
	eventClientsMu.Unlock()
}

func EventAttendanceSocket(c *gin.Context) {
	eventID, err := utils.GetEventID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	if _, err := stores.NewEventStore(db.DB).Get(eventID, 0); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	eventClientsMu.Lock()
	if eventClients[eventID] == nil {
		eventClients[eventID] = make(map[*websocket.Conn]bool)
	}
	eventClients[eventID][conn] = true
	eventClientsMu.Unlock()

	defer func() {
		removeEventClient(eventID, conn)
		conn.Close()

		log.Printf("WebSocket connection closed for event %d", eventID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":     "connected",
		"message":  "Watching event attendance",
		"event_id": strconv.FormatUint(uint64(eventID), 10),
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for event %d: %v", eventID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for event %d: %v", eventID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for event %d: %v", eventID, err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for event %d: %v", eventID, err)
			}
			break
		}
	}
}
