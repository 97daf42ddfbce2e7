package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/levelup-dev/levelup/db"
	"github.com/levelup-dev/levelup/internal/auth"
	"github.com/levelup-dev/levelup/internal/models"
	"github.com/levelup-dev/levelup/internal/router"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	auth.SetJWTSecret("test-secret")

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Gamer{},
		&models.GameType{},
		&models.Game{},
		&models.Event{},
		&models.EventGamer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return router.NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func register(t *testing.T, r *gin.Engine, firstName, lastName, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"password":   "hunter2hunter2",
		"bio":        "likes games",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)

	if resp.Token == "" {
		t.Fatal("register returned no token")
	}

	return resp.Token
}

func TestRegisterLoginMe(t *testing.T) {
	r := setupRouter(t)

	register(t, r, "Molly", "Ringwald", "molly@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "molly@example.com",
		"password": "hunter2hunter2",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}

	var loginResp struct {
		Token string `json:"token"`
		User  struct {
			FirstName string `json:"first_name"`
			GamerID   uint   `json:"gamer_id"`
		} `json:"user"`
	}
	decode(t, w, &loginResp)

	if loginResp.User.GamerID == 0 {
		t.Error("login response missing gamer profile")
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", loginResp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", w.Code, w.Body.String())
	}

	var meResp struct {
		User struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"user"`
	}
	decode(t, w, &meResp)

	if meResp.User.FirstName != "Molly" || meResp.User.LastName != "Ringwald" {
		t.Errorf("got user %+v, want Molly Ringwald", meResp.User)
	}
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/events", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d for missing token, want 401", w.Code)
	}
}

func TestGameTypeCRUD(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "Molly", "Ringwald", "molly@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/gametypes", token, gin.H{"label": "Board Game"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		ID    uint   `json:"id"`
		Label string `json:"label"`
	}
	decode(t, w, &created)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/gametypes/%d", created.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get returned %d: %s", w.Code, w.Body.String())
	}

	var got struct {
		Label string `json:"label"`
	}
	decode(t, w, &got)
	if got.Label != "Board Game" {
		t.Errorf("got label %q, want Board Game", got.Label)
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/gametypes/%d", created.ID), token, gin.H{"label": "Card Game"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("update returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/gametypes/%d", created.ID), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/gametypes/%d", created.ID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete returned %d, want 404", w.Code)
	}
}

// Full scenario: gamer A creates the catalog and an event, gamer B
// signs up and leaves.
func TestEventScenario(t *testing.T) {
	r := setupRouter(t)
	tokenA := register(t, r, "Molly", "Ringwald", "molly@example.com")
	tokenB := register(t, r, "Judd", "Nelson", "judd@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/gametypes", tokenA, gin.H{"label": "Board Game"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create game type returned %d: %s", w.Code, w.Body.String())
	}
	var gameType struct {
		ID uint `json:"id"`
	}
	decode(t, w, &gameType)

	w = doJSON(t, r, http.MethodPost, "/api/games", tokenA, gin.H{
		"name":        "Catan",
		"description": "trade",
		"min_player":  3,
		"max_player":  4,
		"game_type":   gameType.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create game returned %d: %s", w.Code, w.Body.String())
	}
	var game struct {
		ID uint `json:"id"`
	}
	decode(t, w, &game)

	w = doJSON(t, r, http.MethodPost, "/api/events", tokenA, gin.H{
		"date_of_event": "2023-12-22",
		"start_time":    "18:00",
		"location":      "Jes's House",
		"game":          game.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create event returned %d: %s", w.Code, w.Body.String())
	}

	var event struct {
		ID             uint   `json:"id"`
		DateOfEvent    string `json:"date_of_event"`
		StartTime      string `json:"start_time"`
		Location       string `json:"location"`
		AttendeesCount int64  `json:"attendees_count"`
	}
	decode(t, w, &event)

	if event.DateOfEvent != "2023-12-22" || event.StartTime != "18:00" || event.Location != "Jes's House" {
		t.Errorf("got event %+v, want submitted values", event)
	}
	if event.AttendeesCount != 0 {
		t.Errorf("got attendees_count %d on fresh event, want 0", event.AttendeesCount)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/events/%d/signup", event.ID), tokenB, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", w.Code, w.Body.String())
	}
	var signupResp struct {
		Message string `json:"message"`
	}
	decode(t, w, &signupResp)
	if signupResp.Message != "Gamer added" {
		t.Errorf("got message %q, want %q", signupResp.Message, "Gamer added")
	}

	var view struct {
		AttendeesCount int64 `json:"attendees_count"`
		Joined         bool  `json:"joined"`
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/events/%d", event.ID), tokenB, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get event returned %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &view)
	if view.AttendeesCount != 1 || !view.Joined {
		t.Errorf("as attendee: got count=%d joined=%v, want 1/true", view.AttendeesCount, view.Joined)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/events/%d", event.ID), tokenA, nil)
	decode(t, w, &view)
	if view.AttendeesCount != 1 || view.Joined {
		t.Errorf("as host: got count=%d joined=%v, want 1/false", view.AttendeesCount, view.Joined)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/events/%d/leave", event.ID), tokenB, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("leave returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/events/%d", event.ID), tokenB, nil)
	decode(t, w, &view)
	if view.AttendeesCount != 0 || view.Joined {
		t.Errorf("after leave: got count=%d joined=%v, want 0/false", view.AttendeesCount, view.Joined)
	}
}

func TestCreateEventWithInvalidGame(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "Molly", "Ringwald", "molly@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/events", token, gin.H{
		"date_of_event": "2023-12-22",
		"start_time":    "18:00",
		"location":      "Jes's House",
		"game":          999,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	decode(t, w, &resp)
	if resp.Error != "You sent an invalid game ID" {
		t.Errorf("got error %q, want invalid game ID message", resp.Error)
	}
}

func TestUpdateGameValidation(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "Molly", "Ringwald", "molly@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/gametypes", token, gin.H{"label": "Board Game"})
	var gameType struct {
		ID uint `json:"id"`
	}
	decode(t, w, &gameType)

	w = doJSON(t, r, http.MethodPost, "/api/games", token, gin.H{
		"name":        "Catan",
		"description": "trade",
		"min_player":  3,
		"max_player":  4,
		"game_type":   gameType.ID,
	})
	var game struct {
		ID uint `json:"id"`
	}
	decode(t, w, &game)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/games/%d", game.ID), token, gin.H{
		"name":        "Catan",
		"description": "trade",
		"min_player":  5,
		"max_player":  2,
		"game_type":   gameType.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d for min above max, want 400", w.Code)
	}
}

func TestDeleteReferencedGameTypeConflicts(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "Molly", "Ringwald", "molly@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/gametypes", token, gin.H{"label": "Board Game"})
	var gameType struct {
		ID uint `json:"id"`
	}
	decode(t, w, &gameType)

	w = doJSON(t, r, http.MethodPost, "/api/games", token, gin.H{
		"name":        "Catan",
		"description": "trade",
		"min_player":  3,
		"max_player":  4,
		"game_type":   gameType.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create game returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/gametypes/%d", gameType.ID), token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("got %d for delete of referenced game type, want 409", w.Code)
	}
}

func TestGameListFilter(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "Molly", "Ringwald", "molly@example.com")

	var boardGames, cardGames struct {
		ID uint `json:"id"`
	}

	w := doJSON(t, r, http.MethodPost, "/api/gametypes", token, gin.H{"label": "Board Game"})
	decode(t, w, &boardGames)
	w = doJSON(t, r, http.MethodPost, "/api/gametypes", token, gin.H{"label": "Card Game"})
	decode(t, w, &cardGames)

	for name, typeID := range map[string]uint{"Catan": boardGames.ID, "Uno": cardGames.ID} {
		w = doJSON(t, r, http.MethodPost, "/api/games", token, gin.H{
			"name":        name,
			"description": "fun",
			"min_player":  2,
			"max_player":  4,
			"game_type":   typeID,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s returned %d: %s", name, w.Code, w.Body.String())
		}
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/games?type=%d", cardGames.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filtered list returned %d: %s", w.Code, w.Body.String())
	}

	var games []struct {
		Name string `json:"name"`
	}
	decode(t, w, &games)

	if len(games) != 1 || games[0].Name != "Uno" {
		t.Fatalf("got %+v, want only Uno", games)
	}
}

func TestEventsByUserReport(t *testing.T) {
	r := setupRouter(t)
	tokenA := register(t, r, "Molly", "Ringwald", "molly@example.com")
	tokenB := register(t, r, "Judd", "Nelson", "judd@example.com")

	var gameType, game, event struct {
		ID uint `json:"id"`
	}

	w := doJSON(t, r, http.MethodPost, "/api/gametypes", tokenA, gin.H{"label": "Board Game"})
	decode(t, w, &gameType)
	w = doJSON(t, r, http.MethodPost, "/api/games", tokenA, gin.H{
		"name":        "Catan",
		"description": "trade",
		"min_player":  3,
		"max_player":  4,
		"game_type":   gameType.ID,
	})
	decode(t, w, &game)
	w = doJSON(t, r, http.MethodPost, "/api/events", tokenA, gin.H{
		"date_of_event": "2023-12-22",
		"start_time":    "18:00",
		"location":      "Jes's House",
		"game":          game.ID,
	})
	decode(t, w, &event)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/events/%d/signup", event.ID), tokenB, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/reports/events-by-user", tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report returned %d: %s", w.Code, w.Body.String())
	}

	var report struct {
		UserEventList []struct {
			FullName string `json:"full_name"`
			Events   []struct {
				GameName string `json:"game_name"`
			} `json:"events"`
		} `json:"userevent_list"`
	}
	decode(t, w, &report)

	if len(report.UserEventList) != 1 {
		t.Fatalf("got %d report entries, want 1", len(report.UserEventList))
	}
	entry := report.UserEventList[0]
	if entry.FullName != "Judd Nelson" {
		t.Errorf("got full name %q, want Judd Nelson", entry.FullName)
	}
	if len(entry.Events) != 1 || entry.Events[0].GameName != "Catan" {
		t.Errorf("got events %+v, want one Catan event", entry.Events)
	}
}
