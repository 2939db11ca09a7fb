package handler

import (
	"net/http"
	"testing"

	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"github.com/manish-terminal/elastomech/internal/stock/service"
	"github.com/manish-terminal/elastomech/internal/stock/testutil"
)

func setupNoteTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	h := NewNoteHandler(service.NewNoteService(repos.Note))

	api := testutil.AuthGroup(router, "/api/notes")
	api.GET("", h.List)
	api.POST("", h.Create)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestNoteCRUD(t *testing.T) {
	env := setupNoteTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/notes", map[string]interface{}{
		"content": "K-2机台周五保养",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "PUT", "/api/notes/"+id, map[string]interface{}{
		"content": "K-2机台周六保养",
	}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/notes", nil, token)
	items := testutil.ParseResponse(w3)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(items))
	}
	if items[0].(map[string]interface{})["content"] != "K-2机台周六保养" {
		t.Errorf("Note content not updated: %v", items[0])
	}

	w4 := testutil.DoRequest(env.Router, "DELETE", "/api/notes/"+id, nil, token)
	if w4.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w4.Code, w4.Body.String())
	}

	w5 := testutil.DoRequest(env.Router, "DELETE", "/api/notes/"+id, nil, token)
	if w5.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 deleting twice, got %d", w5.Code)
	}
}
