package handler

import (
	"net/http"
	"testing"

	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"github.com/manish-terminal/elastomech/internal/stock/service"
	"github.com/manish-terminal/elastomech/internal/stock/testutil"
	"go.uber.org/zap"
)

func setupMaterialTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	materialSvc := service.NewMaterialService(repos.Material, zap.NewNop())
	h := NewMaterialHandler(materialSvc)

	api := testutil.AuthGroup(router, "/api/items")
	api.GET("", h.List)
	api.POST("", h.Create)
	api.GET("/:name", h.Get)
	api.PUT("/:name", h.Update)
	api.DELETE("/:name", h.Delete)
	api.GET("/:name/logs", h.Logs)
	api.POST("/:name/logs", h.AppendLog)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestMaterialCreateAndGet(t *testing.T) {
	env := setupMaterialTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/items", map[string]interface{}{
		"name":     "NBR Rubber",
		"rate":     240.5,
		"category": "rubber",
		"quantity": 100,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate name rejected
	w2 := testutil.DoRequest(env.Router, "POST", "/api/items", map[string]interface{}{
		"name":     "NBR Rubber",
		"rate":     100,
		"category": "rubber",
	}, token)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for duplicate, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/items/NBR Rubber", nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	resp := testutil.ParseResponse(w3)
	data := resp["data"].(map[string]interface{})
	if data["quantity"].(float64) != 100 {
		t.Errorf("Expected quantity 100, got %v", data["quantity"])
	}
	if logs := data["logs"].([]interface{}); len(logs) != 0 {
		t.Errorf("Expected empty logs, got %d", len(logs))
	}
}

func TestMaterialLedgerStartsFromMirroredQuantity(t *testing.T) {
	env := setupMaterialTest(t)
	token := testutil.DefaultTestToken()

	testutil.DoRequest(env.Router, "POST", "/api/items", map[string]interface{}{
		"name": "Carbon Black", "rate": 80, "category": "chemical", "quantity": 100,
	}, token)

	// 空台账但镜像量为100,第一笔入库从100起算
	w := testutil.DoRequest(env.Router, "POST", "/api/items/Carbon Black/logs", map[string]interface{}{
		"particulars": "Purchase GRN-112",
		"inward":      50,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["balance"].(float64) != 150 {
		t.Errorf("Expected balance 150, got %v", data["balance"])
	}

	// 镜像量同步
	w2 := testutil.DoRequest(env.Router, "GET", "/api/items/Carbon Black", nil, token)
	resp2 := testutil.ParseResponse(w2)
	if q := resp2["data"].(map[string]interface{})["quantity"].(float64); q != 150 {
		t.Errorf("Expected mirrored quantity 150, got %v", q)
	}
}

func TestMaterialLedgerAppendIsNotIdempotent(t *testing.T) {
	env := setupMaterialTest(t)
	token := testutil.DefaultTestToken()

	testutil.DoRequest(env.Router, "POST", "/api/items", map[string]interface{}{
		"name": "Sulphur", "rate": 30, "category": "chemical", "quantity": 0,
	}, token)

	body := map[string]interface{}{"particulars": "Purchase", "inward": 20}
	w1 := testutil.DoRequest(env.Router, "POST", "/api/items/Sulphur/logs", body, token)
	w2 := testutil.DoRequest(env.Router, "POST", "/api/items/Sulphur/logs", body, token)

	b1 := testutil.ParseResponse(w1)["data"].(map[string]interface{})["balance"].(float64)
	b2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})["balance"].(float64)
	if b1 != 20 || b2 != 40 {
		t.Errorf("Expected balances 20 and 40, got %v and %v", b1, b2)
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/items/Sulphur/logs", nil, token)
	resp := testutil.ParseResponse(w3)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Errorf("Expected 2 log rows, got %d", len(items))
	}
}

func TestMaterialLedgerFloorsAtZero(t *testing.T) {
	env := setupMaterialTest(t)
	token := testutil.DefaultTestToken()

	testutil.DoRequest(env.Router, "POST", "/api/items", map[string]interface{}{
		"name": "Zinc Oxide", "rate": 55, "category": "chemical", "quantity": 10,
	}, token)

	w := testutil.DoRequest(env.Router, "POST", "/api/items/Zinc Oxide/logs", map[string]interface{}{
		"particulars": "Issue to mixing",
		"outward":     25,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["balance"].(float64) != 0 {
		t.Errorf("Expected balance floored at 0, got %v", data["balance"])
	}
}

func TestMaterialNotFound(t *testing.T) {
	env := setupMaterialTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "GET", "/api/items/Missing", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/api/items/Missing/logs", map[string]interface{}{
		"particulars": "Purchase", "inward": 5,
	}, token)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestMaterialRequiresAuth(t *testing.T) {
	env := setupMaterialTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/items", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}
}
