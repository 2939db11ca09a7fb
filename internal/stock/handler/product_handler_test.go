package handler

import (
	"net/http"
	"testing"

	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"github.com/manish-terminal/elastomech/internal/stock/service"
	"github.com/manish-terminal/elastomech/internal/stock/testutil"
	"go.uber.org/zap"
)

func setupProductTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	materialSvc := service.NewMaterialService(repos.Material, zap.NewNop())
	formulaSvc := service.NewFormulaService(repos.Formula, materialSvc, zap.NewNop())
	productSvc := service.NewProductService(repos.Product, repos.Formula, formulaSvc, nil, "", zap.NewNop())

	fh := NewFormulaHandler(formulaSvc)
	ph := NewProductHandler(productSvc)

	api := testutil.AuthGroup(router, "/api")
	api.POST("/formulas", fh.Create)
	api.GET("/formulas/logs/:name", fh.LogsByName)
	api.POST("/formulas/:id/log", fh.LogMixing)
	api.POST("/products", ph.Create)
	api.GET("/products/:id", ph.Get)
	api.GET("/products/:id/logs", ph.Logs)
	api.POST("/products/:id/log", ph.LogTransaction)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestProductLogCascadesToFormulas(t *testing.T) {
	env := setupProductTest(t)
	token := testutil.DefaultTestToken()

	formulaID := createFormula(t, env, token, "NBR-60", []map[string]interface{}{
		{"type": "rubber", "name": "NBR Rubber", "ratio": 2, "phr": 100},
	})
	// 配方余额攒到 80
	testutil.DoRequest(env.Router, "POST", "/api/formulas/"+formulaID+"/log", mixingBody(10, 8), token)

	w := testutil.DoRequest(env.Router, "POST", "/api/products", map[string]interface{}{
		"articleName":   "Oil Seal 45x60",
		"articleNo":     "ART-45",
		"manufacturing": "Moulding",
		"formulations":  []map[string]interface{}{{"formulaId": formulaID, "fillWeight": 2}},
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	productID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// 产品入库 20,配方并发扣 20*2 = 40
	w2 := testutil.DoRequest(env.Router, "POST", "/api/products/"+productID+"/log", map[string]interface{}{
		"particulars": "Production batch 7",
		"inward":      20,
	}, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if errs := data["errors"]; errs != nil {
		t.Fatalf("Expected no cascade errors, got %v", errs)
	}
	if b := data["log"].(map[string]interface{})["balance"].(float64); b != 20 {
		t.Errorf("Expected product balance 20, got %v", b)
	}

	// 产品镜像量同步
	w3 := testutil.DoRequest(env.Router, "GET", "/api/products/"+productID, nil, token)
	if q := testutil.ParseResponse(w3)["data"].(map[string]interface{})["quantity"].(float64); q != 20 {
		t.Errorf("Expected mirrored quantity 20, got %v", q)
	}

	// 配方余额 80-40 = 40
	w4 := testutil.DoRequest(env.Router, "GET", "/api/formulas/logs/NBR-60", nil, token)
	items := testutil.ParseResponse(w4)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 formula logs, got %d", len(items))
	}
	last := items[len(items)-1].(map[string]interface{})
	if last["balance"].(float64) != 40 {
		t.Errorf("Expected formula balance 40, got %v", last["balance"])
	}
	if last["orderNo"] != "ART-45" {
		t.Errorf("Expected orderNo ART-45, got %v", last["orderNo"])
	}
}

func TestProductLogMissingFormulaStillCommits(t *testing.T) {
	env := setupProductTest(t)
	token := testutil.DefaultTestToken()

	formulaID := createFormula(t, env, token, "NBR-60", []map[string]interface{}{
		{"type": "rubber", "name": "NBR Rubber", "ratio": 2, "phr": 100},
	})

	w := testutil.DoRequest(env.Router, "POST", "/api/products", map[string]interface{}{
		"articleName":   "Gasket 80",
		"articleNo":     "ART-80",
		"manufacturing": "Extrusion",
		"formulations":  []map[string]interface{}{{"formulaId": formulaID, "fillWeight": 1.5}},
	}, token)
	productID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// 产品创建后配方被删,级联失败但主台账照常落库
	env.DB.Exec("DELETE FROM stock_formulas WHERE id = ?", formulaID)

	w2 := testutil.DoRequest(env.Router, "POST", "/api/products/"+productID+"/log", map[string]interface{}{
		"particulars": "Production batch 1",
		"inward":      10,
	}, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	errs, ok := data["errors"].([]interface{})
	if !ok || len(errs) != 1 {
		t.Errorf("Expected 1 cascade error, got %v", data["errors"])
	}
	if b := data["log"].(map[string]interface{})["balance"].(float64); b != 10 {
		t.Errorf("Expected product balance 10, got %v", b)
	}
}

func TestProductCreateValidatesFormulaRefs(t *testing.T) {
	env := setupProductTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/products", map[string]interface{}{
		"articleName":   "Bush 20",
		"articleNo":     "ART-20",
		"manufacturing": "Moulding",
		"formulations":  []map[string]interface{}{{"formulaId": "no-such-formula", "fillWeight": 1}},
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for invalid formula ref, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProductLogsOrderedByInsertion(t *testing.T) {
	env := setupProductTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/products", map[string]interface{}{
		"articleName":   "Washer 10",
		"articleNo":     "ART-10",
		"manufacturing": "Moulding",
	}, token)
	productID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	testutil.DoRequest(env.Router, "POST", "/api/products/"+productID+"/log", map[string]interface{}{
		"particulars": "Batch 1", "inward": 5,
	}, token)
	testutil.DoRequest(env.Router, "POST", "/api/products/"+productID+"/log", map[string]interface{}{
		"particulars": "Dispatch", "outward": 3,
	}, token)

	w2 := testutil.DoRequest(env.Router, "GET", "/api/products/"+productID+"/logs", nil, token)
	items := testutil.ParseResponse(w2)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 logs, got %d", len(items))
	}
	if b := items[1].(map[string]interface{})["balance"].(float64); b != 2 {
		t.Errorf("Expected final balance 2, got %v", b)
	}
}
