package handler

import (
	"net/http"
	"testing"

	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"github.com/manish-terminal/elastomech/internal/stock/service"
	"github.com/manish-terminal/elastomech/internal/stock/testutil"
	"go.uber.org/zap"
)

func setupFormulaTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	materialSvc := service.NewMaterialService(repos.Material, zap.NewNop())
	formulaSvc := service.NewFormulaService(repos.Formula, materialSvc, zap.NewNop())

	mh := NewMaterialHandler(materialSvc)
	fh := NewFormulaHandler(formulaSvc)

	api := testutil.AuthGroup(router, "/api")
	api.POST("/items", mh.Create)
	api.GET("/items/:name", mh.Get)
	api.POST("/formulas", fh.Create)
	api.GET("/formulas/:id", fh.Get)
	api.GET("/formulas/logs/:name", fh.LogsByName)
	api.POST("/formulas/:id/log", fh.LogMixing)
	api.POST("/formulas/:id/log-from-product", fh.LogFromProduct)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func createFormula(t *testing.T, env *testutil.TestEnv, token, name string, ingredients []map[string]interface{}) string {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", "/api/formulas", map[string]interface{}{
		"name":        name,
		"ingredients": ingredients,
		"totalWeight": 100,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 creating formula, got %d: %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
}

func mixingBody(batchWeight, numberOfBatches float64) map[string]interface{} {
	return map[string]interface{}{
		"date":            "2026-02-10",
		"shift":           "A",
		"orderNo":         "ELAST2026021001",
		"machineNo":       "K-2",
		"operator":        "Ram",
		"batchNo":         "B-77",
		"batchWeight":     batchWeight,
		"numberOfBatches": numberOfBatches,
		"remarks":         "regular run",
	}
}

func TestFormulaMixingAccumulatesBalance(t *testing.T) {
	env := setupFormulaTest(t)
	token := testutil.DefaultTestToken()

	id := createFormula(t, env, token, "NBR-60", []map[string]interface{}{
		{"type": "rubber", "name": "NBR Rubber", "ratio": 2, "phr": 100},
	})

	// 第一次混炼: 空台账,余额 10*5 = 50
	w := testutil.DoRequest(env.Router, "POST", "/api/formulas/"+id+"/log", mixingBody(10, 5), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	log1 := testutil.ParseResponse(w)["data"].(map[string]interface{})["log"].(map[string]interface{})
	if log1["balance"].(float64) != 50 {
		t.Errorf("Expected balance 50, got %v", log1["balance"])
	}

	// 第二次混炼: 50 + 10*3 = 80
	w2 := testutil.DoRequest(env.Router, "POST", "/api/formulas/"+id+"/log", mixingBody(10, 3), token)
	log2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})["log"].(map[string]interface{})
	if log2["balance"].(float64) != 80 {
		t.Errorf("Expected balance 80, got %v", log2["balance"])
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/formulas/logs/NBR-60", nil, token)
	items := testutil.ParseResponse(w3)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Errorf("Expected 2 mixing logs, got %d", len(items))
	}
}

func TestFormulaMixingDeductsIngredients(t *testing.T) {
	env := setupFormulaTest(t)
	token := testutil.DefaultTestToken()

	testutil.DoRequest(env.Router, "POST", "/api/items", map[string]interface{}{
		"name": "NBR Rubber", "rate": 240, "category": "rubber", "quantity": 100,
	}, token)

	id := createFormula(t, env, token, "NBR-60", []map[string]interface{}{
		{"type": "rubber", "name": "NBR Rubber", "ratio": 2, "phr": 100},
	})

	w := testutil.DoRequest(env.Router, "POST", "/api/formulas/"+id+"/log", mixingBody(10, 3), token)
	resp := testutil.ParseResponse(w)
	if errs := resp["data"].(map[string]interface{})["errors"]; errs != nil {
		t.Fatalf("Expected no cascade errors, got %v", errs)
	}

	// 成分出库 ratio*numberOfBatches = 6,镜像量 100-6
	w2 := testutil.DoRequest(env.Router, "GET", "/api/items/NBR Rubber", nil, token)
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if q := data["quantity"].(float64); q != 94 {
		t.Errorf("Expected material quantity 94, got %v", q)
	}
	logs := data["logs"].([]interface{})
	if len(logs) != 1 {
		t.Fatalf("Expected 1 material log, got %d", len(logs))
	}
	row := logs[0].(map[string]interface{})
	if row["outward"].(float64) != 6 {
		t.Errorf("Expected outward 6, got %v", row["outward"])
	}
	if row["particulars"] != "Used in Order ELAST2026021001" {
		t.Errorf("Unexpected particulars: %v", row["particulars"])
	}
}

func TestFormulaMixingMissingMaterialStillCommits(t *testing.T) {
	env := setupFormulaTest(t)
	token := testutil.DefaultTestToken()

	// 成分指向不存在的原材料
	id := createFormula(t, env, token, "EPDM-70", []map[string]interface{}{
		{"type": "rubber", "name": "EPDM Rubber", "ratio": 3, "phr": 100},
	})

	w := testutil.DoRequest(env.Router, "POST", "/api/formulas/"+id+"/log", mixingBody(12, 2), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 even with missing material, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["log"].(map[string]interface{})["balance"].(float64) != 24 {
		t.Errorf("Expected formula balance 24, got %v", data["log"].(map[string]interface{})["balance"])
	}
	errs, ok := data["errors"].([]interface{})
	if !ok || len(errs) != 1 {
		t.Errorf("Expected 1 cascade error, got %v", data["errors"])
	}
}

func TestFormulaLogFromProduct(t *testing.T) {
	env := setupFormulaTest(t)
	token := testutil.DefaultTestToken()

	id := createFormula(t, env, token, "NBR-60", []map[string]interface{}{
		{"type": "rubber", "name": "NBR Rubber", "ratio": 2, "phr": 100},
	})

	// 先混炼攒出余额 80
	testutil.DoRequest(env.Router, "POST", "/api/formulas/"+id+"/log", mixingBody(10, 8), token)

	// 产品侧消耗 20*2 = 40
	w := testutil.DoRequest(env.Router, "POST", "/api/formulas/"+id+"/log-from-product", map[string]interface{}{
		"orderNo":     "ART-9",
		"particulars": "Moulded oil seals",
		"inward":      20,
		"fillWeight":  2,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["balance"].(float64) != 40 {
		t.Errorf("Expected balance 40, got %v", data["balance"])
	}
	if data["shift"] != "NA" || data["batchNo"] != "NA" {
		t.Errorf("Expected NA placeholders, got shift=%v batchNo=%v", data["shift"], data["batchNo"])
	}
}

func TestFormulaLogFromProductValidation(t *testing.T) {
	env := setupFormulaTest(t)
	token := testutil.DefaultTestToken()

	id := createFormula(t, env, token, "NBR-60", []map[string]interface{}{
		{"type": "rubber", "name": "NBR Rubber", "ratio": 2, "phr": 100},
	})

	w := testutil.DoRequest(env.Router, "POST", "/api/formulas/"+id+"/log-from-product", map[string]interface{}{
		"orderNo": "ART-9",
		"inward":  20,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing fields, got %d: %s", w.Code, w.Body.String())
	}
}
