package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipebot-api/internal/core/ingredient"
	recipeService "recipebot-api/internal/core/recipe"

	"github.com/gin-gonic/gin"
)

type stubPromptBuilder struct{}

func (stubPromptBuilder) Build(ingredients []string) (string, error) {
	return "recipe prompt: " + strings.Join(ingredients, ", "), nil
}

type stubCompletionClient struct {
	content string
	err     error
}

func (s stubCompletionClient) FetchCompletion(ctx context.Context, prompt string) (string, error) {
	return s.content, s.err
}

func newTestRouter(ai stubCompletionClient) *gin.Engine {
	gin.SetMode(gin.TestMode)

	validator := ingredient.NewValidator()
	svc := recipeService.NewService(validator, stubPromptBuilder{}, ai)
	h := NewHandler(svc, validator)

	r := gin.New()
	r.POST("/api/recipe", h.HandleGenerate)
	r.GET("/api/recipe/units", h.HandleSupportedUnits)
	return r
}

func postRecipe(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/recipe", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleGenerateSuccess(t *testing.T) {
	ai := stubCompletionClient{
		content: `{"title":"Chicken Rice","ingredients":["1kg chicken","2 cups rice"],"instructions":["Cook rice","Steam chicken"],"cooking_time":"50 minutes"}`,
	}
	r := newTestRouter(ai)

	w := postRecipe(t, r, `{"ingredients":["1kg chicken","2 cups rice"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		Recipe struct {
			Title       string `json:"title"`
			CookingTime string `json:"cooking_time"`
		} `json:"recipe"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want %q", resp.Status, "success")
	}
	if resp.Recipe.Title != "Chicken Rice" {
		t.Errorf("title = %q", resp.Recipe.Title)
	}
	if resp.Recipe.CookingTime != "50 minutes" {
		t.Errorf("cooking_time = %q", resp.Recipe.CookingTime)
	}
}

func TestHandleGenerateInvalidIngredients(t *testing.T) {
	// 本地驗證擋下的請求不會呼叫 AI，stub 內容是什麼都無所謂
	r := newTestRouter(stubCompletionClient{content: "unused"})

	w := postRecipe(t, r, `{"ingredients":["pork","potatoes"]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("status = %q, want %q", resp.Status, "error")
	}
	if resp.Message != recipeService.RefusalPrefix {
		t.Errorf("message = %q, want %q", resp.Message, recipeService.RefusalPrefix)
	}
}

func TestHandleGenerateModelRefusal(t *testing.T) {
	r := newTestRouter(stubCompletionClient{content: "need to provide more ingredients"})

	w := postRecipe(t, r, `{"ingredients":["2kg pork"]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), recipeService.RefusalPrefix) {
		t.Errorf("body = %s, want refusal message", w.Body.String())
	}
}

func TestHandleGenerateAIFailure(t *testing.T) {
	r := newTestRouter(stubCompletionClient{err: context.DeadlineExceeded})

	w := postRecipe(t, r, `{"ingredients":["2kg pork"]}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("status = %q, want %q", resp.Status, "error")
	}
	if !strings.Contains(resp.Message, "recipe generation failed") {
		t.Errorf("message = %q, want failure message", resp.Message)
	}
}

func TestHandleGenerateMalformedRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"missing field", `{}`},
		{"empty list", `{"ingredients":[]}`},
		{"wrong type", `{"ingredients":"2kg pork"}`},
		{"empty member", `{"ingredients":["2kg pork",""]}`},
	}

	r := newTestRouter(stubCompletionClient{content: "unused"})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postRecipe(t, r, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), `"status":"error"`) {
				t.Errorf("body = %s, want error status", w.Body.String())
			}
		})
	}
}

func TestHandleSupportedUnits(t *testing.T) {
	r := newTestRouter(stubCompletionClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/recipe/units", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Units ingredient.SupportedUnits `json:"units"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Units.Mass) == 0 || len(resp.Units.Capacity) == 0 {
		t.Errorf("units = %+v, want non-empty vocabularies", resp.Units)
	}
}
