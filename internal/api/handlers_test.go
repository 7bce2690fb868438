package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/config"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/llm"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/session"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/store"
)

const testToken = "test_token"

func testOracle(label string) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Determine the mood") {
			return label, nil
		}
		return "That sounds meaningful. Be gentle with yourself.", nil
	})
}

func setupTestServer(t *testing.T, oracle llm.Generator) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Port:     "0",
		APIToken: testToken,
		Nickname: "CalmMate",
	}

	st := store.NewMemory()
	sess := session.New(oracle, st, cfg.Nickname)
	router := NewRouter(cfg, sess, oracle, st)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := setupTestServer(t, testOracle("Neutral"))

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if body["store"] != "connected" {
		t.Errorf("expected store connected, got %v", body["store"])
	}
}

type pingStore struct {
	*store.Memory
	pingErr error
	pinged  bool
}

func (p *pingStore) Ping(ctx context.Context) error {
	p.pinged = true
	return p.pingErr
}

func TestHealthUsesStorePing(t *testing.T) {
	oracle := testOracle("Neutral")
	cfg := &config.Config{Port: "0", APIToken: testToken, Nickname: "CalmMate"}
	st := &pingStore{Memory: store.NewMemory(), pingErr: errors.New("connection refused")}
	sess := session.New(oracle, st, cfg.Nickname)

	server := httptest.NewServer(NewRouter(cfg, sess, oracle, st))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if !st.pinged {
		t.Error("expected the store ping to be probed")
	}
	storeStatus, _ := body["store"].(string)
	if !strings.HasPrefix(storeStatus, "error:") {
		t.Errorf("expected store error from ping, got %q", storeStatus)
	}
}

func TestChatRequiresAuth(t *testing.T) {
	server := setupTestServer(t, testOracle("Neutral"))

	resp, err := http.Post(server.URL+"/api/v1/chat", "application/json",
		bytes.NewBufferString(`{"text":"hello"}`))
	if err != nil {
		t.Fatalf("POST /chat: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestChatRoundtrip(t *testing.T) {
	server := setupTestServer(t, testOracle("Happy"))

	resp := doRequest(t, "POST", server.URL+"/api/v1/chat", `{"text":"what a lovely morning"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var turn map[string]interface{}
	decodeBody(t, resp, &turn)
	if turn["mood"] != "Happy" {
		t.Errorf("mood = %v, want Happy", turn["mood"])
	}
	if turn["userText"] != "what a lovely morning" {
		t.Errorf("userText = %v", turn["userText"])
	}
	if turn["replyText"] == "" {
		t.Error("expected a reply")
	}

	resp = doRequest(t, "GET", server.URL+"/api/v1/history", "")
	var hist struct {
		Turns []map[string]interface{} `json:"turns"`
	}
	decodeBody(t, resp, &hist)
	if len(hist.Turns) != 1 {
		t.Errorf("history length = %d", len(hist.Turns))
	}
}

func TestChatEmptyText(t *testing.T) {
	server := setupTestServer(t, testOracle("Neutral"))

	resp := doRequest(t, "POST", server.URL+"/api/v1/chat", `{"text":"   "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body ErrorResponse
	decodeBody(t, resp, &body)
	if body.Code != "EMPTY_TEXT" {
		t.Errorf("code = %q, want EMPTY_TEXT", body.Code)
	}

	resp = doRequest(t, "GET", server.URL+"/api/v1/history", "")
	var hist struct {
		Turns []map[string]interface{} `json:"turns"`
	}
	decodeBody(t, resp, &hist)
	if len(hist.Turns) != 0 {
		t.Error("rejected input must not be recorded")
	}
}

func TestDeleteTurn(t *testing.T) {
	server := setupTestServer(t, testOracle("Neutral"))

	for _, text := range []string{"one", "two", "three"} {
		doRequest(t, "POST", server.URL+"/api/v1/chat", `{"text":"`+text+`"}`).Body.Close()
	}

	resp := doRequest(t, "DELETE", server.URL+"/api/v1/history/1", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, "GET", server.URL+"/api/v1/history", "")
	var hist struct {
		Turns []map[string]interface{} `json:"turns"`
	}
	decodeBody(t, resp, &hist)
	if len(hist.Turns) != 2 {
		t.Fatalf("history length = %d, want 2", len(hist.Turns))
	}
	if hist.Turns[0]["userText"] != "one" || hist.Turns[1]["userText"] != "three" {
		t.Errorf("unexpected remaining turns: %v", hist.Turns)
	}
}

func TestDeleteTurnInvalidIndex(t *testing.T) {
	server := setupTestServer(t, testOracle("Neutral"))

	resp := doRequest(t, "DELETE", server.URL+"/api/v1/history/5", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	var body ErrorResponse
	decodeBody(t, resp, &body)
	if body.Code != "INVALID_INDEX" {
		t.Errorf("code = %q, want INVALID_INDEX", body.Code)
	}

	resp = doRequest(t, "DELETE", server.URL+"/api/v1/history/abc", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for non-integer index, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestClearHistory(t *testing.T) {
	server := setupTestServer(t, testOracle("Neutral"))

	doRequest(t, "POST", server.URL+"/api/v1/chat", `{"text":"hello"}`).Body.Close()
	doRequest(t, "DELETE", server.URL+"/api/v1/history", "").Body.Close()

	resp := doRequest(t, "GET", server.URL+"/api/v1/history", "")
	var hist struct {
		Turns []map[string]interface{} `json:"turns"`
	}
	decodeBody(t, resp, &hist)
	if len(hist.Turns) != 0 {
		t.Errorf("history not cleared: %v", hist.Turns)
	}
}

func TestReflectionFlow(t *testing.T) {
	server := setupTestServer(t, testOracle("Sad"))

	resp := doRequest(t, "POST", server.URL+"/api/v1/reflections", `{"text":"missing home lately"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var refl map[string]interface{}
	decodeBody(t, resp, &refl)
	if refl["mood"] != "Sad" {
		t.Errorf("mood = %v, want Sad", refl["mood"])
	}
	if refl["support"] == "" {
		t.Error("expected a support reply")
	}

	resp = doRequest(t, "GET", server.URL+"/api/v1/reflections", "")
	var list struct {
		Reflections []map[string]interface{} `json:"reflections"`
	}
	decodeBody(t, resp, &list)
	if len(list.Reflections) != 1 {
		t.Fatalf("reflections length = %d", len(list.Reflections))
	}
	// The support reply is returned but never persisted.
	if _, ok := list.Reflections[0]["support"]; ok {
		t.Error("support reply must not be stored in the ledger")
	}
}

func TestReflectionPromptFollowsMood(t *testing.T) {
	server := setupTestServer(t, testOracle("Anxious"))

	doRequest(t, "POST", server.URL+"/api/v1/chat", `{"text":"deadline stress"}`).Body.Close()

	resp := doRequest(t, "GET", server.URL+"/api/v1/reflections/prompt", "")
	var prompt struct {
		Prompt string `json:"prompt"`
	}
	decodeBody(t, resp, &prompt)
	if !strings.Contains(prompt.Prompt, "worry") {
		t.Errorf("expected anxious prompt, got %q", prompt.Prompt)
	}
}

func TestInsightsEndpoint(t *testing.T) {
	server := setupTestServer(t, testOracle("Anxious"))

	resp := doRequest(t, "GET", server.URL+"/api/v1/insights", "")
	var body struct {
		Insights []string `json:"insights"`
	}
	decodeBody(t, resp, &body)
	if len(body.Insights) != 1 || !strings.Contains(body.Insights[0], "No data yet") {
		t.Errorf("empty-history insights = %v", body.Insights)
	}

	for i := 0; i < 4; i++ {
		doRequest(t, "POST", server.URL+"/api/v1/chat", `{"text":"worried"}`).Body.Close()
	}

	resp = doRequest(t, "GET", server.URL+"/api/v1/insights", "")
	decodeBody(t, resp, &body)
	if len(body.Insights) < 3 {
		t.Errorf("expected dominant + worry + tip, got %v", body.Insights)
	}
	if !strings.HasPrefix(body.Insights[len(body.Insights)-1], "Tip:") {
		t.Errorf("last insight is not the tip: %v", body.Insights)
	}
}

func TestMoodCountsEndpoint(t *testing.T) {
	server := setupTestServer(t, testOracle("Excited"))

	doRequest(t, "POST", server.URL+"/api/v1/chat", `{"text":"big day"}`).Body.Close()
	doRequest(t, "POST", server.URL+"/api/v1/chat", `{"text":"huge day"}`).Body.Close()

	resp := doRequest(t, "GET", server.URL+"/api/v1/moods", "")
	var body struct {
		Counts map[string]int `json:"counts"`
	}
	decodeBody(t, resp, &body)
	if body.Counts["Excited"] != 2 {
		t.Errorf("counts = %v", body.Counts)
	}
}

func TestNicknameEndpoints(t *testing.T) {
	server := setupTestServer(t, testOracle("Neutral"))

	resp := doRequest(t, "GET", server.URL+"/api/v1/nickname", "")
	var body struct {
		Nickname string `json:"nickname"`
	}
	decodeBody(t, resp, &body)
	if body.Nickname != "CalmMate" {
		t.Errorf("default nickname = %q", body.Nickname)
	}

	resp = doRequest(t, "PUT", server.URL+"/api/v1/nickname", `{"nickname":"Luna"}`)
	decodeBody(t, resp, &body)
	if body.Nickname != "Luna" {
		t.Errorf("updated nickname = %q", body.Nickname)
	}
}
