package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petvault/internal/domain/assistant"
	"petvault/internal/ports/completion"
	"petvault/internal/router"
)

// capturingProvider simula el proveedor de completions y captura el prompt.
type capturingProvider struct {
	reply string
	err   error

	calls    int
	lastMsgs []completion.Message
}

func (p *capturingProvider) Complete(ctx context.Context, msgs []completion.Message) (string, error) {
	p.calls++
	p.lastMsgs = msgs
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func newTestServer(t *testing.T, provider completion.Provider) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		Provider:     provider,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_PetVault(t *testing.T) {
	provider := &capturingProvider{reply: "Milo is doing great!"}
	ts := newTestServer(t, provider)

	ownerID := "owner-1"

	// 1) Owner crea mascota (plan basic: 1 permitida)
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":   "Milo",
		"breed":  "beagle",
		"gender": "male",
		"age":    4,
		"weight": 12.5,
	})

	// 2) Segunda mascota en basic => 403
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/pets", ownerID, map[string]any{"name": "Luna"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 second pet on basic, got %d", st)
		}
	}

	// 3) Upgrade a pro y reintento => 201
	{
		st, body := doReq(t, ts.URL, "POST", "/api/me/profile/upgrade", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 upgrade, got %d body=%s", st, string(body))
		}
	}
	createPet(t, ts.URL, ownerID, map[string]any{"name": "Luna"})

	// 4) Entrada de peso en la línea de tiempo
	entryID := createEntry(t, ts.URL, ownerID, petID, map[string]any{
		"category": "weight",
		"title":    "Monthly weigh-in",
		"date":     "2026-03-01",
		"metadata": map[string]any{"weight_value": 12.5},
	})

	// 5) Documento colgado de la entrada
	{
		st, body := doReq(t, ts.URL, "POST", "/api/entries/"+entryID+"/files", ownerID, map[string]any{
			"file_url":  "https://storage.example/vaccine.pdf",
			"file_name": "vaccine.pdf",
			"file_type": "application/pdf",
			"file_size": 1024,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add file, got %d body=%s", st, string(body))
		}
	}

	// 6) Recordatorio pendiente
	{
		st, body := doReq(t, ts.URL, "POST", "/api/pets/"+petID+"/reminders", ownerID, map[string]any{
			"title": "Rabies booster",
			"date":  "2026-04-01",
			"type":  "vaccine",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create reminder, got %d body=%s", st, string(body))
		}
	}

	// 7) Chat con petId: responde y el prompt lleva el contexto armado
	{
		st, body := doReq(t, ts.URL, "POST", "/api/chat", ownerID, map[string]any{
			"message": "how is Milo doing?",
			"petId":   petID,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 chat, got %d body=%s", st, string(body))
		}
		var resp struct {
			Response string `json:"response"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Response != provider.reply {
			t.Fatalf("expected provider reply, got %q", resp.Response)
		}

		if len(provider.lastMsgs) == 0 {
			t.Fatalf("provider did not receive messages")
		}
		system := provider.lastMsgs[0].Content
		for _, want := range []string{
			"User Plan: PRO",
			"Active Pet Context (Milo)",
			"2026-03-01: 12.5kg",
			"2026-04-01: Rabies booster",
			"vaccine.pdf (application/pdf)",
		} {
			if !strings.Contains(system, want) {
				t.Fatalf("system prompt missing %q\n---\n%s", want, system)
			}
		}
	}

	// 8) La transcripción quedó persistida en orden
	{
		st, body := doReq(t, ts.URL, "GET", "/api/me/chat/history", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var msgs []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}
		_ = json.Unmarshal(body, &msgs)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 history messages, got %d", len(msgs))
		}
		if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
			t.Fatalf("expected user then assistant, got %s, %s", msgs[0].Role, msgs[1].Role)
		}
	}

	// 9) Otro usuario no ve la mascota
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/pets/"+petID, "intruder-1", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 foreign pet, got %d", st)
		}
	}
}

func TestHTTP_Chat_AnonymousWorksWithoutPersistence(t *testing.T) {
	provider := &capturingProvider{reply: "Dogs sleep a lot."}
	ts := newTestServer(t, provider)

	// Sin X-Debug-User-ID ni token: turno anónimo.
	st, body := doReq(t, ts.URL, "POST", "/api/chat", "", map[string]any{
		"message": "how much do puppies sleep?",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 anonymous chat, got %d body=%s", st, string(body))
	}
	if provider.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestHTTP_Chat_EmptyMessage(t *testing.T) {
	provider := &capturingProvider{reply: "unused"}
	ts := newTestServer(t, provider)

	st, body := doReq(t, ts.URL, "POST", "/api/chat", "user-1", map[string]any{"message": ""})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}

	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Error != "Message is required" {
		t.Fatalf("expected exact error body, got %q", resp.Error)
	}
	if provider.calls != 0 {
		t.Fatalf("provider must not be called on empty message")
	}
}

func TestHTTP_Chat_RateLimit(t *testing.T) {
	provider := &capturingProvider{reply: "ok"}
	ts := newTestServer(t, provider)

	// Cada turno exitoso persiste 2 filas (user + assistant); el límite de 20
	// filas por hora se alcanza al décimo turno.
	for i := 0; i < 10; i++ {
		st, body := doReq(t, ts.URL, "POST", "/api/chat", "user-1", map[string]any{"message": "hello"})
		if st != http.StatusOK {
			t.Fatalf("turn %d: expected 200, got %d body=%s", i+1, st, string(body))
		}
	}

	st, body := doReq(t, ts.URL, "POST", "/api/chat", "user-1", map[string]any{"message": "one more"})
	if st != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d body=%s", st, string(body))
	}

	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Error != "Rate limit exceeded. Max 20 messages per hour." {
		t.Fatalf("expected exact rate limit body, got %q", resp.Error)
	}
	if provider.calls != 10 {
		t.Fatalf("expected 10 provider calls, got %d", provider.calls)
	}

	// Otro usuario no queda afectado.
	st, _ = doReq(t, ts.URL, "POST", "/api/chat", "user-2", map[string]any{"message": "hello"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 for second user, got %d", st)
	}
}

func TestHTTP_Chat_MedicalGuardrail(t *testing.T) {
	provider := &capturingProvider{reply: "unused"}
	ts := newTestServer(t, provider)

	st, body := doReq(t, ts.URL, "POST", "/api/chat", "user-1", map[string]any{
		"message": "severe vomiting since last night, what should I do?",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}

	var resp struct {
		Response string `json:"response"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Response != assistant.SafetyReply {
		t.Fatalf("expected safety reply, got %q", resp.Response)
	}
	if provider.calls != 0 {
		t.Fatalf("guardrail must skip provider, got %d calls", provider.calls)
	}
}

func TestHTTP_Chat_ProviderFailure(t *testing.T) {
	provider := &capturingProvider{err: errors.New("upstream timeout")}
	ts := newTestServer(t, provider)

	st, body := doReq(t, ts.URL, "POST", "/api/chat", "user-1", map[string]any{"message": "hello"})
	if st != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body=%s", st, string(body))
	}

	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Error != assistant.UnavailableReply {
		t.Fatalf("expected unavailable body, got %q", resp.Error)
	}
}

func TestHTTP_Chat_NoProviderConfigured(t *testing.T) {
	ts := newTestServer(t, nil)

	st, _ := doReq(t, ts.URL, "POST", "/api/chat", "user-1", map[string]any{"message": "hello"})
	if st != http.StatusInternalServerError {
		t.Fatalf("expected 500 without provider, got %d", st)
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createEntry(t *testing.T, baseURL, userID, petID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/pets/"+petID+"/entries", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create entry, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create entry: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
