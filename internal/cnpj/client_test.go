package cnpj

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const validPayload = `{"cnpj": "19131243000197", "razao_social": "OPEN KNOWLEDGE BRASIL", "descricao_situacao_cadastral": "ATIVA"}`

func newTestClient(sources []Source) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Second},
		sources:    sources,
		logger:     zerolog.Nop(),
		now:        time.Now,
	}
}

func TestLookupRejectsShortIdentifier(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	c := newTestClient([]Source{{Name: "test", URL: srv.URL + "/%s", Normalize: normalizeBrasilAPI}})

	result := c.Lookup("123")
	if result.Success {
		t.Fatal("expected failure for identifier with fewer than 14 digits")
	}
	if result.Reason != ReasonValidation {
		t.Errorf("reason = %q, want %q", result.Reason, ReasonValidation)
	}
	if atomic.LoadInt64(&calls) != 0 {
		t.Errorf("invalid identifier reached the network: %d calls", calls)
	}
}

func TestLookupStripsFormatting(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(validPayload))
	}))
	defer srv.Close()

	c := newTestClient([]Source{{Name: "test", URL: srv.URL + "/%s", Normalize: normalizeBrasilAPI}})

	result := c.Lookup("19.131.243/0001-97")
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if gotPath != "/19131243000197" {
		t.Errorf("requested path = %q, want cleaned identifier", gotPath)
	}
}

func TestLookupFirstSuccessWins(t *testing.T) {
	var secondCalls int64

	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validPayload))
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&secondCalls, 1)
		w.Write([]byte(validPayload))
	}))
	defer second.Close()

	c := newTestClient([]Source{
		{Name: "primary", URL: first.URL + "/%s", Official: true, Normalize: normalizeBrasilAPI},
		{Name: "secondary", URL: second.URL + "/%s", Normalize: normalizeBrasilAPI},
	})

	result := c.Lookup("19131243000197")
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Source != "primary" {
		t.Errorf("Source = %q, want primary", result.Source)
	}
	if !result.Official {
		t.Error("Official flag lost")
	}
	if atomic.LoadInt64(&secondCalls) != 0 {
		t.Errorf("secondary source was consulted %d times after primary succeeded", secondCalls)
	}
}

func TestLookupFallsBackOnFailure(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer failing.Close()
	errorStatus := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ERROR", "message": "CNPJ inválido"}`))
	}))
	defer errorStatus.Close()
	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validPayload))
	}))
	defer working.Close()

	c := newTestClient([]Source{
		{Name: "down", URL: failing.URL + "/%s", Normalize: normalizeBrasilAPI},
		{Name: "miss", URL: errorStatus.URL + "/%s", Normalize: normalizeReceitaWS},
		{Name: "up", URL: working.URL + "/%s", Normalize: normalizeBrasilAPI},
	})

	result := c.Lookup("19131243000197")
	if !result.Success {
		t.Fatalf("expected success from the last source, got reason %q", result.Reason)
	}
	if result.Source != "up" {
		t.Errorf("Source = %q, want up", result.Source)
	}
}

func TestLookupAllSourcesFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient([]Source{
		{Name: "a", URL: srv.URL + "/%s", Normalize: normalizeBrasilAPI},
		{Name: "b", URL: srv.URL + "/%s", Normalize: normalizeReceitaWS},
	})

	result := c.Lookup("19131243000197")
	if result.Success {
		t.Fatal("expected failure when every source is down")
	}
	if result.Reason != ReasonAllSourcesFailed {
		t.Errorf("reason = %q, want %q", result.Reason, ReasonAllSourcesFailed)
	}
	if result.ConsultedAt.IsZero() {
		t.Error("ConsultedAt not stamped on failure")
	}
}

func TestLookupSkipsIncompletePayload(t *testing.T) {
	incomplete := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cnpj": "19131243000197"}`))
	}))
	defer incomplete.Close()
	complete := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validPayload))
	}))
	defer complete.Close()

	c := newTestClient([]Source{
		{Name: "partial", URL: incomplete.URL + "/%s", Normalize: normalizeBrasilAPI},
		{Name: "full", URL: complete.URL + "/%s", Normalize: normalizeBrasilAPI},
	})

	result := c.Lookup("19131243000197")
	if !result.Success {
		t.Fatalf("expected fallback past incomplete payload, got reason %q", result.Reason)
	}
	if result.Source != "full" {
		t.Errorf("Source = %q, want full", result.Source)
	}
}

func TestOnlyDigits(t *testing.T) {
	if got := OnlyDigits("19.131.243/0001-97"); got != "19131243000197" {
		t.Errorf("OnlyDigits = %q", got)
	}
	if got := OnlyDigits("abc"); got != "" {
		t.Errorf("OnlyDigits = %q, want empty", got)
	}
}
