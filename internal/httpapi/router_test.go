package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"quizly/internal/quiz"
)

func newTestServer(t *testing.T, repo quiz.Repository, explainer quiz.Explainer) (*httptest.Server, *http.Client) {
	t.Helper()

	router := NewRouter(RouterConfig{
		Repo:         repo,
		Explainer:    explainer,
		Sessions:     quiz.NewManager(repo, explainer),
		CookieSecret: []byte("test-secret"),
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return server, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) sessionResponse {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d", url, resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	return session
}

func getSession(t *testing.T, client *http.Client, base string) sessionResponse {
	t.Helper()

	resp, err := client.Get(base + "/api/session")
	if err != nil {
		t.Fatalf("GET session: %v", err)
	}
	defer resp.Body.Close()

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	return session
}

func TestSessionFlowOverHTTP(t *testing.T) {
	repo := testRepo()
	explainer := &fakeExplainer{text: "Blue comes from Rayleigh scattering."}
	server, client := newTestServer(t, repo, explainer)

	// Start a two-question standard session.
	session := postJSON(t, client, server.URL+"/api/session/start", startSessionRequest{
		Mode:       "standard",
		TargetSize: 2,
	})
	if session.Phase != string(quiz.PhaseActive) || session.QuestionCount != 2 {
		t.Fatalf("unexpected session after start: %+v", session)
	}
	if session.Question == nil {
		t.Fatalf("active session must expose the current question")
	}

	// Answer the first question wrong and wait for the explanation to land.
	wrong := (session.Question.CorrectIndex + 1) % len(session.Question.Options)
	session = postJSON(t, client, server.URL+"/api/session/answer", answerRequest{Option: wrong})
	if !session.Revealed || session.Score != 0 {
		t.Fatalf("wrong answer handling: %+v", session)
	}

	deadline := time.Now().Add(2 * time.Second)
	for session.ExplanationPending || session.Explanation == "" {
		if time.Now().After(deadline) {
			t.Fatalf("explanation never arrived: %+v", session)
		}
		time.Sleep(10 * time.Millisecond)
		session = getSession(t, client, server.URL)
	}
	if session.Explanation != explainer.text {
		t.Fatalf("explanation = %q", session.Explanation)
	}

	// Advance and answer the second question correctly.
	session = postJSON(t, client, server.URL+"/api/session/advance", struct{}{})
	if session.Position != 1 || session.Revealed || session.Explanation != "" {
		t.Fatalf("advance did not clear question state: %+v", session)
	}

	session = postJSON(t, client, server.URL+"/api/session/answer", answerRequest{Option: session.Question.CorrectIndex})
	if session.Score != 1 {
		t.Fatalf("score = %d, want 1", session.Score)
	}

	// Advancing from the last question finishes the quiz at 50%.
	session = postJSON(t, client, server.URL+"/api/session/advance", struct{}{})
	if !session.Finished {
		t.Fatalf("expected finished session: %+v", session)
	}
	if session.FinalPercent == nil || *session.FinalPercent != 50 {
		t.Fatalf("final percent = %v, want 50", session.FinalPercent)
	}

	// Restart discards the session.
	resp, err := client.Post(server.URL+"/api/session/restart", "application/json", nil)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("restart status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}

	if session = getSession(t, client, server.URL); session.Phase != string(quiz.PhaseConfiguring) {
		t.Fatalf("phase after restart = %q, want configuring", session.Phase)
	}
}

func TestStartWithLevelFilterOverHTTP(t *testing.T) {
	server, client := newTestServer(t, testRepo(), &fakeExplainer{})

	level := 2
	session := postJSON(t, client, server.URL+"/api/session/start", startSessionRequest{
		Mode:       "standard",
		Level:      &level,
		TargetSize: 10,
	})

	// Level 2 only has one question; the session is capped by availability.
	if session.QuestionCount != 1 {
		t.Fatalf("question count = %d, want 1", session.QuestionCount)
	}
	if session.Question == nil || session.Question.Level != 2 {
		t.Fatalf("question outside requested level: %+v", session.Question)
	}
}

func TestStartEmptyBankOverHTTP(t *testing.T) {
	server, client := newTestServer(t, &fakeRepo{}, &fakeExplainer{})

	payload, _ := json.Marshal(startSessionRequest{Mode: "standard", TargetSize: 5})
	resp, err := client.Post(server.URL+"/api/session/start", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST start: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusServiceUnavailable)
	}
}
