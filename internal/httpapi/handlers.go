package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"quizly/internal/quiz"
)

func (a *API) HandleLevels(w http.ResponseWriter, r *http.Request) {
	summary, err := a.repo.LevelSummary(r.Context())
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, levelsResponse{Levels: summary})
}

func (a *API) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	level, err := parseOptionalIntParam(r, "level")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var questions []quiz.Question
	if level != nil {
		questions, err = a.repo.QuestionsForLevel(r.Context(), *level)
	} else {
		questions, err = a.repo.AllQuestions(r.Context())
	}
	if err != nil {
		writeRepositoryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questionsResponse{Questions: toQuestionResponses(questions)})
}

func (a *API) HandleExplain(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request explainRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if strings.TrimSpace(request.Question) == "" || strings.TrimSpace(request.CorrectAnswer) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question and correct_answer are required"})
		return
	}

	explanation := a.explainer.Explain(r.Context(), request.Question, request.CorrectAnswer)
	writeJSON(w, http.StatusOK, explainResponse{Explanation: explanation})
}

func (a *API) HandleSessionState(w http.ResponseWriter, r *http.Request) {
	session, ok := a.lookupSession(r)
	if !ok {
		// No session yet: the client is still on the configuration screen.
		writeJSON(w, http.StatusOK, toSessionResponse(quiz.Snapshot{Phase: quiz.PhaseConfiguring}))
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session.Snapshot()))
}

func (a *API) HandleSessionStart(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	mode := quiz.ModeStandard
	if strings.EqualFold(strings.TrimSpace(request.Mode), string(quiz.ModeUnlimited)) {
		mode = quiz.ModeUnlimited
	}

	session, err := a.bindSession(w, r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to bind session"})
		return
	}

	if err := session.Start(r.Context(), mode, request.Level, request.TargetSize); err != nil {
		writeRepositoryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session.Snapshot()))
}

func (a *API) HandleSessionAnswer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var request answerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	session, ok := a.lookupSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, toSessionResponse(quiz.Snapshot{Phase: quiz.PhaseConfiguring}))
		return
	}

	session.SelectOption(request.Option)
	writeJSON(w, http.StatusOK, toSessionResponse(session.Snapshot()))
}

func (a *API) HandleSessionAdvance(w http.ResponseWriter, r *http.Request) {
	session, ok := a.lookupSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, toSessionResponse(quiz.Snapshot{Phase: quiz.PhaseConfiguring}))
		return
	}

	session.Advance()
	writeJSON(w, http.StatusOK, toSessionResponse(session.Snapshot()))
}

func (a *API) HandleSessionEnd(w http.ResponseWriter, r *http.Request) {
	session, ok := a.lookupSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, toSessionResponse(quiz.Snapshot{Phase: quiz.PhaseConfiguring}))
		return
	}

	session.EndEarly()
	writeJSON(w, http.StatusOK, toSessionResponse(session.Snapshot()))
}

func (a *API) HandleSessionRestart(w http.ResponseWriter, r *http.Request) {
	if session, ok := a.lookupSession(r); ok {
		session.Restart()
	}
	w.WriteHeader(http.StatusNoContent)
}

// lookupSession resolves the browser's cookie to an existing server-side
// session without creating one.
func (a *API) lookupSession(r *http.Request) (*quiz.Session, bool) {
	cookie, err := a.cookies.Get(r, sessionCookieName)
	if err != nil {
		return nil, false
	}
	id, ok := cookie.Values[sessionIDKey].(string)
	if !ok || id == "" {
		return nil, false
	}
	return a.sessions.Get(id)
}

// bindSession resolves or creates the server-side session for this browser
// and persists its ID in the cookie.
func (a *API) bindSession(w http.ResponseWriter, r *http.Request) (*quiz.Session, error) {
	cookie, err := a.cookies.Get(r, sessionCookieName)
	if err != nil {
		// A stale or tampered cookie decodes to an error; fall through with
		// a fresh one rather than locking the user out.
		cookie.Values = make(map[any]any)
	}

	previous, _ := cookie.Values[sessionIDKey].(string)
	id, session := a.sessions.GetOrCreate(previous)
	if id != previous {
		cookie.Values[sessionIDKey] = id
		if err := cookie.Save(r, w); err != nil {
			return nil, err
		}
	}
	return session, nil
}
