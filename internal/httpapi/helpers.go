package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"quizly/internal/quiz"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRepositoryError(w http.ResponseWriter, err error) {
	if errors.Is(err, quiz.ErrNoQuestions) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no questions available"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load quiz data"})
}

func parseOptionalIntParam(r *http.Request, key string) (*int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return nil, errors.New(key + " must be a positive integer")
	}
	return &parsed, nil
}

func toQuestionResponse(question quiz.Question) questionResponse {
	return questionResponse{
		ID:           question.ID,
		Question:     question.Prompt,
		Options:      question.Options,
		CorrectIndex: question.CorrectIndex,
		Level:        question.Level,
	}
}

func toQuestionResponses(questions []quiz.Question) []questionResponse {
	response := make([]questionResponse, 0, len(questions))
	for _, question := range questions {
		response = append(response, toQuestionResponse(question))
	}
	return response
}

func toSessionResponse(snap quiz.Snapshot) sessionResponse {
	response := sessionResponse{
		Phase:              string(snap.Phase),
		Mode:               string(snap.Mode),
		Position:           snap.Position,
		QuestionCount:      snap.SequenceLength,
		SelectedOption:     snap.SelectedOption,
		Revealed:           snap.Revealed,
		Score:              snap.Score,
		Finished:           snap.Finished,
		Explanation:        snap.Explanation,
		ExplanationPending: snap.ExplanationPending,
		ProgressPercent:    snap.ProgressPercent,
	}
	if snap.Question != nil {
		item := toQuestionResponse(*snap.Question)
		response.Question = &item
	}
	if snap.Finished {
		percent := snap.FinalPercent
		response.FinalPercent = &percent
	}
	return response
}
