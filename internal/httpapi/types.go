package httpapi

import "quizly/internal/quiz"

type levelsResponse struct {
	Levels []quiz.LevelInfo `json:"levels"`
}

type questionsResponse struct {
	Questions []questionResponse `json:"questions"`
}

// questionResponse exposes correct_index so the browser can reveal
// correctness locally the moment an option is clicked. Fine for a
// study aid, not for adversarial clients.
type questionResponse struct {
	ID           string   `json:"id,omitempty"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Level        int      `json:"level,omitempty"`
}

type explainRequest struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

type startSessionRequest struct {
	Mode       string `json:"mode"`
	Level      *int   `json:"level,omitempty"`
	TargetSize int    `json:"target_size,omitempty"`
}

type answerRequest struct {
	Option int `json:"option"`
}

type sessionResponse struct {
	Phase              string            `json:"phase"`
	Mode               string            `json:"mode,omitempty"`
	Position           int               `json:"position"`
	QuestionCount      int               `json:"question_count"`
	Question           *questionResponse `json:"question,omitempty"`
	SelectedOption     *int              `json:"selected_option,omitempty"`
	Revealed           bool              `json:"revealed"`
	Score              int               `json:"score"`
	Finished           bool              `json:"finished"`
	Explanation        string            `json:"explanation,omitempty"`
	ExplanationPending bool              `json:"explanation_pending"`
	ProgressPercent    float64           `json:"progress_percent"`
	FinalPercent       *int              `json:"final_percent,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
