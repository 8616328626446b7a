package httpapi

import (
	"crypto/rand"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"quizly/internal/quiz"
)

const (
	sessionCookieName = "quizly_session"
	sessionIDKey      = "sid"
)

// API wires the question repository, the explainer, and the session manager
// to the HTTP surface. The browser is bound to its server-side session via a
// cookie holding the opaque session ID.
type API struct {
	repo      quiz.Repository
	explainer quiz.Explainer
	sessions  *quiz.Manager
	cookies   *sessions.CookieStore
}

func NewAPI(repo quiz.Repository, explainer quiz.Explainer, manager *quiz.Manager, cookieSecret []byte) *API {
	if len(cookieSecret) == 0 {
		// Ephemeral secret: cookies stop verifying across restarts, which
		// only costs users their in-flight quiz. Sessions are in-memory and
		// lost on restart anyway.
		cookieSecret = make([]byte, 32)
		if _, err := rand.Read(cookieSecret); err != nil {
			log.Fatalf("generate cookie secret: %v", err)
		}
	}

	store := sessions.NewCookieStore(cookieSecret)
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	return &API{
		repo:      repo,
		explainer: explainer,
		sessions:  manager,
		cookies:   store,
	}
}
