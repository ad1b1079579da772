package preference

import "context"

// LanguageKey is the preference key the language choice is stored under.
const LanguageKey = "sams-language"

// Repository stores per-session preferences. Get returns domain.ErrNotFound
// when nothing was saved for the session.
type Repository interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
}
