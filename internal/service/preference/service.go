package preference

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"sams-storefront/internal/domain"
	"sams-storefront/internal/i18n"
	prefrepo "sams-storefront/internal/repository/preference"
)

// Redrawer switches the language a session's cart surfaces are drawn in.
type Redrawer interface {
	SetLanguage(ctx context.Context, sessionID string, lang domain.Lang) error
}

type Service struct {
	repo        prefrepo.Repository
	redraw      Redrawer
	loc         i18n.Localizer
	defaultLang domain.Lang
	logger      logrus.FieldLogger
}

func New(repo prefrepo.Repository, redraw Redrawer, defaultLang domain.Lang, logger logrus.FieldLogger) *Service {
	if defaultLang == "" {
		defaultLang = domain.DefaultLang
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Service{
		repo:        repo,
		redraw:      redraw,
		loc:         i18n.NewBundle(),
		defaultLang: defaultLang,
		logger:      logger,
	}
}

// Language returns the stored language for the session or the default when
// nothing usable is stored.
func (s *Service) Language(ctx context.Context, sessionID string) (domain.Lang, error) {
	raw, err := s.repo.Get(ctx, sessionID, prefrepo.LanguageKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.defaultLang, nil
		}
		return "", err
	}
	return domain.LangOrDefault(raw, s.defaultLang), nil
}

// SetLanguage validates and stores the choice, then redraws the session's
// cart in the new language.
func (s *Service) SetLanguage(ctx context.Context, sessionID, raw string) (domain.Lang, domain.Notification, error) {
	lang, err := domain.ParseLang(raw)
	if err != nil {
		return "", domain.Notification{}, fmt.Errorf("%q: %w", raw, err)
	}
	if err := s.repo.Set(ctx, sessionID, prefrepo.LanguageKey, string(lang)); err != nil {
		return "", domain.Notification{}, fmt.Errorf("store language: %w", err)
	}
	if s.redraw != nil {
		if err := s.redraw.SetLanguage(ctx, sessionID, lang); err != nil {
			return "", domain.Notification{}, err
		}
	}
	s.logger.WithFields(logrus.Fields{"session": sessionID, "lang": lang}).Info("language changed")
	return lang, domain.Notification{
		Severity: domain.SeverityInfo,
		Key:      i18n.KeyLanguageChanged,
		Message:  s.loc.Resolve(i18n.KeyLanguageChanged, lang),
	}, nil
}
