package reservation

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"sams-storefront/internal/domain"
	"sams-storefront/internal/i18n"
	resrepo "sams-storefront/internal/repository/reservation"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minNameLen    = 2
	minPhoneLen   = 8
	defaultGuests = 2
)

type Service struct {
	repo   resrepo.Repository
	loc    i18n.Localizer
	now    func() time.Time
	logger logrus.FieldLogger
}

func New(repo resrepo.Repository, logger logrus.FieldLogger) *Service {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Service{repo: repo, loc: i18n.NewBundle(), now: time.Now, logger: logger}
}

// Input is a submitted reservation form. A nil Date means today.
type Input struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Guests  int     `json:"guests" binding:"omitempty,min=1,max=50"`
	Date    *string `json:"date"`
	Time    string  `json:"time"`
	Message string  `json:"message"`
}

// Result carries the saved reservation, or nil when the form was rejected,
// along with the notice to show.
type Result struct {
	Reservation  *domain.Reservation `json:"reservation,omitempty"`
	Notification domain.Notification `json:"notification"`
}

// Validate checks the form in the order the site reports problems: name,
// email, phone, then date. It returns the cleaned reservation or the first
// failure's notice.
func (s *Service) Validate(in Input, lang domain.Lang) (domain.Reservation, *domain.Notification) {
	res := domain.Reservation{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Guests:  in.Guests,
		Time:    strings.TrimSpace(in.Time),
		Message: strings.TrimSpace(in.Message),
	}
	if res.Guests <= 0 {
		res.Guests = defaultGuests
	}

	switch {
	case utf8.RuneCountInString(res.Name) < minNameLen:
		return res, s.notice(domain.SeverityError, i18n.KeyReservationName, lang)
	case !emailPattern.MatchString(res.Email):
		return res, s.notice(domain.SeverityError, i18n.KeyReservationEmail, lang)
	case utf8.RuneCountInString(res.Phone) < minPhoneLen:
		return res, s.notice(domain.SeverityError, i18n.KeyReservationPhone, lang)
	}

	today := s.now().Format(domain.ReservationDateLayout)
	if in.Date == nil {
		res.Date = today
		return res, nil
	}
	date := strings.TrimSpace(*in.Date)
	parsed, err := time.Parse(domain.ReservationDateLayout, date)
	if err != nil || parsed.Format(domain.ReservationDateLayout) < today {
		return res, s.notice(domain.SeverityError, i18n.KeyReservationDate, lang)
	}
	res.Date = parsed.Format(domain.ReservationDateLayout)
	return res, nil
}

// Submit validates and stores the form. A rejected form is not an error: the
// Result carries the notice and no reservation.
func (s *Service) Submit(ctx context.Context, sessionID string, in Input, lang domain.Lang) (*Result, error) {
	res, bad := s.Validate(in, lang)
	if bad != nil {
		s.logger.WithFields(logrus.Fields{"session": sessionID, "reason": bad.Key}).Info("reservation rejected")
		return &Result{Notification: *bad}, nil
	}
	res.SessionID = sessionID
	saved, err := s.repo.Create(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("store reservation: %w", err)
	}
	return &Result{
		Reservation:  saved,
		Notification: *s.notice(domain.SeveritySuccess, i18n.KeyReservationSubmitted, lang),
	}, nil
}

// List returns the session's reservations, oldest first.
func (s *Service) List(ctx context.Context, sessionID string) ([]domain.Reservation, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func (s *Service) notice(sev domain.Severity, key string, lang domain.Lang) *domain.Notification {
	return &domain.Notification{Severity: sev, Key: key, Message: s.loc.Resolve(key, lang)}
}
