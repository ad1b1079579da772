package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	cartstore "sams-storefront/internal/cart"
	"sams-storefront/internal/domain"
	"sams-storefront/internal/i18n"
	"sams-storefront/internal/money"
	"sams-storefront/internal/promo"
	prefrepo "sams-storefront/internal/repository/preference"
	"sams-storefront/internal/surface"
)

// Service keeps one cart per browsing session. Every event for a session runs
// under that session's lock, so a mutation and the redraw it triggers finish
// before the next event is handled.
type Service struct {
	menu        menuRepo
	prefs       prefReader
	rules       *promo.Table
	loc         i18n.Localizer
	defaultLang domain.Lang
	seed        func() []domain.LineItem
	idleTTL     time.Duration
	now         func() time.Time
	logger      logrus.FieldLogger

	mu         sync.Mutex
	sessions   map[string]*session
	sweepEvery time.Duration
	lastSweep  time.Time
	sweeps     int
}

type menuRepo interface {
	GetByID(ctx context.Context, id int) (*domain.MenuItem, error)
}

type prefReader interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
}

// Options configures a Service. Zero values fall back to the built-in promo
// table, string bundle, French, an empty starting cart and a 24h idle TTL.
type Options struct {
	Rules       *promo.Table
	Localizer   i18n.Localizer
	DefaultLang domain.Lang
	Seed        func() []domain.LineItem
	Preferences prefReader
	// IdleTTL drops a session's cart after this long without events.
	IdleTTL time.Duration
	Logger  logrus.FieldLogger
}

const defaultIdleTTL = 24 * time.Hour

func New(menu menuRepo, opts Options) *Service {
	s := &Service{
		menu:        menu,
		prefs:       opts.Preferences,
		rules:       opts.Rules,
		loc:         opts.Localizer,
		defaultLang: opts.DefaultLang,
		seed:        opts.Seed,
		idleTTL:     opts.IdleTTL,
		now:         time.Now,
		logger:      opts.Logger,
		sessions:    make(map[string]*session),
	}
	if s.rules == nil {
		s.rules = promo.Default()
	}
	if s.loc == nil {
		s.loc = i18n.NewBundle()
	}
	if s.defaultLang == "" {
		s.defaultLang = domain.DefaultLang
	}
	if s.seed == nil {
		s.seed = func() []domain.LineItem { return nil }
	}
	if s.idleTTL <= 0 {
		s.idleTTL = defaultIdleTTL
	}
	s.sweepEvery = s.idleTTL / 4
	if s.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.logger = l
	}
	return s
}

type session struct {
	id       string
	lastSeen time.Time // guarded by Service.mu
	mu       sync.Mutex
	store    *cartstore.Store
	sync     *surface.Synchronizer
	dropdown *surface.Dropdown
	page     *surface.Page
}

// View is the cart as returned to the client after every call.
type View struct {
	SessionID     string                `json:"sessionId"`
	Lang          domain.Lang           `json:"lang"`
	Items         []domain.LineItemView `json:"items"`
	Summary       domain.Summary        `json:"summary"`
	PromoCode     string                `json:"promoCode,omitempty"`
	Notifications []domain.Notification `json:"notifications"`
}

type UpdateInput struct {
	Actions []UpdateAction `json:"actions"`
}

type UpdateAction struct {
	Action string `json:"action"`
	ItemID int    `json:"itemId,omitempty"`
	Code   string `json:"code,omitempty"`
}

// Action names accepted by Update.
const (
	ActionAddLineItem       = "addLineItem"
	ActionIncrementQuantity = "incrementQuantity"
	ActionDecrementQuantity = "decrementQuantity"
	ActionRemoveLineItem    = "removeLineItem"
	ActionApplyPromoCode    = "applyPromoCode"
)

// Get returns the session's cart, creating it on first use.
func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(nil), nil
}

// Update applies the actions in order. Promo failures are reported as
// notifications; malformed actions and unknown menu items abort the batch.
func (s *Service) Update(ctx context.Context, sessionID string, in UpdateInput) (*View, error) {
	if len(in.Actions) == 0 {
		return nil, fmt.Errorf("%w: actions required", domain.ErrInvalidInput)
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	var notes []domain.Notification
	for _, action := range in.Actions {
		note, err := s.apply(ctx, sess, action)
		if err != nil {
			return nil, err
		}
		if note != nil {
			notes = append(notes, *note)
		}
	}
	return sess.view(notes), nil
}

func (s *Service) AddItem(ctx context.Context, sessionID string, itemID int) (*View, error) {
	return s.Update(ctx, sessionID, UpdateInput{Actions: []UpdateAction{{Action: ActionAddLineItem, ItemID: itemID}}})
}

func (s *Service) Increment(ctx context.Context, sessionID string, itemID int) (*View, error) {
	return s.Update(ctx, sessionID, UpdateInput{Actions: []UpdateAction{{Action: ActionIncrementQuantity, ItemID: itemID}}})
}

func (s *Service) Decrement(ctx context.Context, sessionID string, itemID int) (*View, error) {
	return s.Update(ctx, sessionID, UpdateInput{Actions: []UpdateAction{{Action: ActionDecrementQuantity, ItemID: itemID}}})
}

func (s *Service) Remove(ctx context.Context, sessionID string, itemID int) (*View, error) {
	return s.Update(ctx, sessionID, UpdateInput{Actions: []UpdateAction{{Action: ActionRemoveLineItem, ItemID: itemID}}})
}

func (s *Service) ApplyPromoCode(ctx context.Context, sessionID, code string) (*View, error) {
	return s.Update(ctx, sessionID, UpdateInput{Actions: []UpdateAction{{Action: ActionApplyPromoCode, Code: code}}})
}

func (s *Service) apply(ctx context.Context, sess *session, action UpdateAction) (*domain.Notification, error) {
	lang := sess.sync.Language()
	log := s.logger.WithFields(logrus.Fields{"session": sess.id, "action": action.Action, "item": action.ItemID})

	switch strings.ToLower(strings.TrimSpace(action.Action)) {
	case "addlineitem":
		if action.ItemID <= 0 {
			return nil, fmt.Errorf("%w: itemId required", domain.ErrInvalidInput)
		}
		item, err := s.menu.GetByID(ctx, action.ItemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("menu item %d: %w", action.ItemID, err)
			}
			return nil, err
		}
		sess.store.AddItem(*item)
		log.Info("item added")
		return s.notice(domain.SeveritySuccess, i18n.KeyItemAdded, lang), nil
	case "incrementquantity":
		if action.ItemID <= 0 {
			return nil, fmt.Errorf("%w: itemId required", domain.ErrInvalidInput)
		}
		sess.store.Increment(action.ItemID)
		return nil, nil
	case "decrementquantity":
		if action.ItemID <= 0 {
			return nil, fmt.Errorf("%w: itemId required", domain.ErrInvalidInput)
		}
		sess.store.Decrement(action.ItemID)
		return nil, nil
	case "removelineitem":
		if action.ItemID <= 0 {
			return nil, fmt.Errorf("%w: itemId required", domain.ErrInvalidInput)
		}
		if !sess.store.RemoveItem(action.ItemID) {
			return nil, nil
		}
		log.Info("item removed")
		return s.notice(domain.SeverityInfo, i18n.KeyItemRemoved, lang), nil
	case "applypromocode":
		res, err := sess.store.ApplyPromoCode(action.Code)
		if err != nil {
			reason := cartstore.FailureReason(err)
			if reason == "" {
				log.WithError(err).Error("promo rule evaluation failed")
				return nil, fmt.Errorf("apply promo code: %w", err)
			}
			log.WithField("reason", reason).Info("promo code rejected")
			return s.promoFailure(reason, lang), nil
		}
		log.WithFields(logrus.Fields{"code": res.Code, "amount": res.Amount}).Info("promo code applied")
		n := s.notice(domain.SeveritySuccess, i18n.KeyPromoApplied, lang)
		n.Message = i18n.Format(s.loc, i18n.KeyPromoApplied, lang, money.FormatFCFA(res.Amount))
		return n, nil
	default:
		return nil, fmt.Errorf("%w: unsupported action %q", domain.ErrInvalidInput, action.Action)
	}
}

func (s *Service) promoFailure(reason string, lang domain.Lang) *domain.Notification {
	switch reason {
	case "already_applied":
		return s.notice(domain.SeverityInfo, i18n.KeyPromoAlreadyApplied, lang)
	case "empty":
		return s.notice(domain.SeverityError, i18n.KeyPromoEmpty, lang)
	case "ineligible":
		return s.notice(domain.SeverityError, i18n.KeyPromoIneligible, lang)
	default:
		return s.notice(domain.SeverityError, i18n.KeyPromoInvalid, lang)
	}
}

func (s *Service) notice(sev domain.Severity, key string, lang domain.Lang) *domain.Notification {
	return &domain.Notification{Severity: sev, Key: key, Message: s.loc.Resolve(key, lang)}
}

// Surface returns what the named surface currently shows.
func (s *Service) Surface(ctx context.Context, sessionID, name string) (surface.Snapshot, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return surface.Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch name {
	case surface.NameDropdown:
		return sess.dropdown.Snapshot(), nil
	case surface.NamePage:
		return sess.page.Snapshot(), nil
	default:
		return surface.Snapshot{}, fmt.Errorf("%q: %w", name, domain.ErrUnknownSurface)
	}
}

// OpenSurface mounts the named surface and draws it in full. Opening the page
// closes the dropdown.
func (s *Service) OpenSurface(ctx context.Context, sessionID, name string) (surface.Snapshot, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return surface.Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch name {
	case surface.NameDropdown:
		sess.dropdown.Mount()
		sess.sync.Refresh(sess.dropdown)
		return sess.dropdown.Snapshot(), nil
	case surface.NamePage:
		sess.dropdown.Unmount()
		sess.page.Mount()
		sess.sync.Refresh(sess.page)
		return sess.page.Snapshot(), nil
	default:
		return surface.Snapshot{}, fmt.Errorf("%q: %w", name, domain.ErrUnknownSurface)
	}
}

// CloseSurface unmounts the named surface. Closed surfaces are skipped on redraw.
func (s *Service) CloseSurface(ctx context.Context, sessionID, name string) (surface.Snapshot, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return surface.Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch name {
	case surface.NameDropdown:
		sess.dropdown.Unmount()
		return sess.dropdown.Snapshot(), nil
	case surface.NamePage:
		sess.page.Unmount()
		return sess.page.Snapshot(), nil
	default:
		return surface.Snapshot{}, fmt.Errorf("%q: %w", name, domain.ErrUnknownSurface)
	}
}

// SetLanguage switches the session's display language and redraws open surfaces.
func (s *Service) SetLanguage(ctx context.Context, sessionID string, lang domain.Lang) error {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.sync.SetLanguage(lang)
	return nil
}

func (s *Service) session(ctx context.Context, id string) (*session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: session id required", domain.ErrInvalidInput)
	}

	if sess := s.lookup(id); sess != nil {
		return sess, nil
	}

	// The preference read may hit the database, so it runs without s.mu.
	lang := s.defaultLang
	if s.prefs != nil {
		raw, err := s.prefs.Get(ctx, id, prefrepo.LanguageKey)
		switch {
		case err == nil:
			lang = domain.LangOrDefault(raw, s.defaultLang)
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("load language preference: %w", err)
		}
	}

	store := cartstore.NewStore(s.rules, s.seed())
	dropdown := surface.NewDropdown(s.loc)
	page := surface.NewPage(s.loc)
	fresh := &session{
		id:       id,
		store:    store,
		dropdown: dropdown,
		page:     page,
		sync:     surface.NewSynchronizer(store, lang, s.logger.WithField("session", id), dropdown, page),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request for the same id may have won the race.
	now := s.now()
	if sess, ok := s.live(id, now); ok {
		sess.lastSeen = now
		return sess, nil
	}
	fresh.lastSeen = now
	s.sessions[id] = fresh
	s.sweep(now)
	s.logger.WithFields(logrus.Fields{"session": id, "lang": lang}).Info("session started")
	return fresh, nil
}

// lookup returns the live session for id and refreshes its idle clock.
func (s *Service) lookup(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.live(id, now)
	if !ok {
		return nil
	}
	sess.lastSeen = now
	return sess
}

// live reports the session for id, dropping it if it sat idle past the TTL.
// Callers hold s.mu.
func (s *Service) live(id string, now time.Time) (*session, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if now.Sub(sess.lastSeen) >= s.idleTTL {
		delete(s.sessions, id)
		s.logger.WithField("session", id).Debug("session expired")
		return nil, false
	}
	return sess, true
}

// sweep drops every idle session, at most once per sweep interval.
// Callers hold s.mu.
func (s *Service) sweep(now time.Time) {
	if !s.lastSweep.IsZero() && now.Sub(s.lastSweep) < s.sweepEvery {
		return
	}
	s.lastSweep = now
	s.sweeps++
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.idleTTL {
			delete(s.sessions, id)
			s.logger.WithField("session", id).Debug("session expired")
		}
	}
}

// Sessions reports how many carts are held.
func (s *Service) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (sess *session) view(notes []domain.Notification) *View {
	lang := sess.sync.Language()
	if notes == nil {
		notes = []domain.Notification{}
	}
	return &View{
		SessionID:     sess.id,
		Lang:          lang,
		Items:         sess.store.ListItems(lang),
		Summary:       sess.store.QuerySummary(),
		PromoCode:     sess.store.PromoCode(),
		Notifications: notes,
	}
}
