package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bioscrap/internal/geocoding"
	"bioscrap/internal/metrics"
	"bioscrap/internal/relay"
)

const relayFormBooking = "booking"

// Service is the flow controller behind the HTTP API. Each session is driven
// by one request at a time; the per-session lock is released only around the
// geocoding and relay calls, which are the suspension points of a wizard.
type Service struct {
	repo      SessionRepository
	transport relay.Transport
	geocoder  Geocoder
	validator *StepValidator
	metrics   *metrics.Metrics
	logger    *zap.Logger
	ttl       time.Duration
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type ServiceConfig struct {
	Repo      SessionRepository
	Transport relay.Transport
	Geocoder  Geocoder
	Validator *StepValidator
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	TTL       time.Duration
	Now       func() time.Time
}

func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		repo:      cfg.Repo,
		transport: cfg.Transport,
		geocoder:  cfg.Geocoder,
		validator: cfg.Validator,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		ttl:       cfg.TTL,
		now:       cfg.Now,
		locks:     make(map[string]*sync.Mutex),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.ttl <= 0 {
		s.ttl = 2 * time.Hour
	}
	if s.validator == nil {
		s.validator = NewStepValidator(time.UTC, s.now)
	}
	return s
}

// SessionView is what the client renders for the current step.
type SessionView struct {
	SessionID  string           `json:"session_id"`
	Mode       Mode             `json:"mode"`
	Step       int              `json:"step"`
	TotalSteps int              `json:"total_steps"`
	Current    StepDefinition   `json:"current"`
	Steps      []StepDefinition `json:"steps"`
	Progress   Progress         `json:"progress"`
	CanSubmit  bool             `json:"can_submit"`
	Draft      Draft            `json:"draft"`
	ExpiresAt  time.Time        `json:"expires_at"`
}

func newView(s *Session, w *Wizard) *SessionView {
	return &SessionView{
		SessionID:  s.ID,
		Mode:       w.Mode,
		Step:       w.Step,
		TotalSteps: StepCount(w.Mode),
		Current:    w.Current(),
		Steps:      Steps(w.Mode),
		Progress:   progressFor(w.Mode, w.Step),
		CanSubmit:  w.IsLast(),
		Draft:      w.Draft,
		ExpiresAt:  s.ExpiresAt,
	}
}

func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Service) forget(id string) {
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// load fetches a live session. Expired rows are removed on sight.
func (s *Service) load(ctx context.Context, id string) (*Session, *Wizard, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			s.forget(id)
		}
		return nil, nil, err
	}
	if sess.expired(s.clock()) {
		_ = s.repo.Delete(ctx, id)
		s.forget(id)
		return nil, nil, ErrSessionNotFound
	}
	w, err := sess.wizard()
	if err != nil {
		return nil, nil, err
	}
	return sess, w, nil
}

// loadActive is load plus the check that no submission is running.
func (s *Service) loadActive(ctx context.Context, id string) (*Session, *Wizard, error) {
	sess, w, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sess.Status == StatusSubmitting {
		return nil, nil, ErrSubmissionInProgress
	}
	return sess, w, nil
}

// save writes the wizard back. ExpiresAt is fixed at start so it matches the token.
func (s *Service) save(ctx context.Context, sess *Session, w *Wizard) error {
	if err := sess.store(w); err != nil {
		return err
	}
	return s.repo.Save(ctx, sess)
}

// Start mounts a wizard. In scrap mode the upstream state is checked first and a
// redirect is returned instead of a session when materials or weight are missing.
func (s *Service) Start(ctx context.Context, mode Mode, upstream NavState) (*SessionView, *Navigation, error) {
	if mode == ModeScrap {
		upstream = upstream.Normalize()
		if nav, redirect := GuardScrapWizard(upstream); redirect {
			s.metrics.RecordTransition(string(mode), "mount", "redirect")
			return nil, &nav, nil
		}
	}

	w := NewWizard(mode, NewDraft(mode, upstream))
	now := s.clock()
	sess := &Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Status:    StatusActive,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sess.store(w); err != nil {
		return nil, nil, err
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	s.metrics.RecordTransition(string(mode), "mount", "ok")
	s.logger.Debug("booking session started", zap.String("session_id", sess.ID), zap.String("mode", string(mode)))
	return newView(sess, w), nil, nil
}

func (s *Service) View(ctx context.Context, id string) (*SessionView, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newView(sess, w), nil
}

// UpdateDraft merges edited fields into the draft. The step does not change.
func (s *Service) UpdateDraft(ctx context.Context, id string, p Patch) (*SessionView, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, w, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if errs := w.Draft.apply(p); errs != nil {
		return nil, errs
	}
	if err := s.save(ctx, sess, w); err != nil {
		return nil, err
	}
	return newView(sess, w), nil
}

func (s *Service) Next(ctx context.Context, id string) (*SessionView, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, w, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.Next(s.validator); err != nil {
		s.metrics.RecordTransition(string(w.Mode), "next", "invalid")
		return nil, err
	}
	if err := s.save(ctx, sess, w); err != nil {
		return nil, err
	}
	s.metrics.RecordTransition(string(w.Mode), "next", "ok")
	return newView(sess, w), nil
}

// Prev steps back. Leaving the scrap wizard from its first step discards the
// session and returns the navigation to the weight page.
func (s *Service) Prev(ctx context.Context, id string) (*SessionView, *Navigation, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, w, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if nav := w.Prev(); nav != nil {
		if err := s.discard(ctx, id); err != nil {
			return nil, nil, err
		}
		s.metrics.RecordTransition(string(w.Mode), "prev", "exit")
		return nil, nav, nil
	}
	if err := s.save(ctx, sess, w); err != nil {
		return nil, nil, err
	}
	s.metrics.RecordTransition(string(w.Mode), "prev", "ok")
	return newView(sess, w), nil, nil
}

// Abandon discards the draft when the user leaves the flow.
func (s *Service) Abandon(ctx context.Context, id string) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if _, _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.discard(ctx, id)
}

func (s *Service) discard(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.forget(id)
	return nil
}

// LocationResult is the session after a map interaction plus, for searches, the candidates.
type LocationResult struct {
	Session *SessionView      `json:"session"`
	Places  []geocoding.Place `json:"places,omitempty"`
	Applied bool              `json:"applied"`
}

// SetPin records a map click or marker drag. The coordinates are stored at once;
// the reverse-geocoded address is written only if no later location update
// arrived while the lookup was running.
func (s *Service) SetPin(ctx context.Context, id string, lat, lng float64) (*LocationResult, error) {
	seq, err := s.beginLocation(ctx, id, func(b *Base) { b.setCoordinates(lat, lng) })
	if err != nil {
		return nil, err
	}

	address := ""
	if s.geocoder != nil {
		address = s.geocoder.Reverse(ctx, lat, lng)
	}
	s.metrics.RecordGeocode("reverse", outcome(address != ""))

	return s.finishLocation(ctx, id, seq, nil, func(b *Base) {
		b.setCoordinates(lat, lng)
		if address != "" {
			b.Address = address
		}
	})
}

// SearchLocation forward-geocodes a query and accepts the first candidate.
func (s *Service) SearchLocation(ctx context.Context, id, query string) (*LocationResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, FieldErrors{"query": "Please enter an address or place to search"}
	}

	seq, err := s.beginLocation(ctx, id, nil)
	if err != nil {
		return nil, err
	}

	var places []geocoding.Place
	if s.geocoder != nil {
		places = s.geocoder.Search(ctx, query)
	}
	s.metrics.RecordGeocode("search", outcome(len(places) > 0))

	if len(places) == 0 {
		return s.finishLocation(ctx, id, seq, places, nil)
	}
	first := places[0]
	return s.finishLocation(ctx, id, seq, places, func(b *Base) {
		b.setCoordinates(first.Lat, first.Lng)
		if first.DisplayName != "" {
			b.Address = first.DisplayName
		}
	})
}

// beginLocation claims a new location sequence number for the session.
func (s *Service) beginLocation(ctx context.Context, id string, mutate func(*Base)) (int64, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, w, err := s.loadActive(ctx, id)
	if err != nil {
		return 0, err
	}
	sess.LocationSeq++
	if mutate != nil {
		mutate(w.Draft.Common())
	}
	if err := s.save(ctx, sess, w); err != nil {
		return 0, err
	}
	return sess.LocationSeq, nil
}

// finishLocation applies a lookup result unless it has been superseded.
func (s *Service) finishLocation(ctx context.Context, id string, seq int64, places []geocoding.Place, mutate func(*Base)) (*LocationResult, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	res := &LocationResult{Places: places}
	if sess.LocationSeq != seq || sess.Status != StatusActive || mutate == nil {
		if sess.LocationSeq != seq {
			s.logger.Debug("stale location result dropped", zap.String("session_id", id), zap.Int64("seq", seq))
		}
		res.Session = newView(sess, w)
		return res, nil
	}

	mutate(w.Draft.Common())
	if err := s.save(ctx, sess, w); err != nil {
		return nil, err
	}
	res.Session = newView(sess, w)
	res.Applied = true
	return res, nil
}

// Submit hands the draft to the relay. On failure the session stays on the final
// step and may be submitted again; on success it is removed and the confirmation
// carries the only remaining copy of the draft.
func (s *Service) Submit(ctx context.Context, id string) (*Confirmation, error) {
	sess, w, err := s.beginSubmit(ctx, id)
	if err != nil {
		return nil, err
	}

	form := BuildForm(w.Draft, s.clock())
	sendErr := s.transport.Submit(ctx, form)

	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if sendErr != nil {
		s.metrics.RecordSubmission(relayFormBooking, "failed")
		s.logger.Warn("booking submission failed",
			zap.String("session_id", id),
			zap.String("mode", string(w.Mode)),
			zap.Error(sendErr),
		)
		sess.Status = StatusActive
		if err := s.save(ctx, sess, w); err != nil && !errors.Is(err, ErrSessionNotFound) {
			s.logger.Error("failed to reopen session after submission failure", zap.String("session_id", id), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, sendErr)
	}

	s.metrics.RecordSubmission(relayFormBooking, "ok")
	s.metrics.RecordTransition(string(w.Mode), "submit", "ok")
	if err := s.discard(ctx, id); err != nil {
		s.logger.Error("failed to remove submitted session", zap.String("session_id", id), zap.Error(err))
	}
	s.logger.Info("booking submitted", zap.String("session_id", id), zap.String("mode", string(w.Mode)))
	return newConfirmation(w.Draft), nil
}

func (s *Service) beginSubmit(ctx context.Context, id string) (*Session, *Wizard, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, w, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := w.CheckSubmit(s.validator); err != nil {
		s.metrics.RecordTransition(string(w.Mode), "submit", "invalid")
		return nil, nil, err
	}
	sess.Status = StatusSubmitting
	if err := s.save(ctx, sess, w); err != nil {
		return nil, nil, err
	}
	return sess, w, nil
}

// PurgeExpired removes sessions whose TTL has passed, then drops the locks of
// every session that no longer has a row, including rows removed by another process.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.clock())
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	if err := s.pruneLocks(ctx); err != nil {
		s.logger.Warn("session lock prune failed", zap.Error(err))
	}
	return n, nil
}

// pruneLocks forgets locks of vanished sessions. A session id never comes back
// once its row is gone, so a lock nobody holds can be dropped safely.
func (s *Service) pruneLocks(ctx context.Context) error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.locks))
	for id := range s.locks {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	if len(ids) == 0 {
		return nil
	}

	live, err := s.repo.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	alive := make(map[string]bool, len(live))
	for _, id := range live {
		alive[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		l, ok := s.locks[id]
		if !ok || alive[id] {
			continue
		}
		if l.TryLock() {
			delete(s.locks, id)
			l.Unlock()
		}
	}
	return nil
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "empty"
}
