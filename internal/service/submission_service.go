package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/util"
	"french_assessment_backend/pkg/logger"
	"french_assessment_backend/pkg/monitoring"
	"french_assessment_backend/pkg/tracing"
	"french_assessment_backend/pkg/validator"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ValidationError lists the required fields a submission was missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return util.ErrValidation.Error() + ": missing " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return util.ErrValidation
}

type SubmissionService struct {
	Scoring     *ScoringService
	Respondents RespondentStore
	Timeout     time.Duration

	mu            sync.RWMutex
	targets       map[TargetKind]SubmissionTarget
	defaultTarget TargetKind

	now func() time.Time
}

func NewSubmissionService(scoring *ScoringService, respondents RespondentStore, timeout time.Duration, defaultTarget TargetKind, targets ...SubmissionTarget) *SubmissionService {
	s := &SubmissionService{
		Scoring:       scoring,
		Respondents:   respondents,
		Timeout:       timeout,
		targets:       make(map[TargetKind]SubmissionTarget, len(targets)),
		defaultTarget: defaultTarget,
		now:           time.Now,
	}
	for _, t := range targets {
		s.targets[t.Kind()] = t
	}
	return s
}

// SetDefaultTarget switches the target used when a request names none.
func (s *SubmissionService) SetDefaultTarget(kind TargetKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultTarget = kind
}

// SetTarget installs or replaces a target.
func (s *SubmissionService) SetTarget(t SubmissionTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets[t.Kind()] = t
}

func (s *SubmissionService) target(kind TargetKind) (SubmissionTarget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if kind == "" {
		kind = s.defaultTarget
	}
	t, ok := s.targets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", util.ErrUnknownTarget, kind)
	}
	return t, nil
}

type Session struct {
	SessionID string    `json:"sessionId"`
	StartedAt time.Time `json:"startedAt"`
}

// StartSession opens a questionnaire session; its start time is what
// time_taken_seconds is measured from.
func (s *SubmissionService) StartSession(ctx context.Context) (*Session, error) {
	sess := &Session{SessionID: model.GenerateUUID(), StartedAt: s.now()}
	if err := s.Respondents.StartSession(ctx, sess.SessionID, sess.StartedAt); err != nil {
		return nil, err
	}
	return sess, nil
}

type SubmitResult struct {
	SubmissionID string            `json:"submissionId,omitempty"`
	Framework    model.Framework   `json:"framework"`
	Scores       model.SkillScores `json:"scores"`
	Chart        ChartData         `json:"chart"`
	Target       TargetKind        `json:"target"`
}

// Submit validates the form, scores it, builds the payload and delivers it.
// A non-nil result is returned with every error that happens after scoring,
// so the caller can still show the computed scores.
func (s *SubmissionService) Submit(ctx context.Context, form AssessmentForm, kind TargetKind) (*SubmitResult, error) {
	framework, _ := model.ParseFramework(form.Framework)
	if missing := validator.MissingFields(requiredFields{
		Framework: string(framework),
		Consent:   form.Field(FieldConsent),
	}); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	target, err := s.target(kind)
	if err != nil {
		return nil, err
	}

	if form.SessionID == "" {
		form.SessionID = model.GenerateUUID()
	}

	acquired, err := s.Respondents.Acquire(ctx, form.SessionID, s.Timeout+5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("acquire submission lock: %w", err)
	}
	if !acquired {
		return nil, util.ErrSubmissionInFlight
	}
	defer func() {
		if err := s.Respondents.Release(context.Background(), form.SessionID); err != nil {
			logger.Log.Warn("release submission lock failed", zap.String("session", form.SessionID), zap.Error(err))
		}
	}()

	score, err := s.Scoring.Score(ctx, framework, form.Checked)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{
		Framework: score.Framework,
		Scores:    score.Scores,
		Chart:     score.Chart,
		Target:    target.Kind(),
	}

	now := s.now()
	var elapsed time.Duration
	startedAt, ok, err := s.Respondents.SessionStart(ctx, form.SessionID)
	if err != nil {
		logger.Log.Warn("session lookup failed", zap.String("session", form.SessionID), zap.Error(err))
	} else if ok {
		elapsed = now.Sub(startedAt)
	}

	payload := BuildPayload(form, score, elapsed, now)
	sub, err := NewSubmission(form, score, payload, target.Kind())
	if err != nil {
		return result, fmt.Errorf("build submission: %w", err)
	}
	sub.ID = model.GenerateUUID()
	result.SubmissionID = sub.ID

	if err := s.deliver(ctx, target, sub, payload); err != nil {
		return result, err
	}
	if err := s.Respondents.EndSession(ctx, form.SessionID); err != nil {
		logger.Log.Warn("end session failed", zap.String("session", form.SessionID), zap.Error(err))
	}
	return result, nil
}

func (s *SubmissionService) deliver(ctx context.Context, target SubmissionTarget, sub *model.Submission, p *Payload) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	ctx, span := tracing.StartSpan(ctx, "submission.deliver")
	span.SetAttributes(
		attribute.String("submission.target", string(target.Kind())),
		attribute.String("submission.framework", string(sub.Framework)),
	)
	defer func() { tracing.EndSpan(span, err) }()

	start := time.Now()
	err = target.Deliver(ctx, sub, p)
	monitoring.SubmissionDuration.WithLabelValues(string(target.Kind())).Observe(time.Since(start).Seconds())

	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, util.ErrTransport) {
		err = fmt.Errorf("%w: %v", util.ErrTransport, err)
	}

	outcome := "ok"
	switch {
	case errors.Is(err, util.ErrRejected):
		outcome = "rejected"
	case err != nil:
		outcome = "failed"
	}
	monitoring.SubmissionCounter.WithLabelValues(string(target.Kind()), outcome).Inc()

	if err != nil {
		logger.Log.Error("submission delivery failed",
			zap.String("submission", sub.ID),
			zap.String("target", string(target.Kind())),
			zap.Error(err))
		return err
	}

	logger.Log.Info("submission delivered",
		zap.String("submission", sub.ID),
		zap.String("target", string(target.Kind())),
		zap.String("framework", string(sub.Framework)))
	return nil
}

// List and All back the admin pages; only the local target stores anything.
func (s *SubmissionService) List(ctx context.Context, page, limit int, framework string) ([]model.Submission, int64, error) {
	store, err := s.store()
	if err != nil {
		return nil, 0, err
	}
	if framework != "" {
		f, ok := model.ParseFramework(framework)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", util.ErrUnknownFramework, framework)
		}
		framework = string(f)
	}
	return store.List(ctx, page, limit, framework)
}

func (s *SubmissionService) All(ctx context.Context) ([]model.Submission, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	return store.All(ctx)
}

func (s *SubmissionService) store() (SubmissionStore, error) {
	t, err := s.target(TargetLocalAPI)
	if err != nil {
		return nil, err
	}
	local, ok := t.(*LocalAPITarget)
	if !ok || local.Store == nil {
		return nil, fmt.Errorf("%w: local target has no store", util.ErrUnknownTarget)
	}
	return local.Store, nil
}
