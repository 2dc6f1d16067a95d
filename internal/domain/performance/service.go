package performance

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"perftrack/internal/platform/querier"
	"perftrack/internal/requestctx"
)

const (
	opListEmployees = "list_employees"
	opAddGoal       = "add_goal"
	opListGoals     = "list_goals"
	opUpdateGoal    = "update_goal"
	opDeleteGoal    = "delete_goal"
	opAddFeedback   = "add_feedback"
	opListFeedback  = "list_feedback"
	opInsights      = "insights"
)

// Connector hands out one connection per operation. *db.DB implements it.
type Connector interface {
	Acquire(ctx context.Context) (*sql.Conn, error)
}

type OperationRecorder interface {
	RecordOperation(op string, ok bool)
}

// Service is the data-access surface used by the presentation layer. Its
// operations never return errors: failures are logged and reported in-band as
// an empty result, false, or zero-filled insights.
type Service struct {
	connector Connector
	store     StoreAPI
	logger    *slog.Logger
	recorder  OperationRecorder
	now       func() time.Time
	newID     func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRecorder(recorder OperationRecorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// WithClock replaces the clock used for created_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(connector Connector, store StoreAPI, opts ...Option) *Service {
	s := &Service{
		connector: connector,
		store:     store,
		logger:    slog.Default(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) acquire(ctx context.Context) (*sql.Conn, error) {
	if s.connector == nil {
		return nil, ErrNoConnector
	}
	return s.connector.Acquire(ctx)
}

// read runs fn on a freshly acquired connection and releases it afterwards.
func (s *Service) read(ctx context.Context, fn func(q querier.Querier) error) error {
	conn, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer s.release(conn)
	return fn(conn)
}

// write runs fn inside a transaction on a freshly acquired connection. Any
// error rolls the transaction back.
func (s *Service) write(ctx context.Context, fn func(q querier.Querier) error) error {
	conn, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer s.release(conn)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Warn("rollback failed", "err", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (s *Service) release(conn *sql.Conn) {
	if err := conn.Close(); err != nil {
		s.logger.Warn("connection release failed", "err", err)
	}
}

// finish logs and records the outcome of op and reports whether it succeeded.
func (s *Service) finish(ctx context.Context, op string, err error, attrs ...any) bool {
	ok := err == nil
	if s.recorder != nil {
		s.recorder.RecordOperation(op, ok)
	}
	if !ok {
		if reqID := requestctx.GetRequestID(ctx); reqID != "" {
			attrs = append(attrs, "requestId", reqID)
		}
		s.logger.Warn(op+" failed", append(attrs, "err", err)...)
	}
	return ok
}
