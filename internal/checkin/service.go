// Package checkin implements the attendance confirmation flow: roster
// lookup, time-window policy, duplicate check and the single remote append.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"checkin/internal/platform/metrics"
	"checkin/internal/roster"
	"checkin/internal/window"
	dErrors "checkin/pkg/domain-errors"
	"checkin/pkg/platform/sentinel"
	"checkin/pkg/requestcontext"
)

// Snapshot is one coherent view of the remote store: the roster index plus
// the per-day check-in tables, built together by a refresh cycle and swapped
// in atomically. Requests never see a partially rebuilt snapshot.
type Snapshot struct {
	Roster  *roster.Index
	Days    map[string]*DayTable
	BuiltAt time.Time
}

// SnapshotSource yields the current snapshot. It returns nil until the first
// successful build completes.
type SnapshotSource interface {
	Current() *Snapshot
}

// Confirmation is the successful check-in result.
type Confirmation struct {
	Inscricao string
	Nome      string
	Dia       string
	Data      string
	Hora      string
}

var cpfPattern = regexp.MustCompile(`^[0-9]{11}$`)

// Service orchestrates one confirmation request.
type Service struct {
	snapshots SnapshotSource
	days      []window.DayWindow
	loc       *time.Location
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewService wires the confirmation service.
func NewService(snapshots SnapshotSource, days []window.DayWindow, loc *time.Location, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		snapshots: snapshots,
		days:      days,
		loc:       loc,
		logger:    logger,
		metrics:   m,
	}
}

// Confirm runs the request lifecycle. Every non-success terminal outcome is
// either a *Rejection (user-facing, structured) or a coded domain error.
func (s *Service) Confirm(ctx context.Context, cpf string) (*Confirmation, error) {
	if !cpfPattern.MatchString(cpf) {
		return nil, s.reject(&Rejection{Kind: KindInvalidCPF})
	}

	snap := s.snapshots.Current()
	if snap == nil {
		s.metrics.IncrementOutcome("service_not_ready")
		return nil, dErrors.New(dErrors.CodeNotReady, "Serviço inicializando. Tente novamente em instantes.")
	}

	// Registration check precedes the window check: an unknown CPF is "not
	// registered" at any time of day.
	rec, ok := snap.Roster.Lookup(cpf)
	if !ok {
		return nil, s.reject(&Rejection{Kind: KindNotRegistered})
	}
	if rec.RegistrationNumber == "" {
		return nil, s.reject(&Rejection{Kind: KindNoRegistration, Nome: rec.DisplayName})
	}

	now := requestcontext.Now(ctx).In(s.loc)
	res := window.Classify(now, s.days)
	switch res.Status {
	case window.StatusBefore:
		hours, minutes := window.Countdown(now, res.Next.Start)
		return nil, s.reject(&Rejection{
			Kind:       KindWaiting,
			Nome:       rec.DisplayName,
			ProximoDia: res.Next.Label,
			LabelDia:   res.Next.Human,
			Horas:      fmt.Sprintf("%02d", hours),
			Minutos:    fmt.Sprintf("%02d", minutes),
		})
	case window.StatusAfter:
		return nil, s.reject(&Rejection{Kind: KindClosed})
	case window.StatusOpen:
		// fall through to the duplicate check
	default:
		return nil, s.reject(&Rejection{Kind: KindOutsideWindow})
	}

	dayTable := snap.Days[res.Day.Label]
	if dayTable == nil || !dayTable.Resolved() {
		s.metrics.IncrementOutcome("misconfigured_day_table")
		s.logger.ErrorContext(ctx, "day table unavailable for open window",
			"request_id", requestcontext.RequestID(ctx),
			"day", res.Day.Label,
		)
		return nil, dErrors.New(dErrors.CodeMisconfigured, "Planilha do dia não configurada corretamente.")
	}

	record := Record{
		Registration: rec.RegistrationNumber,
		Name:         rec.DisplayName,
		Date:         now.Format("02/01/2006"),
		Time:         now.Format("15:04:05"),
	}
	entry, created, err := dayTable.Confirm(ctx, record)
	if err != nil {
		if errors.Is(err, sentinel.ErrRateLimited) {
			s.metrics.IncrementOutcome("service_busy")
			return nil, dErrors.Wrap(dErrors.CodeBusy, "Serviço temporariamente sobrecarregado. Tente novamente.", err)
		}
		s.metrics.IncrementOutcome("internal_error")
		s.logger.ErrorContext(ctx, "remote append failed",
			"request_id", requestcontext.RequestID(ctx),
			"day", res.Day.Label,
			"error", err,
		)
		return nil, dErrors.Wrap(dErrors.CodeInternal, "append check-in record", err)
	}
	if !created {
		return nil, s.reject(&Rejection{
			Kind:      KindAlreadyConfirmed,
			Nome:      rec.DisplayName,
			Inscricao: rec.RegistrationNumber,
			Dia:       res.Day.Label,
			Data:      entry.Data,
			Hora:      entry.Hora,
		})
	}

	s.metrics.IncrementOutcome("confirmed")
	s.logger.InfoContext(ctx, "check-in confirmed",
		"request_id", requestcontext.RequestID(ctx),
		"inscricao", rec.RegistrationNumber,
		"day", res.Day.Label,
	)
	return &Confirmation{
		Inscricao: rec.RegistrationNumber,
		Nome:      rec.DisplayName,
		Dia:       res.Day.Label,
		Data:      record.Date,
		Hora:      record.Time,
	}, nil
}

func (s *Service) reject(r *Rejection) error {
	s.metrics.IncrementOutcome(string(r.Kind))
	return r
}
