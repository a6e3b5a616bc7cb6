package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

var tracer = otel.Tracer("github.com/jascaniojs/parking-business-api/internal/service")

const publishTimeout = 5 * time.Second

// EventPublisher receives occupancy changes after they are committed.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OccupancyEvent) error
}

type ParkingService struct {
	store     repository.Store
	allocator Allocator
	pricing   PriceLookup
	events    EventPublisher
	now       func() time.Time
	newID     func() string
}

type Option func(*ParkingService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *ParkingService) { s.now = now }
}

func WithEventPublisher(p EventPublisher) Option {
	return func(s *ParkingService) { s.events = p }
}

func NewParkingService(store repository.Store, opts ...Option) *ParkingService {
	s := &ParkingService{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckIn allocates a space and opens a session in one transaction.
func (s *ParkingService) CheckIn(ctx context.Context, dto domain.CheckInDTO) (*domain.CheckInResult, error) {
	ctx, span := tracer.Start(ctx, "ParkingService.CheckIn", trace.WithAttributes(
		attribute.Int("building.id", dto.BuildingID),
		attribute.String("vehicle.type", dto.VehicleType),
	))
	defer span.End()

	vt, err := domain.ParseVehicleType(dto.VehicleType)
	if err != nil {
		return nil, fail(span, err)
	}
	if dto.BuildingID <= 0 {
		return nil, fail(span, fmt.Errorf("%w: building_id must be positive", ErrValidation))
	}
	if dto.IsResident == nil {
		return nil, fail(span, fmt.Errorf("%w: is_resident is required", ErrValidation))
	}
	isResident := *dto.IsResident

	var session *domain.ParkingSession
	var space *domain.ParkingSpace
	err = s.store.WithTx(ctx, func(r repository.Repos) error {
		reserved, err := s.allocator.Reserve(ctx, r.Spaces(), dto.BuildingID, vt, isResident)
		if err != nil {
			return err
		}

		rate := decimal.Zero
		if !isResident {
			if rate, err = s.pricing.GetRate(ctx, r.Prices(), dto.BuildingID, vt); err != nil {
				return err
			}
		}

		opened, err := domain.NewParkingSession(reserved.ID, vt, isResident, rate, s.now())
		if err != nil {
			return err
		}
		opened.ID = s.newID()
		if _, err := r.Sessions().Create(ctx, opened); err != nil {
			return err
		}
		if err := s.allocator.Occupy(ctx, r.Spaces(), reserved, opened.ID); err != nil {
			return err
		}
		session, space = opened, reserved
		return nil
	})
	if err != nil {
		if !KindOf(err).ClientCorrectable() {
			log.Printf("ParkingService: check-in failed for building %d: %v", dto.BuildingID, err)
		}
		return nil, fail(span, err)
	}

	span.SetAttributes(attribute.String("session.id", session.ID), attribute.Int("space.id", space.ID))
	s.publish(ctx, domain.EventCheckIn, session, space)
	return &domain.CheckInResult{ParkingSessionID: session.ID, ParkingSpaceID: space.ID}, nil
}

// CheckOut closes an active session, bills it and frees its space in one
// transaction. The session row stays locked until commit so a concurrent
// second check-out sees it finished.
func (s *ParkingService) CheckOut(ctx context.Context, dto domain.CheckOutDTO) (*domain.CheckOutResult, error) {
	ctx, span := tracer.Start(ctx, "ParkingService.CheckOut", trace.WithAttributes(
		attribute.String("session.id", dto.ParkingSessionID),
	))
	defer span.End()

	if dto.IsResident == nil {
		return nil, fail(span, fmt.Errorf("%w: is_resident is required", ErrValidation))
	}
	if _, err := uuid.Parse(dto.ParkingSessionID); err != nil {
		return nil, fail(span, ErrSessionNotFound)
	}
	isResident := *dto.IsResident

	var session *domain.ParkingSession
	var space *domain.ParkingSpace
	err := s.store.WithTx(ctx, func(r repository.Repos) error {
		found, err := r.Sessions().FindByIDForUpdate(ctx, dto.ParkingSessionID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		if !found.IsActive() {
			return ErrSessionAlreadyFinished
		}
		if found.IsResident != isResident {
			return fmt.Errorf("%w. Session is %s", ErrResidencyMismatch, residency(found.IsResident))
		}

		occupied, err := r.Spaces().FindByID(ctx, found.ParkingSpaceID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSpaceNotFound
		}
		if err != nil {
			return err
		}

		if err := found.CheckOut(s.now()); err != nil {
			if errors.Is(err, domain.ErrNotActive) {
				return ErrSessionAlreadyFinished
			}
			return err
		}
		if _, err := r.Sessions().Update(ctx, found); err != nil {
			return err
		}
		if err := s.allocator.Release(ctx, r.Spaces(), occupied); err != nil {
			return err
		}
		session, space = found, occupied
		return nil
	})
	if err != nil {
		if !KindOf(err).ClientCorrectable() {
			log.Printf("ParkingService: check-out failed for session %s: %v", dto.ParkingSessionID, err)
		}
		return nil, fail(span, err)
	}

	s.publish(ctx, domain.EventCheckOut, session, space)
	return &domain.CheckOutResult{
		DurationHours:    session.DurationHours(session.CheckOutAt.Time),
		ParkingSpaceID:   session.ParkingSpaceID,
		CalculatedCharge: session.CalculatedCharge.Decimal,
		RatePerHour:      session.RatePerHour,
	}, nil
}

// GetHistory pages completed non-resident sessions, newest check-out first.
func (s *ParkingService) GetHistory(ctx context.Context, q domain.HistoryQuery) (*domain.HistoryPage, error) {
	ctx, span := tracer.Start(ctx, "ParkingService.GetHistory")
	defer span.End()

	q.Normalize()
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		return nil, fail(span, fmt.Errorf("%w: start_date must not be after end_date", ErrValidation))
	}

	sessions, total, err := s.store.Sessions().FindCompleted(ctx, q)
	if err != nil {
		log.Printf("ParkingService: history query failed: %v", err)
		return nil, fail(span, err)
	}

	page := &domain.HistoryPage{
		Data:       make([]domain.HistoryEntry, 0, len(sessions)),
		Pagination: domain.NewPagination(q.Page, q.Limit, total),
	}
	for _, session := range sessions {
		entry, err := domain.NewHistoryEntry(session)
		if err != nil {
			return nil, fail(span, err)
		}
		page.Data = append(page.Data, entry)
	}
	return page, nil
}

func (s *ParkingService) publish(ctx context.Context, typ domain.OccupancyEventType, session *domain.ParkingSession, space *domain.ParkingSpace) {
	if s.events == nil {
		return
	}
	event := domain.OccupancyEvent{
		Type:           typ,
		SessionID:      session.ID,
		ParkingSpaceID: space.ID,
		BuildingID:     space.BuildingID,
		Floor:          space.Floor,
		Number:         space.Number,
		VehicleType:    session.VehicleType,
		IsResident:     session.IsResident,
		OccurredAt:     session.CheckInAt,
	}
	if typ == domain.EventCheckOut {
		charge := session.CalculatedCharge.Decimal
		event.Charge = &charge
		event.OccurredAt = session.CheckOutAt.Time
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("ParkingService: publishing %s event for session %s failed: %v", typ, session.ID, err)
	}
}

func residency(isResident bool) string {
	if isResident {
		return "for residents"
	}
	return "for non-residents"
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, KindOf(err).String())
	return err
}
