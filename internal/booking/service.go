package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const currencyINR = "INR"

type Repo interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, kind Kind, id string) (*Booking, error)
	MarkPaid(ctx context.Context, kind Kind, id, paymentID, signature string, paid Status) (*Booking, error)
	UpdateStatus(ctx context.Context, kind Kind, id string, status Status, notes *string) (*Booking, error)
	Delete(ctx context.Context, kind Kind, id string) error
	List(ctx context.Context, kind Kind, f ListFilter) ([]Booking, int, error)
	SlotTaken(ctx context.Context, date time.Time, timeStr string) (bool, error)
	UpcomingDemos(ctx context.Context, from time.Time, limit int) ([]Booking, error)
	CountKind(ctx context.Context, kind Kind) (int, error)
	CountByStatuses(ctx context.Context, kind Kind, statuses []Status) (int, error)
	CountCreatedBetween(ctx context.Context, kind Kind, from, to time.Time) (int, error)
	Revenue(ctx context.Context) (int, error)
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int, currency, receipt string) (orderID string, err error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// SlotLocker is a short-lived hold on a demo slot while the insert runs.
// The partial unique index remains the authoritative guard.
type SlotLocker interface {
	AcquireSlot(ctx context.Context, date, timeStr string) (bool, error)
	ReleaseSlot(ctx context.Context, date, timeStr string)
}

type Publisher interface {
	Publish(key, value []byte)
}

// Service is the generic lifecycle engine, instantiated per request with a
// kind; all kind differences live in the KindConfig table.
type Service struct {
	repo     Repo
	gw       PaymentGateway
	slots    SlotLocker
	events   Publisher
	log      *zap.Logger
	strict   bool
	producer string
	now      func() time.Time
}

type ServiceConfig struct {
	Slots             SlotLocker
	Events            Publisher
	Logger            *zap.Logger
	StrictTransitions bool
	ServiceName       string
}

func NewService(repo Repo, gw PaymentGateway, cfg ServiceConfig) *Service {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		gw:       gw,
		slots:    cfg.Slots,
		events:   cfg.Events,
		log:      cfg.Logger,
		strict:   cfg.StrictTransitions,
		producer: cfg.ServiceName,
		now:      time.Now,
	}
}

type CreateResult struct {
	Booking     *Booking
	OrderID     string
	AmountMinor int
	Currency    string
}

// Create runs validate -> (demo) slot check -> gateway order -> persist.
// The gateway call happens before the insert, so a failed insert leaves an
// orphaned order at the gateway; it is logged for manual reconciliation.
func (s *Service) Create(ctx context.Context, kind Kind, in CreateInput) (*CreateResult, error) {
	cfg, ok := ConfigFor(kind)
	if !ok {
		return nil, ErrUnknownKind
	}
	now := s.now()

	b, err := Validate(kind, cfg, in, now)
	if err != nil {
		return nil, err
	}

	if kind == KindDemo {
		date, timeStr := b.ScheduledDate.Format(dateLayout), *b.ScheduledTime
		if s.slots != nil {
			held, err := s.slots.AcquireSlot(ctx, date, timeStr)
			if err != nil {
				s.log.Warn("slot hold unavailable, relying on unique index", zap.Error(err))
			} else if !held {
				return nil, ErrSlotTaken
			} else {
				defer s.slots.ReleaseSlot(context.WithoutCancel(ctx), date, timeStr)
			}
		}
		taken, err := s.repo.SlotTaken(ctx, *b.ScheduledDate, timeStr)
		if err != nil {
			return nil, fmt.Errorf("check slot: %w", err)
		}
		if taken {
			return nil, ErrSlotTaken
		}
	}

	b.ID = uuid.NewString()
	b.Amount = cfg.Amount
	b.Status = cfg.InitialStatus
	b.CreatedAt = now
	b.UpdatedAt = now

	res := &CreateResult{Booking: b}
	if cfg.RequiresPayment {
		res.AmountMinor = cfg.Amount * 100
		res.Currency = currencyINR
		receipt := fmt.Sprintf("%s_%d", cfg.ReceiptPrefix, now.UnixMilli())
		orderID, err := s.gw.CreateOrder(ctx, res.AmountMinor, currencyINR, receipt)
		if err != nil {
			return nil, fmt.Errorf("%w: create order: %v", ErrUpstream, err)
		}
		b.OrderID = &orderID
		res.OrderID = orderID
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if b.OrderID != nil {
			s.log.Error("insert failed after gateway order creation, reconcile manually",
				zap.String("kind", string(kind)),
				zap.String("order_id", *b.OrderID),
				zap.Error(err))
		}
		if errors.Is(err, ErrSlotTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	s.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("kind", string(kind)),
		zap.String("status", string(b.Status)))

	s.publish(EventBookingCreated, b.ID, BookingCreatedPayload{
		BookingID: b.ID,
		Kind:      kind,
		Status:    b.Status,
		Amount:    b.Amount,
		OrderID:   res.OrderID,
	})
	return res, nil
}

// Verify recomputes the gateway signature and, on match, stores the payment
// reference and moves the record to its paid status in one update.
// Re-verifying an already-paid record is a no-op success.
func (s *Service) Verify(ctx context.Context, kind Kind, id, orderID, paymentID, signature string) (*Booking, error) {
	cfg, ok := ConfigFor(kind)
	if !ok || !cfg.RequiresPayment {
		return nil, ErrNotFound
	}

	b, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if b.Verified() {
		return b, nil
	}
	if b.Status != cfg.InitialStatus {
		// Cancelled or admin-progressed records only move through the
		// status endpoint; a late gateway callback must not revive them.
		return nil, ErrForbiddenTransition
	}
	if b.OrderID == nil || *b.OrderID != orderID {
		return nil, ErrSignatureMismatch
	}
	if !s.gw.VerifySignature(orderID, paymentID, signature) {
		return nil, ErrSignatureMismatch
	}

	updated, err := s.repo.MarkPaid(ctx, kind, id, paymentID, signature, cfg.PaidStatus)
	if err != nil {
		return nil, err
	}

	s.log.Info("payment verified",
		zap.String("booking_id", id),
		zap.String("kind", string(kind)))

	s.publish(EventPaymentVerified, id, PaymentVerifiedPayload{
		BookingID: id,
		Kind:      kind,
		PaymentID: paymentID,
		Status:    updated.Status,
	})
	return updated, nil
}

func (s *Service) Get(ctx context.Context, kind Kind, id string) (*Booking, error) {
	if _, ok := ConfigFor(kind); !ok {
		return nil, ErrUnknownKind
	}
	return s.repo.GetByID(ctx, kind, id)
}

// UpdateStatus accepts any member of the kind's status set; in strict mode
// the per-kind transition table is enforced as well.
func (s *Service) UpdateStatus(ctx context.Context, kind Kind, id string, status Status, notes *string) (*Booking, error) {
	if _, ok := ConfigFor(kind); !ok {
		return nil, ErrUnknownKind
	}
	if !ValidStatus(kind, status) {
		return nil, ErrInvalidStatus
	}

	cur, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if s.strict && cur.Status != status && !CanTransition(kind, cur.Status, status) {
		return nil, ErrForbiddenTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, kind, id, status, notes)
	if err != nil {
		return nil, err
	}

	if cur.Status != status {
		s.publish(EventStatusChanged, id, StatusChangedPayload{
			BookingID: id,
			Kind:      kind,
			From:      cur.Status,
			To:        status,
		})
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, kind Kind, id string) error {
	if _, ok := ConfigFor(kind); !ok {
		return ErrUnknownKind
	}
	return s.repo.Delete(ctx, kind, id)
}

func (s *Service) List(ctx context.Context, kind Kind, f ListFilter) ([]Booking, *Pagination, error) {
	if _, ok := ConfigFor(kind); !ok {
		return nil, nil, ErrUnknownKind
	}
	f.normalize()
	items, total, err := s.repo.List(ctx, kind, f)
	if err != nil {
		return nil, nil, err
	}
	pages := (total + f.Limit - 1) / f.Limit
	return items, &Pagination{Page: f.Page, Limit: f.Limit, Total: total, Pages: pages}, nil
}

func (s *Service) UpcomingDemos(ctx context.Context, limit int) ([]Booking, error) {
	return s.repo.UpcomingDemos(ctx, s.now(), limit)
}

type Stats struct {
	Total struct {
		Consultations  int `json:"consultations"`
		DemoBookings   int `json:"demoBookings"`
		KundliRequests int `json:"kundliRequests"`
		Revenue        int `json:"revenue"`
	} `json:"total"`
	Pending struct {
		Consultations int `json:"consultations"`
		Demos         int `json:"demos"`
		Kundli        int `json:"kundli"`
	} `json:"pending"`
	Today struct {
		Consultations int `json:"consultations"`
		Demos         int `json:"demos"`
		Kundli        int `json:"kundli"`
	} `json:"today"`
}

var pendingStatuses = map[Kind][]Status{
	KindConsultation: {StatusPaymentPending, StatusReceived},
	KindKundli:       {StatusPaymentPending, StatusSubmitted},
	KindDemo:         {StatusSubmitted},
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var (
		st  Stats
		err error
	)
	if st.Total.Consultations, err = s.repo.CountKind(ctx, KindConsultation); err != nil {
		return nil, err
	}
	if st.Total.DemoBookings, err = s.repo.CountKind(ctx, KindDemo); err != nil {
		return nil, err
	}
	if st.Total.KundliRequests, err = s.repo.CountKind(ctx, KindKundli); err != nil {
		return nil, err
	}
	if st.Total.Revenue, err = s.repo.Revenue(ctx); err != nil {
		return nil, err
	}

	if st.Pending.Consultations, err = s.repo.CountByStatuses(ctx, KindConsultation, pendingStatuses[KindConsultation]); err != nil {
		return nil, err
	}
	if st.Pending.Demos, err = s.repo.CountByStatuses(ctx, KindDemo, pendingStatuses[KindDemo]); err != nil {
		return nil, err
	}
	if st.Pending.Kundli, err = s.repo.CountByStatuses(ctx, KindKundli, pendingStatuses[KindKundli]); err != nil {
		return nil, err
	}

	dayStart := truncateDay(s.now())
	dayEnd := dayStart.AddDate(0, 0, 1)
	if st.Today.Consultations, err = s.repo.CountCreatedBetween(ctx, KindConsultation, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if st.Today.Demos, err = s.repo.CountCreatedBetween(ctx, KindDemo, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if st.Today.Kundli, err = s.repo.CountCreatedBetween(ctx, KindKundli, dayStart, dayEnd); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) publish(eventType, bookingID string, payload any) {
	if s.events == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    s.now().UTC(),
		Producer:      s.producer,
		CorrelationID: bookingID,
		Payload:       data,
	}
	val, err := json.Marshal(env)
	if err != nil {
		return
	}
	s.events.Publish(PartitionKey(bookingID), val)
}
