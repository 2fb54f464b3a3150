package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRepo struct{ DB *pgxpool.Pool }

const bookingCols = `id, kind, name, email, phone, gender, dob,
	birth_date, birth_time, birth_place, with_birth_time,
	scheduled_date, scheduled_time, amount, order_id,
	payment_id, payment_signature, status, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.Kind, &b.Name, &b.Email, &b.Phone, &b.Gender, &b.DOB,
		&b.BirthDate, &b.BirthTime, &b.BirthPlace, &b.WithBirthTime,
		&b.ScheduledDate, &b.ScheduledTime, &b.Amount, &b.OrderID,
		&b.PaymentID, &b.PaymentSig, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGRepo) Create(ctx context.Context, b *Booking) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO bookings (id, kind, name, email, phone, gender, dob,
			birth_date, birth_time, birth_place, with_birth_time,
			scheduled_date, scheduled_time, amount, order_id, status,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$17)`,
		b.ID, b.Kind, b.Name, b.Email, b.Phone, b.Gender, b.DOB,
		b.BirthDate, b.BirthTime, b.BirthPlace, b.WithBirthTime,
		b.ScheduledDate, b.ScheduledTime, b.Amount, b.OrderID, b.Status,
		b.CreatedAt,
	)
	if isUniqueViolation(err) {
		// demo slot index: two inserts raced past the point query
		return ErrSlotTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, kind Kind, id string) (*Booking, error) {
	b, err := scanBooking(r.DB.QueryRow(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id=$1 AND kind=$2`, id, kind))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// MarkPaid stores the payment reference and moves the record to its paid
// status in one update.
func (r *PGRepo) MarkPaid(ctx context.Context, kind Kind, id, paymentID, signature string, paid Status) (*Booking, error) {
	b, err := scanBooking(r.DB.QueryRow(ctx, `
		UPDATE bookings
		SET payment_id=$1, payment_signature=$2, status=$3, updated_at=now()
		WHERE id=$4 AND kind=$5
		RETURNING `+bookingCols, paymentID, signature, paid, id, kind))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *PGRepo) UpdateStatus(ctx context.Context, kind Kind, id string, status Status, notes *string) (*Booking, error) {
	var (
		b   *Booking
		err error
	)
	if notes != nil {
		b, err = scanBooking(r.DB.QueryRow(ctx, `
			UPDATE bookings SET status=$1, notes=$2, updated_at=now()
			WHERE id=$3 AND kind=$4
			RETURNING `+bookingCols, status, notes, id, kind))
	} else {
		b, err = scanBooking(r.DB.QueryRow(ctx, `
			UPDATE bookings SET status=$1, updated_at=now()
			WHERE id=$2 AND kind=$3
			RETURNING `+bookingCols, status, id, kind))
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *PGRepo) Delete(ctx context.Context, kind Kind, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM bookings WHERE id=$1 AND kind=$2`, id, kind)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns a page of bookings plus the exact total for the filter.
// Demo bookings order by slot ascending (an upcoming-appointments queue);
// everything else newest first.
func (r *PGRepo) List(ctx context.Context, kind Kind, f ListFilter) ([]Booking, int, error) {
	f.normalize()

	where := []string{"kind=$1"}
	args := []any{kind}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		where = append(where, "status="+arg(f.Status))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		cond := fmt.Sprintf("(name ILIKE %s OR phone ILIKE %s OR email ILIKE %s", p, p, p)
		if kind == KindKundli {
			cond += fmt.Sprintf(" OR birth_place ILIKE %s", p)
		}
		where = append(where, cond+")")
	}
	dateCol := "created_at"
	if kind == KindDemo {
		dateCol = "scheduled_date"
	}
	if f.DateFrom != nil {
		where = append(where, dateCol+">="+arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		where = append(where, dateCol+"<="+arg(*f.DateTo))
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if kind == KindDemo {
		order = "scheduled_date ASC, scheduled_time ASC"
	}
	q := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s ORDER BY %s LIMIT %s OFFSET %s`,
		bookingCols, cond, order, arg(f.Limit), arg((f.Page-1)*f.Limit))

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *b)
	}
	return out, total, rows.Err()
}

// SlotTaken is the point query in front of the demo insert; the partial
// unique index is the real guard against the race.
func (r *PGRepo) SlotTaken(ctx context.Context, date time.Time, timeStr string) (bool, error) {
	var n int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE kind=$1 AND scheduled_date=$2 AND scheduled_time=$3 AND status = ANY($4)`,
		KindDemo, date, timeStr, statusStrings(slotHoldingStatuses)).Scan(&n)
	return n > 0, err
}

func (r *PGRepo) UpcomingDemos(ctx context.Context, from time.Time, limit int) ([]Booking, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.DB.Query(ctx, `
		SELECT `+bookingCols+` FROM bookings
		WHERE kind=$1 AND scheduled_date>=$2 AND status=$3
		ORDER BY scheduled_date ASC, scheduled_time ASC
		LIMIT $4`, KindDemo, truncateDay(from), StatusSubmitted, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountKind(ctx context.Context, kind Kind) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE kind=$1`, kind).Scan(&n)
	return n, err
}

func (r *PGRepo) CountByStatuses(ctx context.Context, kind Kind, statuses []Status) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE kind=$1 AND status = ANY($2)`,
		kind, statusStrings(statuses)).Scan(&n)
	return n, err
}

func (r *PGRepo) CountCreatedBetween(ctx context.Context, kind Kind, from, to time.Time) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE kind=$1 AND created_at>=$2 AND created_at<$3`,
		kind, from, to).Scan(&n)
	return n, err
}

// Revenue sums completed paid bookings, in whole rupees.
func (r *PGRepo) Revenue(ctx context.Context) (int, error) {
	var total int
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM bookings WHERE status=$1`,
		StatusCompleted).Scan(&total)
	return total, err
}

func statusStrings(ss []Status) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
