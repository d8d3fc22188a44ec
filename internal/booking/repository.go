package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxTxRetries bounds the internal retries of the conflict transaction when
// concurrent writers trip serializable isolation.
const maxTxRetries = 2

type Repository interface {
	// CreateAtomic performs the conflict check and write as one atomic unit:
	// it locks all blocking bookings overlapping the requested interval, and
	// then either fails with ErrTimeConflict (override=false and overlaps
	// exist), displaces every overlapping booking to OVERRIDDEN (override=true),
	// or simply inserts. Either all displacements and the insert commit, or
	// none do. The displaced bookings are returned with their updated status.
	CreateAtomic(ctx context.Context, b *Booking, override bool) (displaced []*Booking, err error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	ListForUser(ctx context.Context, userID string) ([]*Booking, error)
	ListAll(ctx context.Context) ([]*Booking, error)

	// ListBlocking returns the PENDING and APPROVED bookings for a resource
	// and date, for slot availability computation.
	ListBlocking(ctx context.Context, resourceID string, date time.Time) ([]*Booking, error)

	// CountBlockingForUser counts a user's PENDING and APPROVED bookings on a
	// date across all resources (student daily quota).
	CountBlockingForUser(ctx context.Context, userID string, date time.Time) (int, error)

	// Transition moves a booking from one status to another, guarded so a
	// stale transition fails with ErrInvalidState rather than clobbering a
	// concurrent one. reason, if non-nil, is stored as the rejection reason.
	Transition(ctx context.Context, id string, from, to Status, reason *string) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// joinedColumns selects booking fields plus denormalized display names.
var joinedColumns = []string{
	"b.id", "b.resource_id", "r.name", "b.user_id", "u.name", "b.user_role",
	"b.booking_date", "b.start_min", "b.end_min", "b.purpose",
	"b.status", "b.emergency_override", "b.rejection_reason", "b.created_at",
}

func scanJoined(row pgx.Row) (*Booking, error) {
	var b Booking
	var startMin, endMin int
	if err := row.Scan(
		&b.ID, &b.ResourceID, &b.ResourceName, &b.UserID, &b.UserName, &b.UserRole,
		&b.BookingDate, &startMin, &endMin, &b.Purpose,
		&b.Status, &b.EmergencyOverride, &b.RejectionReason, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.StartTime = TimeOfDay(startMin)
	b.EndTime = TimeOfDay(endMin)
	return &b, nil
}

func (r *pgxRepository) CreateAtomic(ctx context.Context, b *Booking, override bool) ([]*Booking, error) {
	var displaced []*Booking
	var err error
	for attempt := 0; ; attempt++ {
		displaced, err = r.tryCreateAtomic(ctx, b, override)
		if err != nil && isSerializationFailure(err) && attempt < maxTxRetries {
			continue
		}
		return displaced, err
	}
}

func (r *pgxRepository) tryCreateAtomic(ctx context.Context, b *Booking, override bool) ([]*Booking, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("begin booking transaction failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock every blocking booking overlapping the requested interval.
	query, args, err := psql.Select(
		"id", "resource_id", "user_id", "user_role", "booking_date",
		"start_min", "end_min", "purpose", "status", "emergency_override", "created_at",
	).
		From("public.bookings").
		Where(squirrel.Eq{"resource_id": b.ResourceID}).
		Where(squirrel.Eq{"booking_date": b.BookingDate}).
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusApproved}}).
		Where(squirrel.Lt{"start_min": b.EndTime.Minutes()}).
		Where(squirrel.Gt{"end_min": b.StartTime.Minutes()}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query overlapping bookings failed: %w", err)
	}

	var overlapping []*Booking
	for rows.Next() {
		var o Booking
		var startMin, endMin int
		if err := rows.Scan(
			&o.ID, &o.ResourceID, &o.UserID, &o.UserRole, &o.BookingDate,
			&startMin, &endMin, &o.Purpose, &o.Status, &o.EmergencyOverride, &o.CreatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan overlapping booking failed: %w", err)
		}
		o.StartTime = TimeOfDay(startMin)
		o.EndTime = TimeOfDay(endMin)
		overlapping = append(overlapping, &o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overlapping bookings failed: %w", err)
	}

	if len(overlapping) > 0 {
		if !override {
			return nil, ErrTimeConflict
		}

		ids := make([]string, len(overlapping))
		for i, o := range overlapping {
			ids[i] = o.ID
		}

		updateSQL, updateArgs, err := psql.Update("public.bookings").
			Set("status", StatusOverridden).
			Where(squirrel.Eq{"id": ids}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build displace query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, updateSQL, updateArgs...); err != nil {
			return nil, fmt.Errorf("displace overlapping bookings failed: %w", err)
		}

		for _, o := range overlapping {
			o.Status = StatusOverridden
		}
		b.EmergencyOverride = true
	}

	insertSQL, insertArgs, err := psql.Insert("public.bookings").
		Columns("resource_id", "user_id", "user_role", "booking_date",
			"start_min", "end_min", "purpose", "status", "emergency_override").
		Values(b.ResourceID, b.UserID, b.UserRole, b.BookingDate,
			b.StartTime.Minutes(), b.EndTime.Minutes(), b.Purpose, b.Status, b.EmergencyOverride).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create booking query failed: %w", err)
	}
	if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking transaction failed: %w", err)
	}

	return overlapping, nil
}

// isSerializationFailure reports whether the error is a retryable isolation
// conflict (SQLSTATE 40001 or 40P01).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := psql.Select(joinedColumns...).
		From("public.bookings b").
		Join("public.resources r ON b.resource_id = r.id").
		Join("public.users u ON b.user_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanJoined(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListForUser(ctx context.Context, userID string) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"b.user_id": userID})
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Booking, error) {
	return r.list(ctx, nil)
}

func (r *pgxRepository) list(ctx context.Context, where any) ([]*Booking, error) {
	query := psql.Select(joinedColumns...).
		From("public.bookings b").
		Join("public.resources r ON b.resource_id = r.id").
		Join("public.users u ON b.user_id = u.id").
		OrderBy("b.booking_date DESC", "b.start_min ASC")

	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) ListBlocking(ctx context.Context, resourceID string, date time.Time) ([]*Booking, error) {
	query, args, err := psql.Select("id", "resource_id", "user_id", "start_min", "end_min", "status").
		From("public.bookings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusApproved}}).
		OrderBy("start_min ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blocking query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blocking bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		var startMin, endMin int
		if err := rows.Scan(&b.ID, &b.ResourceID, &b.UserID, &startMin, &endMin, &b.Status); err != nil {
			return nil, fmt.Errorf("scan blocking booking failed: %w", err)
		}
		b.StartTime = TimeOfDay(startMin)
		b.EndTime = TimeOfDay(endMin)
		b.BookingDate = date
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) CountBlockingForUser(ctx context.Context, userID string, date time.Time) (int, error) {
	query, args, err := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusApproved}}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) Transition(ctx context.Context, id string, from, to Status, reason *string) (*Booking, error) {
	update := psql.Update("public.bookings").
		Set("status", to).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})
	if reason != nil {
		update = update.Set("rejection_reason", *reason)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build transition query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transition booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Distinguish a missing booking from one in the wrong state.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidState
	}

	return r.GetByID(ctx, id)
}
