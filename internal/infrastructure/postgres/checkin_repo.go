package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/habitflow-dev/habitflow/internal/domain"
	"github.com/habitflow-dev/habitflow/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CheckInRepository struct {
	pool *pgxpool.Pool
}

func NewCheckInRepository(pool *pgxpool.Pool) *CheckInRepository {
	return &CheckInRepository{pool: pool}
}

func (r *CheckInRepository) Create(ctx context.Context, habitID string, ts time.Time) (*domain.CheckIn, error) {
	query := `
		INSERT INTO habit_check_ins (habit_id, checkin_timestamp)
		VALUES ($1, $2)
		RETURNING id, habit_id, checkin_timestamp, created_at`

	return scanCheckIn(r.pool.QueryRow(ctx, query, habitID, ts))
}

// Delete joins through habits so that a check-in owned by another user is
// indistinguishable from one that does not exist.
func (r *CheckInRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM habit_check_ins c
		USING habits h
		WHERE c.id = $1 AND h.id = c.habit_id AND h.user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("delete check-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCheckInNotFound
	}
	return nil
}

func (r *CheckInRepository) ListForHabit(ctx context.Context, habitID string, from, to time.Time) ([]*domain.CheckIn, error) {
	query := `
		SELECT id, habit_id, checkin_timestamp, created_at
		FROM habit_check_ins
		WHERE habit_id = $1 AND checkin_timestamp BETWEEN $2 AND $3
		ORDER BY checkin_timestamp DESC`

	rows, err := r.pool.Query(ctx, query, habitID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []*domain.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}

func (r *CheckInRepository) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]repository.CheckInWithHabit, error) {
	query := `
		SELECT c.id, c.habit_id, c.checkin_timestamp, c.created_at,
		       h.id, h.name, h.goal_type
		FROM habit_check_ins c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.user_id = $1 AND c.checkin_timestamp BETWEEN $2 AND $3
		ORDER BY c.checkin_timestamp DESC`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list user check-ins: %w", err)
	}
	defer rows.Close()

	var items []repository.CheckInWithHabit
	for rows.Next() {
		var item repository.CheckInWithHabit
		err := rows.Scan(
			&item.CheckIn.ID, &item.CheckIn.HabitID, &item.CheckIn.Timestamp, &item.CheckIn.CreatedAt,
			&item.Habit.ID, &item.Habit.Name, &item.Habit.GoalType,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user check-in: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CheckInRepository) CountForUser(ctx context.Context, userID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM habit_check_ins c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.user_id = $1 AND c.checkin_timestamp BETWEEN $2 AND $3`

	var total int
	if err := r.pool.QueryRow(ctx, query, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("count user check-ins: %w", err)
	}
	return total, nil
}

// TimestampsForUser keeps the owner filter in the join even when habitID is
// supplied; habitID only narrows within the user's own habits.
func (r *CheckInRepository) TimestampsForUser(ctx context.Context, userID, habitID string, from, to time.Time) ([]time.Time, error) {
	args := []any{userID, from, to}
	query := `
		SELECT c.checkin_timestamp
		FROM habit_check_ins c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.user_id = $1 AND c.checkin_timestamp BETWEEN $2 AND $3`

	if habitID != "" {
		args = append(args, habitID)
		query += fmt.Sprintf(" AND c.habit_id = $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("check-in timestamps: %w", err)
	}
	defer rows.Close()

	var stamps []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scan check-in timestamp: %w", err)
		}
		stamps = append(stamps, ts)
	}
	return stamps, rows.Err()
}

func scanCheckIn(row pgx.Row) (*domain.CheckIn, error) {
	var c domain.CheckIn
	err := row.Scan(&c.ID, &c.HabitID, &c.Timestamp, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, fmt.Errorf("scan check-in: %w", err)
	}
	return &c, nil
}
