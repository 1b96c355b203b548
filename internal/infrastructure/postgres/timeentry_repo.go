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

type TimeEntryRepository struct {
	pool *pgxpool.Pool
}

func NewTimeEntryRepository(pool *pgxpool.Pool) *TimeEntryRepository {
	return &TimeEntryRepository{pool: pool}
}

func (r *TimeEntryRepository) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	query := `
		INSERT INTO habit_time_entries (habit_id, start_time, end_time, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, habit_id, start_time, end_time, duration_minutes, created_at`

	row := r.pool.QueryRow(ctx, query, e.HabitID, e.StartTime, e.EndTime, e.DurationMinutes)
	return scanTimeEntry(row)
}

// Delete joins through habits so that an entry owned by another user is
// indistinguishable from one that does not exist.
func (r *TimeEntryRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM habit_time_entries e
		USING habits h
		WHERE e.id = $1 AND h.id = e.habit_id AND h.user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTimeEntryNotFound
	}
	return nil
}

func (r *TimeEntryRepository) ListForHabit(ctx context.Context, habitID string, from, to time.Time) ([]*domain.TimeEntry, error) {
	query := `
		SELECT id, habit_id, start_time, end_time, duration_minutes, created_at
		FROM habit_time_entries
		WHERE habit_id = $1 AND start_time BETWEEN $2 AND $3
		ORDER BY start_time DESC`

	rows, err := r.pool.Query(ctx, query, habitID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *TimeEntryRepository) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]repository.TimeEntryWithHabit, error) {
	query := `
		SELECT e.id, e.habit_id, e.start_time, e.end_time, e.duration_minutes, e.created_at,
		       h.id, h.name, h.goal_type
		FROM habit_time_entries e
		JOIN habits h ON h.id = e.habit_id
		WHERE h.user_id = $1 AND e.start_time BETWEEN $2 AND $3
		ORDER BY e.start_time DESC`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list user time entries: %w", err)
	}
	defer rows.Close()

	var items []repository.TimeEntryWithHabit
	for rows.Next() {
		var item repository.TimeEntryWithHabit
		err := rows.Scan(
			&item.Entry.ID, &item.Entry.HabitID, &item.Entry.StartTime,
			&item.Entry.EndTime, &item.Entry.DurationMinutes, &item.Entry.CreatedAt,
			&item.Habit.ID, &item.Habit.Name, &item.Habit.GoalType,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user time entry: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *TimeEntryRepository) SumMinutesForUser(ctx context.Context, userID string, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(e.duration_minutes), 0)
		FROM habit_time_entries e
		JOIN habits h ON h.id = e.habit_id
		WHERE h.user_id = $1 AND e.start_time BETWEEN $2 AND $3`

	var minutes int
	if err := r.pool.QueryRow(ctx, query, userID, from, to).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("sum user minutes: %w", err)
	}
	return minutes, nil
}

// StartTimesForUser keeps the owner filter in the join even when habitID is
// supplied; habitID only narrows within the user's own habits.
func (r *TimeEntryRepository) StartTimesForUser(ctx context.Context, userID, habitID string, from, to time.Time) ([]time.Time, error) {
	args := []any{userID, from, to}
	query := `
		SELECT e.start_time
		FROM habit_time_entries e
		JOIN habits h ON h.id = e.habit_id
		WHERE h.user_id = $1 AND e.start_time BETWEEN $2 AND $3`

	if habitID != "" {
		args = append(args, habitID)
		query += fmt.Sprintf(" AND e.habit_id = $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("time entry start times: %w", err)
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scan time entry start: %w", err)
		}
		starts = append(starts, ts)
	}
	return starts, rows.Err()
}

func scanTimeEntry(row pgx.Row) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	err := row.Scan(&e.ID, &e.HabitID, &e.StartTime, &e.EndTime, &e.DurationMinutes, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("scan time entry: %w", err)
	}
	return &e, nil
}
