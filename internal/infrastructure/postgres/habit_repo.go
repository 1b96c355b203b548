package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/habitflow-dev/habitflow/internal/domain"
	"github.com/habitflow-dev/habitflow/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const habitColumns = `id, user_id, name, goal_type, goal_value, days_of_week, reminder_times, created_at, updated_at`

type HabitRepository struct {
	pool *pgxpool.Pool
}

func NewHabitRepository(pool *pgxpool.Pool) *HabitRepository {
	return &HabitRepository{pool: pool}
}

func (r *HabitRepository) Create(ctx context.Context, h *domain.Habit) (*domain.Habit, error) {
	query := `
		INSERT INTO habits (user_id, name, goal_type, goal_value, days_of_week, reminder_times)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + habitColumns

	row := r.pool.QueryRow(ctx, query,
		h.UserID,
		h.Name,
		h.GoalType,
		h.GoalValue,
		toInt32s(h.DaysOfWeek),
		h.ReminderTimes,
	)
	return scanHabit(row)
}

func (r *HabitRepository) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 AND user_id = $2`

	return scanHabit(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *HabitRepository) Update(ctx context.Context, id, userID string, upd repository.HabitUpdate) (*domain.Habit, error) {
	set := []string{"updated_at = NOW()"}
	var args []any

	if upd.Name != nil {
		args = append(args, *upd.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if upd.GoalValue != nil {
		args = append(args, *upd.GoalValue)
		set = append(set, fmt.Sprintf("goal_value = $%d", len(args)))
	}
	if upd.DaysOfWeek != nil {
		args = append(args, toInt32s(upd.DaysOfWeek))
		set = append(set, fmt.Sprintf("days_of_week = $%d", len(args)))
	}
	if upd.ReminderTimes != nil {
		args = append(args, upd.ReminderTimes)
		set = append(set, fmt.Sprintf("reminder_times = $%d", len(args)))
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE habits
		SET    %s
		WHERE  id = $%d AND user_id = $%d
		RETURNING `+habitColumns,
		strings.Join(set, ", "), len(args)-1, len(args))

	return scanHabit(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes the habit; check-ins and time entries go with it via
// ON DELETE CASCADE.
func (r *HabitRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM habits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *HabitRepository) List(ctx context.Context, input repository.ListHabitsInput) ([]*domain.Habit, error) {
	where, args := habitFilter(input)

	order := "DESC"
	if input.OrderAsc {
		order = "ASC"
	}

	args = append(args, input.Limit, input.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM habits
		WHERE %s
		ORDER BY created_at %s, id %s
		LIMIT $%d OFFSET $%d`,
		habitColumns, strings.Join(where, " AND "), order, order, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *HabitRepository) Count(ctx context.Context, input repository.ListHabitsInput) (int, error) {
	where, args := habitFilter(input)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM habits WHERE %s`, strings.Join(where, " AND "))

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count habits: %w", err)
	}
	return total, nil
}

func (r *HabitRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM habits WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count habits by user: %w", err)
	}
	return total, nil
}

func habitFilter(input repository.ListHabitsInput) ([]string, []any) {
	args := []any{input.UserID}
	where := []string{"user_id = $1"}

	if input.Search != "" {
		args = append(args, "%"+escapeLike(input.Search)+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if input.GoalType != "" {
		args = append(args, input.GoalType)
		where = append(where, fmt.Sprintf("goal_type = $%d", len(args)))
	}
	return where, args
}

// escapeLike neutralizes LIKE metacharacters so a search term matches
// itself literally. Backslash is the default escape character in postgres.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func scanHabit(row pgx.Row) (*domain.Habit, error) {
	var (
		h    domain.Habit
		days []int32
	)
	err := row.Scan(
		&h.ID, &h.UserID, &h.Name, &h.GoalType, &h.GoalValue,
		&days, &h.ReminderTimes, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("scan habit: %w", err)
	}
	h.DaysOfWeek = toInts(days)
	return &h, nil
}

// days_of_week is int4[] in the schema; pgx maps it to []int32.
func toInt32s(days []int) []int32 {
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}

func toInts(days []int32) []int {
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}
