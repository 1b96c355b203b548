package usecase_test

import (
	"context"
	"time"

	"github.com/habitflow-dev/habitflow/internal/domain"
	"github.com/habitflow-dev/habitflow/internal/repository"
)

// Fakes shared by the usecase tests. Each method delegates to a func field
// so a test only wires the calls it expects; anything else panics loudly.

type fakeUserRepo struct {
	create      func(ctx context.Context, u *domain.User) (*domain.User, error)
	findByEmail func(ctx context.Context, email string) (*domain.User, error)
	findByID    func(ctx context.Context, id string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.create(ctx, u)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

type fakeHabitRepo struct {
	create      func(ctx context.Context, h *domain.Habit) (*domain.Habit, error)
	getByID     func(ctx context.Context, id, userID string) (*domain.Habit, error)
	update      func(ctx context.Context, id, userID string, upd repository.HabitUpdate) (*domain.Habit, error)
	delete      func(ctx context.Context, id, userID string) error
	list        func(ctx context.Context, input repository.ListHabitsInput) ([]*domain.Habit, error)
	count       func(ctx context.Context, input repository.ListHabitsInput) (int, error)
	countByUser func(ctx context.Context, userID string) (int, error)
}

func (r *fakeHabitRepo) Create(ctx context.Context, h *domain.Habit) (*domain.Habit, error) {
	return r.create(ctx, h)
}

func (r *fakeHabitRepo) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return r.getByID(ctx, id, userID)
}

func (r *fakeHabitRepo) Update(ctx context.Context, id, userID string, upd repository.HabitUpdate) (*domain.Habit, error) {
	return r.update(ctx, id, userID, upd)
}

func (r *fakeHabitRepo) Delete(ctx context.Context, id, userID string) error {
	return r.delete(ctx, id, userID)
}

func (r *fakeHabitRepo) List(ctx context.Context, input repository.ListHabitsInput) ([]*domain.Habit, error) {
	return r.list(ctx, input)
}

func (r *fakeHabitRepo) Count(ctx context.Context, input repository.ListHabitsInput) (int, error) {
	return r.count(ctx, input)
}

func (r *fakeHabitRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return r.countByUser(ctx, userID)
}

type fakeCheckInRepo struct {
	create            func(ctx context.Context, habitID string, ts time.Time) (*domain.CheckIn, error)
	delete            func(ctx context.Context, id, userID string) error
	listForHabit      func(ctx context.Context, habitID string, from, to time.Time) ([]*domain.CheckIn, error)
	listForUser       func(ctx context.Context, userID string, from, to time.Time) ([]repository.CheckInWithHabit, error)
	countForUser      func(ctx context.Context, userID string, from, to time.Time) (int, error)
	timestampsForUser func(ctx context.Context, userID, habitID string, from, to time.Time) ([]time.Time, error)
}

func (r *fakeCheckInRepo) Create(ctx context.Context, habitID string, ts time.Time) (*domain.CheckIn, error) {
	return r.create(ctx, habitID, ts)
}

func (r *fakeCheckInRepo) Delete(ctx context.Context, id, userID string) error {
	return r.delete(ctx, id, userID)
}

func (r *fakeCheckInRepo) ListForHabit(ctx context.Context, habitID string, from, to time.Time) ([]*domain.CheckIn, error) {
	return r.listForHabit(ctx, habitID, from, to)
}

func (r *fakeCheckInRepo) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]repository.CheckInWithHabit, error) {
	return r.listForUser(ctx, userID, from, to)
}

func (r *fakeCheckInRepo) CountForUser(ctx context.Context, userID string, from, to time.Time) (int, error) {
	return r.countForUser(ctx, userID, from, to)
}

func (r *fakeCheckInRepo) TimestampsForUser(ctx context.Context, userID, habitID string, from, to time.Time) ([]time.Time, error) {
	return r.timestampsForUser(ctx, userID, habitID, from, to)
}

type fakeTimeEntryRepo struct {
	create            func(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
	delete            func(ctx context.Context, id, userID string) error
	listForHabit      func(ctx context.Context, habitID string, from, to time.Time) ([]*domain.TimeEntry, error)
	listForUser       func(ctx context.Context, userID string, from, to time.Time) ([]repository.TimeEntryWithHabit, error)
	sumMinutesForUser func(ctx context.Context, userID string, from, to time.Time) (int, error)
	startTimesForUser func(ctx context.Context, userID, habitID string, from, to time.Time) ([]time.Time, error)
}

func (r *fakeTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	return r.create(ctx, e)
}

func (r *fakeTimeEntryRepo) Delete(ctx context.Context, id, userID string) error {
	return r.delete(ctx, id, userID)
}

func (r *fakeTimeEntryRepo) ListForHabit(ctx context.Context, habitID string, from, to time.Time) ([]*domain.TimeEntry, error) {
	return r.listForHabit(ctx, habitID, from, to)
}

func (r *fakeTimeEntryRepo) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]repository.TimeEntryWithHabit, error) {
	return r.listForUser(ctx, userID, from, to)
}

func (r *fakeTimeEntryRepo) SumMinutesForUser(ctx context.Context, userID string, from, to time.Time) (int, error) {
	return r.sumMinutesForUser(ctx, userID, from, to)
}

func (r *fakeTimeEntryRepo) StartTimesForUser(ctx context.Context, userID, habitID string, from, to time.Time) ([]time.Time, error) {
	return r.startTimesForUser(ctx, userID, habitID, from, to)
}
