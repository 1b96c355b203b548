// seed inserts a demo user with three habits and ~30 days of activity
// into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/habitflow-dev/habitflow/internal/infrastructure/postgres"
)

const (
	seedEmail    = "demo@habitflow.local"
	seedPassword = "password123"
)

type habitSpec struct {
	name      string
	goalType  string
	goalValue int
	days      []int
	reminders []string
}

var habits = []habitSpec{
	{"Drink water", "COUNT", 8, []int{0, 1, 2, 3, 4, 5, 6}, []string{"09:00", "14:00", "19:00"}},
	{"Morning run", "COUNT", 1, []int{1, 3, 5}, []string{"07:00"}},
	{"Deep work", "DURATION", 120, []int{1, 2, 3, 4, 5}, []string{"10:00"}},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user (idempotent re-runs)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		"Demo User", seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Start each run from a clean slate so the activity history stays
	// predictable.
	if _, err := pool.Exec(ctx, `DELETE FROM habits WHERE user_id = $1`, userID); err != nil {
		log.Fatalf("clear habits: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	now := time.Now()
	var checkIns, timeEntries int

	for _, spec := range habits {
		var habitID string
		err := pool.QueryRow(ctx, `
			INSERT INTO habits (user_id, name, goal_type, goal_value, days_of_week, reminder_times)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			userID, spec.name, spec.goalType, spec.goalValue, spec.days, spec.reminders,
		).Scan(&habitID)
		if err != nil {
			log.Fatalf("insert habit %q: %v", spec.name, err)
		}

		// Walk the last 30 days and log activity on the habit's scheduled
		// days, skipping some at random so streaks look organic.
		for day := 30; day >= 1; day-- {
			at := now.AddDate(0, 0, -day)
			if !scheduledOn(spec.days, at.Weekday()) || rng.Intn(10) < 2 {
				continue
			}

			if spec.goalType == "COUNT" {
				n := 1 + rng.Intn(spec.goalValue)
				for i := 0; i < n; i++ {
					ts := time.Date(at.Year(), at.Month(), at.Day(), 8+2*i, rng.Intn(60), 0, 0, at.Location())
					if _, err := pool.Exec(ctx, `
						INSERT INTO habit_check_ins (habit_id, checkin_timestamp)
						VALUES ($1, $2)`,
						habitID, ts,
					); err != nil {
						log.Fatalf("insert check-in: %v", err)
					}
					checkIns++
				}
				continue
			}

			minutes := 25 + rng.Intn(90)
			start := time.Date(at.Year(), at.Month(), at.Day(), 10, rng.Intn(60), 0, 0, at.Location())
			end := start.Add(time.Duration(minutes) * time.Minute)
			if _, err := pool.Exec(ctx, `
				INSERT INTO habit_time_entries (habit_id, start_time, end_time, duration_minutes)
				VALUES ($1, $2, $3, $4)`,
				habitID, start, end, minutes,
			); err != nil {
				log.Fatalf("insert time entry: %v", err)
			}
			timeEntries++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:         %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:      %s\n", userID)
	fmt.Printf("  Habits:       %d\n", len(habits))
	fmt.Printf("  Check-ins:    %d\n", checkIns)
	fmt.Printf("  Time entries: %d\n", timeEntries)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — sign in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/signin \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — browse the data:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/habits -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s http://localhost:8080/reports/dashboard -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s http://localhost:8080/reports/heatmap -H \"Authorization: Bearer $JWT\"")
}

func scheduledOn(days []int, wd time.Weekday) bool {
	for _, d := range days {
		if d == int(wd) {
			return true
		}
	}
	return false
}
