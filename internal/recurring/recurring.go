// Package recurring implements the engine that advances recurring
// transaction templates.
//
// A template carries a NextOccurrence pointer. Catching up walks that
// pointer forward one calendar period at a time, creating a plain
// transaction instance for every date that is not in the future, and
// persists the first future date back to the template. The daily sweep
// runs the same catch-up for every active template, so both paths share
// one bookkeeping mechanism and cannot generate an instance twice for the
// same calendar date.
package recurring

import (
	"errors"
	"fmt"
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrConcurrentUpdate is returned when a template's pointer was advanced
// by another writer while a catch-up was running. The catch-up rolls back
// and can simply be retried.
var ErrConcurrentUpdate = errors.New("the template was updated concurrently")

var generatedInstances = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "recurring_instances_generated_total",
		Help: "Number of transaction instances generated from recurring templates.",
	},
	[]string{"frequency"},
)

// Step advances a date by exactly one period of the frequency.
//
// Monthly and yearly steps use calendar arithmetic: stepping from a day
// that does not exist in the target month rolls over into the following
// month, like time.AddDate does.
func Step(date time.Time, frequency models.Frequency) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return date.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return date.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return date.AddDate(0, 1, 0)
	case models.FrequencyYearly:
		return date.AddDate(1, 0, 0)
	}

	return date
}

// startOfDay truncates a time to midnight UTC. All due-date comparisons
// are date-only.
func startOfDay(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CatchUp backfills all missed occurrences of a single template up to and
// including today, then persists the first future date as the template's
// NextOccurrence.
//
// The generated instances and the pointer update are committed in one
// database transaction: either all missed instances exist and the pointer
// moved past them, or nothing changed. The pointer update carries an
// update-if-matches guard on the previous NextOccurrence value, so a
// concurrent catch-up for the same template makes this one roll back with
// ErrConcurrentUpdate instead of generating duplicates.
//
// Calling CatchUp again on an already caught-up template is a no-op.
func CatchUp(db *gorm.DB, template models.Transaction, now time.Time) (int, error) {
	if !template.IsRecurring || !template.IsActive || template.Frequency == models.FrequencyNone {
		return 0, nil
	}

	today := startOfDay(now)

	// The anchor date was never advanced for a fresh template, the first
	// candidate is then one period after the template's own date.
	previous := template.NextOccurrence
	pointer := Step(startOfDay(template.Date), template.Frequency)
	if previous != nil && !previous.IsZero() {
		pointer = startOfDay(*previous)
	}

	if previous != nil && pointer.After(today) {
		return 0, nil
	}

	generated := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var lastGenerated *time.Time

		for !pointer.After(today) {
			instance := models.Transaction{
				UserID:   template.UserID,
				Type:     template.Type,
				Category: template.Category,
				Amount:   template.Amount,
				Date:     pointer,
			}

			if err := tx.Create(&instance).Error; err != nil {
				return err
			}

			occurred := pointer
			lastGenerated = &occurred
			generated++

			pointer = Step(pointer, template.Frequency)
		}

		updates := map[string]any{"next_occurrence": pointer}
		if lastGenerated != nil {
			updates["last_generated_date"] = *lastGenerated
		}

		q := tx.Model(&models.Transaction{}).Where("id = ?", template.ID)
		if previous == nil {
			q = q.Where("next_occurrence IS NULL")
		} else {
			q = q.Where("next_occurrence = ?", *previous)
		}

		res := q.Session(&gorm.Session{SkipHooks: true}).Updates(updates)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: template %s", ErrConcurrentUpdate, template.ID)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	generatedInstances.WithLabelValues(string(template.Frequency)).Add(float64(generated))
	return generated, nil
}

// CatchUpUser backfills every active template of one user. It is invoked
// by the dashboard handler before totals are read, so a user always sees
// their recurring transactions up to date.
//
// Templates are caught up independently: a failure on one template does
// not prevent the others from advancing.
func CatchUpUser(db *gorm.DB, userID uuid.UUID, now time.Time) (int, error) {
	var templates []models.Transaction

	err := db.
		Where("user_id = ? AND is_recurring = ? AND is_active = ?", userID, true, true).
		Where("next_occurrence IS NULL OR next_occurrence <= ?", startOfDay(now)).
		Find(&templates).Error
	if err != nil {
		return 0, err
	}

	return catchUpAll(db, templates, now)
}

// RunDailySweep backfills every active template of every user. It is
// invoked by a scheduler owned by the caller, the engine itself holds no
// timer state. Running the sweep and a user's dashboard catch-up in the
// same period is safe, whichever commits second becomes a no-op or rolls
// back on the pointer guard.
func RunDailySweep(db *gorm.DB, now time.Time) (int, error) {
	var templates []models.Transaction

	err := db.
		Where("is_recurring = ? AND is_active = ?", true, true).
		Find(&templates).Error
	if err != nil {
		return 0, err
	}

	generated, err := catchUpAll(db, templates, now)
	log.Info().Int("templates", len(templates)).Int("generated", generated).Msg("recurring sweep complete")

	return generated, err
}

func catchUpAll(db *gorm.DB, templates []models.Transaction, now time.Time) (int, error) {
	var errs []error

	generated := 0
	for _, template := range templates {
		n, err := CatchUp(db, template, now)
		if err != nil {
			log.Error().Err(err).Str("template", template.ID.String()).Msg("recurring catch-up failed")
			errs = append(errs, err)
			continue
		}

		generated += n
	}

	return generated, errors.Join(errs...)
}
