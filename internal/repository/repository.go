package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/storage"
	"github.com/emsclinic/ems-backend/pkg/model"
)

// maxSaveAttempts bounds the read-modify-write retry loop when another
// writer races on the document.
const maxSaveAttempts = 5

// errNoChange aborts an update cycle without writing anything. Targeted
// update operations return it when the entity is not found, so the caller
// can report a nil result instead of an error.
var errNoChange = errors.New("no change")

// ValidationError reports required fields missing from an input payload
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Clinic is the single point of truth for the persisted clinic document.
// Every mutation loads the whole document, applies the change, recomputes
// the aggregate statistics and writes the document back under an optimistic
// revision check.
type Clinic struct {
	store  storage.DocumentStore
	logger *zap.Logger

	// Injected for deterministic tests.
	now   func() time.Time
	newID func() string
}

// New creates a Clinic repository over the given document store
func New(store storage.DocumentStore, logger *zap.Logger) *Clinic {
	return &Clinic{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Init seeds the store with the starter document if no document exists yet
func (r *Clinic) Init(ctx context.Context) error {
	_, _, err := r.store.Load(ctx, storage.DatabaseKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to probe document store: %w", err)
	}

	db := model.Seed(r.now())
	raw, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("failed to marshal seed document: %w", err)
	}
	if _, err := r.store.Save(ctx, storage.DatabaseKey, raw, 0); err != nil {
		return fmt.Errorf("failed to seed document store: %w", err)
	}

	r.logger.Info("document store seeded",
		zap.Int("patients", len(db.Patients)),
		zap.Int("services", len(db.Services)),
		zap.Int("doctors", len(db.Doctors)),
	)
	return nil
}

// Snapshot loads the current document. An absent document yields an empty
// one rather than an error, so read paths stay defensive.
func (r *Clinic) Snapshot(ctx context.Context) (*model.Database, error) {
	db, _, err := r.load(ctx)
	return db, err
}

// Replace swaps the live document wholesale, snapshotting the previous
// document into the single backup slot first. Used by import.
func (r *Clinic) Replace(ctx context.Context, db *model.Database) error {
	raw, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		currentRaw, currentRev, err := r.store.Load(ctx, storage.DatabaseKey)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to load current document: %w", err)
		}

		if currentRaw != nil {
			_, backupRev, err := r.store.Load(ctx, storage.BackupKey)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("failed to load backup slot: %w", err)
			}
			if _, err := r.store.Save(ctx, storage.BackupKey, currentRaw, backupRev); err != nil {
				return fmt.Errorf("failed to write backup slot: %w", err)
			}
		}

		_, err = r.store.Save(ctx, storage.DatabaseKey, raw, currentRev)
		if errors.Is(err, storage.ErrRevisionConflict) {
			r.logger.Warn("concurrent write during document replace, retrying",
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to replace document: %w", err)
		}
		return nil
	}

	return fmt.Errorf("gave up replacing document after %d conflicting writes", maxSaveAttempts)
}

// load reads and decodes the document. A missing document decodes to an
// empty one at revision 0; per-collection reads then see empty slices.
func (r *Clinic) load(ctx context.Context) (*model.Database, uint64, error) {
	raw, revision, err := r.store.Load(ctx, storage.DatabaseKey)
	if errors.Is(err, storage.ErrNotFound) {
		return model.NewDatabase(r.now()), 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load document: %w", err)
	}

	var db model.Database
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, 0, fmt.Errorf("failed to decode document: %w", err)
	}
	return &db, revision, nil
}

// update runs a read-modify-write cycle: load, apply fn, stamp lastUpdated,
// recompute statistics, save under the loaded revision. On a revision
// conflict the whole cycle is retried, so fn must be safe to re-run.
func (r *Clinic) update(ctx context.Context, fn func(db *model.Database) error) error {
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		db, revision, err := r.load(ctx)
		if err != nil {
			return err
		}

		if err := fn(db); err != nil {
			return err
		}

		db.LastUpdated = r.now()
		refreshStatistics(db)

		raw, err := json.Marshal(db)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}

		_, err = r.store.Save(ctx, storage.DatabaseKey, raw, revision)
		if errors.Is(err, storage.ErrRevisionConflict) {
			r.logger.Warn("concurrent document write, retrying",
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
		return nil
	}

	return fmt.Errorf("gave up saving document after %d conflicting writes", maxSaveAttempts)
}

// refreshStatistics recomputes the document-wide aggregates from scratch.
// Total revenue is the sum of contract amounts; the monthly breakdown is
// carried over untouched.
func refreshStatistics(db *model.Database) {
	revenue := 0
	for _, c := range db.Contracts {
		revenue += c.TotalAmount
	}

	monthly := db.Statistics.MonthlyStats
	if monthly == nil {
		monthly = map[string]model.MonthlyStat{}
	}

	db.Statistics = model.Statistics{
		TotalPatients:     len(db.Patients),
		TotalAppointments: len(db.Appointments),
		TotalRevenue:      revenue,
		MonthlyStats:      monthly,
	}
}

// newCardNumber generates a patient card number. Uniqueness is best-effort,
// matching the card number contract of the document format.
func (r *Clinic) newCardNumber() string {
	return fmt.Sprintf("P%05d", rand.Intn(100000))
}
