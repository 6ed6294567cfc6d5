package reminder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Zyelixify/MediGuard/pkg/config"
	"github.com/Zyelixify/MediGuard/pkg/db"
	"github.com/Zyelixify/MediGuard/pkg/log"
	"github.com/Zyelixify/MediGuard/pkg/models"
)

// Worker scans for due doses and emits reminder events
type Worker struct {
	id     int
	config *config.Config
	db     *db.DB
	logger *log.Logger
	stopCh chan struct{}
	wg     *sync.WaitGroup
}

// Manager manages multiple reminder workers
type Manager struct {
	config  *config.Config
	db      *db.DB
	logger  *log.Logger
	workers []*Worker
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewManager creates a new reminder manager
func NewManager(cfg *config.Config, database *db.DB, logger *log.Logger) *Manager {
	return &Manager{
		config: cfg,
		db:     database,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start starts the reminder manager and workers
func (m *Manager) Start(ctx context.Context) error {
	if !m.config.Reminder.Enabled {
		m.logger.Info("Reminder workers disabled by configuration")
		return nil
	}

	workerCount := m.config.Reminder.WorkerCount
	if workerCount <= 0 {
		workerCount = 2
	}

	m.logger.WithField("worker_count", workerCount).Info("Starting reminder workers")

	for i := 0; i < workerCount; i++ {
		worker := &Worker{
			id:     i + 1,
			config: m.config,
			db:     m.db,
			logger: m.logger,
			stopCh: make(chan struct{}),
			wg:     &m.wg,
		}

		m.workers = append(m.workers, worker)
		m.wg.Add(1)
		go worker.start(ctx)
	}

	m.logger.Info("Reminder manager started successfully")
	return nil
}

// Stop stops the reminder manager and all workers
func (m *Manager) Stop() {
	m.logger.Info("Stopping reminder manager...")

	close(m.stopCh)
	for _, worker := range m.workers {
		close(worker.stopCh)
	}

	m.wg.Wait()

	m.logger.Info("Reminder manager stopped")
}

// start starts a single worker
func (w *Worker) start(ctx context.Context) {
	defer w.wg.Done()

	w.logger.WithField("worker_id", w.id).Info("Reminder worker started")

	interval := time.Duration(w.config.Reminder.ScanInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.WithField("worker_id", w.id).Info("Reminder worker stopped by context")
			return
		case <-w.stopCh:
			w.logger.WithField("worker_id", w.id).Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

// scan processes the next batch of due doses
func (w *Worker) scan() {
	repo := db.NewRepository(w.db)
	now := time.Now()
	tolerance := time.Duration(w.config.Reminder.DueTolerance) * time.Second

	doses, err := repo.GetDueDoses(now, tolerance, w.config.Reminder.BatchSize)
	if err != nil {
		w.logger.WithError(err).Error("Failed to get due doses")
		return
	}

	if len(doses) == 0 {
		return
	}

	w.logger.WithFields(map[string]interface{}{
		"worker_id": w.id,
		"count":     len(doses),
	}).Debug("Processing due doses")

	for _, dose := range doses {
		w.processDose(repo, &dose, now)
	}
}

// processDose emits a DoseDue or DoseOverdue event for a single dose. Two
// workers may race on the same dose; the event's unique key makes the second
// insert fail, so at most one event fires per dose per kind.
func (w *Worker) processDose(repo *db.Repository, dose *models.ScheduledDose, now time.Time) {
	med := dose.Medication
	overdueThreshold := time.Duration(w.config.Reminder.OverdueThreshold) * time.Minute

	var event models.Event
	if now.After(dose.ScheduledAt.Add(overdueThreshold)) {
		overdue := FormatOverdueDuration(dose.ScheduledAt, now)
		event = models.Event{
			Type:      models.EventDoseOverdue,
			Message:   OverdueMessage(med.Name, med.Dosage, overdue),
			Key:       fmt.Sprintf("DoseOverdue:%s", dose.ID),
			AccountID: med.AccountID,
			Metadata: models.JSON{
				"dose_id":       dose.ID,
				"medication_id": med.ID,
				"scheduled_at":  dose.ScheduledAt.Format(time.RFC3339),
				"overdue":       overdue,
			},
		}
	} else {
		event = models.Event{
			Type:      models.EventDoseDue,
			Message:   DoseMessage(med.Name, med.Dosage, dose.ScheduledAt),
			Key:       fmt.Sprintf("DoseDue:%s", dose.ID),
			AccountID: med.AccountID,
			Metadata: models.JSON{
				"dose_id":       dose.ID,
				"medication_id": med.ID,
				"scheduled_at":  dose.ScheduledAt.Format(time.RFC3339),
			},
		}
	}

	if err := repo.CreateEvent(&event); err != nil {
		if isDuplicateKey(err) {
			// Another worker already fired this reminder
			return
		}
		w.logger.WithError(err).Error("Failed to create reminder event")
		w.logger.LogReminder(dose.ID, med.AccountID, string(event.Type), false)
		return
	}

	if err := repo.MarkDoseReminded(dose.ID, now); err != nil {
		w.logger.WithError(err).Error("Failed to mark dose reminded")
		return
	}

	w.logger.LogReminder(dose.ID, med.AccountID, string(event.Type), true)
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
