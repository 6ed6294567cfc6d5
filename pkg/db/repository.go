package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Zyelixify/MediGuard/pkg/models"
	"github.com/Zyelixify/MediGuard/pkg/timing"
)

// AdherenceStatsData summarizes dose adherence for an account
type AdherenceStatsData struct {
	TotalScheduled int     `json:"total_scheduled"`
	TotalTaken     int     `json:"total_taken"`
	TotalMissed    int     `json:"total_missed"`
	AdherenceRate  float64 `json:"adherence_rate"`
}

// Repository provides database operations for specific models
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *DB {
	return r.db
}

// Account repository methods
func (r *Repository) CreateAccount(account *models.Account) error {
	return r.db.Create(account).Error
}

func (r *Repository) GetAccountByID(id string) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, "id = ?", id).Error
	return &account, err
}

func (r *Repository) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("email = ?", email).First(&account).Error
	return &account, err
}

func (r *Repository) GetAccounts(role models.AccountRole) ([]models.Account, error) {
	var accounts []models.Account
	query := r.db.Order("created_at DESC")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Find(&accounts).Error
	return accounts, err
}

func (r *Repository) UpdateAccount(account *models.Account) error {
	return r.db.Save(account).Error
}

func (r *Repository) DeleteAccount(id string) error {
	return r.db.Delete(&models.Account{}, "id = ?", id).Error
}

// Medication repository methods
func (r *Repository) CreateMedication(medication *models.Medication) error {
	return r.db.Create(medication).Error
}

func (r *Repository) GetMedicationByID(id string) (*models.Medication, error) {
	var medication models.Medication
	err := r.db.Preload("ScheduledDoses").First(&medication, "id = ?", id).Error
	return &medication, err
}

func (r *Repository) GetMedicationsByAccountID(accountID string, limit, offset int) ([]models.Medication, error) {
	var medications []models.Medication
	err := r.db.Where("account_id = ?", accountID).
		Preload("ScheduledDoses").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&medications).Error
	return medications, err
}

func (r *Repository) GetMedicationsCount(accountID string) (int, error) {
	var count int64
	err := r.db.Model(&models.Medication{}).Where("account_id = ?", accountID).Count(&count).Error
	return int(count), err
}

func (r *Repository) DeleteMedication(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ScheduledDose{}, "medication_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Medication{}, "id = ?", id).Error
	})
}

// ScheduledDose repository methods
func (r *Repository) CreateScheduledDoses(doses []models.ScheduledDose) error {
	if len(doses) == 0 {
		return nil
	}
	return r.db.CreateInBatches(doses, 100).Error
}

func (r *Repository) GetScheduledDoseByID(id string) (*models.ScheduledDose, error) {
	var dose models.ScheduledDose
	err := r.db.Preload("Medication").First(&dose, "id = ?", id).Error
	return &dose, err
}

func (r *Repository) GetScheduledDosesByAccountID(accountID string, from, to *time.Time, taken *bool, limit, offset int) ([]models.ScheduledDose, error) {
	var doses []models.ScheduledDose
	query := r.db.
		Joins("JOIN medications ON medications.id = scheduled_doses.medication_id").
		Where("medications.account_id = ?", accountID).
		Preload("Medication")

	if from != nil {
		query = query.Where("scheduled_doses.scheduled_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("scheduled_doses.scheduled_at <= ?", *to)
	}
	if taken != nil {
		query = query.Where("scheduled_doses.taken = ?", *taken)
	}

	err := query.Order("scheduled_doses.scheduled_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&doses).Error
	return doses, err
}

func (r *Repository) UpdateScheduledDose(dose *models.ScheduledDose) error {
	return r.db.Save(dose).Error
}

// GetDueDoses returns untaken doses whose scheduled time has arrived (within
// tolerance) and that have not yet been reminded.
func (r *Repository) GetDueDoses(now time.Time, tolerance time.Duration, limit int) ([]models.ScheduledDose, error) {
	var doses []models.ScheduledDose
	err := r.db.
		Where("taken = ? AND reminded_at IS NULL", false).
		Where("scheduled_at <= ?", now.Add(tolerance)).
		Preload("Medication").
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&doses).Error
	return doses, err
}

// MarkDoseReminded stamps the dose so the reminder worker does not pick it up
// again.
func (r *Repository) MarkDoseReminded(id string, at time.Time) error {
	return r.db.Model(&models.ScheduledDose{}).
		Where("id = ?", id).
		Update("reminded_at", at).Error
}

// GetAdherenceStats summarizes taken/missed doses for an account up to now
func (r *Repository) GetAdherenceStats(accountID string, now time.Time) (*AdherenceStatsData, error) {
	type doseCount struct {
		Total int64
		Taken int64
	}

	var result doseCount
	err := r.db.Model(&models.ScheduledDose{}).
		Select("COUNT(*) as total, COUNT(CASE WHEN taken THEN 1 END) as taken").
		Joins("JOIN medications ON medications.id = scheduled_doses.medication_id").
		Where("medications.account_id = ? AND scheduled_doses.scheduled_at <= ?", accountID, now).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	stats := &AdherenceStatsData{
		TotalScheduled: int(result.Total),
		TotalTaken:     int(result.Taken),
		TotalMissed:    int(result.Total - result.Taken),
	}
	if result.Total > 0 {
		stats.AdherenceRate = float64(result.Taken) / float64(result.Total) * 100
	}
	return stats, nil
}

// TimingPreference repository methods. These implement timing.PreferenceStore;
// per-key atomicity for concurrent upserts rides on the unique
// (account_id, quarter) index.
func (r *Repository) GetPreference(accountID string, quarter timing.Quarter) (*models.TimingPreference, error) {
	var pref models.TimingPreference
	err := r.db.Where("account_id = ? AND quarter = ?", accountID, string(quarter)).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *Repository) SavePreference(pref *models.TimingPreference) error {
	return r.db.Save(pref).Error
}

func (r *Repository) ListPreferences(accountID string) ([]models.TimingPreference, error) {
	var prefs []models.TimingPreference
	err := r.db.Where("account_id = ?", accountID).
		Order("quarter ASC").
		Find(&prefs).Error
	return prefs, err
}

func (r *Repository) DeletePreferences(accountID string) error {
	return r.db.Unscoped().Delete(&models.TimingPreference{}, "account_id = ?", accountID).Error
}

// UpsertPreference replaces the preference for its (account, quarter) pair,
// used by the development scenario simulation.
func (r *Repository) UpsertPreference(pref *models.TimingPreference) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.TimingPreference
		err := tx.Where("account_id = ? AND quarter = ?", pref.AccountID, pref.Quarter).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(pref).Error
		}
		if err != nil {
			return err
		}
		pref.ID = existing.ID
		pref.CreatedAt = existing.CreatedAt
		return tx.Save(pref).Error
	})
}

// CaretakerRelation repository methods
func (r *Repository) CreateCaretakerRelation(relation *models.CaretakerRelation) error {
	return r.db.Create(relation).Error
}

func (r *Repository) GetCaretakerRelationByID(id string) (*models.CaretakerRelation, error) {
	var relation models.CaretakerRelation
	err := r.db.Preload("Patient").Preload("Caretaker").First(&relation, "id = ?", id).Error
	return &relation, err
}

func (r *Repository) GetCaretakerRelationsForAccount(accountID string) ([]models.CaretakerRelation, error) {
	var relations []models.CaretakerRelation
	err := r.db.Where("patient_id = ? OR caretaker_id = ?", accountID, accountID).
		Preload("Patient").
		Preload("Caretaker").
		Find(&relations).Error
	return relations, err
}

func (r *Repository) FindCaretakerRelation(patientID, caretakerID string) (*models.CaretakerRelation, error) {
	var relation models.CaretakerRelation
	err := r.db.Where("patient_id = ? AND caretaker_id = ?", patientID, caretakerID).First(&relation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &relation, nil
}

func (r *Repository) UpdateCaretakerRelation(relation *models.CaretakerRelation) error {
	return r.db.Save(relation).Error
}

func (r *Repository) DeleteCaretakerRelation(id string) error {
	return r.db.Delete(&models.CaretakerRelation{}, "id = ?", id).Error
}

// Event repository methods
func (r *Repository) CreateEvent(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *Repository) GetEventsByAccountID(accountID string, limit, offset int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, err
}

func (r *Repository) GetEventsCount(accountID string) (int, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Where("account_id = ?", accountID).Count(&count).Error
	return int(count), err
}
