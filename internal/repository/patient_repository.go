package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"simrs-backend/internal/models"
	"simrs-backend/internal/patient"
)

// ErrNotFound dibungkus dari gorm.ErrRecordNotFound
var ErrNotFound = errors.New("data tidak ditemukan")

// ListQuery filter daftar pasien (GET /patients)
type ListQuery struct {
	Search string
	Gender patient.Gender
	Sort   string // mrNumber | name | birthDate
	Order  string // asc | desc
	Page   int
	Limit  int
}

var sortColumns = map[string]string{
	"mrNumber":  "mr_number",
	"name":      "full_name",
	"birthDate": "birth_date",
	"createdAt": "created_at",
}

type PatientRepository interface {
	List(ctx context.Context, q ListQuery) ([]models.Patient, int64, error)
	GetByID(ctx context.Context, id uint64) (*models.Patient, error)
	Create(ctx context.Context, p *models.Patient, actorID uint64) error
	Update(ctx context.Context, p *models.Patient, actorID uint64) error
	GuarantorsByPatient(ctx context.Context, patientID uint64) ([]models.Guarantor, error)
	ExpiringGuarantors(ctx context.Context, from, to civil.Date) ([]models.Guarantor, error)
	Stats(ctx context.Context, today civil.Date, expiryWindow int) (*models.PatientStats, error)
}

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) List(ctx context.Context, q ListQuery) ([]models.Patient, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Patient{})

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(mr_number) LIKE ? OR id_number LIKE ?", like, like, "%"+s+"%")
	}
	if q.Gender != "" {
		query = query.Where("gender = ?", q.Gender)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[q.Sort]
	if !ok {
		col = "id"
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: q.Order == "desc"})

	if q.Limit > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * q.Limit).Limit(q.Limit)
	}

	var patients []models.Patient
	if err := query.Find(&patients).Error; err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *patientRepository) GetByID(ctx context.Context, id uint64) (*models.Patient, error) {
	var p models.Patient
	err := r.db.WithContext(ctx).
		Preload("Guarantors", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&p, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Create menyimpan pasien + seluruh penjamin dalam satu transaksi, lalu mengisi No. RM.
func (r *patientRepository) Create(ctx context.Context, p *models.Patient, actorID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p.CreatedBy = actorID
		p.UpdatedBy = actorID
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		p.MRNumber = models.FormatMRNumber(p.ID)
		if err := tx.Model(p).UpdateColumn("mr_number", p.MRNumber).Error; err != nil {
			return err
		}
		return writeAudit(tx, p, models.AuditCreate, actorID)
	})
}

// Update mengganti data pasien dan list penjamin secara utuh.
func (r *patientRepository) Update(ctx context.Context, p *models.Patient, actorID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Patient
		if err := tx.First(&existing, p.ID).Error; err != nil {
			return notFound(err)
		}

		p.MRNumber = existing.MRNumber
		p.CreatedAt = existing.CreatedAt
		p.CreatedBy = existing.CreatedBy
		p.UpdatedBy = actorID
		if err := tx.Omit(clause.Associations).Save(p).Error; err != nil {
			return err
		}

		if err := tx.Where("patient_id = ?", p.ID).Delete(&models.Guarantor{}).Error; err != nil {
			return err
		}
		for i := range p.Guarantors {
			p.Guarantors[i].ID = 0
			p.Guarantors[i].PatientID = p.ID
			p.Guarantors[i].Position = i
		}
		if len(p.Guarantors) > 0 {
			if err := tx.Create(&p.Guarantors).Error; err != nil {
				return err
			}
		}
		return writeAudit(tx, p, models.AuditUpdate, actorID)
	})
}

func (r *patientRepository) GuarantorsByPatient(ctx context.Context, patientID uint64) ([]models.Guarantor, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", patientID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	guarantors := []models.Guarantor{}
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("position asc").
		Find(&guarantors).Error
	return guarantors, err
}

// ExpiringGuarantors penjamin dengan tanggal kadaluarsa di [from, to], sekalian data pasiennya.
func (r *patientRepository) ExpiringGuarantors(ctx context.Context, from, to civil.Date) ([]models.Guarantor, error) {
	var guarantors []models.Guarantor
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("expiry_date IS NOT NULL AND expiry_date BETWEEN ? AND ?", models.NewDate(from), models.NewDate(to)).
		Order("expiry_date asc").
		Find(&guarantors).Error
	return guarantors, err
}

type labelCount struct {
	Label string
	Total int64
}

func (r *patientRepository) Stats(ctx context.Context, today civil.Date, expiryWindow int) (*models.PatientStats, error) {
	db := r.db.WithContext(ctx)
	stats := &models.PatientStats{
		ByPatientType: map[string]int64{},
		ByGender:      map[string]int64{},
	}

	if err := db.Model(&models.Patient{}).Count(&stats.TotalPatients).Error; err != nil {
		return nil, err
	}

	var rows []labelCount
	if err := db.Model(&models.Patient{}).
		Select("patient_type AS label, COUNT(*) AS total").
		Group("patient_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByPatientType[row.Label] = row.Total
	}

	rows = nil
	if err := db.Model(&models.Patient{}).
		Select("gender AS label, COUNT(*) AS total").
		Group("gender").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByGender[row.Label] = row.Total
	}

	start := today.In(time.Local)
	if err := db.Model(&models.Patient{}).
		Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1)).
		Count(&stats.RegisteredToday).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Guarantor{}).
		Where("expiry_date IS NOT NULL AND expiry_date BETWEEN ? AND ?", models.NewDate(today), models.NewDate(today.AddDays(expiryWindow))).
		Count(&stats.ExpiringGuarantors).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func writeAudit(tx *gorm.DB, p *models.Patient, action string, actorID uint64) error {
	audit, err := models.NewPatientAudit(p, action, actorID)
	if err != nil {
		return fmt.Errorf("audit snapshot: %w", err)
	}
	return tx.Create(audit).Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
