// Package repotest berisi mock repository untuk test handler & service.
package repotest

import (
	"context"
	"errors"
	"sync/atomic"

	"cloud.google.com/go/civil"

	"simrs-backend/internal/models"
	"simrs-backend/internal/repository"
)

// Compile-time check
var (
	_ repository.PatientRepository = (*MockPatientRepository)(nil)
	_ repository.UserRepository    = (*MockUserRepository)(nil)
)

type MockPatientRepository struct {
	ListFunc                func(ctx context.Context, q repository.ListQuery) ([]models.Patient, int64, error)
	GetByIDFunc             func(ctx context.Context, id uint64) (*models.Patient, error)
	CreateFunc              func(ctx context.Context, p *models.Patient, actorID uint64) error
	UpdateFunc              func(ctx context.Context, p *models.Patient, actorID uint64) error
	GuarantorsByPatientFunc func(ctx context.Context, patientID uint64) ([]models.Guarantor, error)
	ExpiringGuarantorsFunc  func(ctx context.Context, from, to civil.Date) ([]models.Guarantor, error)
	StatsFunc               func(ctx context.Context, today civil.Date, expiryWindow int) (*models.PatientStats, error)

	CreateCallCount int32
	UpdateCallCount int32
}

func (m *MockPatientRepository) List(ctx context.Context, q repository.ListQuery) ([]models.Patient, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return nil, 0, nil
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id uint64) (*models.Patient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *MockPatientRepository) Create(ctx context.Context, p *models.Patient, actorID uint64) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p, actorID)
	}
	return nil
}

func (m *MockPatientRepository) Update(ctx context.Context, p *models.Patient, actorID uint64) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p, actorID)
	}
	return nil
}

func (m *MockPatientRepository) GuarantorsByPatient(ctx context.Context, patientID uint64) ([]models.Guarantor, error) {
	if m.GuarantorsByPatientFunc != nil {
		return m.GuarantorsByPatientFunc(ctx, patientID)
	}
	return nil, repository.ErrNotFound
}

func (m *MockPatientRepository) ExpiringGuarantors(ctx context.Context, from, to civil.Date) ([]models.Guarantor, error) {
	if m.ExpiringGuarantorsFunc != nil {
		return m.ExpiringGuarantorsFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *MockPatientRepository) Stats(ctx context.Context, today civil.Date, expiryWindow int) (*models.PatientStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, today, expiryWindow)
	}
	return nil, errors.New("StatsFunc not implemented in mock")
}

type MockUserRepository struct {
	FindByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	FindByIDFunc       func(ctx context.Context, id uint64) (*models.User, error)
	CreateFunc         func(ctx context.Context, u *models.User) error
	UpdateFCMTokenFunc func(ctx context.Context, id uint64, token string) error
	StaffTokensFunc    func(ctx context.Context) ([]string, error)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepository) UpdateFCMToken(ctx context.Context, id uint64, token string) error {
	if m.UpdateFCMTokenFunc != nil {
		return m.UpdateFCMTokenFunc(ctx, id, token)
	}
	return nil
}

func (m *MockUserRepository) StaffTokens(ctx context.Context) ([]string, error) {
	if m.StaffTokensFunc != nil {
		return m.StaffTokensFunc(ctx)
	}
	return nil, nil
}
