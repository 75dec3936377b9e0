package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simrs-backend/internal/events"
	"simrs-backend/internal/models"
	"simrs-backend/internal/patient"
	"simrs-backend/internal/reminder"
	"simrs-backend/internal/repository"
	"simrs-backend/internal/repository/repotest"
	"simrs-backend/pkg/utils"
)

var refDay = civil.Date{Year: 2024, Month: time.June, Day: 15}

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type envelope struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       json.RawMessage        `json:"data"`
	Pagination *utils.Pagination      `json:"pagination"`
	Errors     []patient.FieldMessage `json:"errors"`
}

type fixture struct {
	h        *Handler
	patients *repotest.MockPatientRepository
	users    *repotest.MockUserRepository
	pub      *recordingPublisher
	router   *gin.Engine
}

// newFixture router tanpa AuthMiddleware, userID langsung di-set (user 5)
func newFixture() *fixture {
	f := &fixture{
		patients: &repotest.MockPatientRepository{},
		users:    &repotest.MockUserRepository{},
		pub:      &recordingPublisher{},
	}
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	f.h = New(f.patients, f.users, f.pub, reminder.NewService(f.patients, f.users, nil, zerolog.Nop()), tokens, zerolog.Nop(), 30)
	f.h.Today = func() civil.Date { return refDay }

	r := gin.New()
	r.POST("/auth/login", f.h.Login)
	r.POST("/auth/register", f.h.Register)
	auth := r.Group("/", func(c *gin.Context) { c.Set("userID", uint64(5)); c.Next() })
	auth.GET("/auth/me", f.h.GetMe)
	auth.GET("/patients", f.h.ListPatients)
	auth.GET("/patients/:id", f.h.GetPatient)
	auth.POST("/patients", f.h.CreatePatient)
	auth.PUT("/patients/:id", f.h.UpdatePatient)
	auth.POST("/patients/classify", f.h.ClassifyPatient)
	auth.POST("/patients/steps/:step/validate", f.h.ValidateStep)
	auth.GET("/guarantors/by-patient/:id", f.h.GetGuarantorsByPatient)
	auth.GET("/guarantors/expiring", f.h.GetExpiringGuarantors)
	auth.GET("/dashboard/stats", f.h.GetDashboardStats)
	f.router = r
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"fullName":      "  Siti Aminah ",
		"idType":        "KTP",
		"idNumber":      "3174000000000001",
		"birthDate":     "1990-04-02",
		"gender":        "female",
		"maritalStatus": "married",
		"patientType":   "Bayi", // harus ditimpa server
		"title":         "Tuan",
		"insurances": []map[string]interface{}{
			{"type": "bpjs", "company": "BPJS Kesehatan", "cardNumber": "0001234", "expiryDate": "2025-01-31"},
			{"type": "asuransi", "company": "Prudential", "cardNumber": "PR-77"},
		},
	}
}

func TestCreatePatient_Success(t *testing.T) {
	f := newFixture()
	var saved *models.Patient
	f.patients.CreateFunc = func(ctx context.Context, p *models.Patient, actorID uint64) error {
		assert.Equal(t, uint64(5), actorID)
		p.ID = 42
		p.MRNumber = models.FormatMRNumber(p.ID)
		saved = p
		return nil
	}

	w, env := f.do(t, http.MethodPost, "/patients", validBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)

	require.NotNil(t, saved)
	assert.Equal(t, "Siti Aminah", saved.FullName)
	assert.Equal(t, "ktp", saved.IDType)
	assert.Equal(t, patient.PatientTypeAdult, saved.PatientType)
	assert.Equal(t, patient.TitleNyonya, saved.Title)
	require.Len(t, saved.Guarantors, 2)
	assert.Equal(t, 1, saved.Guarantors[1].Position)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "MR000042", data["mrNumber"])
	assert.Equal(t, "1990-04-02", data["birthDate"])
	assert.Equal(t, "Nyonya", data["title"])

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, events.PatientCreated, f.pub.events[0].Type)
	assert.Equal(t, uint64(42), f.pub.events[0].PatientID)
}

func TestCreatePatient_AllErrorsAtOnce(t *testing.T) {
	f := newFixture()
	body := map[string]interface{}{
		"fullName":      " ",
		"birthDate":     "2030-01-01",
		"gender":        "",
		"maritalStatus": "complicated",
		"insurances":    []map[string]interface{}{{"type": "bpjs"}},
	}

	w, env := f.do(t, http.MethodPost, "/patients", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Success)

	fields := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{
		"fullName", "idNumber", "birthDate", "gender", "maritalStatus",
		"insurances[0].company", "insurances[0].cardNumber",
	}, fields)
	assert.Equal(t, "date_range", env.Errors[2].Code)
	assert.Equal(t, "invalid_input", env.Errors[4].Code)

	assert.Zero(t, f.patients.CreateCallCount)
	assert.Empty(t, f.pub.events)
}

func TestCreatePatient_BadJSON(t *testing.T) {
	f := newFixture()
	body := validBody()
	body["birthDate"] = "02/04/1990"

	w, _ := f.do(t, http.MethodPost, "/patients", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, f.patients.CreateCallCount)
}

func TestCreatePatient_EmptyBirthDate(t *testing.T) {
	f := newFixture()
	body := validBody()
	body["birthDate"] = ""
	body["gender"] = ""

	w, env := f.do(t, http.MethodPost, "/patients", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	require.Len(t, env.Errors, 2)
	assert.Equal(t, "birthDate", env.Errors[0].Field)
	assert.Equal(t, "required", env.Errors[0].Code)
	assert.Equal(t, "gender", env.Errors[1].Field)
	assert.Zero(t, f.patients.CreateCallCount)
}

func TestCreatePatient_RepositoryFailure(t *testing.T) {
	f := newFixture()
	f.patients.CreateFunc = func(ctx context.Context, p *models.Patient, actorID uint64) error {
		return errors.New("connection refused")
	}

	w, env := f.do(t, http.MethodPost, "/patients", validBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Gagal menyimpan data pasien", env.Message)
	assert.Empty(t, f.pub.events)
}

func TestCreatePatient_PublishFailureStillSaves(t *testing.T) {
	f := newFixture()
	f.pub.err = errors.New("broker down")

	w, _ := f.do(t, http.MethodPost, "/patients", validBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, f.pub.events, 1)
}

func TestUpdatePatient(t *testing.T) {
	t.Run("reclassifies and emits update", func(t *testing.T) {
		f := newFixture()
		var updated *models.Patient
		f.patients.UpdateFunc = func(ctx context.Context, p *models.Patient, actorID uint64) error {
			updated = p
			return nil
		}
		body := validBody()
		body["maritalStatus"] = "widowed"

		w, _ := f.do(t, http.MethodPut, "/patients/9", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NotNil(t, updated)
		assert.Equal(t, uint64(9), updated.ID)
		assert.Equal(t, patient.TitleNona, updated.Title)
		require.Len(t, f.pub.events, 1)
		assert.Equal(t, events.PatientUpdated, f.pub.events[0].Type)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.patients.UpdateFunc = func(ctx context.Context, p *models.Patient, actorID uint64) error {
			return repository.ErrNotFound
		}
		w, _ := f.do(t, http.MethodPut, "/patients/9", validBody())
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, f.pub.events)
	})

	t.Run("bad id", func(t *testing.T) {
		f := newFixture()
		w, _ := f.do(t, http.MethodPut, "/patients/abc", validBody())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetPatient(t *testing.T) {
	f := newFixture()
	f.patients.GetByIDFunc = func(ctx context.Context, id uint64) (*models.Patient, error) {
		if id != 3 {
			return nil, repository.ErrNotFound
		}
		return &models.Patient{ID: 3, MRNumber: "MR000003", FullName: "Budi", BirthDate: models.NewDate(refDay)}, nil
	}

	w, env := f.do(t, http.MethodGet, "/patients/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"mrNumber":"MR000003"`)

	w, _ = f.do(t, http.MethodGet, "/patients/4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	f.patients.GetByIDFunc = func(ctx context.Context, id uint64) (*models.Patient, error) {
		return nil, errors.New("db down")
	}
	w, _ = f.do(t, http.MethodGet, "/patients/3", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListPatients(t *testing.T) {
	f := newFixture()
	var got repository.ListQuery
	f.patients.ListFunc = func(ctx context.Context, q repository.ListQuery) ([]models.Patient, int64, error) {
		got = q
		return []models.Patient{{ID: 1, FullName: "Ani"}}, 21, nil
	}

	w, env := f.do(t, http.MethodGet, "/patients?q=ani&page=2&limit=500&gender=FEMALE&sort=name&order=ASC", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "ani", got.Search)
	assert.Equal(t, patient.GenderFemale, got.Gender)
	assert.Equal(t, "name", got.Sort)
	assert.Equal(t, "asc", got.Order)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, maxPageSize, got.Limit)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(21), env.Pagination.TotalItems)
	assert.Equal(t, 1, env.Pagination.TotalPages)

	w, _ = f.do(t, http.MethodGet, "/patients?gender=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPatients_EmptyIsArray(t *testing.T) {
	f := newFixture()
	w, env := f.do(t, http.MethodGet, "/patients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
	assert.Equal(t, 1, env.Pagination.Page)
	assert.Equal(t, defaultPageSize, env.Pagination.Limit)
}

func TestClassifyPatient(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		body   map[string]interface{}
		code   int
		expect patient.Classification
	}{
		{"infant", map[string]interface{}{"birthDate": "2024-01-10", "gender": "male", "maritalStatus": "single"},
			http.StatusOK, patient.Classification{Age: 0, PatientType: patient.PatientTypeInfant, Title: patient.TitleBayi}},
		{"child at one", map[string]interface{}{"birthDate": "2023-06-15", "gender": "female", "maritalStatus": "single"},
			http.StatusOK, patient.Classification{Age: 1, PatientType: patient.PatientTypeChild, Title: patient.TitleAnak}},
		{"adult male", map[string]interface{}{"birthDate": "2010-06-15", "gender": "male", "maritalStatus": "single"},
			http.StatusOK, patient.Classification{Age: 14, PatientType: patient.PatientTypeAdult, Title: patient.TitleTuan}},
		{"adult from datetime", map[string]interface{}{"birthDate": "1990-04-02T08:00:00Z", "gender": "Female", "maritalStatus": "MARRIED"},
			http.StatusOK, patient.Classification{Age: 34, PatientType: patient.PatientTypeAdult, Title: patient.TitleNyonya}},
		{"future birth", map[string]interface{}{"birthDate": "2024-06-16", "gender": "male", "maritalStatus": "single"},
			http.StatusUnprocessableEntity, patient.Classification{}},
		{"before 1900", map[string]interface{}{"birthDate": "1899-12-31", "gender": "female", "maritalStatus": "married"},
			http.StatusUnprocessableEntity, patient.Classification{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := f.do(t, http.MethodPost, "/patients/classify", tt.body)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				require.Len(t, env.Errors, 1)
				assert.Equal(t, "birthDate", env.Errors[0].Field)
				assert.Equal(t, "date_range", env.Errors[0].Code)
				return
			}
			var got patient.Classification
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestClassifyPatient_MissingFields(t *testing.T) {
	f := newFixture()
	w, env := f.do(t, http.MethodPost, "/patients/classify", map[string]interface{}{"gender": "other"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 3)
	assert.Equal(t, "birthDate", env.Errors[0].Field)
	assert.Equal(t, "invalid_input", env.Errors[1].Code)
	assert.Equal(t, "required", env.Errors[2].Code)
}

func TestValidateStep(t *testing.T) {
	f := newFixture()
	body := validBody()
	body["idNumber"] = ""
	body["insurances"] = []map[string]interface{}{{"type": "bpjs"}}

	w, env := f.do(t, http.MethodPost, "/patients/steps/1/validate", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "idNumber", env.Errors[0].Field)

	// error penjamin tidak menghalangi langkah 2 dan 3
	w, _ = f.do(t, http.MethodPost, "/patients/steps/2/validate", body)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = f.do(t, http.MethodPost, "/patients/steps/4/validate", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, env.Errors, 2)

	w, _ = f.do(t, http.MethodPost, "/patients/steps/5/validate", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGuarantorsByPatient(t *testing.T) {
	f := newFixture()
	f.patients.GuarantorsByPatientFunc = func(ctx context.Context, id uint64) ([]models.Guarantor, error) {
		if id == 1 {
			return nil, nil
		}
		return nil, repository.ErrNotFound
	}

	w, env := f.do(t, http.MethodGet, "/guarantors/by-patient/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, _ = f.do(t, http.MethodGet, "/guarantors/by-patient/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpiringGuarantors(t *testing.T) {
	f := newFixture()
	var gotTo civil.Date
	f.patients.ExpiringGuarantorsFunc = func(ctx context.Context, from, to civil.Date) ([]models.Guarantor, error) {
		gotTo = to
		exp := models.NewDate(refDay.AddDays(2))
		return []models.Guarantor{{ID: 1, PatientID: 2, Type: "bpjs", ExpiryDate: &exp}}, nil
	}

	w, env := f.do(t, http.MethodGet, "/guarantors/expiring?days=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, refDay.AddDays(7), gotTo)

	var report reminder.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	require.Len(t, report.Items, 1)
	assert.Equal(t, 2, report.Items[0].DaysLeft)

	_, _ = f.do(t, http.MethodGet, "/guarantors/expiring", nil)
	assert.Equal(t, refDay.AddDays(30), gotTo)

	w, _ = f.do(t, http.MethodGet, "/guarantors/expiring?days=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture()
	f.patients.StatsFunc = func(ctx context.Context, today civil.Date, window int) (*models.PatientStats, error) {
		assert.Equal(t, refDay, today)
		assert.Equal(t, 30, window)
		return &models.PatientStats{TotalPatients: 3, ByPatientType: map[string]int64{"Dewasa": 3}}, nil
	}

	w, env := f.do(t, http.MethodGet, "/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"totalPatients":3`)

	f.patients.StatsFunc = nil
	w, _ = f.do(t, http.MethodGet, "/dashboard/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	hash, err := utils.HashPassword("rahasia123")
	require.NoError(t, err)

	var savedToken string
	f.users.FindByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		if username != "siti" {
			return nil, repository.ErrNotFound
		}
		return &models.User{ID: 8, Username: "siti", FullName: "Siti", Role: models.RoleRegistrar, PasswordHash: hash}, nil
	}
	f.users.UpdateFCMTokenFunc = func(ctx context.Context, id uint64, token string) error {
		savedToken = token
		return nil
	}

	w, env := f.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "siti", "password": "rahasia123", "fcm_token": "device-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "device-1", savedToken)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	claims, err := f.h.Tokens.ValidateToken(data.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), claims.UserID)
	assert.Equal(t, models.RoleRegistrar, claims.Role)

	w, _ = f.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "siti", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "nobody", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister(t *testing.T) {
	f := newFixture()
	var created *models.User
	f.users.CreateFunc = func(ctx context.Context, u *models.User) error {
		u.ID = 11
		created = u
		return nil
	}

	input := map[string]string{"username": "rina", "full_name": "Rina", "password": "rahasia123", "role": "nurse"}
	w, env := f.do(t, http.MethodPost, "/auth/register", input)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, created)
	assert.True(t, utils.CheckPassword("rahasia123", created.PasswordHash))
	assert.NotContains(t, string(env.Data), "rahasia123")
	assert.NotContains(t, string(env.Data), created.PasswordHash)

	input["role"] = "janitor"
	w, _ = f.do(t, http.MethodPost, "/auth/register", input)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	input["role"] = "nurse"
	f.users.FindByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{ID: 11, Username: username}, nil
	}
	w, _ = f.do(t, http.MethodPost, "/auth/register", input)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetMe(t *testing.T) {
	f := newFixture()
	f.users.FindByIDFunc = func(ctx context.Context, id uint64) (*models.User, error) {
		return &models.User{ID: id, Username: "siti", Role: models.RoleRegistrar}, nil
	}

	w, env := f.do(t, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"id":5`)
	assert.Contains(t, string(env.Data), `"username":"siti"`)
}
