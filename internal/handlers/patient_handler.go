package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"simrs-backend/internal/events"
	"simrs-backend/internal/models"
	"simrs-backend/internal/patient"
	"simrs-backend/internal/repository"
	"simrs-backend/pkg/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListPatients daftar pasien dengan pencarian & pagination
// GET /patients?q=&page=&limit=&gender=&sort=&order=
func (h *Handler) ListPatients(c *gin.Context) {
	q := repository.ListQuery{
		Search: c.Query("q"),
		Sort:   c.DefaultQuery("sort", "createdAt"),
		Order:  strings.ToLower(c.DefaultQuery("order", "desc")),
		Page:   utils.QueryInt(c.Query("page"), 1, 0),
		Limit:  utils.QueryInt(c.Query("limit"), defaultPageSize, maxPageSize),
	}
	if g := c.Query("gender"); g != "" {
		gender, err := patient.ParseGender(g)
		if err != nil {
			utils.APIResponse(c, http.StatusBadRequest, false, "Filter gender tidak valid", nil)
			return
		}
		q.Gender = gender
	}

	patients, total, err := h.Patients.List(c.Request.Context(), q)
	if err != nil {
		h.Logger.Error().Err(err).Msg("gagal ambil daftar pasien")
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil data pasien", nil)
		return
	}
	if patients == nil {
		patients = []models.Patient{}
	}

	utils.PaginatedResponse(c, "Daftar Pasien", patients, utils.NewPagination(q.Page, q.Limit, total))
}

// GetPatient detail pasien beserta penjaminnya
func (h *Handler) GetPatient(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "ID pasien tidak valid", nil)
		return
	}

	p, err := h.Patients.GetByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err, "Pasien tidak ditemukan", "Gagal mengambil data pasien")
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Detail Pasien", p)
}

// CreatePatient menyimpan pendaftaran pasien baru.
// Tipe pasien & sapaan selalu dihitung ulang di server.
func (h *Handler) CreatePatient(c *gin.Context) {
	var input patient.Record
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Format data pasien salah", err.Error())
		return
	}

	input.Normalize()
	cls, err := patient.Prepare(&input, h.today())
	if err != nil {
		h.validationFailed(c, err)
		return
	}

	p := models.NewPatient(&input, cls)
	actorID := currentUserID(c)
	if err := h.Patients.Create(c.Request.Context(), p, actorID); err != nil {
		h.Logger.Error().Err(err).Uint64("actor_id", actorID).Msg("gagal simpan pasien")
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal menyimpan data pasien", nil)
		return
	}

	h.publish(c.Request.Context(), events.PatientCreated, p, actorID)
	utils.APIResponse(c, http.StatusCreated, true, "Data Pasien Berhasil Disimpan", p)
}

// UpdatePatient mengganti data pasien. List penjamin diganti utuh sesuai input.
func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "ID pasien tidak valid", nil)
		return
	}

	var input patient.Record
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Format data pasien salah", err.Error())
		return
	}

	input.Normalize()
	cls, err := patient.Prepare(&input, h.today())
	if err != nil {
		h.validationFailed(c, err)
		return
	}

	p := models.NewPatient(&input, cls)
	p.ID = id
	actorID := currentUserID(c)
	if err := h.Patients.Update(c.Request.Context(), p, actorID); err != nil {
		h.repoError(c, err, "Pasien tidak ditemukan", "Gagal menyimpan data pasien")
		return
	}

	h.publish(c.Request.Context(), events.PatientUpdated, p, actorID)
	utils.APIResponse(c, http.StatusOK, true, "Data Pasien Berhasil Diupdate", p)
}

// ClassifyPatient preview tipe pasien & sapaan untuk form (tidak menyimpan apa pun).
// Body sama dengan form pasien, hanya birthDate, gender & maritalStatus yang dibaca.
func (h *Handler) ClassifyPatient(c *gin.Context) {
	var input patient.Record
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Input tidak valid", err.Error())
		return
	}

	var errs []patient.FieldError
	today := h.today()
	if fe := patient.CheckBirthDate(input.BirthDate, today); fe != nil {
		errs = append(errs, fe)
	}
	gender, err := patient.ParseGender(input.Gender)
	switch {
	case strings.TrimSpace(input.Gender) == "":
		errs = append(errs, &patient.RequiredFieldError{Field: "gender", Message: "Jenis kelamin harus dipilih."})
	case err != nil:
		errs = append(errs, err.(patient.FieldError))
	}
	status, err := patient.ParseMaritalStatus(input.MaritalStatus)
	switch {
	case strings.TrimSpace(input.MaritalStatus) == "":
		errs = append(errs, &patient.RequiredFieldError{Field: "maritalStatus", Message: "Status pernikahan wajib dipilih."})
	case err != nil:
		errs = append(errs, err.(patient.FieldError))
	}
	if len(errs) > 0 {
		h.validationFailed(c, &patient.ValidationError{Errors: errs})
		return
	}

	cls, err := patient.ClassifyAt(*input.BirthDate, gender, status, today)
	if err != nil {
		h.validationFailed(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Klasifikasi Pasien", cls)
}

// ValidateStep validasi satu langkah form, dipakai tombol "Lanjut"
// POST /patients/steps/:step/validate
func (h *Handler) ValidateStep(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("step"))
	step := patient.Step(n)
	if err != nil || !step.Valid() {
		utils.APIResponse(c, http.StatusBadRequest, false, "Langkah form tidak valid", nil)
		return
	}

	var input patient.Record
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Format data pasien salah", err.Error())
		return
	}
	input.Normalize()

	if errs := patient.ValidateStep(&input, step, h.today()); len(errs) > 0 {
		h.validationFailed(c, &patient.ValidationError{Errors: errs})
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Langkah "+step.String()+" valid", gin.H{
		"step": int(step),
		"name": step.String(),
	})
}

// validationFailed 422 dengan semua error field sekaligus
func (h *Handler) validationFailed(c *gin.Context, err error) {
	var ve *patient.ValidationError
	if errors.As(err, &ve) {
		utils.ValidationResponse(c, "Data pasien belum lengkap atau tidak valid", ve.Details())
		return
	}
	var fe patient.FieldError
	if errors.As(err, &fe) {
		single := &patient.ValidationError{Errors: []patient.FieldError{fe}}
		utils.ValidationResponse(c, "Data pasien belum lengkap atau tidak valid", single.Details())
		return
	}
	utils.APIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
}

// repoError ErrNotFound -> 404, sisanya 500 dengan pesan umum
func (h *Handler) repoError(c *gin.Context, err error, notFoundMsg, failMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.APIResponse(c, http.StatusNotFound, false, notFoundMsg, nil)
		return
	}
	h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg(failMsg)
	utils.APIResponse(c, http.StatusInternalServerError, false, failMsg, nil)
}
