package patient

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedToday() civil.Date { return refDay }

func TestStepOf(t *testing.T) {
	assert.Equal(t, StepPersonal, StepOf("birthDate"))
	assert.Equal(t, StepAddress, StepOf("email"))
	assert.Equal(t, StepFamily, StepOf("motherName"))
	assert.Equal(t, StepGuarantor, StepOf("insurances[3].cardNumber"))
	assert.Equal(t, Step(0), StepOf("unknown"))
	assert.Equal(t, "Data Penjamin", StepGuarantor.String())
}

func TestValidateStep_OnlyCurrentStep(t *testing.T) {
	r := validRecord()
	r.IDNumber = ""
	r.Email = "salah"
	r.Insurances[0].Company = ""

	assert.Equal(t, []string{"idNumber"}, fields(ValidateStep(r, StepPersonal, refDay)))
	assert.Equal(t, []string{"email"}, fields(ValidateStep(r, StepAddress, refDay)))
	assert.Empty(t, ValidateStep(r, StepFamily, refDay))
	assert.Equal(t, []string{"insurances[0].company"}, fields(ValidateStep(r, StepGuarantor, refDay)))
}

func TestIntake_NextGatedByCurrentStep(t *testing.T) {
	r := validRecord()
	r.IDNumber = ""
	in := NewIntake(r).WithClock(fixedToday)

	err := in.Next()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, StepPersonal, in.Step())

	r.IDNumber = "3273014102900001"
	require.NoError(t, in.Next())
	assert.Equal(t, StepAddress, in.Step())
}

func TestIntake_LaterStepErrorsDoNotBlockEarlierSteps(t *testing.T) {
	r := validRecord()
	r.Insurances[0].CardNumber = ""
	in := NewIntake(r).WithClock(fixedToday)

	require.NoError(t, in.Next())
	require.NoError(t, in.Next())
	require.NoError(t, in.Next())
	assert.Equal(t, StepGuarantor, in.Step())
	assert.ErrorIs(t, in.Next(), ErrLastStep)

	_, err := in.Submit()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"insurances[0].cardNumber"}, fields(vErr.Errors))
}

func TestIntake_Back(t *testing.T) {
	in := NewIntake(validRecord()).WithClock(fixedToday)
	assert.ErrorIs(t, in.Back(), ErrFirstStep)

	require.NoError(t, in.Next())
	require.NoError(t, in.Back())
	assert.Equal(t, StepPersonal, in.Step())
}

func TestIntake_SubmitOnlyOnFinalStep(t *testing.T) {
	in := NewIntake(validRecord()).WithClock(fixedToday)
	_, err := in.Submit()
	assert.ErrorIs(t, err, ErrNotFinalStep)
}

func TestIntake_SubmitClassifies(t *testing.T) {
	r := validRecord()
	r.PatientType = "Bayi"
	r.Title = "Tuan"
	in := NewIntake(r).WithClock(fixedToday)
	for in.Step() != StepGuarantor {
		require.NoError(t, in.Next())
	}

	sub, err := in.Submit()
	require.NoError(t, err)
	assert.Equal(t, Classification{Age: 34, PatientType: PatientTypeAdult, Title: TitleNyonya}, sub.Classification)
	assert.Same(t, r, sub.Record)
	assert.Equal(t, "Dewasa", r.PatientType)
	assert.Equal(t, "Nyonya", r.Title)
}

func TestNewIntake_NilRecord(t *testing.T) {
	in := NewIntake(nil)
	require.NotNil(t, in.Record())
	assert.Equal(t, StepPersonal, in.Step())
}
