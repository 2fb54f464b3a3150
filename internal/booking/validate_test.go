package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func consultationInput() CreateInput {
	return CreateInput{
		Name:   "Asha Sharma",
		Email:  "asha@example.com",
		Phone:  "9876543210",
		Gender: "female",
		DOB:    "1990-05-20",
	}
}

func kundliInput() CreateInput {
	return CreateInput{
		Name:       "Ravi Kumar",
		Email:      "ravi@example.com",
		Phone:      "9123456780",
		Gender:     "male",
		BirthDate:  "1985-11-02",
		BirthPlace: "Jaipur",
	}
}

func demoInput() CreateInput {
	return CreateInput{
		Name:          "Meena Patel",
		Phone:         "9000000001",
		Gender:        "female",
		DOB:           "1995-03-14",
		ScheduledDate: "2026-09-10",
		ScheduledTime: "14:30",
	}
}

func fieldErrs(t *testing.T, err error) FieldErrors {
	t.Helper()
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	return fe
}

func TestValidateConsultationHappyPath(t *testing.T) {
	cfg, _ := ConfigFor(KindConsultation)
	b, err := Validate(KindConsultation, cfg, consultationInput(), testNow)
	require.NoError(t, err)
	assert.Equal(t, KindConsultation, b.Kind)
	assert.Equal(t, "Asha Sharma", b.Name)
	require.NotNil(t, b.Email)
	assert.Equal(t, "asha@example.com", *b.Email)
	require.NotNil(t, b.DOB)
	assert.Equal(t, 1990, b.DOB.Year())
}

func TestValidateMinimumAgeBoundary(t *testing.T) {
	cfg, _ := ConfigFor(KindConsultation)

	// 18th birthday is today: allowed.
	in := consultationInput()
	in.DOB = "2008-09-01"
	_, err := Validate(KindConsultation, cfg, in, testNow)
	require.NoError(t, err)

	// One day short of 18: rejected.
	in.DOB = "2008-09-02"
	_, err = Validate(KindConsultation, cfg, in, testNow)
	fe := fieldErrs(t, err)
	assert.Contains(t, fe, "dob")
}

func TestValidateMaximumAge(t *testing.T) {
	cfg, _ := ConfigFor(KindConsultation)
	in := consultationInput()
	in.DOB = "1920-01-01"
	_, err := Validate(KindConsultation, cfg, in, testNow)
	fe := fieldErrs(t, err)
	assert.Contains(t, fe, "dob")
}

func TestValidateKundliAllowsAnyPastBirthDate(t *testing.T) {
	cfg, _ := ConfigFor(KindKundli)

	// Charts may be requested for ancestors, so a 1920 date is fine.
	in := kundliInput()
	in.BirthDate = "1920-01-01"
	_, err := Validate(KindKundli, cfg, in, testNow)
	require.NoError(t, err)

	// A future birth date is not.
	in.BirthDate = "2030-01-01"
	_, err = Validate(KindKundli, cfg, in, testNow)
	fe := fieldErrs(t, err)
	assert.Contains(t, fe, "birth_date")
}

func TestValidateKundliRequiresBirthPlace(t *testing.T) {
	cfg, _ := ConfigFor(KindKundli)
	in := kundliInput()
	in.BirthPlace = ""
	_, err := Validate(KindKundli, cfg, in, testNow)
	fe := fieldErrs(t, err)
	assert.Contains(t, fe, "birth_place")
}

func TestValidateKundliBirthTime(t *testing.T) {
	cfg, _ := ConfigFor(KindKundli)

	in := kundliInput()
	in.WithBirthTime = true
	in.BirthTime = "25:00"
	_, err := Validate(KindKundli, cfg, in, testNow)
	fe := fieldErrs(t, err)
	assert.Contains(t, fe, "birth_time")

	in.BirthTime = "04:45"
	b, err := Validate(KindKundli, cfg, in, testNow)
	require.NoError(t, err)
	require.NotNil(t, b.BirthTime)
	assert.Equal(t, "04:45", *b.BirthTime)
}

func TestValidatePhone(t *testing.T) {
	cfg, _ := ConfigFor(KindConsultation)
	for _, phone := range []string{"", "12345", "98765432101", "98765abcde"} {
		in := consultationInput()
		in.Phone = phone
		_, err := Validate(KindConsultation, cfg, in, testNow)
		fe := fieldErrs(t, err)
		assert.Contains(t, fe, "phone", "phone=%q", phone)
	}
}

func TestValidateEmail(t *testing.T) {
	cfg, _ := ConfigFor(KindConsultation)

	in := consultationInput()
	in.Email = "not-an-email"
	_, err := Validate(KindConsultation, cfg, in, testNow)
	fe := fieldErrs(t, err)
	assert.Contains(t, fe, "email")

	// Email is required for paid kinds but optional for demos.
	in.Email = ""
	_, err = Validate(KindConsultation, cfg, in, testNow)
	fe = fieldErrs(t, err)
	assert.Contains(t, fe, "email")

	demoCfg, _ := ConfigFor(KindDemo)
	din := demoInput()
	din.Email = ""
	b, err := Validate(KindDemo, demoCfg, din, testNow)
	require.NoError(t, err)
	assert.Nil(t, b.Email)
}

func TestValidateGender(t *testing.T) {
	cfg, _ := ConfigFor(KindKundli)
	in := kundliInput()
	in.Gender = "prefer_not_to_say" // not in the kundli set
	_, err := Validate(KindKundli, cfg, in, testNow)
	fe := fieldErrs(t, err)
	assert.Contains(t, fe, "gender")
}

func TestValidateDemoSchedule(t *testing.T) {
	cfg, _ := ConfigFor(KindDemo)

	in := demoInput()
	in.ScheduledDate = "2026-08-31" // yesterday
	_, err := Validate(KindDemo, cfg, in, testNow)
	fe := fieldErrs(t, err)
	assert.Contains(t, fe, "date")

	// Booking for today is allowed.
	in = demoInput()
	in.ScheduledDate = "2026-09-01"
	_, err = Validate(KindDemo, cfg, in, testNow)
	require.NoError(t, err)

	in.ScheduledTime = "2pm"
	_, err = Validate(KindDemo, cfg, in, testNow)
	fe = fieldErrs(t, err)
	assert.Contains(t, fe, "time")
}

func TestValidateCollectsAllFieldErrors(t *testing.T) {
	cfg, _ := ConfigFor(KindConsultation)
	_, err := Validate(KindConsultation, cfg, CreateInput{}, testNow)
	fe := fieldErrs(t, err)
	for _, f := range []string{"name", "email", "phone", "gender", "dob"} {
		assert.Contains(t, fe, f)
	}
	assert.Equal(t, "validation failed: dob, email, gender, name, phone", err.Error())
}

func TestFieldErrorsIsNotOtherSentinels(t *testing.T) {
	cfg, _ := ConfigFor(KindConsultation)
	_, err := Validate(KindConsultation, cfg, CreateInput{}, testNow)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestAgeYears(t *testing.T) {
	birth := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 25, ageYears(birth, time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 26, ageYears(birth, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 26, ageYears(birth, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))
}
