package booking

import (
	"regexp"
	"time"
)

// CreateInput is the raw public form payload. All dates arrive as
// YYYY-MM-DD strings and all times as 24-hour HH:MM.
type CreateInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`

	DOB string `json:"dob"`

	BirthDate     string `json:"birth_date"`
	BirthTime     string `json:"birth_time"`
	BirthPlace    string `json:"birth_place"`
	WithBirthTime bool   `json:"with_birth_time"`

	ScheduledDate string `json:"date"`
	ScheduledTime string `json:"time"`
}

const dateLayout = "2006-01-02"

var (
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	timeRe  = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// Validate checks in against the kind's rules and returns a booking
// populated with the parsed fields. It is pure: slot availability is the
// caller's problem. On failure it returns every violated field.
func Validate(k Kind, cfg KindConfig, in CreateInput, now time.Time) (*Booking, error) {
	fe := FieldErrors{}

	if in.Name == "" {
		fe["name"] = "name is required"
	}
	if in.Phone == "" {
		fe["phone"] = "phone is required"
	} else if !phoneRe.MatchString(in.Phone) {
		fe["phone"] = "please enter a valid 10-digit phone number"
	}

	var email *string
	switch {
	case in.Email == "" && cfg.EmailRequired:
		fe["email"] = "email is required"
	case in.Email != "" && !emailRe.MatchString(in.Email):
		fe["email"] = "please enter a valid email address"
	case in.Email != "":
		email = &in.Email
	}

	if in.Gender == "" {
		fe["gender"] = "gender is required"
	} else if !cfg.validGender(in.Gender) {
		fe["gender"] = "invalid gender selection"
	}

	b := &Booking{
		Kind:   k,
		Name:   in.Name,
		Email:  email,
		Phone:  in.Phone,
		Gender: in.Gender,
	}

	switch k {
	case KindConsultation, KindDemo:
		if dob, ok := parseDate(in.DOB, "dob", fe); ok {
			checkBirthWindow(dob, cfg, now, "dob", fe)
			b.DOB = &dob
		}
	case KindKundli:
		if bd, ok := parseDate(in.BirthDate, "birth_date", fe); ok {
			checkBirthWindow(bd, cfg, now, "birth_date", fe)
			b.BirthDate = &bd
		}
		if in.BirthPlace == "" {
			fe["birth_place"] = "birth place is required"
		} else {
			b.BirthPlace = &in.BirthPlace
		}
		b.WithBirthTime = in.WithBirthTime
		if in.WithBirthTime {
			if !timeRe.MatchString(in.BirthTime) {
				fe["birth_time"] = "invalid time format, use HH:MM"
			} else {
				b.BirthTime = &in.BirthTime
			}
		}
	}

	if k == KindDemo {
		if d, ok := parseDate(in.ScheduledDate, "date", fe); ok {
			today := truncateDay(now)
			if d.Before(today) {
				fe["date"] = "cannot book a demo for past dates"
			} else {
				b.ScheduledDate = &d
			}
		}
		if !timeRe.MatchString(in.ScheduledTime) {
			fe["time"] = "invalid time format, use HH:MM"
		} else {
			b.ScheduledTime = &in.ScheduledTime
		}
	}

	if len(fe) > 0 {
		return nil, fe
	}
	return b, nil
}

func parseDate(s, field string, fe FieldErrors) (time.Time, bool) {
	if s == "" {
		fe[field] = field + " is required"
		return time.Time{}, false
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		fe[field] = "invalid date"
		return time.Time{}, false
	}
	return d, true
}

func checkBirthWindow(birth time.Time, cfg KindConfig, now time.Time, field string, fe FieldErrors) {
	if birth.After(now) {
		fe[field] = "birth date cannot be in the future"
		return
	}
	if cfg.MinAgeYears > 0 && ageYears(birth, now) < cfg.MinAgeYears {
		fe[field] = "you must be at least 18 years old"
		return
	}
	if cfg.MaxAgeYears > 0 && birth.Before(now.AddDate(-cfg.MaxAgeYears, 0, 0)) {
		fe[field] = "invalid date of birth"
	}
}

// ageYears computes the calendar-aware age: the year difference, minus one
// if this year's birthday has not happened yet.
func ageYears(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
