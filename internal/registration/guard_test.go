package registration

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func validGuardValues() map[string]string {
	return map[string]string{
		FieldFullName:    "Jo Bloggs",
		FieldEmail:       "jo@example.com",
		FieldPassword:    "hunter2hunter2",
		FieldPhone:       "+91 98765-43210",
		FieldRole:        string(RoleBouncer),
		FieldExperience:  "4",
		FieldHourlyRate:  "25",
		FieldDailyRate:   "",
		FieldMonthlyRate: "",
		FieldLocation:    "Pune",
		FieldAgreeTerms:  "true",
	}
}

func validPicture() Upload {
	return NewUpload("me.png", "image/png", []byte("png-bytes"))
}

func validGuardForm() Form {
	return NewForm(validGuardValues()).WithFiles(FieldProfilePicture, validPicture())
}

func guardFormWith(overrides map[string]string) Form {
	values := validGuardValues()
	for k, v := range overrides {
		values[k] = v
	}
	return NewForm(values).WithFiles(FieldProfilePicture, validPicture())
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T (%v)", err, err)
	}
	return fe
}

func TestValidateGuardSuccess(t *testing.T) {
	rec, err := ValidateGuard(validGuardForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Role != RoleBouncer {
		t.Errorf("expected role Bouncer, got %s", rec.Role)
	}
	if rec.Experience != 4 {
		t.Errorf("expected experience 4, got %v", rec.Experience)
	}
	if rec.HourlyRate == nil || *rec.HourlyRate != 25 {
		t.Errorf("expected hourly rate 25, got %v", rec.HourlyRate)
	}
	if rec.DailyRate != nil || rec.MonthlyRate != nil {
		t.Errorf("expected empty rates to be absent, got %v %v", rec.DailyRate, rec.MonthlyRate)
	}
	if rec.ProfilePicture.Filename != "me.png" {
		t.Errorf("expected picture to be carried, got %+v", rec.ProfilePicture)
	}
	rc, err := rec.ProfilePicture.Open()
	if err != nil {
		t.Fatalf("open picture: %v", err)
	}
	defer func() { _ = rc.Close() }()
	if data, _ := io.ReadAll(rc); string(data) != "png-bytes" {
		t.Errorf("unexpected picture content %q", data)
	}
}

func TestValidateGuardAllRatesAbsent(t *testing.T) {
	// fullName "Jo" is valid (min 2); only the rate rule should fail.
	form := guardFormWith(map[string]string{
		FieldFullName:    "Jo",
		FieldHourlyRate:  "",
		FieldDailyRate:   "",
		FieldMonthlyRate: "",
	})

	rec, err := ValidateGuard(form)
	if rec != nil {
		t.Fatal("expected no record on failure")
	}
	fe := fieldErrors(t, err)
	if len(fe) != 1 {
		t.Fatalf("expected exactly one error, got %v", fe)
	}
	if fe[FieldHourlyRate] != "Please provide at least one rate (hourly, daily, or monthly)." {
		t.Fatalf("unexpected hourlyRate message %q", fe[FieldHourlyRate])
	}
}

func TestValidateGuardRateRuleRunsRegardlessOfOtherFields(t *testing.T) {
	form := NewForm(map[string]string{FieldFullName: "J"})

	_, err := ValidateGuard(form)
	fe := fieldErrors(t, err)
	if fe[FieldHourlyRate] != MsgRateRequired {
		t.Fatalf("expected rate message on hourlyRate, got %q", fe[FieldHourlyRate])
	}
	for _, f := range []string{FieldFullName, FieldEmail, FieldPassword, FieldPhone, FieldRole, FieldExperience, FieldLocation, FieldProfilePicture, FieldAgreeTerms} {
		if fe[f] == "" {
			t.Errorf("expected error for %s", f)
		}
	}
}

func TestValidateGuardAnySingleRateSucceeds(t *testing.T) {
	for _, field := range []string{FieldHourlyRate, FieldDailyRate, FieldMonthlyRate} {
		t.Run(field, func(t *testing.T) {
			form := guardFormWith(map[string]string{
				FieldHourlyRate:  "",
				FieldDailyRate:   "",
				FieldMonthlyRate: "",
				field:            "0",
			})
			rec, err := ValidateGuard(form)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			present := map[string]*float64{
				FieldHourlyRate:  rec.HourlyRate,
				FieldDailyRate:   rec.DailyRate,
				FieldMonthlyRate: rec.MonthlyRate,
			}
			for f, v := range present {
				if (f == field) != (v != nil) {
					t.Errorf("field %s presence mismatch: %v", f, v)
				}
			}
		})
	}
}

func TestValidateGuardNumericCoercion(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantMsg string
	}{
		{"negative rate", FieldDailyRate, "-1", "Daily rate cannot be negative"},
		{"non numeric rate", FieldMonthlyRate, "lots", "Monthly rate must be a number"},
		{"nan rejected", FieldHourlyRate, "NaN", "Hourly rate must be a number"},
		{"missing experience", FieldExperience, "", "Experience is required"},
		{"negative experience", FieldExperience, "-2", "Experience cannot be negative"},
		{"text experience", FieldExperience, "five", "Experience must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateGuard(guardFormWith(map[string]string{tt.field: tt.value}))
			fe := fieldErrors(t, err)
			if fe[tt.field] != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, fe[tt.field])
			}
		})
	}
}

func TestValidateGuardTrimsNumbers(t *testing.T) {
	rec, err := ValidateGuard(guardFormWith(map[string]string{FieldExperience: " 0 ", FieldHourlyRate: " 12.5 "}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Experience != 0 || *rec.HourlyRate != 12.5 {
		t.Fatalf("unexpected coercion: %v %v", rec.Experience, *rec.HourlyRate)
	}
}

func TestValidateGuardFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantMsg string
	}{
		{"short name", FieldFullName, "J", "Full name must be at least 2 characters"},
		{"bad email", FieldEmail, "jo@", "Please enter a valid email address"},
		{"short password", FieldPassword, "short", "Password must be at least 8 characters"},
		{"short phone", FieldPhone, "12345", "Phone number must be at least 10 characters"},
		{"phone letters", FieldPhone, "98765abcde", "Please enter a valid phone number"},
		{"phone inner plus", FieldPhone, "98765+43210", "Please enter a valid phone number"},
		{"unknown role", FieldRole, "Ninja", "Please select a valid role"},
		{"empty role", FieldRole, "", "Please select a role"},
		{"long bio", FieldBio, strings.Repeat("b", 501), "Bio must be at most 500 characters"},
		{"short location", FieldLocation, "P", "Location must be at least 2 characters"},
		{"terms unchecked", FieldAgreeTerms, "false", MsgTermsRequired},
		{"terms missing", FieldAgreeTerms, "", MsgTermsRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateGuard(guardFormWith(map[string]string{tt.field: tt.value}))
			fe := fieldErrors(t, err)
			if fe[tt.field] != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, fe[tt.field])
			}
			if len(fe) != 1 {
				t.Fatalf("expected only %s to fail, got %v", tt.field, fe)
			}
		})
	}
}

func TestValidateGuardLengthsCountCodePoints(t *testing.T) {
	// 500 emoji are 1000 UTF-16 units but 500 characters.
	if _, err := ValidateGuard(guardFormWith(map[string]string{FieldBio: strings.Repeat("🛡", 500)})); err != nil {
		t.Fatalf("500 emoji must fit the bio limit: %v", err)
	}
	_, err := ValidateGuard(guardFormWith(map[string]string{FieldBio: strings.Repeat("🛡", 501)}))
	if fe := fieldErrors(t, err); fe[FieldBio] != "Bio must be at most 500 characters" {
		t.Fatalf("unexpected errors %v", fe)
	}
	// A single emoji is one character, below the two-character minimum.
	_, err = ValidateGuard(guardFormWith(map[string]string{FieldFullName: "🛡"}))
	if fe := fieldErrors(t, err); fe[FieldFullName] != "Full name must be at least 2 characters" {
		t.Fatalf("unexpected errors %v", fe)
	}
}

func TestValidateGuardAcceptsEveryRoleAndCheckboxValue(t *testing.T) {
	for _, r := range Roles() {
		if _, err := ValidateGuard(guardFormWith(map[string]string{FieldRole: string(r)})); err != nil {
			t.Errorf("role %q rejected: %v", r, err)
		}
	}
	for _, v := range []string{"true", "on", "1", "TRUE"} {
		if _, err := ValidateGuard(guardFormWith(map[string]string{FieldAgreeTerms: v})); err != nil {
			t.Errorf("agreeTerms %q rejected: %v", v, err)
		}
	}
	if _, err := ValidateGuard(guardFormWith(map[string]string{FieldBio: strings.Repeat("b", 500)})); err != nil {
		t.Errorf("500 character bio rejected: %v", err)
	}
}

func TestValidateGuardProfilePicture(t *testing.T) {
	sized := func(n int, ct string) Upload {
		return NewUpload("pic", ct, make([]byte, n))
	}
	tests := []struct {
		name    string
		files   []Upload
		wantMsg string
	}{
		{"absent", nil, MsgPictureRequired},
		{"two files", []Upload{validPicture(), validPicture()}, MsgPictureRequired},
		{"exactly 5 MiB", []Upload{sized(MaxProfilePictureBytes, "image/jpeg")}, ""},
		{"5 MiB plus one", []Upload{sized(MaxProfilePictureBytes+1, "image/jpeg")}, MsgPictureTooLarge},
		{"oversized gif reports size first", []Upload{sized(MaxProfilePictureBytes+1, "image/gif")}, MsgPictureTooLarge},
		{"gif", []Upload{sized(10, "image/gif")}, MsgPictureType},
		{"jpg alias", []Upload{sized(10, "image/jpg")}, ""},
		{"webp with params", []Upload{sized(10, "image/webp; charset=binary")}, ""},
		{"upper case", []Upload{sized(10, "IMAGE/PNG")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewForm(validGuardValues()).WithFiles(FieldProfilePicture, tt.files...)
			_, err := ValidateGuard(form)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			fe := fieldErrors(t, err)
			if fe[FieldProfilePicture] != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, fe[FieldProfilePicture])
			}
		})
	}
}

func TestSkillList(t *testing.T) {
	g := GuardRegistration{Skills: " first aid, ,crowd control ,"}
	got := g.SkillList()
	if len(got) != 2 || got[0] != "first aid" || got[1] != "crowd control" {
		t.Fatalf("unexpected skills %v", got)
	}
	if (&GuardRegistration{}).SkillList() != nil {
		t.Fatal("expected nil for empty skills")
	}
}

func TestFieldErrorsErrorIsSorted(t *testing.T) {
	fe := FieldErrors{"b": "second", "a": "first"}
	if got := fe.Error(); got != "validation failed: a: first; b: second" {
		t.Fatalf("unexpected error string %q", got)
	}
	if f := fe.Fields(); len(f) != 2 || f[0] != "a" {
		t.Fatalf("unexpected fields %v", f)
	}
}
