package registration

import (
	"mime"
	"slices"
	"strings"
)

// Guard form field names, shared with the multipart wire contract.
const (
	FieldFullName       = "fullName"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldPhone          = "phone"
	FieldRole           = "role"
	FieldExperience     = "experience"
	FieldHourlyRate     = "hourlyRate"
	FieldDailyRate      = "dailyRate"
	FieldMonthlyRate    = "monthlyRate"
	FieldBio            = "bio"
	FieldSkills         = "skills"
	FieldLocation       = "location"
	FieldProfilePicture = "profilePicture"
	FieldAgreeTerms     = "agreeTerms"
)

const (
	// MaxProfilePictureBytes is the largest accepted profile picture (5 MiB, inclusive).
	MaxProfilePictureBytes = 5 * 1024 * 1024

	MsgRateRequired       = "Please provide at least one rate (hourly, daily, or monthly)."
	MsgPictureRequired    = "Profile picture is required"
	MsgPictureTooLarge    = "Max file size is 5MB."
	MsgPictureType        = "Only .jpg, .jpeg, .png and .webp formats are supported."
	MsgTermsRequired      = "You must agree to the terms and conditions"
	msgExperienceRequired = "Experience is required"
)

var acceptedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

var numberLabels = map[string]string{
	FieldExperience:  "Experience",
	FieldHourlyRate:  "Hourly rate",
	FieldDailyRate:   "Daily rate",
	FieldMonthlyRate: "Monthly rate",
}

// guardFields carries the coerced guard input through the struct validator.
// Length bounds count Unicode code points, so an emoji is one character.
type guardFields struct {
	FullName    string   `json:"fullName"    validate:"required,min=2"`
	Email       string   `json:"email"       validate:"required,email"`
	Password    string   `json:"password"    validate:"required,min=8"`
	Phone       string   `json:"phone"       validate:"required,min=10,phone"`
	Role        string   `json:"role"        validate:"required,guardrole"`
	Experience  *float64 `json:"experience"  validate:"omitempty,gte=0"`
	HourlyRate  *float64 `json:"hourlyRate"  validate:"omitempty,gte=0"`
	DailyRate   *float64 `json:"dailyRate"   validate:"omitempty,gte=0"`
	MonthlyRate *float64 `json:"monthlyRate" validate:"omitempty,gte=0"`
	Bio         string   `json:"bio"         validate:"max=500"`
	Skills      string   `json:"skills"`
	Location    string   `json:"location"    validate:"required,min=2"`
	AgreeTerms  bool     `json:"agreeTerms"  validate:"eq=true"`
}

var guardMessages = map[string]map[string]string{
	FieldFullName: {
		"required": "Full name is required",
		"min":      "Full name must be at least 2 characters",
	},
	FieldEmail: {
		"required": "Email is required",
		"email":    "Please enter a valid email address",
	},
	FieldPassword: {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters",
	},
	FieldPhone: {
		"required": "Phone number is required",
		"min":      "Phone number must be at least 10 characters",
		tagPhone:   "Please enter a valid phone number",
	},
	FieldRole: {
		"required":   "Please select a role",
		tagGuardRole: "Please select a valid role",
	},
	FieldExperience:  {"gte": "Experience cannot be negative"},
	FieldHourlyRate:  {"gte": "Hourly rate cannot be negative"},
	FieldDailyRate:   {"gte": "Daily rate cannot be negative"},
	FieldMonthlyRate: {"gte": "Monthly rate cannot be negative"},
	FieldBio:         {"max": "Bio must be at most 500 characters"},
	FieldLocation: {
		"required": "Location is required",
		"min":      "Location must be at least 2 characters",
	},
	FieldAgreeTerms: {"eq": MsgTermsRequired},
}

// ValidateGuard checks a guard registration form. It returns either the typed record or
// FieldErrors with one message per offending field, never both.
func ValidateGuard(form Form) (*GuardRegistration, error) {
	errs := FieldErrors{}

	in := guardFields{
		FullName:   form.value(FieldFullName),
		Email:      form.value(FieldEmail),
		Password:   form.value(FieldPassword),
		Phone:      form.value(FieldPhone),
		Role:       form.value(FieldRole),
		Bio:        form.value(FieldBio),
		Skills:     form.value(FieldSkills),
		Location:   form.value(FieldLocation),
		AgreeTerms: checkbox(form.value(FieldAgreeTerms)),
	}

	// Coercion failures are recorded first so they win over tag violations.
	numbers := []struct {
		field string
		dst   **float64
	}{
		{FieldExperience, &in.Experience},
		{FieldHourlyRate, &in.HourlyRate},
		{FieldDailyRate, &in.DailyRate},
		{FieldMonthlyRate, &in.MonthlyRate},
	}
	for _, n := range numbers {
		v, ok := optionalNumber(form.value(n.field))
		if !ok {
			errs.set(n.field, numberLabels[n.field]+" must be a number")
			continue
		}
		*n.dst = v
	}
	if in.Experience == nil {
		if _, failed := errs[FieldExperience]; !failed {
			errs.set(FieldExperience, msgExperienceRequired)
		}
	}

	defaultEngine().check(in, guardMessages, errs)

	picture, msg := checkProfilePicture(form.Files[FieldProfilePicture])
	if msg != "" {
		errs.set(FieldProfilePicture, msg)
	}

	applyRateRule(form, errs)

	if len(errs) > 0 {
		return nil, errs
	}
	return &GuardRegistration{
		FullName:       in.FullName,
		Email:          in.Email,
		Password:       in.Password,
		Phone:          in.Phone,
		Role:           Role(in.Role),
		Experience:     *in.Experience,
		HourlyRate:     in.HourlyRate,
		DailyRate:      in.DailyRate,
		MonthlyRate:    in.MonthlyRate,
		Bio:            in.Bio,
		Skills:         in.Skills,
		Location:       in.Location,
		ProfilePicture: picture,
		AgreeTerms:     in.AgreeTerms,
	}, nil
}

// applyRateRule requires at least one of the three rates. It runs after every per-field
// rule and places its message on hourlyRate because that is the first rate input shown,
// not because hourlyRate is the faulty field.
func applyRateRule(form Form, errs FieldErrors) {
	for _, f := range []string{FieldHourlyRate, FieldDailyRate, FieldMonthlyRate} {
		if strings.TrimSpace(form.value(f)) != "" {
			return
		}
	}
	errs.set(FieldHourlyRate, MsgRateRequired)
}

// checkProfilePicture applies presence, then size, then type, and reports the first failure.
func checkProfilePicture(files []Upload) (Upload, string) {
	if len(files) != 1 {
		return Upload{}, MsgPictureRequired
	}
	u := files[0]
	if u.Size > MaxProfilePictureBytes {
		return Upload{}, MsgPictureTooLarge
	}
	if !slices.Contains(acceptedImageTypes, normalizeMediaType(u.ContentType)) {
		return Upload{}, MsgPictureType
	}
	return u, ""
}

func normalizeMediaType(ct string) string {
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
