package registration

// Company form field names.
const (
	FieldCompanyName = "companyName"
	FieldWebsite     = "website"
	FieldDescription = "description"
)

type companyFields struct {
	CompanyName string `json:"companyName" validate:"required,min=2"`
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=8"`
	Website     string `json:"website"     validate:"omitempty,url"`
	Location    string `json:"location"    validate:"required,min=2"`
	Description string `json:"description" validate:"max=1000"`
	AgreeTerms  bool   `json:"agreeTerms"  validate:"eq=true"`
}

var companyMessages = map[string]map[string]string{
	FieldCompanyName: {
		"required": "Company name is required",
		"min":      "Company name must be at least 2 characters",
	},
	FieldEmail: {
		"required": "Email is required",
		"email":    "Please enter a valid email address",
	},
	FieldPassword: {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters",
	},
	FieldWebsite: {"url": "Please enter a valid URL"},
	FieldLocation: {
		"required": "Location is required",
		"min":      "Location must be at least 2 characters",
	},
	FieldDescription: {"max": "Description must be at most 1000 characters"},
	FieldAgreeTerms:  {"eq": MsgTermsRequired},
}

// ValidateCompany checks a company registration form. An empty website is treated as
// absent and kept as "" in the record.
func ValidateCompany(form Form) (*CompanyRegistration, error) {
	in := companyFields{
		CompanyName: form.value(FieldCompanyName),
		Email:       form.value(FieldEmail),
		Password:    form.value(FieldPassword),
		Website:     form.value(FieldWebsite),
		Location:    form.value(FieldLocation),
		Description: form.value(FieldDescription),
		AgreeTerms:  checkbox(form.value(FieldAgreeTerms)),
	}

	errs := FieldErrors{}
	defaultEngine().check(in, companyMessages, errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return &CompanyRegistration{
		CompanyName: in.CompanyName,
		Email:       in.Email,
		Password:    in.Password,
		Website:     in.Website,
		Location:    in.Location,
		Description: in.Description,
		AgreeTerms:  in.AgreeTerms,
	}, nil
}
