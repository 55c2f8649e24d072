package registration

import "mime/multipart"

// GuardRegisterInput for POST /register/guard. The form is validated by the registration
// engine rather than by schema so every field gets its own message.
type GuardRegisterInput struct {
	RawBody multipart.Form
}

// CompanyRegisterInput for POST /register/company. Fields are optional at the schema
// level; the registration engine reports what is missing.
type CompanyRegisterInput struct {
	Body struct {
		CompanyName string `json:"companyName" required:"false" doc:"Company name"         example:"Acme Security"`
		Email       string `json:"email"       required:"false" doc:"Contact email"        example:"hr@acme.com"`
		Password    string `json:"password"    required:"false" doc:"Account password"     example:"password1"`
		Website     string `json:"website"     required:"false" doc:"Company website"      example:"https://acme.com"`
		Location    string `json:"location"    required:"false" doc:"City or region"       example:"Pune"`
		Description string `json:"description" required:"false" doc:"About the company"    example:"Event security provider"`
		AgreeTerms  bool   `json:"agreeTerms"  required:"false" doc:"Terms acceptance"     example:"true"`
	}
}
