package submit

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"github.com/janisto/guardhire/internal/registration"
)

// Part is one entry of a multipart payload: either a text value or a file.
type Part struct {
	Name  string
	Value string
	File  *registration.Upload
}

// MultipartPayload is an ordered, sparse list of parts. Only entries explicitly added
// are transmitted, so an optional field left blank never shows up as an empty part.
type MultipartPayload struct {
	parts []Part
}

// Set appends a text part.
func (p *MultipartPayload) Set(name, value string) {
	p.parts = append(p.parts, Part{Name: name, Value: value})
}

// SetIfNotEmpty appends a text part only when value is non-empty.
func (p *MultipartPayload) SetIfNotEmpty(name, value string) {
	if value != "" {
		p.Set(name, value)
	}
}

// SetNumber appends a number in its shortest decimal form when v is non-nil.
func (p *MultipartPayload) SetNumber(name string, v *float64) {
	if v != nil {
		p.Set(name, formatNumber(*v))
	}
}

// AttachFile appends a binary part.
func (p *MultipartPayload) AttachFile(name string, u registration.Upload) {
	p.parts = append(p.parts, Part{Name: name, File: &u})
}

// Parts returns the parts in transmission order.
func (p *MultipartPayload) Parts() []Part {
	out := make([]Part, len(p.parts))
	copy(out, p.parts)
	return out
}

// Value returns the first text part named name.
func (p *MultipartPayload) Value(name string) (string, bool) {
	for _, part := range p.parts {
		if part.Name == name && part.File == nil {
			return part.Value, true
		}
	}
	return "", false
}

// Names returns the part names in transmission order.
func (p *MultipartPayload) Names() []string {
	names := make([]string, len(p.parts))
	for i, part := range p.parts {
		names[i] = part.Name
	}
	return names
}

// Encode renders the payload as a multipart/form-data body and returns it with its
// Content-Type header value.
func (p *MultipartPayload) Encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, part := range p.parts {
		if part.File == nil {
			if err := mw.WriteField(part.Name, part.Value); err != nil {
				return nil, "", fmt.Errorf("writing field %s: %w", part.Name, err)
			}
			continue
		}
		if err := writeFile(mw, part.Name, *part.File); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

func writeFile(mw *multipart.Writer, name string, u registration.Upload) error {
	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", multipart.FileContentDisposition(name, u.Filename))
	h.Set("Content-Type", contentType)
	w, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	rc, err := u.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("copying %s: %w", name, err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildGuardPayload assembles the guard sign-up body entry by entry. Required scalars are
// always present; rates, bio and skills only when the user supplied them.
func BuildGuardPayload(rec *registration.GuardRegistration) *MultipartPayload {
	p := &MultipartPayload{}
	p.Set(registration.FieldFullName, rec.FullName)
	p.Set(registration.FieldEmail, rec.Email)
	p.Set(registration.FieldPassword, rec.Password)
	p.Set(registration.FieldPhone, rec.Phone)
	p.Set(registration.FieldRole, string(rec.Role))
	p.Set(registration.FieldExperience, formatNumber(rec.Experience))
	p.SetNumber(registration.FieldHourlyRate, rec.HourlyRate)
	p.SetNumber(registration.FieldDailyRate, rec.DailyRate)
	p.SetNumber(registration.FieldMonthlyRate, rec.MonthlyRate)
	p.SetIfNotEmpty(registration.FieldBio, rec.Bio)
	p.SetIfNotEmpty(registration.FieldSkills, rec.Skills)
	p.Set(registration.FieldLocation, rec.Location)
	p.AttachFile(registration.FieldProfilePicture, rec.ProfilePicture)
	return p
}

// CompanyPayload is the JSON body of a company sign-up. It has no terms flag: agreeing
// to the terms gates the form and is not sent.
type CompanyPayload struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// BuildCompanyPayload copies every transmitted field of rec.
func BuildCompanyPayload(rec *registration.CompanyRegistration) CompanyPayload {
	return CompanyPayload{
		CompanyName: rec.CompanyName,
		Email:       rec.Email,
		Password:    rec.Password,
		Website:     rec.Website,
		Location:    rec.Location,
		Description: rec.Description,
	}
}
