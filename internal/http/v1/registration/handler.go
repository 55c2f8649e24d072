package registration

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/guardhire/internal/platform/logging"
	regform "github.com/janisto/guardhire/internal/registration"
	"github.com/janisto/guardhire/internal/submit"
	"github.com/janisto/guardhire/internal/ui"
)

// Submitter runs validated registrations.
type Submitter interface {
	SubmitGuard(ctx context.Context, rec *regform.GuardRegistration, setLoading ui.LoadingSetter, notify ui.Notifier) bool
	SubmitCompany(ctx context.Context, rec *regform.CompanyRegistration, setLoading ui.LoadingSetter, notify ui.Notifier) bool
}

// Register wires the registration endpoints. maxUploadBytes caps both request bodies.
func Register(api huma.API, sub Submitter, maxUploadBytes int64) {
	huma.Register(api, huma.Operation{
		OperationID:   "register-guard",
		Method:        http.MethodPost,
		Path:          "/register/guard",
		Summary:       "Register a guard",
		Description:   "Validates a guard sign-up form with a profile picture and forwards it to the marketplace.",
		Tags:          []string{"Registration"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  maxUploadBytes,
		Errors:        []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, func(ctx context.Context, input *GuardRegisterInput) (*SubmissionOutput, error) {
		rec, err := regform.ValidateGuard(regform.FormFromMultipart(&input.RawBody))
		if err != nil {
			return nil, validationError(ctx, "guard", err)
		}
		return submitted(ctx, func(ctx context.Context, r *ui.Recorder) bool {
			return sub.SubmitGuard(ctx, rec, r.Loading(), r)
		})
	})

	huma.Register(api, huma.Operation{
		OperationID:   "register-company",
		Method:        http.MethodPost,
		Path:          "/register/company",
		Summary:       "Register a company",
		Description:   "Validates a company sign-up form and forwards it to the marketplace. The terms flag is not forwarded.",
		Tags:          []string{"Registration"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  maxUploadBytes,
		Errors:        []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, func(ctx context.Context, input *CompanyRegisterInput) (*SubmissionOutput, error) {
		b := input.Body
		form := regform.NewForm(map[string]string{
			regform.FieldCompanyName: b.CompanyName,
			regform.FieldEmail:       b.Email,
			regform.FieldPassword:    b.Password,
			regform.FieldWebsite:     b.Website,
			regform.FieldLocation:    b.Location,
			regform.FieldDescription: b.Description,
			regform.FieldAgreeTerms:  strconv.FormatBool(b.AgreeTerms),
		})
		rec, err := regform.ValidateCompany(form)
		if err != nil {
			return nil, validationError(ctx, "company", err)
		}
		return submitted(ctx, func(ctx context.Context, r *ui.Recorder) bool {
			return sub.SubmitCompany(ctx, rec, r.Loading(), r)
		})
	})
}

// submitted runs one submission against a fresh Recorder and renders what it captured.
func submitted(ctx context.Context, run func(context.Context, *ui.Recorder) bool) (*SubmissionOutput, error) {
	rec := ui.NewRecorder()
	ctx = ui.WithNavigator(ctx, rec)

	if !run(ctx, rec) {
		detail := submit.MsgFallback
		if t, ok := rec.LastToast(); ok && t.Description != "" {
			detail = t.Description
		}
		return nil, huma.Error502BadGateway(detail)
	}

	toasts := rec.Toasts()
	if toasts == nil {
		toasts = []ui.Toast{}
	}
	return &SubmissionOutput{Body: SubmissionResult{
		OK:                 true,
		Notifications:      toasts,
		RedirectTo:         rec.RedirectTo(),
		LoadingTransitions: rec.LoadingTransitions(),
	}}, nil
}

func validationError(ctx context.Context, form string, err error) error {
	var fe regform.FieldErrors
	if !errors.As(err, &fe) {
		applog.LogError(ctx, "registration validation failed unexpectedly", err, zap.String("form", form))
		return huma.Error500InternalServerError("internal server error")
	}

	fields := fe.Fields()
	applog.LogInfo(ctx, "registration rejected", zap.String("form", form), zap.Strings("fields", fields))

	details := make([]error, 0, len(fields))
	for _, f := range fields {
		details = append(details, &huma.ErrorDetail{
			Location: "body." + f,
			Message:  fe[f],
		})
	}
	return huma.Error422UnprocessableEntity("validation failed", details...)
}
