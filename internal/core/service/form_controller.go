package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// FormController manages one create-or-edit form of a resource.
//
//	Closed -> Open -> Submitting -> Closed            (success)
//	                             -> Open + errors     (failure)
type FormController struct {
	client   ports.ResourceClient
	res      domain.Resource
	session  domain.Session
	refresh  RefreshFunc
	notice   notice
	validate *validator.Validate
	log      zerolog.Logger

	mu    sync.Mutex
	state domain.FormState
	draft domain.FormDraft
}

// NewFormController returns a closed form. refresh is invoked every time the
// form closes.
func NewFormController(
	client ports.ResourceClient,
	res domain.Resource,
	session domain.Session,
	notifier ports.Notifier,
	refresh RefreshFunc,
	log zerolog.Logger,
) *FormController {
	return &FormController{
		client:   client,
		res:      res,
		session:  session,
		refresh:  refresh,
		notice:   notice{notifier: notifier, resource: res.Name, now: time.Now},
		validate: validator.New(),
		log:      log.With().Str("resource", res.Name).Str("component", "form").Logger(),
	}
}

// Open starts a new draft. A nil row opens an empty create form; a non-nil
// row opens an edit form pre-filled with the row's current values, targeting
// its id. Any previously chosen attachment is cleared. Opening while a submit
// is in flight is ignored.
func (f *FormController) Open(initial domain.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == domain.FormSubmitting {
		f.log.Debug().Msg("open ignored while submitting")
		return
	}

	draft := domain.FormDraft{
		Mode:   domain.FormCreate,
		Values: make(map[string]string),
		Errors: make(map[string]string),
	}
	if initial != nil {
		draft.Mode = domain.FormEdit
		draft.TargetID = initial.ID(f.res.IDField)
	}
	for _, field := range f.res.Fields(draft.Mode) {
		draft.Values[field.Name] = initial.String(field.Name)
	}

	f.draft = draft
	f.state = domain.FormOpen
}

// SetField updates one draft value and clears its error.
func (f *FormController) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != domain.FormOpen {
		return domain.ErrFormNotOpen
	}
	if !hasField(f.res.Fields(f.draft.Mode), name) {
		return fmt.Errorf("%s form has no field %q", f.res.Name, name)
	}
	f.draft.Values[name] = value
	delete(f.draft.Errors, name)
	return nil
}

// SetAttachment selects the file sent with the next submit. A nil
// attachment clears the selection.
func (f *FormController) SetAttachment(att *domain.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != domain.FormOpen {
		return domain.ErrFormNotOpen
	}
	if att == nil {
		f.draft.Attachment = nil
		return nil
	}
	if f.res.AttachmentField == "" {
		return fmt.Errorf("%s form takes no attachment", f.res.Name)
	}
	a := *att
	a.Field = f.res.AttachmentField
	f.draft.Attachment = &a
	return nil
}

// Submit validates the draft and sends it. Empty fields fail locally with a
// *domain.ValidationError and no request is made. On success the form
// closes; on a server or transport failure it stays open with the draft
// intact so it can be corrected and resubmitted. Field messages returned by
// the server become the draft's errors.
func (f *FormController) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state != domain.FormOpen {
		f.mu.Unlock()
		return domain.ErrFormNotOpen
	}

	fields := f.res.Fields(f.draft.Mode)
	if errs := f.requiredErrors(fields); len(errs) > 0 {
		f.draft.Errors = errs
		f.mu.Unlock()
		return &domain.ValidationError{Fields: copyStrings(errs)}
	}

	f.draft.Errors = make(map[string]string)
	f.state = domain.FormSubmitting
	mode, id := f.draft.Mode, f.draft.TargetID
	payload := f.draft.Payload(fields)
	f.mu.Unlock()

	var err error
	if mode == domain.FormEdit {
		err = f.client.Update(ctx, f.res, f.session, id, payload)
	} else {
		err = f.client.Create(ctx, f.res, f.session, payload)
	}

	if err != nil {
		f.mu.Lock()
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			for name, msg := range ve.Fields {
				f.draft.Errors[name] = msg
			}
		}
		f.state = domain.FormOpen
		f.mu.Unlock()

		f.log.Warn().Err(err).Str("mode", mode.String()).Str("id", id).Msg("submit failed")
		f.notice.send(ctx, domain.LevelFailure, domain.UserMessage(err, domain.DefaultFailureMessage))
		return fmt.Errorf("%s %s: %w", mode, f.res.Singular, err)
	}

	msg := f.res.Messages.Created
	if mode == domain.FormEdit {
		msg = f.res.Messages.Updated
	}
	f.log.Info().Str("mode", mode.String()).Str("id", id).Msg("submit succeeded")
	f.notice.send(ctx, domain.LevelSuccess, msg)
	f.Close(ctx)
	return nil
}

// Close discards the draft and re-syncs the list. The refresh runs on every
// close, including cancel, so the list also picks up out-of-band changes.
func (f *FormController) Close(ctx context.Context) {
	f.mu.Lock()
	f.state = domain.FormClosed
	f.draft = domain.FormDraft{}
	f.mu.Unlock()

	if f.refresh == nil {
		return
	}
	if err := f.refresh(ctx); err != nil {
		f.log.Warn().Err(err).Msg("refresh after close failed")
	}
}

// State returns the lifecycle state.
func (f *FormController) State() domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the current draft.
func (f *FormController) Draft() domain.FormDraft {
	f.mu.Lock()
	defer f.mu.Unlock()

	d := f.draft
	d.Values = copyStrings(f.draft.Values)
	d.Errors = copyStrings(f.draft.Errors)
	if f.draft.Attachment != nil {
		att := *f.draft.Attachment
		d.Attachment = &att
	}
	return d
}

func (f *FormController) requiredErrors(fields []domain.Field) map[string]string {
	errs := make(map[string]string)
	for _, field := range fields {
		if err := f.validate.Var(f.draft.Values[field.Name], "required"); err != nil {
			errs[field.Name] = domain.RequiredFieldMessage
		}
	}
	return errs
}

func hasField(fields []domain.Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func copyStrings(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
