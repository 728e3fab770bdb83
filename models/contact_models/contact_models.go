package contact_models

import (
	"strings"
	"time"

	"github.com/xronetech/leads/models/shared_models"
)

// ContactDraft is the "Send Us a Message" form.
type ContactDraft struct {
	Name    string `json:"name" validate:"min=2,max=100"`
	Phone   string `json:"phone" validate:"phone"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"min=10,max=1000,clean"`
}

func NewContactDraft() *ContactDraft {
	return &ContactDraft{}
}

func (d ContactDraft) Normalized() ContactDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.Message = strings.TrimSpace(d.Message)
	return d
}

func (d *ContactDraft) Clone() *ContactDraft {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// ContactPatch carries a partial update; nil fields are left untouched.
type ContactPatch struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Message *string `json:"message"`
}

// Apply writes the patch and returns the names of the edited fields.
func (d *ContactDraft) Apply(p ContactPatch) []string {
	var changed []string
	for _, f := range []struct {
		dst  *string
		src  *string
		name string
	}{
		{&d.Name, p.Name, "name"},
		{&d.Phone, p.Phone, "phone"},
		{&d.Email, p.Email, "email"},
		{&d.Message, p.Message, "message"},
	} {
		if f.src != nil {
			*f.dst = *f.src
			changed = append(changed, f.name)
		}
	}
	return changed
}

// Payload snapshots the draft into the contact submission envelope.
func (d ContactDraft) Payload(now time.Time) (shared_models.SubmissionPayload, error) {
	return shared_models.NewSubmissionPayload(shared_models.FormTypeContact, d.Normalized(), now)
}
