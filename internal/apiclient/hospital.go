package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jwalitptl/hospital-dashboard/internal/model"
)

// CreatePatient admits a patient into a section. The section id travels as
// the sectionId query parameter.
func (c *Client) CreatePatient(ctx context.Context, sectionID int64, in model.PatientInput) (model.Patient, bool, error) {
	q := url.Values{}
	q.Set("sectionId", strconv.FormatInt(sectionID, 10))
	return c.Patients.Create(ctx, in, q)
}

// UpdatePatient sends PUT /patients/update/{sectionId}. The patient id is
// carried in the body only.
func (c *Client) UpdatePatient(ctx context.Context, in model.PatientUpdate) error {
	return c.Patients.Update(ctx, in.SectionID, in, nil)
}

func (c *Client) CreateSection(ctx context.Context, in model.SectionInput, personnelIDs []int64) (model.Section, bool, error) {
	return c.Sections.Create(ctx, in, personnelsQuery(personnelIDs))
}

func (c *Client) UpdateSection(ctx context.Context, id int64, in model.SectionInput, personnelIDs []int64) error {
	return c.Sections.Update(ctx, id, in, personnelsQuery(personnelIDs))
}

func personnelsQuery(ids []int64) url.Values {
	q := url.Values{}
	q.Set("personnelsIds", IDList(ids))
	return q
}
