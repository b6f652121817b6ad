package profile

import "github.com/google/uuid"

type ReconcileAction int

const (
	ReconcileInserted ReconcileAction = iota
	ReconcileUpdated
)

// PutExperience reconciles cand against the experience list. The first entry
// whose (title, company) matches is replaced in place, keeping its position
// and id. Otherwise cand gets a fresh id and goes to the head of the list.
func (p *Profile) PutExperience(cand Experience) ReconcileAction {
	for i := range p.Experience {
		if p.Experience[i].Title == cand.Title && p.Experience[i].Company == cand.Company {
			cand.ID = p.Experience[i].ID
			p.Experience[i] = cand
			return ReconcileUpdated
		}
	}
	cand.ID = uuid.New()
	p.Experience = append([]Experience{cand}, p.Experience...)
	return ReconcileInserted
}

// RemoveExperience deletes the entry with the given id, preserving the order
// of the rest. ErrEntryNotFound if no entry has that id.
func (p *Profile) RemoveExperience(id uuid.UUID) error {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

// PutEducation mirrors PutExperience with the (school, degree, fieldofstudy)
// natural key.
func (p *Profile) PutEducation(cand Education) ReconcileAction {
	for i := range p.Education {
		if p.Education[i].School == cand.School &&
			p.Education[i].Degree == cand.Degree &&
			p.Education[i].FieldOfStudy == cand.FieldOfStudy {
			cand.ID = p.Education[i].ID
			p.Education[i] = cand
			return ReconcileUpdated
		}
	}
	cand.ID = uuid.New()
	p.Education = append([]Education{cand}, p.Education...)
	return ReconcileInserted
}

func (p *Profile) RemoveEducation(id uuid.UUID) error {
	for i := range p.Education {
		if p.Education[i].ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}
