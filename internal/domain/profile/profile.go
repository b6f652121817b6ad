package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Social holds profile links. Absent platforms stay empty and are omitted
// from JSON, never stored as null.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the one-per-owner document. OwnerName and OwnerAvatar are
// display fields resolved from the owning user on reads; they are never
// written back.
type Profile struct {
	OwnerID        uuid.UUID    `json:"owner_id"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `json:"status"`
	Bio            string       `json:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Version        int64        `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	OwnerName   string `json:"owner_name,omitempty"`
	OwnerAvatar string `json:"owner_avatar,omitempty"`
}

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEntryNotFound   = errors.New("entry not found")

	// ErrVersionConflict is returned by Repository.Create and Update when a
	// concurrent writer got there first; callers reload and retry.
	ErrVersionConflict = errors.New("profile version conflict")
)

// ParseSkills splits a comma-delimited skills string, trimming incidental
// whitespace and dropping empty segments.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

type Repository interface {
	// GetByOwner returns the owner's profile with display fields resolved,
	// or ErrProfileNotFound.
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	// List returns every profile with display fields resolved.
	List(ctx context.Context) ([]*Profile, error)
	// Create inserts a new profile; ErrVersionConflict if one already
	// exists for the owner.
	Create(ctx context.Context, p *Profile) error
	// Update persists p if the stored version still equals p.Version, then
	// bumps p.Version; ErrVersionConflict otherwise.
	Update(ctx context.Context, p *Profile) error
	// DeleteCascade removes the owner's posts, profile and user account as
	// one unit.
	DeleteCascade(ctx context.Context, ownerID uuid.UUID) error
}
