package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Business rule constants
const (
	MaxTitleLength = 255
)

// Validation errors
var (
	ErrLinkRequired        = errors.New("link is required")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title must not exceed 255 characters")
	ErrDescriptionRequired = errors.New("description is required")
	ErrContributorRequired = errors.New("owning contributor is required")
)

// Resource is one cataloged learning item.
// LearningID is the public identifier; it is assigned once and never changes.
type Resource struct {
	ID             uuid.UUID
	LearningID     int64
	Link           string
	Title          string
	FormatCategory FormatCategory
	SubCategory    SubCategory
	Description    string
	ContributorID  uuid.UUID
	CreatedAt      time.Time
	ModifiedAt     time.Time

	// ContributorName is joined from the owner's profile on reads and never written.
	ContributorName string
}

// NewResource creates a resource owned by contributorID. Text fields are
// trimmed. LearningID stays zero until the store assigns one, unless the
// caller sets it before persisting.
func NewResource(link, title string, format FormatCategory, sub SubCategory, description string, contributorID uuid.UUID) (*Resource, error) {
	r := &Resource{
		ID:             uuid.New(),
		Link:           strings.TrimSpace(link),
		Title:          strings.TrimSpace(title),
		FormatCategory: format,
		SubCategory:    sub,
		Description:    strings.TrimSpace(description),
		ContributorID:  contributorID,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	r.CreatedAt = now
	r.ModifiedAt = now
	return r, nil
}

// Validate checks every invariant a stored resource must hold.
func (r *Resource) Validate() error {
	if r.Link == "" {
		return ErrLinkRequired
	}
	if r.Title == "" {
		return ErrTitleRequired
	}
	if len(r.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if !r.FormatCategory.IsValid() {
		return ErrInvalidFormatCategory
	}
	if !r.SubCategory.IsValid() {
		return ErrInvalidSubCategory
	}
	if r.Description == "" {
		return ErrDescriptionRequired
	}
	if r.ContributorID == uuid.Nil {
		return ErrContributorRequired
	}
	return nil
}

// Patch is a partial edit: nil fields keep the stored value.
type Patch struct {
	Link           *string
	Title          *string
	FormatCategory *FormatCategory
	SubCategory    *SubCategory
	Description    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Link == nil && p.Title == nil && p.FormatCategory == nil &&
		p.SubCategory == nil && p.Description == nil
}

// Apply merges the patch into the resource. On error the resource is unchanged.
// ModifiedAt is bumped even for an empty patch.
func (r *Resource) Apply(p Patch) error {
	next := *r
	if p.Link != nil {
		next.Link = strings.TrimSpace(*p.Link)
	}
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.FormatCategory != nil {
		next.FormatCategory = *p.FormatCategory
	}
	if p.SubCategory != nil {
		next.SubCategory = *p.SubCategory
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if err := next.Validate(); err != nil {
		return err
	}

	next.ModifiedAt = time.Now()
	*r = next
	return nil
}
