// Package jobs manages job openings shown on the careers page.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/events"
)

// EmploymentType is the closed set of job kinds.
type EmploymentType string

const (
	FullTime EmploymentType = "Full-time"
	PartTime EmploymentType = "Part-time"
	Contract EmploymentType = "Contract"
	Remote   EmploymentType = "Remote"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case FullTime, PartTime, Contract, Remote:
		return true
	}
	return false
}

type Salary struct {
	Min      *float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max      *float64 `json:"max,omitempty" bson:"max,omitempty"`
	Currency string   `json:"currency" bson:"currency"`
}

type Opening struct {
	ID               int64          `json:"id" bson:"id"`
	Title            string         `json:"title" bson:"title"`
	Department       string         `json:"department" bson:"department"`
	Location         string         `json:"location" bson:"location"`
	Type             EmploymentType `json:"type" bson:"type"`
	Description      string         `json:"description" bson:"description"`
	Responsibilities []string       `json:"responsibilities" bson:"responsibilities"`
	Requirements     []string       `json:"requirements" bson:"requirements"`
	Benefits         []string       `json:"benefits,omitempty" bson:"benefits,omitempty"`
	Salary           *Salary        `json:"salary,omitempty" bson:"salary,omitempty"`
	ApplicationURL   string         `json:"applicationUrl,omitempty" bson:"applicationUrl,omitempty"`
	Published        bool           `json:"published" bson:"published"`
	UpdatedAt        time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// ValidationError lists the offending fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid job opening: " + strings.Join(keys, ", ")
}

func (o *Opening) normalize() {
	o.Title = strings.TrimSpace(o.Title)
	o.Responsibilities = content.CleanList(o.Responsibilities)
	o.Requirements = content.CleanList(o.Requirements)
	o.Benefits = content.CleanList(o.Benefits)
	if o.Salary != nil && o.Salary.Min == nil && o.Salary.Max == nil {
		o.Salary = nil
	}
	if o.Salary != nil && o.Salary.Currency == "" {
		o.Salary.Currency = "USD"
	}
}

func (o Opening) validate() error {
	fields := map[string]string{}
	if len([]rune(o.Title)) < content.MinTitleLen {
		fields["title"] = fmt.Sprintf("Title must be at least %d characters", content.MinTitleLen)
	}
	if !o.Type.Valid() {
		fields["type"] = "Type must be one of Full-time, Part-time, Contract, Remote"
	}
	if s := o.Salary; s != nil && s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		fields["salary"] = "Minimum salary is greater than maximum salary"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type Service struct {
	repo Repository
	bus  *events.Bus
	now  func() time.Time
}

func NewService(repo Repository, bus *events.Bus) *Service {
	return &Service{repo: repo, bus: bus, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) List(ctx context.Context) ([]Opening, error) {
	return s.repo.List(ctx)
}

// Published lists openings visible on the public site.
func (s *Service) Published(ctx context.Context) ([]Opening, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []Opening{}
	for _, o := range all {
		if o.Published {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Opening, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, o Opening) (Opening, error) {
	o.normalize()
	if err := o.validate(); err != nil {
		return Opening{}, err
	}
	o.UpdatedAt = s.now()
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return Opening{}, err
	}
	s.publish(created.ID, created)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, o Opening) (Opening, error) {
	o.ID = id
	o.normalize()
	if err := o.validate(); err != nil {
		return Opening{}, err
	}
	o.UpdatedAt = s.now()
	if err := s.repo.Replace(ctx, o); err != nil {
		return Opening{}, err
	}
	s.publish(id, o)
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(id, nil)
	return nil
}

func (s *Service) publish(id int64, payload any) {
	s.bus.Publish(events.Event{Name: events.JobUpdated, EntityID: id, Payload: payload})
}

// IsValidation reports whether err came from opening validation.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
