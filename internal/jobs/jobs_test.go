package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenworks/sitecms/backend/go-services/internal/events"
)

func ptr(f float64) *float64 { return &f }

func TestServiceCRUD(t *testing.T) {
	bus := events.NewBus()
	var got []events.Event
	bus.Subscribe(events.JobUpdated, func(ev events.Event) { got = append(got, ev) })
	s := NewService(NewMemoryRepo(), bus)
	ctx := context.Background()

	o, err := s.Create(ctx, Opening{
		Title: "Backend Engineer", Department: "Engineering", Location: "Berlin", Type: FullTime,
		Description:      "Build services",
		Responsibilities: []string{" Ship APIs ", ""},
		Salary:           &Salary{Min: ptr(60000), Max: ptr(80000)},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), o.ID)
	require.Equal(t, []string{"Ship APIs"}, o.Responsibilities)
	require.Equal(t, "USD", o.Salary.Currency)
	require.False(t, o.UpdatedAt.IsZero())

	draft, err := s.Create(ctx, Opening{Title: "Designer", Type: Contract, Published: false})
	require.NoError(t, err)

	o.Published = true
	_, err = s.Update(ctx, o.ID, o)
	require.NoError(t, err)

	pub, err := s.Published(ctx)
	require.NoError(t, err)
	require.Len(t, pub, 1)
	require.Equal(t, o.ID, pub[0].ID)

	require.NoError(t, s.Delete(ctx, draft.ID))
	require.ErrorIs(t, s.Delete(ctx, draft.ID), ErrNotFound)
	_, err = s.Update(ctx, 42, Opening{Title: "Ghost role", Type: Remote})
	require.ErrorIs(t, err, ErrNotFound)

	require.Len(t, got, 4)
}

func TestValidation(t *testing.T) {
	s := NewService(NewMemoryRepo(), events.NewBus())
	_, err := s.Create(context.Background(), Opening{Title: "QA", Type: "Freelance", Salary: &Salary{Min: ptr(10), Max: ptr(5)}})
	ve, ok := IsValidation(err)
	require.True(t, ok)
	require.Contains(t, ve.Fields, "title")
	require.Contains(t, ve.Fields, "type")
	require.Contains(t, ve.Fields, "salary")

	all, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}
