package event

import (
	"errors"
	"strings"
	"testing"
	"time"

	"greencity/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func slot(t *testing.T) DateLocation {
	t.Helper()
	dl, err := NewDateLocation(now.Add(24*time.Hour), now.Add(26*time.Hour), nil, "https://meet.example.org/eco", now)
	require.NoError(t, err)
	return dl
}

func validDetails(t *testing.T) Details {
	return Details{
		Title:          "Park cleanup",
		Description:    "We will clean the central park together.",
		Open:           true,
		Tags:           []string{"Social", "Social", "Environmental"},
		DatesLocations: []DateLocation{slot(t)},
	}
}

func TestNewEvent(t *testing.T) {
	e, err := NewEvent(3, validDetails(t), []string{"a.png", "b.png"}, now)
	require.NoError(t, err)

	assert.Equal(t, int64(3), e.AuthorID())
	assert.Equal(t, "a.png", e.TitleImage())
	assert.Equal(t, []string{"b.png"}, e.AdditionalImages())
	assert.Equal(t, []string{"Social", "Environmental"}, e.Tags())
	assert.Equal(t, []string{"a.png", "b.png"}, e.Images())
}

func TestNewEventValidation(t *testing.T) {
	cases := map[string]func(d *Details){
		"blank title": func(d *Details) { d.Title = "  " },
		"long title":  func(d *Details) { d.Title = strings.Repeat("x", TitleMaxLength+1) },
		"short desc":  func(d *Details) { d.Description = "too short" },
		"no tags":     func(d *Details) { d.Tags = nil },
		"blank tags":  func(d *Details) { d.Tags = []string{"  ", "\t"} },
		"no dates":    func(d *Details) { d.DatesLocations = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := validDetails(t)
			mutate(&d)
			_, err := NewEvent(1, d, nil, now)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestValidateImageType(t *testing.T) {
	assert.NoError(t, ValidateImageType("a.png", "image/png"))
	assert.NoError(t, ValidateImageType("a.jpg", "IMAGE/JPEG"))
	assert.ErrorIs(t, ValidateImageType("a.gif", "image/gif"), shared.ErrInvalidInput)
}

func TestNewEventTooManyImages(t *testing.T) {
	_, err := NewEvent(1, validDetails(t), []string{"1", "2", "3", "4", "5", "6"}, now)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestNewDateLocation(t *testing.T) {
	start := now.Add(time.Hour)

	_, err := NewDateLocation(now.Add(-time.Hour), start, nil, "https://x.org", now)
	assert.Error(t, err, "start in the past")

	_, err = NewDateLocation(start, start.Add(-time.Minute), nil, "https://x.org", now)
	assert.Error(t, err, "finish before start")

	_, err = NewDateLocation(start, start, nil, "", now)
	assert.Error(t, err, "neither place nor link")

	_, err = NewDateLocation(start, start, nil, "ftp://x.org", now)
	assert.Error(t, err, "bad link scheme")

	_, err = NewDateLocation(start, start, &Coordinates{Latitude: 91}, "", now)
	assert.Error(t, err, "latitude out of range")

	dl, err := NewDateLocation(start, start.Add(time.Hour), &Coordinates{Latitude: 49.84, Longitude: 24.03}, "", now)
	require.NoError(t, err)
	assert.Equal(t, 49.84, dl.Coordinates().Latitude)
}

func TestUpdateAndPermissions(t *testing.T) {
	e, err := NewEvent(3, validDetails(t), []string{"a.png"}, now)
	require.NoError(t, err)

	assert.True(t, e.CanBeManagedBy(3, false))
	assert.True(t, e.CanBeManagedBy(9, true))
	assert.False(t, e.CanBeManagedBy(9, false))

	d := validDetails(t)
	d.Title = "Renamed"
	require.NoError(t, e.Update(d, []string{"c.png"}))
	assert.Equal(t, "Renamed", e.Title())
	assert.Equal(t, "c.png", e.TitleImage())
	assert.Empty(t, e.AdditionalImages())
}
