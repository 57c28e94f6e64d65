package event

import (
	"fmt"
	"strings"
	"time"

	"greencity/domain/shared"
)

const (
	TitleMaxLength       = 70
	DescriptionMinLength = 20
	DescriptionMaxLength = 63206
	MaxImages            = 5
)

// imageContentTypes 允许上传的图片类型
var imageContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

// ValidateImageType rejects uploads that are not jpeg or png.
func ValidateImageType(filename, contentType string) error {
	if _, ok := imageContentTypes[strings.ToLower(contentType)]; !ok {
		return shared.NewValidationError("event", "images",
			fmt.Sprintf("unsupported image type %q of %s", contentType, filename))
	}
	return nil
}

// Coordinates of an offline event location.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// DateLocation is one time slot of an event, held either at a place or online (or both).
type DateLocation struct {
	startDate   time.Time
	finishDate  time.Time
	coordinates *Coordinates
	onlineLink  string
}

// NewDateLocation validates a slot against now.
func NewDateLocation(start, finish time.Time, coords *Coordinates, onlineLink string, now time.Time) (DateLocation, error) {
	if start.IsZero() || finish.IsZero() {
		return DateLocation{}, shared.NewValidationError("event", "datesLocations", "start and finish dates are required")
	}
	if start.Before(now) {
		return DateLocation{}, shared.NewValidationError("event", "startDate", "start date must not be in the past")
	}
	if finish.Before(start) {
		return DateLocation{}, shared.NewValidationError("event", "finishDate", "finish date must not be before start date")
	}
	if coords == nil && onlineLink == "" {
		return DateLocation{}, shared.NewValidationError("event", "datesLocations", "either coordinates or an online link is required")
	}
	if coords != nil {
		if coords.Latitude < -90 || coords.Latitude > 90 {
			return DateLocation{}, shared.NewValidationError("event", "latitude", "latitude must be between -90 and 90")
		}
		if coords.Longitude < -180 || coords.Longitude > 180 {
			return DateLocation{}, shared.NewValidationError("event", "longitude", "longitude must be between -180 and 180")
		}
	}
	if onlineLink != "" && !strings.HasPrefix(onlineLink, "http://") && !strings.HasPrefix(onlineLink, "https://") {
		return DateLocation{}, shared.NewValidationError("event", "onlineLink", "online link must start with http(s)://")
	}
	return DateLocation{startDate: start, finishDate: finish, coordinates: coords, onlineLink: onlineLink}, nil
}

// RebuildDateLocation skips validation; stored past slots stay valid.
func RebuildDateLocation(start, finish time.Time, coords *Coordinates, onlineLink string) DateLocation {
	return DateLocation{startDate: start, finishDate: finish, coordinates: coords, onlineLink: onlineLink}
}

func (d DateLocation) StartDate() time.Time      { return d.startDate }
func (d DateLocation) FinishDate() time.Time     { return d.finishDate }
func (d DateLocation) Coordinates() *Coordinates { return d.coordinates }
func (d DateLocation) OnlineLink() string        { return d.onlineLink }

// Details are the author-editable parts of an event.
type Details struct {
	Title          string
	Description    string
	Open           bool
	Tags           []string
	DatesLocations []DateLocation
}

// Validate checks the details without touching any state, so callers can reject
// a request before storing its uploads.
func (d Details) Validate() error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return shared.NewValidationError("event", "title", "title must not be blank")
	}
	if len([]rune(title)) > TitleMaxLength {
		return shared.NewValidationError("event", "title", "title must be at most 70 characters")
	}
	descLen := len([]rune(strings.TrimSpace(d.Description)))
	if descLen < DescriptionMinLength || descLen > DescriptionMaxLength {
		return shared.NewValidationError("event", "description", "description must be between 20 and 63206 characters")
	}
	if len(dedupe(d.Tags)) == 0 {
		return shared.NewValidationError("event", "tags", "at least one tag is required")
	}
	if len(d.DatesLocations) == 0 {
		return shared.NewValidationError("event", "datesLocations", "at least one date and location is required")
	}
	return nil
}

// Event aggregate root: an event with its slots, tags and images.
type Event struct {
	id               int64
	title            string
	description      string
	open             bool
	authorID         int64
	datesLocations   []DateLocation
	tags             []string
	titleImage       string
	additionalImages []string
	createdAt        time.Time
}

// NewEvent creates an event authored by authorID. The first image becomes the title image.
func NewEvent(authorID int64, details Details, images []string, now time.Time) (*Event, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	e := &Event{authorID: authorID, createdAt: now}
	e.applyDetails(details)
	if err := e.setImages(images); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces details and images.
func (e *Event) Update(details Details, images []string) error {
	if err := details.Validate(); err != nil {
		return err
	}
	if err := e.setImages(images); err != nil {
		return err
	}
	e.applyDetails(details)
	return nil
}

// CanBeManagedBy reports whether the user may update or delete the event.
func (e *Event) CanBeManagedBy(userID int64, isAdmin bool) bool {
	return isAdmin || e.authorID == userID
}

func (e *Event) applyDetails(d Details) {
	e.title = strings.TrimSpace(d.Title)
	e.description = strings.TrimSpace(d.Description)
	e.open = d.Open
	e.tags = dedupe(d.Tags)
	e.datesLocations = append([]DateLocation(nil), d.DatesLocations...)
}

func (e *Event) setImages(images []string) error {
	images = dedupe(images)
	if len(images) > MaxImages {
		return shared.NewValidationError("event", "images", "an event can have at most 5 images")
	}
	e.titleImage = ""
	e.additionalImages = nil
	if len(images) > 0 {
		e.titleImage = images[0]
		e.additionalImages = images[1:]
	}
	return nil
}

// AssignID is called by repositories after insert.
func (e *Event) AssignID(id int64) { e.id = id }

func (e *Event) ID() int64                      { return e.id }
func (e *Event) Title() string                  { return e.title }
func (e *Event) Description() string            { return e.description }
func (e *Event) IsOpen() bool                   { return e.open }
func (e *Event) AuthorID() int64                { return e.authorID }
func (e *Event) DatesLocations() []DateLocation { return e.datesLocations }
func (e *Event) Tags() []string                 { return e.tags }
func (e *Event) TitleImage() string             { return e.titleImage }
func (e *Event) AdditionalImages() []string     { return e.additionalImages }
func (e *Event) CreatedAt() time.Time           { return e.createdAt }

// Images returns the title image followed by the additional ones.
func (e *Event) Images() []string {
	if e.titleImage == "" {
		return nil
	}
	return append([]string{e.titleImage}, e.additionalImages...)
}

// ReconstructionDTO 仅限仓储层使用
type ReconstructionDTO struct {
	ID               int64
	Title            string
	Description      string
	Open             bool
	AuthorID         int64
	DatesLocations   []DateLocation
	Tags             []string
	TitleImage       string
	AdditionalImages []string
	CreatedAt        time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Event {
	return &Event{
		id:               dto.ID,
		title:            dto.Title,
		description:      dto.Description,
		open:             dto.Open,
		authorID:         dto.AuthorID,
		datesLocations:   dto.DatesLocations,
		tags:             dto.Tags,
		titleImage:       dto.TitleImage,
		additionalImages: dto.AdditionalImages,
		createdAt:        dto.CreatedAt,
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
