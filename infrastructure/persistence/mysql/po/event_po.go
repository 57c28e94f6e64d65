package po

import (
	"time"

	"greencity/domain/event"
)

type EventPO struct {
	ID             int64                 `gorm:"primaryKey;autoIncrement"`
	Title          string                `gorm:"size:70;not null;index"`
	Description    string                `gorm:"type:text;not null"`
	Open           bool                  `gorm:"not null"`
	AuthorID       int64                 `gorm:"not null;index"`
	TitleImage     string                `gorm:"size:512"`
	CreatedAt      time.Time             `gorm:"autoCreateTime"`
	DatesLocations []EventDateLocationPO `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Tags           []EventTagPO          `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Images         []EventImagePO        `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

func (EventPO) TableName() string {
	return "events"
}

type EventDateLocationPO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	EventID    int64     `gorm:"not null;index"`
	StartDate  time.Time `gorm:"not null"`
	FinishDate time.Time `gorm:"not null"`
	Latitude   *float64
	Longitude  *float64
	OnlineLink string `gorm:"size:512"`
}

func (EventDateLocationPO) TableName() string {
	return "event_dates_locations"
}

type EventTagPO struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	EventID int64  `gorm:"not null;index"`
	Tag     string `gorm:"size:64;not null"`
}

func (EventTagPO) TableName() string {
	return "event_tags"
}

// EventImagePO holds the additional images; the title image lives on the event row.
type EventImagePO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	EventID   int64  `gorm:"not null;index"`
	ImagePath string `gorm:"size:512;not null"`
	Position  int    `gorm:"not null"`
}

func (EventImagePO) TableName() string {
	return "event_images"
}

// FromEventDomain builds the row and its children. Child rows carry the
// event id only when the event already has one.
func FromEventDomain(e *event.Event) *EventPO {
	p := &EventPO{
		ID:          e.ID(),
		Title:       e.Title(),
		Description: e.Description(),
		Open:        e.IsOpen(),
		AuthorID:    e.AuthorID(),
		TitleImage:  e.TitleImage(),
		CreatedAt:   e.CreatedAt(),
	}
	for _, dl := range e.DatesLocations() {
		row := EventDateLocationPO{
			EventID:    e.ID(),
			StartDate:  dl.StartDate(),
			FinishDate: dl.FinishDate(),
			OnlineLink: dl.OnlineLink(),
		}
		if c := dl.Coordinates(); c != nil {
			lat, lng := c.Latitude, c.Longitude
			row.Latitude, row.Longitude = &lat, &lng
		}
		p.DatesLocations = append(p.DatesLocations, row)
	}
	for _, tag := range e.Tags() {
		p.Tags = append(p.Tags, EventTagPO{EventID: e.ID(), Tag: tag})
	}
	for i, img := range e.AdditionalImages() {
		p.Images = append(p.Images, EventImagePO{EventID: e.ID(), ImagePath: img, Position: i})
	}
	return p
}

// SetEventID stamps the id onto every child row after the parent insert.
func (p *EventPO) SetEventID(id int64) {
	p.ID = id
	for i := range p.DatesLocations {
		p.DatesLocations[i].EventID = id
	}
	for i := range p.Tags {
		p.Tags[i].EventID = id
	}
	for i := range p.Images {
		p.Images[i].EventID = id
	}
}

func (p *EventPO) ToDomain() *event.Event {
	dls := make([]event.DateLocation, 0, len(p.DatesLocations))
	for _, row := range p.DatesLocations {
		var coords *event.Coordinates
		if row.Latitude != nil && row.Longitude != nil {
			coords = &event.Coordinates{Latitude: *row.Latitude, Longitude: *row.Longitude}
		}
		dls = append(dls, event.RebuildDateLocation(row.StartDate, row.FinishDate, coords, row.OnlineLink))
	}
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Tag)
	}
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.ImagePath)
	}
	return event.RebuildFromDTO(event.ReconstructionDTO{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Open:             p.Open,
		AuthorID:         p.AuthorID,
		DatesLocations:   dls,
		Tags:             tags,
		TitleImage:       p.TitleImage,
		AdditionalImages: images,
		CreatedAt:        p.CreatedAt,
	})
}
