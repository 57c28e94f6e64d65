package event

import (
	"time"

	"greencity/application/email"
	"greencity/domain/event"
	"greencity/domain/user"
)

func toDatesLocations(reqs []DateLocationRequest, now time.Time) ([]event.DateLocation, error) {
	slots := make([]event.DateLocation, 0, len(reqs))
	for _, r := range reqs {
		var coords *event.Coordinates
		if r.Coordinates != nil {
			coords = &event.Coordinates{Latitude: r.Coordinates.Latitude, Longitude: r.Coordinates.Longitude}
		}
		slot, err := event.NewDateLocation(r.StartDate, r.FinishDate, coords, r.OnlineLink, now)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func toEventResponse(e *event.Event, author *user.User) *EventResponse {
	slots := make([]DateLocationResponse, len(e.DatesLocations()))
	for i, d := range e.DatesLocations() {
		slots[i] = DateLocationResponse{
			StartDate:  d.StartDate(),
			FinishDate: d.FinishDate(),
			OnlineLink: d.OnlineLink(),
		}
		if c := d.Coordinates(); c != nil {
			slots[i].Coordinates = &Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
		}
	}

	resp := &EventResponse{
		ID:               e.ID(),
		Title:            e.Title(),
		Description:      e.Description(),
		Open:             e.IsOpen(),
		Author:           AuthorResponse{ID: e.AuthorID()},
		DatesLocations:   slots,
		Tags:             nonNil(e.Tags()),
		TitleImage:       e.TitleImage(),
		AdditionalImages: nonNil(e.AdditionalImages()),
		CreatedAt:        e.CreatedAt(),
	}
	if author != nil {
		resp.Author.Name = author.Name()
		resp.Author.Email = author.Email()
	}
	return resp
}

func toEventCreatedMessage(resp *EventResponse) email.EventCreatedMessage {
	slots := make([]email.EventDateLocation, len(resp.DatesLocations))
	for i, d := range resp.DatesLocations {
		slots[i] = email.EventDateLocation{
			StartDate:  d.StartDate,
			FinishDate: d.FinishDate,
			OnlineLink: d.OnlineLink,
		}
		if d.Coordinates != nil {
			lat, lng := d.Coordinates.Latitude, d.Coordinates.Longitude
			slots[i].Latitude = &lat
			slots[i].Longitude = &lng
		}
	}
	images := make([]string, 0, len(resp.AdditionalImages)+1)
	if resp.TitleImage != "" {
		images = append(images, resp.TitleImage)
	}
	images = append(images, resp.AdditionalImages...)

	return email.EventCreatedMessage{
		Author: email.EventAuthor{
			ID:    resp.Author.ID,
			Name:  resp.Author.Name,
			Email: resp.Author.Email,
		},
		Title:          resp.Title,
		Description:    resp.Description,
		ImagePaths:     images,
		DatesLocations: slots,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
