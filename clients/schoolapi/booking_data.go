package schoolapi

import (
	"context"
	"fmt"
	"net/url"

	"motoschool/models"
)

// Courses fetches the bookable course list.
func (c *DefaultClient) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.getJSON(ctx, "/booking/courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Locations fetches the locations offering the given course.
func (c *DefaultClient) Locations(ctx context.Context, courseID string) ([]models.Location, error) {
	var locations []models.Location
	if err := c.getJSON(ctx, "/booking/locations/"+url.PathEscape(courseID), nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Availability fetches the course events for a (course, location) pair.
// Events are normalized on ingest: dates truncated to day granularity and
// zero remaining spaces forcing unavailable, so downstream code never sees
// an event that contradicts its own capacity.
func (c *DefaultClient) Availability(ctx context.Context, courseID, locationID string) ([]models.CourseEvent, error) {
	query := url.Values{}
	query.Set("course_id", courseID)
	query.Set("location_id", locationID)

	var payload struct {
		Availability []models.CourseEvent `json:"availability"`
	}
	if err := c.getJSON(ctx, "/booking/course-availability", query, &payload); err != nil {
		return nil, err
	}

	events := payload.Availability
	for i := range events {
		events[i].Date = events[i].DateOnly()
		if events[i].AvailableSpaces <= 0 {
			events[i].Available = false
			events[i].AvailableSpaces = 0
		}
	}
	return events, nil
}

// Settings fetches checkout-wide parameters such as the VAT rate.
func (c *DefaultClient) Settings(ctx context.Context) (models.BookingSettings, error) {
	var settings models.BookingSettings
	if err := c.getJSON(ctx, "/booking/settings", nil, &settings); err != nil {
		return models.BookingSettings{}, err
	}
	return settings, nil
}

// LicenceTypes fetches the licence enumeration for form selects.
func (c *DefaultClient) LicenceTypes(ctx context.Context) ([]models.LicenceType, error) {
	var types []models.LicenceType
	if err := c.getJSON(ctx, "/booking/license-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// VehicleTypes fetches the vehicle enumeration for a (course, location) pair.
func (c *DefaultClient) VehicleTypes(ctx context.Context, courseID, locationID string) ([]models.VehicleType, error) {
	path := fmt.Sprintf("/booking/vehicle-types/%s/%s", url.PathEscape(courseID), url.PathEscape(locationID))
	var types []models.VehicleType
	if err := c.getJSON(ctx, path, nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}
