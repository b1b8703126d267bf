package seed

import (
	_ "embed"
	"fmt"

	"booking-service/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

// Dataset is a demo data set. Relations are expressed by natural keys
// (user email, venue name, stage name, event title) and resolved to ids
// while seeding.
type Dataset struct {
	Users     []domain.CreateUserRequest `yaml:"users"`
	Venues    []VenueFixture             `yaml:"venues"`
	Musicians []MusicianFixture          `yaml:"musicians"`
	Events    []EventFixture             `yaml:"events"`
	Bookings  []BookingFixture           `yaml:"bookings"`
}

type VenueFixture struct {
	Owner                     string `yaml:"owner"`
	domain.CreateVenueRequest `yaml:",inline"`
}

type MusicianFixture struct {
	User                         string `yaml:"user"`
	domain.CreateMusicianRequest `yaml:",inline"`
}

type EventFixture struct {
	Venue                     string `yaml:"venue"`
	Musician                  string `yaml:"musician"`
	domain.CreateEventRequest `yaml:",inline"`
}

type BookingFixture struct {
	Event                       string `yaml:"event"`
	Musician                    string `yaml:"musician"`
	domain.CreateBookingRequest `yaml:",inline"`
}

func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &ds, nil
}

// DemoDataset returns the built-in demo data.
func DemoDataset() (*Dataset, error) {
	return ParseDataset(demoYAML)
}
