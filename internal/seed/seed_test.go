package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"booking-service/internal/domain"

	"github.com/sirupsen/logrus/hooks/test"
)

// memStore is an in-memory stand-in for every seed store.
type memStore struct {
	n         int
	users     []domain.User
	venues    []domain.Venue
	musicians []domain.Musician
	events    []domain.Event
	bookings  []domain.Booking

	failMusician map[string]bool
	failList     bool
}

func (m *memStore) nextID() string {
	m.n++
	return fmt.Sprintf("id-%d", m.n)
}

type memUsers struct{ *memStore }
type memVenues struct{ *memStore }
type memMusicians struct{ *memStore }
type memEvents struct{ *memStore }
type memBookings struct{ *memStore }

func (m memUsers) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	u := domain.User{ID: m.nextID(), Email: req.Email, Name: req.Name, Role: req.Role}
	m.users = append(m.users, u)
	return &u, nil
}

func (m memUsers) ListByRole(ctx context.Context, role string, limit int) ([]domain.User, error) {
	if m.failList {
		return nil, errors.New("lookup failed")
	}
	var out []domain.User
	for _, u := range m.users {
		if u.Role == role && len(out) < limit {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m memVenues) Create(ctx context.Context, req domain.CreateVenueRequest) (*domain.Venue, error) {
	v := domain.Venue{ID: m.nextID(), OwnerID: req.OwnerID, Name: req.Name}
	m.venues = append(m.venues, v)
	return &v, nil
}

func (m memMusicians) Create(ctx context.Context, req domain.CreateMusicianRequest) (*domain.Musician, error) {
	if m.failMusician[req.StageName] {
		return nil, errors.New("insert failed")
	}
	mu := domain.Musician{ID: m.nextID(), StageName: req.StageName, UserID: req.UserID}
	m.musicians = append(m.musicians, mu)
	return &mu, nil
}

func (m memEvents) Create(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error) {
	e := domain.Event{ID: m.nextID(), VenueID: req.VenueID, MusicianID: req.MusicianID, Title: req.Title}
	m.events = append(m.events, e)
	return &e, nil
}

func (m memBookings) Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error) {
	b := domain.Booking{ID: m.nextID(), EventID: req.EventID, MusicianID: req.MusicianID, Status: req.Status}
	m.bookings = append(m.bookings, b)
	return &b, nil
}

func newSeeder(store *memStore, opts Options) *Seeder {
	logger, _ := test.NewNullLogger()
	return NewSeeder(Stores{
		Users:     memUsers{store},
		Venues:    memVenues{store},
		Musicians: memMusicians{store},
		Events:    memEvents{store},
		Bookings:  memBookings{store},
	}, opts, logger)
}

func demo(t *testing.T) *Dataset {
	t.Helper()
	ds, err := DemoDataset()
	if err != nil {
		t.Fatalf("DemoDataset() error = %v", err)
	}
	return ds
}

func TestDemoDatasetParses(t *testing.T) {
	ds := demo(t)

	if len(ds.Users) != 5 || len(ds.Venues) != 3 || len(ds.Musicians) != 3 || len(ds.Events) != 3 || len(ds.Bookings) != 4 {
		t.Fatalf("unexpected dataset sizes: %d users, %d venues, %d musicians, %d events, %d bookings",
			len(ds.Users), len(ds.Venues), len(ds.Musicians), len(ds.Events), len(ds.Bookings))
	}
	if ds.Venues[0].Owner != "maria.owner@example.com" || ds.Venues[0].Capacity != 120 {
		t.Errorf("venue fixture = %+v", ds.Venues[0])
	}
	if ds.Events[0].EventDate != "2025-07-12" || ds.Events[0].TicketPrice != 20 {
		t.Errorf("event fixture = %+v", ds.Events[0])
	}
}

func TestRunSeedsEverything(t *testing.T) {
	store := &memStore{}
	report, err := newSeeder(store, Options{OwnerGuard: true}).Run(context.Background(), demo(t))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := report.Count(StatusCreated); got != 18 {
		t.Errorf("created = %d, want 18", got)
	}
	if report.Count(StatusFailed) != 0 || report.Count(StatusSkipped) != 0 {
		t.Errorf("unexpected failures: %+v", report.Steps)
	}

	// Corner Bar has no explicit owner and falls back to the first owner.
	for _, v := range store.venues {
		if v.Name == "Corner Bar" && v.OwnerID != store.users[0].ID {
			t.Errorf("Corner Bar owner = %q, want %q", v.OwnerID, store.users[0].ID)
		}
	}
	if _, ok := report.Find(KindUser, placeholderOwner.Email); ok {
		t.Error("placeholder owner created although owners exist")
	}
}

func TestRunIsNotIdempotent(t *testing.T) {
	store := &memStore{}
	seeder := newSeeder(store, Options{})
	ds := demo(t)

	for i := 0; i < 2; i++ {
		if _, err := seeder.Run(context.Background(), ds); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}
	if len(store.bookings) != 8 {
		t.Fatalf("bookings = %d, want 8 after two runs", len(store.bookings))
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	store := &memStore{failMusician: map[string]bool{"Low Tide": true}}
	report, err := newSeeder(store, Options{}).Run(context.Background(), demo(t))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res, _ := report.Find(KindMusician, "Low Tide"); res.Status != StatusFailed {
		t.Errorf("Low Tide status = %q, want failed", res.Status)
	}
	if res, _ := report.Find(KindBooking, "Summer Showcase / Low Tide"); res.Status != StatusSkipped {
		t.Errorf("dependent booking status = %q, want skipped", res.Status)
	}
	if res, _ := report.Find(KindBooking, "Summer Showcase / Ivy Strings"); res.Status != StatusCreated {
		t.Errorf("independent booking status = %q, want created", res.Status)
	}
	if len(store.bookings) != 3 {
		t.Errorf("bookings = %d, want 3", len(store.bookings))
	}
}

func TestOwnerGuardCreatesPlaceholder(t *testing.T) {
	store := &memStore{}
	ds := &Dataset{
		Venues: []VenueFixture{{CreateVenueRequest: domain.CreateVenueRequest{Name: "Lonely Venue", Capacity: 10}}},
	}

	report, err := newSeeder(store, Options{OwnerGuard: true}).Run(context.Background(), ds)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	owner, ok := report.Find(KindUser, placeholderOwner.Email)
	if !ok || owner.Status != StatusCreated {
		t.Fatalf("placeholder owner not created: %+v", report.Steps)
	}
	if len(store.venues) != 1 || store.venues[0].OwnerID != owner.ID {
		t.Fatalf("venues = %+v, want owned by placeholder", store.venues)
	}
}

func TestOwnerGuardUsesExistingOwner(t *testing.T) {
	store := &memStore{users: []domain.User{{ID: "existing-owner", Role: domain.RoleVenueOwner}}}
	ds := &Dataset{
		Venues: []VenueFixture{{CreateVenueRequest: domain.CreateVenueRequest{Name: "Venue", Capacity: 10}}},
	}

	if _, err := newSeeder(store, Options{OwnerGuard: true}).Run(context.Background(), ds); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(store.users) != 1 {
		t.Errorf("users = %d, want no placeholder", len(store.users))
	}
	if store.venues[0].OwnerID != "existing-owner" {
		t.Errorf("OwnerID = %q, want existing-owner", store.venues[0].OwnerID)
	}
}

func TestVenueWithoutOwnerIsSkipped(t *testing.T) {
	store := &memStore{}
	ds := &Dataset{
		Venues: []VenueFixture{{CreateVenueRequest: domain.CreateVenueRequest{Name: "Orphan", Capacity: 10}}},
	}

	report, err := newSeeder(store, Options{}).Run(context.Background(), ds)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res, _ := report.Find(KindVenue, "Orphan"); res.Status != StatusSkipped {
		t.Fatalf("status = %q, want skipped", res.Status)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSeeder(&memStore{}, Options{}).Run(ctx, demo(t))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
