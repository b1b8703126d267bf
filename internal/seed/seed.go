package seed

import (
	"context"
	"fmt"

	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type UserStore interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	ListByRole(ctx context.Context, role string, limit int) ([]domain.User, error)
}

type VenueStore interface {
	Create(ctx context.Context, req domain.CreateVenueRequest) (*domain.Venue, error)
}

type MusicianStore interface {
	Create(ctx context.Context, req domain.CreateMusicianRequest) (*domain.Musician, error)
}

type EventStore interface {
	Create(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error)
}

type BookingStore interface {
	Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error)
}

type Stores struct {
	Users     UserStore
	Venues    VenueStore
	Musicians MusicianStore
	Events    EventStore
	Bookings  BookingStore
}

type Options struct {
	// OwnerGuard looks for an existing venue owner before seeding venues and
	// creates a placeholder owner only when none exists.
	OwnerGuard bool
}

var placeholderOwner = domain.CreateUserRequest{
	Email: "placeholder.owner@example.com",
	Name:  "Placeholder Owner",
	Role:  domain.RoleVenueOwner,
}

// Seeder creates demo records in dependency order. Nothing is checked for
// existence, so running it twice creates everything twice.
type Seeder struct {
	stores Stores
	opts   Options
	logger log.FieldLogger
}

func NewSeeder(stores Stores, opts Options, logger log.FieldLogger) *Seeder {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Seeder{stores: stores, opts: opts, logger: logger}
}

// run holds the ids created so far, keyed by natural key.
type run struct {
	report       *Report
	users        map[string]string
	venues       map[string]string
	musicians    map[string]string
	events       map[string]string
	defaultOwner string
}

// Run seeds ds. Step failures are recorded in the report and logged; Run
// itself only fails on a cancelled context.
func (s *Seeder) Run(ctx context.Context, ds *Dataset) (*Report, error) {
	r := &run{
		report:    &Report{},
		users:     map[string]string{},
		venues:    map[string]string{},
		musicians: map[string]string{},
		events:    map[string]string{},
	}

	steps := []func(context.Context, *run, *Dataset){
		s.seedUsers,
		s.ensureOwner,
		s.seedVenues,
		s.seedMusicians,
		s.seedEvents,
		s.seedBookings,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return r.report, err
		}
		step(ctx, r, ds)
	}

	s.logger.WithFields(log.Fields{
		"created": r.report.Count(StatusCreated),
		"failed":  r.report.Count(StatusFailed),
		"skipped": r.report.Count(StatusSkipped),
	}).Info("Seeding finished")

	return r.report, nil
}

func (s *Seeder) created(r *run, kind, name, id string) {
	r.report.add(StepResult{Kind: kind, Name: name, Status: StatusCreated, ID: id})
	s.logger.WithFields(log.Fields{"kind": kind, "name": name, "id": id}).Info("Seeded record")
}

func (s *Seeder) failed(r *run, kind, name string, err error) {
	r.report.add(StepResult{Kind: kind, Name: name, Status: StatusFailed, Err: err})
	s.logger.WithError(err).WithFields(log.Fields{"kind": kind, "name": name}).Error("Failed to seed record")
}

func (s *Seeder) skipped(r *run, kind, name string, err error) {
	r.report.add(StepResult{Kind: kind, Name: name, Status: StatusSkipped, Err: err})
	s.logger.WithError(err).WithFields(log.Fields{"kind": kind, "name": name}).Error("Skipping record, dependency unavailable")
}

func (s *Seeder) seedUsers(ctx context.Context, r *run, ds *Dataset) {
	for _, req := range ds.Users {
		if err := domain.ValidateUser(req); err != nil {
			s.failed(r, KindUser, req.Email, err)
			continue
		}
		user, err := s.stores.Users.Create(ctx, req)
		if err != nil {
			s.failed(r, KindUser, req.Email, err)
			continue
		}
		r.users[req.Email] = user.ID
		if req.Role == domain.RoleVenueOwner && r.defaultOwner == "" {
			r.defaultOwner = user.ID
		}
		s.created(r, KindUser, req.Email, user.ID)
	}
}

func (s *Seeder) ensureOwner(ctx context.Context, r *run, ds *Dataset) {
	if !s.opts.OwnerGuard {
		return
	}

	owners, err := s.stores.Users.ListByRole(ctx, domain.RoleVenueOwner, 1)
	if err != nil {
		s.logger.WithError(err).Warn("Could not look up existing venue owners")
	}
	if len(owners) > 0 {
		if r.defaultOwner == "" {
			r.defaultOwner = owners[0].ID
		}
		s.logger.WithField("owner_id", owners[0].ID).Info("Found existing venue owner")
		return
	}
	if err != nil {
		// The lookup failed; fall back to whatever owner this run created.
		return
	}

	user, err := s.stores.Users.Create(ctx, placeholderOwner)
	if err != nil {
		s.failed(r, KindUser, placeholderOwner.Email, err)
		return
	}
	r.users[placeholderOwner.Email] = user.ID
	r.defaultOwner = user.ID
	s.created(r, KindUser, placeholderOwner.Email, user.ID)
}

func (s *Seeder) seedVenues(ctx context.Context, r *run, ds *Dataset) {
	for _, f := range ds.Venues {
		ownerID := r.defaultOwner
		if f.Owner != "" {
			ownerID = r.users[f.Owner]
		}
		if ownerID == "" {
			s.skipped(r, KindVenue, f.Name, fmt.Errorf("owner %q was not created", f.Owner))
			continue
		}

		req := f.CreateVenueRequest
		req.OwnerID = ownerID
		if err := domain.ValidateVenue(req); err != nil {
			s.failed(r, KindVenue, f.Name, err)
			continue
		}
		venue, err := s.stores.Venues.Create(ctx, req)
		if err != nil {
			s.failed(r, KindVenue, f.Name, err)
			continue
		}
		r.venues[f.Name] = venue.ID
		s.created(r, KindVenue, f.Name, venue.ID)
	}
}

func (s *Seeder) seedMusicians(ctx context.Context, r *run, ds *Dataset) {
	for _, f := range ds.Musicians {
		req := f.CreateMusicianRequest
		if f.User != "" {
			if id, ok := r.users[f.User]; ok {
				req.UserID = &id
			} else {
				s.logger.WithField("user", f.User).Warn("Musician user not seeded, creating musician without account")
			}
		}
		if err := domain.ValidateMusician(req); err != nil {
			s.failed(r, KindMusician, f.StageName, err)
			continue
		}
		musician, err := s.stores.Musicians.Create(ctx, req)
		if err != nil {
			s.failed(r, KindMusician, f.StageName, err)
			continue
		}
		r.musicians[f.StageName] = musician.ID
		s.created(r, KindMusician, f.StageName, musician.ID)
	}
}

func (s *Seeder) seedEvents(ctx context.Context, r *run, ds *Dataset) {
	for _, f := range ds.Events {
		venueID, ok := r.venues[f.Venue]
		if !ok {
			s.skipped(r, KindEvent, f.Title, fmt.Errorf("venue %q was not created", f.Venue))
			continue
		}

		req := f.CreateEventRequest
		req.VenueID = venueID
		if f.Musician != "" {
			musicianID, ok := r.musicians[f.Musician]
			if !ok {
				s.skipped(r, KindEvent, f.Title, fmt.Errorf("musician %q was not created", f.Musician))
				continue
			}
			req.MusicianID = &musicianID
		}

		if err := validateEvent(req); err != nil {
			s.failed(r, KindEvent, f.Title, err)
			continue
		}
		event, err := s.stores.Events.Create(ctx, req)
		if err != nil {
			s.failed(r, KindEvent, f.Title, err)
			continue
		}
		r.events[f.Title] = event.ID
		s.created(r, KindEvent, f.Title, event.ID)
	}
}

func validateEvent(req domain.CreateEventRequest) error {
	if err := domain.ValidateEventTitle(req.Title); err != nil {
		return err
	}
	if err := domain.ValidateEventDate(req.EventDate); err != nil {
		return err
	}
	if err := domain.ValidateTicketPrice(req.TicketPrice); err != nil {
		return err
	}
	if req.Status != "" {
		return domain.ValidateEventStatus(req.Status)
	}
	return nil
}

func (s *Seeder) seedBookings(ctx context.Context, r *run, ds *Dataset) {
	for _, f := range ds.Bookings {
		name := f.Event + " / " + f.Musician

		eventID, ok := r.events[f.Event]
		if !ok {
			s.skipped(r, KindBooking, name, fmt.Errorf("event %q was not created", f.Event))
			continue
		}
		musicianID, ok := r.musicians[f.Musician]
		if !ok {
			s.skipped(r, KindBooking, name, fmt.Errorf("musician %q was not created", f.Musician))
			continue
		}

		req := f.CreateBookingRequest
		req.EventID = eventID
		req.MusicianID = musicianID
		if req.Status != "" {
			if err := domain.ValidateBookingStatus(req.Status); err != nil {
				s.failed(r, KindBooking, name, err)
				continue
			}
		}

		booking, err := s.stores.Bookings.Create(ctx, req)
		if err != nil {
			s.failed(r, KindBooking, name, err)
			continue
		}
		s.created(r, KindBooking, name, booking.ID)
	}
}
