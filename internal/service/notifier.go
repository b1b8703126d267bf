package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Mailer interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}

type BookingDetailsReader interface {
	GetDetails(ctx context.Context, id string) (*domain.BookingDetails, error)
}

// StatusNotifier emails a musician when their booking becomes confirmed or
// rejected.
type StatusNotifier struct {
	bookings BookingDetailsReader
	mailer   Mailer
	from     string
}

func NewStatusNotifier(bookings BookingDetailsReader, mailer Mailer, from string) *StatusNotifier {
	return &StatusNotifier{
		bookings: bookings,
		mailer:   mailer,
		from:     from,
	}
}

type bookingEmailData struct {
	MusicianName string
	EventTitle   string
	EventDate    string
	StartTime    string
	VenueName    string
	VenueAddress string
}

// Compose renders the email for status. It returns false when status does
// not produce an email.
func (n *StatusNotifier) Compose(details *domain.BookingDetails, status string) (domain.EmailMessage, bool, error) {
	var name, subject string
	switch status {
	case domain.BookingStatusConfirmed:
		name = "booking_confirmed.html"
		subject = fmt.Sprintf("Booking confirmed: %s", details.Event.Title)
	case domain.BookingStatusRejected:
		name = "booking_rejected.html"
		subject = fmt.Sprintf("Booking update: %s", details.Event.Title)
	default:
		return domain.EmailMessage{}, false, nil
	}

	address := details.Venue.Address
	if details.Venue.City != "" {
		if address != "" {
			address += ", "
		}
		address += details.Venue.City
	}

	data := bookingEmailData{
		MusicianName: details.Musician.StageName,
		EventTitle:   details.Event.Title,
		EventDate:    details.Event.EventDate.Format("Monday, January 2, 2006"),
		StartTime:    details.Event.StartTime,
		VenueName:    details.Venue.Name,
		VenueAddress: address,
	}

	var body bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&body, name, data); err != nil {
		return domain.EmailMessage{}, false, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return domain.EmailMessage{
		From:    n.from,
		To:      details.Musician.Email,
		Subject: subject,
		HTML:    body.String(),
	}, true, nil
}

// NotifyStatusChange sends at most one email and never returns an error:
// lookup, render and transport failures are logged and dropped.
func (n *StatusNotifier) NotifyStatusChange(ctx context.Context, logger log.FieldLogger, bookingID, status string) {
	if n == nil || n.mailer == nil || !domain.NotifiesMusician(status) {
		return
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	logger = logger.WithFields(log.Fields{
		"booking_id": bookingID,
		"status":     status,
	})

	// Reload with relations; the saved booking only carries ids.
	details, err := n.bookings.GetDetails(ctx, bookingID)
	if err != nil {
		logger.WithError(err).Error("Failed to load booking for notification")
		return
	}
	if details.Musician.Email == "" {
		logger.WithField("musician_id", details.Musician.ID).Warn("Musician has no email address, skipping notification")
		return
	}

	msg, ok, err := n.Compose(details, status)
	if err != nil {
		logger.WithError(err).Error("Failed to compose booking email")
		return
	}
	if !ok {
		return
	}

	if err := n.mailer.Send(ctx, msg); err != nil {
		logger.WithError(err).WithField("to", msg.To).Error("Failed to send booking email")
		return
	}

	logger.WithField("to", msg.To).Info("Booking status email sent")
}
