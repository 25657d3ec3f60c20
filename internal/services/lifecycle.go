package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ogarridot/transfersol-backend/internal/models"
	"github.com/ogarridot/transfersol-backend/pkg/utils"
)

// fallbackLang is used when a booking was submitted without a language.
const fallbackLang = "es"

// ErrNoEmailOnFile is returned when an operation needs to email the
// customer but the booking has no address.
var ErrNoEmailOnFile = errors.New("client does not have an email address on file")

// NotificationError reports a failed email or push delivery after the
// state change itself already succeeded. Callers decide whether that is a
// partial success (Confirm) or a failure (Update).
type NotificationError struct {
	Op  string
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// BookingStore is the persistence the lifecycle engine needs. Reads return
// the booking with its assigned driver expanded; missing records surface
// as store.ErrNotFound.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Booking, error)
}

// BookingService owns the booking lifecycle: every status or field change
// goes through here and fans out to email, push and the admin hub. The
// record mutation is always durably applied before any notification is
// attempted, and a failed side effect never rolls it back.
type BookingService struct {
	store BookingStore
	mail  EmailSender
	push  PushSender
	hub   Broadcaster
	tr    Translator
}

func NewBookingService(store BookingStore, mail EmailSender, push PushSender, hub Broadcaster, tr Translator) *BookingService {
	return &BookingService{
		store: store,
		mail:  mail,
		push:  push,
		hub:   hub,
		tr:    tr,
	}
}

func (s *BookingService) lang(b *models.Booking) string {
	if b.Lang == "" {
		return fallbackLang
	}
	return b.Lang
}

// notify is the fire-and-forget push contract: invoke, discard the result.
// The sink logs its own per-device failures.
func (s *BookingService) notify(title, body string) {
	if s.push == nil {
		return
	}
	s.push.Send(PushPayload{Title: title, Body: body})
}

// Create persists a fresh pending booking with a generated id, then
// broadcasts it to the admin hub and pushes a notification. Both side
// effects are best-effort; only the persist can fail the call.
func (s *BookingService) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.ID = utils.NewBookingID()
	booking.Status = models.BookingStatusPending
	booking.ReceivedAt = time.Now()

	if err := s.store.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Emit("newBooking", booking)
	}
	s.notify("New Booking Created", fmt.Sprintf("Booking #%s has been created.", booking.ID))

	return booking, nil
}

// Confirm moves the booking to confirmed and emails the customer the full
// localized detail list. A failed email comes back as a NotificationError
// with the booking still attached: the status change has already landed.
// No email on file means nothing to send, not an error.
func (s *BookingService) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.store.Update(ctx, id, map[string]interface{}{"status": models.BookingStatusConfirmed})
	if err != nil {
		return nil, err
	}

	s.notify("Booking Confirmed", fmt.Sprintf("Booking #%s has been confirmed.", booking.ID))

	if booking.Email != "" {
		subject, html := BuildConfirmationEmail(s.tr, s.lang(booking), booking)
		if err := s.mail.Send(booking.Email, subject, html); err != nil {
			log.Printf("Error sending confirmation email for booking %s: %v", booking.ID, err)
			return booking, &NotificationError{Op: "send confirmation email", Err: err}
		}
	}

	return booking, nil
}

// Cancel moves the booking to cancelled. Only a push notification goes
// out; cancellations never email the customer.
func (s *BookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.store.Update(ctx, id, map[string]interface{}{"status": models.BookingStatusCancelled})
	if err != nil {
		return nil, err
	}

	s.notify("Booking Cancelled", fmt.Sprintf("Booking #%s has been cancelled.", booking.ID))

	return booking, nil
}

// BookingPatch is a partial update: only non-nil fields overwrite the
// stored value. People comes in loosely typed because clients send it as
// either a number or a string.
type BookingPatch struct {
	Name                *string     `json:"name"`
	Phone               *string     `json:"phone"`
	Email               *string     `json:"email"`
	People              interface{} `json:"people"`
	HasMinors           *bool       `json:"hasMinors"`
	MinorsAge           *string     `json:"minorsAge"`
	NeedsBabySeat       *bool       `json:"needsBabySeat"`
	NeedsBooster        *bool       `json:"needsBooster"`
	LuggageType         *string     `json:"luggageType"`
	ArrivalDate         *string     `json:"arrival_date"`
	ArrivalTime         *string     `json:"arrival_time"`
	ArrivalFlightNumber *string     `json:"arrival_flight_number"`
	Destination         *string     `json:"destination"`
	ReturnDate          *string     `json:"return_date"`
	ReturnTime          *string     `json:"return_time"`
	ReturnFlightTime    *string     `json:"return_flight_time"`
	ReturnPickupAddress *string     `json:"return_pickup_address"`
	ReturnFlightNumber  *string     `json:"return_flight_number"`
	AdditionalInfo      *string     `json:"additional_info"`
	IsModification      *bool       `json:"isModification"`
	OriginalBookingID   *string     `json:"originalBookingId"`
	Lang                *string     `json:"lang"`
	DriverID            *string     `json:"driverId"`
}

// fields maps the set patch values to store columns. A non-numeric people
// value is dropped rather than written, and an empty driverId means
// unassigned, not a literal empty string.
func (p *BookingPatch) fields() map[string]interface{} {
	fields := make(map[string]interface{})

	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	setBool := func(column string, v *bool) {
		if v != nil {
			fields[column] = *v
		}
	}

	setString("name", p.Name)
	setString("phone", p.Phone)
	setString("email", p.Email)
	setBool("has_minors", p.HasMinors)
	setString("minors_age", p.MinorsAge)
	setBool("needs_baby_seat", p.NeedsBabySeat)
	setBool("needs_booster", p.NeedsBooster)
	setString("luggage_type", p.LuggageType)
	setString("arrival_date", p.ArrivalDate)
	setString("arrival_time", p.ArrivalTime)
	setString("arrival_flight_number", p.ArrivalFlightNumber)
	setString("destination", p.Destination)
	setString("return_date", p.ReturnDate)
	setString("return_time", p.ReturnTime)
	setString("return_flight_time", p.ReturnFlightTime)
	setString("return_pickup_address", p.ReturnPickupAddress)
	setString("return_flight_number", p.ReturnFlightNumber)
	setString("additional_info", p.AdditionalInfo)
	setBool("is_modification", p.IsModification)
	setString("original_booking_id", p.OriginalBookingID)
	setString("lang", p.Lang)

	if p.People != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(p.People))); err == nil {
			fields["people"] = n
		}
	}

	if p.DriverID != nil {
		if *p.DriverID == "" {
			fields["driver_id"] = nil
		} else {
			fields["driver_id"] = *p.DriverID
		}
	}

	return fields
}

// Update loads the booking before mutating it, applies the patch, and
// emails the customer a field-by-field diff against that prior snapshot.
// Unlike Confirm, a failed update email fails the whole call from the
// caller's perspective; the persisted change still stands either way.
func (s *BookingService) Update(ctx context.Context, id string, patch BookingPatch) (*models.Booking, error) {
	original, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := patch.fields()
	updated := original
	if len(fields) > 0 {
		updated, err = s.store.Update(ctx, id, fields)
		if err != nil {
			return nil, err
		}
	}

	s.notify("Booking Updated", fmt.Sprintf("Booking #%s has been updated.", updated.ID))

	if updated.Email != "" {
		subject, html := BuildUpdateEmail(s.tr, s.lang(updated), original, updated)
		if err := s.mail.Send(updated.Email, subject, html); err != nil {
			log.Printf("Error sending update email for booking %s: %v", updated.ID, err)
			return updated, &NotificationError{Op: "send update email", Err: err}
		}
	}

	return updated, nil
}

// RequestInfo emails a staff-written question to the customer. No status
// change, no broadcast.
func (s *BookingService) RequestInfo(ctx context.Context, id, message string) error {
	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if booking.Email == "" {
		return ErrNoEmailOnFile
	}

	subject, html := BuildRequestInfoEmail(s.tr, s.lang(booking), booking, message)
	if err := s.mail.Send(booking.Email, subject, html); err != nil {
		return fmt.Errorf("failed to send query email: %w", err)
	}

	return nil
}
