package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogarridot/transfersol-backend/internal/models"
)

func testTranslator() *TranslationService {
	tr := NewTranslationService("en")
	tr.AddLocale("en", map[string]string{
		"email_subject":      "Your booking is confirmed",
		"email_greeting":     "Hello {name},",
		"yes":                "Yes",
		"no":                 "No",
		"previously":         "previously",
		"name_label":         "Name",
		"destination_label":  "Destination",
		"driver_name_label":  "Assigned driver",
		"driver_phone_label": "Driver phone",
	})
	return tr
}

func fullBooking() *models.Booking {
	return &models.Booking{
		ID:                  "QwEr5678",
		Status:              models.BookingStatusPending,
		Name:                "Carla Ruiz",
		Phone:               "+34600333444",
		Email:               "carla@example.com",
		People:              3,
		HasMinors:           true,
		MinorsAge:           "4 and 7",
		NeedsBabySeat:       true,
		LuggageType:         "2 large suitcases",
		ArrivalDate:         "2026-09-10",
		ArrivalTime:         "09:15",
		ArrivalFlightNumber: "IB3672",
		Destination:         "Fuengirola",
		ReturnDate:          "2026-09-17",
		ReturnTime:          "17:00",
		Lang:                "en",
	}
}

func TestConfirmationEmailSkipsEmptyFields(t *testing.T) {
	tr := testTranslator()
	b := fullBooking()
	b.ReturnPickupAddress = ""
	b.AdditionalInfo = ""

	subject, html := BuildConfirmationEmail(tr, "en", b)

	assert.Equal(t, "Your booking is confirmed", subject)
	assert.Contains(t, html, "Hello Carla Ruiz,")
	assert.Contains(t, html, "QwEr5678")
	assert.Contains(t, html, "Fuengirola")

	assert.NotContains(t, html, "return_pickup_label")
	assert.NotContains(t, html, "additional_info")

	// OriginalBookingID is empty, so the modification flag line shows but
	// the id line does not.
	assert.NotContains(t, html, "original_booking_id_label")
}

func TestConfirmationEmailLocalizesBooleans(t *testing.T) {
	tr := testTranslator()
	b := fullBooking()

	_, html := BuildConfirmationEmail(tr, "en", b)

	assert.Contains(t, html, "<li><b>has_minors_label:</b> Yes</li>")
	assert.Contains(t, html, "<li><b>needs_booster_label:</b> No</li>")
}

func TestConfirmationEmailIncludesDriver(t *testing.T) {
	tr := testTranslator()
	b := fullBooking()

	_, html := BuildConfirmationEmail(tr, "en", b)
	assert.NotContains(t, html, "Assigned driver")

	b.Driver = &models.Driver{ID: "d-1", Name: "Paco", Phone: "+34600999888"}
	_, html = BuildConfirmationEmail(tr, "en", b)
	assert.Contains(t, html, "<li><b>Assigned driver:</b> Paco</li>")
	assert.Contains(t, html, "<li><b>Driver phone:</b> +34600999888</li>")
}

func TestUpdateEmailHighlightsChangedFields(t *testing.T) {
	tr := testTranslator()
	original := fullBooking()
	updated := *original
	updated.Destination = "Benalmádena"
	updated.People = 4

	_, html := BuildUpdateEmail(tr, "en", original, &updated)

	assert.Equal(t, 2, strings.Count(html, "#ffecb3"))
	assert.Contains(t, html,
		`<li style="background-color: #ffecb3;"><b>Destination:</b> Benalmádena (<i>previously: Fuengirola</i>)</li>`)
	assert.Contains(t, html,
		`<li style="background-color: #ffecb3;"><b>people_label:</b> 4 (<i>previously: 3</i>)</li>`)

	// Unchanged fields render as plain lines.
	assert.Contains(t, html, "<li><b>Name:</b> Carla Ruiz</li>")
}

func TestUpdateEmailWithoutChanges(t *testing.T) {
	tr := testTranslator()
	b := fullBooking()

	_, html := BuildUpdateEmail(tr, "en", b, b)
	assert.NotContains(t, html, "#ffecb3")
}

func TestUpdateEmailComparesDriverByName(t *testing.T) {
	tr := testTranslator()
	original := fullBooking()
	updated := *original
	updated.Driver = &models.Driver{ID: "d-1", Name: "Paco", Phone: "+34600999888"}

	_, html := BuildUpdateEmail(tr, "en", original, &updated)

	assert.Contains(t, html,
		`<li style="background-color: #ffecb3;"><b>Assigned driver:</b> Paco (<i>previously: N/A</i>)</li>`)
	assert.Contains(t, html, "<li><b>Driver phone:</b> +34600999888</li>")
}

func TestUpdateEmailSameDriverNotHighlighted(t *testing.T) {
	tr := testTranslator()
	original := fullBooking()
	original.Driver = &models.Driver{ID: "d-1", Name: "Paco", Phone: "+34600999888"}
	updated := *original

	_, html := BuildUpdateEmail(tr, "en", original, &updated)

	assert.Contains(t, html, "<li><b>Assigned driver:</b> Paco</li>")
	assert.NotContains(t, html, "#ffecb3")
}

func TestRequestInfoEmailQuotesMessage(t *testing.T) {
	tr := testTranslator()
	tr.AddLocale("en", map[string]string{
		"email_greeting":         "Hello {name},",
		"email_query_subject":    "Question about booking {id}",
		"email_query_body_intro": "About your booking {id}:",
	})
	b := fullBooking()

	subject, html := BuildRequestInfoEmail(tr, "en", b, "Is the 09:15 arrival local time?")

	assert.Equal(t, "Question about booking QwEr5678", subject)
	assert.Contains(t, html, "About your booking QwEr5678:")
	assert.Contains(t, html, "<blockquote>")
	assert.Contains(t, html, "Is the 09:15 arrival local time?")
}

func TestFormatValue(t *testing.T) {
	tr := testTranslator()

	assert.Equal(t, "Yes", formatValue(tr, "en", true))
	assert.Equal(t, "No", formatValue(tr, "en", false))
	assert.Equal(t, "N/A", formatValue(tr, "en", ""))
	assert.Equal(t, "N/A", formatValue(tr, "en", nil))
	assert.Equal(t, "hola", formatValue(tr, "en", "hola"))
	assert.Equal(t, "7", formatValue(tr, "en", 7))
	assert.Equal(t, "N/A", formatValue(tr, "en", 0))
}

func TestUpdateFieldOrderIsStable(t *testing.T) {
	tr := testTranslator()
	b := fullBooking()

	_, html := BuildUpdateEmail(tr, "en", b, b)

	// The field order in the rendered list must match the declared order.
	require.Less(t,
		strings.Index(html, "Name"),
		strings.Index(html, "Destination"))
	require.Less(t,
		strings.Index(html, "Destination"),
		strings.Index(html, fmt.Sprintf("<li><b>%s:</b>", "return_date_label")))
}
