package services

import (
	"fmt"
	"strings"

	"github.com/ogarridot/transfersol-backend/internal/models"
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #f5a623; margin: 0;">TransferSol</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2025 TransferSol. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

type labelValue struct {
	label string
	value interface{}
}

// updateField describes one line of the update diff. The list is fixed and
// ordered so the rendered email is deterministic and the compared field set
// is explicit. The assigned driver is handled separately because it is
// compared by resolved name.
type updateField struct {
	labelKey string
	value    func(b *models.Booking) interface{}
}

var updateFields = []updateField{
	{"name_label", func(b *models.Booking) interface{} { return b.Name }},
	{"phone_label", func(b *models.Booking) interface{} { return b.Phone }},
	{"email_label", func(b *models.Booking) interface{} { return b.Email }},
	{"people_label", func(b *models.Booking) interface{} { return b.People }},
	{"has_minors_label", func(b *models.Booking) interface{} { return b.HasMinors }},
	{"minors_age_label", func(b *models.Booking) interface{} { return b.MinorsAge }},
	{"needs_baby_seat_label", func(b *models.Booking) interface{} { return b.NeedsBabySeat }},
	{"needs_booster_label", func(b *models.Booking) interface{} { return b.NeedsBooster }},
	{"luggage_type_label", func(b *models.Booking) interface{} { return b.LuggageType }},
	{"arrival_date_label", func(b *models.Booking) interface{} { return b.ArrivalDate }},
	{"arrival_time_label", func(b *models.Booking) interface{} { return b.ArrivalTime }},
	{"arrival_flight_label", func(b *models.Booking) interface{} { return b.ArrivalFlightNumber }},
	{"destination_label", func(b *models.Booking) interface{} { return b.Destination }},
	{"return_date_label", func(b *models.Booking) interface{} { return b.ReturnDate }},
	{"return_time_label", func(b *models.Booking) interface{} { return b.ReturnTime }},
	{"return_flight_time_label", func(b *models.Booking) interface{} { return b.ReturnFlightTime }},
	{"return_pickup_label", func(b *models.Booking) interface{} { return b.ReturnPickupAddress }},
	{"return_flight_label", func(b *models.Booking) interface{} { return b.ReturnFlightNumber }},
	{"additional_info", func(b *models.Booking) interface{} { return b.AdditionalInfo }},
}

// formatValue renders a field value for the email. Booleans become the
// localized yes/no, empty values become "N/A".
func formatValue(tr Translator, lang string, value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return tr.T(lang, "yes", nil)
		}
		return tr.T(lang, "no", nil)
	case string:
		if v == "" {
			return "N/A"
		}
		return v
	case int:
		if v == 0 {
			return "N/A"
		}
		return fmt.Sprint(v)
	case nil:
		return "N/A"
	default:
		return fmt.Sprint(v)
	}
}

func driverName(b *models.Booking) string {
	if b.Driver != nil {
		return b.Driver.Name
	}
	return "N/A"
}

// BuildConfirmationEmail renders the confirmation subject and HTML body for
// a booking: a greeting, every non-empty detail as a list line, and the
// assigned driver when there is one.
func BuildConfirmationEmail(tr Translator, lang string, b *models.Booking) (subject, html string) {
	details := []labelValue{
		{tr.T(lang, "booking_id_label", nil), b.ID},
		{tr.T(lang, "name_label", nil), b.Name},
		{tr.T(lang, "phone_label", nil), b.Phone},
		{tr.T(lang, "email_label", nil), b.Email},
		{tr.T(lang, "people_label", nil), b.People},
		{tr.T(lang, "has_minors_label", nil), formatValue(tr, lang, b.HasMinors)},
		{tr.T(lang, "minors_age_label", nil), b.MinorsAge},
		{tr.T(lang, "needs_baby_seat_label", nil), formatValue(tr, lang, b.NeedsBabySeat)},
		{tr.T(lang, "needs_booster_label", nil), formatValue(tr, lang, b.NeedsBooster)},
		{tr.T(lang, "luggage_type_label", nil), b.LuggageType},
		{tr.T(lang, "arrival_date_label", nil), b.ArrivalDate},
		{tr.T(lang, "arrival_time_label", nil), b.ArrivalTime},
		{tr.T(lang, "arrival_flight_label", nil), b.ArrivalFlightNumber},
		{tr.T(lang, "destination_label", nil), b.Destination},
		{tr.T(lang, "return_date_label", nil), b.ReturnDate},
		{tr.T(lang, "return_time_label", nil), b.ReturnTime},
		{tr.T(lang, "return_flight_time_label", nil), b.ReturnFlightTime},
		{tr.T(lang, "return_pickup_label", nil), b.ReturnPickupAddress},
		{tr.T(lang, "return_flight_label", nil), b.ReturnFlightNumber},
		{tr.T(lang, "additional_info", nil), b.AdditionalInfo},
		{tr.T(lang, "is_modification_label", nil), formatValue(tr, lang, b.IsModification)},
		{tr.T(lang, "original_booking_id_label", nil), b.OriginalBookingID},
	}

	if b.Driver != nil {
		details = append(details,
			labelValue{tr.T(lang, "driver_name_label", nil), b.Driver.Name},
			labelValue{tr.T(lang, "driver_phone_label", nil), b.Driver.Phone},
		)
	}

	var list strings.Builder
	list.WriteString("<ul>")
	for _, d := range details {
		if d.value == nil {
			continue
		}
		if s, ok := d.value.(string); ok && s == "" {
			continue
		}
		fmt.Fprintf(&list, "<li><b>%s:</b> %v</li>", d.label, d.value)
	}
	list.WriteString("</ul>")

	body := fmt.Sprintf(`
		<h1>%s</h1>
		<p>%s</p>
		<p>%s</p>
		<p><b>%s</b></p>
		%s
		<p>%s</p>
		<p>%s</p>`,
		tr.T(lang, "email_title", nil),
		tr.T(lang, "email_greeting", map[string]string{"name": b.Name}),
		tr.T(lang, "email_body_intro", nil),
		tr.T(lang, "email_details_header", nil),
		list.String(),
		tr.T(lang, "email_body_outro", nil),
		tr.T(lang, "email_farewell", nil),
	)

	return tr.T(lang, "email_subject", nil), emailHeader + body + emailFooter
}

// BuildUpdateEmail renders the update notification: one line per field in
// the fixed order, with changed lines highlighted and carrying the previous
// value. Fields compare by string form, so 1 and "1" are equal. The driver
// compares by resolved name, not id, and renders "N/A" when unassigned.
func BuildUpdateEmail(tr Translator, lang string, original, updated *models.Booking) (subject, html string) {
	var list strings.Builder
	list.WriteString("<ul>")

	for _, field := range updateFields {
		label := tr.T(lang, field.labelKey, nil)
		originalValue := field.value(original)
		updatedValue := field.value(updated)

		originalFormatted := formatValue(tr, lang, originalValue)
		updatedFormatted := formatValue(tr, lang, updatedValue)

		if fmt.Sprint(originalValue) != fmt.Sprint(updatedValue) {
			fmt.Fprintf(&list, `<li style="background-color: #ffecb3;"><b>%s:</b> %s (<i>%s: %s</i>)</li>`,
				label, updatedFormatted, tr.T(lang, "previously", nil), originalFormatted)
		} else {
			fmt.Fprintf(&list, "<li><b>%s:</b> %s</li>", label, updatedFormatted)
		}
	}

	driverLabel := tr.T(lang, "driver_name_label", nil)
	originalDriver := driverName(original)
	updatedDriver := driverName(updated)
	if originalDriver != updatedDriver {
		fmt.Fprintf(&list, `<li style="background-color: #ffecb3;"><b>%s:</b> %s (<i>%s: %s</i>)</li>`,
			driverLabel, updatedDriver, tr.T(lang, "previously", nil), originalDriver)
	} else {
		fmt.Fprintf(&list, "<li><b>%s:</b> %s</li>", driverLabel, updatedDriver)
	}

	if updated.Driver != nil {
		fmt.Fprintf(&list, "<li><b>%s:</b> %s</li>", tr.T(lang, "driver_phone_label", nil), updated.Driver.Phone)
	}

	list.WriteString("</ul>")

	body := fmt.Sprintf(`
		<h1>%s</h1>
		<p>%s</p>
		<p>%s</p>
		<p><b>%s</b></p>
		%s
		<p>%s</p>
		<p>%s</p>`,
		tr.T(lang, "email_update_title", nil),
		tr.T(lang, "email_greeting", map[string]string{"name": updated.Name}),
		tr.T(lang, "email_update_body_intro", nil),
		tr.T(lang, "email_details_header", nil),
		list.String(),
		tr.T(lang, "email_update_body_outro", nil),
		tr.T(lang, "email_farewell", nil),
	)

	return tr.T(lang, "email_update_subject", nil), emailHeader + body + emailFooter
}

// BuildRequestInfoEmail renders the staff-written question quoted back to
// the customer.
func BuildRequestInfoEmail(tr Translator, lang string, b *models.Booking, message string) (subject, html string) {
	body := fmt.Sprintf(`
		<h1>%s</h1>
		<p>%s</p>
		<p>%s</p>
		<blockquote>
			<p>%s</p>
		</blockquote>
		<p>%s</p>`,
		tr.T(lang, "email_query_title", nil),
		tr.T(lang, "email_greeting", map[string]string{"name": b.Name}),
		tr.T(lang, "email_query_body_intro", map[string]string{"id": b.ID}),
		message,
		tr.T(lang, "email_farewell", nil),
	)

	return tr.T(lang, "email_query_subject", map[string]string{"id": b.ID}), emailHeader + body + emailFooter
}
