package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// SummaryFunc allows the command loop to inject localized event titles.
type SummaryFunc func(name string) string

// BuildCalendar renders the congratulation report as an iCalendar feed with
// one all-day event (and a DISPLAY alarm) per entry.
// now stamps DTSTAMP; an empty report yields a minimal valid VCALENDAR.
func BuildCalendar(entries []CongratulationEntry, now time.Time, summary SummaryFunc) ([]byte, error) {
	// A calendar without components is still a valid feed for clients.
	if len(entries) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, entry := range entries {
		title := fmt.Sprintf(config.FallbackSummary, entry.Name)
		if summary != nil {
			title = summary(entry.Name)
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(entry))
		event.Props.SetText(config.PropSummary, title)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(entry.Date)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		addAlarm(event, config.ICalReminderTrigger, title)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgCalendarDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(entries),
	)
	return buf.Bytes(), nil
}

// uidNamespace scopes the name-based event UUIDs to this application.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(config.ICalDomain))

// eventUID derives a stable UID (UUIDv5) so that re-exporting the same reminder
// updates the event in calendar clients instead of duplicating it.
func eventUID(entry CongratulationEntry) string {
	input := fmt.Sprintf(config.FormatHashInput, entry.Name, entry.Date.Format(config.VCardDateDash))
	return fmt.Sprintf(config.FormatUID, uuid.NewSHA1(uidNamespace, []byte(input)), config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
