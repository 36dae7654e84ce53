package calendar

import (
	"bytes"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/studyhive/studyhive-backend/internal/domain/entity"
)

// ExportEventsToICS converts a user's planner events into iCalendar
// (.ics) form so deadlines can be subscribed to from an external
// calendar app. Each deadline becomes a one-hour block ending at the
// deadline, with display alarms one day and one hour ahead.
func ExportEventsToICS(events []entity.Event) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//StudyHive Planner//EN")
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	for _, event := range events {
		uid := fmt.Sprintf("%s@studyhive", event.ID)
		e := cal.AddEvent(uid)

		now := time.Now().UTC()
		e.SetDtStampTime(now)
		e.SetCreatedTime(event.CreatedAt)
		e.SetModifiedAt(event.UpdatedAt)

		e.SetStartAt(event.Deadline.UTC().Add(-1 * time.Hour))
		e.SetEndAt(event.Deadline.UTC())

		summary := event.Title
		if event.IsReminder() {
			summary = fmt.Sprintf("Reminder: %s", event.Title)
		}
		e.SetSummary(summary)
		e.SetDescription(event.Description)

		e.SetStatus(ics.ObjectStatusConfirmed)
		e.SetTimeTransparency(ics.TransparencyOpaque)
		e.SetClass(ics.ClassificationPrivate)
		e.SetSequence(0)

		dayAlarm := e.AddAlarm()
		dayAlarm.SetAction(ics.ActionDisplay)
		dayAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-P1D")
		dayAlarm.SetDescription(fmt.Sprintf("Due tomorrow: %s", event.Title))

		hourAlarm := e.AddAlarm()
		hourAlarm.SetAction(ics.ActionDisplay)
		hourAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-PT1H")
		hourAlarm.SetDescription(fmt.Sprintf("Due in one hour: %s", event.Title))
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}

	return buf.Bytes(), nil
}
