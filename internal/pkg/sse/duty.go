package sse

import "github.com/beyond-ems/ems-attendance-go/internal/domain/attendance"

// DutyFeed publishes attendance duty events on TopicRoster.
type DutyFeed struct {
	hub *Hub
}

func NewDutyFeed(hub *Hub) *DutyFeed {
	return &DutyFeed{hub: hub}
}

// NotifyDuty implements attendance.DutyNotifier.
func (f *DutyFeed) NotifyDuty(event attendance.DutyEvent) {
	f.hub.Publish(TopicRoster, Event{Event: event.Type, Data: event})
}
