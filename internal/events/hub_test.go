package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salonbook/internal/domain"
)

func TestHubBroadcastIsSalonScoped(t *testing.T) {
	h := NewHub()

	a := &client{send: make(chan Event, 4)}
	b := &client{send: make(chan Event, 4)}
	h.register(1, a)
	h.register(2, b)

	h.AppointmentBooked(&domain.Appointment{ID: 10, SalonID: 1})

	assert.Len(t, a.send, 1)
	assert.Len(t, b.send, 0)

	ev := <-a.send
	assert.Equal(t, EventBooked, ev.Type)
	assert.Equal(t, int64(10), ev.Appointment.ID)
}

func TestHubBroadcastNeverBlocks(t *testing.T) {
	h := NewHub()

	c := &client{send: make(chan Event, 1)}
	h.register(5, c)

	appt := &domain.Appointment{ID: 1, SalonID: 5}
	h.AppointmentBooked(appt)
	// The buffer is full now; further events are dropped, not queued.
	h.AppointmentRescheduled(appt)
	h.AppointmentCancelled(appt)

	assert.Len(t, c.send, 1)
}

func TestHubUnregister(t *testing.T) {
	h := NewHub()

	c := &client{send: make(chan Event, 1)}
	h.register(1, c)
	assert.Equal(t, 1, h.SubscriberCount(1))

	h.unregister(1, c)
	assert.Equal(t, 0, h.SubscriberCount(1))

	_, open := <-c.send
	assert.False(t, open)

	// Unregistering twice is harmless.
	h.unregister(1, c)
}
