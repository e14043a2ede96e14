// Package events fans appointment lifecycle events out to websocket
// subscribers. Each subscriber watches one salon's feed.
package events

import (
	"sync"

	"github.com/gorilla/websocket"

	"salonbook/internal/domain"
)

const (
	EventBooked      = "appointment.booked"
	EventRescheduled = "appointment.rescheduled"
	EventCancelled   = "appointment.cancelled"
)

type Event struct {
	Type        string              `json:"type"`
	Appointment *domain.Appointment `json:"appointment"`
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

type Hub struct {
	mu     sync.RWMutex
	salons map[int64]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		salons: make(map[int64]map[*client]struct{}),
	}
}

func (h *Hub) register(salonID int64, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.salons[salonID] == nil {
		h.salons[salonID] = make(map[*client]struct{})
	}
	h.salons[salonID][c] = struct{}{}
}

func (h *Hub) unregister(salonID int64, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.salons[salonID]; ok {
		if _, ok := clients[c]; ok {
			delete(clients, c)
			close(c.send)
			if len(clients) == 0 {
				delete(h.salons, salonID)
			}
		}
	}
}

// Broadcast queues the event for every subscriber of the salon. A subscriber
// whose buffer is full misses the event rather than stalling the caller.
func (h *Hub) Broadcast(salonID int64, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.salons[salonID] {
		select {
		case c.send <- ev:
		default:
		}
	}
}

func (h *Hub) SubscriberCount(salonID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.salons[salonID])
}

// The hub is the booking service's event sink.

func (h *Hub) AppointmentBooked(a *domain.Appointment) {
	h.Broadcast(a.SalonID, Event{Type: EventBooked, Appointment: a})
}

func (h *Hub) AppointmentRescheduled(a *domain.Appointment) {
	h.Broadcast(a.SalonID, Event{Type: EventRescheduled, Appointment: a})
}

func (h *Hub) AppointmentCancelled(a *domain.Appointment) {
	h.Broadcast(a.SalonID, Event{Type: EventCancelled, Appointment: a})
}
