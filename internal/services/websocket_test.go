package services

import (
	"testing"

	"github.com/driveline/rental-backend/internal/models"
)

func testClient(id uint, role string, h *Hub) *Client {
	c := &Client{ID: id, Role: role, Send: make(chan []byte, 1), Hub: h}
	h.clients[c] = true
	return c
}

func TestBroadcastBookingEventReachesStaffOnly(t *testing.T) {
	h := NewHub()
	adminClient := testClient(1, string(models.RoleAdmin), h)
	employeeClient := testClient(2, string(models.RoleEmployee), h)
	stakeholderClient := testClient(3, string(models.RoleStakeholder), h)

	h.BroadcastBookingEvent("booking_created", BookingEvent{BookingID: 10, VehicleID: 4, Status: "active"})

	for _, c := range []*Client{adminClient, employeeClient} {
		select {
		case <-c.Send:
		default:
			t.Errorf("client %d (%s) received no event", c.ID, c.Role)
		}
	}
	select {
	case <-stakeholderClient.Send:
		t.Error("stakeholder received a staff broadcast")
	default:
	}
}

func TestNotifyBookingEventTargetsSingleUser(t *testing.T) {
	h := NewHub()
	owner := testClient(5, string(models.RoleStakeholder), h)
	other := testClient(6, string(models.RoleStakeholder), h)

	h.NotifyBookingEvent(5, "booking_created", BookingEvent{BookingID: 10, VehicleID: 4, Status: "active"})

	select {
	case <-owner.Send:
	default:
		t.Error("owner received no event")
	}
	select {
	case <-other.Send:
		t.Error("unrelated user received another owner's event")
	default:
	}
}

func TestBroadcastDropsStalledClient(t *testing.T) {
	h := NewHub()
	stalled := &Client{ID: 7, Role: string(models.RoleAdmin), Send: make(chan []byte), Hub: h}
	h.clients[stalled] = true
	healthy := testClient(8, string(models.RoleAdmin), h)

	h.BroadcastToRole(string(models.RoleAdmin), []byte("ping"))

	if got := h.GetConnectedClients(); got != 1 {
		t.Errorf("GetConnectedClients() = %d, want 1 after dropping the stalled client", got)
	}
	select {
	case <-healthy.Send:
	default:
		t.Error("healthy client received no message")
	}
}
