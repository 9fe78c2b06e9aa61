package booking

import "github.com/sharpside-app/sharpener-booking/internal/models"

// ======================================================
// Conflict resolution
// ======================================================

// FreeSubSlots computes the bookable slots of an availability given the
// appointments currently referencing it. Only pending/confirmed
// appointments occupy slots, and reservations are always created at slot
// granularity, so a booked slot is removed by exact (start,end) match.
// An empty result means fully booked, not deleted.
func FreeSubSlots(av *models.Availability, appointments []models.Appointment) []TimeInterval {
	booked := make(map[TimeInterval]bool, len(appointments))
	for _, ap := range appointments {
		if ap.AvailabilityID != av.ID || !IsActive(Status(ap.Status)) {
			continue
		}
		booked[TimeInterval{Start: ap.StartTime, End: ap.EndTime}] = true
	}

	window := TimeInterval{Start: av.StartTime, End: av.EndTime}

	var free []TimeInterval
	for _, slot := range SubSlots(window, SlotMinutes) {
		if !booked[slot] {
			free = append(free, slot)
		}
	}
	return free
}

// VisibleRange collapses the free slots into a single {start,end} summary
// for compact display. Lossy: gaps between booked slots disappear. The
// authoritative check at booking time is always FreeSubSlots.
func VisibleRange(av *models.Availability, appointments []models.Appointment) *TimeInterval {
	free := FreeSubSlots(av, appointments)
	if len(free) == 0 {
		return nil
	}
	return &TimeInterval{
		Start: free[0].Start,
		End:   free[len(free)-1].End,
	}
}

// SlotBookable reports whether iv is one of the free sub-slots.
func SlotBookable(av *models.Availability, appointments []models.Appointment, iv TimeInterval) bool {
	for _, slot := range FreeSubSlots(av, appointments) {
		if slot == iv {
			return true
		}
	}
	return false
}
