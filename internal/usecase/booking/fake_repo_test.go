package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	"github.com/sharpside-app/sharpener-booking/internal/notify"
)

var errNotFound = errors.New("not found")

// fakeRepo is an in-memory Repository. The mutex gives Reserve the same
// all-or-nothing semantics the real transaction provides, which is what
// the concurrency tests lean on.
type fakeRepo struct {
	mu sync.Mutex

	users          map[uint]*models.User
	locations      map[uint]*models.Location
	machines       map[uint]*models.Machine
	availabilities map[uint]*models.Availability
	appointments   map[uint]*models.Appointment
	ratings        map[uint]*models.Rating // keyed by appointment ID

	nextAppointmentID uint
	nextRatingID      uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:             map[uint]*models.User{},
		locations:         map[uint]*models.Location{},
		machines:          map[uint]*models.Machine{},
		availabilities:    map[uint]*models.Availability{},
		appointments:      map[uint]*models.Appointment{},
		ratings:           map[uint]*models.Rating{},
		nextAppointmentID: 1,
		nextRatingID:      1,
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

// -------- Users / Locations --------

func (r *fakeRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetLocation(ctx context.Context, id uint) (*models.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetMachine(ctx context.Context, id uint) (*models.Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.machines[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) UpdateSharpenerAggregate(ctx context.Context, sharpenerID uint, avg float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[sharpenerID]
	if !ok {
		return errNotFound
	}
	u.RatingAvg = avg
	u.RatingCount = count
	return nil
}

// -------- Availability --------

func (r *fakeRepo) GetAvailability(ctx context.Context, id uint) (*models.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if av, ok := r.availabilities[id]; ok {
		cp := *av
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) CreateAvailability(ctx context.Context, av *models.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if av.ID == 0 {
		av.ID = uint(len(r.availabilities) + 1)
	}
	cp := *av
	r.availabilities[av.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAvailability(ctx context.Context, av *models.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.availabilities[av.ID]; !ok {
		return errNotFound
	}
	cp := *av
	r.availabilities[av.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteAvailability(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.availabilities, id)
	return nil
}

func (r *fakeRepo) ListAvailabilitiesByLocation(ctx context.Context, locationID uint, machineID *uint) ([]models.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Availability
	for _, av := range r.availabilities {
		if av.LocationID != locationID {
			continue
		}
		if machineID != nil && av.MachineID != *machineID {
			continue
		}
		out = append(out, *av)
	}
	return out, nil
}

func (r *fakeRepo) CountActiveAppointments(ctx context.Context, availabilityID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.activeLocked(availabilityID))), nil
}

// -------- Appointments --------

func (r *fakeRepo) activeLocked(availabilityID uint) []models.Appointment {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.AvailabilityID == availabilityID && domain.IsActive(domain.Status(ap.Status)) {
			out = append(out, *ap)
		}
	}
	return out
}

func (r *fakeRepo) ListActiveAppointments(ctx context.Context, availabilityID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeLocked(availabilityID), nil
}

func (r *fakeRepo) Reserve(ctx context.Context, availabilityID uint, fn domain.ReserveFn) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	av, ok := r.availabilities[availabilityID]
	if !ok {
		return nil, domain.ErrAvailabilityNotFound
	}

	cp := *av
	ap, err := fn(&cp, r.activeLocked(availabilityID))
	if err != nil {
		return nil, err
	}

	// mirror of the partial unique index on active slots
	for _, existing := range r.activeLocked(availabilityID) {
		if existing.StartTime == ap.StartTime && existing.EndTime == ap.EndTime {
			return nil, domain.ErrSlotTaken
		}
	}

	ap.ID = r.nextAppointmentID
	r.nextAppointmentID++
	stored := *ap
	r.appointments[ap.ID] = &stored
	return ap, nil
}

func (r *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap, ok := r.appointments[id]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return errNotFound
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAppointmentFrom(ctx context.Context, ap *models.Appointment, from domain.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[ap.ID]
	if !ok || stored.Status != string(from) {
		return false, nil
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return true, nil
}

func (r *fakeRepo) ListAppointmentsForCustomer(ctx context.Context, customerID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.CustomerID == customerID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForSharpener(ctx context.Context, sharpenerID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SharpenerID == sharpenerID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListConfirmedOnOrBefore(ctx context.Context, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Status == string(domain.StatusConfirmed) && ap.Date <= date {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// -------- Ratings --------

func (r *fakeRepo) EnsureRatingStub(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ratings[ap.ID]; ok {
		return nil
	}
	r.ratings[ap.ID] = &models.Rating{
		ID:            r.nextRatingID,
		AppointmentID: ap.ID,
		CustomerID:    ap.CustomerID,
		SharpenerID:   ap.SharpenerID,
	}
	r.nextRatingID++
	return nil
}

func (r *fakeRepo) GetRatingByAppointment(ctx context.Context, appointmentID uint) (*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rt, ok := r.ratings[appointmentID]; ok {
		cp := *rt
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) SaveRating(ctx context.Context, rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rating
	r.ratings[rating.AppointmentID] = &cp
	return nil
}

func (r *fakeRepo) SharpenerRatingStats(ctx context.Context, sharpenerID uint) (float64, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count int
	for _, rt := range r.ratings {
		if rt.SharpenerID == sharpenerID && rt.Score != nil {
			sum += *rt.Score
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// -------- fixture --------

type noopRecorder struct{}

func (noopRecorder) Log(actorID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func newTestDispatchers() (*notify.Dispatcher, *audit.Dispatcher) {
	return notify.NewDispatcher(notify.LogSender{}), audit.NewDispatcher(noopRecorder{})
}

// fixture seeds a customer (1), a sharpener (2), a location (3, New York
// time) with one machine (4) and one 09:00-10:00 availability (5) on
// 2026-03-10.
func newFixtureRepo() *fakeRepo {
	repo := newFakeRepo()

	repo.users[1] = &models.User{ID: 1, Name: "Casey", Email: "casey@example.com", Phone: "555-0101", Role: models.RoleCustomer}
	repo.users[2] = &models.User{ID: 2, Name: "Sam", Email: "sam@example.com", Phone: "555-0202", Role: models.RoleSharpener}

	repo.locations[3] = &models.Location{
		ID:          3,
		SharpenerID: 2,
		Name:        "Rink Pro Shop",
		Street:      "42 Blade Ave",
		City:        "Boston",
		State:       "MA",
		Zip:         "02101",
		Timezone:    "America/New_York",
	}
	repo.machines[4] = &models.Machine{ID: 4, LocationID: 3, Name: "Blademaster", Active: true}

	repo.availabilities[5] = &models.Availability{
		ID:          5,
		SharpenerID: 2,
		LocationID:  3,
		MachineID:   4,
		Date:        "2026-03-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
		Price:       12,
	}

	return repo
}

var (
	testCustomer  = domain.Actor{ID: 1, Role: models.RoleCustomer}
	testSharpener = domain.Actor{ID: 2, Role: models.RoleSharpener}
)

// fixedClock pins "now" to a local "2006-01-02 15:04" instant in the
// fixture location's timezone.
func fixedClock(value string) clock.Fixed {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	if err != nil {
		panic(err)
	}
	return clock.Fixed{T: t}
}
