package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the database. The fake transactor
// serializes transactions and restores a snapshot when one fails, which is
// enough to observe all-or-nothing behaviour from the usecases.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users           map[uuid.UUID]entity.User
	medics          map[uuid.UUID]entity.Medic
	specializations map[int]entity.Specialization
	services        map[int]entity.Service
	slots           map[int64]entity.Availability
	appointments    map[int64]entity.Appointment
	timetables      map[uuid.UUID]entity.TimeTable
	records         map[uuid.UUID]entity.MedicalRecord
	diagnoses       []entity.Diagnosis
	audits          []entity.AuditLog
	nextID          int64

	failAudit bool
}

func newMemStore() *memStore {
	return &memStore{
		users:           map[uuid.UUID]entity.User{},
		medics:          map[uuid.UUID]entity.Medic{},
		specializations: map[int]entity.Specialization{},
		services:        map[int]entity.Service{},
		slots:           map[int64]entity.Availability{},
		appointments:    map[int64]entity.Appointment{},
		timetables:      map[uuid.UUID]entity.TimeTable{},
		records:         map[uuid.UUID]entity.MedicalRecord{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type snapshot struct {
	slots        map[int64]entity.Availability
	appointments map[int64]entity.Appointment
	timetables   map[uuid.UUID]entity.TimeTable
	diagnoses    []entity.Diagnosis
	audits       []entity.AuditLog
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		slots:        make(map[int64]entity.Availability, len(s.slots)),
		appointments: make(map[int64]entity.Appointment, len(s.appointments)),
		timetables:   make(map[uuid.UUID]entity.TimeTable, len(s.timetables)),
		diagnoses:    append([]entity.Diagnosis(nil), s.diagnoses...),
		audits:       append([]entity.AuditLog(nil), s.audits...),
	}
	for k, v := range s.slots {
		snap.slots[k] = v
	}
	for k, v := range s.appointments {
		snap.appointments[k] = v
	}
	for k, v := range s.timetables {
		snap.timetables[k] = v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots = snap.slots
	s.appointments = snap.appointments
	s.timetables = snap.timetables
	s.diagnoses = snap.diagnoses
	s.audits = snap.audits
}

// fakeTransactor hands nil handles to the mock repositories, which ignore them.
type fakeTransactor struct {
	store *memStore
}

func (f *fakeTransactor) Conn(ctx context.Context) *gorm.DB {
	return nil
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.store.txMu.Lock()
	defer f.store.txMu.Unlock()

	snap := f.store.snapshot()
	if err := fn(nil); err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

// --- repositories ---

type mockUserRepo struct{ s *memStore }

func (r *mockUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

type mockMedicRepo struct{ s *memStore }

func (r *mockMedicRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.medics[id]
	if !ok {
		return nil, nil
	}
	m.User = r.s.users[id]
	m.Specialization = r.s.specializations[m.SpecializationID]
	return &m, nil
}

func (r *mockMedicRepo) LockForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Medic, error) {
	return r.FindByID(db, id)
}

func (r *mockMedicRepo) ListDoctors(db *gorm.DB, specializationID *int) ([]entity.DoctorListing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.DoctorListing
	for id, m := range r.s.medics {
		if specializationID != nil && m.SpecializationID != *specializationID {
			continue
		}
		out = append(out, entity.DoctorListing{
			MedicID:            id,
			Username:           r.s.users[id].Username,
			SpecializationID:   m.SpecializationID,
			SpecializationName: r.s.specializations[m.SpecializationID].Name,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *mockMedicRepo) ListSpecializations(db *gorm.DB) ([]entity.Specialization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Specialization
	for _, sp := range r.s.specializations {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type mockAvailabilityRepo struct{ s *memStore }

func (r *mockAvailabilityRepo) CreateBatch(db *gorm.DB, slots []entity.Availability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range slots {
		for _, existing := range r.s.slots {
			if existing.MedicID == slots[i].MedicID && existing.StartTime.Equal(slots[i].StartTime) {
				return &pgconn.PgError{Code: "23505", ConstraintName: "ux_availabilities_medic_start"}
			}
		}
		slots[i].ID = r.s.id()
		r.s.slots[slots[i].ID] = slots[i]
	}
	return nil
}

func (r *mockAvailabilityRepo) FindByID(db *gorm.DB, id int64) (*entity.Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.slots[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *mockAvailabilityRepo) FindStartingBetween(db *gorm.DB, medicID uuid.UUID, from, to time.Time) ([]entity.Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Availability
	for _, a := range r.s.slots {
		if a.MedicID == medicID && a.StartTime.After(from) && a.StartTime.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *mockAvailabilityRepo) List(db *gorm.DB, filter entity.AvailabilityFilter) ([]entity.Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Availability
	for _, a := range r.s.slots {
		if a.MedicID != filter.MedicID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Order.Desc() {
			return out[i].StartTime.After(out[j].StartTime)
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (r *mockAvailabilityRepo) FindFreeOn(db *gorm.DB, medicID uuid.UUID, date time.Time) ([]entity.Availability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Availability
	for _, a := range r.s.slots {
		if a.MedicID == medicID && a.IsFree() && a.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *mockAvailabilityRepo) MarkBooked(db *gorm.DB, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.slots[id]
	if !ok || a.Status != entity.AvailabilityFree {
		return 0, nil
	}
	a.Status = entity.AvailabilityBooked
	r.s.slots[id] = a
	return 1, nil
}

func (r *mockAvailabilityRepo) MarkFree(db *gorm.DB, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.slots[id]
	if !ok {
		return 0, nil
	}
	a.Status = entity.AvailabilityFree
	r.s.slots[id] = a
	return 1, nil
}

type mockAppointmentRepo struct{ s *memStore }

func (r *mockAppointmentRepo) Create(db *gorm.DB, a *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.id()
	r.s.appointments[a.ID] = *a
	return nil
}

func (r *mockAppointmentRepo) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.appointments[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *mockAppointmentRepo) Cancel(db *gorm.DB, id int64, cancelledBy uuid.UUID, reason string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok || a.IsCancelled() {
		return 0, nil
	}
	a.Status = entity.AppointmentCancelled
	a.CancellationReason = reason
	a.CancelledBy = &cancelledBy
	a.CancelledAt = &at
	a.AvailabilityID = nil
	r.s.appointments[id] = a
	return 1, nil
}

func (r *mockAppointmentRepo) UpdateNotes(db *gorm.DB, id int64, notes string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok || a.IsCancelled() {
		return 0, nil
	}
	a.Notes = notes
	r.s.appointments[id] = a
	return 1, nil
}

func (r *mockAppointmentRepo) Delete(db *gorm.DB, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.s.appointments, id)
	return 1, nil
}

func (r *mockAppointmentRepo) ListViews(db *gorm.DB, filter entity.ConsultationFilter) ([]entity.ConsultationView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.ConsultationView
	for _, a := range r.s.appointments {
		var counterpart uuid.UUID
		switch {
		case filter.PacientID != nil && a.PacientID == *filter.PacientID:
			counterpart = a.MedicID
		case filter.MedicID != nil && a.MedicID == *filter.MedicID:
			counterpart = a.PacientID
		default:
			continue
		}
		medic := r.s.medics[a.MedicID]
		svc := r.s.services[a.ServiceID]
		out = append(out, entity.ConsultationView{
			AppointmentID:      a.ID,
			AppointmentDate:    a.AppointmentDate,
			Notes:              a.Notes,
			Status:             a.Status,
			CancellationReason: a.CancellationReason,
			PacientID:          a.PacientID,
			MedicID:            a.MedicID,
			CounterpartName:    r.s.users[counterpart].Username,
			SpecializationName: r.s.specializations[medic.SpecializationID].Name,
			ServiceName:        svc.Name,
			ServicePrice:       svc.Price,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Order.Desc() {
			return out[i].AppointmentDate.After(out[j].AppointmentDate)
		}
		return out[i].AppointmentDate.Before(out[j].AppointmentDate)
	})
	return out, nil
}

type mockServiceRepo struct{ s *memStore }

func (r *mockServiceRepo) FindByID(db *gorm.DB, id int) (*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if svc, ok := r.s.services[id]; ok {
		return &svc, nil
	}
	return nil, nil
}

type mockTimeTableRepo struct{ s *memStore }

func (r *mockTimeTableRepo) FindByMedicID(db *gorm.DB, medicID uuid.UUID) (*entity.TimeTable, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if tt, ok := r.s.timetables[medicID]; ok {
		return &tt, nil
	}
	return nil, nil
}

func (r *mockTimeTableRepo) Upsert(db *gorm.DB, timetable *entity.TimeTable) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.timetables[timetable.MedicID] = *timetable
	return nil
}

type mockMedicalRecordRepo struct{ s *memStore }

func (r *mockMedicalRecordRepo) FindByPacientID(db *gorm.DB, pacientID uuid.UUID) (*entity.MedicalRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.records[pacientID]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *mockMedicalRecordRepo) CreateDiagnosis(db *gorm.DB, d *entity.Diagnosis) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = r.s.id()
	r.s.diagnoses = append(r.s.diagnoses, *d)
	return nil
}

func (r *mockMedicalRecordRepo) ListDiagnosisViews(db *gorm.DB, recordID int64) ([]entity.DiagnosisView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.DiagnosisView
	for _, d := range r.s.diagnoses {
		if d.RecordID != recordID {
			continue
		}
		medic := r.s.medics[d.MedicID]
		out = append(out, entity.DiagnosisView{
			DiagnosisID:        d.ID,
			Symptoms:           d.Symptoms,
			Diagnosis:          d.Diagnosis,
			Treatment:          d.Treatment,
			DoctorName:         r.s.users[d.MedicID].Username,
			SpecializationName: r.s.specializations[medic.SpecializationID].Name,
			CreatedAt:          d.CreatedAt,
		})
	}
	return out, nil
}

type mockAuditLogRepo struct{ s *memStore }

func (r *mockAuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failAudit {
		return errors.New("audit store unavailable")
	}
	log.ID = r.s.id()
	r.s.audits = append(r.s.audits, *log)
	return nil
}

func (r *mockAuditLogRepo) FindAll(db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.AuditLog
	for _, l := range r.s.audits {
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *mockAuditLogRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.audits {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, nil
}

// --- notifier ---

type fakeNotifier struct {
	mu            sync.Mutex
	bookings      []service.BookingNotification
	cancellations []service.CancellationNotification
	err           error
}

func (n *fakeNotifier) NotifyBooking(ctx context.Context, b service.BookingNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bookings = append(n.bookings, b)
	return n.err
}

func (n *fakeNotifier) NotifyCancellation(ctx context.Context, c service.CancellationNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancellations = append(n.cancellations, c)
	return n.err
}

// --- fixture ---

var clinicZone = time.FixedZone("EET", 2*60*60)

type fixture struct {
	store    *memStore
	notifier *fakeNotifier
	now      time.Time

	patient     uuid.UUID
	doctor      uuid.UUID
	otherDoctor uuid.UUID
	stranger    uuid.UUID
	admin       uuid.UUID

	availability  AvailabilityUsecase
	consultations ConsultationUsecase
	directory     DoctorDirectoryUsecase
	records       MedicalRecordUsecase
	auditLogs     AuditLogUsecase
}

func newFixture() *fixture {
	s := newMemStore()
	f := &fixture{
		store:       s,
		notifier:    &fakeNotifier{},
		now:         time.Date(2030, 6, 10, 10, 0, 0, 0, clinicZone),
		patient:     uuid.New(),
		doctor:      uuid.New(),
		otherDoctor: uuid.New(),
		stranger:    uuid.New(),
		admin:       uuid.New(),
	}

	s.specializations[1] = entity.Specialization{ID: 1, Name: "Cardiology"}
	s.specializations[2] = entity.Specialization{ID: 2, Name: "Dermatology"}
	s.services[1] = entity.Service{ID: 1, Name: "General consultation"}

	s.users[f.patient] = entity.User{ID: f.patient, Username: "ana", RoleID: entity.RoleIDPatient}
	s.users[f.stranger] = entity.User{ID: f.stranger, Username: "ion", RoleID: entity.RoleIDPatient}
	s.users[f.doctor] = entity.User{ID: f.doctor, Username: "house", RoleID: entity.RoleIDDoctor}
	s.users[f.otherDoctor] = entity.User{ID: f.otherDoctor, Username: "wilson", RoleID: entity.RoleIDDoctor}
	s.users[f.admin] = entity.User{ID: f.admin, Username: "root", RoleID: entity.RoleIDAdmin}
	s.medics[f.doctor] = entity.Medic{MedicID: f.doctor, SpecializationID: 1}
	s.medics[f.otherDoctor] = entity.Medic{MedicID: f.otherDoctor, SpecializationID: 2}
	s.records[f.patient] = entity.MedicalRecord{ID: 500, PacientID: f.patient}

	log := logrus.New()
	log.SetOutput(io.Discard)

	tx := &fakeTransactor{store: s}
	clock := func() time.Time { return f.now }
	audit := service.NewAuditService(log, &mockAuditLogRepo{s})

	f.availability = NewAvailabilityUsecase(tx, log, &mockMedicRepo{s}, &mockAvailabilityRepo{s}, audit, clock, clinicZone)
	f.consultations = NewConsultationUsecase(tx, log, &mockUserRepo{s}, &mockMedicRepo{s}, &mockAvailabilityRepo{s},
		&mockAppointmentRepo{s}, &mockServiceRepo{s}, audit, f.notifier, clock, clinicZone, 1)
	f.directory = NewDoctorDirectoryUsecase(tx, log, &mockMedicRepo{s}, &mockTimeTableRepo{s}, audit)
	f.records = NewMedicalRecordUsecase(tx, log, &mockUserRepo{s}, &mockMedicalRecordRepo{s}, audit)
	f.auditLogs = NewAuditLogUsecase(tx, log, &mockAuditLogRepo{s})

	return f
}

// addSlot stores a FREE slot for doctor on date ("2006-01-02") at hhmm in the clinic zone.
func (f *fixture) addSlot(doctor uuid.UUID, date, hhmm string) int64 {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, clinicZone)
	if err != nil {
		panic(err)
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	id := f.store.id()
	f.store.slots[id] = entity.Availability{
		ID:        id,
		MedicID:   doctor,
		Date:      time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   start.Add(entity.SlotDuration),
		Status:    entity.AvailabilityFree,
	}
	return id
}

func (f *fixture) addAppointment(when time.Time, lifecycle entity.AppointmentLifecycle, slotID *int64) int64 {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	id := f.store.id()
	f.store.appointments[id] = entity.Appointment{
		ID:              id,
		PacientID:       f.patient,
		MedicID:         f.doctor,
		AppointmentDate: when,
		Notes:           "initial",
		ServiceID:       1,
		AvailabilityID:  slotID,
		Status:          lifecycle,
	}
	if slotID != nil {
		slot := f.store.slots[*slotID]
		slot.Status = entity.AvailabilityBooked
		f.store.slots[*slotID] = slot
	}
	return id
}

func (f *fixture) slot(id int64) entity.Availability {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.slots[id]
}

func (f *fixture) appointment(id int64) (entity.Appointment, bool) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	a, ok := f.store.appointments[id]
	return a, ok
}

func (f *fixture) auditActions() []string {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := make([]string, len(f.store.audits))
	for i, a := range f.store.audits {
		out[i] = a.Action
	}
	return out
}
