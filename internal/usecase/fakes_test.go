package usecase

import (
	"context"
	"sync"
	"time"

	"fleet-booking/internal/data/entity"
	"fleet-booking/internal/data/repository"
	"fleet-booking/internal/dto/request"
	"fleet-booking/pkg/lock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is a mutex-guarded in-memory backing store shared by the fake
// repositories, so concurrent service calls observe each other's writes the
// way they would through the database.
type memStore struct {
	mu           sync.Mutex
	cars         map[uuid.UUID]*entity.Car
	plans        map[uuid.UUID]*entity.TripPlan
	reservations map[uuid.UUID]*entity.Reservation
	payments     map[uuid.UUID]*entity.Payment
	transactions []*entity.PaymentTransaction
	methods      map[uuid.UUID]*entity.PaymentMethod
}

func newMemStore() *memStore {
	return &memStore{
		cars:         make(map[uuid.UUID]*entity.Car),
		plans:        make(map[uuid.UUID]*entity.TripPlan),
		reservations: make(map[uuid.UUID]*entity.Reservation),
		payments:     make(map[uuid.UUID]*entity.Payment),
		methods:      make(map[uuid.UUID]*entity.PaymentMethod),
	}
}

func newTestRepo() (*memStore, *repository.Repository) {
	s := newMemStore()
	repo := &repository.Repository{
		Car:           &fakeCarRepo{s: s},
		TripPlan:      &fakeTripPlanRepo{s: s},
		Reservation:   &fakeReservationRepo{s: s},
		Payment:       &fakePaymentRepo{s: s},
		Transaction:   &fakeTransactionRepo{s: s},
		PaymentMethod: &fakePaymentMethodRepo{s: s},
	}
	return s, repo
}

// fakeTx runs the function against the same repository set; the fakes apply
// writes immediately, so there is nothing to commit or roll back.
type fakeTx struct {
	repo *repository.Repository
}

func (t *fakeTx) InTx(ctx context.Context, fn func(txRepo *repository.Repository) error) error {
	return fn(t.repo)
}

type testEnv struct {
	store        *memStore
	repo         *repository.Repository
	locks        *lock.Keyed
	availability AvailabilityService
	reservation  ReservationService
	payment      PaymentService
	fleet        FleetService
	now          time.Time
}

func newTestEnv() *testEnv {
	store, repo := newTestRepo()
	env := &testEnv{
		store: store,
		repo:  repo,
		now:   time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC),
	}

	tx := &fakeTx{repo: repo}
	log := zap.NewNop()
	locks := lock.NewKeyed()
	env.locks = locks
	clock := Clock(func() time.Time { return env.now })

	env.availability = NewAvailabilityService(repo, locks, clock, time.UTC, log)
	env.payment = NewPaymentService(repo, tx, locks, clock, log)
	env.reservation = NewReservationService(repo, tx, env.availability, env.payment, locks, clock, log)
	env.fleet = NewFleetService(repo, log)

	return env
}

func (e *testEnv) seedCar(seats int, dailyRate, hourlyRate float64) *entity.Car {
	car := &entity.Car{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: e.now, UpdatedAt: e.now},
		PlateNumber: "B 1234 XYZ",
		Model:       "Toyota Avanza",
		Seats:       seats,
		HourlyRate:  hourlyRate,
		DailyRate:   dailyRate,
		IsActive:    true,
	}
	_ = e.repo.Car.Create(context.Background(), car)
	return car
}

func (e *testEnv) seedPlan(capacity int, seatPrice float64) *entity.TripPlan {
	plan := &entity.TripPlan{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: e.now, UpdatedAt: e.now},
		Name:      "Bromo Sunrise",
		SeatPrice: seatPrice,
		Capacity:  capacity,
		IsActive:  true,
	}
	_ = e.repo.TripPlan.Create(context.Background(), plan)
	return plan
}

func (e *testEnv) seedMethod() *entity.PaymentMethod {
	method := &entity.PaymentMethod{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: e.now, UpdatedAt: e.now},
		Name:     "bank_transfer",
		IsActive: true,
	}
	_ = e.repo.PaymentMethod.Create(context.Background(), method)
	return method
}

func carReq(resourceID string, start, end time.Time, passengers int) *request.CreateCarReservationRequest {
	return &request.CreateCarReservationRequest{
		ResourceID:      resourceID,
		StartTime:       start.Format(time.RFC3339),
		EndTime:         end.Format(time.RFC3339),
		Passengers:      passengers,
		PickupLocation:  "Main Garage",
		DropoffLocation: "Airport",
	}
}

func tripReq(planID string, start, end time.Time, passengers int) *request.CreateTripReservationRequest {
	return &request.CreateTripReservationRequest{
		PlanID:     planID,
		StartTime:  start.Format(time.RFC3339),
		EndTime:    end.Format(time.RFC3339),
		Passengers: passengers,
		WithGuide:  true,
	}
}

// ==================== CAR ====================

type fakeCarRepo struct {
	s *memStore
}

func (r *fakeCarRepo) Create(ctx context.Context, car *entity.Car) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *car
	r.s.cars[car.ID] = &c
	return nil
}

func (r *fakeCarRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	car, ok := r.s.cars[id]
	if !ok {
		return nil, nil
	}
	c := *car
	return &c, nil
}

func (r *fakeCarRepo) FindAllActive(ctx context.Context) ([]*entity.Car, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var cars []*entity.Car
	for _, car := range r.s.cars {
		if car.IsActive {
			c := *car
			cars = append(cars, &c)
		}
	}
	return cars, nil
}

func (r *fakeCarRepo) Update(ctx context.Context, car *entity.Car) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *car
	r.s.cars[car.ID] = &c
	return nil
}

// ==================== TRIP PLAN ====================

type fakeTripPlanRepo struct {
	s *memStore
}

func (r *fakeTripPlanRepo) Create(ctx context.Context, plan *entity.TripPlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := *plan
	r.s.plans[plan.ID] = &p
	return nil
}

func (r *fakeTripPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TripPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	plan, ok := r.s.plans[id]
	if !ok {
		return nil, nil
	}
	p := *plan
	return &p, nil
}

func (r *fakeTripPlanRepo) FindAllActive(ctx context.Context) ([]*entity.TripPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var plans []*entity.TripPlan
	for _, plan := range r.s.plans {
		if plan.IsActive {
			p := *plan
			plans = append(plans, &p)
		}
	}
	return plans, nil
}

func (r *fakeTripPlanRepo) Update(ctx context.Context, plan *entity.TripPlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := *plan
	r.s.plans[plan.ID] = &p
	return nil
}

// ==================== RESERVATION ====================

type fakeReservationRepo struct {
	s *memStore
}

func (r *fakeReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := *reservation
	r.s.reservations[reservation.ID] = &res
	return nil
}

func (r *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reservation, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	res := *reservation
	return &res, nil
}

func (r *fakeReservationRepo) FindByCustomerID(ctx context.Context, customerID string, limit, offset int) ([]*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Reservation
	for _, reservation := range r.s.reservations {
		if reservation.CustomerID == customerID {
			res := *reservation
			all = append(all, &res)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeReservationRepo) CountByCustomerID(ctx context.Context, customerID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, reservation := range r.s.reservations {
		if reservation.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeReservationRepo) Update(ctx context.Context, reservation *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := *reservation
	r.s.reservations[reservation.ID] = &res
	return nil
}

func (r *fakeReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.reservations, id)
	return nil
}

func (r *fakeReservationRepo) FindByResourceID(ctx context.Context, resourceID uuid.UUID) ([]*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matches []*entity.Reservation
	for _, reservation := range r.s.reservations {
		if reservation.ResourceID != nil && *reservation.ResourceID == resourceID {
			res := *reservation
			matches = append(matches, &res)
		}
	}
	return matches, nil
}

func (r *fakeReservationRepo) FindOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matches []*entity.Reservation
	for _, reservation := range r.s.reservations {
		if reservation.ResourceID == nil || *reservation.ResourceID != resourceID {
			continue
		}
		if !reservation.Status.IsActive() {
			continue
		}
		if reservation.Overlaps(start, end) {
			res := *reservation
			matches = append(matches, &res)
		}
	}
	return matches, nil
}

func (r *fakeReservationRepo) UpdateStatus(ctx context.Context, reservationID uuid.UUID, status entity.ReservationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reservation, ok := r.s.reservations[reservationID]
	if !ok {
		return nil
	}
	reservation.Status = status
	return nil
}

// ==================== PAYMENT ====================

type fakePaymentRepo struct {
	s *memStore
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := *payment
	r.s.payments[payment.ID] = &p
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	payment, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	p := *payment
	return &p, nil
}

func (r *fakePaymentRepo) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, payment := range r.s.payments {
		if payment.ReservationID == reservationID {
			p := *payment
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.payments, id)
	return nil
}

func (r *fakePaymentRepo) UpdateTotals(ctx context.Context, paymentID uuid.UUID, amountPaid float64, status entity.PaymentStatus, lastTransactionAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	payment, ok := r.s.payments[paymentID]
	if !ok {
		return nil
	}
	payment.AmountPaid = amountPaid
	payment.Status = status
	payment.LastTransactionAt = &lastTransactionAt
	return nil
}

func (r *fakePaymentRepo) UpdateAmountDue(ctx context.Context, paymentID uuid.UUID, amountDue float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	payment, ok := r.s.payments[paymentID]
	if !ok {
		return nil
	}
	payment.AmountDue = amountDue
	return nil
}

// ==================== TRANSACTION ====================

type fakeTransactionRepo struct {
	s *memStore
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.PaymentTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := *transaction
	r.s.transactions = append(r.s.transactions, &t)
	return nil
}

func (r *fakeTransactionRepo) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*entity.PaymentTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matches []*entity.PaymentTransaction
	for _, transaction := range r.s.transactions {
		if transaction.PaymentID == paymentID {
			t := *transaction
			matches = append(matches, &t)
		}
	}
	return matches, nil
}

func (r *fakeTransactionRepo) CountByPaymentID(ctx context.Context, paymentID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, transaction := range r.s.transactions {
		if transaction.PaymentID == paymentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTransactionRepo) SumSignedByPaymentID(ctx context.Context, paymentID uuid.UUID) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum float64
	for _, transaction := range r.s.transactions {
		if transaction.PaymentID == paymentID {
			sum += transaction.SignedAmount()
		}
	}
	return sum, nil
}

// ==================== PAYMENT METHOD ====================

type fakePaymentMethodRepo struct {
	s *memStore
}

func (r *fakePaymentMethodRepo) Create(ctx context.Context, paymentMethod *entity.PaymentMethod) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := *paymentMethod
	r.s.methods[paymentMethod.ID] = &m
	return nil
}

func (r *fakePaymentMethodRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	method, ok := r.s.methods[id]
	if !ok {
		return nil, nil
	}
	m := *method
	return &m, nil
}

func (r *fakePaymentMethodRepo) FindAllActive(ctx context.Context) ([]*entity.PaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var methods []*entity.PaymentMethod
	for _, method := range r.s.methods {
		if method.IsActive {
			m := *method
			methods = append(methods, &m)
		}
	}
	return methods, nil
}

func (r *fakePaymentMethodRepo) Update(ctx context.Context, paymentMethod *entity.PaymentMethod) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := *paymentMethod
	r.s.methods[paymentMethod.ID] = &m
	return nil
}
