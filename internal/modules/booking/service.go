// README: Booking service implements quoting, submission with dispatch, and status transitions.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"cabdesk/internal/modules/fleet"
	"cabdesk/internal/modules/matching"
	"cabdesk/internal/modules/pricing"
	"cabdesk/internal/modules/route"
	"cabdesk/internal/types"
)

type Pricing interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (pricing.FareBreakdown, error)
	Vehicle(ctx context.Context, class types.VehicleClass) (pricing.Vehicle, error)
	FindPackage(name string) (pricing.FixedPackage, bool)
}

type Roster interface {
	List(ctx context.Context) ([]fleet.Driver, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, req matching.Request, roster []fleet.Driver) (fleet.Driver, error)
	Release(ctx context.Context, driverID, bookingID types.ID) error
}

// Repository is satisfied by Store and MemoryStore.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	List(ctx context.Context, f ListFilter) ([]Booking, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, reason *string) (bool, error)
	AppendEvent(ctx context.Context, e *Event) error
	Events(ctx context.Context, id types.ID) ([]Event, error)
}

type Deps struct {
	Store   Repository
	Pricing Pricing
	Routes  route.Estimator
	Roster  Roster
	Matcher Dispatcher
	Log     *slog.Logger
}

type Service struct {
	store   Repository
	pricing Pricing
	routes  route.Estimator
	roster  Roster
	matcher Dispatcher
	log     *slog.Logger
	newID   func(time.Time) types.ID
}

func NewService(deps Deps) *Service {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:   deps.Store,
		pricing: deps.Pricing,
		routes:  deps.Routes,
		roster:  deps.Roster,
		matcher: deps.Matcher,
		log:     log.With("module", "booking"),
		newID:   newID,
	}
}

var (
	ErrInvalidState     = errors.New("invalid state transition")
	ErrNotFound         = errors.New("booking not found")
	ErrConflict         = errors.New("booking state conflict")
	ErrBadRequest       = errors.New("bad request")
	ErrCapacityExceeded = errors.New("passenger count exceeds vehicle capacity")
	ErrInvalidOTP       = errors.New("invalid otp")
	ErrWrongDriver      = errors.New("booking is assigned to another driver")
)

// NoDriverError is returned by Create when dispatch finds nobody. It unwraps to
// matching.ErrNoDriverAvailable and carries what the caller can offer instead.
type NoDriverError struct {
	VehicleClass types.VehicleClass
	Remediation  matching.Remediation
}

func (e *NoDriverError) Error() string {
	return fmt.Sprintf("no %s driver available", e.VehicleClass)
}

func (e *NoDriverError) Unwrap() error {
	return matching.ErrNoDriverAvailable
}

const SourcePackage = "package"

type QuoteCommand struct {
	Pickup       string
	Drop         string
	Hint         string
	VehicleClass string
	AC           bool
	// Package names a fixed tour explicitly; otherwise Drop is checked against package names.
	Package string
}

type Quote struct {
	VehicleClass types.VehicleClass    `json:"vehicle_class"`
	Route        route.Estimate        `json:"route"`
	Fare         pricing.FareBreakdown `json:"fare"`
}

type CreateCommand struct {
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	Pickup         string
	Drop           string
	Hint           string
	PickupPoint    *types.Point
	DropPoint      *types.Point
	VehicleClass   string
	AC             bool
	PassengerCount int
	Package        string
}

type AcceptCommand struct {
	BookingID types.ID
	DriverID  types.ID
}

type StartCommand struct {
	BookingID types.ID
	DriverID  types.ID
	OTP       string
}

type CompleteCommand struct {
	BookingID types.ID
	// DriverID is optional; admins complete without one.
	DriverID types.ID
}

type CancelCommand struct {
	BookingID types.ID
	ActorType string
	ActorID   types.ID
	Reason    string
}

// Quote resolves the trip distance and prices it. A fixed package wins over route estimation.
// Any estimation failure surfaces as pricing.ErrEstimationFailed; no zero-km fare is produced.
func (s *Service) Quote(ctx context.Context, cmd QuoteCommand) (Quote, error) {
	if strings.TrimSpace(cmd.Pickup) == "" || strings.TrimSpace(cmd.Drop) == "" {
		return Quote{}, ErrBadRequest
	}
	class, err := types.ParseVehicleClass(cmd.VehicleClass)
	if err != nil {
		return Quote{}, ErrBadRequest
	}

	pkgName := cmd.Package
	if pkgName == "" {
		if pkg, ok := s.pricing.FindPackage(cmd.Drop); ok {
			pkgName = pkg.Name
		}
	}

	q := Quote{VehicleClass: class}
	req := pricing.QuoteRequest{Class: class, AC: cmd.AC, Package: pkgName}
	if pkgName != "" {
		pkg, ok := s.pricing.FindPackage(pkgName)
		if !ok {
			return Quote{}, pricing.ErrUnknownPackage
		}
		q.Route = route.Estimate{
			DistanceKm:  pkg.DistanceKm,
			DurationMin: float64(pkg.DurationMin),
			Description: pkg.Name,
			Source:      SourcePackage,
		}
	} else {
		est, err := s.estimate(ctx, cmd)
		if err != nil {
			return Quote{}, err
		}
		q.Route = est
		req.DistanceKm = est.DistanceKm
	}

	fare, err := s.pricing.Quote(ctx, req)
	if err != nil {
		return Quote{}, err
	}
	q.Fare = fare
	return q, nil
}

func (s *Service) estimate(ctx context.Context, cmd QuoteCommand) (route.Estimate, error) {
	if s.routes == nil {
		return route.Estimate{}, pricing.ErrEstimationFailed
	}
	est, err := s.routes.Estimate(ctx, route.Request{Pickup: cmd.Pickup, Drop: cmd.Drop, Hint: cmd.Hint})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return route.Estimate{}, err
	}
	if err != nil {
		s.log.Warn("route estimation failed", "pickup", cmd.Pickup, "drop", cmd.Drop, "error", err)
		return route.Estimate{}, fmt.Errorf("%w: %v", pricing.ErrEstimationFailed, err)
	}
	if est.DistanceKm <= 0 {
		return route.Estimate{}, pricing.ErrEstimationFailed
	}
	return est, nil
}

// Create quotes, dispatches and stores a PENDING booking with the matched driver and an OTP.
// Nothing is stored when estimation fails, no driver matches, or ctx ends first.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Booking, error) {
	if strings.TrimSpace(cmd.CustomerName) == "" || strings.TrimSpace(cmd.CustomerPhone) == "" {
		return nil, ErrBadRequest
	}
	if cmd.PassengerCount < 0 {
		return nil, ErrBadRequest
	}
	if cmd.PassengerCount == 0 {
		cmd.PassengerCount = 1
	}

	q, err := s.Quote(ctx, QuoteCommand{
		Pickup:       cmd.Pickup,
		Drop:         cmd.Drop,
		Hint:         cmd.Hint,
		VehicleClass: cmd.VehicleClass,
		AC:           cmd.AC,
		Package:      cmd.Package,
	})
	if err != nil {
		return nil, err
	}
	vehicle, err := s.pricing.Vehicle(ctx, q.VehicleClass)
	if err != nil {
		return nil, err
	}
	if vehicle.Capacity > 0 && cmd.PassengerCount > vehicle.Capacity {
		return nil, ErrCapacityExceeded
	}

	now := time.Now()
	id := s.newID(now)
	// Reserve treats an equal booking id as the same holder, so a reused id must not reach dispatch.
	if _, err := s.store.Get(ctx, id); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	roster, err := s.roster.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	driver, err := s.matcher.Dispatch(ctx, matching.Request{BookingID: id, VehicleClass: q.VehicleClass}, roster)
	if errors.Is(err, matching.ErrNoDriverAvailable) {
		s.log.Info("no driver available", "vehicle_class", q.VehicleClass, "pickup", cmd.Pickup)
		return nil, &NoDriverError{VehicleClass: q.VehicleClass, Remediation: matching.Remediate(roster)}
	}
	if err != nil {
		return nil, err
	}

	// The requester may have gone away while we waited on estimation and dispatch.
	if err := ctx.Err(); err != nil {
		s.release(driver.ID, id)
		return nil, err
	}

	driverID := driver.ID
	b := &Booking{
		ID:             id,
		CustomerName:   strings.TrimSpace(cmd.CustomerName),
		CustomerPhone:  strings.TrimSpace(cmd.CustomerPhone),
		CustomerEmail:  strings.TrimSpace(cmd.CustomerEmail),
		Pickup:         strings.TrimSpace(cmd.Pickup),
		Drop:           strings.TrimSpace(cmd.Drop),
		PickupPoint:    cmd.PickupPoint,
		DropPoint:      cmd.DropPoint,
		VehicleClass:   q.VehicleClass,
		AC:             cmd.AC,
		PassengerCount: cmd.PassengerCount,
		PackageName:    q.Fare.PackageName,
		Fare:           q.Fare,
		OTP:            newOTP(),
		Status:         StatusPending,
		DriverID:       &driverID,
		CreatedAt:      now,
	}
	if err := s.store.Create(ctx, b); err != nil {
		// A duplicate id means the hold may belong to the stored booking; leave it.
		if !errors.Is(err, ErrConflict) {
			s.release(driver.ID, id)
		}
		return nil, err
	}
	actorID := types.ID(b.CustomerPhone)
	s.appendEvent(ctx, &Event{
		BookingID:  id,
		FromStatus: StatusNone,
		ToStatus:   StatusPending,
		ActorType:  ActorCustomer,
		ActorID:    &actorID,
		CreatedAt:  now,
	})
	s.log.Info("booking created", "booking_id", id, "driver_id", driverID, "vehicle_class", b.VehicleClass, "fare", b.Fare.TotalFare)
	return b, nil
}

func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) error {
	o, err := s.store.Get(ctx, cmd.BookingID)
	if err != nil {
		return err
	}
	if err := checkDriver(o, cmd.DriverID); err != nil {
		return err
	}
	return s.transition(ctx, o, StatusAssigned, ActorDriver, &cmd.DriverID, nil)
}

func (s *Service) Start(ctx context.Context, cmd StartCommand) error {
	o, err := s.store.Get(ctx, cmd.BookingID)
	if err != nil {
		return err
	}
	if err := checkDriver(o, cmd.DriverID); err != nil {
		return err
	}
	if !CanTransition(o.Status, StatusOnTrip) {
		return ErrInvalidState
	}
	if strings.TrimSpace(cmd.OTP) != o.OTP {
		return ErrInvalidOTP
	}
	return s.transition(ctx, o, StatusOnTrip, ActorDriver, &cmd.DriverID, nil)
}

func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	o, err := s.store.Get(ctx, cmd.BookingID)
	if err != nil {
		return err
	}
	actorType, actorID := ActorAdmin, (*types.ID)(nil)
	if cmd.DriverID != "" {
		if err := checkDriver(o, cmd.DriverID); err != nil {
			return err
		}
		actorType, actorID = ActorDriver, &cmd.DriverID
	}
	if err := s.transition(ctx, o, StatusCompleted, actorType, actorID, nil); err != nil {
		return err
	}
	s.releaseBooking(o)
	return nil
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	o, err := s.store.Get(ctx, cmd.BookingID)
	if err != nil {
		return err
	}
	actorType := cmd.ActorType
	if actorType == "" {
		actorType = ActorCustomer
	}
	var actorID *types.ID
	switch {
	case cmd.ActorID != "":
		actorID = &cmd.ActorID
	case actorType == ActorCustomer:
		id := types.ID(o.CustomerPhone)
		actorID = &id
	case actorType == ActorDriver:
		actorID = o.DriverID
	}
	reason := cmd.Reason
	if err := s.transition(ctx, o, StatusCancelled, actorType, actorID, &reason); err != nil {
		return err
	}
	s.releaseBooking(o)
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

// List returns bookings newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Booking, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Events(ctx context.Context, id types.ID) ([]Event, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Events(ctx, id)
}

func (s *Service) transition(ctx context.Context, o *Booking, to Status, actorType string, actorID *types.ID, reason *string) error {
	if !CanTransition(o.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, to, o.StatusVersion, reason)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	s.appendEvent(ctx, &Event{
		BookingID:  o.ID,
		FromStatus: o.Status,
		ToStatus:   to,
		ActorType:  actorType,
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	})
	s.log.Info("booking status changed", "booking_id", o.ID, "from", o.Status, "to", to, "actor", actorType)
	return nil
}

func (s *Service) appendEvent(ctx context.Context, e *Event) {
	if err := s.store.AppendEvent(ctx, e); err != nil {
		s.log.Error("append booking event", "booking_id", e.BookingID, "error", err)
	}
}

func (s *Service) releaseBooking(o *Booking) {
	if o.DriverID != nil {
		s.release(*o.DriverID, o.ID)
	}
}

// release runs detached from the request context so a cancelled caller still frees the driver.
func (s *Service) release(driverID, bookingID types.ID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.matcher.Release(ctx, driverID, bookingID); err != nil {
		s.log.Error("release driver reservation", "driver_id", driverID, "booking_id", bookingID, "error", err)
	}
}

func checkDriver(o *Booking, driverID types.ID) error {
	if driverID == "" {
		return ErrBadRequest
	}
	if o.DriverID == nil || *o.DriverID != driverID {
		return ErrWrongDriver
	}
	return nil
}

// newID is timestamp-derived; the uuid suffix keeps bookings in the same millisecond apart.
func newID(now time.Time) types.ID {
	return types.ID(fmt.Sprintf("BK%d-%s", now.UnixMilli(), uuid.NewString()[:8]))
}

// newOTP returns a 4-digit pickup code. It is not meant to be unguessable.
func newOTP() string {
	return fmt.Sprintf("%04d", rand.IntN(10000))
}
