// README: End-to-end HTTP tests over the in-memory stack.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/modules/booking"
	"cabdesk/internal/modules/fleet"
	"cabdesk/internal/modules/matching"
	"cabdesk/internal/modules/pricing"
	"cabdesk/internal/modules/route"
)

func buildTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	fleetSvc := fleet.NewService(fleet.NewMemoryStore())
	if err := fleetSvc.Seed(context.Background(), fleet.DemoRoster()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	pricingSvc := pricing.NewService(pricing.DefaultCatalog(), pricing.DefaultPackages())
	bookingSvc := booking.NewService(booking.Deps{
		Store:   booking.NewMemoryStore(),
		Pricing: pricingSvc,
		Routes:  route.DefaultRegistry(),
		Roster:  fleetSvc,
		Matcher: matching.NewService(matching.NewMemoryReserver(time.Hour)),
		Log:     log,
	})
	return NewRouter(RouterDeps{Booking: bookingSvc, Fleet: fleetSvc, Pricing: pricingSvc, Log: log})
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	r := buildTestRouter(t)
	w := doRequest(r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestCatalog(t *testing.T) {
	r := buildTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/vehicles", nil)
	var vehicles struct {
		Vehicles []pricing.Vehicle `json:"vehicles"`
	}
	decode(t, w, &vehicles)
	if w.Code != http.StatusOK || len(vehicles.Vehicles) != 4 {
		t.Fatalf("got %d with %d vehicles", w.Code, len(vehicles.Vehicles))
	}

	w = doRequest(r, http.MethodGet, "/api/packages", nil)
	var pkgs struct {
		Packages []pricing.FixedPackage `json:"packages"`
	}
	decode(t, w, &pkgs)
	if len(pkgs.Packages) != 3 {
		t.Fatalf("got %d packages", len(pkgs.Packages))
	}
}

func TestQuote(t *testing.T) {
	r := buildTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/quotes", map[string]any{
		"pickup": "Chennai Airport", "drop": "Chennai Central", "vehicle_class": "sedan", "ac": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var q booking.Quote
	decode(t, w, &q)
	if q.Fare.TotalFare != 750 || q.Route.Source != route.SourceRegistry {
		t.Fatalf("unexpected quote: %+v", q)
	}

	w = doRequest(r, http.MethodPost, "/api/quotes", map[string]any{
		"pickup": "Chennai Central", "drop": "Atlantis", "vehicle_class": "SEDAN",
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/quotes", map[string]any{"pickup": "a"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBookingLifecycle(t *testing.T) {
	r := buildTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"customer_name":   "Lakshmi",
		"customer_phone":  "9840012345",
		"pickup":          "Chennai Airport",
		"drop":            "Chennai Central",
		"vehicle_class":   "SEDAN",
		"ac":              true,
		"passenger_count": 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var b booking.Booking
	decode(t, w, &b)
	if b.DriverID == nil || *b.DriverID != "drv-ravi" || b.Status != booking.StatusPending {
		t.Fatalf("unexpected booking: %+v", b)
	}
	base := "/api/bookings/" + string(b.ID)

	if w := doRequest(r, http.MethodPost, base+"/accept", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("accept without driver: expected 400, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, base+"/accept?driver_id=drv-suresh", nil); w.Code != http.StatusForbidden {
		t.Fatalf("accept by other driver: expected 403, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, base+"/accept?driver_id=drv-ravi", nil); w.Code != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := doRequest(r, http.MethodPost, base+"/accept?driver_id=drv-ravi", nil); w.Code != http.StatusConflict {
		t.Fatalf("second accept: expected 409, got %d", w.Code)
	}

	wrong := "0000"
	if b.OTP == wrong {
		wrong = "9999"
	}
	if w := doRequest(r, http.MethodPost, base+"/start", map[string]any{"driver_id": "drv-ravi", "otp": wrong}); w.Code != http.StatusConflict {
		t.Fatalf("start with wrong otp: expected 409, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, base+"/start", map[string]any{"driver_id": "drv-ravi", "otp": b.OTP}); w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := doRequest(r, http.MethodPost, base+"/complete", nil); w.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodGet, base, nil)
	decode(t, w, &b)
	if b.Status != booking.StatusCompleted {
		t.Fatalf("status = %s", b.Status)
	}

	w = doRequest(r, http.MethodGet, base+"/events", nil)
	var events struct {
		Events []booking.Event `json:"events"`
	}
	decode(t, w, &events)
	if len(events.Events) != 4 {
		t.Fatalf("got %d events", len(events.Events))
	}

	w = doRequest(r, http.MethodGet, "/api/bookings?status=COMPLETED&phone=9840012345", nil)
	var list struct {
		Bookings []booking.Booking `json:"bookings"`
	}
	decode(t, w, &list)
	if len(list.Bookings) != 1 {
		t.Fatalf("got %d bookings", len(list.Bookings))
	}
}

func TestCreateBooking_NoDriverCarriesRemediation(t *testing.T) {
	r := buildTestRouter(t)

	// The demo roster has one online sedan; the first booking takes it.
	req := map[string]any{
		"customer_name": "A", "customer_phone": "1", "pickup": "Chennai Airport", "drop": "Chennai Central", "vehicle_class": "SEDAN",
	}
	if w := doRequest(r, http.MethodPost, "/api/bookings", req); w.Code != http.StatusCreated {
		t.Fatalf("first booking: %d %s", w.Code, w.Body.String())
	}
	w := doRequest(r, http.MethodPost, "/api/bookings", req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Error       string                `json:"error"`
		Remediation *matching.Remediation `json:"remediation"`
	}
	decode(t, w, &body)
	if body.Remediation == nil || len(body.Remediation.Actions) != 2 {
		t.Fatalf("missing remediation: %s", w.Body.String())
	}
	if len(body.Remediation.AvailableClasses) == 0 {
		t.Fatal("expected available classes")
	}
}

func TestCancelAndNotFound(t *testing.T) {
	r := buildTestRouter(t)
	w := doRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"customer_name": "A", "customer_phone": "1", "pickup": "Chennai Central", "drop": "Kanchipuram", "vehicle_class": "SUV",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var b booking.Booking
	decode(t, w, &b)
	if b.PackageName != "Kanchipuram Temple Tour" {
		t.Fatalf("package = %q", b.PackageName)
	}

	if w := doRequest(r, http.MethodPost, "/api/bookings/"+string(b.ID)+"/cancel", map[string]any{"actor_type": "robot"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad actor: expected 400, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/api/bookings/"+string(b.ID)+"/cancel", map[string]any{"actor_type": "admin", "reason": "duplicate"}); w.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := doRequest(r, http.MethodPost, "/api/bookings/"+string(b.ID)+"/cancel", nil); w.Code != http.StatusConflict {
		t.Fatalf("second cancel: expected 409, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/api/bookings/BK-missing", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDrivers(t *testing.T) {
	r := buildTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/drivers", map[string]any{"name": "Priya", "vehicle_class": "hatchback", "online": true})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var d fleet.Driver
	decode(t, w, &d)

	if w := doRequest(r, http.MethodPost, "/api/drivers", map[string]any{"name": "X", "vehicle_class": "rickshaw"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad class: expected 400, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/drivers/"+string(d.ID)+"/toggle", nil)
	decode(t, w, &d)
	if w.Code != http.StatusOK || d.Online {
		t.Fatalf("toggle: %d online=%v", w.Code, d.Online)
	}
	w = doRequest(r, http.MethodPost, "/api/drivers/"+string(d.ID)+"/online", map[string]any{"online": true})
	decode(t, w, &d)
	if w.Code != http.StatusOK || !d.Online {
		t.Fatalf("set online: %d online=%v", w.Code, d.Online)
	}
	if w := doRequest(r, http.MethodPost, "/api/drivers/"+string(d.ID)+"/online", map[string]any{}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing online: expected 400, got %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/api/drivers/nobody/toggle", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/drivers", nil)
	var list struct {
		Drivers []fleet.Driver `json:"drivers"`
	}
	decode(t, w, &list)
	if len(list.Drivers) != len(fleet.DemoRoster())+1 {
		t.Fatalf("got %d drivers", len(list.Drivers))
	}
}
