package acceptance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

type reservationData struct {
	ReservationID   int64   `json:"reservationID"`
	CustomerID      int64   `json:"customerID"`
	CustomerName    string  `json:"customerName"`
	CarID           int64   `json:"carID"`
	CarModel        string  `json:"carModel"`
	ReservationDate string  `json:"reservationDate"`
	PickupDate      string  `json:"pickupDate"`
	ReturnDate      *string `json:"returnDate"`
}

type reservationEnvelope struct {
	Message string            `json:"message"`
	Data    []reservationData `json:"data"`
}

// Test POST /reservation

func TestCreateReservation_ReturnsCreatedReservation(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Honda Civic", nil)
	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")

	body := map[string]interface{}{
		"customerID": customerID,
		"carID":      carID,
		"pickupDate": day(2),
		"returnDate": day(6),
	}

	w := ts.POST("/reservation", body, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Payload struct {
			ReservationID int64   `json:"reservationID"`
			PickupDate    string  `json:"pickupDate"`
			ReturnDate    *string `json:"returnDate"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Message != "Reservation created successfully." {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.Payload.ReservationID == 0 {
		t.Errorf("expected a reservation ID")
	}
	if resp.Payload.PickupDate != day(2) {
		t.Errorf("expected pickupDate %s, got %s", day(2), resp.Payload.PickupDate)
	}
	if resp.Payload.ReturnDate == nil || *resp.Payload.ReturnDate != day(6) {
		t.Errorf("expected returnDate %s, got %v", day(6), resp.Payload.ReturnDate)
	}
}

func TestCreateReservation_OpenEnded(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Honda Civic", nil)
	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")

	body := map[string]interface{}{
		"customerID": customerID,
		"carID":      carID,
		"pickupDate": day(2),
	}

	w := ts.POST("/reservation", body, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var resp struct {
		Payload struct {
			ReturnDate *string `json:"returnDate"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Payload.ReturnDate != nil {
		t.Errorf("expected null returnDate, got %v", *resp.Payload.ReturnDate)
	}
}

func TestCreateReservation_ReturnBeforePickupRejected(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Honda Civic", nil)
	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")

	body := map[string]interface{}{
		"customerID": customerID,
		"carID":      carID,
		"pickupDate": day(6),
		"returnDate": day(2),
	}

	w := ts.POST("/reservation", body, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Invalid date range: Return date must not be before pickup date" {
		t.Errorf("unexpected message: %s", resp["message"])
	}
}

func TestCreateReservation_OverlapRejected(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Honda Civic", nil)
	cust1 := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")
	cust2 := ts.CreateTestCustomer(t, "Grace", "Hopper", "grace@example.com")

	ts.CreateTestReservation(t, carID, cust1, day(2), day(8))

	body := map[string]interface{}{
		"customerID": cust2,
		"carID":      carID,
		"pickupDate": day(5),
		"returnDate": day(10),
	}

	w := ts.POST("/reservation", body, nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Car is already reserved for the requested dates" {
		t.Errorf("unexpected message: %s", resp["message"])
	}
}

func TestCreateReservation_OverlapWithBookingRejected(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Honda Civic", nil)
	cust1 := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")
	cust2 := ts.CreateTestCustomer(t, "Grace", "Hopper", "grace@example.com")

	ts.CreateTestBooking(t, carID, cust1, day(2), day(8))

	body := map[string]interface{}{
		"customerID": cust2,
		"carID":      carID,
		"pickupDate": day(5),
		"returnDate": day(10),
	}

	w := ts.POST("/reservation", body, nil)

	if w.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
	}
}

func TestCreateReservation_SameDayTurnoverAllowed(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Honda Civic", nil)
	cust1 := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")
	cust2 := ts.CreateTestCustomer(t, "Grace", "Hopper", "grace@example.com")

	ts.CreateTestReservation(t, carID, cust1, day(2), day(5))

	// Pickup on the previous reservation's return date
	body := map[string]interface{}{
		"customerID": cust2,
		"carID":      carID,
		"pickupDate": day(5),
		"returnDate": day(9),
	}

	w := ts.POST("/reservation", body, nil)

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
}

// Test GET /reservation/returned

func TestGetReturnedCars_ListsPastReservations(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Honda Civic", nil)
	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")

	// Returned last week
	ts.CreateTestReservation(t, carID, customerID, day(-10), day(-7))
	// Still out
	car2 := ts.CreateTestCar(t, "Mazda 3", nil)
	ts.CreateTestReservation(t, car2, customerID, day(-3), "")

	w := ts.GET("/reservation/returned", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp reservationEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 returned reservation, got %d", len(resp.Data))
	}
	if resp.Data[0].CarModel != "Honda Civic" {
		t.Errorf("expected Honda Civic, got %s", resp.Data[0].CarModel)
	}
}

func TestGetReturnedCars_ReturnedTodayNotIncluded(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Honda Civic", nil)
	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")

	// Return date is today: not yet in the past
	ts.CreateTestReservation(t, carID, customerID, day(-3), day(0))

	w := ts.GET("/reservation/returned", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "No returned cars were found" {
		t.Errorf("unexpected message: %s", resp["message"])
	}
}

// Test GET /reservation/current

func TestGetCurrentlyReservedCars_ListsActiveReservations(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")

	// Out right now, open-ended
	car1 := ts.CreateTestCar(t, "Honda Civic", nil)
	ts.CreateTestReservation(t, car1, customerID, day(-2), "")
	// Out right now, returning later
	car2 := ts.CreateTestCar(t, "Mazda 3", nil)
	ts.CreateTestReservation(t, car2, customerID, day(-1), day(3))
	// Future pickup: not current
	car3 := ts.CreateTestCar(t, "Ford Focus", nil)
	ts.CreateTestReservation(t, car3, customerID, day(5), day(9))

	w := ts.GET("/reservation/current", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp reservationEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 current reservations, got %d", len(resp.Data))
	}
}

func TestGetCurrentlyReservedCars_EmptyListMessage(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.GET("/reservation/current", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "No cars are currently reserved" {
		t.Errorf("unexpected message: %s", resp["message"])
	}
}

// Test GET /reservation/customer/:customerId/current

func TestGetCurrentReservationsByCustomer_OnlyOpenEnded(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")

	// Open-ended: counted for the per-customer view
	car1 := ts.CreateTestCar(t, "Honda Civic", nil)
	ts.CreateTestReservation(t, car1, customerID, day(-2), "")
	// Active but with a return date on file: excluded from this narrower view
	car2 := ts.CreateTestCar(t, "Mazda 3", nil)
	ts.CreateTestReservation(t, car2, customerID, day(-1), day(3))

	w := ts.GET(fmt.Sprintf("/reservation/customer/%d/current", customerID), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp reservationEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(resp.Data))
	}
	if resp.Data[0].CarModel != "Honda Civic" {
		t.Errorf("expected Honda Civic, got %s", resp.Data[0].CarModel)
	}
}

func TestGetCurrentReservationsByCustomer_EmptyListMessage(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")

	w := ts.GET(fmt.Sprintf("/reservation/customer/%d/current", customerID), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	expected := fmt.Sprintf("Customer %d has no cars currently reserved", customerID)
	if resp["message"] != expected {
		t.Errorf("expected message %q, got %q", expected, resp["message"])
	}
}

// Test GET /reservation/customer/name/:name/current

func TestGetCurrentReservationsByCustomerName(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")
	carID := ts.CreateTestCar(t, "Honda Civic", nil)
	ts.CreateTestReservation(t, carID, customerID, day(-2), "")

	w := ts.GET("/reservation/customer/name/Ada/current", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp reservationEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(resp.Data))
	}
	if resp.Data[0].CustomerName != "Ada Lovelace" {
		t.Errorf("expected Ada Lovelace, got %s", resp.Data[0].CustomerName)
	}
}

func TestGetCurrentReservationsByCustomerName_NotFound(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.GET("/reservation/customer/name/Nobody/current", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Customer not found" {
		t.Errorf("unexpected message: %s", resp["message"])
	}
}
