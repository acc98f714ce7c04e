package acceptance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/fleetworks/carrental-backend/internal/auth0"
)

// Car endpoints

func TestCreateCar_AndFetchByID(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	locationID := ts.CreateTestLocation(t, "Downtown")

	body := map[string]interface{}{
		"carModel":     "Toyota Corolla",
		"year":         2022,
		"color":        "blue",
		"rentalRate":   "49.99",
		"availability": true,
		"locationID":   locationID,
	}

	w := ts.POST("/car", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created struct {
		Message string `json:"message"`
		Data    int64  `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.Data == 0 {
		t.Fatalf("expected a car ID, got none")
	}

	w = ts.GET(fmt.Sprintf("/car/%d", created.Data), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var got struct {
		CarModel     string `json:"carModel"`
		LocationName string `json:"locationName"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got.CarModel != "Toyota Corolla" {
		t.Errorf("expected carModel Toyota Corolla, got %s", got.CarModel)
	}
	if got.LocationName != "Downtown" {
		t.Errorf("expected locationName Downtown, got %s", got.LocationName)
	}
}

func TestSetCarAvailability(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Toyota Corolla", nil)

	w := ts.PUT(fmt.Sprintf("/car/%d/availability", carID), map[string]interface{}{"availability": false})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var available bool
	if err := ts.DB.Get(&available, "SELECT availability FROM cars WHERE car_id = $1", carID); err != nil {
		t.Fatalf("failed to read car: %v", err)
	}
	if available {
		t.Errorf("expected availability false after update")
	}
}

func TestDeleteCar_NotFound(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.DELETE("/car/999999")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
	}
}

// Location endpoints

func TestGetCarsAtLocation(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	locationID := ts.CreateTestLocation(t, "Airport")
	ts.CreateTestCar(t, "Toyota Corolla", &locationID)
	ts.CreateTestCar(t, "Honda Civic", &locationID)
	ts.CreateTestCar(t, "Mazda 3", nil) // unassigned, excluded

	w := ts.GET("/location/name/Airport/cars", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp struct {
		Data []struct {
			CarModel string `json:"carModel"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 cars at Airport, got %d", len(resp.Data))
	}
}

func TestGetCarsAtLocation_UnknownLocation(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.GET("/location/name/Nowhere/cars", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
	}
}

// Customer endpoints

func TestCreateCustomer_AndFetch(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	body := map[string]interface{}{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
	}

	w := ts.POST("/customer", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created struct {
		Data struct {
			CustomerID int64  `json:"customerID"`
			Email      string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.Data.Email != "ada@example.com" {
		t.Errorf("expected email ada@example.com, got %s", created.Data.Email)
	}

	w = ts.GET(fmt.Sprintf("/customer/%d", created.Data.CustomerID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}

func TestMe_ResolvesCustomerFromToken(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")
	ts.Auth0.AddUser("test-token", &auth0.UserInfo{
		Sub:   "auth0|123",
		Email: "ada@example.com",
	})

	w := ts.GET("/me", map[string]string{"Authorization": "Bearer test-token"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var got struct {
		FirstName string `json:"firstName"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got.FirstName != "Ada" {
		t.Errorf("expected firstName Ada, got %s", got.FirstName)
	}
}

func TestMe_UnknownToken(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.GET("/me", map[string]string{"Authorization": "Bearer bogus"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d: %s", http.StatusUnauthorized, w.Code, w.Body.String())
	}
}

// Maintenance endpoints

func TestMaintenanceLifecycle(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Toyota Corolla", nil)

	body := map[string]interface{}{
		"carID":           carID,
		"description":     "Brake pads",
		"cost":            "180.00",
		"maintenanceDate": day(1),
	}

	w := ts.POST("/maintenance", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created struct {
		Data struct {
			MaintenanceID int64  `json:"maintenanceID"`
			Status        string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.Data.Status != "scheduled" {
		t.Errorf("expected status scheduled, got %s", created.Data.Status)
	}

	w = ts.PUT(fmt.Sprintf("/maintenance/%d/status", created.Data.MaintenanceID),
		map[string]interface{}{"status": "completed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	w = ts.GET(fmt.Sprintf("/maintenance/%d", created.Data.MaintenanceID), nil)
	var got struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got.Status != "completed" {
		t.Errorf("expected status completed, got %s", got.Status)
	}
}

func TestSetMaintenanceStatus_InvalidValue(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.PUT("/maintenance/1/status", map[string]interface{}{"status": "broken"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
	}
}

// Payment endpoints

func TestCreatePayment_ForBooking(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	carID := ts.CreateTestCar(t, "Toyota Corolla", nil)
	customerID := ts.CreateTestCustomer(t, "Ada", "Lovelace", "ada@example.com")
	bookingID := ts.CreateTestBooking(t, carID, customerID, day(1), day(4))

	body := map[string]interface{}{
		"bookingID":     bookingID,
		"amount":        "100.00",
		"paymentMethod": "card",
	}

	w := ts.POST("/payment", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created struct {
		Data struct {
			PaymentStatus  string `json:"paymentStatus"`
			TransactionRef string `json:"transactionRef"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.Data.PaymentStatus != "pending" {
		t.Errorf("expected default status pending, got %s", created.Data.PaymentStatus)
	}
	if created.Data.TransactionRef == "" {
		t.Errorf("expected an auto-assigned transaction ref")
	}
}

func TestCreatePayment_UnknownBooking(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	body := map[string]interface{}{
		"bookingID":     999999,
		"amount":        "100.00",
		"paymentMethod": "card",
	}

	w := ts.POST("/payment", body, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
	}
}
