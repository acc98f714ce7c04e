package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fleetworks/carrental-backend/car"
	"github.com/fleetworks/carrental-backend/customer"
	"github.com/fleetworks/carrental-backend/internal/middleware"
	"github.com/fleetworks/carrental-backend/rental"
	"github.com/fleetworks/carrental-backend/reservation"
)

type reservationResponse struct {
	ReservationID   int64   `json:"reservationID"`
	CustomerID      int64   `json:"customerID"`
	CustomerName    string  `json:"customerName"`
	CarID           int64   `json:"carID"`
	CarModel        string  `json:"carModel"`
	RentalRate      string  `json:"rentalRate"`
	ReservationDate string  `json:"reservationDate"`
	PickupDate      string  `json:"pickupDate"`
	ReturnDate      *string `json:"returnDate"`
}

func toReservationResponse(d reservation.Detail) reservationResponse {
	resp := reservationResponse{
		ReservationID:   d.ID,
		CustomerID:      d.CustomerID,
		CustomerName:    d.FirstName + " " + d.LastName,
		CarID:           d.CarID,
		CarModel:        d.CarModel,
		RentalRate:      d.CarRentalRate,
		ReservationDate: d.ReservationDate.Format(rental.DateFormat),
		PickupDate:      d.PickupDate.Format(rental.DateFormat),
	}
	if d.ReturnDate.Valid {
		rd := d.ReturnDate.Time.Format(rental.DateFormat)
		resp.ReturnDate = &rd
	}
	return resp
}

func toReservationResponses(details []reservation.Detail) []reservationResponse {
	responses := make([]reservationResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, toReservationResponse(d))
	}
	return responses
}

type createReservationRequest struct {
	CustomerID      int64  `json:"customerID" binding:"required"`
	CarID           int64  `json:"carID" binding:"required"`
	ReservationDate string `json:"reservationDate"`
	PickupDate      string `json:"pickupDate" binding:"required"`
	ReturnDate      string `json:"returnDate"`
}

func (a *API) createReservationHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	pickupDate, err := rental.ParseDate(req.PickupDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid pickupDate: expected YYYY-MM-DD"})
		return
	}

	reservationDate := rental.Today()
	if req.ReservationDate != "" {
		reservationDate, err = rental.ParseDate(req.ReservationDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid reservationDate: expected YYYY-MM-DD"})
			return
		}
	}

	var returnDate sql.NullTime
	if req.ReturnDate != "" {
		rd, err := rental.ParseDate(req.ReturnDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid returnDate: expected YYYY-MM-DD"})
			return
		}
		returnDate = sql.NullTime{Time: rd, Valid: true}
	}

	if _, err := a.repos.Cars.GetByID(c, req.CarID); err != nil {
		if errors.Is(err, car.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
			return
		}
		logger.ErrorContext(c, "failed to get car", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if _, err := a.repos.Customers.GetByID(c, req.CustomerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
			return
		}
		logger.ErrorContext(c, "failed to get customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	res := &reservation.Reservation{
		CustomerID:      req.CustomerID,
		CarID:           req.CarID,
		ReservationDate: reservationDate,
		PickupDate:      pickupDate,
		ReturnDate:      returnDate,
	}

	if err := a.repos.Reservations.Create(c, res); err != nil {
		if errors.Is(err, reservation.ErrInvalidPeriod) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date range: Return date must not be before pickup date"})
			return
		}
		if errors.Is(err, reservation.ErrOverlap) {
			c.JSON(http.StatusConflict, gin.H{"message": "Car is already reserved for the requested dates"})
			return
		}
		logger.ErrorContext(c, "failed to create reservation", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	payload := gin.H{
		"reservationID":   res.ID,
		"customerID":      res.CustomerID,
		"carID":           res.CarID,
		"reservationDate": res.ReservationDate.Format(rental.DateFormat),
		"pickupDate":      res.PickupDate.Format(rental.DateFormat),
		"returnDate":      nil,
	}
	if res.ReturnDate.Valid {
		payload["returnDate"] = res.ReturnDate.Time.Format(rental.DateFormat)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reservation created successfully.",
		"payload": payload,
	})
}

func (a *API) getReservationsByCustomerHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customerId"})
		return
	}

	reservations, err := a.repos.Reservations.GetByCustomer(c, customerID)
	if err != nil {
		logger.ErrorContext(c, "failed to get reservations by customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(reservations) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("No reservations were found for customer id %d", customerID)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reservations for customer",
		"data":    toReservationResponses(reservations),
	})
}

func (a *API) getReservationsByCarHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	carID, err := strconv.ParseInt(c.Param("carId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid carId"})
		return
	}

	reservations, err := a.repos.Reservations.GetByCar(c, carID)
	if err != nil {
		logger.ErrorContext(c, "failed to get reservations by car", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(reservations) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("No reservations were found for car id %d", carID)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reservations for car",
		"data":    toReservationResponses(reservations),
	})
}

func (a *API) getReturnedCarsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	reservations, err := a.repos.Reservations.Returned(c, rental.Today())
	if err != nil {
		logger.ErrorContext(c, "failed to get returned cars", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(reservations) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No returned cars were found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Returned cars",
		"data":    toReservationResponses(reservations),
	})
}

func (a *API) getCurrentlyReservedCarsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	reservations, err := a.repos.Reservations.Current(c, rental.Today())
	if err != nil {
		logger.ErrorContext(c, "failed to get currently reserved cars", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(reservations) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No cars are currently reserved"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Currently reserved cars",
		"data":    toReservationResponses(reservations),
	})
}

func (a *API) getCurrentReservationsByCustomerHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customerId"})
		return
	}

	reservations, err := a.repos.Reservations.CurrentByCustomer(c, customerID)
	if err != nil {
		logger.ErrorContext(c, "failed to get current reservations by customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(reservations) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Customer %d has no cars currently reserved", customerID)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Currently reserved cars by customer",
		"data":    toReservationResponses(reservations),
	})
}

// getCurrentReservationsByCustomerNameHandler resolves a customer by first
// name before running the per-customer view. Names are not unique; the
// ID-based route is the primary key for this view.
func (a *API) getCurrentReservationsByCustomerNameHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	name := c.Param("name")

	cust, err := a.repos.Customers.GetByFirstName(c, name)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
			return
		}
		logger.ErrorContext(c, "failed to look up customer by name", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	reservations, err := a.repos.Reservations.CurrentByCustomer(c, cust.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to get current reservations by customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(reservations) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s has no cars currently reserved", name)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Currently reserved cars by customer",
		"data":    toReservationResponses(reservations),
	})
}
