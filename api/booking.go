package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetworks/carrental-backend/booking"
	"github.com/fleetworks/carrental-backend/car"
	"github.com/fleetworks/carrental-backend/customer"
	"github.com/fleetworks/carrental-backend/internal/middleware"
	"github.com/fleetworks/carrental-backend/rental"
)

type bookingResponse struct {
	BookingID       int64     `json:"bookingID"`
	CarID           int64     `json:"carID"`
	CarModel        string    `json:"carModel"`
	CustomerID      int64     `json:"customerID"`
	CustomerName    string    `json:"customerName"`
	RentalStartDate string    `json:"rentalStartDate"`
	RentalEndDate   string    `json:"rentalEndDate"`
	TotalAmount     string    `json:"totalAmount"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toBookingResponse(d booking.Detail) bookingResponse {
	return bookingResponse{
		BookingID:       d.ID,
		CarID:           d.CarID,
		CarModel:        d.CarModel,
		CustomerID:      d.CustomerID,
		CustomerName:    d.FirstName + " " + d.LastName,
		RentalStartDate: d.RentalStart.Format(rental.DateFormat),
		RentalEndDate:   d.RentalEnd.Format(rental.DateFormat),
		TotalAmount:     d.TotalAmount,
		CreatedAt:       d.CreatedAt,
	}
}

func toBookingResponses(details []booking.Detail) []bookingResponse {
	responses := make([]bookingResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, toBookingResponse(d))
	}
	return responses
}

type createBookingRequest struct {
	CarID           int64  `json:"carID" binding:"required"`
	CustomerID      int64  `json:"customerID" binding:"required"`
	RentalStartDate string `json:"rentalStartDate" binding:"required"`
	RentalEndDate   string `json:"rentalEndDate" binding:"required"`
	TotalAmount     string `json:"totalAmount" binding:"required"`
}

func (a *API) createBookingHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	startDate, err := rental.ParseDate(req.RentalStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid rentalStartDate: expected YYYY-MM-DD"})
		return
	}
	endDate, err := rental.ParseDate(req.RentalEndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid rentalEndDate: expected YYYY-MM-DD"})
		return
	}

	if !rental.ValidRange(startDate, endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date range: End date must be after start date"})
		return
	}

	// Referential checks before the insert so the caller can tell a missing
	// row from a storage failure.
	if _, err := a.repos.Cars.GetByID(c, req.CarID); err != nil {
		if errors.Is(err, car.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
			return
		}
		logger.ErrorContext(c, "failed to get car", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	cust, err := a.repos.Customers.GetByID(c, req.CustomerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
			return
		}
		logger.ErrorContext(c, "failed to get customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	b := &booking.Booking{
		CarID:       req.CarID,
		CustomerID:  req.CustomerID,
		RentalStart: startDate,
		RentalEnd:   endDate,
		TotalAmount: req.TotalAmount,
	}

	if err := a.repos.Bookings.Create(c, b); err != nil {
		if errors.Is(err, booking.ErrOverlap) {
			c.JSON(http.StatusConflict, gin.H{"message": "Car is already booked for the requested dates"})
			return
		}
		logger.ErrorContext(c, "failed to create booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	detail, err := a.repos.Bookings.GetByID(c, b.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to load created booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if cust.Email.Valid {
		go func(email string, d booking.Detail) {
			if err := a.mailer.SendBookingConfirmation(email, d); err != nil {
				logger.Error("failed to send booking confirmation", "bookingId", d.ID, "error", err)
			}
		}(cust.Email.String, detail)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"data":    toBookingResponse(detail),
	})
}

func (a *API) getBookingHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bookingId"})
		return
	}

	d, err := a.repos.Bookings.GetByID(c, id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Booking with ID %d not found.", id)})
			return
		}
		logger.ErrorContext(c, "failed to get booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Booking details for ID: %d", id),
		"data":    toBookingResponse(d),
	})
}

func (a *API) getBookingsByCarHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	carID, err := strconv.ParseInt(c.Param("carId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid carId"})
		return
	}

	bookings, err := a.repos.Bookings.GetByCar(c, carID)
	if err != nil {
		logger.ErrorContext(c, "failed to get bookings by car", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(bookings) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("There were no bookings for car id: %d", carID)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Bookings for car ID: %d", carID),
		"data":    toBookingResponses(bookings),
	})
}

func (a *API) getBookingsByCustomerHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customerId"})
		return
	}

	bookings, err := a.repos.Bookings.GetByCustomer(c, customerID)
	if err != nil {
		logger.ErrorContext(c, "failed to get bookings by customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(bookings) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("No bookings were found for customer id %d", customerID)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Bookings for customer ID: %d", customerID),
		"data":    toBookingResponses(bookings),
	})
}

func (a *API) getAllBookingsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	bookings, err := a.repos.Bookings.GetAll(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get bookings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(bookings) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No bookings were found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All bookings",
		"data":    toBookingResponses(bookings),
	})
}
