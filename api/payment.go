package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"

	"github.com/fleetworks/carrental-backend/booking"
	"github.com/fleetworks/carrental-backend/internal/middleware"
	"github.com/fleetworks/carrental-backend/payment"
	"github.com/fleetworks/carrental-backend/rental"
)

type paymentResponse struct {
	PaymentID      int64  `json:"paymentID"`
	BookingID      int64  `json:"bookingID"`
	Amount         string `json:"amount"`
	PaymentMethod  string `json:"paymentMethod"`
	PaymentStatus  string `json:"paymentStatus"`
	TransactionRef string `json:"transactionRef"`
	PaymentDate    string `json:"paymentDate,omitempty"`
}

func toPaymentResponse(p payment.Payment) paymentResponse {
	resp := paymentResponse{
		PaymentID:      p.ID,
		BookingID:      p.BookingID,
		Amount:         p.Amount,
		PaymentMethod:  p.Method,
		PaymentStatus:  p.Status,
		TransactionRef: p.TransactionRef.String(),
	}
	if p.PaymentDate.Valid {
		resp.PaymentDate = p.PaymentDate.Time.Format(rental.DateFormat)
	}
	return resp
}

type createPaymentRequest struct {
	BookingID     int64  `json:"bookingID" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentDate   string `json:"paymentDate"`
}

func (a *API) createPaymentHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := a.repos.Bookings.GetByID(c, req.BookingID); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Booking with ID %d not found.", req.BookingID)})
			return
		}
		logger.ErrorContext(c, "failed to get booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	p := &payment.Payment{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Method:    req.PaymentMethod,
		Status:    req.PaymentStatus,
	}
	if p.Status == "" {
		p.Status = "pending"
	}
	if req.PaymentDate != "" {
		date, err := rental.ParseDate(req.PaymentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid paymentDate: expected YYYY-MM-DD"})
			return
		}
		p.PaymentDate.Time = date
		p.PaymentDate.Valid = true
	}

	if err := a.repos.Payments.Create(c, p); err != nil {
		logger.ErrorContext(c, "failed to create payment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded successfully",
		"data":    toPaymentResponse(*p),
	})
}

func (a *API) getPaymentsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	payments, err := a.repos.Payments.GetAll(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get payments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) getPaymentHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("paymentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid paymentId"})
		return
	}

	p, err := a.repos.Payments.GetByID(c, id)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
			return
		}
		logger.ErrorContext(c, "failed to get payment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toPaymentResponse(p))
}

func (a *API) getPaymentsByBookingHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bookingId"})
		return
	}

	payments, err := a.repos.Payments.GetByBooking(c, bookingID)
	if err != nil {
		logger.ErrorContext(c, "failed to get payments by booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(payments) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("No payments were found for booking id %d", bookingID)})
		return
	}

	responses := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Payments for booking ID: %d", bookingID),
		"data":    responses,
	})
}

type createPaymentIntentRequest struct {
	BookingID int64 `json:"bookingID" binding:"required"`
}

// createPaymentIntentHandler opens a Stripe payment intent for a booking's
// total amount. The client confirms the intent with the returned secret.
func (a *API) createPaymentIntentHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createPaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	b, err := a.repos.Bookings.GetByID(c, req.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Booking with ID %d not found.", req.BookingID)})
			return
		}
		logger.ErrorContext(c, "failed to get booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	amount, err := strconv.ParseFloat(b.TotalAmount, 64)
	if err != nil {
		logger.ErrorContext(c, "booking has an unparseable total amount", "bookingId", b.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(b.ID, 10),
		},
	}

	pi, err := paymentintent.New(piParams)
	if err != nil {
		logger.ErrorContext(c, "failed to create payment intent", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Payment intent created",
		"clientSecret": pi.ClientSecret,
	})
}

type setPaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (a *API) setPaymentStatusHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("paymentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid paymentId"})
		return
	}

	var req setPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := a.repos.Payments.SetStatus(c, id, req.Status); err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
			return
		}
		logger.ErrorContext(c, "failed to update payment status", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
}

func (a *API) deletePaymentHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("paymentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid paymentId"})
		return
	}

	if err := a.repos.Payments.Delete(c, id); err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete payment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}
