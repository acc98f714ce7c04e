package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fleetworks/carrental-backend/customer"
	"github.com/fleetworks/carrental-backend/internal/middleware"
)

type customerResponse struct {
	CustomerID int64  `json:"customerID"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email,omitempty"`
}

func toCustomerResponse(d customer.Detail) customerResponse {
	resp := customerResponse{
		CustomerID: d.ID,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
	}
	if d.Email.Valid {
		resp.Email = d.Email.String
	}
	return resp
}

type createCustomerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email"`
}

func (a *API) createCustomerHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	d, err := a.repos.Customers.Create(c, req.FirstName, req.LastName, req.Email)
	if err != nil {
		logger.ErrorContext(c, "failed to create customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Customer created successfully",
		"data":    toCustomerResponse(d),
	})
}

func (a *API) getCustomersHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	customers, err := a.repos.Customers.GetAll(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get customers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]customerResponse, 0, len(customers))
	for _, d := range customers {
		responses = append(responses, toCustomerResponse(d))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) getCustomerHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customerId"})
		return
	}

	d, err := a.repos.Customers.GetByID(c, id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
			return
		}
		logger.ErrorContext(c, "failed to get customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toCustomerResponse(d))
}

func (a *API) deleteCustomerHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customerId"})
		return
	}

	if err := a.repos.Customers.Delete(c, id); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete customer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

// meHandler resolves the caller's customer record from their Auth0 access
// token. The token has already passed signature validation in the protected
// group; here it is exchanged for the userinfo profile.
func (a *API) meHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	accessToken := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing access token"})
		return
	}

	info, err := a.auth0.GetUserInfo(c, accessToken)
	if err != nil {
		logger.ErrorContext(c, "failed to fetch user info", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Failed to fetch user info"})
		return
	}

	d, err := a.repos.Customers.GetByEmail(c, info.Email)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No customer record for this account"})
			return
		}
		logger.ErrorContext(c, "failed to get customer by email", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toCustomerResponse(d))
}
