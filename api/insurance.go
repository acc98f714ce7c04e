package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fleetworks/carrental-backend/insurance"
	"github.com/fleetworks/carrental-backend/internal/middleware"
	"github.com/fleetworks/carrental-backend/rental"
)

type policyResponse struct {
	InsuranceID  int64  `json:"insuranceID"`
	CarID        int64  `json:"carID"`
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policyNumber"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

func toPolicyResponse(p insurance.Policy) policyResponse {
	return policyResponse{
		InsuranceID:  p.ID,
		CarID:        p.CarID,
		Provider:     p.Provider,
		PolicyNumber: p.PolicyNumber,
		StartDate:    p.StartDate.Format(rental.DateFormat),
		EndDate:      p.EndDate.Format(rental.DateFormat),
	}
}

type createPolicyRequest struct {
	CarID        int64  `json:"carID" binding:"required"`
	Provider     string `json:"provider" binding:"required"`
	PolicyNumber string `json:"policyNumber" binding:"required"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate" binding:"required"`
}

func (a *API) createPolicyHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	startDate, err := rental.ParseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid startDate: expected YYYY-MM-DD"})
		return
	}
	endDate, err := rental.ParseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid endDate: expected YYYY-MM-DD"})
		return
	}
	if !rental.ValidRange(startDate, endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date range: End date must be after start date"})
		return
	}

	p := &insurance.Policy{
		CarID:        req.CarID,
		Provider:     req.Provider,
		PolicyNumber: req.PolicyNumber,
		StartDate:    startDate,
		EndDate:      endDate,
	}

	if err := a.repos.Insurance.Create(c, p); err != nil {
		logger.ErrorContext(c, "failed to create insurance policy", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Insurance policy created successfully",
		"data":    toPolicyResponse(*p),
	})
}

func (a *API) getPoliciesHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	policies, err := a.repos.Insurance.GetAll(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get insurance policies", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]policyResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, toPolicyResponse(p))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) getPolicyHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("insuranceId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid insuranceId"})
		return
	}

	p, err := a.repos.Insurance.GetByID(c, id)
	if err != nil {
		if errors.Is(err, insurance.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Insurance policy not found"})
			return
		}
		logger.ErrorContext(c, "failed to get insurance policy", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toPolicyResponse(p))
}

func (a *API) getPoliciesByCarHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	carID, err := strconv.ParseInt(c.Param("carId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid carId"})
		return
	}

	policies, err := a.repos.Insurance.GetByCar(c, carID)
	if err != nil {
		logger.ErrorContext(c, "failed to get insurance policies by car", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(policies) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("No insurance policies were found for car id %d", carID)})
		return
	}

	responses := make([]policyResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, toPolicyResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Insurance policies for car ID: %d", carID),
		"data":    responses,
	})
}

func (a *API) deletePolicyHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("insuranceId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid insuranceId"})
		return
	}

	if err := a.repos.Insurance.Delete(c, id); err != nil {
		if errors.Is(err, insurance.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Insurance policy not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete insurance policy", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Insurance policy deleted"})
}
