package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fleetworks/carrental-backend/internal/middleware"
	"github.com/fleetworks/carrental-backend/maintenance"
	"github.com/fleetworks/carrental-backend/rental"
)

type maintenanceResponse struct {
	MaintenanceID int64              `json:"maintenanceID"`
	CarID         int64              `json:"carID"`
	Description   string             `json:"description"`
	Cost          string             `json:"cost"`
	Date          string             `json:"maintenanceDate"`
	Status        maintenance.Status `json:"status"`
}

func toMaintenanceResponse(m maintenance.Record) maintenanceResponse {
	return maintenanceResponse{
		MaintenanceID: m.ID,
		CarID:         m.CarID,
		Description:   m.Description,
		Cost:          m.Cost,
		Date:          m.Date.Format(rental.DateFormat),
		Status:        m.Status,
	}
}

type createMaintenanceRequest struct {
	CarID           int64  `json:"carID" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Cost            string `json:"cost" binding:"required"`
	MaintenanceDate string `json:"maintenanceDate" binding:"required"`
	Status          string `json:"status"`
}

func (a *API) createMaintenanceRecordHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	date, err := rental.ParseDate(req.MaintenanceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid maintenanceDate: expected YYYY-MM-DD"})
		return
	}

	status := maintenance.Scheduled
	if req.Status != "" {
		var ok bool
		status, ok = maintenance.ParseStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status: expected scheduled, in_progress or completed"})
			return
		}
	}

	m := &maintenance.Record{
		CarID:       req.CarID,
		Description: req.Description,
		Cost:        req.Cost,
		Date:        date,
		Status:      status,
	}

	if err := a.repos.Maintenance.Create(c, m); err != nil {
		logger.ErrorContext(c, "failed to create maintenance record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Maintenance record created successfully",
		"data":    toMaintenanceResponse(*m),
	})
}

func (a *API) getMaintenanceRecordsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	records, err := a.repos.Maintenance.GetAll(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get maintenance records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]maintenanceResponse, 0, len(records))
	for _, m := range records {
		responses = append(responses, toMaintenanceResponse(m))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) getMaintenanceRecordHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("maintenanceId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid maintenanceId"})
		return
	}

	m, err := a.repos.Maintenance.GetByID(c, id)
	if err != nil {
		if errors.Is(err, maintenance.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Maintenance record not found"})
			return
		}
		logger.ErrorContext(c, "failed to get maintenance record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toMaintenanceResponse(m))
}

func (a *API) getMaintenanceByCarHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	carID, err := strconv.ParseInt(c.Param("carId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid carId"})
		return
	}

	records, err := a.repos.Maintenance.GetByCar(c, carID)
	if err != nil {
		logger.ErrorContext(c, "failed to get maintenance records by car", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("No maintenance records were found for car id %d", carID)})
		return
	}

	responses := make([]maintenanceResponse, 0, len(records))
	for _, m := range records {
		responses = append(responses, toMaintenanceResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Maintenance records for car ID: %d", carID),
		"data":    responses,
	})
}

type setMaintenanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (a *API) setMaintenanceStatusHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("maintenanceId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid maintenanceId"})
		return
	}

	var req setMaintenanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	status, ok := maintenance.ParseStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status: expected scheduled, in_progress or completed"})
		return
	}

	if err := a.repos.Maintenance.SetStatus(c, id, status); err != nil {
		if errors.Is(err, maintenance.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Maintenance record not found"})
			return
		}
		logger.ErrorContext(c, "failed to update maintenance status", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Maintenance status updated"})
}

func (a *API) deleteMaintenanceRecordHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("maintenanceId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid maintenanceId"})
		return
	}

	if err := a.repos.Maintenance.Delete(c, id); err != nil {
		if errors.Is(err, maintenance.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Maintenance record not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete maintenance record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Maintenance record deleted"})
}
