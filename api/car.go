package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fleetworks/carrental-backend/car"
	"github.com/fleetworks/carrental-backend/internal/middleware"
)

type carResponse struct {
	CarID        int64  `json:"carID"`
	CarModel     string `json:"carModel"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	RentalRate   string `json:"rentalRate"`
	Availability bool   `json:"availability"`
	LocationID   *int64 `json:"locationID,omitempty"`
	LocationName string `json:"locationName,omitempty"`
}

func toCarResponse(c car.CarWithLocation) carResponse {
	resp := carResponse{
		CarID:        c.ID,
		CarModel:     c.Model,
		Year:         c.Year,
		Color:        c.Color,
		RentalRate:   c.RentalRate,
		Availability: c.Available,
	}
	if c.LocationID.Valid {
		resp.LocationID = &c.LocationID.Int64
	}
	if c.LocationName.Valid {
		resp.LocationName = c.LocationName.String
	}
	return resp
}

type createCarRequest struct {
	CarModel   string `json:"carModel" binding:"required"`
	Year       int    `json:"year" binding:"required"`
	Color      string `json:"color"`
	RentalRate string `json:"rentalRate" binding:"required"`
	Available  bool   `json:"availability"`
	LocationID *int64 `json:"locationID"`
}

func (a *API) createCarHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	newCar := &car.Car{
		Model:      req.CarModel,
		Year:       req.Year,
		Color:      req.Color,
		RentalRate: req.RentalRate,
		Available:  req.Available,
	}
	if req.LocationID != nil {
		newCar.LocationID.Int64 = *req.LocationID
		newCar.LocationID.Valid = true
	}

	if err := a.repos.Cars.Create(c, newCar); err != nil {
		logger.ErrorContext(c, "failed to create car", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Car created successfully", "data": newCar.ID})
}

func (a *API) getCarsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	cars, err := a.repos.Cars.GetAll(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get cars", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]carResponse, 0, len(cars))
	for _, cc := range cars {
		responses = append(responses, toCarResponse(cc))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) getCarHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("carId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid carId"})
		return
	}

	cc, err := a.repos.Cars.GetByID(c, id)
	if err != nil {
		if errors.Is(err, car.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
			return
		}
		logger.ErrorContext(c, "failed to get car", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toCarResponse(cc))
}

func (a *API) getCarsByModelHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	cars, err := a.repos.Cars.GetByModel(c, c.Param("model"))
	if err != nil {
		logger.ErrorContext(c, "failed to get cars by model", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]carResponse, 0, len(cars))
	for _, cc := range cars {
		responses = append(responses, toCarResponse(cc))
	}
	c.JSON(http.StatusOK, responses)
}

type setAvailabilityRequest struct {
	Availability *bool `json:"availability" binding:"required"`
}

func (a *API) setCarAvailabilityHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("carId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid carId"})
		return
	}

	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := a.repos.Cars.SetAvailable(c, id, *req.Availability); err != nil {
		if errors.Is(err, car.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
			return
		}
		logger.ErrorContext(c, "failed to update car availability", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car availability updated"})
}

func (a *API) deleteCarHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("carId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid carId"})
		return
	}

	if err := a.repos.Cars.Delete(c, id); err != nil {
		if errors.Is(err, car.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Car not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete car", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car deleted"})
}
