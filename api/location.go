package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fleetworks/carrental-backend/car"
	"github.com/fleetworks/carrental-backend/internal/middleware"
	"github.com/fleetworks/carrental-backend/location"
)

type locationResponse struct {
	LocationID    int64     `json:"locationID"`
	LocationName  string    `json:"locationName"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contactNumber"`
	Coordinates   []float64 `json:"coordinates,omitempty"`
}

func toLocationResponse(l location.Location) locationResponse {
	resp := locationResponse{
		LocationID:    l.ID,
		LocationName:  l.Name,
		Address:       l.Address,
		ContactNumber: l.ContactNumber,
	}
	if l.Coordinates.Valid {
		resp.Coordinates = []float64{l.Coordinates.P.X, l.Coordinates.P.Y}
	}
	return resp
}

type createLocationRequest struct {
	LocationName  string    `json:"locationName" binding:"required"`
	Address       string    `json:"address" binding:"required"`
	ContactNumber string    `json:"contactNumber"`
	Coordinates   []float64 `json:"coordinates"`
}

func (a *API) createLocationHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	l := &location.Location{
		Name:          req.LocationName,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
	}
	if len(req.Coordinates) == 2 {
		l.Coordinates = pgtype.Point{
			P:     pgtype.Vec2{X: req.Coordinates[0], Y: req.Coordinates[1]},
			Valid: true,
		}
	}

	if err := a.repos.Locations.Create(c, l); err != nil {
		logger.ErrorContext(c, "failed to create location", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Location created successfully",
		"data":    toLocationResponse(*l),
	})
}

func (a *API) getLocationsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	locations, err := a.repos.Locations.GetAll(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get locations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]locationResponse, 0, len(locations))
	for _, l := range locations {
		responses = append(responses, toLocationResponse(l))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) getLocationHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("locationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid locationId"})
		return
	}

	l, err := a.repos.Locations.GetByID(c, id)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Location not found"})
			return
		}
		logger.ErrorContext(c, "failed to get location", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toLocationResponse(l))
}

func (a *API) getCarsAtLocationHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	name := c.Param("name")

	l, err := a.repos.Locations.GetByName(c, name)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Location not found"})
			return
		}
		logger.ErrorContext(c, "failed to get location by name", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	cars, err := a.repos.Cars.GetByLocation(c, l.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to get cars by location", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if len(cars) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("No cars were found at %s", name)})
		return
	}

	responses := make([]carResponse, 0, len(cars))
	for _, cc := range cars {
		responses = append(responses, toCarResponse(car.CarWithLocation{
			Car:          cc,
			LocationName: sql.NullString{String: l.Name, Valid: true},
		}))
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Cars at %s", name),
		"data":    responses,
	})
}

func (a *API) deleteLocationHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := strconv.ParseInt(c.Param("locationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid locationId"})
		return
	}

	if err := a.repos.Locations.Delete(c, id); err != nil {
		if errors.Is(err, location.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Location not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete location", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}
