package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetworks/carrental-backend/booking"
	"github.com/fleetworks/carrental-backend/car"
	"github.com/fleetworks/carrental-backend/customer"
	"github.com/fleetworks/carrental-backend/insurance"
	"github.com/fleetworks/carrental-backend/internal/auth0"
	"github.com/fleetworks/carrental-backend/internal/mailer"
	"github.com/fleetworks/carrental-backend/internal/middleware"
	"github.com/fleetworks/carrental-backend/internal/o11y"
	"github.com/fleetworks/carrental-backend/location"
	"github.com/fleetworks/carrental-backend/maintenance"
	"github.com/fleetworks/carrental-backend/payment"
	"github.com/fleetworks/carrental-backend/reservation"
)

// Repositories bundles the data access layer handed to the API.
type Repositories struct {
	Cars         *car.Repository
	Customers    *customer.Repository
	Locations    *location.Repository
	Bookings     *booking.Repository
	Reservations *reservation.Repository
	Insurance    *insurance.Repository
	Maintenance  *maintenance.Repository
	Payments     *payment.Repository
}

type API struct {
	r      *gin.Engine
	repos  Repositories
	mailer *mailer.Mailer
	auth0  auth0.Client
}

func New(repos Repositories, obs *o11y.Observability, m *mailer.Mailer, authClient auth0.Client,
	auth0Domain, audience, metricsUsername, metricsPassword string) *API {
	a := &API{
		r:      gin.New(),
		repos:  repos,
		mailer: m,
		auth0:  authClient,
	}

	a.r.Use(gin.Recovery())
	a.r.Use(middleware.Tracing())
	a.r.Use(middleware.Logging(obs.Logger))
	a.r.Use(middleware.Metrics(obs.Registry))

	a.r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if metricsUsername != "" {
		metricsGroup := a.r.Group("/metrics", gin.BasicAuth(gin.Accounts{metricsUsername: metricsPassword}))
		metricsGroup.GET("", gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})))
	} else {
		a.r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})))
	}

	// Reads are public; mutations go through the protected group, which only
	// enforces tokens when an Auth0 tenant is configured.
	protected := a.r.Group("/")
	if auth0Domain != "" {
		protected.Use(middleware.EnsureValidToken(auth0Domain, audience))
	}

	a.r.GET("/booking", a.getAllBookingsHandler)
	a.r.GET("/booking/:bookingId", a.getBookingHandler)
	a.r.GET("/booking/car/:carId", a.getBookingsByCarHandler)
	a.r.GET("/booking/customer/:customerId", a.getBookingsByCustomerHandler)
	protected.POST("/booking", a.createBookingHandler)

	a.r.GET("/reservation/customer/:customerId", a.getReservationsByCustomerHandler)
	a.r.GET("/reservation/customer/:customerId/current", a.getCurrentReservationsByCustomerHandler)
	a.r.GET("/reservation/customer/name/:name/current", a.getCurrentReservationsByCustomerNameHandler)
	a.r.GET("/reservation/car/:carId", a.getReservationsByCarHandler)
	a.r.GET("/reservation/returned", a.getReturnedCarsHandler)
	a.r.GET("/reservation/current", a.getCurrentlyReservedCarsHandler)
	protected.POST("/reservation", a.createReservationHandler)

	a.r.GET("/car", a.getCarsHandler)
	a.r.GET("/car/:carId", a.getCarHandler)
	a.r.GET("/car/model/:model", a.getCarsByModelHandler)
	protected.POST("/car", a.createCarHandler)
	protected.PUT("/car/:carId/availability", a.setCarAvailabilityHandler)
	protected.DELETE("/car/:carId", a.deleteCarHandler)

	a.r.GET("/customer", a.getCustomersHandler)
	a.r.GET("/customer/:customerId", a.getCustomerHandler)
	protected.POST("/customer", a.createCustomerHandler)
	protected.DELETE("/customer/:customerId", a.deleteCustomerHandler)
	protected.GET("/me", a.meHandler)

	a.r.GET("/location", a.getLocationsHandler)
	a.r.GET("/location/:locationId", a.getLocationHandler)
	a.r.GET("/location/name/:name/cars", a.getCarsAtLocationHandler)
	protected.POST("/location", a.createLocationHandler)
	protected.DELETE("/location/:locationId", a.deleteLocationHandler)

	a.r.GET("/insurance", a.getPoliciesHandler)
	a.r.GET("/insurance/:insuranceId", a.getPolicyHandler)
	a.r.GET("/insurance/car/:carId", a.getPoliciesByCarHandler)
	protected.POST("/insurance", a.createPolicyHandler)
	protected.DELETE("/insurance/:insuranceId", a.deletePolicyHandler)

	a.r.GET("/maintenance", a.getMaintenanceRecordsHandler)
	a.r.GET("/maintenance/:maintenanceId", a.getMaintenanceRecordHandler)
	a.r.GET("/maintenance/car/:carId", a.getMaintenanceByCarHandler)
	protected.POST("/maintenance", a.createMaintenanceRecordHandler)
	protected.PUT("/maintenance/:maintenanceId/status", a.setMaintenanceStatusHandler)
	protected.DELETE("/maintenance/:maintenanceId", a.deleteMaintenanceRecordHandler)

	a.r.GET("/payment", a.getPaymentsHandler)
	a.r.GET("/payment/:paymentId", a.getPaymentHandler)
	a.r.GET("/payment/booking/:bookingId", a.getPaymentsByBookingHandler)
	protected.POST("/payment", a.createPaymentHandler)
	protected.POST("/payment/intent", a.createPaymentIntentHandler)
	protected.PUT("/payment/:paymentId/status", a.setPaymentStatusHandler)
	protected.DELETE("/payment/:paymentId", a.deletePaymentHandler)

	return a
}

func (a *API) Router() *gin.Engine {
	return a.r
}
