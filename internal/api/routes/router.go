package routes

import (
	"net/http"

	"github.com/Rohanmore123/mental-health-backend/internal/api/handlers"
	"github.com/Rohanmore123/mental-health-backend/internal/api/middleware"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recommendationHandler *handlers.RecommendationHandler
	doctorHandler         *handlers.DoctorHandler
	patientHandler        *handlers.PatientHandler
	appointmentHandler    *handlers.AppointmentHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	recommendationHandler *handlers.RecommendationHandler,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	appointmentHandler *handlers.AppointmentHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		recommendationHandler: recommendationHandler,
		doctorHandler:         doctorHandler,
		patientHandler:        patientHandler,
		appointmentHandler:    appointmentHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Recommendation endpoint
	r.mux.HandleFunc("POST /api/recommendations", r.recommendationHandler.Recommend)

	// Doctor directory endpoints
	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.ListDoctors)
	r.mux.HandleFunc("GET /api/doctors/search", r.doctorHandler.SearchDoctors)
	r.mux.HandleFunc("GET /api/doctors/{id}", r.doctorHandler.GetDoctor)
	r.mux.HandleFunc("POST /api/doctors/{id}/ratings", r.doctorHandler.RateDoctor)
	r.mux.HandleFunc("GET /api/doctors/{id}/ratings", r.doctorHandler.ListDoctorRatings)

	// Patient endpoints
	r.mux.HandleFunc("GET /api/patients/{id}", r.patientHandler.GetPatient)
	r.mux.HandleFunc("GET /api/patients/{id}/appointments", r.appointmentHandler.ListPatientAppointments)

	// Appointment endpoints
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.BookAppointment)

	// Apply middleware chain
	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
