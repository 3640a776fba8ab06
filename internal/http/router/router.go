// Package router builds the HTTP route table.
//
// Route table:
//
//	GET    /                               → welcome message
//	POST   /api/v1/user/register           → submit a registration profile
//	POST   /api/v1/user/resume-details     → submit resume details
//	GET    /api/v1/user/resume-details     → resume details by ?email=
//	GET    /api/v1/courses                 → course → branches table
//	GET    /metrics                        → Prometheus metrics
//	*      anything else                   → 404 JSON
package router

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aanand-mishra/student-profiles-api/internal/http/handlers/profile"
	"github.com/aanand-mishra/student-profiles-api/internal/http/middleware"
	svc "github.com/aanand-mishra/student-profiles-api/internal/profile"
	"github.com/aanand-mishra/student-profiles-api/internal/utils/response"
)

// New returns the fully wrapped handler for the server.
func New(service *svc.Service, log *slog.Logger, allowedOrigin string) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.Message{Message: "Welcome to Home Page"})
	})

	router.HandleFunc("POST /api/v1/user/register", profile.Register(service))
	router.HandleFunc("POST /api/v1/user/resume-details", profile.SubmitResumeDetails(service))
	router.HandleFunc("GET /api/v1/user/resume-details", profile.GetResumeDetails(service))
	router.HandleFunc("GET /api/v1/courses", profile.Courses(service.Validator().Ref()))
	router.Handle("GET /metrics", promhttp.Handler())

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusNotFound, response.Message{Message: "Invalid Route | Page Not Found"})
	})

	return middleware.Chain(router,
		middleware.Recovery(log),
		middleware.Logging(log),
		middleware.CORS(allowedOrigin),
	)
}
