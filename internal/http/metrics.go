package http

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "frontend_session_checks_total",
		Help: "Session re-derivations against the backend, by outcome.",
	}, []string{"result"})

	credentialSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "frontend_credential_submissions_total",
		Help: "Login and registration submissions, by outcome.",
	}, []string{"kind", "result"})
)

func init() {
	prometheus.MustRegister(sessionChecks, credentialSubmissions)
}
