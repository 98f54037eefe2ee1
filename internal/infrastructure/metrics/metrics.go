package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	UserCreated          = "user_created_total"
	UserUpdated          = "user_updated_total"
	UserDeleted          = "user_deleted_total"
	UserNotFound         = "user_not_found_total"
	UserValidationFailed = "user_validation_failed_total"
	AppRequests          = "app_requests_total"
	EventsDropped        = "events_dropped_total"
)

// NewCounter registers the service counter vec on reg. Pass
// prometheus.DefaultRegisterer to expose it on the default /metrics handler.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "userdirectory",
			Name:      "general_counters",
		},
		[]string{"result"})
}
