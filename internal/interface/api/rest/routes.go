package rest

const (
	// api
	RouteApi = "/api"

	RouteUsers = RouteApi + "/users"
	RouteUser  = RouteUsers + "/:user_id"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
