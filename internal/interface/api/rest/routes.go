package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteConnect    = RouteApiV1 + "/connect"
	RouteDisconnect = RouteApiV1 + "/disconnect"

	// files
	RouteFiles         = RouteApiV1 + "/files"
	RouteFile          = RouteFiles + "/:file_id"
	RouteFileData      = RouteFile + "/data"
	RouteFilePublish   = RouteFile + "/publish"
	RouteFileUnpublish = RouteFile + "/unpublish"

	// ops
	RouteStatus  = RouteApiV1 + "/status"
	RouteStats   = RouteApiV1 + "/stats"
	RouteMetrics = RouteApiV1 + "/metrics"
)

// HeaderToken carries the session token on every call after connect.
const HeaderToken = "X-Token"
