package shared

import "time"

// Redis key patterns
const (
	RedisKeySnapshot    = "dashboard:snapshot"
	RedisKeySnapshotSeq = "dashboard:snapshot:seq"
	RedisFieldSeq       = "seq"
	RedisFieldPayload   = "payload"
)

// NATS topics
const (
	NATSTopicSnapshotUpdated = "dashboard.snapshot.updated"
	NATSTopicAllDashboard    = "dashboard.>"
)

// Timeouts and durations
const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultFetchTimeout    = 10 * time.Second
	PublishRetryWait       = 100 * time.Millisecond
	PublishMaxRetries      = 3

	WebSocketWriteTimeout = 10 * time.Second
	WebSocketPongWait     = 60 * time.Second
	WebSocketPingPeriod   = (WebSocketPongWait * 9) / 10
)

// Server configuration
const (
	DefaultSnapshotPort = ":8080"
	DefaultEdgePort     = ":3000"
	DefaultBackendURL   = "http://localhost:8000/api"
	DefaultSnapshotURL  = "http://localhost:8080"
)

// Energy backend endpoints, relative to the backend base URL.
const (
	BackendSeatingArrangement = "/seating/arrangement/"
	BackendSeatingSuggestions = "/seating/suggestions/"
	BackendLaptopUsage        = "/energy/laptop-usage/"
	BackendLighting           = "/energy/lighting/"
	BackendHVAC               = "/energy/hvac/"
)

// API endpoints
const (
	APIEndpointSnapshot    = "/api/snapshot"
	APIEndpointSeating     = "/api/seating"
	APIEndpointSeatingZone = "/api/seating/zones/:zoneID"
	APIEndpointCharts      = "/api/charts"
	APIEndpointChart       = "/api/charts/:name"
	APIEndpointRefresh     = "/api/refresh"
	APIEndpointHealth      = "/health"
	APIEndpointStats       = "/stats"
	WebSocketEndpoint      = "/ws"
)
