package domain

// ServiceState tracks the inference daemon's startup progression. Transient,
// never persisted.
type ServiceState string

const (
	ServiceUnknown      ServiceState = "unknown"
	ServiceProbing      ServiceState = "probing"
	ServiceStarting     ServiceState = "starting"
	ServicePolling      ServiceState = "polling"
	ServiceModelMissing ServiceState = "model_missing"
	ServiceDownloading  ServiceState = "downloading"
	ServiceReady        ServiceState = "ready"
	ServiceFailed       ServiceState = "failed"
)
