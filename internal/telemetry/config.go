package telemetry

// Config holds configuration for the tracer
type Config struct {
	// ServiceName is the name of the service
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines whether tracing is enabled.
	// When false, a noop tracer is used.
	Enabled bool

	// Endpoint is the OTLP/HTTP collector endpoint (host:port).
	// If empty, spans are sampled but not exported.
	Endpoint string

	// SampleRate is the fraction of traces to sample (0.0 to 1.0)
	SampleRate float64
}

// DefaultConfig returns tracing disabled, which is what a CLI wants unless
// the user opts in.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "specflow",
		ServiceVersion: "dev",
		Enabled:        false,
		SampleRate:     1.0,
	}
}
