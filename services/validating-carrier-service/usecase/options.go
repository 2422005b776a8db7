package usecase

// Options are the immutable settings of the resolver, fixed at construction
type Options struct {
	// MultiPlan resolves every plan of the country when no plan is requested;
	// otherwise only the first hierarchy plan other than GTC and IPC
	MultiPlan bool
	// AlphabeticalAlternates lists alternates alphabetically instead of in itinerary order
	AlphabeticalAlternates bool
	GsaEnabled             bool
	NeutralEnabled         bool
	CheckNation            bool
	TrailerWidth           int
	MaxBatchSize           int
	// TraceToLog writes trace events at debug level
	TraceToLog bool
	// TraceToKafka publishes trace events through the event publisher
	TraceToKafka    bool
	PublishOutcomes bool
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		MultiPlan:      true,
		GsaEnabled:     true,
		NeutralEnabled: true,
		CheckNation:    true,
		TrailerWidth:   60,
		MaxBatchSize:   50,
	}
}
