package translator

// Options configures one translation.
type Options struct {
	// ModuleAsClosure wraps the module body in a function invoked with the
	// caller's context: (function() { ... }).call(this);
	ModuleAsClosure bool

	// AutoCamelcase rewrites every emitted identifier from underscore
	// separated to camel case.
	AutoCamelcase bool

	// Debug traces node entry and exit through the logger. It never changes
	// the output.
	Debug bool
}
