package opengraph

// Logger is the subset of github.com/labstack/gommon/log.Logger the
// annotator writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Option configures additional Annotator behavior.
type Option func(*Annotator)

// WithLogger replaces the default "opengraph" logger.
func WithLogger(l Logger) Option {
	return func(a *Annotator) {
		if l != nil {
			a.logger = l
		}
	}
}
