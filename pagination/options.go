package pagination

const defaultLimit = 10

// Options configures pagination behavior.
type Options struct {
	DefaultLimit int
	// MaxLimit caps the page size. Zero means unbounded.
	MaxLimit int
}

type Option func(*Options)

func WithMaxLimit(maxLimit int) Option {
	return func(o *Options) {
		o.MaxLimit = maxLimit
	}
}

func WithDefaultLimit(limit int) Option {
	return func(o *Options) {
		o.DefaultLimit = limit
	}
}

func defaultOptions() Options {
	return Options{DefaultLimit: defaultLimit}
}
