package snapshot

// Option configures Marshal and Encode.
type Option func(*options)

type options struct {
	compression   Compression
	createdMicros uint64
}

func applyOptions(opts []Option) options {
	o := options{compression: None}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithCompression selects the payload compression. The encoder still falls
// back to None when compression does not pay off.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCreatedAt overrides the creation timestamp (microseconds since the
// Unix epoch). Zero means "now".
func WithCreatedAt(micros uint64) Option {
	return func(o *options) {
		o.createdMicros = micros
	}
}
