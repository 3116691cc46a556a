package buffer

// DefaultPath is the path given to buffers created without WithPath.
const DefaultPath = "untitled.txt"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithPath sets the buffer's path. The path is an opaque identifier and is
// never interpreted by the buffer.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}
