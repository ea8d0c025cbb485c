package serializer

import (
	"go.uber.org/zap"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/encode"
)

// MaxDepth is how deeply values may nest. Binary input is untrusted, and a recursive schema
// would otherwise let it run the stack out.
const MaxDepth = 32

// NewContext returns a Context for one call. config may be nil.
func NewContext(config *Config) *Context {
	config = config.copyAndFill()
	return &Context{
		Registry:         encode.NewRegistry(config.CustomTypes...),
		NativeTypes:      config.NativeTypes,
		StrictExtensions: config.StrictExtensions,
		AllowInvalidUTF8: config.AllowInvalidUTF8,
		Logger:           config.Logger,
	}
}

// Context is the state of one encode or decode call.
// It is not safe for concurrent use; make one per call.
type Context struct {
	Registry         *encode.Registry
	NativeTypes      NativeTypes
	StrictExtensions bool
	AllowInvalidUTF8 bool
	Logger           *zap.Logger

	path  []PathFrame
	depth int
}

// Frames returns a copy of the current coding path.
func (c *Context) Frames() []PathFrame {
	frames := make([]PathFrame, len(c.path))
	copy(frames, c.path)
	return frames
}

// Path returns the current coding path as a string.
func (c *Context) Path() string { return FormatPath(c.path) }

// enter adds a level of nesting, and a path frame if frame isn't nil.
// It's not undone when coding fails, so the error can report where it happened.
func (c *Context) enter(frame *PathFrame) error {
	if c.depth >= MaxDepth {
		return errors.Wrapf(ErrMaxDepthExceeded, "more than %v levels", MaxDepth)
	}
	c.depth++
	if frame != nil {
		c.path = append(c.path, *frame)
	}
	return nil
}

func (c *Context) leave(frame bool) {
	c.depth--
	if frame {
		c.path = c.path[:len(c.path)-1]
	}
}

func (c *Context) enterField(name string, t *abi.ResolvedType) error {
	return c.enter(&PathFrame{Field: name, Type: t})
}

func (c *Context) enterIndex(i int, t *abi.ResolvedType) error {
	return c.enter(&PathFrame{Index: i, Type: t})
}

// codec returns the codec handling t, if any. Codecs take precedence over ABI declarations of the same name.
func (c *Context) codec(t *abi.ResolvedType) (encode.Codec, bool) {
	return c.Registry.Get(t.Name)
}
