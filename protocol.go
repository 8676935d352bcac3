package mandel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marben/escape_mandel/render"
)

// Websocket subprotocols. On SubprotocolZstd every message of the irpc
// stream is zstd compressed; on SubprotocolRaw messages travel as written.
const (
	SubprotocolZstd = "mandel.irpc.zstd"
	SubprotocolRaw  = "mandel.irpc"
)

// Message encodings a Service can prefer.
const (
	EncodingRaw  = "raw"
	EncodingZstd = "zstd"
)

// subprotocols lists what a service preferring encoding accepts, best
// first.
func subprotocols(encoding string) ([]string, error) {
	switch encoding {
	case EncodingZstd:
		return []string{SubprotocolZstd, SubprotocolRaw}, nil
	case EncodingRaw:
		return []string{SubprotocolRaw}, nil
	}
	return nil, fmt.Errorf("unknown frame encoding %q", encoding)
}

// MaxFramePixels bounds the frames a client accepts from a server and, by
// default, the frames a server agrees to render.
const MaxFramePixels = render.DefaultMaxPixels

// DefaultIterationLimit is the largest iteration budget a Service or
// ImageHandler accepts unless configured otherwise.
const DefaultIterationLimit = 100_000

// maxMessageSize bounds one websocket message after decompression: a full
// frame of raw pixels plus irpc framing.
const maxMessageSize = MaxFramePixels*4 + 1<<16

// maxRequestSize bounds one message a client sends to a Service.
const maxRequestSize = 1 << 16

// Limits bound the work one request may ask of a server. Zero fields mean
// MaxFramePixels and DefaultIterationLimit.
type Limits struct {
	MaxPixels     int
	MaxIterations int
}

// Check rejects requests that are larger or deeper than l allows, before
// anything is allocated for them.
func (l Limits) Check(req render.Request) error {
	maxPixels := l.MaxPixels
	if maxPixels <= 0 {
		maxPixels = MaxFramePixels
	}
	if err := render.NewConfig(render.WithMaxPixels(maxPixels)).CheckSize(req.Width, req.Height); err != nil {
		return err
	}

	maxIter := l.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultIterationLimit
	}
	if req.Options.MaxIterations > maxIter {
		return fmt.Errorf("%w: %d (at most %d)", render.ErrInvalidIterations, req.Options.MaxIterations, maxIter)
	}
	return nil
}

// Error codes carried by RemoteError.
const (
	CodeInvalidDimensions = "invalid_dimensions"
	CodeInvalidScale      = "invalid_scale"
	CodeInvalidIterations = "invalid_iterations"
	CodeInvalidBailout    = "invalid_bailout"
	CodeInvalidPolicy     = "invalid_policy"
	CodeUnknownPolicy     = "unknown_policy"
	CodeUnknownConvention = "unknown_convention"
	CodeInternal          = "internal"
)

var errorCodes = []struct {
	code string
	err  error
}{
	{CodeInvalidDimensions, render.ErrInvalidDimensions},
	{CodeInvalidScale, render.ErrInvalidScale},
	{CodeInvalidIterations, render.ErrInvalidIterations},
	{CodeInvalidBailout, render.ErrInvalidBailout},
	{CodeInvalidPolicy, render.ErrInvalidPolicy},
	{CodeUnknownPolicy, render.ErrUnknownPolicy},
	{CodeUnknownConvention, render.ErrUnknownConvention},
}

func errorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeInternal
}

// RemoteError is a render failure reported by the server. irpc carries
// errors as text, so it crosses the wire as "[code] message" and is parsed
// back on the client. It unwraps to the matching render sentinel, so
// errors.Is works across the connection.
type RemoteError struct {
	Code    string
	Message string
}

func newRemoteError(err error) *RemoteError {
	return &RemoteError{Code: errorCode(err), Message: err.Error()}
}

func (e *RemoteError) Error() string {
	return "[" + e.Code + "] " + e.Message
}

func (e *RemoteError) Unwrap() error {
	for _, ec := range errorCodes {
		if ec.code == e.Code {
			return ec.err
		}
	}
	return nil
}

// parseRemoteError rebuilds a RemoteError from its text. Errors not in
// the "[code] message" form, or with a code this package does not know,
// are returned unchanged.
func parseRemoteError(err error) error {
	rest, ok := strings.CutPrefix(err.Error(), "[")
	if !ok {
		return err
	}
	code, msg, ok := strings.Cut(rest, "] ")
	if !ok {
		return err
	}
	if code != CodeInternal && (&RemoteError{Code: code}).Unwrap() == nil {
		return err
	}
	return &RemoteError{Code: code, Message: msg}
}
