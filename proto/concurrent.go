package proto

import (
	"golang.org/x/sync/errgroup"

	"github.com/wirepb/wirepb/dispatch"
)

// UnmarshalConcurrent decodes each element of raw independently and
// concurrently, each against its own cursor.Decoder as required by §5's
// "concurrent decoders over independent inputs proceed independently."
// Every mt[i] describes raw[i]; a single mt may be reused across all
// indices by passing the same value repeatedly. It waits, via
// golang.org/x/sync/errgroup, for every goroutine to finish and then returns
// the first error encountered, if any.
func UnmarshalConcurrent(raw [][]byte, mt []dispatch.MessageType) ([]any, error) {
	out := make([]any, len(raw))
	var g errgroup.Group
	for i := range raw {
		g.Go(func() error {
			msg, err := Unmarshal(raw[i], mt[i])
			if err != nil {
				return err
			}
			out[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarshalConcurrent encodes each message independently and concurrently,
// each against its own wireout.Encoder, the encode-side mirror of
// UnmarshalConcurrent.
func MarshalConcurrent(messages []any, mt []dispatch.MessageType) ([][]byte, error) {
	out := make([][]byte, len(messages))
	var g errgroup.Group
	for i := range messages {
		g.Go(func() error {
			b, err := Marshal(mt[i], messages[i])
			if err != nil {
				return err
			}
			out[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
