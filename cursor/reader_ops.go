package cursor

import (
	"github.com/wirepb/wirepb/werrors"
	"github.com/wirepb/wirepb/wire"
)

// window returns the bytes currently available between pos and end (the
// active limit or end of buffer, whichever comes first), without refilling.
func (d *Decoder) window() []byte {
	return d.buf[d.pos:d.end]
}

func (d *Decoder) advance(n int) {
	d.pos += n
}

// ReadTag reads the next field tag, or returns (0, 0) to signal end of
// input or end of the active limit.
func (d *Decoder) ReadTag() (wire.Number, wire.Type, error) {
	if w := d.window(); len(w) >= wire.FastVarint64Bytes {
		num, typ, n, err := wire.ConsumeTag(w)
		if err != nil {
			return 0, 0, err
		}
		d.advance(n)
		return num, typ, nil
	}
	return d.readTagSlow()
}

// readTagSlow handles the case where fewer than the fast-path threshold are
// known to be available in the current window: it checks for genuine end of
// input/limit first, then decodes a varint byte-by-byte, refilling across
// segment boundaries as needed.
func (d *Decoder) readTagSlow() (wire.Number, wire.Type, error) {
	if d.atLimitNotEnd() {
		return 0, 0, nil
	}
	atEnd, err := d.IsAtEnd()
	if err != nil {
		return 0, 0, err
	}
	if atEnd {
		return 0, 0, nil
	}
	v, err := d.readVarintSlow()
	if err != nil {
		return 0, 0, err
	}
	num, typ := wire.DecodeTag(v)
	if num == 0 {
		return 0, 0, werrors.ErrInvalidTag
	}
	return num, typ, nil
}

// ReadVarint64 reads a varint-encoded 64-bit value.
func (d *Decoder) ReadVarint64() (uint64, error) {
	if w := d.window(); len(w) >= wire.FastVarint64Bytes {
		v, n, err := wire.ConsumeVarint64Fast(w)
		if err != nil {
			return 0, err
		}
		d.advance(n)
		return v, nil
	}
	return d.readVarintSlow()
}

// ReadVarint32 reads a varint-encoded 32-bit value, discarding any high bits
// an over-long encoding supplies (§4.1).
func (d *Decoder) ReadVarint32() (uint32, error) {
	v, err := d.ReadVarint64()
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// readVarintSlow decodes one byte at a time, refilling across segment or
// stream boundaries as needed. It is also used when the window is short but
// may still contain a complete (short) varint; it first tries the segment
// in hand before requesting more.
func (d *Decoder) readVarintSlow() (uint64, error) {
	var v uint64
	for shift := uint(0); shift < 64; shift += 7 {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		v |= (uint64(b) & 0x7f) << shift
		if b < 0x80 {
			return v, nil
		}
	}
	return 0, werrors.ErrMalformedVarint
}

// readByte returns the next single byte, refilling the window if necessary.
func (d *Decoder) readByte() (byte, error) {
	if d.pos >= d.end {
		if err := d.ensureByte(); err != nil {
			return 0, err
		}
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ensureByte refills until at least one more byte is available within the
// active limit, or reports truncation/EOF.
func (d *Decoder) ensureByte() error {
	for d.pos >= d.end {
		if d.atLimitNotEnd() {
			return werrors.ErrTruncatedMessage
		}
		ok, err := d.doRefill()
		if err != nil {
			return err
		}
		if !ok {
			return werrors.ErrTruncatedMessage
		}
	}
	return nil
}

// atLimitNotEnd reports whether the reason no bytes remain in the window is
// that we hit the active limit (as opposed to end of buffer, which refill
// might still extend).
func (d *Decoder) atLimitNotEnd() bool {
	lim := d.activeLimit()
	return lim >= 0 && d.AbsoluteOffset() >= lim
}

// ReadFixed32 reads a little-endian 32-bit value.
func (d *Decoder) ReadFixed32() (uint32, error) {
	if w := d.window(); len(w) >= 4 {
		v, n, _ := wire.ConsumeFixed32(w)
		d.advance(n)
		return v, nil
	}
	return d.readFixedSlow32()
}

func (d *Decoder) readFixedSlow32() (uint32, error) {
	var v uint32
	for i := uint(0); i < 4; i++ {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << (8 * i)
	}
	return v, nil
}

// ReadFixed64 reads a little-endian 64-bit value.
func (d *Decoder) ReadFixed64() (uint64, error) {
	if w := d.window(); len(w) >= 8 {
		v, n, _ := wire.ConsumeFixed64(w)
		d.advance(n)
		return v, nil
	}
	return d.readFixedSlow64()
}

func (d *Decoder) readFixedSlow64() (uint64, error) {
	var v uint64
	for i := uint(0); i < 8; i++ {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(b) << (8 * i)
	}
	return v, nil
}

// ReadLength reads a varint length prefix, validating it is non-negative.
func (d *Decoder) ReadLength() (int, error) {
	v, err := d.ReadVarint64()
	if err != nil {
		return 0, err
	}
	if int64(v) < 0 {
		return 0, werrors.ErrNegativeSize
	}
	return int(v), nil
}

// ReadBytes reads a length-delimited byte payload. When the payload lies
// entirely within the current window, it returns a zero-copy slice into the
// decoder's buffer; otherwise (the payload spans a segment boundary in the
// segmented adaptor, or more bytes must be pulled from a stream) it copies
// into a freshly allocated slice, per §9's "fragmented input" note.
func (d *Decoder) ReadBytes() ([]byte, error) {
	length, err := d.ReadLength()
	if err != nil {
		return nil, err
	}
	return d.readRaw(length)
}

// ReadString reads a length-delimited payload and lax-decodes it as UTF-8,
// substituting U+FFFD for invalid sequences instead of raising an error.
func (d *Decoder) ReadString() (string, error) {
	raw, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	return wire.LaxUTF8(raw), nil
}

// readRaw reads exactly n bytes, honoring the active limit, zero-copy when
// possible.
func (d *Decoder) readRaw(n int) ([]byte, error) {
	if n < 0 {
		return nil, werrors.ErrNegativeSize
	}
	if lim := d.activeLimit(); lim >= 0 && d.AbsoluteOffset()+int64(n) > lim {
		return nil, werrors.ErrTruncatedMessage
	}
	if w := d.window(); len(w) >= n {
		out := w[:n]
		d.advance(n)
		return out, nil
	}
	out := make([]byte, n)
	if err := d.readFull(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Decoder) readFull(out []byte) error {
	for len(out) > 0 {
		w := d.window()
		if len(w) == 0 {
			if d.atLimitNotEnd() {
				return werrors.ErrTruncatedMessage
			}
			ok, err := d.doRefill()
			if err != nil {
				return err
			}
			if !ok {
				return werrors.ErrTruncatedMessage
			}
			continue
		}
		k := copy(out, w)
		d.advance(k)
		out = out[k:]
	}
	return nil
}

// Skip advances the cursor by n bytes without interpreting them, refilling
// across segments/stream reads as needed. It fails if n would run past the
// active limit.
func (d *Decoder) Skip(n int) error {
	if n < 0 {
		return werrors.ErrNegativeSize
	}
	if lim := d.activeLimit(); lim >= 0 && d.AbsoluteOffset()+int64(n) > lim {
		return werrors.ErrTruncatedMessage
	}
	for n > 0 {
		w := d.window()
		if len(w) == 0 {
			if d.atLimitNotEnd() {
				return werrors.ErrTruncatedMessage
			}
			ok, err := d.doRefill()
			if err != nil {
				return err
			}
			if !ok {
				return werrors.ErrTruncatedMessage
			}
			continue
		}
		k := len(w)
		if k > n {
			k = n
		}
		d.advance(k)
		n -= k
	}
	return nil
}
