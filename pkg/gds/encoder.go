package gds

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

var errNotClosed = errors.New("gds: boundary is not closed")

type encoder struct {
	w   *bufio.Writer
	err error
	buf []byte
}

// Encode writes lib to w as a GDSII stream.
func Encode(w io.Writer, lib *Library) error {
	e := encoder{w: bufio.NewWriter(w)}
	if err := e.encode(lib); err != nil {
		return err
	}
	return e.w.Flush()
}

// Marshal returns the GDSII stream for lib.
func Marshal(lib *Library) ([]byte, error) {
	var b bytes.Buffer
	if err := Encode(&b, lib); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (e *encoder) encode(lib *Library) error {
	name := lib.Name
	if name == "" {
		name = DefaultLibraryName
	}
	stamp := timestamp(lib.Modified)

	e.int16s(recHeader, Version)
	e.int16s(recBgnLib, append(stamp, stamp...)...)
	e.str(recLibName, name)
	e.reals(recUnits, lib.UserUnit, lib.DBUnit)

	for _, s := range lib.Structures {
		e.int16s(recBgnStr, append(stamp, stamp...)...)
		e.str(recStrName, s.Name)
		for _, b := range s.Boundaries {
			e.boundary(b)
		}
		e.record(recEndStr, nil)
	}

	e.record(recEndLib, nil)
	return e.err
}

func (e *encoder) boundary(b Boundary) {
	if n := len(b.XY); n < 4 || b.XY[0] != b.XY[n-1] {
		e.fail(errNotClosed)
		return
	}

	e.record(recBoundary, nil)
	e.int16s(recLayer, b.Layer)
	e.int16s(recDatatype, b.Datatype)

	xy := make([]int32, 0, 2*len(b.XY))
	for _, p := range b.XY {
		xy = append(xy, p.X, p.Y)
	}
	e.int32s(recXY, xy...)
	e.record(recEndEl, nil)
}

// timestamp returns the six BGNLIB/BGNSTR date fields for t.
func timestamp(t time.Time) []int16 {
	if t.IsZero() {
		t = time.Now()
	}
	return []int16{
		int16(t.Year()), int16(t.Month()), int16(t.Day()),
		int16(t.Hour()), int16(t.Minute()), int16(t.Second()),
	}
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// record writes one record. Payloads are padded to an even length.
func (e *encoder) record(typ uint16, payload []byte) {
	if e.err != nil {
		return
	}
	if len(payload)%2 == 1 {
		payload = append(payload, 0)
	}
	n := headerLen + len(payload)
	if n > maxRecordLen {
		e.fail(fmt.Errorf("gds: record 0x%04x too long (%d bytes)", typ, n))
		return
	}

	var hdr [headerLen]byte
	binary.BigEndian.PutUint16(hdr[0:], uint16(n))
	binary.BigEndian.PutUint16(hdr[2:], typ)
	if _, err := e.w.Write(hdr[:]); err != nil {
		e.fail(err)
		return
	}
	if _, err := e.w.Write(payload); err != nil {
		e.fail(err)
	}
}

func (e *encoder) int16s(typ uint16, vs ...int16) {
	e.buf = e.buf[:0]
	for _, v := range vs {
		e.buf = binary.BigEndian.AppendUint16(e.buf, uint16(v))
	}
	e.record(typ, e.buf)
}

func (e *encoder) int32s(typ uint16, vs ...int32) {
	e.buf = e.buf[:0]
	for _, v := range vs {
		e.buf = binary.BigEndian.AppendUint32(e.buf, uint32(v))
	}
	e.record(typ, e.buf)
}

func (e *encoder) reals(typ uint16, vs ...float64) {
	e.buf = e.buf[:0]
	for _, v := range vs {
		e.buf = binary.BigEndian.AppendUint64(e.buf, encodeReal(v))
	}
	e.record(typ, e.buf)
}

func (e *encoder) str(typ uint16, s string) {
	e.buf = append(e.buf[:0], s...)
	e.record(typ, e.buf)
}
