package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	cases := []struct {
		value VarInt
		bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{2, []byte{0x02}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{25565, []byte{0xdd, 0xc7, 0x01}},
		{2097151, []byte{0xff, 0xff, 0x7f}},
		{2147483647, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		if _, err := c.value.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo(%d): %v", c.value, err)
		}
		if !bytes.Equal(buf.Bytes(), c.bytes) {
			t.Errorf("WriteTo(%d) = %x, want %x", c.value, buf.Bytes(), c.bytes)
		}

		var got VarInt
		if _, err := got.ReadFrom(bytes.NewReader(c.bytes)); err != nil {
			t.Fatalf("ReadFrom(%x): %v", c.bytes, err)
		}
		if got != c.value {
			t.Errorf("ReadFrom(%x) = %d, want %d", c.bytes, got, c.value)
		}
	}
}

func TestVarIntTooLarge(t *testing.T) {
	// The first five bytes all carry the continuation bit: the 5th byte
	// must end a valid 32-bit varint, so a varint that needs a 6th byte is
	// malformed (the trailing 0x01 is never reached).
	malformed := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
	var v VarInt
	_, err := v.ReadFrom(bytes.NewReader(malformed))
	if !errors.Is(err, ErrVarIntTooLarge) {
		t.Fatalf("ReadFrom(%x) error = %v, want ErrVarIntTooLarge", malformed, err)
	}
}

func TestVarLongRoundTrip(t *testing.T) {
	cases := []VarLong{0, 1, -1, 127, 128, 9223372036854775807, -9223372036854775808}
	for _, c := range cases {
		var buf bytes.Buffer
		if _, err := c.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo(%d): %v", c, err)
		}
		var got VarLong
		if _, err := got.ReadFrom(&buf); err != nil {
			t.Fatalf("ReadFrom: %v", err)
		}
		if got != c {
			t.Errorf("roundtrip(%d) = %d", c, got)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	cases := []String{"", "hello", "Minecraft 1.21.4", "日本語のテキスト"}
	for _, c := range cases {
		var buf bytes.Buffer
		if _, err := c.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo(%q): %v", c, err)
		}
		var got String
		if _, err := got.ReadFrom(&buf); err != nil {
			t.Fatalf("ReadFrom(%q): %v", c, err)
		}
		if got != c {
			t.Errorf("roundtrip(%q) = %q", c, got)
		}
	}
}

func TestStringTooLong(t *testing.T) {
	var buf bytes.Buffer
	if _, err := VarInt(maxStringBytes + 1).WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	var v String
	_, err := v.ReadFrom(&buf)
	if !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("ReadFrom oversized length error = %v, want ErrStringTooLong", err)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	cases := []Position{
		{X: 0, Y: 0, Z: 0},
		{X: 100, Y: 64, Z: -200},
		{X: -33554432, Y: -2048, Z: 33554431},
		{X: 18, Y: 70, Z: 23},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		if _, err := c.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo(%+v): %v", c, err)
		}
		var got Position
		if _, err := got.ReadFrom(&buf); err != nil {
			t.Fatalf("ReadFrom(%+v): %v", c, err)
		}
		if got != c {
			t.Errorf("roundtrip(%+v) = %+v", c, got)
		}
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	in := Int(-123456789)
	if _, err := in.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	var outInt Int
	if _, err := outInt.ReadFrom(&buf); err != nil {
		t.Fatal(err)
	}
	if outInt != in {
		t.Errorf("Int roundtrip = %d, want %d", outInt, in)
	}

	l := Long(-1)
	buf.Reset()
	if _, err := l.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("Long(-1) bytes = %x", buf.Bytes())
	}

	d := Double(1.5)
	buf.Reset()
	if _, err := d.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	var outD Double
	if _, err := outD.ReadFrom(&buf); err != nil {
		t.Fatal(err)
	}
	if outD != d {
		t.Errorf("Double roundtrip = %v, want %v", outD, d)
	}
}
