package toml

import (
	"math"
	"testing"
)

func TestDecodeIntegerWidthPromotion(t *testing.T) {
	cases := []struct {
		text    string
		kind    NumberKind
		int32v  int32
		int64v  int64
	}{
		{"8001", NumberInt32, 8001, 0},
		{"-8001", NumberInt32, -8001, 0},
		{"123456789", NumberInt32, 123456789, 0},
		{"1234567890", NumberInt32, 1234567890, 0},
		{"12345678901", NumberInt64, 0, 12345678901},
		{"9223372036854775807", NumberBigInt, 0, 0},
	}
	for _, c := range cases {
		n, err := decodeInteger(c.text)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", c.text, err)
		}
		if n.NumKind != c.kind {
			t.Errorf("%q: got kind %v, want %v", c.text, n.NumKind, c.kind)
			continue
		}
		switch c.kind {
		case NumberInt32:
			if n.Int32 != c.int32v {
				t.Errorf("%q: got %d, want %d", c.text, n.Int32, c.int32v)
			}
		case NumberInt64:
			if n.Int64 != c.int64v {
				t.Errorf("%q: got %d, want %d", c.text, n.Int64, c.int64v)
			}
		case NumberBigInt:
			if n.BigInt.String() != c.text {
				t.Errorf("%q: got %s, want %s", c.text, n.BigInt.String(), c.text)
			}
		}
	}
}

func TestDecodeIntegerBigIntOverflow(t *testing.T) {
	n, err := decodeInteger("123456789012345678901234567890")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.NumKind != NumberBigInt {
		t.Fatalf("got kind %v, want NumberBigInt", n.NumKind)
	}
	if n.BigInt.String() != "123456789012345678901234567890" {
		t.Fatalf("got %s", n.BigInt.String())
	}
}

func TestDecodeBasedIntegers(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"0xDEADBEEF", 0xDEADBEEF},
		{"0o755", 0755},
		{"0b1010", 10},
		{"0xFF", 0xFF},
	}
	for _, c := range cases {
		n, err := decodeInteger(c.text)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", c.text, err)
		}
		if n.AsInt64() != c.want {
			t.Errorf("%q: got %d, want %d", c.text, n.AsInt64(), c.want)
		}
	}
}

func TestDecodeIntegerRejectsSignedBasedLiteral(t *testing.T) {
	if _, err := decodeInteger("+0xFF"); err == nil {
		t.Fatalf("expected error for signed hex literal")
	}
}

func TestDecodeFloatUnderscoresAndSpecials(t *testing.T) {
	n, err := decodeFloat("1_000.000_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := n.BigFloat.Float64()
	if math.Abs(got-1000.0001) > 1e-9 {
		t.Errorf("got %v, want ~1000.0001", got)
	}

	nanN, err := decodeFloat("nan")
	if err != nil || !nanN.IsNaN {
		t.Fatalf("expected NaN, got %+v err=%v", nanN, err)
	}
	posInf, err := decodeFloat("+inf")
	if err != nil || !posInf.IsInf || posInf.InfSign != 1 {
		t.Fatalf("expected +inf, got %+v err=%v", posInf, err)
	}
	negInf, err := decodeFloat("-inf")
	if err != nil || !negInf.IsInf || negInf.InfSign != -1 {
		t.Fatalf("expected -inf, got %+v err=%v", negInf, err)
	}
}

func TestNumberAsFloat64AndAsInt64(t *testing.T) {
	n := Number{NumKind: NumberBigFloat, IsNaN: true, NaNSign: 1}
	if !math.IsNaN(n.AsFloat64()) {
		t.Errorf("expected NaN")
	}
	n = Number{NumKind: NumberInt32, Int32: 7}
	if n.AsInt64() != 7 {
		t.Errorf("got %d, want 7", n.AsInt64())
	}
}
