package water

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for h := float32(-HeightRange); h <= HeightRange; h += 0.25 {
		got := DecodeHeight(EncodeHeight(h))
		if math32.Abs(got-h) > 1e-5 {
			t.Errorf("decode(encode(%v)) = %v, want %v", h, got, h)
		}
	}
}

func TestEncodeNeutral(t *testing.T) {
	if got := EncodeHeight(0); got != NeutralEncoded {
		t.Errorf("EncodeHeight(0) = %v, want %v", got, NeutralEncoded)
	}
	if got := DecodeHeight(NeutralEncoded); got != 0 {
		t.Errorf("DecodeHeight(%v) = %v, want 0", NeutralEncoded, got)
	}
}

func TestEncodeRange(t *testing.T) {
	if got := EncodeHeight(-HeightRange); got != 0 {
		t.Errorf("EncodeHeight(-3) = %v, want 0", got)
	}
	if got := EncodeHeight(HeightRange); got != 1 {
		t.Errorf("EncodeHeight(3) = %v, want 1", got)
	}
}
