package crc32

import "testing"

func TestUpdateCheckValue(t *testing.T) {
	// The standard CRC-32 (IEEE) check value for ASCII "123456789".
	got := Update(0, []byte("123456789"))
	if want := uint32(0xcbf43926); got != want {
		t.Errorf("Update() = %#08x, want %#08x", got, want)
	}
}

func TestUpdateHello(t *testing.T) {
	got := Update(0, []byte("hello"))
	if want := uint32(0x3610a686); got != want {
		t.Errorf("Update(\"hello\") = %#08x, want %#08x", got, want)
	}
}

func TestUpdateIncremental(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	whole := Update(0, data)

	var running uint32
	for i := range data {
		running = Update(running, data[i:i+1])
	}

	if running != whole {
		t.Errorf("incremental Update = %#08x, whole Update = %#08x", running, whole)
	}
}

func TestUpdateEmpty(t *testing.T) {
	if got := Update(0, nil); got != 0 {
		t.Errorf("Update(0, nil) = %#08x, want 0", got)
	}
}
