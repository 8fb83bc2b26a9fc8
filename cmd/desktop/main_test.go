package main

import (
	"testing"

	"gochip8/pkg/chip8"
)

func TestKeypadLayoutDistinct(t *testing.T) {
	seen := map[int]byte{}
	for val, key := range keypadLayout {
		if prev, ok := seen[int(key)]; ok {
			t.Errorf("key %v mapped to both 0x%X and 0x%X", key, prev, val)
		}
		seen[int(key)] = byte(val)
	}
	if len(seen) != chip8.NumKeys {
		t.Errorf("expected %d distinct physical keys, got %d", chip8.NumKeys, len(seen))
	}
}
