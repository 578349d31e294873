package cobs

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeKnownVectors(t *testing.T) {
	testCases := []struct {
		name    string
		encoded []byte
		payload []byte
	}{
		{"empty run", []byte{0x01}, []byte{}},
		{"no zeros", []byte{0x03, 0x11, 0x22}, []byte{0x11, 0x22}},
		{"embedded zero", []byte{0x03, 0x11, 0x22, 0x02, 0x33}, []byte{0x11, 0x22, 0x00, 0x33}},
		{"leading zero", []byte{0x01, 0x02, 0x11}, []byte{0x00, 0x11}},
		{"trailing delimiter artifact", []byte{0x02, 0x11, 0x01}, []byte{0x11}},
		{"zero code stops decoding", []byte{0x02, 0x11, 0x00, 0x22}, []byte{0x11}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Decode(tc.encoded)
			require.NoError(t, err)
			require.Equal(t, tc.payload, payload)
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	// code announces 4 literal bytes but only 2 follow
	_, err := Decode([]byte{0x05, 0x11, 0x22})
	require.Equal(t, ErrTruncated, err)
}

func TestEncodeNoDelimiters(t *testing.T) {
	payload := bytes.Repeat([]byte{0x00, 0x7f}, 300)
	require.NotContains(t, Encode(payload), Delimiter)
}

func TestRoundTrip(t *testing.T) {
	long := make([]byte, 600)
	for i := range long {
		long[i] = byte(i%255) + 1
	}
	testCases := []struct {
		name    string
		payload []byte
	}{
		{"empty", nil},
		{"single byte", []byte{0x42}},
		{"single zero", []byte{0x00}},
		{"zeros inside", []byte{0x01, 0x00, 0x00, 0x02}},
		{"trailing zero", []byte{0x01, 0x02, 0x00}},
		{"run of 253", long[:253]},
		{"run of 254", long[:254]},
		{"run of 255", long[:255]},
		{"long multi-run", long},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Decode(Encode(tc.payload))
			require.NoError(t, err)
			if len(tc.payload) == 0 {
				require.Empty(t, payload)
			} else {
				require.Equal(t, tc.payload, payload)
			}
		})
	}
}

func TestRoundTripRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		payload := make([]byte, rnd.Intn(512))
		for j := range payload {
			// zero-heavy to exercise run splits
			payload[j] = byte(rnd.Intn(4))
		}
		decoded, err := Decode(Encode(payload))
		require.NoError(t, err)
		if len(payload) == 0 {
			require.Empty(t, decoded)
			continue
		}
		require.Equal(t, payload, decoded)
	}
}
