package codec

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/oyin-bo/lexigen/internal/words"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

// greekTable returns a table whose first three entries are alpha, beta, gamma.
func greekTable(t *testing.T) *words.Table {
	t.Helper()
	list := []string{"alpha", "beta", "gamma"}
	for i := 3; i < words.TableSize-1; i++ {
		list = append(list, fmt.Sprintf("w%03d", i))
	}
	list = append(list, "zzz")

	table, err := words.NewTable(list)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestEncodeExample(t *testing.T) {
	table := greekTable(t)
	payload := []byte{0x00, 0x01, 0x02}

	encoded := Encode(payload, table)
	want := []string{"alpha", "beta", "gamma"}
	if len(encoded) != len(want) {
		t.Fatalf("encoded %v, want %v", encoded, want)
	}
	for i := range want {
		if encoded[i] != want[i] {
			t.Errorf("encoded[%d] = %q, want %q", i, encoded[i], want[i])
		}
	}

	decoded, err := Decode(encoded, table)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Errorf("decoded %v, want %v", decoded, payload)
	}
}

func TestRoundTripAllByteValues(t *testing.T) {
	table := greekTable(t)
	payload := make([]byte, 0, 512)
	for i := 0; i < 256; i++ {
		payload = append(payload, byte(i), byte(255-i))
	}

	decoded, err := Decode(Encode(payload, table), table)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Error("round trip changed the payload")
	}
}

func TestRoundTripRandomPayloads(t *testing.T) {
	table := greekTable(t)
	rng := rand.New(rand.NewPCG(5, 6))

	for n := 0; n < 50; n++ {
		payload := make([]byte, rng.IntN(4096))
		for i := range payload {
			payload[i] = byte(rng.IntN(256))
		}
		decoded, err := Decode(Encode(payload, table), table)
		if err != nil {
			t.Fatalf("payload %d: %v", n, err)
		}
		if !bytes.Equal(decoded, payload) {
			t.Fatalf("payload %d: round trip mismatch", n)
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	table := greekTable(t)
	if got := Encode(nil, table); len(got) != 0 {
		t.Errorf("expected empty sequence, got %v", got)
	}
	decoded, err := Decode(nil, table)
	if err != nil || len(decoded) != 0 {
		t.Errorf("Decode(nil) = %v, %v", decoded, err)
	}
}

func TestDecodeUnknownWord(t *testing.T) {
	table := greekTable(t)
	_, err := Decode([]string{"alpha", "omega"}, table)
	if err == nil {
		t.Fatal("expected error for unknown word")
	}
	if !errors.Is(err, errors.InvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	table := greekTable(t)
	payload := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	encoded := Encode(payload, table)

	t.Run("Valid", func(t *testing.T) {
		if err := Verify(payload, encoded, table, VerifyPrefix); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("ShortPayload", func(t *testing.T) {
		if err := Verify(payload[:3], encoded[:3], table, VerifyPrefix); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("MismatchInPrefix", func(t *testing.T) {
		broken := append([]string(nil), encoded...)
		broken[4] = table.Word(200)
		err := Verify(payload, broken, table, VerifyPrefix)
		if !errors.Is(err, errors.InternalError) {
			t.Errorf("expected internal error, got %v", err)
		}
	})

	t.Run("MismatchBeyondPrefixIsNotChecked", func(t *testing.T) {
		broken := append([]string(nil), encoded...)
		broken[11] = table.Word(200)
		if err := Verify(payload, broken, table, VerifyPrefix); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		err := Verify(payload, encoded[:5], table, VerifyPrefix)
		if !errors.Is(err, errors.InternalError) {
			t.Errorf("expected internal error, got %v", err)
		}
	})
}
