package binaryheur_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klondiff/klondiff/internal/binaryheur"
)

func TestClassifyEmptyIsText(t *testing.T) {
	got, err := binaryheur.Classify(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != binaryheur.Text {
		t.Errorf("Classify(empty) = %v, want Text", got)
	}
}

func TestClassifyNULIsBinary(t *testing.T) {
	buf := []byte("hello\x00world")
	got, err := binaryheur.Classify(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != binaryheur.Binary {
		t.Errorf("Classify(contains NUL) = %v, want Binary", got)
	}
}

func TestClassifyPlainTextIsText(t *testing.T) {
	buf := []byte(strings.Repeat("the quick brown fox\n", 20))
	got, err := binaryheur.Classify(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != binaryheur.Text {
		t.Errorf("Classify(plain text) = %v, want Text", got)
	}
}

func TestClassifyMostlyControlBytesIsBinary(t *testing.T) {
	buf := make([]byte, 512)
	for i := range buf {
		buf[i] = 0x01
	}
	got, err := binaryheur.Classify(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != binaryheur.Binary {
		t.Errorf("Classify(mostly control bytes) = %v, want Binary", got)
	}
}

func TestCompareBinaryIdentical(t *testing.T) {
	a := bytes.Repeat([]byte{0x01, 0x02}, 1000)
	b := bytes.Repeat([]byte{0x01, 0x02}, 1000)
	got, err := binaryheur.CompareBinary(bytes.NewReader(a), bytes.NewReader(b))
	if err != nil {
		t.Fatalf("CompareBinary: %v", err)
	}
	if got != binaryheur.BinarySame {
		t.Errorf("CompareBinary(identical) = %v, want BinarySame", got)
	}
}

func TestCompareBinaryDifferent(t *testing.T) {
	a := bytes.Repeat([]byte{0x01}, 1000)
	b := bytes.Repeat([]byte{0x02}, 1000)
	got, err := binaryheur.CompareBinary(bytes.NewReader(a), bytes.NewReader(b))
	if err != nil {
		t.Fatalf("CompareBinary: %v", err)
	}
	if got != binaryheur.BinaryDifferent {
		t.Errorf("CompareBinary(different) = %v, want BinaryDifferent", got)
	}
}

func TestCompareBinaryDifferentLengths(t *testing.T) {
	a := bytes.Repeat([]byte{0x01}, 600)
	b := bytes.Repeat([]byte{0x01}, 1200)
	got, err := binaryheur.CompareBinary(bytes.NewReader(a), bytes.NewReader(b))
	if err != nil {
		t.Fatalf("CompareBinary: %v", err)
	}
	if got != binaryheur.BinaryDifferent {
		t.Errorf("CompareBinary(different lengths) = %v, want BinaryDifferent", got)
	}
}
