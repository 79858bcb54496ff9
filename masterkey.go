/*
Package parental computes the master key used to reset the parental controls
on a Nintendo console.

The console displays an 8 digit confirmation (or serial) number and the
reset is only accepted on the month and day it was requested, so the key is
derived from both:

	mk, err := parental.New("54033620", "12", "26")
	if err != nil {
		return err
	}

	fmt.Println(mk) // 11253
*/
package parental

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bodgit/parental/internal/crc32"
	"github.com/bodgit/plumbing"
)

// Constants used to fold the checksum into a master key.
const (
	XOR     = 0xaaaa
	Roll    = 0x14c1
	Modulus = 100000
)

const (
	// SerialNumberLength is the number of digits in a serial number.
	SerialNumberLength = 8
	// DateLength is the number of digits in the combined month and day.
	DateLength = 4
	// KeyDigits is the conventional display width of a master key.
	KeyDigits = 5

	alphabet = "0123456789"

	// Only the trailing digits of the serial number are checksummed
	serialOffset = SerialNumberLength - 4
)

var (
	// ErrInvalidSerialNumber is returned if the serial number is not
	// exactly SerialNumberLength decimal digits.
	ErrInvalidSerialNumber = errors.New("the serial number must be in the format of 8 digits")
	// ErrInvalidDate is returned if the month and day together are not
	// exactly DateLength decimal digits.
	ErrInvalidDate = errors.New("the date must be in the format of MMDD")
)

// InputError records the rejected input and the reason it was rejected.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Err.Error())
}

func (e *InputError) Unwrap() error { return e.Err }

func isDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}

	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return false
		}
	}

	_, err := strconv.ParseUint(s, 10, 64)

	return err == nil
}

func validate(serialNumber, date string) error {
	if !isDigits(serialNumber, SerialNumberLength) {
		return &InputError{"serial number", serialNumber, ErrInvalidSerialNumber}
	}

	if !isDigits(date, DateLength) {
		return &InputError{"date", date, ErrInvalidDate}
	}

	return nil
}

func fold(crc uint32) int {
	return int((uint64(crc^XOR) + Roll) % Modulus)
}

// A MasterKey is derived from a serial number and a date. It is immutable
// and safe for concurrent use.
type MasterKey struct {
	serialNumber string
	date         string
	input        string
	crc          uint32
	key          int
}

// New validates the serial number and the month and day and derives the
// master key. The month and day are concatenated as-is, so they are not
// range checked individually; only the combined string must be 4 digits.
// Any returned error wraps either ErrInvalidSerialNumber or ErrInvalidDate.
func New(serialNumber, month, day string) (*MasterKey, error) {
	date := month + day

	if err := validate(serialNumber, date); err != nil {
		return nil, err
	}

	mk := &MasterKey{
		serialNumber: serialNumber,
		date:         date,
		input:        date + serialNumber[serialOffset:],
	}

	mk.crc = crc32.Register([]byte(mk.input))
	mk.key = fold(mk.crc)

	return mk, nil
}

// Derive is a shortcut for New followed by Key.
func Derive(serialNumber, month, day string) (int, error) {
	mk, err := New(serialNumber, month, day)
	if err != nil {
		return 0, err
	}

	return mk.Key(), nil
}

// Key returns the master key, which is always in the range [0, 99999]. It
// is not padded; use String for the conventional 5 digit form.
func (mk *MasterKey) Key() int { return mk.key }

// SerialNumber returns the validated serial number.
func (mk *MasterKey) SerialNumber() string { return mk.serialNumber }

// Date returns the validated month and day.
func (mk *MasterKey) Date() string { return mk.date }

// ChecksumInput returns the string that was checksummed, the date followed
// by the last four digits of the serial number.
func (mk *MasterKey) ChecksumInput() string { return mk.input }

// Checksum returns the CRC-32 register computed over ChecksumInput before
// it was folded into the key.
func (mk *MasterKey) Checksum() uint32 { return mk.crc }

// WriteTo writes the master key to w, zero-padded to KeyDigits digits.
func (mk *MasterKey) WriteTo(w io.Writer) (int64, error) {
	s := strconv.Itoa(mk.key)

	buf := new(bytes.Buffer)
	buf.Grow(KeyDigits)

	if pad := KeyDigits - len(s); pad > 0 {
		_, _ = io.CopyN(buf, plumbing.FillReader('0'), int64(pad))
	}

	_, _ = buf.WriteString(s)

	n, err := buf.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("unable to write master key: %w", err)
	}

	return n, nil
}

func (mk *MasterKey) String() string {
	buf := new(bytes.Buffer)
	_, _ = mk.WriteTo(buf)

	return buf.String()
}
