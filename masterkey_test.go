package parental_test

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bodgit/parental"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tables := []struct {
		name         string
		serialNumber string
		month, day   string
		input        string
		crc          uint32
		key          int
		padded       string
	}{
		{"reference", "54033620", "12", "26", "12263620", 0x8244863e, 11253, "11253"},
		{"sequential", "12345678", "01", "01", "01015678", 0xd629c28d, 43176, "43176"},
		{"zeroes", "00000000", "00", "00", "00000000", 0x3ff772fc, 12695, "12695"},
		{"nines", "99999999", "12", "31", "12319999", 0x05f14fbd, 44216, "44216"},
		{"month out of range", "54033620", "13", "45", "13453620", 0xb5ca1447, 68558, "68558"},
		{"short month", "11112222", "1", "226", "12262222", 0xd3ff28ab, 42850, "42850"},
		{"long month", "11112222", "122", "6", "12262222", 0xd3ff28ab, 42850, "42850"},
		{"padded", "00000010", "01", "01", "01010010", 0xbdfb61b9, 660, "00660"},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			t.Parallel()

			mk, err := parental.New(table.serialNumber, table.month, table.day)
			require.NoError(t, err)

			assert.Equal(t, table.serialNumber, mk.SerialNumber())
			assert.Equal(t, table.month+table.day, mk.Date())
			assert.Equal(t, table.input, mk.ChecksumInput())
			assert.Equal(t, table.crc, mk.Checksum())
			assert.Equal(t, table.key, mk.Key())
			assert.Equal(t, table.padded, mk.String())
		})
	}
}

func TestNewInvalid(t *testing.T) {
	t.Parallel()

	tables := []struct {
		name         string
		serialNumber string
		month, day   string
		err          error
	}{
		{"short serial", "5403362", "12", "26", parental.ErrInvalidSerialNumber},
		{"long serial", "540336201", "12", "26", parental.ErrInvalidSerialNumber},
		{"non-digit serial", "5403362A", "12", "26", parental.ErrInvalidSerialNumber},
		{"signed serial", "-5403362", "12", "26", parental.ErrInvalidSerialNumber},
		{"empty serial", "", "12", "26", parental.ErrInvalidSerialNumber},
		{"short date", "54033620", "12", "6", parental.ErrInvalidDate},
		{"long date", "54033620", "12", "261", parental.ErrInvalidDate},
		{"non-digit date", "54033620", "1a", "26", parental.ErrInvalidDate},
		{"spaced date", "54033620", " 1", "26", parental.ErrInvalidDate},
		{"empty date", "54033620", "", "", parental.ErrInvalidDate},
		// The serial number is checked first
		{"both invalid", "5403362", "1", "2", parental.ErrInvalidSerialNumber},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			t.Parallel()

			mk, err := parental.New(table.serialNumber, table.month, table.day)
			assert.Nil(t, mk)
			assert.ErrorIs(t, err, table.err)

			var ie *parental.InputError
			if assert.True(t, errors.As(err, &ie)) {
				assert.Equal(t, table.err, ie.Err)
			}
		})
	}
}

func TestInputError(t *testing.T) {
	t.Parallel()

	_, err := parental.New("5403362A", "12", "26")
	assert.EqualError(t, err, `serial number "5403362A": the serial number must be in the format of 8 digits`)

	_, err = parental.New("54033620", "1", "26")
	assert.EqualError(t, err, `date "126": the date must be in the format of MMDD`)
}

func TestDerive(t *testing.T) {
	t.Parallel()

	key, err := parental.Derive("54033620", "12", "26")
	require.NoError(t, err)
	assert.Equal(t, 11253, key)

	key, err = parental.Derive("5403362", "12", "26")
	assert.ErrorIs(t, err, parental.ErrInvalidSerialNumber)
	assert.Equal(t, 0, key)
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	mk1, err := parental.New("54033620", "12", "26")
	require.NoError(t, err)

	var wg sync.WaitGroup

	keys := make([]int, 16)

	for i := range keys {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			mk, err := parental.New("54033620", "12", "26")
			if err == nil {
				keys[i] = mk.Key()
			}
		}(i)
	}

	wg.Wait()

	for _, key := range keys {
		assert.Equal(t, mk1.Key(), key)
	}

	assert.Equal(t, "54033620", mk1.SerialNumber())
	assert.Equal(t, "1226", mk1.Date())
}

func TestRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 10000; i += 7 {
		serialNumber := fmt.Sprintf("%08d", i*9973)
		day := fmt.Sprintf("%02d", i%100)

		mk, err := parental.New(serialNumber, "12", day)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, mk.Key(), 0)
		assert.Less(t, mk.Key(), parental.Modulus)
		assert.Len(t, mk.String(), parental.KeyDigits)
	}
}

func TestSensitivity(t *testing.T) {
	t.Parallel()

	const serialNumber, month, day = "54033620", "12", "26"

	key, err := parental.Derive(serialNumber, month, day)
	require.NoError(t, err)

	mutate := func(s string, i int) []string {
		var out []string

		for c := byte('0'); c <= '9'; c++ {
			if c != s[i] {
				b := []byte(s)
				b[i] = c
				out = append(out, string(b))
			}
		}

		return out
	}

	for i := 4; i < parental.SerialNumberLength; i++ {
		for _, s := range mutate(serialNumber, i) {
			k, err := parental.Derive(s, month, day)
			require.NoError(t, err)
			assert.NotEqual(t, key, k, s)
		}
	}

	for i := 0; i < parental.DateLength; i++ {
		for _, d := range mutate(month+day, i) {
			k, err := parental.Derive(serialNumber, d[:2], d[2:])
			require.NoError(t, err)
			assert.NotEqual(t, key, k, d)
		}
	}

	// The leading digits of the serial number are not part of the key
	k, err := parental.Derive("99993620", month, day)
	require.NoError(t, err)
	assert.Equal(t, key, k)
}

func TestWriteTo(t *testing.T) {
	t.Parallel()

	mk, err := parental.New("00000010", "01", "01")
	require.NoError(t, err)

	buf := new(bytes.Buffer)

	n, err := mk.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(parental.KeyDigits), n)
	assert.Equal(t, "00660", buf.String())
	assert.Equal(t, 660, mk.Key())
}
