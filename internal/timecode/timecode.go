// Package timecode converts between durations and subtitle timestamp text.
//
// Subtitle formats share one timestamp shape (hours, minutes, seconds,
// milliseconds joined by colons) and differ only in the millisecond separator
// and the number of millisecond digits they carry. Parse and Format are
// parameterized on both; the format-specific helpers fix them.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	srtMillisecondSeparator    = ","
	webvttMillisecondSeparator = "."
)

// Parse interprets a timestamp such as "01:02:03,456" as a duration. The last
// segment after msSep is the millisecond field; shorter fields are scaled up
// to a canonical three-digit magnitude ("5" reads as 500ms). The remainder is
// minutes:seconds, hours:minutes:seconds, or hours:minutes:seconds:milliseconds,
// where a fourth segment overrides the millisecond field.
func Parse(raw, msSep string) (time.Duration, error) {
	trimmed := strings.TrimSpace(raw)
	parts := strings.Split(trimmed, msSep)
	if len(parts) < 2 {
		return 0, fmt.Errorf("timecode: missing millisecond separator %q in %q", msSep, raw)
	}

	msText := strings.TrimSpace(parts[len(parts)-1])
	if len(msText) > 3 {
		return 0, fmt.Errorf("timecode: millisecond field %q in %q is longer than 3 digits", msText, raw)
	}
	ms, err := strconv.Atoi(msText)
	if err != nil {
		return 0, fmt.Errorf("timecode: parse milliseconds %q in %q: %w", msText, raw, err)
	}
	ms *= pow10(3 - len(msText))

	var hours, minutes, seconds int
	fields := strings.Split(strings.Join(parts[:len(parts)-1], msSep), ":")
	switch len(fields) {
	case 2:
		if minutes, seconds, err = parseClockFields(fields, raw); err != nil {
			return 0, err
		}
	case 3, 4:
		if hours, err = parseClockField(fields[0], raw); err != nil {
			return 0, err
		}
		if minutes, seconds, err = parseClockFields(fields[1:3], raw); err != nil {
			return 0, err
		}
		if len(fields) == 4 {
			if ms, err = parseClockField(fields[3], raw); err != nil {
				return 0, err
			}
		}
	default:
		return 0, fmt.Errorf("timecode: unexpected number of segments in %q", raw)
	}

	return time.Duration(ms)*time.Millisecond +
		time.Duration(seconds)*time.Second +
		time.Duration(minutes)*time.Minute +
		time.Duration(hours)*time.Hour, nil
}

// Format renders d as "HH:MM:SS<msSep>mmm", truncating the millisecond field to
// msDigits digits. Hours, minutes, and seconds are zero-padded to two digits.
func Format(d time.Duration, msSep string, msDigits int) string {
	total := int(d / time.Millisecond)
	hours := total / (60 * 60 * 1000)
	minutes := total % (60 * 60 * 1000) / (60 * 1000)
	seconds := total % (60 * 1000) / 1000
	milliseconds := total % 1000 / pow10(3-msDigits)
	return fmt.Sprintf("%02d:%02d:%02d%s%0*d", hours, minutes, seconds, msSep, msDigits, milliseconds)
}

// ParseSRT reads an SRT timestamp with a comma millisecond separator.
func ParseSRT(raw string) (time.Duration, error) {
	return Parse(raw, srtMillisecondSeparator)
}

// FormatSRT renders d as "HH:MM:SS,mmm".
func FormatSRT(d time.Duration) string {
	return Format(d, srtMillisecondSeparator, 3)
}

// ParseWebVTT reads a WebVTT timestamp with a period millisecond separator.
// Both "HH:MM:SS.mmm" and the short "MM:SS.mmm" form are accepted.
func ParseWebVTT(raw string) (time.Duration, error) {
	return Parse(raw, webvttMillisecondSeparator)
}

// FormatWebVTT renders d as "HH:MM:SS.mmm".
func FormatWebVTT(d time.Duration) string {
	return Format(d, webvttMillisecondSeparator, 3)
}

func parseClockFields(fields []string, raw string) (int, int, error) {
	first, err := parseClockField(fields[0], raw)
	if err != nil {
		return 0, 0, err
	}
	second, err := parseClockField(fields[1], raw)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

func parseClockField(field, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("timecode: parse segment %q in %q: %w", field, raw, err)
	}
	return value, nil
}

func pow10(exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= 10
	}
	return result
}
