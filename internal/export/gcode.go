// Package export writes coverage paths as G-code, to a file or streamed to
// a motion controller over a serial line.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/coverbot/pkg/coverage"
	"github.com/Faultbox/coverbot/pkg/math"
)

// DefaultFeedRate is the G1 feed in units per minute.
const DefaultFeedRate = 1200

// Options controls G-code output.
type Options struct {
	FeedRate  float64
	Precision int // digits after the decimal point
	// Header adds unit/absolute-mode preamble and a summary comment.
	Header bool
}

// DefaultOptions returns millimetre, absolute-mode output at DefaultFeedRate.
func DefaultOptions() Options {
	return Options{FeedRate: DefaultFeedRate, Precision: 4, Header: true}
}

// Move formats one linear move.
func Move(p math.Vec3, feed float64, precision int) string {
	return "G1 X" + num(p.X, precision) +
		" Y" + num(p.Y, precision) +
		" Z" + num(p.Z, precision) +
		" F" + num(feed, precision)
}

func num(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if s == "-"+strconv.FormatFloat(0, 'f', precision, 64) {
		return s[1:]
	}
	return s
}

// Lines returns the G-code program for path, one command per entry.
func Lines(path coverage.OrderedPath, opts Options) []string {
	lines := make([]string, 0, path.Len()+3)
	if opts.Header {
		lines = append(lines,
			fmt.Sprintf("; coverbot path: %d waypoints, travel %s", path.Len(), num(path.TravelLength(), opts.Precision)),
			"G21",
			"G90",
		)
	}
	for i := 0; i < path.Len(); i++ {
		lines = append(lines, Move(path.At(i), opts.FeedRate, opts.Precision))
	}
	return lines
}

// WriteGCode writes path to w as newline-terminated G-code.
func WriteGCode(w io.Writer, path coverage.OrderedPath, opts Options) error {
	bw := bufio.NewWriter(w)
	for _, line := range Lines(path, opts) {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
