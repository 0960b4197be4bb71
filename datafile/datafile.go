// Package datafile reads and writes the tagged plain-text data files consumed
// by the orientation estimators:
//
//	[GLOBAL_DATA]
//	<numSamples>
//	10000
//	</numSamples>
//	[GYRO_DATA]
//	<gyro_x>*********(double)
//	0.0123
//	...
//	</gyro_x>
//
// Values are written in the shortest decimal form that parses back to the
// same float64, so a write followed by a read is lossless.
package datafile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	GlobalSection = "GLOBAL_DATA"
	NumSamplesKey = "numSamples"
	typeTag       = "*********(double)"

	maxSamples = math.MaxInt32
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrKeyNotFound     = errors.New("key not found")
	ErrNotEnoughValues = errors.New("not enough values")
	ErrMalformed       = errors.New("malformed data file")
)

// Series is one tagged column of values.
type Series struct {
	Key    string
	Values []float64
}

// Section groups the series that follow a [NAME] header.
type Section struct {
	Name   string
	Series []Series
}

// File is a parsed data file.
type File struct {
	NumSamples int
	Sections   []Section
}

// Write emits f in the tagged format.
func Write(w io.Writer, f *File) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "[%s]\n<%s>\n%d\n</%s>\n", GlobalSection, NumSamplesKey, f.NumSamples, NumSamplesKey)
	for _, s := range f.Sections {
		fmt.Fprintf(bw, "[%s]\n", s.Name)
		for _, ser := range s.Series {
			fmt.Fprintf(bw, "<%s>%s\n", ser.Key, typeTag)
			for _, v := range ser.Values {
				bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
				bw.WriteByte('\n')
			}
			fmt.Fprintf(bw, "</%s>\n", ser.Key)
		}
	}
	return bw.Flush()
}

// WriteFile creates path and writes f to it.
func WriteFile(path string, f *File) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(out, f); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// Read parses a data file. Every series must hold exactly numSamples values.
func Read(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	f := &File{NumSamples: -1}
	var (
		sec  *Section
		ser  *Series
		line int
	)
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		switch {
		case s == "":
		case ser != nil && s == "</"+ser.Key+">":
			ser = nil
		case ser != nil:
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q in <%s>: %w", line, s, ser.Key, ErrMalformed)
			}
			ser.Values = append(ser.Values, v)
		case strings.HasPrefix(s, "["):
			name := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
			f.Sections = append(f.Sections, Section{Name: name})
			sec = &f.Sections[len(f.Sections)-1]
		case strings.HasPrefix(s, "<") && !strings.HasPrefix(s, "</"):
			end := strings.IndexByte(s, '>')
			if end < 0 || sec == nil {
				return nil, fmt.Errorf("line %d: %q: %w", line, s, ErrMalformed)
			}
			sec.Series = append(sec.Series, Series{Key: s[1:end]})
			ser = &sec.Series[len(sec.Series)-1]
		default:
			return nil, fmt.Errorf("line %d: unexpected %q: %w", line, s, ErrMalformed)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if ser != nil {
		return nil, fmt.Errorf("unterminated <%s>: %w", ser.Key, ErrMalformed)
	}

	n, err := f.Values(GlobalSection, NumSamplesKey)
	if err != nil {
		return nil, err
	}
	if len(n) != 1 {
		return nil, fmt.Errorf("%s holds %d values: %w", NumSamplesKey, len(n), ErrMalformed)
	}
	if v := n[0]; v < 0 || v > maxSamples || v != math.Trunc(v) {
		return nil, fmt.Errorf("%s %g is not a sample count: %w", NumSamplesKey, v, ErrMalformed)
	}
	f.NumSamples = int(n[0])

	// The global section is implied by NumSamples.
	secs := f.Sections[:0]
	for _, s := range f.Sections {
		if s.Name == GlobalSection {
			continue
		}
		for _, ser := range s.Series {
			if len(ser.Values) < f.NumSamples {
				return nil, fmt.Errorf("%s/%s has %d of %d: %w",
					s.Name, ser.Key, len(ser.Values), f.NumSamples, ErrNotEnoughValues)
			}
			if len(ser.Values) > f.NumSamples {
				return nil, fmt.Errorf("%s/%s has %d values, want %d: %w",
					s.Name, ser.Key, len(ser.Values), f.NumSamples, ErrMalformed)
			}
		}
		secs = append(secs, s)
	}
	f.Sections = secs
	return f, nil
}

// ReadFile opens and parses path.
func ReadFile(path string) (*File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	f, err := Read(in)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return f, nil
}

// Values returns the series stored under key in section.
func (f *File) Values(section, key string) ([]float64, error) {
	for _, s := range f.Sections {
		if s.Name != section {
			continue
		}
		for _, ser := range s.Series {
			if ser.Key == key {
				return ser.Values, nil
			}
		}
		return nil, fmt.Errorf("[%s] <%s>: %w", section, key, ErrKeyNotFound)
	}
	return nil, fmt.Errorf("[%s]: %w", section, ErrSectionNotFound)
}
