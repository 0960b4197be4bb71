package datafile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Entry is one "Key = value" line of an estimator configuration file.
type Entry struct {
	Key, Value string
}

// Entries lists the configuration the estimators read for this run.
func (r RunSet) Entries(mode, dataSource string) []Entry {
	n := fmt.Sprintf("%04d", r.Index)
	return []Entry{
		{"Mode", mode},
		{"DataSource", dataSource},
		{"GyroData", r.Gyro},
		{"AccData", r.Acc},
		{"MagData", r.Mag},
		{"QuatData", r.Quat},
		{"AccData_ideal", r.AccIdeal},
		{"MagData_ideal", r.MagIdeal},
		{"GyroData_true", r.GyroTrue},
		{"QuatDataResult", "quatResult_" + n},
		{"EulerDataResult", "eulerResult_" + n},
	}
}

// WriteConfig writes entries as "Key = value" lines.
func WriteConfig(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, e := range entries {
		fmt.Fprintf(w, "%s = %s\n", e.Key, e.Value)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadConfig parses "Key = value" lines, skipping blanks and # comments.
func ReadConfig(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("read %s: %q: %w", path, line, ErrMalformed)
		}
		m[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return m, sc.Err()
}
