package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/log"
	"github.com/san-kum/easelab/internal/motion"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// ErrNotFound indicates a capture id with no stored metadata.
var ErrNotFound = errors.New("storage: capture not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type Metadata struct {
	ID        string             `json:"id"`
	Category  string             `json:"category"`
	Variant   string             `json:"variant"`
	Yoyo      bool               `json:"yoyo"`
	Edited    bool               `json:"edited"`
	Code      string             `json:"code,omitempty"`
	Error     string             `json:"error,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Frames    int                `json:"frames"`
	Settling  int                `json:"settling_frames,omitempty"`
	Targets   []string           `json:"targets"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a capture under a new id. code is the edited source, if any.
func (s *Store) Save(res *capture.Result, code string) (string, error) {
	id := uuid.NewString()
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:        id,
		Category:  res.Category,
		Variant:   res.Variant,
		Yoyo:      res.Yoyo,
		Edited:    res.Edited,
		Code:      code,
		Timestamp: time.Now(),
		Dt:        res.Dt,
		Duration:  res.Duration(),
		Frames:    len(res.Frames),
		Settling:  res.SettlingFrames(),
		Targets:   res.Targets,
		Metrics:   res.Metrics,
	}
	if res.Err != nil {
		meta.Error = res.Err.Error()
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, res); err != nil {
		return "", err
	}

	log.Info(log.CatStorage, "capture saved", "id", id, "category", res.Category, "variant", res.Variant)
	return id, nil
}

// WriteCSV writes one row per frame and target: time, target, then every
// recorded channel.
func WriteCSV(out io.Writer, res *capture.Result) error {
	w := csv.NewWriter(out)

	channels := capture.Channels()
	header := []string{"time", "target"}
	for _, k := range channels {
		header = append(header, string(k))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range res.Frames {
		for i, name := range res.Targets {
			row := []string{strconv.FormatFloat(f.Time, 'f', 6, 64), name}
			for _, k := range channels {
				v := f.Styles[i].Get(k)
				if k.Textual() {
					row = append(row, v.Text)
				} else {
					row = append(row, strconv.FormatFloat(v.Num, 'f', 6, 64))
				}
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			log.Warn(log.CatStorage, "skipping unreadable capture", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}

	return &meta, nil
}

// LoadResult reads a stored capture back into a result.
func (s *Store) LoadResult(id string) (*capture.Result, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, id, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	res := &capture.Result{
		Category: meta.Category,
		Variant:  meta.Variant,
		Yoyo:     meta.Yoyo,
		Edited:   meta.Edited,
		Dt:       meta.Dt,
		Targets:  meta.Targets,
		Metrics:  meta.Metrics,
	}
	if meta.Error != "" {
		res.Err = errors.New(meta.Error)
	}
	if err := readFrames(file, res); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	for i := 0; i < meta.Settling && i < len(res.Frames); i++ {
		res.Frames[i].Settling = true
	}
	return res, nil
}

func readFrames(in io.Reader, res *capture.Result) error {
	r := csv.NewReader(in)
	records, err := r.ReadAll()
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return nil
	}

	header := records[0]
	if len(header) < 2 {
		return fmt.Errorf("frames header has %d columns", len(header))
	}
	keys := make([]motion.Key, len(header)-2)
	for i, name := range header[2:] {
		k, ok := motion.LookupKey(name)
		if !ok {
			return fmt.Errorf("%w: column %q", motion.ErrUnknownProperty, name)
		}
		keys[i] = k
	}

	index := make(map[string]int, len(res.Targets))
	for i, t := range res.Targets {
		index[t] = i
	}

	var frame *capture.Frame
	for line, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return fmt.Errorf("row %d: time: %w", line+2, err)
		}
		if frame == nil || frame.Time != t {
			res.Frames = append(res.Frames, capture.Frame{
				Time:   t,
				Styles: make([]motion.Style, len(res.Targets)),
			})
			frame = &res.Frames[len(res.Frames)-1]
		}

		ti, ok := index[record[1]]
		if !ok {
			return fmt.Errorf("row %d: unknown target %q", line+2, record[1])
		}
		style := motion.Baseline()
		for j, k := range keys {
			field := record[j+2]
			v := motion.Text(field)
			if !k.Textual() {
				n, err := strconv.ParseFloat(field, 64)
				if err != nil {
					return fmt.Errorf("row %d: %s: %w", line+2, k, err)
				}
				v = motion.Num(n)
			}
			if err := style.Set(k, v); err != nil {
				return fmt.Errorf("row %d: %w", line+2, err)
			}
		}
		frame.Styles[ti] = style
	}
	return nil
}
