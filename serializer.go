package inkdata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/inkdata/inkdata.go/pkg/constants"
	"github.com/inkdata/inkdata.go/pkg/models"
)

// Serializer moves strokes and sketches across byte streams and files in
// the format chosen by its Config.
type Serializer struct {
	config *Config
}

// New returns a Serializer for cfg. A nil cfg means NewConfig().
func New(cfg *Config) *Serializer {
	if cfg == nil {
		cfg = NewConfig()
	}
	if cfg.Logger == nil {
		copied := *cfg
		copied.Logger = nopLogger()
		cfg = &copied
	}
	return &Serializer{config: cfg}
}

// Write encodes v to w.
func (s *Serializer) Write(w io.Writer, v any) error {
	if s.config.Marshaler == nil {
		return constants.ErrNoMarshaler
	}
	return s.config.Marshaler.NewEncoder(w).Encode(v)
}

// Read decodes one value from r into v. With StrictChannels, decoded strokes
// must have channels of equal length.
func (s *Serializer) Read(r io.Reader, v any) error {
	if s.config.Unmarshaler == nil {
		return constants.ErrNoUnmarshaler
	}
	if err := s.config.Unmarshaler.NewDecoder(r).Decode(v); err != nil {
		return err
	}
	if s.config.StrictChannels {
		return validate(v)
	}
	return nil
}

func validate(v any) error {
	switch x := v.(type) {
	case *models.Stroke:
		return x.Validate()
	case *[]models.Stroke:
		for i := range *x {
			if err := (*x)[i].Validate(); err != nil {
				return fmt.Errorf("strokes[%d]: %w", i, err)
			}
		}
	case *models.Sketch:
		for i := range x.Strokes {
			if err := x.Strokes[i].Validate(); err != nil {
				return fmt.Errorf("sketch: strokes[%d]: %w", i, err)
			}
		}
	case *[]models.Sketch:
		for i := range *x {
			if err := validate(&(*x)[i]); err != nil {
				return fmt.Errorf("sketches[%d]: %w", i, err)
			}
		}
	}
	return nil
}

func (s *Serializer) DumpStroke(stroke *models.Stroke, path string) error {
	return s.dump(stroke, path)
}

func (s *Serializer) DumpSketch(sketch *models.Sketch, path string) error {
	return s.dump(sketch, path)
}

func (s *Serializer) LoadStroke(path string) (*models.Stroke, error) {
	var stroke models.Stroke
	if err := s.load(path, &stroke); err != nil {
		return nil, err
	}
	return &stroke, nil
}

func (s *Serializer) LoadStrokes(path string) ([]models.Stroke, error) {
	var strokes []models.Stroke
	if err := s.load(path, &strokes); err != nil {
		return nil, err
	}
	return strokes, nil
}

func (s *Serializer) LoadSketch(path string) (*models.Sketch, error) {
	var sketch models.Sketch
	if err := s.load(path, &sketch); err != nil {
		return nil, err
	}
	return &sketch, nil
}

func (s *Serializer) LoadSketches(path string) ([]models.Sketch, error) {
	var sketches []models.Sketch
	if err := s.load(path, &sketches); err != nil {
		return nil, err
	}
	return sketches, nil
}

func (s *Serializer) dump(v any, path string) (err error) {
	log := s.config.Logger
	defer func() {
		if err != nil {
			log.Error("dump failed", "path", path, "err", err)
			err = &FileError{Op: "dump", Path: path, Err: err}
			return
		}
		log.Debug("dumped", "path", path)
	}()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = s.Write(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Serializer) load(path string, v any) (err error) {
	log := s.config.Logger
	defer func() {
		if err != nil {
			log.Error("load failed", "path", path, "err", err)
			err = &FileError{Op: "load", Path: path, Err: err}
			return
		}
		log.Debug("loaded", "path", path)
	}()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return s.Read(f, v)
}

// DumpsStroke returns the pretty-printed canonical JSON of stroke.
func DumpsStroke(stroke *models.Stroke) string {
	return mustDumps(stroke)
}

// DumpsSketch returns the pretty-printed canonical JSON of sketch.
func DumpsSketch(sketch *models.Sketch) string {
	return mustDumps(sketch)
}

// Encoding a stroke or a sketch cannot fail: non-finite floats are written
// as null and metadata values are valid JSON by construction.
func mustDumps(v any) string {
	data, err := models.JSONMarshaler{}.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// LoadsStroke decodes a stroke from either JSON shape.
func LoadsStroke(s string) (*models.Stroke, error) {
	var stroke models.Stroke
	if err := loads(s, &stroke); err != nil {
		return nil, err
	}
	return &stroke, nil
}

// LoadsStrokes decodes a JSON array of strokes. It fails on the first bad
// stroke.
func LoadsStrokes(s string) ([]models.Stroke, error) {
	var strokes []models.Stroke
	if err := loads(s, &strokes); err != nil {
		return nil, err
	}
	return strokes, nil
}

func LoadsSketch(s string) (*models.Sketch, error) {
	var sketch models.Sketch
	if err := loads(s, &sketch); err != nil {
		return nil, err
	}
	return &sketch, nil
}

func LoadsSketches(s string) ([]models.Sketch, error) {
	var sketches []models.Sketch
	if err := loads(s, &sketches); err != nil {
		return nil, err
	}
	return sketches, nil
}

func loads(s string, v any) error {
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("failed to decode %T: %w", v, err)
	}
	return nil
}
