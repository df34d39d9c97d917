// Package catalog loads the class catalog document a scheduling run starts from.
package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/utils"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

var ErrUnsupportedFormat = errors.New("unsupported catalog format")

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormatFromPath picks the format from the file extension; anything but .json is read as TOML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Load reads, decodes and checks the catalog at path. Any error it returns is a
// configuration defect the caller should not try to recover from.
func Load(path string) (*domain.ScheduleOptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	options, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	return options, nil
}

func Decode(r io.Reader, format Format) (*domain.ScheduleOptions, error) {
	options := &domain.ScheduleOptions{}

	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(options)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			slog.Warn("catalog contains unknown keys", "keys", fmt.Sprint(undecoded))
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(options); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := Check(options); err != nil {
		return nil, err
	}

	return options, nil
}

// Check validates the document structure and every slot notation in it.
func Check(options *domain.ScheduleOptions) error {
	if err := validate.Struct(options); err != nil {
		return err
	}
	return utils.ValidateCatalogSlots(options)
}

// Encode writes options in the given format.
func Encode(w io.Writer, options *domain.ScheduleOptions, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(options)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(options)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Digest is a stable fingerprint of the document, identical for identical catalogs.
func Digest(options *domain.ScheduleOptions) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(options); err != nil {
		return "", err
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
