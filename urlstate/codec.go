package urlstate

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/jpalmerr/scanboard"
)

var (
	// ErrCorruptState wraps every decoding failure: bad base64, bad escaping,
	// malformed JSON, or a document that does not describe a valid state.
	ErrCorruptState = errors.New("corrupt persisted state")

	// ErrUnsupportedVersion is wrapped when the document version is unknown.
	ErrUnsupportedVersion = errors.New("unsupported schema version")

	// ErrUnencodable is returned by [EncodeDocument] for a document holding
	// a string that is not valid UTF-8, which JSON cannot carry unchanged.
	ErrUnencodable = errors.New("state cannot be encoded")

	// ErrNoState is returned by [Codec.Decode] for an empty string.
	ErrNoState = errors.New("no persisted state")
)

// Codec converts states to and from URL-safe strings.
//
// A Codec validates decoded states against its palette and feature domain,
// which must match the store the state is destined for.
type Codec struct {
	palette  []scanboard.Slot
	features scanboard.FeatureSet
	logger   *slog.Logger
}

// codecConfig holds mutable state during Codec construction.
type codecConfig struct {
	palette  []scanboard.Slot
	features *scanboard.FeatureSet
	logger   *slog.Logger
}

// Option configures a [Codec] during construction.
type Option func(*codecConfig) error

// WithPalette sets the palette decoded selections are validated against.
// Defaults to [scanboard.DefaultPalette].
func WithPalette(slots ...scanboard.Slot) Option {
	return func(cfg *codecConfig) error {
		if _, err := scanboard.NewSelectionPool(slots); err != nil {
			return err
		}
		cfg.palette = append([]scanboard.Slot(nil), slots...)
		return nil
	}
}

// WithFeatures sets the feature domain decoded views are validated against.
// Defaults to [scanboard.DefaultFeatures].
func WithFeatures(fs scanboard.FeatureSet) Option {
	return func(cfg *codecConfig) error {
		if fs.Len() == 0 {
			return errors.New("feature set cannot be empty")
		}
		cfg.features = &fs
		return nil
	}
}

// WithLogger sets the logger used to report decoding fallbacks.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *codecConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// NewCodec creates a codec with the given options.
func NewCodec(opts ...Option) (*Codec, error) {
	cfg := &codecConfig{
		palette: append([]scanboard.Slot(nil), scanboard.DefaultPalette...),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	features := scanboard.DefaultFeatures()
	if cfg.features != nil {
		features = *cfg.features
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Codec{
		palette:  cfg.palette,
		features: features,
		logger:   logger,
	}, nil
}

// Palette returns a copy of the codec's palette.
func (c *Codec) Palette() []scanboard.Slot {
	return append([]scanboard.Slot(nil), c.palette...)
}

// Features returns the codec's feature domain.
func (c *Codec) Features() scanboard.FeatureSet {
	return c.features
}

// Default returns the seed state used when nothing valid is persisted.
func (c *Codec) Default() scanboard.State {
	// palette and features were validated in NewCodec
	s, _ := scanboard.NewState(c.palette, c.features)
	return s
}

// Encode serializes the persisted fields of s into a URL-safe string.
func (c *Codec) Encode(s scanboard.State) (string, error) {
	return EncodeDocument(NewDocument(s))
}

// EncodeDocument serializes a document into a URL-safe string.
func EncodeDocument(d Document) (string, error) {
	if err := d.checkUTF8(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnencodable, err)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}
	escaped := url.QueryEscape(string(data))
	return base64.RawURLEncoding.EncodeToString([]byte(escaped)), nil
}

// Decode parses a string produced by [Codec.Encode].
//
// Returns an error wrapping [ErrNoState] for an empty string and
// [ErrCorruptState] for anything that does not decode to a valid state.
func (c *Codec) Decode(raw string) (scanboard.State, error) {
	doc, err := DecodeDocument(raw)
	if err != nil {
		return scanboard.State{}, err
	}
	s, err := doc.State(c.palette, c.features)
	if err != nil {
		return scanboard.State{}, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	return s, nil
}

// DecodeDocument reverses the transport encoding and parses the JSON
// document without validating it against a palette or domain.
func DecodeDocument(raw string) (Document, error) {
	if raw == "" {
		return Document{}, ErrNoState
	}
	escaped, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Document{}, fmt.Errorf("%w: base64: %w", ErrCorruptState, err)
	}
	text, err := url.QueryUnescape(string(escaped))
	if err != nil {
		return Document{}, fmt.Errorf("%w: unescape: %w", ErrCorruptState, err)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: json: %w", ErrCorruptState, err)
	}
	if dec.More() {
		return Document{}, fmt.Errorf("%w: trailing data after document", ErrCorruptState)
	}
	if doc.Version != SchemaVersion {
		return Document{}, fmt.Errorf("%w: %w: %d", ErrCorruptState, ErrUnsupportedVersion, doc.Version)
	}
	return doc, nil
}

// DecodeOrDefault decodes raw, falling back to [Codec.Default] when raw is
// empty or corrupt. Corrupt input is logged; it is never returned as an error.
func (c *Codec) DecodeOrDefault(raw string) scanboard.State {
	s, err := c.Decode(raw)
	if err == nil {
		return s
	}
	if errors.Is(err, ErrNoState) {
		c.logger.Debug("no persisted state, using defaults")
	} else {
		c.logger.Warn("discarding corrupt persisted state",
			"error", err.Error(),
			"length", len(raw),
		)
	}
	return c.Default()
}
