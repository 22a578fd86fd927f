package urlstate

import (
	"errors"

	"github.com/jpalmerr/scanboard"
)

// Bind keeps loc in sync with st.
//
// The current state is written immediately, then the whole state is
// re-encoded after every dispatch and written under key with
// [ModeReplace], so no history entries are created. The returned function
// stops the synchronization and is safe to call more than once.
func Bind(st *scanboard.Store, c *Codec, loc Location, key string) (unbind func(), err error) {
	if st == nil {
		return nil, errors.New("store cannot be nil")
	}
	if c == nil {
		return nil, errors.New("codec cannot be nil")
	}
	if loc == nil {
		return nil, errors.New("location cannot be nil")
	}
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	write := func(s scanboard.State) {
		encoded, err := c.Encode(s)
		if err != nil {
			c.logger.Error("failed to encode state",
				"store_id", st.ID(),
				"error", err.Error(),
			)
			return
		}
		loc.Navigate(key, encoded, ModeReplace)
		c.logger.Debug("state written to location",
			"store_id", st.ID(),
			"revision", s.Revision,
			"bytes", len(encoded),
		)
	}

	write(st.Snapshot())
	return st.Subscribe(write), nil
}

// Open reads the encoded state under key from loc once, creates a store
// seeded with it, and binds the store back to loc.
//
// A missing or corrupt value falls back to the codec's default state; it is
// never an error. opts are applied after the seed.
func Open(loc Location, key string, c *Codec, opts ...scanboard.Option) (*scanboard.Store, func(), error) {
	if loc == nil {
		return nil, nil, errors.New("location cannot be nil")
	}
	if c == nil {
		return nil, nil, errors.New("codec cannot be nil")
	}

	seed := c.DecodeOrDefault(loc.Get(key))
	storeOpts := append([]scanboard.Option{
		scanboard.WithSeed(seed),
		scanboard.WithFeatures(c.Features()),
		scanboard.WithPalette(c.Palette()...),
	}, opts...)

	st, err := scanboard.New(storeOpts...)
	if err != nil {
		return nil, nil, err
	}

	unbind, err := Bind(st, c, loc, key)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Info("state store opened from location",
		"store_id", st.ID(),
		"key", key,
		"selected", seed.Selection.Len(),
		"views", seed.Views.Len(),
	)
	return st, unbind, nil
}
