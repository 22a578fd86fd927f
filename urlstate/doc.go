// Package urlstate round-trips scanboard state through a single URL query
// value, so a view of the analysis can be bookmarked and shared.
//
// The wire format is a versioned JSON [Document]. Encoding marshals the
// document, percent-escapes the JSON text, and encodes the result with the
// unpadded URL-safe base64 alphabet. Decoding reverses each step and then
// validates the document against the palette and feature domain the
// [Codec] was configured with. Any failure wraps [ErrCorruptState].
//
// [Bind] keeps a [Location] in sync with a store by re-encoding the whole
// state after every dispatch and replacing the current history entry. The
// cost is linear in the size of the state per dispatch.
//
// Typical setup reads the location once and binds the resulting store:
//
//	codec, _ := urlstate.NewCodec()
//	loc, _ := urlstate.NewMemoryLocation(rawQuery)
//	store, unbind, err := urlstate.Open(loc, urlstate.DefaultKey, codec)
//	if err != nil {
//	    return err
//	}
//	defer unbind()
package urlstate
