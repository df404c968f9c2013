package horoscope

// Placeholder is served for every content type that could not be fetched
var Placeholder = []byte("Not available\n")

// Horoscope holds the immutable text of every ContentType for one Source.
// A zero value serves the placeholder for all slots.
type Horoscope struct {
	texts [NumContentTypes][]byte
}

// New builds a Horoscope from fetched texts. Missing or empty slots fall
// back to the placeholder so every ContentType resolves to some bytes.
func New(texts map[ContentType][]byte) *Horoscope {
	h := &Horoscope{}
	for _, t := range ContentTypes() {
		text := texts[t]
		if len(text) == 0 {
			text = Placeholder
		}
		h.texts[t] = append([]byte(nil), text...)
	}
	return h
}

// Bytes returns the full text for t. Callers must not modify the result.
func (h *Horoscope) Bytes(t ContentType) []byte {
	if h == nil || !t.Valid() || h.texts[t] == nil {
		return Placeholder
	}
	return h.texts[t]
}

// Len returns the size in bytes of the text for t
func (h *Horoscope) Len(t ContentType) int {
	return len(h.Bytes(t))
}

// Slice returns the byte range [offset, offset+length) of the text for t,
// clamped to its end. Reads past the end yield an empty slice.
func (h *Horoscope) Slice(t ContentType, offset int64, length int) []byte {
	text := h.Bytes(t)
	size := int64(len(text))
	if offset < 0 {
		offset = 0
	}
	if length <= 0 || offset >= size {
		return []byte{}
	}
	end := offset + int64(length)
	if end > size {
		end = size
	}
	out := make([]byte, end-offset)
	copy(out, text[offset:end])
	return out
}
