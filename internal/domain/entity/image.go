package entity

// ImageAsset picture embedded in a sheet. Only lives during extraction.
type ImageAsset struct {
	Ordinal   int    // position in extraction order
	Cell      string // anchor cell, e.g. "B3"
	AnchorRow int    // 1-based sheet row of the anchor; <= 0 when unknown
	Extension string
	Data      []byte
}

// HasAnchor reports whether the anchor row could be read
func (a ImageAsset) HasAnchor() bool {
	return a.AnchorRow > 0
}
