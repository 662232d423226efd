package metadata

import (
	"io"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Fields that are excluded from the stored mapping: maker notes are opaque
// binary blobs that bloat the record without being displayable.
var excludedFields = map[exif.FieldName]bool{
	exif.MakerNote: true,
}

// Extractor reads embedded exif metadata from image files.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

type tagCollector struct {
	tags map[string]string
}

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if excludedFields[name] {
		return nil
	}
	c.tags[string(name)] = tag.String()
	return nil
}

// ReadMetadata returns every recoverable tag→value pair from the file.
// Files without an exif block (PNG uploads, stripped JPEGs) yield an empty
// mapping rather than an error.
func (e *Extractor) ReadMetadata(r io.Reader) (map[string]string, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return map[string]string{}, nil
	}

	collector := &tagCollector{tags: map[string]string{}}
	if err := x.Walk(collector); err != nil {
		return nil, err
	}
	return collector.tags, nil
}
