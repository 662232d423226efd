package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the format used for CreationTime / CreatedAt fields stored
// in the document store.
const TimeLayout = "2006-01-02 15:04:05"

// Photo is a single gallery entry. Field names match the documents in the
// PhotoGallery collection, originally written by the legacy application and
// carried over by the migration script.
type Photo struct {
	PhotoID      string `json:"photo_id" bson:"PhotoID"`
	UserID       string `json:"user_id" bson:"UserID"`
	CreationTime string `json:"creation_time" bson:"CreationTime"`
	Title        string `json:"title" bson:"Title"`
	Description  string `json:"description" bson:"Description"`
	Tags         string `json:"tags" bson:"Tags"`
	URL          string `json:"url" bson:"URL"`
	ExifData     string `json:"exif_data" bson:"ExifData"`
}

// TagList splits the comma-joined Tags field for display.
func (p *Photo) TagList() []string {
	return strings.Split(p.Tags, ",")
}

// DecodeExif deserializes the ExifData field back into the tag→value
// mapping it was serialized from at upload time.
func (p *Photo) DecodeExif() (map[string]string, error) {
	exif := map[string]string{}
	if p.ExifData == "" {
		return exif, nil
	}
	if err := json.Unmarshal([]byte(p.ExifData), &exif); err != nil {
		return nil, err
	}
	return exif, nil
}

// EncodeExif serializes an extracted tag→value mapping for storage.
func EncodeExif(tags map[string]string) (string, error) {
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// TimestampID renders a time as a millisecond-precision string identifier,
// the scheme the legacy application used for record IDs.
func TimestampID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
