package search

import (
	"fmt"
	"strconv"
	"strings"
)

const metaField = "meta"

// Extract returns the text of a field of record. Paths are dotted; the first segment names a typed
// field, or "meta" to walk the record's free-form metadata. Anything missing yields "".
func Extract(record Record, path string) string {
	segments := strings.Split(path, ".")
	head, rest := segments[0], segments[1:]

	if head == metaField {
		return lookupMeta(recordMeta(record), rest)
	}
	if len(rest) > 0 {
		return ""
	}

	switch r := record.(type) {
	case Project:
		switch head {
		case "id":
			return r.ID
		case "title":
			return r.Title
		case "slug":
			return r.Slug
		case "description":
			return r.Description
		case "client":
			return r.Client
		case "category":
			return r.Category
		case "event_type":
			return r.EventType
		case "venue":
			return r.Venue
		case "location":
			return r.Location
		case "image_urls":
			return strings.Join(r.ImageURLs, " ")
		}
	case Service:
		switch head {
		case "id":
			return r.ID
		case "name":
			return r.Name
		case "title":
			return r.Title
		case "slug":
			return r.Slug
		case "summary":
			return r.Summary
		case "description":
			return r.Description
		case "features":
			return strings.Join(r.Features, " ")
		case "category":
			return r.Category
		case "image_url":
			return r.ImageURL
		}
	case Article:
		switch head {
		case "id":
			return r.ID
		case "title":
			return r.Title
		case "slug":
			return r.Slug
		case "excerpt":
			return r.Excerpt
		case "body":
			return r.Body
		case "tags":
			return strings.Join(r.Tags, " ")
		case "cover_image":
			return r.CoverImage
		}
	case Testimonial:
		switch head {
		case "id":
			return r.ID
		case "author":
			return r.Author
		case "role":
			return r.Role
		case "event":
			return r.Event
		case "quote":
			return r.Quote
		case "photo":
			return r.Photo
		case "rating":
			if r.Rating == 0 {
				return ""
			}
			return strconv.Itoa(r.Rating)
		}
	}

	return ""
}

func recordMeta(record Record) map[string]any {
	switch r := record.(type) {
	case Project:
		return r.Meta
	case Service:
		return r.Meta
	case Article:
		return r.Meta
	case Testimonial:
		return r.Meta
	}
	return nil
}

func lookupMeta(meta map[string]any, segments []string) string {
	if len(segments) == 0 {
		return ""
	}

	var current any = meta
	for _, segment := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		if current, ok = m[segment]; !ok {
			return ""
		}
	}

	return stringify(current)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, " ")
	case map[string]any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
