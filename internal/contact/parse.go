package contact

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

const formContentType = "application/x-www-form-urlencoded"

// ParseBody extracts the submission fields from a request body. A body that
// cannot be decoded yields an empty Submission rather than an error, so that
// it is reported to the caller as missing fields.
func ParseBody(req Request) Submission {
	fields := parseFields(req)
	return Submission{
		Name:     fields["name"],
		Email:    fields["email"],
		Message:  fields["message"],
		Language: ParseLanguage(fields["language"]),
	}
}

func parseFields(req Request) map[string]string {
	if req.Body == "" {
		return nil
	}

	raw := req.Body
	if req.IsBase64Encoded {
		decoded, err := decodeBase64(raw)
		if err != nil {
			return nil
		}
		raw = string(decoded)
	}

	contentType := strings.ToLower(req.Headers.Get("Content-Type"))
	if strings.Contains(contentType, formContentType) {
		return parseForm(raw)
	}
	return parseJSON(raw)
}

// decodeBase64 accepts padded and unpadded standard base64.
func decodeBase64(raw string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err == nil {
		return decoded, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(raw, "="))
}

func parseForm(raw string) map[string]string {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil
	}
	fields := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			fields[key] = vals[len(vals)-1]
		}
	}
	return fields
}

func parseJSON(raw string) map[string]string {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil
	}
	fields := make(map[string]string, len(doc))
	for key, v := range doc {
		fields[key] = fieldText(v)
	}
	return fields
}

// fieldText renders a JSON value as form text. Falsy and structured values are
// treated as absent.
func fieldText(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return ""
	default:
		return ""
	}
}
