package storage

import (
	"encoding/base64"
	"strings"

	"foodgram/domain"
)

// DecodeBase64Image accepts a data URL ("data:image/png;base64,...") or a bare base64
// payload and returns the decoded bytes once they sniff as an allowed image type.
func DecodeBase64Image(data string) ([]byte, error) {
	payload := strings.TrimSpace(data)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ";base64,")
		if idx < 0 {
			return nil, domain.ErrImageInvalid
		}
		payload = payload[idx+len(";base64,"):]
	}
	if payload == "" {
		return nil, domain.ErrImageInvalid
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.ErrImageInvalid
	}
	if _, err := DetectType(content, AllowImage...); err != nil {
		return nil, domain.ErrImageInvalid
	}
	return content, nil
}
