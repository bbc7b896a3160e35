package restclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"sort"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

type encodedBody struct {
	reader      io.Reader
	contentType string
}

// encodePayload renders a payload in the encoding the resource expects.
// override adds the method-override marker for POST-as-PUT updates.
func encodePayload(res domain.Resource, p domain.Payload, override bool) (*encodedBody, error) {
	if res.Encoding == domain.EncodingMultipart {
		return encodeMultipart(p, override)
	}
	if p.Attachment != nil {
		return nil, fmt.Errorf("%s accepts no attachment", res.Name)
	}
	return encodeJSON(p, override)
}

func encodeJSON(p domain.Payload, override bool) (*encodedBody, error) {
	fields := make(map[string]string, len(p.Fields)+1)
	for k, v := range p.Fields {
		fields[k] = v
	}
	if override {
		fields[domain.MethodOverrideField] = "PUT"
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	return &encodedBody{reader: bytes.NewReader(raw), contentType: "application/json"}, nil
}

func encodeMultipart(p domain.Payload, override bool) (*encodedBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.WriteField(name, p.Fields[name]); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}
	if override {
		if err := w.WriteField(domain.MethodOverrideField, "PUT"); err != nil {
			return nil, fmt.Errorf("write method override: %w", err)
		}
	}

	if att := p.Attachment; att != nil && len(att.Content) > 0 {
		part, err := w.CreateFormFile(att.Field, att.FileName)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(att.Content); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}
	return &encodedBody{reader: &buf, contentType: w.FormDataContentType()}, nil
}
