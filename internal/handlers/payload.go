package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-tracker-api/internal/models"
)

// bindPayload decodes the request body as a JSON object. An empty body or a
// null value yields an empty record. Numbers are kept as json.Number so they
// round-trip through storage unchanged.
func bindPayload(c *gin.Context) (models.Record, error) {
	if c.Request.Body == nil {
		return models.Record{}, nil
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Record{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload models.Record
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode body: trailing data")
	}
	if payload == nil {
		payload = models.Record{}
	}
	return payload, nil
}
