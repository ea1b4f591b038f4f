package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"github.com/aleph-zero/flutterstack/engine"
	"io"
)

type ProcessFunc func(engine.Value) error

// ProcessJsonStream decodes values from either a single JSON array or a
// stream of whitespace separated JSON values (NDJSON), handing each one to
// process in order.
func ProcessJsonStream(reader io.Reader, process ProcessFunc) error {
	br := bufio.NewReader(reader)

	// Peek at the first non-whitespace byte
	var first byte
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading first byte: %w", err)
		}
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
			first = b
			break
		}
	}
	if err := br.UnreadByte(); err != nil {
		return fmt.Errorf("error rewinding stream: %w", err)
	}

	switch first {
	case '[':
		return processJsonArray(br, process)
	default:
		return processJsonValues(br, process)
	}
}

func processJsonArray(reader io.Reader, process ProcessFunc) error {
	decoder := json.NewDecoder(reader)

	tok, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("error reading opening token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("expected opening [")
	}

	for decoder.More() {
		var item engine.Value
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("error decoding array item: %w", err)
		}
		if err := process(item); err != nil {
			return fmt.Errorf("error processing item: %w", err)
		}
	}

	tok, err = decoder.Token()
	if err != nil {
		return fmt.Errorf("error reading closing token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != ']' {
		return fmt.Errorf("expected closing ]")
	}

	return nil
}

func processJsonValues(reader io.Reader, process ProcessFunc) error {
	decoder := json.NewDecoder(reader)

	for {
		var item engine.Value
		if err := decoder.Decode(&item); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("error decoding JSON value: %w", err)
		}
		if err := process(item); err != nil {
			return fmt.Errorf("error processing item: %w", err)
		}
	}

	return nil
}

// CollectValues gathers a JSON stream into a slice, rejecting null elements.
// A positive limit stops decoding with engine.ErrSequenceTooLong as soon as
// the stream holds more than limit values.
func CollectValues(reader io.Reader, limit int) ([]engine.Value, error) {
	values := make([]engine.Value, 0)
	err := ProcessJsonStream(reader, func(v engine.Value) error {
		if !v.IsValid() {
			return fmt.Errorf("element %d is null", len(values))
		}
		if limit > 0 && len(values) == limit {
			return engine.Error{
				ErrorCode: engine.SequenceTooLong,
				Message:   fmt.Sprintf("stream holds more than %d values", limit),
			}
		}
		values = append(values, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}
