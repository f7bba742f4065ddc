package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, fn func()) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}()
	fn()

	var line map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", buf.String(), err)
	}
	return line
}

func TestInfo(t *testing.T) {
	line := capture(t, func() { Info("match finished", Fields{"winner": 1}) })

	if line["level"] != "info" || line["msg"] != "match finished" {
		t.Errorf("Expected info line, got %v", line)
	}
	if line["winner"] != float64(1) {
		t.Errorf("Expected winner field 1, got %v", line["winner"])
	}
	if _, ok := line["ts"]; !ok {
		t.Error("Expected a timestamp")
	}
}

func TestErrorIncludesErrorText(t *testing.T) {
	fields := Fields{"seed": 7}
	line := capture(t, func() { Error("match aborted", errors.New("boom"), fields) })

	if line["level"] != "error" || line["error"] != "boom" {
		t.Errorf("Expected error line with error text, got %v", line)
	}
	if _, leaked := fields["error"]; leaked {
		t.Error("Expected caller fields to be left untouched")
	}
}
