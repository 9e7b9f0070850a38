package actionenv

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/itchyny/gojq"
)

// sourceBranchQuery extracts the branch that triggered the job from the
// event payload. Pull-request events carry it in the head ref, push
// events in the ref field.
const sourceBranchQuery = `.pull_request.head.ref // .ref // empty`

// Event is the parsed webhook event payload of the running Actions job.
type Event struct {
	// JSON is the raw payload.
	JSON []byte
	// unmarshalled is the payload decoded into generic types, the
	// form gojq queries operate on.
	unmarshalled any
}

// LoadEvent reads and parses the event payload file at path.
func LoadEvent(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event payload failed: %w", err)
	}

	var unmarshalled any
	if err := json.Unmarshal(data, &unmarshalled); err != nil {
		return nil, fmt.Errorf("unmarshaling event payload failed: %w", err)
	}

	return &Event{JSON: data, unmarshalled: unmarshalled}, nil
}

// Query evaluates a jq expression against the event payload and returns
// the single result as string.
// An empty string is returned when the query yields no result.
func (e *Event) Query(jqQuery string) (string, error) {
	query, err := gojq.Parse(jqQuery)
	if err != nil {
		return "", fmt.Errorf("parsing jq query %q failed: %w", jqQuery, err)
	}

	iter := query.Run(e.unmarshalled)

	res, ok := iter.Next()
	if !ok {
		return "", nil
	}

	if err, isErr := res.(error); isErr {
		return "", fmt.Errorf("jq query %q returned an error: %w", jqQuery, err)
	}

	if _, hasMore := iter.Next(); hasMore {
		return "", fmt.Errorf("jq query %q returned multiple results, expected 1", jqQuery)
	}

	str, isStr := res.(string)
	if !isStr {
		return "", fmt.Errorf("jq query %q returned a %T, expected a string", jqQuery, res)
	}

	return str, nil
}

// SourceBranch derives the branch name that triggered the event.
// An empty string is returned when the payload does not reference a
// branch.
func (e *Event) SourceBranch() (string, error) {
	ref, err := e.Query(sourceBranchQuery)
	if err != nil {
		return "", err
	}

	return strings.TrimPrefix(ref, "refs/heads/"), nil
}
