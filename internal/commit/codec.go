package commit

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"minigit/shared/utils"
)

// The on-disk record format is line-oriented text:
//
//	message:<text>
//	timestamp:<text>
//	parents:<space-separated fingerprints, trailing space permitted>
//	files:
//	<filename>:<blob fingerprint>
//	...
//
// The files section runs until a blank line or end of file. Filenames must
// not contain ':' or newline.

// Marshal renders a record in the on-disk format. File entries are written
// in sorted name order.
func Marshal(r *Record) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "message:%s\n", r.Message)
	fmt.Fprintf(&b, "timestamp:%s\n", r.Timestamp)
	b.WriteString("parents:")
	for _, parent := range r.Parents {
		b.WriteString(parent)
		b.WriteString(" ")
	}
	b.WriteString("\n")
	b.WriteString("files:\n")
	for _, name := range utils.SortedKeys(r.Files) {
		fmt.Fprintf(&b, "%s:%s\n", name, r.Files[name])
	}
	return b.Bytes()
}

// Parse reads a record back from its on-disk form. The fingerprint is the
// storage key, not part of the payload, so the caller supplies it.
func Parse(fingerprint string, data []byte) (*Record, error) {
	r := &Record{
		Fingerprint: fingerprint,
		Files:       make(map[string]string),
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	sawMessage := false
	inFiles := false

	for scanner.Scan() {
		line := scanner.Text()

		if inFiles {
			if line == "" {
				break
			}
			name, blob, ok := strings.Cut(line, ":")
			if !ok {
				return nil, fmt.Errorf("malformed file entry %q", line)
			}
			r.Files[name] = blob
			continue
		}

		switch {
		case strings.HasPrefix(line, "message:"):
			r.Message = strings.TrimPrefix(line, "message:")
			sawMessage = true
		case strings.HasPrefix(line, "timestamp:"):
			r.Timestamp = strings.TrimPrefix(line, "timestamp:")
		case strings.HasPrefix(line, "parents:"):
			r.Parents = strings.Fields(strings.TrimPrefix(line, "parents:"))
		case line == "files:":
			inFiles = true
		default:
			return nil, fmt.Errorf("unexpected line %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawMessage {
		return nil, fmt.Errorf("record has no message line")
	}

	return r, nil
}
