package catalog

import (
	"bufio"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// MaxDatagramSize bounds the EVENTS response the loaded catalog must fit
// into; see spec.md §4.1/§4.2.
const MaxDatagramSize = 65507

// minDescriptionLen and maxDescriptionLen bound a wire description per
// spec.md §3.
const (
	minDescriptionLen = 1
	maxDescriptionLen = 255
)

var logger = logrus.WithFields(logrus.Fields{"component": "catalog.loader"})

// Load reads the events file (spec.md §6): alternating lines of
// description and ticket count. It stops reading once adding the next
// event would overflow the EVENTS datagram cap, per the running
// prefix-sum rule in spec.md §4.2 ("7 + desc_len, starting from 1 for the
// opcode byte"). Any malformed line is StartupFatal.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("open events file %q: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxDescriptionLen+1)

	var events []Event
	size := 1 // opcode byte
	truncated := false

	for {
		if !scanner.Scan() {
			break
		}
		description := []byte(scanner.Text())

		if !scanner.Scan() {
			return nil, errors.Errorf("events file %q: description without a matching ticket count line", path)
		}
		countLine := scanner.Text()

		descLen := len(description)
		if descLen < minDescriptionLen || descLen > maxDescriptionLen {
			return nil, errors.Errorf("events file %q: description length %d out of range 1..255", path, descLen)
		}

		count, err := strconv.ParseUint(countLine, 10, 16)
		if err != nil {
			return nil, errors.Errorf("events file %q: ticket count %q is not a valid uint16: %w", path, countLine, err)
		}

		entrySize := 7 + descLen
		if size+entrySize > MaxDatagramSize {
			truncated = true
			break
		}
		size += entrySize

		events = append(events, Event{
			ID:               uint32(len(events)),
			Description:      description,
			AvailableTickets: uint16(count),
			InitialTickets:   uint16(count),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("read events file %q: %w", path, err)
	}

	if truncated {
		logger.Warnf("events file %q truncated at %d events to stay within the %d-byte EVENTS cap", path, len(events), MaxDatagramSize)
	}
	logger.Infof("loaded %d events from %q", len(events), path)

	return New(events), nil
}
