package blogservice

import (
	"encoding/json"
	"fmt"
	"strings"
)

const wordsPerMinute = 200

// ReadingTime is an estimated reading duration in whole minutes. It is stored as a number
// so it sorts numerically and rendered as "N min".
type ReadingTime int

// EstimateReadingTime counts whitespace separated words and rounds up to whole minutes.
func EstimateReadingTime(body string) ReadingTime {
	words := len(strings.Fields(body))
	return ReadingTime((words + wordsPerMinute - 1) / wordsPerMinute)
}

func (r ReadingTime) String() string {
	return fmt.Sprintf("%d min", int(r))
}

func (r ReadingTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}
