package maintenance

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestStatusMarshalJSON(t *testing.T) {
	b, err := json.Marshal(InProgress)
	assert.NoError(t, err)
	assert.Equal(t, `"in_progress"`, string(b))
}

func TestStatusScan(t *testing.T) {
	var s Status
	assert.NoError(t, s.Scan("completed"))
	assert.Equal(t, Completed, s)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("in_progress")
	assert.True(t, ok)
	assert.Equal(t, InProgress, s)

	_, ok = ParseStatus("broken")
	assert.False(t, ok)
}
