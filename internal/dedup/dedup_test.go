package dedup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccept(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		previous string
		want     Result
	}{
		{name: "first scan", raw: "123", previous: "", want: Result{Value: "123", Changed: true}},
		{name: "repeat", raw: "123", previous: "123", want: Result{Value: "123"}},
		{name: "new value", raw: "456", previous: "123", want: Result{Value: "456", Changed: true}},
		{name: "empty repeat", raw: "", previous: "", want: Result{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Accept(tt.raw, tt.previous))
		})
	}
}

func TestDeduplicatorSuppressesConsecutiveRepeats(t *testing.T) {
	var d Deduplicator
	var changed []string
	for _, raw := range []string{"123", "123", "123", "456"} {
		if res := d.Accept(raw); res.Changed {
			changed = append(changed, res.Value)
		}
	}

	require.Equal(t, []string{"123", "456"}, changed)
	require.Equal(t, "456", d.Previous())
	accepted, skipped := d.Stats()
	require.Equal(t, 2, accepted)
	require.Equal(t, 2, skipped)
}

func TestDeduplicatorOnlyComparesWithLastValue(t *testing.T) {
	var d Deduplicator
	var changed []string
	for _, raw := range []string{"A", "B", "A"} {
		if res := d.Accept(raw); res.Changed {
			changed = append(changed, res.Value)
		}
	}

	require.Equal(t, []string{"A", "B", "A"}, changed)
}

func TestDeduplicatorNeverChangesTwiceForSameValue(t *testing.T) {
	var d Deduplicator
	inputs := []string{"1", "1", "2", "2", "2", "1", "3", "3", "1", "1"}
	last := ""
	for _, raw := range inputs {
		res := d.Accept(raw)
		if res.Changed {
			require.NotEqual(t, last, res.Value)
			last = res.Value
		}
	}
}
