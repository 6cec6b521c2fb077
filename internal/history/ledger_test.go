package history

import (
	"fmt"
	"github.com/myrjola/veritruth/internal/models"
	"github.com/stretchr/testify/require"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLedger_Record(t *testing.T) {
	ledger := New(DefaultCapacity)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	ledger.now = func() time.Time {
		tick++
		return start.Add(time.Duration(tick) * time.Minute)
	}
	ledger.newID = func() string { return fmt.Sprintf("id-%d", tick) }

	for i := range 11 {
		ledger.Record(models.AnalysisResult{Confidence: i}, fmt.Sprintf("input %d", i))
	}

	items := ledger.Items()
	require.Len(t, items, DefaultCapacity)
	require.Equal(t, 10, items[0].Confidence, "newest first")
	require.Equal(t, "input 10", items[0].InputText)
	require.Equal(t, 1, items[len(items)-1].Confidence, "oldest dropped")
	require.Equal(t, start.Add(11*time.Minute), items[0].Timestamp)
	for i := 1; i < len(items); i++ {
		require.True(t, items[i-1].Timestamp.After(items[i].Timestamp))
	}
}

func TestLedger_uniqueIDs(t *testing.T) {
	ledger := New(5)
	seen := map[string]bool{}
	for range 5 {
		item := ledger.Record(models.AnalysisResult{}, "x")
		require.NotEmpty(t, item.ID)
		require.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}

func TestLedger_Items_isCopy(t *testing.T) {
	ledger := New(DefaultCapacity)
	ledger.Record(models.AnalysisResult{Verdict: models.VerdictReal}, "x")

	items := ledger.Items()
	items[0].Verdict = models.VerdictFake

	require.Equal(t, models.VerdictReal, ledger.Items()[0].Verdict)
}

func TestNew_invalidCapacity(t *testing.T) {
	ledger := New(0)
	for range DefaultCapacity + 3 {
		ledger.Record(models.AnalysisResult{}, "x")
	}
	require.Equal(t, DefaultCapacity, ledger.Len())
}

func TestLedger_concurrentRecord(t *testing.T) {
	ledger := New(DefaultCapacity)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ledger.Record(models.AnalysisResult{}, "x")
		}()
	}
	wg.Wait()
	require.Equal(t, DefaultCapacity, ledger.Len())
}

func TestDescribe(t *testing.T) {
	short := strings.Repeat("a", 50)
	exact := strings.Repeat("b", 100)
	long := strings.Repeat("c", 150)
	multibyte := strings.Repeat("ä", 120)
	tests := []struct {
		name     string
		text     string
		hasImage bool
		want     string
	}{
		{name: "short text", text: short, want: short},
		{name: "exactly the limit", text: exact, want: exact},
		{name: "long text", text: long, want: strings.Repeat("c", 100) + "..."},
		{name: "counts characters not bytes", text: multibyte, want: strings.Repeat("ä", 100) + "..."},
		{name: "image", text: long, hasImage: true, want: VisualPlaceholder},
		{name: "image without text", hasImage: true, want: "[Visual Analysis]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Describe(tt.text, tt.hasImage))
		})
	}
}
