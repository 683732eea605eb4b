package aging_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/compliance-api/internal/domain/aging"
)

func d(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

func TestClassify_Tramos(t *testing.T) {
	due := d(2024, time.March, 10)
	grace := d(2024, time.March, 15)

	cases := []struct {
		today time.Time
		want  aging.Bucket
	}{
		{d(2024, time.February, 20), aging.NotDue},
		{d(2024, time.March, 3), aging.DueSoon},
		{d(2024, time.March, 10), aging.DueSoon},
		{d(2024, time.March, 12), aging.InGrace},
		{d(2024, time.March, 15), aging.InGrace},
		{d(2024, time.March, 16), aging.Overdue1To15},
		{d(2024, time.March, 30), aging.Overdue1To15},
		{d(2024, time.March, 31), aging.Overdue16To30},
		{d(2024, time.April, 14), aging.Overdue16To30},
		{d(2024, time.April, 15), aging.Overdue31To60},
		{d(2024, time.May, 14), aging.Overdue31To60},
		{d(2024, time.May, 15), aging.Overdue60Plus},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, aging.Classify(due, grace, tc.today, 7), tc.today.Format("2006-01-02"))
	}
}

func TestSummary_Attention(t *testing.T) {
	s := aging.NewSummary()
	assert.Len(t, s, len(aging.Buckets))

	s[aging.NotDue] = 4
	s[aging.DueSoon] = 2
	s[aging.Overdue60Plus] = 1
	assert.Equal(t, 3, s.Attention())
	assert.False(t, aging.NeedsAttention(aging.NotDue))
	assert.True(t, aging.NeedsAttention(aging.InGrace))
}
