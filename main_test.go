package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		startStr string
		endStr   string
		start    time.Time
		end      time.Time
		errText  string
	}{
		{
			name:     "只给开始日期时区间为单日",
			startStr: "2025-02-01",
			start:    time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local),
			end:      time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "完整区间",
			startStr: "2025-02-01",
			endStr:   "2025-02-03",
			start:    time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local),
			end:      time.Date(2025, 2, 3, 0, 0, 0, 0, time.Local),
		},
		{
			name:    "只给结束日期",
			endStr:  "2025-02-03",
			errText: "缺少 -start",
		},
		{
			name:     "开始日期格式无效",
			startStr: "02/01/2025",
			errText:  "开始日期格式无效",
		},
		{
			name:     "结束日期格式无效",
			startStr: "2025-02-01",
			endStr:   "not-a-date",
			errText:  "结束日期格式无效",
		},
		{
			name:     "开始晚于结束",
			startStr: "2025-02-03",
			endStr:   "2025-02-01",
			errText:  "不能晚于",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := parseDateRange(tt.startStr, tt.endStr)
			if tt.errText != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.start.Equal(start))
			assert.True(t, tt.end.Equal(end))
		})
	}
}
