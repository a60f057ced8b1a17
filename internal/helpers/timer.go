package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/esdart/esdart/internal/logger"
)

// Records how long each compiler phase takes. A nil timer is valid and
// records nothing, so callers don't need to check whether timing is enabled.
type Timer struct {
	data []timerData
}

type timerData struct {
	time  time.Time
	name  string
	isEnd bool
}

func (t *Timer) Begin(name string) {
	if t != nil {
		t.data = append(t.data, timerData{
			name: name,
			time: time.Now(),
		})
	}
}

func (t *Timer) End(name string) {
	if t != nil {
		t.data = append(t.data, timerData{
			name:  name,
			time:  time.Now(),
			isEnd: true,
		})
	}
}

// Emits one debug message per completed phase, indented by nesting depth,
// and starts over
func (t *Timer) Log(log logger.Log) {
	if t == nil {
		return
	}

	type pair struct {
		timerData
		index int
	}

	var lines []string
	var stack []pair
	indent := 0

	for _, item := range t.data {
		if !item.isEnd {
			stack = append(stack, pair{timerData: item, index: len(lines)})
			lines = append(lines, "")
			indent++
		} else {
			indent--
			last := len(stack) - 1
			top := stack[last]
			stack = stack[:last]
			if item.name != top.name {
				panic("Internal error: mismatched timer phases")
			}
			lines[top.index] = fmt.Sprintf("%s%s: %dms",
				strings.Repeat("  ", indent),
				top.name,
				item.time.Sub(top.time).Milliseconds())
		}
	}

	for _, line := range lines {
		log.AddDebug(nil, logger.Loc{}, "Timing "+line)
	}
	t.data = t.data[:0]
}
