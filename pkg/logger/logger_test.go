//go:build unit

package logger

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterLogger_Logf(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "[test] ")

	l.Logf("created %s #%d", "milestone-1", 3)

	assert.Equal(t, "[test] created milestone-1 #3\n", buf.String())
}

func TestWriterLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Logf("line")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, bytes.Count(buf.Bytes(), []byte("line\n")))
}

func TestNoopLogger_Logf(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNoopLogger().Logf("nothing %d", 1)
	})
}
