package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/kiswahili/internal/config"
)

func TestEnqueueVocabularyImport_RejectsEmpty(t *testing.T) {
	c := NewClient(config.RedisConfig{Addr: "127.0.0.1:1"})
	defer c.Close()

	_, err := c.EnqueueVocabularyImport(VocabularyImportPayload{Source: "empty.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), TypeVocabularyImport)
}

func TestNewTask_EncodesPayload(t *testing.T) {
	task, err := newTask(TypeVocabularyImport, VocabularyImportPayload{Words: []string{"rafiki"}, Source: "words.txt"})
	require.NoError(t, err)
	assert.Equal(t, TypeVocabularyImport, task.Type())

	var got VocabularyImportPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, []string{"rafiki"}, got.Words)
	assert.Equal(t, "words.txt", got.Source)
}

func TestRedisOpt(t *testing.T) {
	opt := RedisOpt(config.RedisConfig{Addr: "redis:6379", Password: "pw", DB: 2})
	assert.Equal(t, "redis:6379", opt.Addr)
	assert.Equal(t, "pw", opt.Password)
	assert.Equal(t, 2, opt.DB)
}
