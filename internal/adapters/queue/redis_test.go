// internal/adapters/queue/redis_test.go
package queue

import (
	"encoding/json"
	"testing"

	"ssdeepx/internal/platform/logx"
	"ssdeepx/internal/testutil"
)

func TestNewConsumer_InvalidURL(t *testing.T) {
	_, err := NewConsumer("not-a-redis-url", "ssdeepx:tasks", logx.NewSilent())

	testutil.AssertError(t, err, "invalid broker url fails fast")
}

func TestNewConsumer_ValidURL(t *testing.T) {
	consumer, err := NewConsumer("redis://localhost:6379/0", "ssdeepx:tasks", logx.NewSilent())

	testutil.AssertNoError(t, err, "parse should succeed without connecting")
	testutil.AssertNotNil(t, consumer, "consumer constructed")
	testutil.AssertNoError(t, consumer.Close(), "close releases the client")
}

func TestTaskMessage_Decode(t *testing.T) {
	payload := `{
		"task_id": "t-1",
		"input_files": [{"path": "/data/a.txt", "display_name": "a.txt"}],
		"output_path": "/out",
		"workflow_id": "wf-1",
		"reply_to": "ssdeepx:results"
	}`

	var task TaskMessage
	err := json.Unmarshal([]byte(payload), &task)

	testutil.AssertNoError(t, err, "decode should succeed")
	testutil.AssertEqual(t, task.TaskID, "t-1", "task id")
	testutil.AssertEqual(t, len(task.InputFiles), 1, "input count")
	testutil.AssertEqual(t, task.InputFiles[0].Path, "/data/a.txt", "input path")
	testutil.AssertEqual(t, task.OutputPath, "/out", "output path")
	testutil.AssertEqual(t, task.ReplyTo, "ssdeepx:results", "reply list")
}

func TestResultMessage_EncodeOmitsEmptyFields(t *testing.T) {
	msg := ResultMessage{TaskID: "t-1", Status: StatusSuccess, Result: "ZW52"}

	raw, err := json.Marshal(msg)

	testutil.AssertNoError(t, err, "encode should succeed")
	out := string(raw)
	testutil.AssertContains(t, out, `"status":"success"`, "status present")
	testutil.AssertTrue(t, !jsonHasField(out, "error"), "empty error omitted")
}

func jsonHasField(s, field string) bool {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return false
	}
	_, ok := m[field]
	return ok
}
