package model

import (
	"strings"
	"testing"
)

func TestUnmarshalTasksMixedTypes(t *testing.T) {
	payload := []byte(`[
		{"type":"multiple_choice","question":"2+2?","options":["3","4"],"correctIndex":1},
		{"type":"matching_pairs","question":"配对","pairs":[{"left":"int","right":"整数"}]},
		{"type":"fill_in_blank","text":"int x = __;","answers":["0"]},
		{"type":"orderable_list","question":"排序","items":["a","b","c"]},
		{"type":"text_box","question":"什么是指针","answer":"内存地址"},
		{"type":"code_fix","question":"修复","brokenCode":"int x = ;","fixedCode":"int x = 0;"}
	]`)

	tasks, err := UnmarshalTasks(payload)
	if err != nil {
		t.Fatalf("UnmarshalTasks: %v", err)
	}
	if len(tasks) != 6 {
		t.Fatalf("len(tasks) = %d, want 6", len(tasks))
	}

	wantTypes := []TaskType{
		TaskMultipleChoice, TaskMatchingPairs, TaskFillInBlank,
		TaskOrderableList, TaskTextBox, TaskCodeFix,
	}
	for i, task := range tasks {
		if task.TaskType() != wantTypes[i] {
			t.Fatalf("task %d type = %s, want %s", i, task.TaskType(), wantTypes[i])
		}
	}
}

func TestUnmarshalTasksRejectsUnknownType(t *testing.T) {
	payload := []byte(`[{"type":"mind_reading","question":"?"}]`)

	_, err := UnmarshalTasks(payload)
	if err == nil {
		t.Fatalf("expected unknown type to be rejected")
	}
	if !strings.Contains(err.Error(), "unknown task type") {
		t.Fatalf("err = %v, want unknown task type error", err)
	}
}

func TestUnmarshalTasksValidatesPayload(t *testing.T) {
	cases := map[string]string{
		"correctIndex out of range": `[{"type":"multiple_choice","question":"?","options":["a","b"],"correctIndex":5}]`,
		"empty pairs":               `[{"type":"matching_pairs","question":"?","pairs":[]}]`,
		"single orderable item":     `[{"type":"orderable_list","question":"?","items":["a"]}]`,
		"missing answer":            `[{"type":"text_box","question":"?","answer":""}]`,
		"not an array":              `{"type":"text_box"}`,
	}
	for name, payload := range cases {
		if _, err := UnmarshalTasks([]byte(payload)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestUnmarshalTasksEmptyPayload(t *testing.T) {
	tasks, err := UnmarshalTasks(nil)
	if err != nil {
		t.Fatalf("UnmarshalTasks(nil): %v", err)
	}
	if tasks != nil {
		t.Fatalf("tasks = %v, want nil", tasks)
	}
}
