package model

import (
	"encoding/json"
	"fmt"
)

type TaskType string

const (
	TaskMatchingPairs  TaskType = "matching_pairs"
	TaskMultipleChoice TaskType = "multiple_choice"
	TaskFillInBlank    TaskType = "fill_in_blank"
	TaskOrderableList  TaskType = "orderable_list"
	TaskTextBox        TaskType = "text_box"
	TaskCodeFix        TaskType = "code_fix"
)

// Task 关卡练习题，按 type 字段区分题型
type Task interface {
	TaskType() TaskType
	Validate() error
}

// MatchingPair 左右配对项
type MatchingPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// swagger:model MatchingPairsTask
type MatchingPairsTask struct {
	Question string         `json:"question"`
	Pairs    []MatchingPair `json:"pairs"`
}

func (MatchingPairsTask) TaskType() TaskType { return TaskMatchingPairs }

func (t MatchingPairsTask) Validate() error {
	if len(t.Pairs) == 0 {
		return fmt.Errorf("matching_pairs task requires at least one pair")
	}
	for i, p := range t.Pairs {
		if p.Left == "" || p.Right == "" {
			return fmt.Errorf("matching_pairs task pair %d has an empty side", i)
		}
	}
	return nil
}

// swagger:model MultipleChoiceTask
type MultipleChoiceTask struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

func (MultipleChoiceTask) TaskType() TaskType { return TaskMultipleChoice }

func (t MultipleChoiceTask) Validate() error {
	if t.Question == "" {
		return fmt.Errorf("multiple_choice task requires a question")
	}
	if len(t.Options) < 2 {
		return fmt.Errorf("multiple_choice task requires at least two options")
	}
	if t.CorrectIndex < 0 || t.CorrectIndex >= len(t.Options) {
		return fmt.Errorf("multiple_choice task correctIndex %d out of range", t.CorrectIndex)
	}
	return nil
}

// swagger:model FillInBlankTask
type FillInBlankTask struct {
	Text    string   `json:"text"` // 包含空位占位符的文本
	Answers []string `json:"answers"`
}

func (FillInBlankTask) TaskType() TaskType { return TaskFillInBlank }

func (t FillInBlankTask) Validate() error {
	if t.Text == "" {
		return fmt.Errorf("fill_in_blank task requires text")
	}
	if len(t.Answers) == 0 {
		return fmt.Errorf("fill_in_blank task requires answers")
	}
	return nil
}

// swagger:model OrderableListTask
type OrderableListTask struct {
	Question string   `json:"question"`
	Items    []string `json:"items"` // 正确顺序
}

func (OrderableListTask) TaskType() TaskType { return TaskOrderableList }

func (t OrderableListTask) Validate() error {
	if len(t.Items) < 2 {
		return fmt.Errorf("orderable_list task requires at least two items")
	}
	return nil
}

// swagger:model TextBoxTask
type TextBoxTask struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (TextBoxTask) TaskType() TaskType { return TaskTextBox }

func (t TextBoxTask) Validate() error {
	if t.Question == "" || t.Answer == "" {
		return fmt.Errorf("text_box task requires question and answer")
	}
	return nil
}

// swagger:model CodeFixTask
type CodeFixTask struct {
	Question   string `json:"question"`
	BrokenCode string `json:"brokenCode"`
	FixedCode  string `json:"fixedCode"`
}

func (CodeFixTask) TaskType() TaskType { return TaskCodeFix }

func (t CodeFixTask) Validate() error {
	if t.BrokenCode == "" || t.FixedCode == "" {
		return fmt.Errorf("code_fix task requires brokenCode and fixedCode")
	}
	return nil
}

// UnmarshalTasks 解析关卡题目列表。先读 type 再选载荷结构，
// 未知的 type 直接报错
func UnmarshalTasks(data []byte) ([]Task, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("tasks payload must be a JSON array: %w", err)
	}

	tasks := make([]Task, 0, len(raws))
	for i, raw := range raws {
		var head struct {
			Type TaskType `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}

		var task Task
		switch head.Type {
		case TaskMatchingPairs:
			task = &MatchingPairsTask{}
		case TaskMultipleChoice:
			task = &MultipleChoiceTask{}
		case TaskFillInBlank:
			task = &FillInBlankTask{}
		case TaskOrderableList:
			task = &OrderableListTask{}
		case TaskTextBox:
			task = &TextBoxTask{}
		case TaskCodeFix:
			task = &CodeFixTask{}
		default:
			return nil, fmt.Errorf("task %d: unknown task type %q", i, head.Type)
		}

		if err := json.Unmarshal(raw, task); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
