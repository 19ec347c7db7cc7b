package fallback

import (
	"github.com/google/uuid"

	"talentgate/assess/internal/models"
)

// Library serves deterministic generic items when generation or parsing
// yields too little. Pools are truncated, never repeated: asking for more
// items than a pool holds returns the whole pool.
type Library struct {
	questions []questionSeed
	tasks     []taskSeed
}

type questionSeed struct {
	prompt  string
	options []string
	answer  string
}

type taskSeed struct {
	title       string
	description string
	cases       []models.SampleCase
	solution    string
}

func NewLibrary() *Library {
	return &Library{questions: questionPool, tasks: taskPool}
}

// Questions returns up to count generic questions stamped with the given
// difficulty and language, each with a fresh ID.
func (l *Library) Questions(count int, difficulty, language string) []models.QuestionItem {
	if count > len(l.questions) {
		count = len(l.questions)
	}
	items := make([]models.QuestionItem, 0, count)
	for _, seed := range l.questions[:count] {
		item, err := models.NewQuestionItem(
			uuid.New().String(), seed.prompt, seed.options, seed.answer,
			difficulty, language, 0, 0,
		)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Tasks returns up to count generic tasks stamped with the given difficulty
// and language, each with a fresh ID and the generic rubric.
func (l *Library) Tasks(count int, difficulty, language string) []models.TaskItem {
	if count > len(l.tasks) {
		count = len(l.tasks)
	}
	items := make([]models.TaskItem, 0, count)
	for _, seed := range l.tasks[:count] {
		item, err := models.NewTaskItem(
			uuid.New().String(), seed.title, seed.description, seed.cases,
			seed.solution, nil, difficulty, language, 0, 0,
		)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// QuestionPoolSize reports how many generic questions are available.
func (l *Library) QuestionPoolSize() int { return len(l.questions) }

// TaskPoolSize reports how many generic tasks are available.
func (l *Library) TaskPoolSize() int { return len(l.tasks) }

// The pools are intentionally language-agnostic: they test general
// programming knowledge so they remain usable whatever language the
// parameters inferred.
var questionPool = []questionSeed{
	{
		prompt:  "What is the time complexity of binary search on a sorted array of n elements?",
		options: []string{"A) O(n)", "B) O(log n)", "C) O(n log n)", "D) O(1)"},
		answer:  "B) O(log n)",
	},
	{
		prompt:  "Which data structure follows last-in, first-out ordering?",
		options: []string{"A) Queue", "B) Heap", "C) Stack", "D) Linked list"},
		answer:  "C) Stack",
	},
	{
		prompt:  "What does a hash table primarily optimize?",
		options: []string{"A) Ordered traversal", "B) Key lookup", "C) Memory usage", "D) Sorting"},
		answer:  "B) Key lookup",
	},
	{
		prompt:  "Which sorting algorithm has the best average-case time complexity?",
		options: []string{"A) Bubble sort", "B) Insertion sort", "C) Selection sort", "D) Merge sort"},
		answer:  "D) Merge sort",
	},
	{
		prompt:  "What is a race condition?",
		options: []string{"A) A compiler optimization", "B) Unsynchronized concurrent access to shared state", "C) An infinite loop", "D) A memory leak"},
		answer:  "B) Unsynchronized concurrent access to shared state",
	},
	{
		prompt:  "Which HTTP status code indicates a resource was not found?",
		options: []string{"A) 200", "B) 301", "C) 404", "D) 500"},
		answer:  "C) 404",
	},
}

var taskPool = []taskSeed{
	{
		title:       "Reverse a String",
		description: "Write a function that takes a string and returns it reversed. Do not use a built-in reverse helper.",
		cases: []models.SampleCase{
			{Input: "hello", Output: "olleh"},
			{Input: "ab", Output: "ba"},
		},
		solution: "def solve(s):\n    out = []\n    for ch in s:\n        out.insert(0, ch)\n    return ''.join(out)",
	},
	{
		title:       "Two Sum",
		description: "Given a list of integers and a target, return the indices of two numbers that add up to the target. Exactly one solution exists.",
		cases: []models.SampleCase{
			{Input: "[2, 7, 11, 15], 9", Output: "[0, 1]"},
			{Input: "[3, 2, 4], 6", Output: "[1, 2]"},
		},
		solution: "def solve(nums, target):\n    seen = {}\n    for i, n in enumerate(nums):\n        if target - n in seen:\n            return [seen[target - n], i]\n        seen[n] = i",
	},
	{
		title:       "Count Word Frequency",
		description: "Given a block of text, return a mapping from each word to the number of times it appears. Comparison is case-insensitive.",
		cases: []models.SampleCase{
			{Input: "the cat and the hat", Output: "{'the': 2, 'cat': 1, 'and': 1, 'hat': 1}"},
		},
		solution: "def solve(text):\n    counts = {}\n    for word in text.lower().split():\n        counts[word] = counts.get(word, 0) + 1\n    return counts",
	},
	{
		title:       "Validate Brackets",
		description: "Given a string of brackets ()[]{}, return whether every opening bracket is closed by the matching bracket in the correct order.",
		cases: []models.SampleCase{
			{Input: "([]{})", Output: "true"},
			{Input: "([)]", Output: "false"},
		},
		solution: "def solve(s):\n    pairs = {')': '(', ']': '[', '}': '{'}\n    stack = []\n    for ch in s:\n        if ch in pairs:\n            if not stack or stack.pop() != pairs[ch]:\n                return False\n        else:\n            stack.append(ch)\n    return not stack",
	},
}
