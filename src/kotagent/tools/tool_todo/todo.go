// Package tool_todo exposes the in-memory task list to the model.
package tool_todo

import (
	"context"
	"fmt"
	"strings"

	"github.com/kota-cli/kota/src/agent"
	"github.com/kota-cli/kota/src/kotagent/toolsutil"
	"github.com/kota-cli/kota/src/todo"
)

// Tool name constants
const (
	AddName      = "todo_add"
	InsertName   = "todo_insert"
	UpdateName   = "todo_update"
	CompleteName = "todo_complete"
	ListName     = "todo_list"
)

// TodoAddInput represents the parameters for todo_add. Either a single text
// or a batch of tasks may be given.
type TodoAddInput struct {
	Text  string   `json:"text,omitempty" description:"A single task description"`
	Tasks []string `json:"tasks,omitempty" description:"Array of task descriptions"`
}

// TodoInsertInput represents the parameters for todo_insert.
type TodoInsertInput struct {
	BeforeID int    `json:"before_id" required:"true" description:"The ID of the task before which to insert the new task."`
	Task     string `json:"task" required:"true" description:"The task to insert."`
}

// TodoUpdateInput represents the parameters for todo_update.
type TodoUpdateInput struct {
	ID     int    `json:"id" required:"true" description:"The task ID (1-based)"`
	Status string `json:"status" required:"true" description:"New status: pending, in_progress, or done"`
}

// TodoCompleteInput represents the parameters for todo_complete.
type TodoCompleteInput struct {
	IDs []int `json:"ids" required:"true" description:"Array of task IDs (1-based)"`
}

// TodoListInput represents the (empty) parameters for todo_list.
type TodoListInput struct{}

// AddTool returns the todo_add tool definition.
func AddTool(store *todo.Store) (agent.Tool, error) {
	return agent.NewGenericTool(AddName, "Adds items to the todo list.",
		func(ctx context.Context, input TodoAddInput) (string, error) {
			tasks := input.Tasks
			if strings.TrimSpace(input.Text) != "" {
				tasks = append([]string{input.Text}, tasks...)
			}
			if len(tasks) == 0 {
				return "", fmt.Errorf("no tasks given")
			}
			for _, task := range tasks {
				id := store.Add(task)
				toolsutil.GetLogger().Info("task added", "id", id, "task", task)
			}
			return "Tasks added.", nil
		})
}

// InsertTool returns the todo_insert tool definition.
func InsertTool(store *todo.Store) (agent.Tool, error) {
	return agent.NewGenericTool(InsertName, "Insert a task before another task in the todo list. Returns the updated list.",
		func(ctx context.Context, input TodoInsertInput) (string, error) {
			if strings.TrimSpace(input.Task) == "" {
				return "", fmt.Errorf("task must not be empty")
			}
			store.Insert(input.BeforeID, input.Task)
			toolsutil.GetLogger().Info("task inserted", "before_id", input.BeforeID, "task", input.Task)
			return store.Render(), nil
		})
}

// UpdateTool returns the todo_update tool definition.
func UpdateTool(store *todo.Store) (agent.Tool, error) {
	return agent.NewGenericTool(UpdateName, "Sets a task's status by ID.",
		func(ctx context.Context, input TodoUpdateInput) (string, error) {
			if err := store.SetStatus(input.ID, todo.Status(input.Status)); err != nil {
				return "", err
			}
			toolsutil.GetLogger().Info("task updated", "id", input.ID, "status", input.Status)
			return fmt.Sprintf("Task %d set to %s.", input.ID, input.Status), nil
		})
}

// CompleteTool returns the todo_complete tool definition.
func CompleteTool(store *todo.Store) (agent.Tool, error) {
	return agent.NewGenericTool(CompleteName, "Marks tasks as complete by ID.",
		func(ctx context.Context, input TodoCompleteInput) (string, error) {
			for _, id := range input.IDs {
				if err := store.Complete(id); err != nil {
					return "", err
				}
				toolsutil.GetLogger().Info("task completed", "id", id)
			}
			return "Tasks marked as complete.", nil
		})
}

// ListTool returns the todo_list tool definition.
func ListTool(store *todo.Store) (agent.Tool, error) {
	return agent.NewGenericTool(ListName, "Lists all tasks in the todo list.",
		func(ctx context.Context, input TodoListInput) (string, error) {
			return store.Render(), nil
		})
}
