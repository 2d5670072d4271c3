package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskchat/internal/todo"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

const menu = `
1. Add Task
2. View Tasks
3. Update Task
4. Delete Task
5. Mark Task Complete / Incomplete
6. Exit`

// runMenu drives the interactive loop until the user exits or input ends.
func runMenu(in io.Reader, out io.Writer, svc *todo.Service) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, headerStyle.Render("Welcome to the Console Todo App!"))

	for {
		fmt.Fprintln(out, headerStyle.Render("--- Todo App Menu ---")+menu)
		choice, ok := prompt(scanner, out, "Enter your choice (1-6): ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			addTask(scanner, out, svc)
		case "2":
			viewTasks(out, svc)
		case "3":
			updateTask(scanner, out, svc)
		case "4":
			deleteTask(scanner, out, svc)
		case "5":
			toggleTask(scanner, out, svc)
		case "6":
			fmt.Fprintln(out, "Thank you for using the Todo App. Goodbye!")
			return nil
		default:
			fmt.Fprintln(out, errStyle.Render("Invalid choice. Please enter a number between 1 and 6."))
		}
	}
}

func addTask(scanner *bufio.Scanner, out io.Writer, svc *todo.Service) {
	title, ok := prompt(scanner, out, "Enter task title (required): ")
	if !ok {
		return
	}
	description, _ := prompt(scanner, out, "Enter task description (optional, press Enter to skip): ")

	id, err := svc.Add(title, description)
	if err != nil {
		fmt.Fprintln(out, errStyle.Render("Error adding task: "+err.Error()))
		return
	}
	fmt.Fprintf(out, "Task added successfully with ID: %d\n", id)
}

func viewTasks(out io.Writer, svc *todo.Service) {
	tasks := svc.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(out, dimStyle.Render("No tasks yet."))
		return
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%d. [ ] %s", t.ID, t.Title)
		if t.Completed {
			line = doneStyle.Render(fmt.Sprintf("%d. [x] %s", t.ID, t.Title))
		}
		fmt.Fprintln(out, line)
		if t.Description != "" {
			fmt.Fprintln(out, dimStyle.Render("   "+t.Description))
		}
	}
}

func updateTask(scanner *bufio.Scanner, out io.Writer, svc *todo.Service) {
	id, ok := promptID(scanner, out)
	if !ok {
		return
	}

	titleIn, _ := prompt(scanner, out, "New title (press Enter to keep): ")
	descIn, _ := prompt(scanner, out, "New description (press Enter to keep): ")

	var title, description *string
	if titleIn != "" {
		title = &titleIn
	}
	if descIn != "" {
		description = &descIn
	}
	if title == nil && description == nil {
		fmt.Fprintln(out, dimStyle.Render("Nothing to update."))
		return
	}

	if err := svc.Update(id, title, description); err != nil {
		fmt.Fprintln(out, errStyle.Render("Error updating task: "+err.Error()))
		return
	}
	fmt.Fprintln(out, "Task updated successfully.")
}

func deleteTask(scanner *bufio.Scanner, out io.Writer, svc *todo.Service) {
	id, ok := promptID(scanner, out)
	if !ok {
		return
	}
	if err := svc.Delete(id); err != nil {
		fmt.Fprintln(out, errStyle.Render("Error deleting task: "+err.Error()))
		return
	}
	fmt.Fprintln(out, "Task deleted successfully.")
}

func toggleTask(scanner *bufio.Scanner, out io.Writer, svc *todo.Service) {
	id, ok := promptID(scanner, out)
	if !ok {
		return
	}
	completed, err := svc.Toggle(id)
	if err != nil {
		fmt.Fprintln(out, errStyle.Render("Error updating task: "+err.Error()))
		return
	}
	if completed {
		fmt.Fprintln(out, doneStyle.Render("Task marked as complete."))
	} else {
		fmt.Fprintln(out, "Task marked as incomplete.")
	}
}

func promptID(scanner *bufio.Scanner, out io.Writer) (int, bool) {
	raw, ok := prompt(scanner, out, "Enter task ID: ")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(out, errStyle.Render("Invalid task ID."))
		return 0, false
	}
	return id, true
}

func prompt(scanner *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}
