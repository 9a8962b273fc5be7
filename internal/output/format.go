// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskorg/internal/tasks"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// ActiveTitle heads the active list.
	ActiveTitle = "My Tasks"

	// DeletedTitle heads the deleted list.
	DeletedTitle = "Recently Deleted"

	// DeletedPrefix prefixes references into the deleted list.
	DeletedPrefix = "d"
)

// FormatTask formats an active task line.
// Format: "{N:>4}  {NAME}\n" (4-wide right-aligned number, two spaces, name)
func FormatTask(w io.Writer, num int, task tasks.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeName(task.Name))
}

// FormatDeletedTask formats a deleted task line with its "dN" reference.
// Format: "{dN:>4}  {NAME}\n"
func FormatDeletedTask(w io.Writer, num int, task tasks.Task) {
	fmt.Fprintf(w, "%4s  %s\n", DeletedRef(num), normalizeName(task.Name))
}

// DeletedRef returns the reference of the num'th deleted task.
func DeletedRef(num int) string {
	return DeletedPrefix + strconv.Itoa(num)
}

// FormatSectionHeader formats a list section header.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ListSeparator)
}

// FormatView prints both lists of a view. Active tasks come first without a
// header; the deleted section is printed only when it has entries. Numbers
// are positions in the unfiltered lists, so they stay valid as references
// while a search is active. Returns the number of lines printed.
func FormatView(w io.Writer, v tasks.View) int {
	n := 0
	for _, e := range v.Tasks {
		FormatTask(w, e.Index+1, e.Task)
		n++
	}
	if len(v.Deleted) == 0 {
		return n
	}
	FormatSectionHeader(w, DeletedTitle)
	for _, e := range v.Deleted {
		FormatDeletedTask(w, e.Index+1, e.Task)
		n++
	}
	return n
}

// normalizeName normalizes a task name for display.
// Newlines are replaced with spaces.
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	return strings.ReplaceAll(name, "\n", " ")
}
